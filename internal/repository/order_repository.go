package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page       int
	Limit      int
	Status     model.OrderStatus
	CustomerID *int64
	From       *time.Time
	To         *time.Time
}

type OrderRepository interface {
	// 注文と明細を1回で作成する。注文番号が重複したらErrConflict
	Create(ctx context.Context, order *model.Order) error

	// 明細付きで取得
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// 明細付きで取得し行ロックする
	LockByID(ctx context.Context, orderID int64) (model.Order, error)

	ListByCustomerID(ctx context.Context, customerID int64, page int, limit int) ([]model.Order, int64, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// 適用クーポン
	AttachCoupon(ctx context.Context, oc model.OrderCoupon) error
	FindCoupon(ctx context.Context, orderID int64) (*model.OrderCoupon, error)
}
