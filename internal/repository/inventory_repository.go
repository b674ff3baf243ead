package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫が足りるときだけ減算（stock_quantity NULLは0扱い）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64, status model.StockStatus) (bool, error)

	// 在庫戻し（キャンセル・返金）
	IncreaseStock(ctx context.Context, productID int64, qty int64, status model.StockStatus) error

	// 在庫の現在値を設定
	SetStock(ctx context.Context, productID int64, newStock int64, status model.StockStatus) error

	// 台帳に1行追記
	CreateLog(ctx context.Context, log model.InventoryLog) error

	// 注文のsale行（古い順）
	ListSalesByOrder(ctx context.Context, orderID int64) ([]model.InventoryLog, error)

	// 台帳一覧（新しい順）
	ListLogs(ctx context.Context, productID int64, limit int, offset int) ([]model.InventoryLog, error)
}
