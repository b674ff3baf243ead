package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 注文メモは追記のみ
type OrderNoteRepository interface {
	Create(ctx context.Context, note *model.OrderNote) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderNote, error)
}
