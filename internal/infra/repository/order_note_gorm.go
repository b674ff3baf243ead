package repository

import (
	"context"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

type OrderNoteGormRepository struct {
	db *gorm.DB
}

func NewOrderNoteGormRepository(db *gorm.DB) *OrderNoteGormRepository {
	return &OrderNoteGormRepository{db: db}
}

func (r *OrderNoteGormRepository) Create(ctx context.Context, note *model.OrderNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// 古い順
func (r *OrderNoteGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderNote, error) {
	var notes []model.OrderNote
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&notes).Error; err != nil {
		return []model.OrderNote{}, err
	}
	return notes, nil
}
