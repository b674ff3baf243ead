package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす（check-then-writeにしない）
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64, status model.StockStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND manage_stock = ? AND (stock_quantity IS NULL OR stock_quantity >= ?)", productID, true, qty).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("COALESCE(stock_quantity, 0) - ?", qty),
			"stock_status":   status,
		})

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル・返金）
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, productID int64, qty int64, status model.StockStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("COALESCE(stock_quantity, 0) + ?", qty),
			"stock_status":   status,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫の現在値を設定
func (r *InventoryGormRepository) SetStock(ctx context.Context, productID int64, newStock int64, status model.StockStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"manage_stock":   true,
			"stock_quantity": newStock,
			"stock_status":   status,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 台帳に追記
func (r *InventoryGormRepository) CreateLog(ctx context.Context, log model.InventoryLog) error {
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return err
	}
	return nil
}

// 注文で実際に減らした分（戻し量の根拠）
func (r *InventoryGormRepository) ListSalesByOrder(ctx context.Context, orderID int64) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND type = ?", orderID, model.InventoryLogSale).
		Order("id asc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *InventoryGormRepository) ListLogs(ctx context.Context, productID int64, limit int, offset int) ([]model.InventoryLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var logs []model.InventoryLog
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return []model.InventoryLog{}, err
	}
	return logs, nil
}
