package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文時点の商品名・価格を保存する（商品が変わっても変えない）
type OrderItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	SKU       string          `gorm:"column:sku;type:varchar(100)" json:"sku"`
	Image     string          `gorm:"type:varchar(500)" json:"image"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"line_total"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
