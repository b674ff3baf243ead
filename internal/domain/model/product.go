package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockStatus string

const (
	StockStatusInStock     StockStatus = "instock"
	StockStatusOnBackorder StockStatus = "onbackorder"
	StockStatusOutOfStock  StockStatus = "outofstock"
)

// 在庫少なしの閾値（low_stock_amount未設定時）
const DefaultLowStockAmount int64 = 5

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string          `gorm:"type:varchar(255);index" json:"slug"`
	SKU         string          `gorm:"column:sku;type:varchar(100);index" json:"sku"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"type:varchar(500)" json:"image"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`

	//在庫管理するかどうか（falseなら数量チェックも減算もしない）
	ManageStock    bool        `gorm:"not null;default:false" json:"manage_stock"`
	StockQuantity  *int64      `json:"stock_quantity"`
	StockStatus    StockStatus `gorm:"type:varchar(20);not null;default:'instock';index" json:"stock_status"`
	LowStockAmount *int64      `json:"low_stock_amount"`

	IsActive  bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// 現在の在庫数（NULLは0扱い）
func (p Product) CurrentStock() int64 {
	if p.StockQuantity == nil {
		return 0
	}
	return *p.StockQuantity
}

// 在庫数が足りるか。管理対象外・数量未設定は常にtrue
func (p Product) HasStockFor(qty int64) bool {
	if !p.ManageStock || p.StockQuantity == nil {
		return true
	}
	return *p.StockQuantity >= qty
}

// 在庫数からstock_statusを決める
func (p Product) StatusFor(quantity int64) StockStatus {
	low := DefaultLowStockAmount
	if p.LowStockAmount != nil {
		low = *p.LowStockAmount
	}
	return ComputeStockStatus(quantity, low)
}

func ComputeStockStatus(quantity int64, lowStockAmount int64) StockStatus {
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity <= lowStockAmount:
		return StockStatusOnBackorder
	default:
		return StockStatusInStock
	}
}
