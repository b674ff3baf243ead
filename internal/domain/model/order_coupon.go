package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文に適用されたクーポン（1注文につき0か1件）
type OrderCoupon struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;uniqueIndex" json:"order_id"`
	CouponID  int64           `gorm:"not null;index" json:"coupon_id"`
	Code      string          `gorm:"type:varchar(100);not null" json:"code"`
	Discount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"discount"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
