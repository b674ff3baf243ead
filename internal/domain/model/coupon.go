package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

// クーポンが使えない理由
type CouponRejection string

const (
	CouponOK             CouponRejection = ""
	CouponExpired        CouponRejection = "expired"
	CouponUsageExhausted CouponRejection = "usage_limit_reached"
	CouponBelowMinimum   CouponRejection = "below_minimum_amount"
	CouponAboveMaximum   CouponRejection = "above_maximum_amount"
)

type Coupon struct {
	ID            int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string           `gorm:"type:varchar(100);not null;uniqueIndex" json:"code"`
	Description   string           `gorm:"type:text" json:"description"`
	DiscountType  DiscountType     `gorm:"type:varchar(20);not null" json:"discount_type"`
	Amount        decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	DateExpires   *time.Time       `gorm:"index" json:"date_expires"`
	UsageLimit    *int64           `json:"usage_limit"`
	UsageCount    int64            `gorm:"not null;default:0" json:"usage_count"`
	MinimumAmount *decimal.Decimal `gorm:"type:numeric(14,2)" json:"minimum_amount"`
	MaximumAmount *decimal.Decimal `gorm:"type:numeric(14,2)" json:"maximum_amount"`
	CreatedAt     time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

// 期限・使用回数・金額の範囲をチェックする
func (c Coupon) Check(subtotal decimal.Decimal, now time.Time) CouponRejection {
	if c.DateExpires != nil && !now.Before(*c.DateExpires) {
		return CouponExpired
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return CouponUsageExhausted
	}
	if c.MinimumAmount != nil && subtotal.LessThan(*c.MinimumAmount) {
		return CouponBelowMinimum
	}
	if c.MaximumAmount != nil && subtotal.GreaterThan(*c.MaximumAmount) {
		return CouponAboveMaximum
	}
	return CouponOK
}

// 割引額（percentはsubtotal*amount/100、fixedはamountそのまま）
func (c Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	switch c.DiscountType {
	case DiscountTypePercent:
		return subtotal.Mul(c.Amount).Div(decimal.NewFromInt(100))
	case DiscountTypeFixed:
		return c.Amount
	default:
		return decimal.Zero
	}
}
