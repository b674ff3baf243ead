package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCoupon_Check(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Hour)
	limit := int64(3)
	minimum := d("50000")
	maximum := d("500000")

	tests := []struct {
		name     string
		coupon   Coupon
		subtotal string
		want     CouponRejection
	}{
		{"no limits", Coupon{}, "1", CouponOK},
		{"expired", Coupon{DateExpires: &past}, "100000", CouponExpired},
		{"expires exactly now", Coupon{DateExpires: &now}, "100000", CouponExpired},
		{"not yet expired", Coupon{DateExpires: &future}, "100000", CouponOK},
		{"usage exhausted", Coupon{UsageLimit: &limit, UsageCount: 3}, "100000", CouponUsageExhausted},
		{"usage left", Coupon{UsageLimit: &limit, UsageCount: 2}, "100000", CouponOK},
		{"below minimum", Coupon{MinimumAmount: &minimum}, "49999", CouponBelowMinimum},
		{"at minimum", Coupon{MinimumAmount: &minimum}, "50000", CouponOK},
		{"above maximum", Coupon{MaximumAmount: &maximum}, "500001", CouponAboveMaximum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coupon.Check(d(tt.subtotal), now))
		})
	}
}

func TestCoupon_DiscountFor(t *testing.T) {
	percent := Coupon{DiscountType: DiscountTypePercent, Amount: d("10")}
	assert.True(t, percent.DiscountFor(d("100000")).Equal(d("10000")))

	fixed := Coupon{DiscountType: DiscountTypeFixed, Amount: d("20000")}
	assert.True(t, fixed.DiscountFor(d("100000")).Equal(d("20000")))

	unknown := Coupon{DiscountType: "bogo", Amount: d("1")}
	assert.True(t, unknown.DiscountFor(d("100000")).IsZero())
}
