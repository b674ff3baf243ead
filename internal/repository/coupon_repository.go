package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CouponRepository interface {
	// コードで1件取得（見つからなければErrNotFound）
	FindByCode(ctx context.Context, code string) (model.Coupon, error)

	// usage_limitに余裕があるときだけusage_countを+1する
	ClaimUsage(ctx context.Context, couponID int64) (bool, error)

	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
	List(ctx context.Context, limit int, offset int) ([]model.Coupon, int64, error)
}
