package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CouponUsecase struct {
	coupons repo.CouponRepository
	tx      repo.TransactionManager
	now     func() time.Time
}

// DI
func NewCouponUsecase(coupons repo.CouponRepository, tx repo.TransactionManager) *CouponUsecase {
	return &CouponUsecase{coupons: coupons, tx: tx, now: time.Now}
}

type CouponPreview struct {
	Valid    bool            `json:"valid"`
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
	Reason   string          `json:"reason,omitempty"`
}

// チェックアウトと同じ判定で割引額だけ返す（使用回数は増やさない）
func (u *CouponUsecase) Preview(ctx context.Context, code string, subtotal decimal.Decimal) (CouponPreview, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return CouponPreview{}, badRequest(CodeValidation, "code required")
	}
	if subtotal.IsNegative() {
		return CouponPreview{}, badRequest(CodeValidation, "subtotal must be >= 0")
	}

	c, err := u.coupons.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return CouponPreview{Code: code, Discount: decimal.Zero, Reason: "not_found"}, nil
	}
	if err != nil {
		util.GetLogger().Error("find coupon", zap.String("code", code), zap.Error(err))
		return CouponPreview{}, internalError()
	}

	if rejection := c.Check(subtotal, u.now()); rejection != model.CouponOK {
		return CouponPreview{Code: c.Code, Discount: decimal.Zero, Reason: string(rejection)}, nil
	}

	return CouponPreview{Valid: true, Code: c.Code, Discount: c.DiscountFor(subtotal)}, nil
}

type AdminCreateCouponInput struct {
	Code          string
	Description   string
	DiscountType  model.DiscountType
	Amount        decimal.Decimal
	DateExpires   *time.Time
	UsageLimit    *int64
	MinimumAmount *decimal.Decimal
	MaximumAmount *decimal.Decimal
}

func (u *CouponUsecase) AdminCreate(ctx context.Context, adminUserID int64, in AdminCreateCouponInput) (model.Coupon, error) {
	if adminUserID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		return model.Coupon{}, badRequest(CodeValidation, "code required")
	}
	switch in.DiscountType {
	case model.DiscountTypePercent:
		if in.Amount.GreaterThan(decimal.NewFromInt(100)) {
			return model.Coupon{}, badRequest(CodeValidation, "percent amount must be <= 100")
		}
	case model.DiscountTypeFixed:
	default:
		return model.Coupon{}, badRequest(CodeValidation, "invalid discount type")
	}
	if !in.Amount.IsPositive() {
		return model.Coupon{}, badRequest(CodeValidation, "amount must be > 0")
	}
	if in.UsageLimit != nil && *in.UsageLimit < 0 {
		return model.Coupon{}, badRequest(CodeValidation, "usage limit must be >= 0")
	}
	if in.MinimumAmount != nil && in.MaximumAmount != nil && in.MinimumAmount.GreaterThan(*in.MaximumAmount) {
		return model.Coupon{}, badRequest(CodeValidation, "minimum amount must be <= maximum amount")
	}

	var created model.Coupon
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Coupons().Create(ctx, model.Coupon{
			Code:          code,
			Description:   strings.TrimSpace(in.Description),
			DiscountType:  in.DiscountType,
			Amount:        in.Amount,
			DateExpires:   in.DateExpires,
			UsageLimit:    in.UsageLimit,
			MinimumAmount: in.MinimumAmount,
			MaximumAmount: in.MaximumAmount,
		})
		if errors.Is(err, repo.ErrConflict) {
			return NewHTTPError(http.StatusConflict, CodeConflict, "coupon code already exists")
		}
		if err != nil {
			return fmt.Errorf("create coupon: %w", err)
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionCreateCoupon,
			ResourceType: model.AuditResourceCoupon,
			ResourceID:   c.ID,
			AfterJSON:    fmt.Sprintf(`{"code":%q,"discount_type":%q,"amount":%q}`, c.Code, c.DiscountType, c.Amount.String()),
			CreatedAt:    time.Now(),
		}); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		created = c
		return nil
	})
	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return model.Coupon{}, err
		}
		util.GetLogger().Error("create coupon", zap.String("code", code), zap.Error(err))
		return model.Coupon{}, internalError()
	}
	return created, nil
}

type CouponListOutput struct {
	Items []model.Coupon `json:"items"`
	Total int64          `json:"total"`
}

func (u *CouponUsecase) AdminList(ctx context.Context, limit int, offset int) (CouponListOutput, error) {
	if limit < 0 || offset < 0 {
		return CouponListOutput{}, badRequest(CodeValidation, "invalid limit/offset")
	}

	items, total, err := u.coupons.List(ctx, limit, offset)
	if err != nil {
		util.GetLogger().Error("list coupons", zap.Error(err))
		return CouponListOutput{}, internalError()
	}
	return CouponListOutput{Items: items, Total: total}, nil
}
