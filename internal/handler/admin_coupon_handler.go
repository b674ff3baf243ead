package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AdminCouponHandler struct {
	uc *usecase.CouponUsecase
}

func NewAdminCouponHandler(uc *usecase.CouponUsecase) *AdminCouponHandler {
	return &AdminCouponHandler{uc: uc}
}

func (h *AdminCouponHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/coupons", h.list)
	g.POST("/coupons", h.create)
}

type couponCreateRequest struct {
	Code          string           `json:"code" validate:"required,max=100"`
	Description   string           `json:"description" validate:"max=1000"`
	DiscountType  string           `json:"discountType" validate:"required,oneof=percent fixed"`
	Amount        decimal.Decimal  `json:"amount" validate:"gt=0"`
	DateExpires   string           `json:"dateExpires"`
	UsageLimit    *int64           `json:"usageLimit" validate:"omitempty,gt=0"`
	MinimumAmount *decimal.Decimal `json:"minimumAmount"`
	MaximumAmount *decimal.Decimal `json:"maximumAmount"`
}

// POST /api/admin/coupons
func (h *AdminCouponHandler) create(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON(usecase.CodeUnauthorized, "unauthorized"))
	}
	var req couponCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	expires, ok := usecase.ParseDateTimeRFC3339(req.DateExpires)
	if !ok {
		return c.JSON(http.StatusBadRequest, errorJSON(usecase.CodeValidation, "invalid dateExpires"))
	}

	coupon, err := h.uc.AdminCreate(c.Request().Context(), actorID, usecase.AdminCreateCouponInput{
		Code:          req.Code,
		Description:   req.Description,
		DiscountType:  model.DiscountType(req.DiscountType),
		Amount:        req.Amount,
		DateExpires:   expires,
		UsageLimit:    req.UsageLimit,
		MinimumAmount: req.MinimumAmount,
		MaximumAmount: req.MaximumAmount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, coupon)
}

// GET /api/admin/coupons?limit=&offset=
func (h *AdminCouponHandler) list(c echo.Context) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AdminList(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
