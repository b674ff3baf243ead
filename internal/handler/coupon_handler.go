package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CouponHandler struct {
	uc *usecase.CouponUsecase
}

func NewCouponHandler(uc *usecase.CouponUsecase) *CouponHandler {
	return &CouponHandler{uc: uc}
}

func (h *CouponHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/coupons/preview", h.preview)
}

type couponPreviewRequest struct {
	Code     string          `json:"code" validate:"required,max=100"`
	Subtotal decimal.Decimal `json:"subtotal" validate:"gte=0"`
}

func (h *CouponHandler) preview(c echo.Context) error {
	var req couponPreviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Preview(c.Request().Context(), req.Code, req.Subtotal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
