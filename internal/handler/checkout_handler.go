package handler

import (
	"net/http"
	"strings"

	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/checkout", h.placeOrder)
}

type checkoutItemRequest struct {
	ProductID int64           `json:"productId" validate:"gt=0"`
	Name      string          `json:"name" validate:"max=255"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	SKU       string          `json:"sku" validate:"max=100"`
	Image     string          `json:"image" validate:"max=500"`
}

// 必須項目はusecase側でMISSING_BILLING_FIELDにする
type addressRequest struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Company   string `json:"company" validate:"max=255"`
	Address1  string `json:"address1" validate:"max=255"`
	Address2  string `json:"address2" validate:"max=255"`
	City      string `json:"city" validate:"max=100"`
	State     string `json:"state" validate:"max=100"`
	Postcode  string `json:"postcode" validate:"max=20"`
	Country   string `json:"country" validate:"max=2"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"max=30"`
}

type checkoutRequest struct {
	Items              []checkoutItemRequest `json:"items" validate:"dive"`
	Billing            addressRequest        `json:"billing"`
	Shipping           *addressRequest       `json:"shipping"`
	PaymentMethod      string                `json:"paymentMethod" validate:"max=100"`
	PaymentMethodTitle string                `json:"paymentMethodTitle" validate:"max=255"`
	CustomerNote       string                `json:"customerNote" validate:"max=2000"`
	CouponCode         string                `json:"couponCode" validate:"max=100"`
	Subtotal           decimal.Decimal       `json:"subtotal" validate:"gte=0"`
	ShippingTotal      decimal.Decimal       `json:"shippingTotal" validate:"gte=0"`
	DiscountTotal      decimal.Decimal       `json:"discountTotal" validate:"gte=0"`
	Total              decimal.Decimal       `json:"total" validate:"gte=0"`
}

type checkoutResponse struct {
	Success bool                `json:"success"`
	Order   usecase.PlacedOrder `json:"order"`
}

func (h *CheckoutHandler) placeOrder(c echo.Context) error {
	var req checkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		//明細の不正はINVALID_ITEM
		if ve, ok := validator.AsValidationError(err); ok && strings.HasPrefix(ve.Field, "items") {
			return c.JSON(http.StatusBadRequest, errorJSON(usecase.CodeInvalidItem, ve.Error()))
		}
		return writeError(c, err)
	}

	in := usecase.PlaceOrderInput{
		CustomerID:         getCustomerIDFromContext(c),
		Items:              make([]usecase.CheckoutItemInput, 0, len(req.Items)),
		Billing:            toAddressInput(req.Billing),
		PaymentMethod:      req.PaymentMethod,
		PaymentMethodTitle: req.PaymentMethodTitle,
		CustomerNote:       req.CustomerNote,
		CouponCode:         req.CouponCode,
		Subtotal:           req.Subtotal,
		ShippingTotal:      req.ShippingTotal,
		DiscountTotal:      req.DiscountTotal,
		Total:              req.Total,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.CheckoutItemInput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
			SKU:       it.SKU,
			Image:     it.Image,
		})
	}
	if req.Shipping != nil {
		s := toAddressInput(*req.Shipping)
		in.Shipping = &s
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, checkoutResponse{Success: true, Order: out})
}

func toAddressInput(a addressRequest) usecase.CheckoutAddressInput {
	return usecase.CheckoutAddressInput{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		State:     a.State,
		Postcode:  a.Postcode,
		Country:   a.Country,
		Email:     a.Email,
		Phone:     a.Phone,
	}
}
