package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct {
	uc *usecase.AccountUsecase
}

func NewAccountHandler(uc *usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// gはRequireCustomer済み
func (h *AccountHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.myOrders)
}

// GET /api/account/orders?page=&limit=
func (h *AccountHandler) myOrders(c echo.Context) error {
	customerID := getCustomerIDFromContext(c)
	if customerID == nil {
		return c.JSON(http.StatusUnauthorized, errorJSON(usecase.CodeUnauthorized, "unauthorized"))
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), *customerID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
