package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminInventoryHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminInventoryHandler(uc *usecase.ProductUsecase) *AdminInventoryHandler {
	return &AdminInventoryHandler{uc: uc}
}

func (h *AdminInventoryHandler) RegisterRoutes(g *echo.Group) {
	g.PUT("/products/:id/inventory", h.update)
	g.GET("/products/:id/inventory/logs", h.logs)
}

type inventoryUpdateRequest struct {
	StockQuantity *int64 `json:"stockQuantity" validate:"required,gte=0"`
	Reason        string `json:"reason" validate:"max=500"`
}

// PUT /api/admin/products/:id/inventory
func (h *AdminInventoryHandler) update(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON(usecase.CodeUnauthorized, "unauthorized"))
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req inventoryUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.AdminUpdateInventory(c.Request().Context(), actorID, id, usecase.AdminUpdateInventoryInput{
		StockQuantity: *req.StockQuantity,
		Reason:        req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// GET /api/admin/products/:id/inventory/logs?limit=&offset=
func (h *AdminInventoryHandler) logs(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return writeError(c, err)
	}

	logs, err := h.uc.AdminListInventoryLogs(c.Request().Context(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": logs})
}
