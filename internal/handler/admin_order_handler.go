package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

// gは管理者ガード済み
func (h *AdminOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.GET("/orders/:id", h.detail)
	g.PUT("/orders/:id/status", h.updateStatus)
	g.POST("/orders/:id/notes", h.addNote)
}

// GET /api/admin/orders?page=&limit=&status=&customerId=&from=&to=
func (h *AdminOrderHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}

	f := repo.AdminOrderListFilter{
		Page:   page,
		Limit:  limit,
		Status: model.OrderStatus(c.QueryParam("status")),
	}
	if f.CustomerID, err = queryID(c, "customerId"); err != nil {
		return writeError(c, err)
	}
	from, ok := usecase.ParseDateTimeRFC3339(c.QueryParam("from"))
	if !ok {
		return c.JSON(http.StatusBadRequest, errorJSON(usecase.CodeValidation, "invalid from"))
	}
	to, ok := usecase.ParseDateTimeRFC3339(c.QueryParam("to"))
	if !ok {
		return c.JSON(http.StatusBadRequest, errorJSON(usecase.CodeValidation, "invalid to"))
	}
	f.From, f.To = from, to

	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /api/admin/orders/:id
func (h *AdminOrderHandler) detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Detail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type orderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// PUT /api/admin/orders/:id/status
func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON(usecase.CodeUnauthorized, "unauthorized"))
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req orderStatusUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	o, err := h.uc.UpdateStatus(c.Request().Context(), actorID, id, usecase.AdminUpdateOrderStatusInput{Status: req.Status})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

type orderNoteRequest struct {
	Content        string `json:"content" validate:"required,max=4000"`
	IsCustomerNote bool   `json:"isCustomerNote"`
}

// POST /api/admin/orders/:id/notes
func (h *AdminOrderHandler) addNote(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON(usecase.CodeUnauthorized, "unauthorized"))
	}
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req orderNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	note, err := h.uc.AddNote(c.Request().Context(), actorID, id, usecase.AdminAddOrderNoteInput{
		Content:        req.Content,
		IsCustomerNote: req.IsCustomerNote,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, note)
}
