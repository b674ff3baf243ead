package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminAuditHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAdminAuditHandler(uc *usecase.AuditLogUsecase) *AdminAuditHandler {
	return &AdminAuditHandler{uc: uc}
}

func (h *AdminAuditHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/audit-logs", h.list)
}

// GET /api/admin/audit-logs?actorId=&action=&resourceType=&resourceId=&from=&to=&limit=&offset=
func (h *AdminAuditHandler) list(c echo.Context) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return writeError(c, err)
	}

	f := repo.AuditLogListFilter{
		Action:       model.AuditAction(c.QueryParam("action")),
		ResourceType: model.AuditResourceType(c.QueryParam("resourceType")),
		Limit:        limit,
		Offset:       offset,
	}
	if f.ActorUserID, err = queryID(c, "actorId"); err != nil {
		return writeError(c, err)
	}
	if f.ResourceID, err = queryID(c, "resourceId"); err != nil {
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
