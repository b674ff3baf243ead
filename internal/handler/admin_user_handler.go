package handler

import (
	"net/http"

	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	forceLogoutUC *auth.ForceLogoutUsecase
}

func NewAdminUserHandler(forceLogoutUC *auth.ForceLogoutUsecase) *AdminUserHandler {
	return &AdminUserHandler{forceLogoutUC: forceLogoutUC}
}

func (h *AdminUserHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/users/:id/force-logout", h.forceLogout)
}

// POST /api/admin/users/:id/force-logout
func (h *AdminUserHandler) forceLogout(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorJSON(usecase.CodeUnauthorized, "unauthorized"))
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.forceLogoutUC.Execute(c.Request().Context(), actorID, targetID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
