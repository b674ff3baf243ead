package middleware

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleが管理画面を使えるか確認します。

func AdminRoleGuard(allowed ...model.Role) echo.MiddlewareFunc {
	if len(allowed) == 0 {
		allowed = []model.Role{model.RoleAdmin, model.RoleShopManager}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			for _, r := range allowed {
				if model.Role(role) == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorResponse{Code: usecase.CodeForbidden, Message: "forbidden"})
		}
	}
}
