package middleware

import (
	"net/http"
	"strings"

	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// 管理者トークンを検証する約束
type AdminTokenParser interface {
	ParseAdmin(raw string) (auth.AdminClaims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
func AuthJWT(parser AdminTokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			//署名・期限・種別を検証
			claims, err := parser.ParseAdmin(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, string(claims.Role))
			c.Set(CtxTokenVersionKey, claims.TokenVersion)

			return next(c)
		}
	}
}
