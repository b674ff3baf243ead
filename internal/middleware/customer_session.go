package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 会員セッションを検証する約束
type SessionParser interface {
	ParseSession(raw string) (int64, error)
}

// cookieがあれば会員IDをcontextに入れる。無い・不正ならゲストのまま通す。
func OptionalCustomerSession(parser SessionParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			customerID, err := parser.ParseSession(cookie.Value)
			if err == nil && customerID > 0 {
				c.Set(CtxCustomerIDKey, customerID)
			}
			return next(c)
		}
	}
}

// ログイン必須の会員API
func RequireCustomer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, ok := c.Get(CtxCustomerIDKey).(int64); !ok || id <= 0 {
				return c.JSON(http.StatusUnauthorized, unauthorizedJSON())
			}
			return next(c)
		}
	}
}
