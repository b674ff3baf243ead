package server

import (
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, d Deps) {
	//公開API（会員cookieがあれば会員として扱う）
	api := e.Group("/api", middleware.OptionalCustomerSession(d.Tokens))
	d.Auth.RegisterRoutes(api)
	d.Products.RegisterRoutes(api)
	d.Coupons.RegisterRoutes(api)
	d.Checkout.RegisterRoutes(api)

	//会員のみ
	account := api.Group("/account", middleware.RequireCustomer())
	d.Account.RegisterRoutes(account)

	//管理者（JWT -> token_version -> role）
	admin := e.Group("/api/admin",
		middleware.AuthJWT(d.Tokens),
		middleware.TokenVersionGuard(d.Users),
		middleware.AdminRoleGuard(),
	)
	d.AdminOrders.RegisterRoutes(admin)
	d.AdminInventory.RegisterRoutes(admin)
	d.AdminCoupons.RegisterRoutes(admin)
	d.AdminUsers.RegisterRoutes(admin)
	d.AdminAudit.RegisterRoutes(admin)
}
