package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/util"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tokensは会員セッションと管理者トークンの両方を検証できるもの
type Tokens interface {
	middleware.SessionParser
	middleware.AdminTokenParser
}

// ルーティングに必要な部品一式
type Deps struct {
	Tokens Tokens
	Users  repository.UserRepository

	Auth           *handler.AuthHandler
	Products       *handler.ProductHandler
	Coupons        *handler.CouponHandler
	Checkout       *handler.CheckoutHandler
	Account        *handler.AccountHandler
	AdminOrders    *handler.AdminOrderHandler
	AdminInventory *handler.AdminInventoryHandler
	AdminCoupons   *handler.AdminCouponHandler
	AdminUsers     *handler.AdminUserHandler
	AdminAudit     *handler.AdminAuditHandler
}

// Newはミドルウェアとルートを載せたechoを返す
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(util.GetLogger()))
	e.Use(middleware.Metrics())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	RegisterRoutes(e, d)
	return e
}

// Runはctxが終わるまで待ってからgraceful shutdownする
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
