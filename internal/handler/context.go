package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthJWTが入れた管理者ID
func getUserIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// セッションの会員ID（ゲストはnil）
func getCustomerIDFromContext(c echo.Context) *int64 {
	id, ok := c.Get(middleware.CtxCustomerIDKey).(int64)
	if !ok || id <= 0 {
		return nil
	}
	return &id
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, usecase.CodeValidation, "invalid "+name)
	}
	return id, nil
}

// 空ならdef
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, usecase.CodeValidation, "invalid "+name)
	}
	return n, nil
}

// 任意のIDクエリ。空ならnil
func queryID(c echo.Context, name string) (*int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, usecase.CodeValidation, "invalid "+name)
	}
	return &id, nil
}
