package handler

import (
	"errors"
	"net/http"

	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/util"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func errorJSON(code string, msg string) ErrorResponse {
	return ErrorResponse{Code: code, Message: msg}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, errorJSON(he.Code, he.Message))
	}
	if ve, ok := validator.AsValidationError(err); ok {
		return c.JSON(http.StatusBadRequest, errorJSON(usecase.CodeValidation, ve.Error()))
	}
	if status, code, msg, ok := mapAuthError(err); ok {
		return c.JSON(status, errorJSON(code, msg))
	}

	//500
	util.GetLogger().Error("unhandled error",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, errorJSON(usecase.CodeInternal, "internal error"))
}

// auth usecaseのエラーをHTTPへ
func mapAuthError(err error) (int, string, string, bool) {
	switch {
	case errors.Is(err, auth.ErrInvalidEmailFormat),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest, usecase.CodeValidation, err.Error(), true
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return http.StatusConflict, usecase.CodeConflict, err.Error(), true
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, usecase.CodeUnauthorized, "invalid email or password", true
	case errors.Is(err, auth.ErrUserInactive):
		return http.StatusForbidden, usecase.CodeForbidden, err.Error(), true
	case errors.Is(err, auth.ErrTooManyAttempts):
		return http.StatusTooManyRequests, usecase.CodeTooManyAttempts, "too many login attempts, try again later", true
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound, usecase.CodeNotFound, err.Error(), true
	}
	return 0, "", "", false
}

// Bind + Validate。Bind失敗はINVALID_BODY
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, usecase.CodeInvalidBody, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
