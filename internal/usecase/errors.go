package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// エラーコード（APIの契約。メッセージは変わってもコードは変えない）
const (
	CodeEmptyCart           = "EMPTY_CART"
	CodeMissingBillingField = "MISSING_BILLING_FIELD"
	CodeInvalidItem         = "INVALID_ITEM"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidBody         = "INVALID_BODY"

	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	CodeTooManyAttempts   = "TOO_MANY_ATTEMPTS"
	CodeInternal          = "INTERNAL"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func NewHTTPError(status int, code string, message string) error {
	return &HTTPError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func badRequest(code string, message string) error {
	return NewHTTPError(http.StatusBadRequest, code, message)
}

func notFound(message string) error {
	return NewHTTPError(http.StatusNotFound, CodeNotFound, message)
}

func internalError() error {
	return NewHTTPError(http.StatusInternalServerError, CodeInternal, "internal error")
}
