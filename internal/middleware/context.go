package middleware

import "storefront/internal/usecase"

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // string
	CtxTokenVersionKey = "token_version" // int
	CtxCustomerIDKey   = "customer_id"   // int64（ゲストはセットしない）
)

// 会員セッションのcookie名
const SessionCookieName = "customer_session"

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func unauthorizedJSON() errorResponse {
	return errorResponse{Code: usecase.CodeUnauthorized, Message: "unauthorized"}
}
