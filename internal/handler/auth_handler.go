package handler

import (
	"net/http"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC   *auth.RegisterCustomerUsecase
	loginUC      *auth.CustomerLoginUsecase
	adminLoginUC *auth.AdminLoginUsecase
	cookieSecure bool
}

// DI
func NewAuthHandler(
	registerUC *auth.RegisterCustomerUsecase,
	loginUC *auth.CustomerLoginUsecase,
	adminLoginUC *auth.AdminLoginUsecase,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		adminLoginUC: adminLoginUC,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/register", h.register)
	g.POST("/auth/login", h.login)
	g.POST("/auth/logout", h.logout)
	g.POST("/admin/login", h.adminLogin)
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,max=72"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Phone     string `json:"phone" validate:"max=30"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type customerResponse struct {
	Customer  model.Customer `json:"customer"`
	ExpiresIn int            `json:"expiresIn"`
}

// POST /api/auth/register
func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterCustomerInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.setSessionCookie(c, out.SessionToken, out.ExpiresIn)
	return c.JSON(http.StatusCreated, customerResponse{Customer: out.Customer, ExpiresIn: out.ExpiresIn})
}

// POST /api/auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return writeError(c, err)
	}

	h.setSessionCookie(c, out.SessionToken, out.ExpiresIn)
	return c.JSON(http.StatusOK, customerResponse{Customer: out.Customer, ExpiresIn: out.ExpiresIn})
}

// POST /api/auth/logout
// cookieを消すだけ
func (h *AuthHandler) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// POST /api/admin/login
func (h *AuthHandler) adminLogin(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.adminLoginUC.Execute(c.Request().Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
