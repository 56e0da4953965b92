package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"magicstore/internal/errors"
	"magicstore/internal/service"
	"magicstore/internal/session"
)

// AuthHandler handles buyer and admin authentication endpoints.
type AuthHandler struct {
	authService     service.AuthService
	settingsService service.SettingsService
	sessions        *session.Manager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, settingsService service.SettingsService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		settingsService: settingsService,
		sessions:        sessions,
	}
}

// LoginRequest is the storefront login triple.
type LoginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest represents a new account submission.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AdminLoginRequest carries the shared admin secret.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the success/message body the storefront scripts expect.
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    interface{} `json:"user,omitempty"`
}

// Login godoc
// @Summary Log a buyer in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Login(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if err == errors.ErrInvalidCredentials {
			return c.JSON(http.StatusOK, AuthResponse{
				Success: false,
				Message: "Invalid credentials. Please try again.",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	if err := h.sessions.SetUser(c, user.ID, user.Name, user.Email); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to establish session",
			Code:  "SESSION_FAILED",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful! Welcome back.",
		User:    user,
	})
}

// Signup godoc
// @Summary Create a buyer account and log it in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if err == errors.ErrEmailTaken {
			return c.JSON(http.StatusOK, AuthResponse{
				Success: false,
				Message: "This email is already registered. Please log in.",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to sign up",
			Code:  "SIGNUP_FAILED",
		})
	}

	// Auto-login after signup.
	if err := h.sessions.SetUser(c, user.ID, user.Name, user.Email); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to establish session",
			Code:  "SESSION_FAILED",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Account created! You are now logged in.",
		User:    user,
	})
}

// Logout godoc
// @Summary Destroy the current session
// @Tags auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to clear session",
			Code:  "SESSION_FAILED",
		})
	}
	return c.JSON(http.StatusOK, AuthResponse{Success: true})
}

// AdminLogin godoc
// @Summary Authenticate the admin session flag
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin password"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.settingsService.VerifyAdminPassword(c.Request().Context(), req.Password); err != nil {
		if err == errors.ErrInvalidAdminPassword {
			return c.JSON(http.StatusOK, AuthResponse{
				Success: false,
				Message: "Invalid password.",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to verify admin password",
			Code:  "ADMIN_LOGIN_FAILED",
		})
	}

	if err := h.sessions.SetAdmin(c, true); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to establish session",
			Code:  "SESSION_FAILED",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{Success: true, Message: "Admin access granted."})
}

// AdminLogout godoc
// @Summary Drop the admin session flag
// @Tags admin
// @Produce json
// @Success 200 {object} AuthResponse
// @Router /admin/logout [post]
func (h *AuthHandler) AdminLogout(c echo.Context) error {
	if err := h.sessions.SetAdmin(c, false); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to clear session",
			Code:  "SESSION_FAILED",
		})
	}
	return c.JSON(http.StatusOK, AuthResponse{Success: true})
}
