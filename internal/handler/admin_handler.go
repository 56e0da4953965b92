package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"magicstore/internal/errors"
	"magicstore/internal/model"
	"magicstore/internal/service"
)

// AdminHandler handles the admin panel's order, user and settings endpoints.
type AdminHandler struct {
	orderService    service.OrderService
	userService     service.UserService
	settingsService service.SettingsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(orderService service.OrderService, userService service.UserService, settingsService service.SettingsService) *AdminHandler {
	return &AdminHandler{
		orderService:    orderService,
		userService:     userService,
		settingsService: settingsService,
	}
}

// SetOrderStatusRequest is the admin approval action.
type SetOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed failed expired"`
}

// UpdateSettingsRequest carries the admin settings form. A blank
// adminPassword keeps the stored one.
type UpdateSettingsRequest struct {
	UPIID             string `json:"upiId" validate:"required"`
	UPIName           string `json:"upiName" validate:"required"`
	BinanceWallet     string `json:"binanceWallet"`
	BinanceQrURL      string `json:"binanceQrUrl"`
	SupportTelegramID string `json:"supportTelegramId"`
	AdminPassword     string `json:"adminPassword"`
}

// AdminActionResponse is the generic success body for admin mutations.
type AdminActionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Order   interface{} `json:"order,omitempty"`
}

// ListOrders godoc
// @Summary List all orders
// @Tags admin
// @Produce json
// @Success 200 {array} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderService.ListOrders(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, orders)
}

// SetOrderStatus godoc
// @Summary Overwrite an order's payment status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body SetOrderStatusRequest true "New status"
// @Success 200 {object} AdminActionResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/status [put]
func (h *AdminHandler) SetOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid order id",
			Code:  "INVALID_UUID",
		})
	}

	var req SetOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orderService.SetStatus(c.Request().Context(), orderID, model.PaymentStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AdminActionResponse{Success: true, Order: order})
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} AdminActionResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id} [delete]
func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid order id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), orderID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, AdminActionResponse{Success: true})
}

// ListUsers godoc
// @Summary List all buyer accounts
// @Tags admin
// @Produce json
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser godoc
// @Summary Delete a buyer account and cascade its orders
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} AdminActionResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.userService.DeleteUser(c.Request().Context(), userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, AdminActionResponse{Success: true})
}

// GetSettings godoc
// @Summary Get the payment settings
// @Tags admin
// @Produce json
// @Success 200 {object} model.Settings
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.GetOrCreateDefault(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Update payment destinations and the admin password
// @Tags admin
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Settings data"
// @Success 200 {object} AdminActionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/settings [put]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.settingsService.Update(c.Request().Context(), service.UpdateSettingsInput{
		UPIID:             req.UPIID,
		UPIName:           req.UPIName,
		BinanceWallet:     req.BinanceWallet,
		BinanceQrURL:      req.BinanceQrURL,
		SupportTelegramID: req.SupportTelegramID,
		AdminPassword:     req.AdminPassword,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, AdminActionResponse{Success: true, Message: "Settings saved."})
}
