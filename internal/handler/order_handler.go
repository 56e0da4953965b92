package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"magicstore/internal/errors"
	"magicstore/internal/model"
	"magicstore/internal/service"
	"magicstore/internal/session"
)

// OrderHandler handles the buyer-facing checkout endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest starts checkout for a course.
type CreateOrderRequest struct {
	CourseID      string `json:"courseId" validate:"required,uuid"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=upi card"`
}

// UPITransactionRequest submits the payer's UPI transaction id.
type UPITransactionRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
}

// CardPaymentRequest submits card details for an order.
type CardPaymentRequest struct {
	CardNumber     string `json:"cardNumber" validate:"required"`
	CardHolderName string `json:"cardHolderName" validate:"required"`
	ExpiryDate     string `json:"expiryDate" validate:"required"`
	CVV            string `json:"cvv" validate:"required"`
}

// OrderResponse is the checkout response body.
type OrderResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	OrderID        string `json:"orderId,omitempty"`
	Status         string `json:"status,omitempty"`
	UPIPaymentLink string `json:"upiPaymentLink,omitempty"`
	ExpiresAt      string `json:"expiresAt,omitempty"`
	SupportContact string `json:"supportContact,omitempty"`
}

// CreateOrder godoc
// @Summary Create a pending order for a course
// @Tags orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "Checkout data"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, ok := session.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "login required",
			Code:  "UNAUTHORIZED",
		})
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid course id",
			Code:  "INVALID_UUID",
		})
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), userID, courseID, model.PaymentMethod(req.PaymentMethod))
	if err != nil {
		if err == errors.ErrAlreadyOwned {
			return c.JSON(http.StatusOK, OrderResponse{
				Success: false,
				Message: "You already own this course.",
			})
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, OrderResponse{
		Success:        true,
		OrderID:        order.ID.String(),
		Status:         string(order.PaymentStatus),
		UPIPaymentLink: order.UPIPaymentLink,
		ExpiresAt:      order.ExpiresAt.Format(time.RFC3339),
	})
}

// SubmitUPITransaction godoc
// @Summary Submit a UPI transaction id for manual review
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body UPITransactionRequest true "Transaction id"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/upi [post]
func (h *OrderHandler) SubmitUPITransaction(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid order id",
			Code:  "INVALID_UUID",
		})
	}

	var req UPITransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orderService.SubmitUPITransaction(c.Request().Context(), orderID, req.TransactionID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, OrderResponse{
		Success: true,
		Message: "Payment submitted. Awaiting admin approval.",
		OrderID: order.ID.String(),
		Status:  string(order.PaymentStatus),
	})
}

// SubmitCardPayment godoc
// @Summary Submit card details for an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body CardPaymentRequest true "Card data"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/card [post]
func (h *OrderHandler) SubmitCardPayment(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid order id",
			Code:  "INVALID_UUID",
		})
	}

	var req CardPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.orderService.SubmitCardPayment(c.Request().Context(), orderID,
		req.CardNumber, req.CardHolderName, req.ExpiryDate, req.CVV)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Card payments always fail; the payer is pointed at support.
	return c.JSON(http.StatusOK, OrderResponse{
		Success:        false,
		Message:        "Card payment failed. Please contact support to complete your purchase.",
		OrderID:        result.Order.ID.String(),
		Status:         string(result.Order.PaymentStatus),
		SupportContact: result.SupportContact,
	})
}

// MyOrders godoc
// @Summary List the logged-in buyer's orders
// @Tags orders
// @Produce json
// @Success 200 {array} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders/my [get]
func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, ok := session.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "login required",
			Code:  "UNAUTHORIZED",
		})
	}

	orders, err := h.orderService.ListOrdersByUser(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, orders)
}
