package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"magicstore/internal/errors"
	"magicstore/internal/model"
	"magicstore/internal/repository"
)

// CardPaymentResult is returned by SubmitCardPayment. Status is always
// failed (no card processor is integrated); SupportContact gives the payer
// a manual follow-up channel.
type CardPaymentResult struct {
	Order          *model.Order
	SupportContact string
}

// OrderService implements the order/payment lifecycle and the entitlement
// grant on completion.
type OrderService interface {
	CreateOrder(ctx context.Context, userID, courseID uuid.UUID, method model.PaymentMethod) (*model.Order, error)
	SubmitCardPayment(ctx context.Context, orderID uuid.UUID, cardNumber, cardHolderName, expiryDate, cvv string) (*CardPaymentResult, error)
	SubmitUPITransaction(ctx context.Context, orderID uuid.UUID, transactionID string) (*model.Order, error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
}

type orderService struct {
	courseRepo repository.CourseRepository
	userRepo   repository.UserRepository
	orderRepo  repository.OrderRepository
	settings   SettingsService
}

// NewOrderService creates a new order service.
func NewOrderService(
	courseRepo repository.CourseRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	settings SettingsService,
) OrderService {
	return &orderService{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		orderRepo:  orderRepo,
		settings:   settings,
	}
}

// CreateOrder opens a pending order for the course, capturing the current
// price as the order amount. The guard is on entitlement only: multiple
// pending orders for the same (user, course) are allowed. UPI orders get
// their payment-request link computed here so the checkout page can show it.
func (s *orderService) CreateOrder(ctx context.Context, userID, courseID uuid.UUID, method model.PaymentMethod) (*model.Order, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	// A stale session can outlive an admin user deletion; refuse to open an
	// order against a user record that no longer resolves.
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	owned, err := s.userRepo.HasCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("check entitlement: %w", err)
	}
	if owned {
		return nil, errors.ErrAlreadyOwned
	}

	order := &model.Order{
		UserID:        userID,
		CourseID:      courseID,
		Amount:        course.Price,
		PaymentMethod: method,
		PaymentStatus: model.PaymentStatusPending,
	}

	if method == model.PaymentMethodUPI {
		settings, err := s.settings.GetOrCreateDefault(ctx)
		if err != nil {
			return nil, err
		}
		order.UPIPaymentLink = BuildUPIPaymentLink(settings.UPIID, settings.UPIName, order.Amount, course.Title)
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// SubmitCardPayment records the submitted card fields verbatim and marks the
// order failed unconditionally. No card processor is integrated; the flow
// always reports failure to the payer and hands them the support contact.
func (s *orderService) SubmitCardPayment(ctx context.Context, orderID uuid.UUID, cardNumber, cardHolderName, expiryDate, cvv string) (*CardPaymentResult, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.CardNumber = cardNumber
	order.CardHolderName = cardHolderName
	order.CardExpiry = expiryDate
	order.CardCVV = cvv
	order.PaymentStatus = model.PaymentStatusFailed

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	settings, err := s.settings.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}

	return &CardPaymentResult{
		Order:          order,
		SupportContact: settings.SupportTelegramID,
	}, nil
}

// SubmitUPITransaction stores the payer-supplied transaction id and leaves
// the order pending: the id hands the order to manual admin review, it does
// not advance the status.
func (s *orderService) SubmitUPITransaction(ctx context.Context, orderID uuid.UUID, transactionID string) (*model.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.UPITransactionID = transactionID
	order.PaymentStatus = model.PaymentStatusPending

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

// SetStatus overwrites the order status unconditionally; any edge is
// allowed, there is no transition table. Completion is the sole place
// entitlement is granted, and the grant is check-then-add so repeated
// completions stay idempotent.
func (s *orderService) SetStatus(ctx context.Context, orderID uuid.UUID, status model.PaymentStatus) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, errors.ErrInvalidStatus
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	if status == model.PaymentStatusCompleted {
		owned, err := s.userRepo.HasCourse(ctx, order.UserID, order.CourseID)
		if err != nil {
			return nil, fmt.Errorf("check entitlement: %w", err)
		}
		if !owned {
			if err := s.userRepo.AddCourse(ctx, order.UserID, order.CourseID); err != nil {
				return nil, fmt.Errorf("grant entitlement: %w", err)
			}
		}
	}

	return order, nil
}

// DeleteOrder removes the order. Entitlement already granted stays granted.
func (s *orderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.findOrder(ctx, orderID); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, orderID)
}

// GetOrder returns a single order.
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	return s.findOrder(ctx, orderID)
}

// ListOrders lists all orders for the admin panel.
func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	return s.orderRepo.List(ctx)
}

// ListOrdersByUser lists a buyer's own orders.
func (s *orderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderService) findOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}
