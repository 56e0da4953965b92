package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"magicstore/internal/errors"
	"magicstore/internal/model"
)

func testSettings() *model.Settings {
	return &model.Settings{
		UPIID:             "merchant@upi",
		UPIName:           "Magic Of Arya",
		SupportTelegramID: "course_marketer",
		AdminPassword:     "admin123",
	}
}

func newOrderServiceForTest() (*MockCourseRepository, *MockUserRepository, *MockOrderRepository, *MockSettingsService, OrderService) {
	courseRepo := new(MockCourseRepository)
	userRepo := new(MockUserRepository)
	orderRepo := new(MockOrderRepository)
	settings := new(MockSettingsService)
	svc := NewOrderService(courseRepo, userRepo, orderRepo, settings)
	return courseRepo, userRepo, orderRepo, settings, svc
}

func TestOrderService_CreateOrder(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()

	t.Run("course not found", func(t *testing.T) {
		courseRepo, _, orderRepo, _, svc := newOrderServiceForTest()
		courseRepo.On("FindByID", mock.Anything, courseID).Return(nil, gorm.ErrRecordNotFound)

		order, err := svc.CreateOrder(context.Background(), userID, courseID, model.PaymentMethodUPI)

		assert.Nil(t, order)
		assert.Equal(t, errors.ErrCourseNotFound, err)
		orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("user not found", func(t *testing.T) {
		courseRepo, userRepo, orderRepo, _, svc := newOrderServiceForTest()
		courseRepo.On("FindByID", mock.Anything, courseID).Return(&model.Course{
			ID:    courseID,
			Title: "Hypnosis Course",
			Price: decimal.NewFromInt(899),
		}, nil)
		userRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		// A session cookie can outlive an admin user deletion; the order must
		// not be created against the dangling user id.
		order, err := svc.CreateOrder(context.Background(), userID, courseID, model.PaymentMethodUPI)

		assert.Nil(t, order)
		assert.Equal(t, errors.ErrUserNotFound, err)
		orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("already owned creates no order", func(t *testing.T) {
		courseRepo, userRepo, orderRepo, _, svc := newOrderServiceForTest()
		courseRepo.On("FindByID", mock.Anything, courseID).Return(&model.Course{
			ID:    courseID,
			Title: "Hypnosis Course",
			Price: decimal.NewFromInt(899),
		}, nil)
		userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		userRepo.On("HasCourse", mock.Anything, userID, courseID).Return(true, nil)

		order, err := svc.CreateOrder(context.Background(), userID, courseID, model.PaymentMethodCard)

		assert.Nil(t, order)
		assert.Equal(t, errors.ErrAlreadyOwned, err)
		orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("upi order captures price and payment link", func(t *testing.T) {
		courseRepo, userRepo, orderRepo, settings, svc := newOrderServiceForTest()
		courseRepo.On("FindByID", mock.Anything, courseID).Return(&model.Course{
			ID:    courseID,
			Title: "Hypnosis Course",
			Price: decimal.NewFromInt(899),
		}, nil)
		userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		userRepo.On("HasCourse", mock.Anything, userID, courseID).Return(false, nil)
		settings.On("GetOrCreateDefault", mock.Anything).Return(testSettings(), nil)
		orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

		order, err := svc.CreateOrder(context.Background(), userID, courseID, model.PaymentMethodUPI)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
		assert.True(t, order.Amount.Equal(decimal.NewFromInt(899)))
		assert.Equal(t,
			"upi://pay?pa=merchant%40upi&pn=Magic+Of+Arya&am=899.00&cu=INR&tn=Payment+for+Hypnosis+Course",
			order.UPIPaymentLink)
		orderRepo.AssertExpectations(t)
	})

	t.Run("pending order does not block a second create", func(t *testing.T) {
		courseRepo, userRepo, orderRepo, settings, svc := newOrderServiceForTest()
		courseRepo.On("FindByID", mock.Anything, courseID).Return(&model.Course{
			ID:    courseID,
			Title: "Hypnosis Course",
			Price: decimal.NewFromInt(899),
		}, nil)
		userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		userRepo.On("HasCourse", mock.Anything, userID, courseID).Return(false, nil)
		settings.On("GetOrCreateDefault", mock.Anything).Return(testSettings(), nil)
		orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

		first, err := svc.CreateOrder(context.Background(), userID, courseID, model.PaymentMethodUPI)
		assert.NoError(t, err)
		second, err := svc.CreateOrder(context.Background(), userID, courseID, model.PaymentMethodUPI)
		assert.NoError(t, err)

		assert.NotNil(t, first)
		assert.NotNil(t, second)
		orderRepo.AssertNumberOfCalls(t, "Create", 2)
	})
}

func TestOrderService_SubmitCardPayment(t *testing.T) {
	orderID := uuid.New()

	t.Run("order not found", func(t *testing.T) {
		_, _, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(nil, gorm.ErrRecordNotFound)

		result, err := svc.SubmitCardPayment(context.Background(), orderID, "4111111111111111", "Test User", "12/30", "123")

		assert.Nil(t, result)
		assert.Equal(t, errors.ErrOrderNotFound, err)
	})

	t.Run("valid-looking card still fails", func(t *testing.T) {
		_, _, orderRepo, settings, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(&model.Order{
			ID:            orderID,
			PaymentMethod: model.PaymentMethodCard,
			PaymentStatus: model.PaymentStatusPending,
		}, nil)
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
		settings.On("GetOrCreateDefault", mock.Anything).Return(testSettings(), nil)

		result, err := svc.SubmitCardPayment(context.Background(), orderID, "4111111111111111", "Test User", "12/30", "123")

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, result.Order.PaymentStatus)
		assert.Equal(t, "course_marketer", result.SupportContact)
		// Submitted fields are retained verbatim.
		assert.Equal(t, "4111111111111111", result.Order.CardNumber)
		assert.Equal(t, "Test User", result.Order.CardHolderName)
		assert.Equal(t, "12/30", result.Order.CardExpiry)
		assert.Equal(t, "123", result.Order.CardCVV)
	})
}

func TestOrderService_SubmitUPITransaction(t *testing.T) {
	orderID := uuid.New()

	t.Run("order not found", func(t *testing.T) {
		_, _, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(nil, gorm.ErrRecordNotFound)

		order, err := svc.SubmitUPITransaction(context.Background(), orderID, "TXN123")

		assert.Nil(t, order)
		assert.Equal(t, errors.ErrOrderNotFound, err)
	})

	t.Run("stores transaction id and stays pending", func(t *testing.T) {
		_, _, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(&model.Order{
			ID:            orderID,
			PaymentMethod: model.PaymentMethodUPI,
			PaymentStatus: model.PaymentStatusPending,
		}, nil)
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

		order, err := svc.SubmitUPITransaction(context.Background(), orderID, "TXN123")

		assert.NoError(t, err)
		assert.Equal(t, "TXN123", order.UPITransactionID)
		assert.Equal(t, model.PaymentStatusPending, order.PaymentStatus)
	})
}

func TestOrderService_SetStatus(t *testing.T) {
	orderID := uuid.New()
	userID := uuid.New()
	courseID := uuid.New()

	pendingOrder := func() *model.Order {
		return &model.Order{
			ID:            orderID,
			UserID:        userID,
			CourseID:      courseID,
			PaymentStatus: model.PaymentStatusPending,
		}
	}

	t.Run("unknown status rejected", func(t *testing.T) {
		_, _, _, _, svc := newOrderServiceForTest()

		order, err := svc.SetStatus(context.Background(), orderID, model.PaymentStatus("refunded"))

		assert.Nil(t, order)
		assert.Equal(t, errors.ErrInvalidStatus, err)
	})

	t.Run("order not found", func(t *testing.T) {
		_, _, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(nil, gorm.ErrRecordNotFound)

		order, err := svc.SetStatus(context.Background(), orderID, model.PaymentStatusCompleted)

		assert.Nil(t, order)
		assert.Equal(t, errors.ErrOrderNotFound, err)
	})

	t.Run("completed grants entitlement", func(t *testing.T) {
		_, userRepo, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(pendingOrder(), nil)
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
		userRepo.On("HasCourse", mock.Anything, userID, courseID).Return(false, nil)
		userRepo.On("AddCourse", mock.Anything, userID, courseID).Return(nil)

		order, err := svc.SetStatus(context.Background(), orderID, model.PaymentStatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, order.PaymentStatus)
		userRepo.AssertCalled(t, "AddCourse", mock.Anything, userID, courseID)
	})

	t.Run("completing twice grants entitlement once", func(t *testing.T) {
		_, userRepo, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(pendingOrder(), nil)
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
		userRepo.On("HasCourse", mock.Anything, userID, courseID).Return(false, nil).Once()
		userRepo.On("HasCourse", mock.Anything, userID, courseID).Return(true, nil).Once()
		userRepo.On("AddCourse", mock.Anything, userID, courseID).Return(nil).Once()

		_, err := svc.SetStatus(context.Background(), orderID, model.PaymentStatusCompleted)
		assert.NoError(t, err)
		_, err = svc.SetStatus(context.Background(), orderID, model.PaymentStatusCompleted)
		assert.NoError(t, err)

		userRepo.AssertNumberOfCalls(t, "AddCourse", 1)
	})

	t.Run("failed does not touch entitlement", func(t *testing.T) {
		_, userRepo, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(pendingOrder(), nil)
		orderRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

		order, err := svc.SetStatus(context.Background(), orderID, model.PaymentStatusFailed)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, order.PaymentStatus)
		userRepo.AssertNotCalled(t, "AddCourse", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	orderID := uuid.New()

	t.Run("order not found", func(t *testing.T) {
		_, _, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeleteOrder(context.Background(), orderID)

		assert.Equal(t, errors.ErrOrderNotFound, err)
	})

	t.Run("deletes without revoking entitlement", func(t *testing.T) {
		_, userRepo, orderRepo, _, svc := newOrderServiceForTest()
		orderRepo.On("FindByID", mock.Anything, orderID).Return(&model.Order{
			ID:            orderID,
			PaymentStatus: model.PaymentStatusCompleted,
		}, nil)
		orderRepo.On("Delete", mock.Anything, orderID).Return(nil)

		err := svc.DeleteOrder(context.Background(), orderID)

		assert.NoError(t, err)
		orderRepo.AssertCalled(t, "Delete", mock.Anything, orderID)
		userRepo.AssertNotCalled(t, "AddCourse", mock.Anything, mock.Anything, mock.Anything)
	})
}
