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

// UserService handles admin-side account operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) UserService {
	return &userService{userRepo: userRepo, orderRepo: orderRepo}
}

// GetUser returns a user with their entitlement list.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ListUsers lists all accounts for the admin panel.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes the account and cascades to its orders. Courses are
// unaffected.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.orderRepo.DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("delete user orders: %w", err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
