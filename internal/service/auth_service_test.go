package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"magicstore/internal/errors"
	"magicstore/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		loginName     string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:      "bypass credential materializes its user",
			loginName: "omkar",
			email:     "rohan@gmail.com",
			password:  "Rohan@123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmailOrCreate", mock.Anything, mock.AnythingOfType("*model.User")).
					Return(&model.User{ID: uuid.New(), Name: "omkar", Email: "rohan@gmail.com"}, nil)
			},
			expectedError: nil,
		},
		{
			name:      "stored account with correct password",
			loginName: "Test User",
			email:     "test@example.com",
			password:  "password123",
			setupMock: func(m *MockUserRepository) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "test@example.com",
					PasswordHash: string(hash),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:      "stored account with wrong password",
			loginName: "Test User",
			email:     "test@example.com",
			password:  "wrong-password",
			setupMock: func(m *MockUserRepository) {
				hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					Email:        "test@example.com",
					PasswordHash: string(hash),
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:      "unknown email",
			loginName: "Nobody",
			email:     "nobody@example.com",
			password:  "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:      "bypass email with wrong password falls through to store",
			loginName: "omkar",
			email:     "rohan@gmail.com",
			password:  "not-the-bypass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "rohan@gmail.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo)
			user, err := svc.Login(context.Background(), tt.loginName, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful signup",
			email: "new@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "email already registered",
			email: "existing@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo)
			user, err := svc.Signup(context.Background(), "Test User", tt.email, "password123")

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				// Stored hash must verify, and must not be the raw password.
				assert.NotEqual(t, "password123", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
