package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"magicstore/internal/errors"
	"magicstore/internal/model"
)

func TestSettingsService_GetOrCreateDefault(t *testing.T) {
	t.Run("creates defaults on first access", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("First", mock.Anything).Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Settings")).Return(nil)

		svc := NewSettingsService(repo, nil)
		settings, err := svc.GetOrCreateDefault(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "merchant@upi", settings.UPIID)
		assert.Equal(t, "Magic Of Arya", settings.UPIName)
		assert.Equal(t, "course_marketer", settings.SupportTelegramID)
		assert.Equal(t, "admin123", settings.AdminPassword)
		repo.AssertExpectations(t)
	})

	t.Run("returns stored row when present", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("First", mock.Anything).Return(&model.Settings{ID: 1, UPIID: "custom@upi"}, nil)

		svc := NewSettingsService(repo, nil)
		settings, err := svc.GetOrCreateDefault(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "custom@upi", settings.UPIID)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSettingsService_Update(t *testing.T) {
	stored := func() *model.Settings {
		return &model.Settings{
			ID:            1,
			UPIID:         "merchant@upi",
			UPIName:       "Magic Of Arya",
			AdminPassword: "admin123",
		}
	}

	t.Run("blank admin password keeps the stored one", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("First", mock.Anything).Return(stored(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Settings")).Return(nil)

		svc := NewSettingsService(repo, nil)
		settings, err := svc.Update(context.Background(), UpdateSettingsInput{
			UPIID:         "new@upi",
			UPIName:       "New Name",
			AdminPassword: "",
		})

		assert.NoError(t, err)
		assert.Equal(t, "new@upi", settings.UPIID)
		assert.Equal(t, "admin123", settings.AdminPassword)
	})

	t.Run("non-blank admin password overwrites", func(t *testing.T) {
		repo := new(MockSettingsRepository)
		repo.On("First", mock.Anything).Return(stored(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Settings")).Return(nil)

		svc := NewSettingsService(repo, nil)
		settings, err := svc.Update(context.Background(), UpdateSettingsInput{
			UPIID:         "merchant@upi",
			UPIName:       "Magic Of Arya",
			AdminPassword: "s3cret",
		})

		assert.NoError(t, err)
		assert.Equal(t, "s3cret", settings.AdminPassword)
	})
}

func TestSettingsCacheCodec_KeepsAdminPassword(t *testing.T) {
	// The model hides AdminPassword from API JSON; the cache codec must not,
	// or every cache hit would serve a row with a blank password and admin
	// login would break for the TTL.
	stored := model.DefaultSettings()
	stored.ID = 1

	payload, err := encodeSettings(stored)
	assert.NoError(t, err)

	cached, err := decodeSettings(payload)
	assert.NoError(t, err)
	assert.Equal(t, "admin123", cached.AdminPassword)
	assert.Equal(t, stored.UPIID, cached.UPIID)
	assert.Equal(t, stored.UPIName, cached.UPIName)
	assert.Equal(t, stored.BinanceQrURL, cached.BinanceQrURL)
	assert.Equal(t, stored.SupportTelegramID, cached.SupportTelegramID)
	assert.Equal(t, stored.ID, cached.ID)
}

func TestSettingsService_VerifyAdminPassword(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("First", mock.Anything).Return(&model.Settings{ID: 1, AdminPassword: "admin123"}, nil)
	svc := NewSettingsService(repo, nil)

	assert.NoError(t, svc.VerifyAdminPassword(context.Background(), "admin123"))
	assert.Equal(t, errors.ErrInvalidAdminPassword, svc.VerifyAdminPassword(context.Background(), "wrong"))
}
