package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"magicstore/internal/cache"
	"magicstore/internal/errors"
	"magicstore/internal/model"
	"magicstore/internal/repository"
)

const (
	settingsCacheKey = "settings"
	settingsCacheTTL = 5 * time.Minute
)

// settingsCacheEntry is the cache codec for the settings row. The model tags
// AdminPassword `json:"-"` to keep it out of API responses, so marshaling the
// model directly would drop the password on every cache hit; the cache must
// carry the full row.
type settingsCacheEntry struct {
	ID                uint      `json:"id"`
	UPIID             string    `json:"upiId"`
	UPIName           string    `json:"upiName"`
	BinanceWallet     string    `json:"binanceWallet"`
	BinanceQrURL      string    `json:"binanceQrUrl"`
	SupportTelegramID string    `json:"supportTelegramId"`
	AdminPassword     string    `json:"adminPassword"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func encodeSettings(s *model.Settings) ([]byte, error) {
	return json.Marshal(settingsCacheEntry{
		ID:                s.ID,
		UPIID:             s.UPIID,
		UPIName:           s.UPIName,
		BinanceWallet:     s.BinanceWallet,
		BinanceQrURL:      s.BinanceQrURL,
		SupportTelegramID: s.SupportTelegramID,
		AdminPassword:     s.AdminPassword,
		UpdatedAt:         s.UpdatedAt,
	})
}

func decodeSettings(data []byte) (*model.Settings, error) {
	var entry settingsCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &model.Settings{
		ID:                entry.ID,
		UPIID:             entry.UPIID,
		UPIName:           entry.UPIName,
		BinanceWallet:     entry.BinanceWallet,
		BinanceQrURL:      entry.BinanceQrURL,
		SupportTelegramID: entry.SupportTelegramID,
		AdminPassword:     entry.AdminPassword,
		UpdatedAt:         entry.UpdatedAt,
	}, nil
}

// UpdateSettingsInput carries the admin settings form. AdminPassword is only
// applied when non-blank, so saving the form without retyping the password
// keeps the stored one.
type UpdateSettingsInput struct {
	UPIID             string
	UPIName           string
	BinanceWallet     string
	BinanceQrURL      string
	SupportTelegramID string
	AdminPassword     string
}

// SettingsService handles the global settings record.
type SettingsService interface {
	GetOrCreateDefault(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, input UpdateSettingsInput) (*model.Settings, error)
	VerifyAdminPassword(ctx context.Context, password string) error
}

type settingsService struct {
	repo  repository.SettingsRepository
	cache *cache.Client
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository, cache *cache.Client) SettingsService {
	return &settingsService{repo: repo, cache: cache}
}

// GetOrCreateDefault returns the settings row, creating it with defaults on
// first access.
func (s *settingsService) GetOrCreateDefault(ctx context.Context) (*model.Settings, error) {
	if data, _ := s.cache.Get(ctx, settingsCacheKey); data != nil {
		if cached, err := decodeSettings(data); err == nil {
			return cached, nil
		}
	}

	settings, err := s.repo.First(ctx)
	if err == gorm.ErrRecordNotFound {
		settings = model.DefaultSettings()
		if err := s.repo.Create(ctx, settings); err != nil {
			return nil, fmt.Errorf("create default settings: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if payload, err := encodeSettings(settings); err == nil {
		_ = s.cache.Set(ctx, settingsCacheKey, payload, settingsCacheTTL)
	}
	return settings, nil
}

// Update overwrites the payment destinations and support handle. The admin
// password is kept when the submitted value is blank.
func (s *settingsService) Update(ctx context.Context, input UpdateSettingsInput) (*model.Settings, error) {
	settings, err := s.GetOrCreateDefault(ctx)
	if err != nil {
		return nil, err
	}

	settings.UPIID = input.UPIID
	settings.UPIName = input.UPIName
	settings.BinanceWallet = input.BinanceWallet
	settings.BinanceQrURL = input.BinanceQrURL
	settings.SupportTelegramID = input.SupportTelegramID
	if input.AdminPassword != "" {
		settings.AdminPassword = input.AdminPassword
	}
	settings.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	_ = s.cache.Delete(ctx, settingsCacheKey)
	return settings, nil
}

// VerifyAdminPassword checks the shared admin secret.
func (s *settingsService) VerifyAdminPassword(ctx context.Context, password string) error {
	settings, err := s.GetOrCreateDefault(ctx)
	if err != nil {
		return err
	}
	if password != settings.AdminPassword {
		return errors.ErrInvalidAdminPassword
	}
	return nil
}
