package model

import "time"

// Settings is the single global record of payment destinations and the
// admin password. Exactly one row is expected; access goes through the
// find-or-create-default pattern in the settings repository.
type Settings struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UPIID             string    `json:"upiId" gorm:"size:255"`
	UPIName           string    `json:"upiName" gorm:"size:255"`
	BinanceWallet     string    `json:"binanceWallet" gorm:"size:255"`
	BinanceQrURL      string    `json:"binanceQrUrl" gorm:"size:255"`
	SupportTelegramID string    `json:"supportTelegramId" gorm:"size:255"`
	AdminPassword     string    `json:"-" gorm:"size:255"` // Never expose in JSON
	UpdatedAt         time.Time `json:"updatedAt"`
}

// DefaultSettings returns the settings row created lazily on first access.
func DefaultSettings() *Settings {
	return &Settings{
		UPIID:             "merchant@upi",
		UPIName:           "Magic Of Arya",
		BinanceWallet:     "",
		BinanceQrURL:      "/images/binance-qr-placeholder.png",
		SupportTelegramID: "course_marketer",
		AdminPassword:     "admin123",
	}
}
