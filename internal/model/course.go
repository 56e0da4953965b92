package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CourseCategory is the closed set of catalog categories.
type CourseCategory string

const (
	CategoryMentalism CourseCategory = "mentalism"
	CategoryHypnosis  CourseCategory = "hypnosis"
	CategoryMagic     CourseCategory = "magic"
	CategoryLive      CourseCategory = "live"
	CategoryWorkshop  CourseCategory = "workshop"
	CategoryBundle    CourseCategory = "bundle"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c CourseCategory) bool {
	switch c {
	case CategoryMentalism, CategoryHypnosis, CategoryMagic, CategoryLive, CategoryWorkshop, CategoryBundle:
		return true
	}
	return false
}

// Course represents a purchasable course in the catalog.
type Course struct {
	ID            uuid.UUID           `json:"id" gorm:"type:char(36);primaryKey"`
	Title         string              `json:"title" gorm:"size:255;not null"`
	Description   string              `json:"description" gorm:"type:text;not null"`
	Price         decimal.Decimal     `json:"price" gorm:"type:decimal(20,2);not null"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice" gorm:"type:decimal(20,2)"` // null means no discount shown
	Category      CourseCategory      `json:"category" gorm:"type:varchar(20);not null;index"`
	Image         string              `json:"image" gorm:"size:255;not null"`
	Features      []string            `json:"features" gorm:"serializer:json;type:text"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
