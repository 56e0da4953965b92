package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod is the payment channel chosen at checkout.
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// PaymentStatus represents the status of an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusExpired:
		return true
	}
	return false
}

// OrderExpiryWindow is the intended payment window stamped on new orders.
// Nothing sweeps expired orders; the timestamp is stored for the checkout UI.
const OrderExpiryWindow = 10 * time.Minute

// Order represents a purchase attempt for a single course.
type Order struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	CourseID      uuid.UUID       `json:"course_id" gorm:"type:char(36);not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"` // captured from course price at creation
	PaymentMethod PaymentMethod   `json:"paymentMethod" gorm:"type:varchar(10);not null"`
	PaymentStatus PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);not null;default:'pending';index"`

	// UPI payment details
	UPITransactionID string `json:"upiTransactionId,omitempty" gorm:"size:255"`
	UPIPaymentLink   string `json:"upiPaymentLink,omitempty" gorm:"size:512"`

	// Card payment details, stored verbatim as submitted
	CardNumber     string `json:"-" gorm:"size:19"`
	CardHolderName string `json:"-" gorm:"size:255"`
	CardExpiry     string `json:"-" gorm:"size:5"`
	CardCVV        string `json:"-" gorm:"size:4"`

	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Course Course `json:"-" gorm:"foreignKey:CourseID"`
}

// BeforeCreate sets the UUID and the payment window before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.ExpiresAt.IsZero() {
		o.ExpiresAt = time.Now().Add(OrderExpiryWindow)
	}
	return nil
}
