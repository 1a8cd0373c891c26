package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories an expense can be classified into. The AI categorizer is
// constrained to this list, so keep it in sync with the prompt builder.
var Categories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Travel",
	"Education",
	"Groceries",
	"Personal Care",
	"Home & Garden",
	"Insurance",
	"Investments",
	"Gifts & Donations",
	"Business",
	"Other",
}

const CategoryOther = "Other"

// PaymentMethods supported on an expense.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"UPI",
	"Net Banking",
	"Other",
}

const PaymentMethodCash = "Cash"

// Expense is a single spending record owned by a user.
// Amounts are stored as fixed-point decimals, never floats.
type Expense struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"index;not null" json:"-"`
	Title         string          `gorm:"size:100;not null" json:"title"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category      string          `gorm:"size:32;index;not null;default:Other" json:"category"`
	Description   string          `gorm:"size:500" json:"description,omitempty"`
	Date          time.Time       `gorm:"index;not null" json:"date"`
	PaymentMethod string          `gorm:"size:32;not null;default:Cash" json:"paymentMethod"`
	IsRecurring   bool            `gorm:"default:false" json:"isRecurring"`
	Tags          []string        `gorm:"serializer:json" json:"tags,omitempty"`

	// Populated after the fact by the AI categorizer.
	AICategory    string   `gorm:"size:32" json:"aiCategory,omitempty"`
	AIConfidence  *float64 `json:"aiConfidence,omitempty"`
	AISuggestions string   `gorm:"size:500" json:"aiSuggestions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidCategory reports whether name is one of the fixed categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ValidPaymentMethod reports whether name is a supported payment method.
func ValidPaymentMethod(name string) bool {
	for _, m := range PaymentMethods {
		if m == name {
			return true
		}
	}
	return false
}
