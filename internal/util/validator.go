package util

import (
	"time"

	"github.com/kumarimahto/Smart-Tracer/internal/models"

	"github.com/shopspring/decimal"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500

	// Sanity cap so a typo cannot record a ten-million expense.
	maxAmount = 10_000_000
)

// ValidateExpenseInput checks expense field constraints and returns one
// message per failing field. An empty slice means the input is valid.
func ValidateExpenseInput(title string, amount decimal.Decimal, category, description, paymentMethod string) []string {
	var errs []string

	if title == "" {
		errs = append(errs, "Expense title is required")
	} else if len(title) > maxTitleLen {
		errs = append(errs, "Title cannot exceed 100 characters")
	}

	if amount.Sign() <= 0 {
		errs = append(errs, "Amount must be greater than 0")
	} else if amount.GreaterThanOrEqual(decimal.NewFromInt(maxAmount)) {
		errs = append(errs, "Amount is too large")
	}

	if category != "" && !models.ValidCategory(category) {
		errs = append(errs, "Category must be one of the supported categories")
	}

	if len(description) > maxDescriptionLen {
		errs = append(errs, "Description cannot exceed 500 characters")
	}

	if paymentMethod != "" && !models.ValidPaymentMethod(paymentMethod) {
		errs = append(errs, "Payment method must be one of the supported methods")
	}

	return errs
}

// dateLayouts accepted on input, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date string in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
