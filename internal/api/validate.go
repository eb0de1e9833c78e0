package api

import (
	"errors" // Validation error values
	"math"   // Decimal precision check
	"strings"
	"time"

	"finance_tracker/internal/report" // Date-only truncation
)

// Validation failures surfaced to the client as 400s
var (
	errAmountNotPositive = errors.New("amount must be greater than zero")
	errAmountPrecision   = errors.New("amount cannot have more than two decimal places")
	errDescriptionLength = errors.New("description must be between 3 and 100 characters")
	errFutureDate        = errors.New("date cannot be in the future")
	errWindowInverted    = errors.New("end_date cannot be before start_date")
)

// validateAmount checks that an amount is positive with at most two
// decimal places. Invoked before any domain entity is constructed.
func validateAmount(amount float64) error {
	if amount <= 0 {
		return errAmountNotPositive // Zero and negative amounts are rejected
	}
	cents := amount * 100 // Two decimal places means whole cents
	if math.Abs(cents-math.Round(cents)) > 1e-6 {
		return errAmountPrecision // Sub-cent precision is rejected
	}
	return nil
}

// validateDescription trims the description and checks its length
func validateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description) // Blank padding never counts
	if len(trimmed) < 3 || len(trimmed) > 100 {
		return "", errDescriptionLength // Too short, blank, or too long
	}
	return trimmed, nil
}

// validateNotFuture rejects dates after today, date-only.
// Future-dated transactions must never reach the reports.
func validateNotFuture(date time.Time) error {
	if report.DateOf(date).After(report.DateOf(time.Now())) {
		return errFutureDate
	}
	return nil
}

// validateWindow rejects inverted [start, end] windows
func validateWindow(start, end time.Time) error {
	if end.Before(start) {
		return errWindowInverted
	}
	return nil
}

// parseDate accepts a plain date or an RFC 3339 timestamp
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil // Date-only form
	}
	return time.Parse(time.RFC3339, s) // Full timestamp form
}
