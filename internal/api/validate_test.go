package api

import (
	"strings"
	"testing"
	"time"

	"finance_tracker/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		wantErr error
	}{
		{"whole amount", 10, nil},
		{"two decimal places", 10.99, nil},
		{"one decimal place", 0.5, nil},
		{"zero", 0, errAmountNotPositive},
		{"negative", -5, errAmountNotPositive},
		{"three decimal places", 10.123, errAmountPrecision},
		{"sub-cent fraction", 0.001, errAmountPrecision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, validateAmount(tt.amount))
		})
	}
}

func TestValidateAmountFloatNoise(t *testing.T) {
	// Binary float noise on a legal two-decimal amount must not be rejected
	assert.NoError(t, validateAmount(0.1+0.2))
}

func TestValidateDescription(t *testing.T) {
	trimmed, err := validateDescription("  weekly groceries  ")
	require.NoError(t, err)
	assert.Equal(t, "weekly groceries", trimmed)

	_, err = validateDescription("ab")
	assert.Equal(t, errDescriptionLength, err)

	// Whitespace padding does not count toward the minimum
	_, err = validateDescription("   a   ")
	assert.Equal(t, errDescriptionLength, err)

	_, err = validateDescription(strings.Repeat("x", 101))
	assert.Equal(t, errDescriptionLength, err)

	_, err = validateDescription(strings.Repeat("x", 100))
	assert.NoError(t, err)
}

func TestValidateNotFuture(t *testing.T) {
	assert.NoError(t, validateNotFuture(time.Now()))
	assert.NoError(t, validateNotFuture(time.Now().AddDate(0, 0, -1)))
	// Later today is still today, date-only
	today := report.DateOf(time.Now())
	assert.NoError(t, validateNotFuture(today.Add(23*time.Hour+59*time.Minute)))
	assert.Equal(t, errFutureDate, validateNotFuture(time.Now().AddDate(0, 0, 2)))
}

func TestValidateWindow(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, validateWindow(start, end))
	assert.NoError(t, validateWindow(start, start)) // Single-day window
	assert.Equal(t, errWindowInverted, validateWindow(end, start))
}

func TestParseDate(t *testing.T) {
	parsed, err := parseDate("2024-05-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = parseDate("2024-05-20T14:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, parsed.Hour())

	_, err = parseDate("20/05/2024")
	assert.Error(t, err)
}
