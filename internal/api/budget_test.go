package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance_tracker/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBudgetWindowOmittedStartKeepsDefault(t *testing.T) {
	// Updating only the amount must not move the window to today
	storedStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	req := BudgetRequest{Amount: 200, CategoryID: 1, EndDate: "2025-12-31"}

	start, end, err := resolveBudgetWindow(req, storedStart)

	require.NoError(t, err)
	assert.Equal(t, storedStart, start)
	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveBudgetWindowExplicitStartOverridesDefault(t *testing.T) {
	storedStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	req := BudgetRequest{Amount: 200, CategoryID: 1, StartDate: "2025-06-01", EndDate: "2025-06-30"}

	start, _, err := resolveBudgetWindow(req, storedStart)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestResolveBudgetWindowDefaultStartIsDateOnly(t *testing.T) {
	// The fallback start is truncated to its calendar date
	noon := time.Date(2025, time.March, 1, 12, 30, 0, 0, time.UTC)
	req := BudgetRequest{Amount: 50, CategoryID: 1, EndDate: "2025-03-31"}

	start, _, err := resolveBudgetWindow(req, noon)

	require.NoError(t, err)
	assert.Equal(t, report.DateOf(noon), start)
}

func TestResolveBudgetWindowRejectsInverted(t *testing.T) {
	req := BudgetRequest{Amount: 50, CategoryID: 1, StartDate: "2025-06-30", EndDate: "2025-06-01"}

	_, _, err := resolveBudgetWindow(req, time.Now())

	assert.Equal(t, errWindowInverted, err)
}

func TestBudgetStatusRejectsBadActiveOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/budgets/status?active_only=maybe", nil)
	c.Set("userID", uint(1))

	// Rejected on flag parsing, before any store access
	BudgetStatusHandler(nil)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid active_only")
}
