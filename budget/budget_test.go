package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devin-voegele/moneymap/models"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		frequency models.Frequency
		want      float64
	}{
		{"monthly is identity", 2000, models.FrequencyMonthly, 2000},
		{"yearly divides by twelve", 1200, models.FrequencyYearly, 100},
		{"weekly multiplies by 4.33", 100, models.FrequencyWeekly, 433},
		{"unknown frequency treated as monthly", 50, models.Frequency("DAILY"), 50},
		{"zero amount", 0, models.FrequencyWeekly, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyEquivalent(tt.amount, tt.frequency)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestGoalProgress(t *testing.T) {
	assert.Equal(t, 50, GoalProgress(500, 1000))
	assert.Equal(t, 100, GoalProgress(1000, 1000))
	// Overshooting clamps at 100.
	assert.Equal(t, 100, GoalProgress(1500, 1000))
	// Division-by-zero guard.
	assert.Equal(t, 0, GoalProgress(500, 0))
	assert.Equal(t, 33, GoalProgress(1, 3))
}

func TestSavingsRate(t *testing.T) {
	assert.Equal(t, 40, SavingsRate(2000, 1200))
	assert.Equal(t, 0, SavingsRate(0, 500))
	assert.Equal(t, -25, SavingsRate(2000, 2500))
	assert.Equal(t, 100, SavingsRate(2000, 0))
}

func TestRequiredMonthlySavings(t *testing.T) {
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	deadline := time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 250, RequiredMonthlySavings(1000, 2000, &deadline, now), 1e-9)

	// No deadline means no required pace.
	assert.Equal(t, 0.0, RequiredMonthlySavings(1000, 2000, nil, now))

	// Past deadline still divides by at least one month.
	past := now.AddDate(0, -2, 0)
	assert.InDelta(t, 1000, RequiredMonthlySavings(1000, 2000, &past, now), 1e-9)

	// Already funded goals require nothing.
	assert.Equal(t, 0.0, RequiredMonthlySavings(3000, 2000, &deadline, now))
}

func TestStatusOf(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 6, 0)
	past := now.AddDate(0, 0, -10)

	assert.Equal(t, GoalCompleted, StatusOf(2000, 2000, &future, now))
	assert.Equal(t, GoalCompleted, StatusOf(2500, 2000, nil, now))
	assert.Equal(t, GoalOnTrack, StatusOf(100, 2000, nil, now))
	assert.Equal(t, GoalOffTrack, StatusOf(100, 2000, &past, now))

	// Far-off deadline with healthy progress stays on track.
	assert.Equal(t, GoalOnTrack, StatusOf(1500, 2000, &future, now))

	// Deadline close, barely anything saved: behind pace.
	soon := now.AddDate(0, 0, 20)
	assert.Equal(t, GoalAtRisk, StatusOf(50, 2000, &soon, now))
}

func TestNextResetDate(t *testing.T) {
	now := time.Date(2026, time.March, 17, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), NextResetDate(now))

	// December rolls into January of the next year.
	dec := time.Date(2026, time.December, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), NextResetDate(dec))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "€2,500.00", FormatCurrency(2500, "EUR"))
	assert.Equal(t, "$1,234,567.89", FormatCurrency(1234567.89, "USD"))
	assert.Equal(t, "€0.99", FormatCurrency(0.99, "EUR"))
	assert.Equal(t, "-€120.50", FormatCurrency(-120.5, "EUR"))
	assert.Equal(t, "XYZ 10.00", FormatCurrency(10, "XYZ"))
}
