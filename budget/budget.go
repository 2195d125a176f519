// Package budget holds the pure budgeting arithmetic shared by the REST
// handlers, the AI coach and the report builder.
package budget

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/devin-voegele/moneymap/models"
)

// WeeksPerMonth is the canonical weekly-to-monthly conversion factor.
const WeeksPerMonth = 4.33

// MonthlyEquivalent normalizes an amount to its monthly cost. Unknown
// frequencies are treated as already monthly.
func MonthlyEquivalent(amount float64, frequency models.Frequency) float64 {
	switch frequency {
	case models.FrequencyWeekly:
		return amount * WeeksPerMonth
	case models.FrequencyYearly:
		return amount / 12
	default:
		return amount
	}
}

// GoalProgress returns the percentage saved towards a goal, clamped to 100.
// A zero target reports 0 to avoid dividing by zero.
func GoalProgress(current, target float64) int {
	if target == 0 {
		return 0
	}
	progress := int(math.Round(current / target * 100))
	if progress > 100 {
		return 100
	}
	return progress
}

// MonthsUntil counts whole calendar months from now until the deadline,
// never less than 1.
func MonthsUntil(deadline, now time.Time) int {
	months := (deadline.Year()-now.Year())*12 + int(deadline.Month()) - int(now.Month())
	if months < 1 {
		return 1
	}
	return months
}

// RequiredMonthlySavings returns how much must be put aside each month to hit
// the target by the deadline. Without a deadline there is no required pace.
func RequiredMonthlySavings(current, target float64, deadline *time.Time, now time.Time) float64 {
	if deadline == nil {
		return 0
	}
	required := (target - current) / float64(MonthsUntil(*deadline, now))
	if required < 0 {
		return 0
	}
	return required
}

// GoalStatus classifies a goal against its deadline.
type GoalStatus string

const (
	GoalCompleted GoalStatus = "completed"
	GoalOnTrack   GoalStatus = "on-track"
	GoalAtRisk    GoalStatus = "at-risk"
	GoalOffTrack  GoalStatus = "off-track"
)

// StatusOf compares saved progress to elapsed time. Goals more than 10
// percentage points behind pace are at risk; past-deadline goals are off
// track.
func StatusOf(current, target float64, deadline *time.Time, now time.Time) GoalStatus {
	if current >= target {
		return GoalCompleted
	}
	if deadline == nil {
		return GoalOnTrack
	}

	daysLeft := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	if daysLeft < 0 {
		return GoalOffTrack
	}

	progress := current / target * 100
	timeElapsed := 100 - math.Min(100, float64(daysLeft)/365*100)
	if progress < timeElapsed-10 {
		return GoalAtRisk
	}
	return GoalOnTrack
}

// SavingsRate is the percentage of income left after expenses, rounded to the
// nearest integer. Zero income reports 0.
func SavingsRate(totalIncome, totalExpenses float64) int {
	if totalIncome <= 0 {
		return 0
	}
	return int(math.Round((totalIncome - totalExpenses) / totalIncome * 100))
}

// NextResetDate is midnight UTC on the first day of the month after now.
func NextResetDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"CHF": "CHF ",
	"SEK": "kr ",
}

// FormatCurrency renders an amount with its currency symbol and thousands
// separators, e.g. "€2,500.00".
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}

	negative := amount < 0
	whole := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	parts := strings.SplitN(whole, ".", 2)

	var b strings.Builder
	digits := parts[0]
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%s%s.%s", sign, symbol, b.String(), parts[1])
}
