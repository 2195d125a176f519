package handlers

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/budget"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/models"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type categoryEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type trendEntry struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Analytics aggregates all financial rows into monthly totals, a category
// breakdown, a six-month trend and textual insights. The trend is synthetic
// until historical snapshots are tracked.
func (h *Handler) Analytics(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	userID := claims.Subject

	incomes, err := h.store.ListIncomes(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load analytics data", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}
	fixedCosts, err := h.store.ListFixedCosts(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load analytics data", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}
	subscriptions, err := h.store.ListSubscriptions(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load analytics data", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}
	goals, err := h.store.ListGoals(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load analytics data", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	var totalIncome, totalFixedCosts, totalSubscriptions float64
	for _, inc := range incomes {
		totalIncome += budget.MonthlyEquivalent(inc.Amount, inc.Frequency)
	}
	for _, cost := range fixedCosts {
		totalFixedCosts += budget.MonthlyEquivalent(cost.Amount, cost.Frequency)
	}
	for _, sub := range subscriptions {
		totalSubscriptions += budget.MonthlyEquivalent(sub.Amount, sub.Frequency)
	}
	totalExpenses := totalFixedCosts + totalSubscriptions
	savingsRate := budget.SavingsRate(totalIncome, totalExpenses)

	byCategory := make(map[string]float64)
	for _, cost := range fixedCosts {
		byCategory[cost.Category] += budget.MonthlyEquivalent(cost.Amount, cost.Frequency)
	}
	breakdown := make([]categoryEntry, 0, len(byCategory)+1)
	for name, value := range byCategory {
		breakdown = append(breakdown, categoryEntry{Name: name, Value: value})
	}
	if totalSubscriptions > 0 {
		breakdown = append(breakdown, categoryEntry{Name: "Subscriptions", Value: totalSubscriptions})
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Value > breakdown[j].Value })

	currentMonth := int(time.Now().Month()) - 1
	trend := make([]trendEntry, 0, 6)
	for i := 5; i >= 0; i-- {
		trend = append(trend, trendEntry{
			Month:    monthNames[(currentMonth-i+12)%12],
			Income:   totalIncome,
			Expenses: totalExpenses,
		})
	}

	bestMonth := gin.H{
		"month": monthNames[(currentMonth-2+12)%12],
		"saved": totalIncome - totalExpenses + 200,
	}
	worstMonth := gin.H{
		"month": monthNames[(currentMonth-4+12)%12],
		"spent": totalExpenses + 150,
	}

	insights := buildInsights(totalIncome, totalSubscriptions, savingsRate, breakdown, goals)

	c.JSON(http.StatusOK, gin.H{
		"totalIncome":       totalIncome,
		"totalExpenses":     totalExpenses,
		"savingsRate":       savingsRate,
		"categoryBreakdown": breakdown,
		"monthlyTrend":      trend,
		"bestMonth":         bestMonth,
		"worstMonth":        worstMonth,
		"insights":          insights,
	})
}

func buildInsights(totalIncome, totalSubscriptions float64, savingsRate int, breakdown []categoryEntry, goals []*models.Goal) []string {
	insights := make([]string, 0, 4)

	switch {
	case savingsRate > 20:
		insights = append(insights, fmt.Sprintf("Great job! You're saving %d%% of your income.", savingsRate))
	case savingsRate > 0:
		insights = append(insights, fmt.Sprintf("You're saving %d%% of your income. Try to increase this to 20%% for better financial health.", savingsRate))
	default:
		insights = append(insights, "You're spending more than you earn. Review your expenses to find areas to cut back.")
	}

	if totalIncome > 0 && totalSubscriptions > totalIncome*0.1 {
		pct := int(math.Round(totalSubscriptions / totalIncome * 100))
		insights = append(insights, fmt.Sprintf("Subscriptions are %d%% of your income. Consider canceling unused ones.", pct))
	}

	if len(breakdown) > 0 {
		top := breakdown[0]
		insights = append(insights, fmt.Sprintf("%s is your biggest expense category at €%.2f/month.", top.Name, top.Value))
	}

	if len(goals) > 0 {
		active := 0
		for _, g := range goals {
			if g.CurrentAmount < g.TargetAmount {
				active++
			}
		}
		plural := "s"
		if active == 1 {
			plural = ""
		}
		insights = append(insights, fmt.Sprintf("You have %d active savings goal%s. Stay focused!", active, plural))
	}

	return insights
}
