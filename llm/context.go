package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/devin-voegele/moneymap/budget"
	"github.com/devin-voegele/moneymap/models"
)

const coachPreamble = `You are MoneyMap AI Coach, a friendly and helpful financial assistant for young adults (15-30 years old). You help users understand their budget, manage subscriptions, and reach savings goals using simple, non-technical language.

IMPORTANT RULES:
- You are NOT a professional financial advisor. Never give specific investment advice or recommend financial products.
- Focus only on budgeting, expenses, subscriptions, and savings habits.
- Use simple language, short paragraphs, and bullet points.
- Be encouraging and positive, but honest about financial situations.
- Always reference specific numbers from the user's data when giving advice.
- If the user asks about something you don't have data for, acknowledge it and suggest they add it to MoneyMap.

YOUR CAPABILITIES:
- You CAN create goals, subscriptions, income sources, and fixed costs for the user
- You CAN generate Excel reports with all their financial data (income, expenses, subscriptions, goals)
- When users ask for exports, reports, spreadsheets, or Excel files, use the export_excel_report function
- The Excel report includes multiple sheets: Overview, Income, Fixed Costs, Subscriptions, and Goals

USER'S FINANCIAL DATA:
`

const coachPostamble = `
Now answer the user's question based on this data. Be specific, reference actual numbers, and give actionable advice.

FORMATTING RULES:
- Use markdown formatting (bold, lists, etc.)
- Keep responses concise and scannable
- Use bullet points for lists
- Use **bold** for important numbers and key points
- Break long responses into short paragraphs
- Use emojis sparingly for visual interest
- Don't use headers unless necessary`

// BuildCoachContext formats the user's financial rows into the prose context
// the coach model is primed with.
func BuildCoachContext(profile *models.Profile, incomes []*models.Income, fixedCosts []*models.FixedCost,
	subscriptions []*models.Subscription, goals []*models.Goal) string {

	currency := "EUR"
	if profile != nil && profile.Currency != "" {
		currency = profile.Currency
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
	freeMoney := totalIncome - totalFixedCosts - totalSubscriptions

	var b strings.Builder
	b.WriteString(coachPreamble)

	fmt.Fprintf(&b, "\n📊 INCOME (Monthly Total: %s):\n", budget.FormatCurrency(totalIncome, currency))
	if len(incomes) == 0 {
		b.WriteString("- No income sources added yet\n")
	}
	for _, inc := range incomes {
		monthly := budget.MonthlyEquivalent(inc.Amount, inc.Frequency)
		fmt.Fprintf(&b, "- %s: %s %s (%s/month)\n", inc.Name,
			budget.FormatCurrency(inc.Amount, currency), strings.ToLower(string(inc.Frequency)),
			budget.FormatCurrency(monthly, currency))
	}

	fmt.Fprintf(&b, "\n💰 FIXED COSTS (Monthly Total: %s):\n", budget.FormatCurrency(totalFixedCosts, currency))
	if len(fixedCosts) == 0 {
		b.WriteString("- No fixed costs added yet\n")
	}
	for _, cost := range fixedCosts {
		monthly := budget.MonthlyEquivalent(cost.Amount, cost.Frequency)
		fmt.Fprintf(&b, "- %s (%s): %s %s (%s/month)\n", cost.Name, cost.Category,
			budget.FormatCurrency(cost.Amount, currency), strings.ToLower(string(cost.Frequency)),
			budget.FormatCurrency(monthly, currency))
	}

	fmt.Fprintf(&b, "\n📺 SUBSCRIPTIONS (Monthly Total: %s):\n", budget.FormatCurrency(totalSubscriptions, currency))
	if len(subscriptions) == 0 {
		b.WriteString("- No subscriptions tracked yet\n")
	}
	for _, sub := range subscriptions {
		monthly := budget.MonthlyEquivalent(sub.Amount, sub.Frequency)
		category := ""
		if sub.Category != nil && *sub.Category != "" {
			category = fmt.Sprintf(" (%s)", *sub.Category)
		}
		worthIt := ""
		if sub.WorthIt != nil && *sub.WorthIt != "" {
			worthIt = fmt.Sprintf(" [User marked as: %s]", *sub.WorthIt)
		}
		fmt.Fprintf(&b, "- %s%s: %s %s (%s/month)%s\n", sub.Name, category,
			budget.FormatCurrency(sub.Amount, currency), strings.ToLower(string(sub.Frequency)),
			budget.FormatCurrency(monthly, currency), worthIt)
	}

	b.WriteString("\n🎯 SAVINGS GOALS:\n")
	if len(goals) == 0 {
		b.WriteString("- No savings goals set yet\n")
	}
	now := time.Now()
	for _, goal := range goals {
		progress := 0.0
		if goal.TargetAmount > 0 {
			progress = goal.CurrentAmount / goal.TargetAmount * 100
		}
		deadlineInfo := ""
		if goal.Deadline != nil {
			monthsLeft := budget.MonthsUntil(*goal.Deadline, now)
			required := budget.RequiredMonthlySavings(goal.CurrentAmount, goal.TargetAmount, goal.Deadline, now)
			deadlineInfo = fmt.Sprintf(" | Deadline: %s (%d months left) | Need to save: %s/month",
				goal.Deadline.Format("1/2/2006"), monthsLeft, budget.FormatCurrency(required, currency))
		}
		fmt.Fprintf(&b, "- %s: %s of %s (%.1f%% complete)%s\n", goal.Name,
			budget.FormatCurrency(goal.CurrentAmount, currency),
			budget.FormatCurrency(goal.TargetAmount, currency), progress, deadlineInfo)
	}

	b.WriteString("\n💵 MONTHLY SUMMARY:\n")
	fmt.Fprintf(&b, "- Total Income: %s\n", budget.FormatCurrency(totalIncome, currency))
	fmt.Fprintf(&b, "- Fixed Costs: %s (%s%% of income)\n", budget.FormatCurrency(totalFixedCosts, currency), percentOf(totalFixedCosts, totalIncome))
	fmt.Fprintf(&b, "- Subscriptions: %s (%s%% of income)\n", budget.FormatCurrency(totalSubscriptions, currency), percentOf(totalSubscriptions, totalIncome))
	fmt.Fprintf(&b, "- Free Money: %s (%s%% of income)\n", budget.FormatCurrency(freeMoney, currency), percentOf(freeMoney, totalIncome))
	fmt.Fprintf(&b, "- Yearly Subscription Cost: %s\n", budget.FormatCurrency(totalSubscriptions*12, currency))

	if profile != nil {
		b.WriteString("\n👤 USER PROFILE:\n")
		fmt.Fprintf(&b, "- Currency: %s\n", profile.Currency)
		if profile.Country != nil && *profile.Country != "" {
			fmt.Fprintf(&b, "- Country: %s\n", *profile.Country)
		}
		if profile.Persona != nil && *profile.Persona != "" {
			fmt.Fprintf(&b, "- Situation: %s\n", *profile.Persona)
		}
	}

	b.WriteString(coachPostamble)
	return b.String()
}

func percentOf(part, whole float64) string {
	if whole <= 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", part/whole*100)
}
