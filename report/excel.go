// Package report builds the downloadable XLSX budget report.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/devin-voegele/moneymap/models"
)

// Sheet tab colors, one per section.
const (
	colorOverview      = "3B82F6"
	colorIncome        = "10B981"
	colorFixedCosts    = "F97316"
	colorSubscriptions = "EF4444"
	colorGoals         = "8B5CF6"
)

// BuildBudgetReport renders the user's full budget into a five-sheet
// workbook: Overview, Income Sources, Fixed Costs, Subscriptions and Goals.
func BuildBudgetReport(incomes []*models.Income, fixedCosts []*models.FixedCost,
	subscriptions []*models.Subscription, goals []*models.Goal) (*bytes.Buffer, error) {

	var totalIncome, totalFixedCosts, totalSubscriptions float64
	for _, inc := range incomes {
		totalIncome += inc.Amount
	}
	for _, cost := range fixedCosts {
		totalFixedCosts += cost.Amount
	}
	for _, sub := range subscriptions {
		totalSubscriptions += sub.Amount
	}
	freeMoney := totalIncome - totalFixedCosts - totalSubscriptions

	f := excelize.NewFile()
	defer f.Close()

	overview, err := newSheet(f, "Overview", colorOverview,
		[]string{"Category", "Amount (€)", "Percentage"}, []float64{25, 15, 15})
	if err != nil {
		return nil, err
	}
	overview.addRow("Total Income", totalIncome, "100%")
	overview.addRow("Fixed Costs", totalFixedCosts, percentage(totalFixedCosts, totalIncome))
	overview.addRow("Subscriptions", totalSubscriptions, percentage(totalSubscriptions, totalIncome))
	overview.addRow("Available Money", freeMoney, percentage(freeMoney, totalIncome))

	incomeSheet, err := newSheet(f, "Income Sources", colorIncome,
		[]string{"Source", "Amount (€)", "Frequency"}, []float64{30, 15, 15})
	if err != nil {
		return nil, err
	}
	for _, inc := range incomes {
		incomeSheet.addRow(inc.Name, inc.Amount, string(inc.Frequency))
	}

	costSheet, err := newSheet(f, "Fixed Costs", colorFixedCosts,
		[]string{"Name", "Amount (€)", "Category"}, []float64{30, 15, 20})
	if err != nil {
		return nil, err
	}
	for _, cost := range fixedCosts {
		costSheet.addRow(cost.Name, cost.Amount, cost.Category)
	}

	subSheet, err := newSheet(f, "Subscriptions", colorSubscriptions,
		[]string{"Name", "Amount (€)", "Billing Cycle"}, []float64{30, 15, 15})
	if err != nil {
		return nil, err
	}
	for _, sub := range subscriptions {
		subSheet.addRow(sub.Name, sub.Amount, string(sub.Frequency))
	}

	goalSheet, err := newSheet(f, "Goals", colorGoals,
		[]string{"Goal", "Target (€)", "Current (€)", "Progress", "Deadline"}, []float64{30, 15, 15, 15, 15})
	if err != nil {
		return nil, err
	}
	for _, goal := range goals {
		progress := 0.0
		if goal.TargetAmount > 0 {
			progress = goal.CurrentAmount / goal.TargetAmount * 100
		}
		deadline := "No deadline"
		if goal.Deadline != nil {
			deadline = goal.Deadline.Format("1/2/2006")
		}
		goalSheet.addRow(goal.Name, goal.TargetAmount, goal.CurrentAmount,
			fmt.Sprintf("%.1f%%", progress), deadline)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if idx, err := f.GetSheetIndex("Overview"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}

type sheet struct {
	file *excelize.File
	name string
	row  int
}

func newSheet(f *excelize.File, name, color string, headers []string, widths []float64) (*sheet, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	if err := f.SetSheetProps(name, &excelize.SheetPropsOptions{TabColorRGB: &color}); err != nil {
		return nil, err
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, width); err != nil {
			return nil, err
		}
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return nil, err
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(name, "A1", lastCol+"1", styleID); err != nil {
		return nil, err
	}

	return &sheet{file: f, name: name, row: 1}, nil
}

func (s *sheet) addRow(values ...interface{}) {
	s.row++
	// Errors here can only come from invalid coordinates, which are fixed.
	_ = s.file.SetSheetRow(s.name, fmt.Sprintf("A%d", s.row), &values)
}

func percentage(part, whole float64) string {
	if whole <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", part/whole*100)
}
