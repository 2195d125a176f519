package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/devin-voegele/moneymap/models"
)

func TestBuildBudgetReport(t *testing.T) {
	incomes := []*models.Income{
		{Name: "Salary", Amount: 2500, Frequency: models.FrequencyMonthly},
	}
	fixedCosts := []*models.FixedCost{
		{Name: "Rent", Amount: 800, Frequency: models.FrequencyMonthly, Category: "HOUSING"},
	}
	subscriptions := []*models.Subscription{
		{Name: "Netflix", Amount: 12.99, Frequency: models.FrequencyMonthly},
	}
	goals := []*models.Goal{
		{Name: "Emergency Fund", TargetAmount: 5000, CurrentAmount: 1200},
	}

	buf, err := BuildBudgetReport(incomes, fixedCosts, subscriptions, goals)
	require.NoError(t, err)

	file, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer file.Close()

	assert.ElementsMatch(t,
		[]string{"Overview", "Income Sources", "Fixed Costs", "Subscriptions", "Goals"},
		file.GetSheetList())

	rows, err := file.GetRows("Income Sources")
	require.NoError(t, err)
	require.Greater(t, len(rows), 1)
	assert.Equal(t, "Salary", rows[1][0])
}
