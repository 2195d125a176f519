package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devin-voegele/moneymap/models"
)

func TestCheckQuotaFreePlan(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		current  int
		denied   bool
	}{
		{"first income allowed", ResourceIncome, 0, false},
		{"second income denied", ResourceIncome, 1, true},
		{"first goal allowed", ResourceGoal, 0, false},
		{"second goal denied", ResourceGoal, 1, true},
		{"fifth subscription allowed", ResourceSubscription, 4, false},
		{"sixth subscription denied", ResourceSubscription, 5, true},
		{"fifth ai question allowed", ResourceAIQuestion, 4, false},
		{"sixth ai question denied", ResourceAIQuestion, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckQuota(models.PlanFree, tt.resource, tt.current)
			if tt.denied {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckQuotaProNeverLimited(t *testing.T) {
	for _, resource := range []Resource{ResourceIncome, ResourceGoal, ResourceSubscription, ResourceAIQuestion} {
		assert.NoError(t, CheckQuota(models.PlanPro, resource, 1_000_000))
	}
}

func TestQuotaErrorPayload(t *testing.T) {
	err := CheckQuota(models.PlanFree, ResourceSubscription, 7)
	require.Error(t, err)

	var quotaErr *QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, ResourceSubscription, quotaErr.Resource)
	assert.Equal(t, 5, quotaErr.Limit)
	assert.Equal(t, 7, quotaErr.Used)
	assert.Contains(t, quotaErr.Message(), "Upgrade to Pro")
	assert.Contains(t, quotaErr.Message(), "5")
}
