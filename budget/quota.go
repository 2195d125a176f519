package budget

import (
	"fmt"

	"github.com/devin-voegele/moneymap/models"
)

// Resource is a quota-limited resource type.
type Resource string

const (
	ResourceIncome       Resource = "income"
	ResourceGoal         Resource = "goal"
	ResourceSubscription Resource = "subscription"
	ResourceAIQuestion   Resource = "ai_question"
)

// Free-tier limits. AI questions are counted per calendar month, the rest
// are row counts.
var freeTierLimits = map[Resource]int{
	ResourceIncome:       1,
	ResourceGoal:         1,
	ResourceSubscription: 5,
	ResourceAIQuestion:   5,
}

var upgradeMessages = map[Resource]string{
	ResourceIncome:       "Free tier limited to %d income source. Upgrade to Pro for unlimited income sources.",
	ResourceGoal:         "Free tier limited to %d savings goal. Upgrade to Pro for unlimited goals.",
	ResourceSubscription: "Free tier limited to %d subscriptions. Upgrade to Pro for unlimited subscriptions.",
	ResourceAIQuestion:   "You've reached your limit of %d AI coach questions this month. Upgrade to Pro for unlimited questions!",
}

// QuotaError reports a denied creation attempt with the machine-readable
// payload the API returns alongside a 403.
type QuotaError struct {
	Resource Resource
	Limit    int
	Used     int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("free tier limit reached for %s: %d/%d", e.Resource, e.Used, e.Limit)
}

// Message is the human-readable upgrade prompt for the denied resource.
func (e *QuotaError) Message() string {
	return fmt.Sprintf(upgradeMessages[e.Resource], e.Limit)
}

// FreeTierLimit returns the free-plan cap for a resource.
func FreeTierLimit(resource Resource) int {
	return freeTierLimits[resource]
}

// CheckQuota allows a creation when the plan is PRO or the current count is
// under the free-tier limit. It performs no writes; callers insert only on a
// nil return.
func CheckQuota(plan models.Plan, resource Resource, current int) error {
	if plan == models.PlanPro {
		return nil
	}
	limit := freeTierLimits[resource]
	if current >= limit {
		return &QuotaError{Resource: resource, Limit: limit, Used: current}
	}
	return nil
}
