package llm

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Tool names the coach can invoke. Each maps to a single-row insert (or the
// spreadsheet export) executed by the coach handler.
const (
	ToolCreateGoal         = "create_goal"
	ToolCreateSubscription = "create_subscription"
	ToolCreateIncome       = "create_income"
	ToolCreateFixedCost    = "create_fixed_cost"
	ToolExportExcelReport  = "export_excel_report"
)

// CreateGoalArgs mirror the create_goal tool schema.
type CreateGoalArgs struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline"`
}

type CreateSubscriptionArgs struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
	Category  string  `json:"category"`
}

type CreateIncomeArgs struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
}

type CreateFixedCostArgs struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
	Category  string  `json:"category"`
}

func coachTools() []openai.Tool {
	return []openai.Tool{
		functionTool(ToolCreateGoal, "Create a new savings goal for the user", &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"name":          {Type: jsonschema.String, Description: `The name of the goal (e.g., "iPhone 15", "New PC", "Summer Holiday")`},
				"targetAmount":  {Type: jsonschema.Number, Description: "The target amount to save in the user's currency"},
				"currentAmount": {Type: jsonschema.Number, Description: "The amount already saved (default 0)"},
				"deadline":      {Type: jsonschema.String, Description: "The target date in ISO format (YYYY-MM-DD), optional"},
			},
			Required: []string{"name", "targetAmount"},
		}),
		functionTool(ToolCreateSubscription, "Add a new subscription for the user to track", &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"name":      {Type: jsonschema.String, Description: `The name of the subscription (e.g., "Netflix", "Spotify")`},
				"amount":    {Type: jsonschema.Number, Description: "The subscription cost"},
				"frequency": {Type: jsonschema.String, Enum: []string{"MONTHLY", "YEARLY"}, Description: "How often the subscription is charged"},
				"category":  {Type: jsonschema.String, Description: "Category like Entertainment, Gaming, Software, etc."},
			},
			Required: []string{"name", "amount", "frequency"},
		}),
		functionTool(ToolCreateIncome, "Add a new income source for the user", &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"name":      {Type: jsonschema.String, Description: `The name of the income source (e.g., "Monthly Salary", "Part-time Job")`},
				"amount":    {Type: jsonschema.Number, Description: "The income amount"},
				"frequency": {Type: jsonschema.String, Enum: []string{"MONTHLY", "WEEKLY", "YEARLY"}, Description: "How often the income is received"},
			},
			Required: []string{"name", "amount", "frequency"},
		}),
		functionTool(ToolCreateFixedCost, "Add a new fixed cost/expense for the user", &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"name":      {Type: jsonschema.String, Description: `The name of the expense (e.g., "Rent", "Groceries")`},
				"amount":    {Type: jsonschema.Number, Description: "The expense amount"},
				"frequency": {Type: jsonschema.String, Enum: []string{"MONTHLY", "WEEKLY", "YEARLY"}, Description: "How often the expense occurs"},
				"category":  {Type: jsonschema.String, Description: "Category like Rent, Food, Transport, etc."},
			},
			Required: []string{"name", "amount", "frequency", "category"},
		}),
		functionTool(ToolExportExcelReport,
			"Generate and download a detailed Excel report with all budget data, expenses, subscriptions, and goals. Use this when the user asks for an export, report, spreadsheet, or Excel file.",
			&jsonschema.Definition{Type: jsonschema.Object, Properties: map[string]jsonschema.Definition{}}),
	}
}

func functionTool(name, description string, parameters *jsonschema.Definition) openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
