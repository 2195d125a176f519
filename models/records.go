package models

import "time"

// Frequency is the recurrence cadence of a financial record.
type Frequency string

const (
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyYearly  Frequency = "YEARLY"
)

type Income struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Frequency Frequency `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}

type FixedCost struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Frequency Frequency `json:"frequency"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type Subscription struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Name            string     `json:"name"`
	Amount          float64    `json:"amount"`
	Frequency       Frequency  `json:"frequency"`
	Category        *string    `json:"category"`
	NextBillingDate *time.Time `json:"next_billing_date"`
	WorthIt         *string    `json:"worth_it"`
	CreatedAt       time.Time  `json:"created_at"`
}
