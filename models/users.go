package models

import "time"

type Plan string

const (
	PlanFree Plan = "FREE"
	PlanPro  Plan = "PRO"
)

type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Plan              Plan      `json:"plan"`
	MonthlyAIRequests int       `json:"monthly_ai_requests"`
	AIRequestsResetAt time.Time `json:"ai_requests_reset_at"`
	CreatedAt         time.Time `json:"created_at"`
}
