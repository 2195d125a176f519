package models

import "time"

type Profile struct {
	ID                     string     `json:"id"`
	UserID                 string     `json:"user_id"`
	Currency               string     `json:"currency"`
	Country                *string    `json:"country"`
	Persona                *string    `json:"persona"`
	Plan                   Plan       `json:"plan"`
	StripeCustomerID       *string    `json:"stripe_customer_id"`
	StripeSubscriptionID   *string    `json:"stripe_subscription_id"`
	StripePriceID          *string    `json:"stripe_price_id"`
	StripeCurrentPeriodEnd *time.Time `json:"stripe_current_period_end"`
	EmailNotifications     bool       `json:"email_notifications"`
	WeeklyEmailEnabled     bool       `json:"weekly_email_enabled"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}
