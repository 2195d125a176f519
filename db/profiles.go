package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/devin-voegele/moneymap/models"
)

const profileColumns = `id, user_id, currency, country, persona, plan,
	stripe_customer_id, stripe_subscription_id, stripe_price_id, stripe_current_period_end,
	email_notifications, weekly_email_enabled, created_at, updated_at`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Currency,
		&profile.Country,
		&profile.Persona,
		&profile.Plan,
		&profile.StripeCustomerID,
		&profile.StripeSubscriptionID,
		&profile.StripePriceID,
		&profile.StripeCurrentPeriodEnd,
		&profile.EmailNotifications,
		&profile.WeeklyEmailEnabled,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	return profile, nil
}

// GetProfileByUserID returns nil without error when the user has no profile
// yet.
func (s *Store) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	return scanProfile(s.db.QueryRowContext(ctx, query, userID))
}

// UpsertProfile creates or updates the onboarding fields of a profile.
func (s *Store) UpsertProfile(ctx context.Context, userID, currency string, country, persona *string) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, currency, country, persona)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET currency = EXCLUDED.currency,
		    country = EXCLUDED.country,
		    persona = EXCLUDED.persona,
		    updated_at = now()
		RETURNING ` + profileColumns
	return scanProfile(s.db.QueryRowContext(ctx, query, userID, currency, country, persona))
}

// EnsureProfile creates an empty default profile when none exists.
func (s *Store) EnsureProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = profiles.updated_at
		RETURNING ` + profileColumns
	return scanProfile(s.db.QueryRowContext(ctx, query, userID))
}

func (s *Store) UpdateNotificationSettings(ctx context.Context, userID string, emailNotifications, weeklyEmailEnabled bool) error {
	query := `
		UPDATE profiles
		SET email_notifications = $1, weekly_email_enabled = $2, updated_at = now()
		WHERE user_id = $3
	`
	if _, err := s.db.ExecContext(ctx, query, emailNotifications, weeklyEmailEnabled, userID); err != nil {
		return fmt.Errorf("error updating notification settings for user %s: %w", userID, err)
	}
	return nil
}

func (s *Store) UpdateStripeCustomerID(ctx context.Context, userID, customerID string) error {
	query := `
		UPDATE profiles
		SET stripe_customer_id = $1, updated_at = now()
		WHERE user_id = $2
	`
	if _, err := s.db.ExecContext(ctx, query, customerID, userID); err != nil {
		return fmt.Errorf("error updating Stripe customer ID for user %s: %w", userID, err)
	}
	return nil
}

// ActivateSubscriptionByCustomerID marks the profile PRO after checkout
// completes. The users table mirrors the plan so quota checks see it.
func (s *Store) ActivateSubscriptionByCustomerID(ctx context.Context, customerID, subscriptionID, priceID string, periodEnd time.Time) error {
	query := `
		UPDATE profiles
		SET plan = 'PRO',
		    stripe_subscription_id = $2,
		    stripe_price_id = $3,
		    stripe_current_period_end = $4,
		    updated_at = now()
		WHERE stripe_customer_id = $1
		RETURNING user_id
	`
	var userID string
	err := s.db.QueryRowContext(ctx, query, customerID, subscriptionID, priceID, periodEnd).Scan(&userID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error activating subscription for customer %s: %w", customerID, err)
	}
	return s.UpdateUserPlan(ctx, userID, models.PlanPro)
}

// RenewSubscriptionBySubscriptionID refreshes the price and period on
// successful invoice payment.
func (s *Store) RenewSubscriptionBySubscriptionID(ctx context.Context, subscriptionID, priceID string, periodEnd time.Time) error {
	query := `
		UPDATE profiles
		SET plan = 'PRO',
		    stripe_price_id = $2,
		    stripe_current_period_end = $3,
		    updated_at = now()
		WHERE stripe_subscription_id = $1
		RETURNING user_id
	`
	var userID string
	err := s.db.QueryRowContext(ctx, query, subscriptionID, priceID, periodEnd).Scan(&userID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error renewing subscription %s: %w", subscriptionID, err)
	}
	return s.UpdateUserPlan(ctx, userID, models.PlanPro)
}

// CancelSubscriptionBySubscriptionID reverts the profile to the free plan.
func (s *Store) CancelSubscriptionBySubscriptionID(ctx context.Context, subscriptionID string) error {
	query := `
		UPDATE profiles
		SET plan = 'FREE',
		    stripe_subscription_id = NULL,
		    stripe_price_id = NULL,
		    stripe_current_period_end = NULL,
		    updated_at = now()
		WHERE stripe_subscription_id = $1
		RETURNING user_id
	`
	var userID string
	err := s.db.QueryRowContext(ctx, query, subscriptionID).Scan(&userID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error canceling subscription %s: %w", subscriptionID, err)
	}
	return s.UpdateUserPlan(ctx, userID, models.PlanFree)
}

// ListWeeklyEmailRecipients returns users who opted into the weekly summary.
func (s *Store) ListWeeklyEmailRecipients(ctx context.Context) ([]string, error) {
	query := `
		SELECT user_id
		FROM profiles
		WHERE email_notifications AND weekly_email_enabled
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing weekly email recipients: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}
