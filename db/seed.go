package db

import (
	"context"
	"fmt"
	"time"
)

// SeedSampleData populates a fresh account with example rows so the dashboard
// is not empty after onboarding. Everything runs in one transaction; a
// partial sample set is worse than none.
func (s *Store) SeedSampleData(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO incomes (user_id, name, amount, frequency)
		VALUES ($1, 'Monthly Salary', 2500, 'MONTHLY')
	`, userID); err != nil {
		return fmt.Errorf("error seeding income: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO fixed_costs (user_id, name, amount, frequency, category)
		VALUES
			($1, 'Rent', 800, 'MONTHLY', 'HOUSING'),
			($1, 'Groceries', 300, 'MONTHLY', 'FOOD'),
			($1, 'Transport', 100, 'MONTHLY', 'TRANSPORT')
	`, userID); err != nil {
		return fmt.Errorf("error seeding fixed costs: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, name, amount, frequency, category, next_billing_date)
		VALUES
			($1, 'Netflix', 12.99, 'MONTHLY', 'ENTERTAINMENT', $2),
			($1, 'Spotify', 9.99, 'MONTHLY', 'ENTERTAINMENT', $3)
	`, userID, now.AddDate(0, 0, 15), now.AddDate(0, 0, 20)); err != nil {
		return fmt.Errorf("error seeding subscriptions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO goals (user_id, name, target_amount, current_amount, deadline)
		VALUES
			($1, 'Emergency Fund', 5000, 1200, $2),
			($1, 'Summer Vacation', 2000, 500, $3)
	`, userID, now.AddDate(0, 0, 180), now.AddDate(0, 0, 120)); err != nil {
		return fmt.Errorf("error seeding goals: %w", err)
	}

	return tx.Commit()
}
