package db

import (
	"context"
	"fmt"

	"github.com/devin-voegele/moneymap/models"
)

func (s *Store) ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error) {
	query := `
		SELECT id, user_id, name, amount, frequency, category, next_billing_date, worth_it, created_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing subscriptions for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := []*models.Subscription{}
	for rows.Next() {
		item := &models.Subscription{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Amount, &item.Frequency,
			&item.Category, &item.NextBillingDate, &item.WorthIt, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CountSubscriptions(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting subscriptions for user %s: %w", userID, err)
	}
	return count, nil
}

func (s *Store) CreateSubscription(ctx context.Context, item *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, name, amount, frequency, category, next_billing_date, worth_it)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, item.UserID, item.Name, item.Amount, item.Frequency,
		item.Category, item.NextBillingDate, item.WorthIt).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating subscription: %w", err)
	}
	return nil
}

func (s *Store) UpdateSubscription(ctx context.Context, userID string, item *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET name = $1, amount = $2, frequency = $3, category = $4, next_billing_date = $5, worth_it = $6
		WHERE id = $7 AND user_id = $8
	`
	result, err := s.db.ExecContext(ctx, query, item.Name, item.Amount, item.Frequency,
		item.Category, item.NextBillingDate, item.WorthIt, item.ID, userID)
	if err != nil {
		return fmt.Errorf("error updating subscription %s: %w", item.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSubscription(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting subscription %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
