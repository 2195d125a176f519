package db

import (
	"context"
	"fmt"

	"github.com/devin-voegele/moneymap/models"
)

func (s *Store) ListFixedCosts(ctx context.Context, userID string) ([]*models.FixedCost, error) {
	query := `
		SELECT id, user_id, name, amount, frequency, category, created_at
		FROM fixed_costs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing fixed costs for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := []*models.FixedCost{}
	for rows.Next() {
		item := &models.FixedCost{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Amount, &item.Frequency, &item.Category, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CreateFixedCost(ctx context.Context, item *models.FixedCost) error {
	query := `
		INSERT INTO fixed_costs (user_id, name, amount, frequency, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, item.UserID, item.Name, item.Amount, item.Frequency, item.Category).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating fixed cost: %w", err)
	}
	return nil
}

func (s *Store) UpdateFixedCost(ctx context.Context, userID string, item *models.FixedCost) error {
	query := `
		UPDATE fixed_costs
		SET name = $1, amount = $2, frequency = $3, category = $4
		WHERE id = $5 AND user_id = $6
	`
	result, err := s.db.ExecContext(ctx, query, item.Name, item.Amount, item.Frequency, item.Category, item.ID, userID)
	if err != nil {
		return fmt.Errorf("error updating fixed cost %s: %w", item.ID, err)
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

func (s *Store) DeleteFixedCost(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM fixed_costs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting fixed cost %s: %w", id, err)
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
