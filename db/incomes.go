package db

import (
	"context"
	"fmt"

	"github.com/devin-voegele/moneymap/models"
)

func (s *Store) ListIncomes(ctx context.Context, userID string) ([]*models.Income, error) {
	query := `
		SELECT id, user_id, name, amount, frequency, created_at
		FROM incomes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing incomes for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := []*models.Income{}
	for rows.Next() {
		item := &models.Income{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Amount, &item.Frequency, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CountIncomes(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM incomes WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting incomes for user %s: %w", userID, err)
	}
	return count, nil
}

func (s *Store) CreateIncome(ctx context.Context, item *models.Income) error {
	query := `
		INSERT INTO incomes (user_id, name, amount, frequency)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, item.UserID, item.Name, item.Amount, item.Frequency).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating income: %w", err)
	}
	return nil
}

// UpdateIncome matches on both id and user_id; a non-owner's update affects
// zero rows and reports ErrNotFound.
func (s *Store) UpdateIncome(ctx context.Context, userID string, item *models.Income) error {
	query := `
		UPDATE incomes
		SET name = $1, amount = $2, frequency = $3
		WHERE id = $4 AND user_id = $5
	`
	result, err := s.db.ExecContext(ctx, query, item.Name, item.Amount, item.Frequency, item.ID, userID)
	if err != nil {
		return fmt.Errorf("error updating income %s: %w", item.ID, err)
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

func (s *Store) DeleteIncome(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting income %s: %w", id, err)
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
