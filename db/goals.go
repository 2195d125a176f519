package db

import (
	"context"
	"fmt"

	"github.com/devin-voegele/moneymap/models"
)

func (s *Store) ListGoals(ctx context.Context, userID string) ([]*models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, deadline, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing goals for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := []*models.Goal{}
	for rows.Next() {
		item := &models.Goal{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.TargetAmount,
			&item.CurrentAmount, &item.Deadline, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) CountGoals(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting goals for user %s: %w", userID, err)
	}
	return count, nil
}

func (s *Store) CreateGoal(ctx context.Context, item *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, deadline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query, item.UserID, item.Name, item.TargetAmount, item.CurrentAmount, item.Deadline).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating goal: %w", err)
	}
	return nil
}

func (s *Store) UpdateGoal(ctx context.Context, userID string, item *models.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, current_amount = $3, deadline = $4
		WHERE id = $5 AND user_id = $6
	`
	result, err := s.db.ExecContext(ctx, query, item.Name, item.TargetAmount, item.CurrentAmount, item.Deadline, item.ID, userID)
	if err != nil {
		return fmt.Errorf("error updating goal %s: %w", item.ID, err)
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

func (s *Store) DeleteGoal(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting goal %s: %w", id, err)
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
