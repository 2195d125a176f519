package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/devin-voegele/moneymap/models"
)

func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, plan, monthly_ai_requests, ai_requests_reset_at, created_at
	`
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, name, email, passwordHash).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Plan,
		&user.MonthlyAIRequests,
		&user.AIRequestsResetAt,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, plan, monthly_ai_requests, ai_requests_reset_at, created_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, userID))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, plan, monthly_ai_requests, ai_requests_reset_at, created_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Plan,
		&user.MonthlyAIRequests,
		&user.AIRequestsResetAt,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, email, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1
		WHERE email = $2
	`
	result, err := s.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return fmt.Errorf("error updating password for %s: %w", email, err)
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

func (s *Store) UpdateUserPlan(ctx context.Context, userID string, plan models.Plan) error {
	query := `
		UPDATE users
		SET plan = $1
		WHERE id = $2
	`
	if _, err := s.db.ExecContext(ctx, query, plan, userID); err != nil {
		return fmt.Errorf("error updating plan for user %s: %w", userID, err)
	}
	return nil
}

// ConsumeAIRequest rolls the monthly counter over when the reset date has
// passed, then increments it, all in one statement so concurrent requests
// cannot race past the limit. It returns the counter after the increment, or
// ErrNotFound when the limit is already spent.
func (s *Store) ConsumeAIRequest(ctx context.Context, userID string, limit int, now time.Time, nextReset time.Time) (int, error) {
	query := `
		UPDATE users
		SET monthly_ai_requests = CASE WHEN ai_requests_reset_at <= $2 THEN 1 ELSE monthly_ai_requests + 1 END,
		    ai_requests_reset_at = CASE WHEN ai_requests_reset_at <= $2 THEN $3 ELSE ai_requests_reset_at END
		WHERE id = $1
		  AND (ai_requests_reset_at <= $2 OR monthly_ai_requests < $4)
		RETURNING monthly_ai_requests
	`
	var used int
	err := s.db.QueryRowContext(ctx, query, userID, now, nextReset, limit).Scan(&used)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("error consuming AI request for user %s: %w", userID, err)
	}
	return used, nil
}
