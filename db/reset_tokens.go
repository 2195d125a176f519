package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CreatePasswordResetToken replaces any outstanding tokens for the email with
// a fresh one.
func (s *Store) CreatePasswordResetToken(ctx context.Context, email, token string, expiresAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE email = $1`, email); err != nil {
		return fmt.Errorf("error clearing reset tokens for %s: %w", email, err)
	}

	query := `
		INSERT INTO password_reset_tokens (email, token, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, query, email, token, expiresAt); err != nil {
		return fmt.Errorf("error creating reset token for %s: %w", email, err)
	}

	return tx.Commit()
}

// ConsumePasswordResetToken deletes an unexpired token and returns the email
// it belongs to. Expired or unknown tokens report ErrNotFound.
func (s *Store) ConsumePasswordResetToken(ctx context.Context, token string, now time.Time) (string, error) {
	query := `
		DELETE FROM password_reset_tokens
		WHERE token = $1 AND expires_at > $2
		RETURNING email
	`
	var email string
	err := s.db.QueryRowContext(ctx, query, token, now).Scan(&email)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("error consuming reset token: %w", err)
	}
	return email, nil
}
