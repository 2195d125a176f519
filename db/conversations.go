package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/devin-voegele/moneymap/models"
)

func scanConversation(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.ChatConversation, error) {
	item := &models.ChatConversation{}
	var messages []byte
	err := scanner.Scan(&item.ID, &item.UserID, &item.Title, &messages, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(messages, &item.Messages); err != nil {
		return nil, fmt.Errorf("error decoding conversation messages: %w", err)
	}
	return item, nil
}

func (s *Store) CreateConversation(ctx context.Context, userID, title string) (*models.ChatConversation, error) {
	query := `
		INSERT INTO chat_conversations (user_id, title)
		VALUES ($1, $2)
		RETURNING id, user_id, title, messages, created_at, updated_at
	`
	item, err := scanConversation(s.db.QueryRowContext(ctx, query, userID, title))
	if err != nil {
		return nil, fmt.Errorf("error creating conversation for user %s: %w", userID, err)
	}
	return item, nil
}

func (s *Store) GetConversation(ctx context.Context, userID, id string) (*models.ChatConversation, error) {
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM chat_conversations
		WHERE id = $1 AND user_id = $2
	`
	item, err := scanConversation(s.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting conversation %s: %w", id, err)
	}
	return item, nil
}

func (s *Store) ListConversations(ctx context.Context, userID string) ([]*models.ChatConversation, error) {
	query := `
		SELECT id, user_id, title, messages, created_at, updated_at
		FROM chat_conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := []*models.ChatConversation{}
	for rows.Next() {
		item, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateConversation replaces the stored message list and optionally the
// title, scoped to the owner.
func (s *Store) UpdateConversation(ctx context.Context, userID, id string, messages []models.ChatMessage, title string) error {
	encoded, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("error encoding conversation messages: %w", err)
	}

	query := `
		UPDATE chat_conversations
		SET messages = $1,
		    title = COALESCE(NULLIF($2, ''), title),
		    updated_at = now()
		WHERE id = $3 AND user_id = $4
	`
	result, err := s.db.ExecContext(ctx, query, encoded, title, id, userID)
	if err != nil {
		return fmt.Errorf("error updating conversation %s: %w", id, err)
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

func (s *Store) DeleteConversation(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chat_conversations WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("error deleting conversation %s: %w", id, err)
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
