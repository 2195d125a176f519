package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumeAIRequest(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	nextReset := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("increments under the limit", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()
		store := NewStore(conn)

		mock.ExpectQuery("UPDATE users").
			WithArgs("user-1", now, nextReset, 5).
			WillReturnRows(sqlmock.NewRows([]string{"monthly_ai_requests"}).AddRow(3))

		used, err := store.ConsumeAIRequest(context.Background(), "user-1", 5, now, nextReset)
		require.NoError(t, err)
		assert.Equal(t, 3, used)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("denies when the limit is spent", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()
		store := NewStore(conn)

		// Counter at the limit and reset date in the future: the guarded
		// UPDATE matches no row.
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-1", now, nextReset, 5).
			WillReturnRows(sqlmock.NewRows([]string{"monthly_ai_requests"}))

		_, err = store.ConsumeAIRequest(context.Background(), "user-1", 5, now, nextReset)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByIDNotFound(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	store := NewStore(conn)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = store.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
