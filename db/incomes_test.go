package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devin-voegele/moneymap/models"
)

func TestUpdateIncomeScopedToOwner(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	store := NewStore(conn)

	item := &models.Income{ID: "income-1", Name: "Salary", Amount: 2500, Frequency: models.FrequencyMonthly}

	// The row exists but belongs to someone else, so the scoped UPDATE
	// touches nothing.
	mock.ExpectExec("UPDATE incomes").
		WithArgs("Salary", 2500.0, "MONTHLY", "income-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.UpdateIncome(context.Background(), "intruder", item)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIncomeScopedToOwner(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	store := NewStore(conn)

	mock.ExpectExec("DELETE FROM incomes").
		WithArgs("income-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.DeleteIncome(context.Background(), "intruder", "income-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncomeReturnsGeneratedFields(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	store := NewStore(conn)

	item := &models.Income{UserID: "user-1", Name: "Salary", Amount: 2500, Frequency: models.FrequencyMonthly}

	mock.ExpectQuery("INSERT INTO incomes").
		WithArgs("user-1", "Salary", 2500.0, "MONTHLY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("income-1", time.Now()))

	err = store.CreateIncome(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "income-1", item.ID)
}
