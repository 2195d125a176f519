package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devin-voegele/moneymap/config"
	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/middleware"
	"github.com/devin-voegele/moneymap/models"
)

const testUserID = "user-1"

// newTestRouter wires a handler against a mocked database, with a stub in
// place of the JWT middleware so requests arrive pre-authenticated.
func newTestRouter(t *testing.T) (*gin.Engine, *Handler, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	h := New(db.NewStore(conn), nil, nil, nil, &config.Config{})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserKey, &models.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: testUserID},
			Email:            "test@example.com",
			Name:             "Test User",
		})
	})
	return router, h, mock
}

func profileRows(plan models.Plan) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "currency", "country", "persona", "plan",
		"stripe_customer_id", "stripe_subscription_id", "stripe_price_id", "stripe_current_period_end",
		"email_notifications", "weekly_email_enabled", "created_at", "updated_at",
	}).AddRow("profile-1", testUserID, "EUR", nil, nil, string(plan), nil, nil, nil, nil, true, true, now, now)
}

func TestCreateIncomeQuotaDeniedPerformsNoInsert(t *testing.T) {
	router, h, mock := newTestRouter(t)
	router.POST("/api/income", h.CreateIncome)

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs(testUserID).
		WillReturnRows(profileRows(models.PlanFree))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM incomes").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	body := `{"name":"Side Job","amount":400,"frequency":"MONTHLY"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/income", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "FREE_TIER_LIMIT", payload["error"])
	assert.Equal(t, float64(1), payload["limit"])
	assert.Equal(t, float64(1), payload["used"])

	// Nothing beyond the plan and count lookups may hit the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIncomeProPlanSkipsQuota(t *testing.T) {
	router, h, mock := newTestRouter(t)
	router.POST("/api/income", h.CreateIncome)

	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs(testUserID).
		WillReturnRows(profileRows(models.PlanPro))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM incomes").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO incomes").
		WithArgs(testUserID, "Side Job", 400.0, "MONTHLY").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("income-9", time.Now()))

	body := `{"name":"Side Job","amount":400,"frequency":"MONTHLY"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/income", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIncomeNotOwnedReturns404(t *testing.T) {
	router, h, mock := newTestRouter(t)
	router.DELETE("/api/income", h.DeleteIncome)

	mock.ExpectExec("DELETE FROM incomes").
		WithArgs("income-1", testUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/income?id=income-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalytics(t *testing.T) {
	router, h, mock := newTestRouter(t)
	router.GET("/api/analytics", h.Analytics)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM incomes").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "amount", "frequency", "created_at"}).
			AddRow("income-1", testUserID, "Salary", 2000.0, "MONTHLY", now))
	mock.ExpectQuery("SELECT (.+) FROM fixed_costs").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "amount", "frequency", "category", "created_at"}).
			AddRow("cost-1", testUserID, "Rent", 900.0, "MONTHLY", "HOUSING", now).
			AddRow("cost-2", testUserID, "Groceries", 300.0, "MONTHLY", "FOOD", now))
	mock.ExpectQuery("SELECT (.+) FROM subscriptions").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "amount", "frequency", "category", "next_billing_date", "worth_it", "created_at"}))
	mock.ExpectQuery("SELECT (.+) FROM goals").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "target_amount", "current_amount", "deadline", "created_at"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		TotalIncome   float64 `json:"totalIncome"`
		TotalExpenses float64 `json:"totalExpenses"`
		SavingsRate   int     `json:"savingsRate"`
		CategoryBreakdown []struct {
			Name  string  `json:"name"`
			Value float64 `json:"value"`
		} `json:"categoryBreakdown"`
		MonthlyTrend []struct {
			Month string `json:"month"`
		} `json:"monthlyTrend"`
		Insights []string `json:"insights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	assert.Equal(t, 2000.0, payload.TotalIncome)
	assert.Equal(t, 1200.0, payload.TotalExpenses)
	assert.Equal(t, 40, payload.SavingsRate)
	require.Len(t, payload.CategoryBreakdown, 2)
	assert.Equal(t, "HOUSING", payload.CategoryBreakdown[0].Name)
	assert.Equal(t, 900.0, payload.CategoryBreakdown[0].Value)
	assert.Len(t, payload.MonthlyTrend, 6)
	require.NotEmpty(t, payload.Insights)
	assert.Contains(t, payload.Insights[0], "saving 40%")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateGoalNotOwnedReturns404(t *testing.T) {
	router, h, mock := newTestRouter(t)
	router.PUT("/api/goals", h.UpdateGoal)

	mock.ExpectExec("UPDATE goals").
		WithArgs("Laptop", 1500.0, 200.0, nil, "goal-1", testUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	body := `{"id":"goal-1","name":"Laptop","target_amount":1500,"current_amount":200}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/goals", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
