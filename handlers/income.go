package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/budget"
	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/models"
)

func (h *Handler) ListIncome(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	incomes, err := h.store.ListIncomes(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to list incomes", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, incomes)
}

type incomeRequest struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Amount    float64          `json:"amount"`
	Frequency models.Frequency `json:"frequency"`
}

func (h *Handler) CreateIncome(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	plan, ok := h.userPlan(c, claims.Subject)
	if !ok {
		return
	}
	count, err := h.store.CountIncomes(c.Request.Context(), claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if err := budget.CheckQuota(plan, budget.ResourceIncome, count); err != nil {
		quotaDenied(c, err)
		return
	}

	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Frequency == "" {
		req.Frequency = models.FrequencyMonthly
	}

	income := &models.Income{
		UserID:    claims.Subject,
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: req.Frequency,
	}
	if err := h.store.CreateIncome(c.Request.Context(), income); err != nil {
		logger.Get().Error("failed to create income", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, income)
}

func (h *Handler) UpdateIncome(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req incomeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	income := &models.Income{
		ID:        req.ID,
		UserID:    claims.Subject,
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: req.Frequency,
	}
	err := h.store.UpdateIncome(c.Request.Context(), claims.Subject, income)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to update income", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, income)
}

func (h *Handler) DeleteIncome(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	err := h.store.DeleteIncome(c.Request.Context(), claims.Subject, id)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Income not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to delete income", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
