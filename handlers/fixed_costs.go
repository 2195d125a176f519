package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/models"
)

func (h *Handler) ListFixedCosts(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	costs, err := h.store.ListFixedCosts(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to list fixed costs", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, costs)
}

type fixedCostRequest struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Amount    float64          `json:"amount"`
	Frequency models.Frequency `json:"frequency"`
	Category  string           `json:"category"`
}

// Fixed costs have no free-tier cap; only income, goals and subscriptions
// are quota-limited.
func (h *Handler) CreateFixedCost(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req fixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Amount == 0 || req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Frequency == "" {
		req.Frequency = models.FrequencyMonthly
	}

	cost := &models.FixedCost{
		UserID:    claims.Subject,
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: req.Frequency,
		Category:  req.Category,
	}
	if err := h.store.CreateFixedCost(c.Request.Context(), cost); err != nil {
		logger.Get().Error("failed to create fixed cost", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, cost)
}

func (h *Handler) UpdateFixedCost(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req fixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	cost := &models.FixedCost{
		ID:        req.ID,
		UserID:    claims.Subject,
		Name:      req.Name,
		Amount:    req.Amount,
		Frequency: req.Frequency,
		Category:  req.Category,
	}
	err := h.store.UpdateFixedCost(c.Request.Context(), claims.Subject, cost)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fixed cost not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to update fixed cost", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, cost)
}

func (h *Handler) DeleteFixedCost(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	err := h.store.DeleteFixedCost(c.Request.Context(), claims.Subject, id)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fixed cost not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to delete fixed cost", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
