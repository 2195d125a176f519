package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/budget"
	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/models"
)

func (h *Handler) ListGoals(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.store.ListGoals(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to list goals", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

type goalRequest struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	Deadline      *time.Time `json:"deadline"`
}

func (h *Handler) CreateGoal(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	plan, ok := h.userPlan(c, claims.Subject)
	if !ok {
		return
	}
	count, err := h.store.CountGoals(c.Request.Context(), claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if err := budget.CheckQuota(plan, budget.ResourceGoal, count); err != nil {
		quotaDenied(c, err)
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.TargetAmount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	goal := &models.Goal{
		UserID:        claims.Subject,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
	}
	if err := h.store.CreateGoal(c.Request.Context(), goal); err != nil {
		logger.Get().Error("failed to create goal", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *Handler) UpdateGoal(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	goal := &models.Goal{
		ID:            req.ID,
		UserID:        claims.Subject,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
	}
	err := h.store.UpdateGoal(c.Request.Context(), claims.Subject, goal)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to update goal", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	err := h.store.DeleteGoal(c.Request.Context(), claims.Subject, id)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to delete goal", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
