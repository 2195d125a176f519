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

func (h *Handler) ListSubscriptions(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	subscriptions, err := h.store.ListSubscriptions(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to list subscriptions", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, subscriptions)
}

type subscriptionRequest struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Amount          float64          `json:"amount"`
	Frequency       models.Frequency `json:"frequency"`
	Category        *string          `json:"category"`
	NextBillingDate *time.Time       `json:"next_billing_date"`
	WorthIt         *string          `json:"worth_it"`
}

func (h *Handler) CreateSubscription(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	plan, ok := h.userPlan(c, claims.Subject)
	if !ok {
		return
	}
	count, err := h.store.CountSubscriptions(c.Request.Context(), claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if err := budget.CheckQuota(plan, budget.ResourceSubscription, count); err != nil {
		quotaDenied(c, err)
		return
	}

	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Frequency == "" {
		req.Frequency = models.FrequencyMonthly
	}
	if req.WorthIt == nil {
		worthIt := "YES"
		req.WorthIt = &worthIt
	}

	subscription := &models.Subscription{
		UserID:          claims.Subject,
		Name:            req.Name,
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		Category:        req.Category,
		NextBillingDate: req.NextBillingDate,
		WorthIt:         req.WorthIt,
	}
	if err := h.store.CreateSubscription(c.Request.Context(), subscription); err != nil {
		logger.Get().Error("failed to create subscription", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, subscription)
}

func (h *Handler) UpdateSubscription(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	subscription := &models.Subscription{
		ID:              req.ID,
		UserID:          claims.Subject,
		Name:            req.Name,
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		Category:        req.Category,
		NextBillingDate: req.NextBillingDate,
		WorthIt:         req.WorthIt,
	}
	err := h.store.UpdateSubscription(c.Request.Context(), claims.Subject, subscription)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to update subscription", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, subscription)
}

func (h *Handler) DeleteSubscription(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID"})
		return
	}

	err := h.store.DeleteSubscription(c.Request.Context(), claims.Subject, id)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to delete subscription", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
