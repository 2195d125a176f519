package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/models"
)

type profileRequest struct {
	Currency           string  `json:"currency"`
	Country            *string `json:"country"`
	Persona            *string `json:"persona"`
	EmailNotifications *bool   `json:"email_notifications"`
	WeeklyEmailEnabled *bool   `json:"weekly_email_enabled"`
}

func (h *Handler) UpsertProfile(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.Currency == "" {
		req.Currency = "EUR"
	}

	profile, err := h.store.UpsertProfile(c.Request.Context(), claims.Subject, req.Currency, req.Country, req.Persona)
	if err != nil {
		logger.Get().Error("failed to upsert profile", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if req.EmailNotifications != nil || req.WeeklyEmailEnabled != nil {
		emailNotifications := profile.EmailNotifications
		weeklyEmail := profile.WeeklyEmailEnabled
		if req.EmailNotifications != nil {
			emailNotifications = *req.EmailNotifications
		}
		if req.WeeklyEmailEnabled != nil {
			weeklyEmail = *req.WeeklyEmailEnabled
		}
		if err := h.store.UpdateNotificationSettings(c.Request.Context(), claims.Subject, emailNotifications, weeklyEmail); err != nil {
			logger.Get().Error("failed to update notification settings", zap.Error(err), zap.String("user_id", claims.Subject))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		profile.EmailNotifications = emailNotifications
		profile.WeeklyEmailEnabled = weeklyEmail
	}

	c.JSON(http.StatusOK, profile)
}

// GetProfile merges the profile with the plan and AI usage counters kept on
// the user row.
func (h *Handler) GetProfile(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to get user", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	profile, err := h.store.GetProfileByUserID(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to get profile", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if profile == nil {
		profile = &models.Profile{UserID: claims.Subject, Currency: "EUR", Plan: models.PlanFree}
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":              profile,
		"plan":                 user.Plan,
		"monthly_ai_requests":  user.MonthlyAIRequests,
		"ai_requests_reset_at": user.AIRequestsResetAt,
	})
}
