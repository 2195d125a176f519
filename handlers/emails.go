package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/worker"
)

type weeklySummaryRequest struct {
	UserID string `json:"userId"`
}

// SendWeeklySummary triggers the weekly digest for one user. The route sits
// behind the internal API key, not the session middleware; the scheduler
// covers the recurring sends.
func (h *Handler) SendWeeklySummary(c *gin.Context) {
	var req weeklySummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID required"})
		return
	}

	err := worker.SendWeeklySummary(c.Request.Context(), h.store, h.mail, req.UserID)
	if err == db.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err == worker.ErrNotificationsDisabled {
		c.JSON(http.StatusOK, gin.H{"message": "Email notifications disabled for this user"})
		return
	}
	if err != nil {
		logger.Get().Error("failed to send weekly summary", zap.Error(err), zap.String("user_id", req.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send weekly summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Weekly summary sent successfully"})
}
