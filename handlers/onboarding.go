package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/logger"
)

// SeedSampleData inserts a starter data set for new users so the dashboard
// is not empty on first visit. The whole insert runs in one transaction.
func (h *Handler) SeedSampleData(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.store.SeedSampleData(c.Request.Context(), claims.Subject); err != nil {
		logger.Get().Error("failed to seed sample data", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sample data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
