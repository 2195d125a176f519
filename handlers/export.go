package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *Handler) ExportExcel(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	userID := claims.Subject

	incomes, err := h.store.ListIncomes(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load export data", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	fixedCosts, err := h.store.ListFixedCosts(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load export data", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	subscriptions, err := h.store.ListSubscriptions(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load export data", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	goals, err := h.store.ListGoals(ctx, userID)
	if err != nil {
		logger.Get().Error("failed to load export data", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	buf, err := report.BuildBudgetReport(incomes, fixedCosts, subscriptions, goals)
	if err != nil {
		logger.Get().Error("failed to build excel report", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	filename := fmt.Sprintf("MoneyMap_Report_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
