// Package handlers contains the REST request handlers. All dependencies are
// injected through the Handler struct; nothing reads globals.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devin-voegele/moneymap/billing"
	"github.com/devin-voegele/moneymap/budget"
	"github.com/devin-voegele/moneymap/config"
	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/llm"
	"github.com/devin-voegele/moneymap/mailer"
	"github.com/devin-voegele/moneymap/middleware"
	"github.com/devin-voegele/moneymap/models"
)

type Handler struct {
	store   *db.Store
	billing *billing.Client
	llm     *llm.Client
	mail    *mailer.Client
	cfg     *config.Config
}

func New(store *db.Store, billingClient *billing.Client, llmClient *llm.Client, mailClient *mailer.Client, cfg *config.Config) *Handler {
	return &Handler{
		store:   store,
		billing: billingClient,
		llm:     llmClient,
		mail:    mailClient,
		cfg:     cfg,
	}
}

// currentUser pulls the session claims set by the auth middleware. A missing
// or mistyped value means the route was wired without the middleware.
func currentUser(c *gin.Context) (*models.SessionClaims, bool) {
	user, exists := c.Get(middleware.UserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	claims, ok := user.(*models.SessionClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return claims, true
}

// quotaDenied writes the structured 403 payload for a failed quota check and
// reports whether err was a quota error.
func quotaDenied(c *gin.Context, err error) bool {
	quotaErr, ok := err.(*budget.QuotaError)
	if !ok {
		return false
	}
	c.JSON(http.StatusForbidden, gin.H{
		"error":   "FREE_TIER_LIMIT",
		"message": quotaErr.Message(),
		"limit":   quotaErr.Limit,
		"used":    quotaErr.Used,
	})
	return true
}

// userPlan reads the plan off the profile, defaulting to FREE for users who
// have not finished onboarding.
func (h *Handler) userPlan(c *gin.Context, userID string) (models.Plan, bool) {
	profile, err := h.store.GetProfileByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return "", false
	}
	if profile == nil {
		return models.PlanFree, true
	}
	return profile.Plan, true
}
