package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/billing"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/middleware"
)

type checkoutRequest struct {
	PriceID string `json:"priceId"`
}

// Checkout creates a Stripe checkout session for the Pro subscription,
// creating the customer on first use.
func (h *Handler) Checkout(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PriceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price ID required"})
		return
	}

	profile, err := h.store.EnsureProfile(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to ensure profile for checkout", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	customerID := ""
	if profile.StripeCustomerID != nil {
		customerID = *profile.StripeCustomerID
	}
	if customerID == "" {
		customerID, err = h.billing.EnsureCustomer(claims.Email, claims.Subject)
		if err != nil {
			logger.Get().Error("failed to create stripe customer", zap.Error(err), zap.String("user_id", claims.Subject))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
			return
		}
		if err := h.store.UpdateStripeCustomerID(c.Request.Context(), claims.Subject, customerID); err != nil {
			logger.Get().Error("failed to store stripe customer id", zap.Error(err), zap.String("user_id", claims.Subject))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
			return
		}
	}

	url, err := h.billing.CheckoutURL(customerID, req.PriceID, claims.Subject)
	if err != nil {
		logger.Get().Error("failed to create checkout session", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Portal opens the Stripe billing portal for users who already have a
// customer record.
func (h *Handler) Portal(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.store.GetProfileByUserID(c.Request.Context(), claims.Subject)
	if err != nil {
		logger.Get().Error("failed to load profile for portal", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portal session"})
		return
	}
	if profile == nil || profile.StripeCustomerID == nil || *profile.StripeCustomerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No billing account found"})
		return
	}

	url, err := h.billing.PortalURL(*profile.StripeCustomerID)
	if err != nil {
		logger.Get().Error("failed to create portal session", zap.Error(err), zap.String("user_id", claims.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Webhook applies verified Stripe events to the subscription state. The
// signature is checked by middleware before this runs.
func (h *Handler) Webhook(c *gin.Context) {
	value, exists := c.Get(middleware.StripeEventKey)
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}
	event, ok := value.(stripe.Event)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}
	ctx := c.Request.Context()

	var err error
	switch event.Type {
	case "checkout.session.completed":
		session, parseErr := billing.ParseCheckoutSession(event.Data.Raw)
		if parseErr != nil {
			err = parseErr
			break
		}
		if session.Mode != "subscription" {
			break
		}
		priceID, periodEnd, infoErr := h.billing.SubscriptionInfo(session.Subscription)
		if infoErr != nil {
			err = infoErr
			break
		}
		err = h.store.ActivateSubscriptionByCustomerID(ctx, session.Customer, session.Subscription, priceID, periodEnd)

	case "invoice.payment_succeeded":
		invoice, parseErr := billing.ParseInvoice(event.Data.Raw)
		if parseErr != nil {
			err = parseErr
			break
		}
		if invoice.Subscription == "" {
			break
		}
		priceID, periodEnd, infoErr := h.billing.SubscriptionInfo(invoice.Subscription)
		if infoErr != nil {
			err = infoErr
			break
		}
		err = h.store.RenewSubscriptionBySubscriptionID(ctx, invoice.Subscription, priceID, periodEnd)

	case "customer.subscription.updated":
		subscription, parseErr := billing.ParseSubscription(event.Data.Raw)
		if parseErr != nil {
			err = parseErr
			break
		}
		priceID, periodEnd, itemErr := subscription.PriceAndPeriod()
		if itemErr != nil {
			err = itemErr
			break
		}
		err = h.store.RenewSubscriptionBySubscriptionID(ctx, subscription.ID, priceID, periodEnd)

	case "customer.subscription.deleted":
		subscription, parseErr := billing.ParseSubscription(event.Data.Raw)
		if parseErr != nil {
			err = parseErr
			break
		}
		err = h.store.CancelSubscriptionBySubscriptionID(ctx, subscription.ID)

	default:
		logger.Get().Debug("unhandled stripe event", zap.String("type", string(event.Type)))
	}

	if err != nil {
		logger.Get().Error("webhook handler failed", zap.Error(err), zap.String("type", string(event.Type)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
