// Package billing wraps the Stripe SDK. The client is constructed once in
// main and injected into the handlers.
package billing

import (
	"encoding/json"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

type Client struct {
	api    *client.API
	appURL string
}

func New(secretKey, appURL string) *Client {
	return &Client{
		api:    client.New(secretKey, nil),
		appURL: appURL,
	}
}

// EnsureCustomer creates a Stripe customer tagged with the MoneyMap user ID.
func (c *Client) EnsureCustomer(email, userID string) (string, error) {
	customer, err := c.api.Customers.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Params: stripe.Params{
			Metadata: map[string]string{"userId": userID},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error creating Stripe customer: %w", err)
	}
	return customer.ID, nil
}

// CheckoutURL starts a subscription checkout session for the given price.
func (c *Client) CheckoutURL(customerID, priceID, userID string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(c.appURL + "/settings/billing?success=true"),
		CancelURL:  stripe.String(c.appURL + "/settings/billing?canceled=true"),
		Params: stripe.Params{
			Metadata: map[string]string{"userId": userID},
		},
	}

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("error creating checkout session: %w", err)
	}
	return session.URL, nil
}

// PortalURL opens the customer billing portal.
func (c *Client) PortalURL(customerID string) (string, error) {
	session, err := c.api.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(c.appURL + "/settings/billing"),
	})
	if err != nil {
		return "", fmt.Errorf("error creating portal session: %w", err)
	}
	return session.URL, nil
}

// SubscriptionInfo fetches the price and current period end of a
// subscription, used when the webhook payload carries only the ID.
func (c *Client) SubscriptionInfo(subscriptionID string) (priceID string, periodEnd time.Time, err error) {
	sub, err := c.api.Subscriptions.Get(subscriptionID, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error retrieving subscription %s: %w", subscriptionID, err)
	}
	if len(sub.Items.Data) == 0 {
		return "", time.Time{}, fmt.Errorf("subscription %s has no items", subscriptionID)
	}
	item := sub.Items.Data[0]
	return item.Price.ID, time.Unix(item.CurrentPeriodEnd, 0), nil
}

// Webhook payloads are decoded from the raw event JSON rather than the SDK
// structs: the fields we need are stable on the wire while the SDK moves
// them between versions.

type CheckoutSessionPayload struct {
	Mode         string `json:"mode"`
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
}

type InvoicePayload struct {
	Subscription string `json:"subscription"`
}

type SubscriptionPayload struct {
	ID    string `json:"id"`
	Items struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
			CurrentPeriodEnd int64 `json:"current_period_end"`
		} `json:"data"`
	} `json:"items"`
}

// PriceAndPeriod pulls the first item's price and period end out of a
// subscription event payload.
func (p *SubscriptionPayload) PriceAndPeriod() (string, time.Time, error) {
	if len(p.Items.Data) == 0 {
		return "", time.Time{}, fmt.Errorf("subscription %s has no items", p.ID)
	}
	item := p.Items.Data[0]
	return item.Price.ID, time.Unix(item.CurrentPeriodEnd, 0), nil
}

func ParseCheckoutSession(raw json.RawMessage) (*CheckoutSessionPayload, error) {
	payload := &CheckoutSessionPayload{}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("error decoding checkout session payload: %w", err)
	}
	return payload, nil
}

func ParseInvoice(raw json.RawMessage) (*InvoicePayload, error) {
	payload := &InvoicePayload{}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("error decoding invoice payload: %w", err)
	}
	return payload, nil
}

func ParseSubscription(raw json.RawMessage) (*SubscriptionPayload, error) {
	payload := &SubscriptionPayload{}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("error decoding subscription payload: %w", err)
	}
	return payload, nil
}
