package services

import (
	"context"

	watchparty "github.com/watchparty/watchparty-go"
)

// BillingService covers plans, subscriptions, and invoices.
type BillingService struct {
	client *watchparty.Client
}

// Plan is a subscription tier.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PriceCents   int      `json:"price_cents"`
	Currency     string   `json:"currency"`
	Interval     string   `json:"interval"`
	Features     []string `json:"features,omitempty"`
	MaxPartySize int      `json:"max_party_size"`
}

// Subscription is the current user's active subscription.
type Subscription struct {
	ID               string `json:"id"`
	PlanID           string `json:"plan_id"`
	Status           string `json:"status"`
	CurrentPeriodEnd string `json:"current_period_end,omitempty"`
	CancelAtEnd      bool   `json:"cancel_at_period_end"`
}

// Invoice is one billing record.
type Invoice struct {
	ID          string `json:"id"`
	AmountCents int    `json:"amount_cents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	IssuedAt    string `json:"issued_at,omitempty"`
	PDFURL      string `json:"pdf_url,omitempty"`
}

// SubscribeRequest selects a plan and a payment method.
type SubscribeRequest struct {
	PlanID          string `json:"plan_id"`
	PaymentMethodID string `json:"payment_method_id,omitempty"`
}

// UpdatePaymentMethodRequest swaps the payment method on file.
type UpdatePaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
}

// Plans returns the available subscription tiers.
func (s *BillingService) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.Get(ctx, watchparty.EndpointBillingPlans, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Subscription returns the current user's subscription, if any.
func (s *BillingService) Subscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := s.client.Get(ctx, watchparty.EndpointBillingSubscription, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Subscribe starts a subscription on the given plan.
func (s *BillingService) Subscribe(ctx context.Context, req SubscribeRequest) (*Subscription, error) {
	var sub Subscription
	if err := s.client.Post(ctx, watchparty.EndpointBillingSubscribe, req, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Cancel schedules the subscription to end at the current period boundary.
func (s *BillingService) Cancel(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := s.client.Delete(ctx, watchparty.EndpointBillingSubscription, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Invoices returns the current user's billing history.
func (s *BillingService) Invoices(ctx context.Context) ([]Invoice, error) {
	var invoices []Invoice
	if err := s.client.Get(ctx, watchparty.EndpointBillingInvoices, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// UpdatePaymentMethod swaps the payment method on file.
func (s *BillingService) UpdatePaymentMethod(ctx context.Context, req UpdatePaymentMethodRequest) error {
	return s.client.Put(ctx, watchparty.EndpointBillingPaymentMethod, req, nil)
}
