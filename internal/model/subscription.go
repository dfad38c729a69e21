package model

import (
	"fmt"
	"time"
)

type Subscription struct {
	ID                     string     `db:"id" json:"id"`
	UserID                 string     `db:"user_id" json:"userId"`
	PlanID                 string     `db:"plan_id" json:"planId"`
	Status                 string     `db:"status" json:"status"`
	Provider               string     `db:"provider" json:"provider"`
	ProviderCustomerID     *string    `db:"provider_customer_id" json:"-"`
	ProviderSubscriptionID *string    `db:"provider_subscription_id" json:"-"`
	CurrentPeriodEnd       *time.Time `db:"current_period_end" json:"currentPeriodEnd,omitempty"`
	Amount                 *int       `db:"amount" json:"amount,omitempty"`
	Currency               string     `db:"currency" json:"currency,omitempty"`
	Interval               *string    `db:"interval" json:"interval,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updatedAt"`
}

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	ProviderStripe = "stripe"
)

const (
	SubscriptionPlanFree    = "free"
	SubscriptionPlanPremium = "premium"
)

const (
	SubscriptionIntervalMonthly = "monthly"
	SubscriptionIntervalYearly  = "yearly"
)

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

func (s *Subscription) IsPaid() bool {
	return s.PlanID != SubscriptionPlanFree && s.IsActive()
}

func (s *Subscription) FormatPrice() string {
	if s.Amount == nil || *s.Amount == 0 {
		return ""
	}

	currencySymbols := map[string]string{
		"usd": "$",
		"eur": "€",
		"inr": "₹",
	}

	amount := float64(*s.Amount) / 100.0
	symbol := currencySymbols[s.Currency]
	if symbol == "" {
		symbol = "$"
	}

	interval := "month"
	if s.Interval != nil && *s.Interval == SubscriptionIntervalYearly {
		interval = "year"
	}

	return fmt.Sprintf("%s%.0f/%s", symbol, amount, interval)
}

// GetFormLimit returns the maximum number of forms allowed for this plan.
// Returns -1 for unlimited.
func (s *Subscription) GetFormLimit() int {
	if !s.IsActive() {
		return 3 // Free tier default
	}

	switch s.PlanID {
	case SubscriptionPlanFree:
		return 3
	case SubscriptionPlanPremium:
		return -1 // unlimited
	default:
		return 3
	}
}

// GetSubmissionLimit returns the maximum number of submissions a single form
// may accept on this plan. Returns -1 for unlimited.
func (s *Subscription) GetSubmissionLimit() int {
	if !s.IsActive() {
		return 100
	}

	switch s.PlanID {
	case SubscriptionPlanFree:
		return 100
	case SubscriptionPlanPremium:
		return -1 // unlimited
	default:
		return 100
	}
}
