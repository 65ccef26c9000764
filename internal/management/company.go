package management

import (
	"strconv"
	"time"
)

// Company is a tenant record as returned by the backend.
type Company struct {
	ID               string        `json:"id"`
	CompanyName      string        `json:"company_name"`
	Email            string        `json:"email"`
	Password         string        `json:"password,omitempty"`
	Subdomain        string        `json:"subdomain,omitempty"`
	IsActive         bool          `json:"is_active"`
	IsPaid           bool          `json:"is_paid"`
	LastLogin        *time.Time    `json:"last_login,omitempty"`
	SubscriptionPlan *Subscription `json:"subscription_plan"`
	DaysRemaining    int           `json:"days_remaining"`
	TimeRemaining    float64       `json:"time_remaining"`
}

// Subscription is the plan embedded in a company record.
type Subscription struct {
	PlanName    string    `json:"plan_name"`
	Price       float64   `json:"price"`
	PlanDetails string    `json:"plan_details"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// SubscriptionPlan is a selectable plan option.
type SubscriptionPlan struct {
	ID          string  `json:"id"`
	PlanName    string  `json:"plan_name"`
	Price       float64 `json:"price"`
	PlanDetails string  `json:"plan_details"`
}

// RegisterResult is the backend reply to a successful registration.
type RegisterResult struct {
	Message string `json:"message"`
}

// PlanName returns the subscription plan name or a placeholder when the record has no plan.
func (c Company) PlanName() string {
	if c.SubscriptionPlan == nil || c.SubscriptionPlan.PlanName == "" {
		return "No plan"
	}
	return c.SubscriptionPlan.PlanName
}

// RemainingLabel renders the remaining-time badge shown on each card.
func (c Company) RemainingLabel() string {
	switch {
	case c.DaysRemaining > 0:
		return strconv.Itoa(c.DaysRemaining) + " Days Remaining"
	case c.TimeRemaining > 0:
		return strconv.FormatFloat(c.TimeRemaining, 'f', -1, 64) + " Time Remaining"
	default:
		return "Plan Expired"
	}
}

// SubdomainLabel renders the subdomain line of a card.
func (c Company) SubdomainLabel() string {
	if c.Subdomain == "" {
		return "No Subdomain"
	}
	return "Subdomain: " + c.Subdomain
}
