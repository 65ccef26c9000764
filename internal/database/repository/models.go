package repository

import "time"

// Plan represents a subscription plan row.
type Plan struct {
	ID           string
	Name         string
	Price        float64
	Details      string
	DurationDays int
	Active       bool
	SortOrder    int
}

// Company represents a tenant row.
type Company struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Subdomain    *string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
}

// Subscription links a company to a plan for a period.
type Subscription struct {
	ID        string
	CompanyID string
	PlanID    string
	StartDate time.Time
	EndDate   time.Time
}

// CompanyRow is a company joined with its latest subscription, if any.
type CompanyRow struct {
	Company      Company
	Subscription *Subscription
	Plan         *Plan
}
