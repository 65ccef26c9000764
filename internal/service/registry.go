package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jask/tenantadmin/internal/database/repository"
	"github.com/jask/tenantadmin/internal/management"
)

const registeredMessage = "Company registered successfully"

var _ management.Backend = (*RegistryService)(nil)

// RegistryService implements the console backend over the local database.
type RegistryService struct {
	Companies *repository.CompanyRepo
	Plans     *repository.PlanRepo
	Now       func() time.Time

	validate *validator.Validate
}

func NewRegistryService(companies *repository.CompanyRepo, plans *repository.PlanRepo) *RegistryService {
	return &RegistryService{
		Companies: companies,
		Plans:     plans,
		Now:       func() time.Time { return time.Now().UTC() },
		validate:  validator.New(),
	}
}

type registration struct {
	CompanyName string `validate:"required"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required"`
	PlanID      string `validate:"required"`
}

// FetchCompanies lists every tenant with its current subscription state.
func (s *RegistryService) FetchCompanies(ctx context.Context) ([]management.Company, error) {
	rows, err := s.Companies.List(ctx)
	if err != nil {
		return nil, newError("fetch companies", "", err)
	}
	now := s.Now()
	out := make([]management.Company, 0, len(rows))
	for _, r := range rows {
		out = append(out, toCompany(r, now))
	}
	return out, nil
}

// FetchActivePlans lists the plans offered at registration.
func (s *RegistryService) FetchActivePlans(ctx context.Context) ([]management.SubscriptionPlan, error) {
	plans, err := s.Plans.List(ctx, true)
	if err != nil {
		return nil, newError("fetch plans", "", err)
	}
	out := make([]management.SubscriptionPlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, management.SubscriptionPlan{ID: p.ID, PlanName: p.Name, Price: p.Price, PlanDetails: p.Details})
	}
	return out, nil
}

// RegisterCompany creates a tenant with a subscription to the chosen plan.
func (s *RegistryService) RegisterCompany(ctx context.Context, form management.FormState) (management.RegisterResult, error) {
	const op = "register company"
	in := registration{
		CompanyName: strings.TrimSpace(form.CompanyName),
		Email:       strings.TrimSpace(form.Email),
		Password:    form.Password,
		PlanID:      strings.TrimSpace(form.SubscriptionPlan),
	}
	if err := s.validate.Struct(in); err != nil {
		return management.RegisterResult{}, newError(op, validationMessage(err), ErrInvalidInput)
	}

	plan, err := s.Plans.Get(ctx, in.PlanID)
	if err != nil {
		return management.RegisterResult{}, newError(op, "", err)
	}
	if plan == nil || !plan.Active {
		return management.RegisterResult{}, newError(op, "Selected plan is not available", ErrUnknownPlan)
	}

	taken, err := s.Companies.EmailExists(ctx, in.Email)
	if err != nil {
		return management.RegisterResult{}, newError(op, "", err)
	}
	if taken {
		return management.RegisterResult{}, newError(op, "Email is already registered", ErrDuplicateEmail)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return management.RegisterResult{}, newError(op, "", fmt.Errorf("hash password: %w", err))
	}

	subdomain, err := s.uniqueSubdomain(ctx, in.CompanyName)
	if err != nil {
		return management.RegisterResult{}, newError(op, "", err)
	}

	start := s.Now().Truncate(time.Second)
	company := repository.Company{
		ID:           uuid.NewString(),
		Name:         in.CompanyName,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if subdomain != "" {
		company.Subdomain = &subdomain
	}
	sub := repository.Subscription{
		ID:        uuid.NewString(),
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, plan.DurationDays),
	}
	if err := s.Companies.Create(ctx, company, sub); err != nil {
		return management.RegisterResult{}, newError(op, "", err)
	}
	return management.RegisterResult{Message: registeredMessage}, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a company name into a subdomain label.
func Slugify(name string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if len(s) > 63 {
		s = strings.TrimRight(s[:63], "-")
	}
	return s
}

func (s *RegistryService) uniqueSubdomain(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", nil
	}
	candidate := base
	for i := 0; i < 5; i++ {
		taken, err := s.Companies.SubdomainExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:4]
	}
	return "", fmt.Errorf("no free subdomain for %q", name)
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Invalid registration details"
	}
	fe := verrs[0]
	if fe.Tag() == "email" {
		return "Email address is not valid"
	}
	return fe.Field() + " is required"
}

func toCompany(r repository.CompanyRow, now time.Time) management.Company {
	c := management.Company{
		ID:          r.Company.ID,
		CompanyName: r.Company.Name,
		Email:       r.Company.Email,
		IsActive:    r.Company.IsActive,
		LastLogin:   r.Company.LastLogin,
	}
	if r.Company.Subdomain != nil {
		c.Subdomain = *r.Company.Subdomain
	}
	if r.Subscription == nil || r.Plan == nil {
		return c
	}
	c.IsPaid = r.Plan.Price > 0
	c.SubscriptionPlan = &management.Subscription{
		PlanName:    r.Plan.Name,
		Price:       r.Plan.Price,
		PlanDetails: r.Plan.Details,
		StartDate:   r.Subscription.StartDate,
		EndDate:     r.Subscription.EndDate,
	}
	c.DaysRemaining, c.TimeRemaining = remaining(r.Subscription.EndDate, now)
	return c
}

// remaining splits the time left into whole days, or hours when under a day.
func remaining(end, now time.Time) (int, float64) {
	left := end.Sub(now)
	if left <= 0 {
		return 0, 0
	}
	if days := int(left / (24 * time.Hour)); days > 0 {
		return days, 0
	}
	return 0, math.Round(left.Hours()*10) / 10
}
