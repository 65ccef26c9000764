package management

import (
	"context"
	"errors"
	"sync/atomic"
)

type stubBackend struct {
	fetchCompaniesFn func(ctx context.Context) ([]Company, error)
	fetchPlansFn     func(ctx context.Context) ([]SubscriptionPlan, error)
	registerFn       func(ctx context.Context, form FormState) (RegisterResult, error)

	fetches   atomic.Int32
	registers atomic.Int32
}

func (s *stubBackend) FetchCompanies(ctx context.Context) ([]Company, error) {
	s.fetches.Add(1)
	if s.fetchCompaniesFn == nil {
		return nil, nil
	}
	return s.fetchCompaniesFn(ctx)
}

func (s *stubBackend) FetchActivePlans(ctx context.Context) ([]SubscriptionPlan, error) {
	if s.fetchPlansFn == nil {
		return nil, nil
	}
	return s.fetchPlansFn(ctx)
}

func (s *stubBackend) RegisterCompany(ctx context.Context, form FormState) (RegisterResult, error) {
	s.registers.Add(1)
	if s.registerFn == nil {
		return RegisterResult{}, errors.New("register not stubbed")
	}
	return s.registerFn(ctx, form)
}

// run executes a job and applies its outcome, following any chained jobs.
func run(c *Console, j Job) {
	for j != nil {
		j = c.Apply(j(context.Background()))
	}
}

func sampleCompanies() []Company {
	return []Company{
		{ID: "1", CompanyName: "Acme Corp", IsActive: true, IsPaid: true},
		{ID: "2", CompanyName: "XabcY Ltd", IsActive: true, IsPaid: false},
		{ID: "3", CompanyName: "Dormant Inc", IsActive: false, IsPaid: true},
		{ID: "4", CompanyName: "Beta Labs", IsActive: false, IsPaid: false},
	}
}

func fillForm(c *Console) {
	_ = c.UpdateField(FieldCompanyName, "NewCo")
	_ = c.UpdateField(FieldEmail, "ops@newco.test")
	_ = c.UpdateField(FieldPassword, "s3cret")
	_ = c.UpdateField(FieldSubscriptionPlan, "plan-basic")
}
