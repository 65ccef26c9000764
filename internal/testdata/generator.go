package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jask/tenantadmin/internal/database/repository"
	"github.com/jask/tenantadmin/internal/management"
	"github.com/jask/tenantadmin/internal/service"
)

type demo struct {
	Name     string
	Plan     string
	Inactive bool
	LoggedIn bool
}

var demos = []demo{
	{Name: "Acme Corporation", Plan: "Pro", LoggedIn: true},
	{Name: "Globex Industries", Plan: "Enterprise", LoggedIn: true},
	{Name: "Initech", Plan: "Basic", LoggedIn: true},
	{Name: "Umbrella Labs", Plan: "Free Trial"},
	{Name: "Hooli", Plan: "Pro", Inactive: true, LoggedIn: true},
	{Name: "Vandelay Imports", Plan: "Free Trial", Inactive: true},
	{Name: "Stark Logistics", Plan: "Basic", LoggedIn: true},
	{Name: "Wayne Holdings", Plan: "Enterprise"},
}

// Seed registers a fixed set of demo tenants through the registry so they get
// hashed passwords, subdomains and subscriptions like real ones. Tenants whose
// email is already taken are skipped.
func Seed(ctx context.Context, svc *service.RegistryService, seed int64) (int, error) {
	rng := rand.New(rand.NewSource(seed))

	plans, err := svc.FetchActivePlans(ctx)
	if err != nil {
		return 0, err
	}
	planIDs := map[string]string{}
	for _, p := range plans {
		planIDs[p.PlanName] = p.ID
	}

	created := 0
	now := time.Now().UTC()
	for i, d := range demos {
		planID, ok := planIDs[d.Plan]
		if !ok {
			return created, fmt.Errorf("seed %s: plan %q not available", d.Name, d.Plan)
		}
		email := fmt.Sprintf("admin@%s.test", service.Slugify(d.Name))
		taken, err := svc.Companies.EmailExists(ctx, email)
		if err != nil {
			return created, err
		}
		if taken {
			continue
		}
		_, err = svc.RegisterCompany(ctx, management.FormState{
			CompanyName:      d.Name,
			Email:            email,
			Password:         fmt.Sprintf("demo-%d-%04d", i, rng.Intn(10000)),
			SubscriptionPlan: planID,
		})
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", d.Name, err)
		}
		created++
		if err := adjust(ctx, svc.Companies, email, d, now, rng); err != nil {
			return created, err
		}
	}
	return created, nil
}

func adjust(ctx context.Context, repo *repository.CompanyRepo, email string, d demo, now time.Time, rng *rand.Rand) error {
	if !d.Inactive && !d.LoggedIn {
		return nil
	}
	rows, err := repo.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range rows {
		if r.Company.Email != email {
			continue
		}
		if d.Inactive {
			if err := repo.UpdateActive(ctx, r.Company.ID, false); err != nil {
				return err
			}
		}
		if d.LoggedIn {
			at := now.Add(-time.Duration(rng.Intn(72*60)) * time.Minute).Truncate(time.Minute)
			if err := repo.UpdateLastLogin(ctx, r.Company.ID, at); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("seed: %s not found after registration", email)
}
