package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/tenantadmin/internal/database/repository"
)

// SeedDefaults ensures the baseline subscription plans exist for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	planRepo := repository.NewPlanRepo(db)
	existing, err := planRepo.List(ctx, false)
	if err == nil && len(existing) > 0 {
		return nil
	}
	defaults := []repository.Plan{
		{Name: "Free Trial", Price: 0, Details: "All features for 14 days", DurationDays: 14},
		{Name: "Basic", Price: 29, Details: "Up to 10 users", DurationDays: 30},
		{Name: "Pro", Price: 99, Details: "Up to 100 users, priority support", DurationDays: 30},
		{Name: "Enterprise", Price: 299, Details: "Unlimited users, dedicated support", DurationDays: 365},
	}
	for idx, p := range defaults {
		p.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("plan:"+p.Name)).String()
		p.Active = true
		p.SortOrder = idx
		if err := planRepo.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
