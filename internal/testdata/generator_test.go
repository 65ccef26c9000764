package testdata

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/tenantadmin/internal/database"
	"github.com/jask/tenantadmin/internal/database/repository"
	"github.com/jask/tenantadmin/internal/management"
	"github.com/jask/tenantadmin/internal/service"
)

func TestSeedIsRepeatable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.db")
	require.NoError(t, database.RunMigrations(path))
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	svc := service.NewRegistryService(repository.NewCompanyRepo(db), repository.NewPlanRepo(db))
	n, err := Seed(ctx, svc, 1)
	require.NoError(t, err)
	require.Equal(t, len(demos), n)

	n, err = Seed(ctx, svc, 1)
	require.NoError(t, err)
	require.Zero(t, n)

	companies, err := svc.FetchCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, len(demos))

	s := management.Summarize(companies)
	require.Equal(t, len(demos), s.Total)
	require.Equal(t, 2, s.Inactive)
	require.Equal(t, 6, s.Active)
	require.Equal(t, 6, s.Paid)

	for _, c := range companies {
		if c.CompanyName == "Umbrella Labs" {
			require.Nil(t, c.LastLogin)
		}
		if c.CompanyName == "Acme Corporation" {
			require.NotNil(t, c.LastLogin)
			require.Equal(t, "acme-corporation", c.Subdomain)
		}
	}
}
