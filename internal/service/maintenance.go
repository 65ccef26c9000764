package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/tenantadmin/internal/database"
)

// MaintenanceService houses destructive/ops actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset deletes every tenant and subscription. Plans and schema are kept so
// registration keeps working.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	return database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"subscriptions", "companies"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	})
}
