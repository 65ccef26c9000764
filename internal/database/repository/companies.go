package repository

import (
	"context"
	"database/sql"
	"time"
)

// CompanyRepo handles tenants and their subscriptions.
type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{db: db} }

// Create inserts a company and its first subscription atomically.
func (r *CompanyRepo) Create(ctx context.Context, c Company, s Subscription) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO companies(id, company_name, email, password_hash, subdomain, is_active, last_login, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, c.ID, c.Name, c.Email, c.PasswordHash, c.Subdomain, c.IsActive, c.LastLogin); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `
	INSERT INTO subscriptions(id, company_id, plan_id, start_date, end_date, created_at)
	VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, s.ID, c.ID, s.PlanID, s.StartDate, s.EndDate); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *CompanyRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}

func (r *CompanyRepo) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies WHERE subdomain = ?`, subdomain).Scan(&n)
	return n > 0, err
}

func (r *CompanyRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE companies SET last_login = ? WHERE id = ?`, at, id)
	return err
}

func (r *CompanyRepo) UpdateActive(ctx context.Context, id string, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE companies SET is_active = ? WHERE id = ?`, active, id)
	return err
}

// List returns every company with its latest subscription, oldest first.
func (r *CompanyRepo) List(ctx context.Context) ([]CompanyRow, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT c.id, c.company_name, c.email, c.password_hash, c.subdomain, c.is_active, c.last_login, c.created_at,
	       s.id, s.plan_id, s.start_date, s.end_date,
	       p.plan_name, p.price, p.plan_details, p.duration_days, p.active
	FROM companies c
	LEFT JOIN subscriptions s ON s.id = (
	    SELECT s2.id FROM subscriptions s2
	    WHERE s2.company_id = c.id
	    ORDER BY s2.start_date DESC, s2.created_at DESC
	    LIMIT 1)
	LEFT JOIN plans p ON p.id = s.plan_id
	ORDER BY c.created_at, c.rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CompanyRow
	for rows.Next() {
		var (
			row       CompanyRow
			subdomain sql.NullString
			lastLogin sql.NullTime
			subID     sql.NullString
			planID    sql.NullString
			start     sql.NullTime
			end       sql.NullTime
			planName  sql.NullString
			price     sql.NullFloat64
			details   sql.NullString
			duration  sql.NullInt64
			active    sql.NullBool
		)
		c := &row.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash, &subdomain, &c.IsActive, &lastLogin, &c.CreatedAt,
			&subID, &planID, &start, &end,
			&planName, &price, &details, &duration, &active); err != nil {
			return nil, err
		}
		if subdomain.Valid {
			v := subdomain.String
			c.Subdomain = &v
		}
		if lastLogin.Valid {
			v := lastLogin.Time
			c.LastLogin = &v
		}
		if subID.Valid {
			row.Subscription = &Subscription{
				ID:        subID.String,
				CompanyID: c.ID,
				PlanID:    planID.String,
				StartDate: start.Time,
				EndDate:   end.Time,
			}
		}
		if planName.Valid {
			row.Plan = &Plan{
				ID:           planID.String,
				Name:         planName.String,
				Price:        price.Float64,
				Details:      details.String,
				DurationDays: int(duration.Int64),
				Active:       active.Bool,
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
