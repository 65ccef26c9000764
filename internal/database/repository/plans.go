package repository

import (
	"context"
	"database/sql"
	"errors"
)

// PlanRepo handles subscription plans.
type PlanRepo struct {
	db *sql.DB
}

func NewPlanRepo(db *sql.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

func (r *PlanRepo) Upsert(ctx context.Context, p Plan) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO plans(id, plan_name, price, plan_details, duration_days, active, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 plan_name=excluded.plan_name,
	 price=excluded.price,
	 plan_details=excluded.plan_details,
	 duration_days=excluded.duration_days,
	 active=excluded.active,
	 sort_order=excluded.sort_order;
	`, p.ID, p.Name, p.Price, p.Details, p.DurationDays, p.Active, p.SortOrder)
	return err
}

// List returns plans ordered by price. activeOnly hides retired plans.
func (r *PlanRepo) List(ctx context.Context, activeOnly bool) ([]Plan, error) {
	q := `SELECT id, plan_name, price, plan_details, duration_days, active, sort_order FROM plans`
	if activeOnly {
		q += ` WHERE active = 1`
	}
	q += ` ORDER BY price, sort_order, plan_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Details, &p.DurationDays, &p.Active, &p.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns the plan with id, or nil when it does not exist.
func (r *PlanRepo) Get(ctx context.Context, id string) (*Plan, error) {
	var p Plan
	err := r.db.QueryRowContext(ctx, `
	SELECT id, plan_name, price, plan_details, duration_days, active, sort_order FROM plans WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Details, &p.DurationDays, &p.Active, &p.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
