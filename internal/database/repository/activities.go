package repository

import "context"

// ActivityRepo handles the activity feed.
type ActivityRepo struct {
	db DBTX
}

func NewActivityRepo(db DBTX) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) Upsert(ctx context.Context, a Activity) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO activities(id, dashboard_id, occurred, body, kind, sort_order)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 occurred=excluded.occurred,
	 body=excluded.body,
	 kind=excluded.kind,
	 sort_order=excluded.sort_order;
	`, a.ID, a.DashboardID, a.Occurred, a.Body, a.Kind, a.SortOrder)
	return err
}

func (r *ActivityRepo) ListByDashboard(ctx context.Context, dashboardID string) ([]Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, dashboard_id, occurred, body, kind, sort_order
	FROM activities WHERE dashboard_id = ? ORDER BY sort_order`, dashboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.DashboardID, &a.Occurred, &a.Body, &a.Kind, &a.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
