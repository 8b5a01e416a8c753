package repository

import (
	"context"
	"database/sql"
)

// DashboardRepo handles dashboards.
type DashboardRepo struct {
	db DBTX
}

func NewDashboardRepo(db DBTX) *DashboardRepo { return &DashboardRepo{db: db} }

func (r *DashboardRepo) Upsert(ctx context.Context, d Dashboard) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO dashboards(id, role, title, subtitle, theme, counter_style, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 role=excluded.role,
	 title=excluded.title,
	 subtitle=excluded.subtitle,
	 theme=excluded.theme,
	 counter_style=excluded.counter_style,
	 sort_order=excluded.sort_order;
	`, d.ID, d.Role, d.Title, d.Subtitle, d.Theme, d.CounterStyle, d.SortOrder)
	return err
}

func (r *DashboardRepo) List(ctx context.Context) ([]Dashboard, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, role, title, subtitle, theme, counter_style, sort_order
	FROM dashboards ORDER BY sort_order, role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Dashboard
	for rows.Next() {
		var d Dashboard
		if err := rows.Scan(&d.ID, &d.Role, &d.Title, &d.Subtitle, &d.Theme, &d.CounterStyle, &d.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ByRole returns ErrNotFound for an unknown role.
func (r *DashboardRepo) ByRole(ctx context.Context, role string) (*Dashboard, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, role, title, subtitle, theme, counter_style, sort_order
	FROM dashboards WHERE role = ?`, role)
	var d Dashboard
	if err := row.Scan(&d.ID, &d.Role, &d.Title, &d.Subtitle, &d.Theme, &d.CounterStyle, &d.SortOrder); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
