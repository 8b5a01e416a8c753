package repository

import (
	"context"
)

// MetricRepo handles metrics.
type MetricRepo struct {
	db DBTX
}

func NewMetricRepo(db DBTX) *MetricRepo { return &MetricRepo{db: db} }

func (r *MetricRepo) Upsert(ctx context.Context, m Metric) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO metrics(id, dashboard_id, grp, title, value_text, value_num, prefix, suffix, change, trend, sort_order)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 grp=excluded.grp,
	 title=excluded.title,
	 value_text=excluded.value_text,
	 value_num=excluded.value_num,
	 prefix=excluded.prefix,
	 suffix=excluded.suffix,
	 change=excluded.change,
	 trend=excluded.trend,
	 sort_order=excluded.sort_order;
	`, m.ID, m.DashboardID, m.Group, m.Title, m.ValueText, m.ValueNum, m.Prefix, m.Suffix, m.Change, m.Trend, m.SortOrder)
	return err
}

// ListByDashboard returns headline metrics first, then stats, each in sort order.
func (r *MetricRepo) ListByDashboard(ctx context.Context, dashboardID string) ([]Metric, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, dashboard_id, grp, title, value_text, value_num, prefix, suffix, change, trend, sort_order
	FROM metrics WHERE dashboard_id = ?
	ORDER BY CASE grp WHEN 'headline' THEN 0 ELSE 1 END, sort_order, title`, dashboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Metric
	for rows.Next() {
		var m Metric
		if err := rows.Scan(&m.ID, &m.DashboardID, &m.Group, &m.Title, &m.ValueText, &m.ValueNum,
			&m.Prefix, &m.Suffix, &m.Change, &m.Trend, &m.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetValue replaces one metric's value, matched by title (case-insensitive).
func (r *MetricRepo) SetValue(ctx context.Context, dashboardID, title, valueText string, valueNum *float64) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE metrics SET value_text = ?, value_num = ?
	WHERE dashboard_id = ? AND lower(title) = lower(?)`, valueText, valueNum, dashboardID, title)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
