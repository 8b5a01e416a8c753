package repository

import (
	"context"
)

// ChartRepo handles chart series and their points.
type ChartRepo struct {
	db DBTX
}

func NewChartRepo(db DBTX) *ChartRepo { return &ChartRepo{db: db} }

func (r *ChartRepo) UpsertSeries(ctx context.Context, s ChartSeries) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO chart_series(id, dashboard_id, title, kind, sort_order)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 kind=excluded.kind,
	 sort_order=excluded.sort_order;
	`, s.ID, s.DashboardID, s.Title, s.Kind, s.SortOrder)
	return err
}

func (r *ChartRepo) UpsertPoint(ctx context.Context, p ChartPoint) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO chart_points(id, series_id, label, value, sort_order)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 label=excluded.label,
	 value=excluded.value,
	 sort_order=excluded.sort_order;
	`, p.ID, p.SeriesID, p.Label, p.Value, p.SortOrder)
	return err
}

// ListByDashboard returns every series with its points attached.
func (r *ChartRepo) ListByDashboard(ctx context.Context, dashboardID string) ([]ChartSeries, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.id, s.dashboard_id, s.title, s.kind, s.sort_order,
	       p.id, p.label, p.value, p.sort_order
	FROM chart_series s
	LEFT JOIN chart_points p ON p.series_id = s.id
	WHERE s.dashboard_id = ?
	ORDER BY s.sort_order, s.id, p.sort_order`, dashboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChartSeries
	for rows.Next() {
		var s ChartSeries
		var pID, pLabel *string
		var pValue *float64
		var pOrder *int
		if err := rows.Scan(&s.ID, &s.DashboardID, &s.Title, &s.Kind, &s.SortOrder,
			&pID, &pLabel, &pValue, &pOrder); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != s.ID {
			out = append(out, s)
		}
		if pID == nil {
			continue
		}
		cur := &out[len(out)-1]
		cur.Points = append(cur.Points, ChartPoint{ID: *pID, SeriesID: s.ID, Label: *pLabel, Value: *pValue, SortOrder: *pOrder})
	}
	return out, rows.Err()
}
