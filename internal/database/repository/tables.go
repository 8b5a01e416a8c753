package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TableRepo handles static info tables.
type TableRepo struct {
	db DBTX
}

func NewTableRepo(db DBTX) *TableRepo { return &TableRepo{db: db} }

// Upsert writes the table and replaces all of its rows.
func (r *TableRepo) Upsert(ctx context.Context, t InfoTable) error {
	if _, err := r.db.ExecContext(ctx, `
	INSERT INTO info_tables(id, dashboard_id, title, columns, sort_order)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 columns=excluded.columns,
	 sort_order=excluded.sort_order;
	`, t.ID, t.DashboardID, t.Title, joinCells(t.Columns), t.SortOrder); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM info_rows WHERE table_id = ?`, t.ID); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if _, err := r.db.ExecContext(ctx, `
		INSERT INTO info_rows(id, table_id, cells, sort_order) VALUES (?, ?, ?, ?)`,
			rowID(t.ID, i), t.ID, joinCells(row), i); err != nil {
			return err
		}
	}
	return nil
}

func (r *TableRepo) ListByDashboard(ctx context.Context, dashboardID string) ([]InfoTable, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT t.id, t.dashboard_id, t.title, t.columns, t.sort_order, r.cells
	FROM info_tables t
	LEFT JOIN info_rows r ON r.table_id = t.id
	WHERE t.dashboard_id = ?
	ORDER BY t.sort_order, t.id, r.sort_order`, dashboardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InfoTable
	for rows.Next() {
		var t InfoTable
		var cols string
		var cells *string
		if err := rows.Scan(&t.ID, &t.DashboardID, &t.Title, &cols, &t.SortOrder, &cells); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].ID != t.ID {
			t.Columns = splitCells(cols)
			out = append(out, t)
		}
		if cells == nil {
			continue
		}
		cur := &out[len(out)-1]
		cur.Rows = append(cur.Rows, splitCells(*cells))
	}
	return out, rows.Err()
}

func rowID(tableID string, i int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("row:%s:%d", tableID, i))).String()
}
