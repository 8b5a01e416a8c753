package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/campusboard/internal/database"
	"github.com/jask/campusboard/internal/database/repository"
	"github.com/jask/campusboard/internal/logging"
)

func setupDB(t *testing.T) (*sql.DB, *DashboardService) {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	svc := &DashboardService{
		Dashboards: repository.NewDashboardRepo(db),
		Metrics:    repository.NewMetricRepo(db),
		Charts:     repository.NewChartRepo(db),
		Activities: repository.NewActivityRepo(db),
		Tables:     repository.NewTableRepo(db),
		Log:        logging.Nop(),
	}
	return db, svc
}

func TestLoadAdminDashboard(t *testing.T) {
	_, svc := setupDB(t)
	d, err := svc.Load(context.Background(), "admin")
	require.NoError(t, err)
	require.Equal(t, "Dashboard Overview", d.Title)
	require.Equal(t, "hero", d.CounterStyle)
	require.Len(t, d.Headline, 4)
	require.Len(t, d.Stats, 4)
	require.Equal(t, 8535.0, d.Headline[0].Value())
	require.Equal(t, "₹13.1 Cr", d.Headline[2].Value())
	require.Len(t, d.Charts, 2)
	require.Len(t, d.Tables, 1)
	require.Len(t, d.Activities, 4)
}

func TestLoadUnknownRoleSuggests(t *testing.T) {
	_, svc := setupDB(t)
	_, err := svc.Load(context.Background(), "admn")
	var unknown *UnknownRoleError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, []string{"admin"}, unknown.Suggestions)
	require.Contains(t, err.Error(), "did you mean admin")
}

func TestResolveRole(t *testing.T) {
	_, svc := setupDB(t)
	ctx := context.Background()

	cases := map[string]string{
		"admin":    "admin",
		" Admin ":  "admin",
		"prin":     "principal",
		"facluty":  "faculty",
		"hdo":      "hod",
		"coord":    "coordinator",
		"PRINCIPL": "principal",
	}
	for input, want := range cases {
		got, err := svc.ResolveRole(ctx, input)
		require.NoError(t, err, input)
		require.Equal(t, want, got, input)
	}

	_, err := svc.ResolveRole(ctx, "c")
	var unknown *UnknownRoleError
	require.ErrorAs(t, err, &unknown)
	require.ElementsMatch(t, []string{"college", "coordinator"}, unknown.Suggestions)

	_, err = svc.ResolveRole(ctx, "registrar")
	require.ErrorAs(t, err, &unknown)
	require.Empty(t, unknown.Suggestions)

	_, err = svc.ResolveRole(ctx, "xyz")
	require.Error(t, err)

	_, err = svc.ResolveRole(ctx, "")
	require.Error(t, err)
}

func TestSetMetric(t *testing.T) {
	_, svc := setupDB(t)
	ctx := context.Background()

	require.NoError(t, svc.SetMetric(ctx, "college", "total students", "2900"))
	require.NoError(t, svc.SetMetric(ctx, "college", "HODs", "—"))
	d, err := svc.Load(ctx, "college")
	require.NoError(t, err)
	require.Equal(t, 2900.0, d.Headline[0].Value())
	require.Equal(t, "—", d.Headline[3].Value())

	err = svc.SetMetric(ctx, "college", "Nope", "1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.SetMetric(ctx, "colege", "HODs", "1")
	var unknown *UnknownRoleError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, []string{"college"}, unknown.Suggestions)
}

func TestResetReseeds(t *testing.T) {
	db, svc := setupDB(t)
	ctx := context.Background()
	require.NoError(t, svc.SetMetric(ctx, "admin", "Colleges", "4"))

	m := &MaintenanceService{DB: db}
	require.NoError(t, m.Reset(ctx))

	d, err := svc.Load(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, 3.0, d.Headline[3].Value())

	roles, err := svc.Roles(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 6)

	require.Error(t, (&MaintenanceService{}).Reset(ctx))
}
