package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/jask/campusboard/internal/config"
	"github.com/jask/campusboard/internal/database"
	"github.com/jask/campusboard/internal/database/repository"
	"github.com/jask/campusboard/internal/logging"
	"github.com/jask/campusboard/internal/prefs"
	"github.com/jask/campusboard/internal/service"
	"github.com/jask/campusboard/internal/testdata"
	"github.com/jask/campusboard/internal/tui"
)

const usage = `usage: campusboard [command]

commands:
  (none)                       run the dashboard
  snapshot [role]              print a dashboard with settled counters
  roles                        list roles
  set <role> <metric> <value>  update one metric
  jitter <role>                nudge a role's numeric metrics by up to 5%
  reset                        wipe and reseed the dashboards
  config                       write the effective config to the config file
`

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "campusboard: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	// the last session overrides configured defaults
	session, err := prefs.LoadSession()
	if err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable session file")
	}
	if session.Role != "" {
		cfg.UI.Role = session.Role
	}
	if slices.Contains(tui.ThemeNames, session.Theme) {
		cfg.UI.Theme = session.Theme
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.Migrations); err != nil {
		return err
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.SeedDefaults(ctx, db); err != nil {
		return err
	}

	dash := &service.DashboardService{
		Dashboards: repository.NewDashboardRepo(db),
		Metrics:    repository.NewMetricRepo(db),
		Charts:     repository.NewChartRepo(db),
		Activities: repository.NewActivityRepo(db),
		Tables:     repository.NewTableRepo(db),
		Log:        &log,
	}

	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	log.Debug().Str("command", cmd).Msg("start")

	switch cmd {
	case "":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return printSnapshot(ctx, dash, cfg, cfg.UI.Role)
		}
		return runTUI(ctx, cfg, dash, &log)
	case "snapshot":
		role := cfg.UI.Role
		if len(args) > 1 {
			role = args[1]
		}
		return printSnapshot(ctx, dash, cfg, role)
	case "roles":
		roles, err := dash.Roles(ctx)
		if err != nil {
			return err
		}
		for _, d := range roles {
			fmt.Printf("%-12s %s\n", d.Role, d.Title)
		}
		return nil
	case "set":
		if len(args) != 4 {
			return fmt.Errorf("set needs <role> <metric> <value>\n\n%s", usage)
		}
		role, err := dash.ResolveRole(ctx, args[1])
		if err != nil {
			return err
		}
		return dash.SetMetric(ctx, role, args[2], args[3])
	case "jitter":
		if len(args) != 2 {
			return fmt.Errorf("jitter needs <role>\n\n%s", usage)
		}
		role, err := dash.ResolveRole(ctx, args[1])
		if err != nil {
			return err
		}
		n, err := testdata.Jitter(ctx, testdata.Repos{Dashboards: dash.Dashboards, Metrics: dash.Metrics},
			role, rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			return err
		}
		fmt.Printf("updated %d metrics on %s\n", n, role)
		return nil
	case "reset":
		return resetDashboards(ctx, db, &log)
	case "config":
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Println(config.DefaultPath())
		return nil
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}

func runTUI(ctx context.Context, cfg config.Config, dash *service.DashboardService, log *zerolog.Logger) error {
	app, err := tui.New(ctx, cfg, tui.Services{Dashboards: dash, SaveSession: prefs.SaveSession}, log)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func printSnapshot(ctx context.Context, dash *service.DashboardService, cfg config.Config, input string) error {
	role, err := dash.ResolveRole(ctx, input)
	if err != nil {
		return err
	}
	d, err := dash.Load(ctx, role)
	if err != nil {
		return err
	}
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	out, err := tui.Snapshot(d, cfg, width)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

func resetDashboards(ctx context.Context, db *sql.DB, log *zerolog.Logger) error {
	m := &service.MaintenanceService{DB: db, Log: log}
	if err := m.Reset(ctx); err != nil {
		return err
	}
	fmt.Println("dashboards reset")
	return nil
}
