package service

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jask/campusboard/internal/database"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB  *sql.DB
	Log *zerolog.Logger
}

// Reset wipes every dashboard and reseeds the defaults. The schema is kept.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		tables := []string{
			"info_rows",
			"info_tables",
			"activities",
			"chart_points",
			"chart_series",
			"metrics",
			"dashboards",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return errors.Wrapf(err, "reset table %s", t)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	if err := database.SeedDefaults(ctx, s.DB); err != nil {
		return err
	}
	if s.Log != nil {
		s.Log.Info().Msg("dashboards reset")
	}
	return nil
}
