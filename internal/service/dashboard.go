package service

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jask/campusboard/internal/database/repository"
)

// roleMatchThreshold is the largest edit distance accepted as "probably meant".
const roleMatchThreshold = 3

// Dashboard is everything one role screen renders.
type Dashboard struct {
	repository.Dashboard
	Headline   []repository.Metric
	Stats      []repository.Metric
	Charts     []repository.ChartSeries
	Tables     []repository.InfoTable
	Activities []repository.Activity
}

// UnknownRoleError is returned when a role cannot be resolved. Suggestions
// holds the closest known roles, nearest first.
type UnknownRoleError struct {
	Input       string
	Suggestions []string
}

func (e *UnknownRoleError) Error() string {
	if len(e.Suggestions) == 0 {
		return `unknown role "` + e.Input + `"`
	}
	return `unknown role "` + e.Input + `" (did you mean ` + strings.Join(e.Suggestions, ", ") + "?)"
}

// DashboardService loads role dashboards and edits their metrics.
type DashboardService struct {
	Dashboards *repository.DashboardRepo
	Metrics    *repository.MetricRepo
	Charts     *repository.ChartRepo
	Activities *repository.ActivityRepo
	Tables     *repository.TableRepo
	Log        *zerolog.Logger
}

func (s *DashboardService) logger() *zerolog.Logger {
	if s.Log == nil {
		l := zerolog.Nop()
		return &l
	}
	return s.Log
}

// Load assembles the full dashboard for role.
func (s *DashboardService) Load(ctx context.Context, role string) (Dashboard, error) {
	d, err := s.Dashboards.ByRole(ctx, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Dashboard{}, s.unknownRole(ctx, role)
		}
		return Dashboard{}, errors.Wrapf(err, "load dashboard %s", role)
	}
	out := Dashboard{Dashboard: *d}

	metrics, err := s.Metrics.ListByDashboard(ctx, d.ID)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "list metrics")
	}
	for _, m := range metrics {
		if m.Group == repository.GroupHeadline {
			out.Headline = append(out.Headline, m)
		} else {
			out.Stats = append(out.Stats, m)
		}
	}
	if out.Charts, err = s.Charts.ListByDashboard(ctx, d.ID); err != nil {
		return Dashboard{}, errors.Wrap(err, "list charts")
	}
	if out.Tables, err = s.Tables.ListByDashboard(ctx, d.ID); err != nil {
		return Dashboard{}, errors.Wrap(err, "list tables")
	}
	if out.Activities, err = s.Activities.ListByDashboard(ctx, d.ID); err != nil {
		return Dashboard{}, errors.Wrap(err, "list activities")
	}
	s.logger().Debug().Str("role", role).Int("metrics", len(metrics)).Msg("dashboard loaded")
	return out, nil
}

// Roles lists every role in display order.
func (s *DashboardService) Roles(ctx context.Context) ([]repository.Dashboard, error) {
	list, err := s.Dashboards.List(ctx)
	return list, errors.Wrap(err, "list dashboards")
}

// ResolveRole maps user input onto a known role. Matching is case-insensitive;
// a unique prefix or a single role within roleMatchThreshold edits also
// resolves. Anything else is an *UnknownRoleError.
func (s *DashboardService) ResolveRole(ctx context.Context, input string) (string, error) {
	roles, err := s.Roles(ctx)
	if err != nil {
		return "", err
	}
	return resolveRole(roles, input)
}

func resolveRole(roles []repository.Dashboard, input string) (string, error) {
	want := strings.ToLower(strings.TrimSpace(input))
	if want == "" {
		return "", &UnknownRoleError{Input: input}
	}

	var prefixed []string
	for _, d := range roles {
		if d.Role == want {
			return d.Role, nil
		}
		if strings.HasPrefix(d.Role, want) {
			prefixed = append(prefixed, d.Role)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], nil
	}

	type cand struct {
		role string
		dist int
	}
	var near []cand
	for _, d := range roles {
		if dist := levenshtein.ComputeDistance(want, d.Role); dist <= roleMatchThreshold && dist < len(d.Role) {
			near = append(near, cand{d.Role, dist})
		}
	}
	sort.SliceStable(near, func(i, j int) bool { return near[i].dist < near[j].dist })
	if len(near) == 1 || (len(near) > 1 && near[0].dist < near[1].dist) {
		return near[0].role, nil
	}

	suggestions := prefixed
	if len(suggestions) == 0 {
		for _, c := range near {
			suggestions = append(suggestions, c.role)
		}
	}
	return "", &UnknownRoleError{Input: input, Suggestions: suggestions}
}

func (s *DashboardService) unknownRole(ctx context.Context, role string) error {
	roles, err := s.Roles(ctx)
	if err != nil {
		return err
	}
	resolved, err := resolveRole(roles, role)
	if err != nil {
		return err
	}
	return &UnknownRoleError{Input: role, Suggestions: []string{resolved}}
}

// SetMetric stores a new value for the metric titled title on role's dashboard.
// Numeric input is stored as a number, anything else verbatim.
func (s *DashboardService) SetMetric(ctx context.Context, role, title, value string) error {
	d, err := s.Dashboards.ByRole(ctx, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.unknownRole(ctx, role)
		}
		return errors.Wrapf(err, "load dashboard %s", role)
	}
	text, num := repository.MetricValue(value)
	if err := s.Metrics.SetValue(ctx, d.ID, title, text, num); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errors.Wrapf(err, "metric %q on %s", title, role)
		}
		return errors.Wrap(err, "set metric")
	}
	s.logger().Info().Str("role", role).Str("metric", title).Str("value", value).Msg("metric updated")
	return nil
}
