package testdata

import (
	"context"
	"math"
	"math/rand"

	"github.com/jask/campusboard/internal/database/repository"
)

// Targets returns n non-negative counter targets: a mix of small counts,
// large headcounts and one-decimal percentages.
func Targets(r *rand.Rand, n int) []float64 {
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		switch r.Intn(4) {
		case 0:
			out = append(out, float64(r.Intn(10)))
		case 1:
			out = append(out, float64(r.Intn(20000)))
		case 2:
			out = append(out, math.Round(r.Float64()*1000)/10)
		default:
			out = append(out, float64(r.Int63n(1_000_000_000)))
		}
	}
	return out
}

// Repos bundles repos used by Jitter.
type Repos struct {
	Dashboards *repository.DashboardRepo
	Metrics    *repository.MetricRepo
}

// Jitter nudges every numeric metric on a role's dashboard by up to ±5% so a
// running dashboard has something to animate on refresh. Text metrics are left
// alone. It returns how many metrics changed.
func Jitter(ctx context.Context, repos Repos, role string, r *rand.Rand) (int, error) {
	d, err := repos.Dashboards.ByRole(ctx, role)
	if err != nil {
		return 0, err
	}
	metrics, err := repos.Metrics.ListByDashboard(ctx, d.ID)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, m := range metrics {
		if m.ValueNum == nil {
			continue
		}
		cur := *m.ValueNum
		next := cur * (1 + (r.Float64()-0.5)/10)
		if cur == math.Trunc(cur) {
			next = math.Round(next)
		} else {
			next = math.Round(next*10) / 10
		}
		if next == cur {
			continue
		}
		if err := repos.Metrics.SetValue(ctx, d.ID, m.Title, "", &next); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}
