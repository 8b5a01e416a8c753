package tui

import (
	"github.com/jask/campusboard/internal/counter"
	"github.com/jask/campusboard/internal/database/repository"
	"github.com/jask/campusboard/internal/frame"
)

// card binds one metric to its animated counter.
type card struct {
	metric repository.Metric
	engine *counter.Engine
	cancel counter.Cancel
}

func newCard(sched frame.Scheduler, m repository.Metric, opts counter.Options) *card {
	opts.Prefix, opts.Suffix = m.Prefix, m.Suffix
	c := &card{metric: m, engine: counter.New(sched, opts)}
	c.cancel = c.engine.SetTarget(m.Value())
	return c
}

// retarget feeds a refreshed value to the counter. Unchanged numbers keep the
// current run; changed numbers restart it.
func (c *card) retarget(m repository.Metric) {
	c.metric.Change, c.metric.Trend = m.Change, m.Trend
	c.metric.ValueText, c.metric.ValueNum = m.ValueText, m.ValueNum
	c.cancel = c.engine.SetTarget(m.Value())
}

func (c *card) dispose() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *card) text() string { return c.engine.Text() }

func mountCards(sched frame.Scheduler, metrics []repository.Metric, opts counter.Options) []*card {
	out := make([]*card, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, newCard(sched, m, opts))
	}
	return out
}

func disposeCards(cards []*card) {
	for _, c := range cards {
		c.dispose()
	}
}

// retargetCards matches refreshed metrics by id. It reports false when the set
// of metrics changed and the cards must be remounted instead.
func retargetCards(cards []*card, metrics []repository.Metric) bool {
	if len(cards) != len(metrics) {
		return false
	}
	for i, m := range metrics {
		if cards[i].metric.ID != m.ID {
			return false
		}
	}
	for i, m := range metrics {
		cards[i].retarget(m)
	}
	return true
}
