package repository

import (
	"math"
	"strconv"
	"strings"
)

// Dashboard is one role's screen.
type Dashboard struct {
	ID           string
	Role         string
	Title        string
	Subtitle     string
	Theme        string
	CounterStyle string // compact | hero
	SortOrder    int
}

// Metric groups.
const (
	GroupHeadline = "headline"
	GroupStat     = "stat"
)

// Metric is a number shown through an animated counter. Exactly one of
// ValueNum and ValueText carries the value.
type Metric struct {
	ID          string
	DashboardID string
	Group       string
	Title       string
	ValueText   string
	ValueNum    *float64
	Prefix      string
	Suffix      string
	Change      string
	Trend       string // up | down | neutral
	SortOrder   int
}

// Value returns the number, or the raw text when the metric was stored as text.
func (m Metric) Value() any {
	if m.ValueNum != nil {
		return *m.ValueNum
	}
	return m.ValueText
}

// MetricValue splits user input into the stored representation: plain finite
// numbers become ValueNum, anything else (including "NaN" and "Inf") is kept
// verbatim as ValueText.
func MetricValue(raw string) (text string, num *float64) {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return "", &v
	}
	return raw, nil
}

// ChartSeries is one chart panel.
type ChartSeries struct {
	ID          string
	DashboardID string
	Title       string
	Kind        string // bar | line
	SortOrder   int
	Points      []ChartPoint
}

// ChartPoint is a labelled value within a series.
type ChartPoint struct {
	ID        string
	SeriesID  string
	Label     string
	Value     float64
	SortOrder int
}

// Activity is a feed entry.
type Activity struct {
	ID          string
	DashboardID string
	Occurred    string
	Body        string
	Kind        string
	SortOrder   int
}

// InfoTable is a static table panel.
type InfoTable struct {
	ID          string
	DashboardID string
	Title       string
	Columns     []string
	SortOrder   int
	Rows        [][]string
}

const cellSep = "\t"

func joinCells(cells []string) string { return strings.Join(cells, cellSep) }

func splitCells(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, cellSep)
}
