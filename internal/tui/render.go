package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/campusboard/internal/config"
	"github.com/jask/campusboard/internal/database/repository"
	"github.com/jask/campusboard/internal/frame"
	"github.com/jask/campusboard/internal/service"
)

const (
	chartHeight  = 10
	minCardWidth = 18
)

// Snapshot renders d with every counter already at its target. Used when
// there is no terminal to animate in.
func Snapshot(d service.Dashboard, cfg config.Config, width int) (string, error) {
	compact, hero, err := CounterOptions(cfg.Counter)
	if err != nil {
		return "", err
	}
	if width <= 0 {
		width = defaultWidth
	}
	loop := frame.NewLoop()
	opts := compact
	if d.CounterStyle == "hero" {
		opts = hero
	}
	headline := mountCards(loop, d.Headline, opts)
	stats := mountCards(loop, d.Stats, compact)
	for _, c := range append(append([]*card{}, headline...), stats...) {
		c.engine.Settle()
	}
	st := newStyles(ThemeByName(cfg.UI.Theme))
	return renderDashboard(st, d, headline, stats, width) + "\n", nil
}

func renderTabs(st styles, roles []repository.Dashboard, current string) string {
	tabs := make([]string, 0, len(roles))
	for _, d := range roles {
		if d.Role == current {
			tabs = append(tabs, st.activeTab.Render(d.Role))
		} else {
			tabs = append(tabs, st.tab.Render(d.Role))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderDashboard(st styles, d service.Dashboard, headline, stats []*card, width int) string {
	sections := []string{st.title.Render(d.Title)}
	if d.Subtitle != "" {
		sections = append(sections, st.subtitle.Render(d.Subtitle))
	}
	if len(headline) > 0 {
		sections = append(sections, "", renderCards(st, headline, width, d.CounterStyle == "hero"))
	}
	if len(stats) > 0 {
		sections = append(sections, "", renderStats(st, stats, width))
	}
	if charts := renderCharts(st, d.Charts, width); charts != "" {
		sections = append(sections, "", charts)
	}
	for _, t := range d.Tables {
		sections = append(sections, "", renderInfoTable(st, t, width))
	}
	if len(d.Activities) > 0 {
		sections = append(sections, "", renderActivities(st, d.Activities))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderCards(st styles, cards []*card, width int, hero bool) string {
	perRow := len(cards)
	cardWidth := width/perRow - 2
	for cardWidth < minCardWidth && perRow > 1 {
		perRow--
		cardWidth = width/perRow - 2
	}
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		boxes := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			boxes = append(boxes, renderCard(st, c, cardWidth, hero))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(st styles, c *card, width int, hero bool) string {
	value := st.counter.Render(c.text())
	if hero {
		value = st.hero.Render(c.text())
	}
	lines := []string{st.cardTitle.Render(c.metric.Title), value}
	if c.metric.Change != "" {
		lines = append(lines, renderBadge(st, c.metric.Change, c.metric.Trend))
	}
	return st.card.Width(width).Render(strings.Join(lines, "\n"))
}

func renderBadge(st styles, change, trend string) string {
	style, ok := st.badge[trend]
	if !ok {
		style = st.badge["neutral"]
	}
	arrow := "•"
	switch trend {
	case "up":
		arrow = "▲"
	case "down":
		arrow = "▼"
	}
	return style.Render(arrow + " " + change)
}

func renderStats(st styles, stats []*card, width int) string {
	titleWidth := 28
	for _, c := range stats {
		titleWidth = max(titleWidth, lipgloss.Width(c.metric.Title)+2)
	}
	cols := []table.Column{
		{Title: "Metric", Width: min(titleWidth, width/2)},
		{Title: "Value", Width: 18},
	}
	rows := make([]table.Row, 0, len(stats))
	for _, c := range stats {
		rows = append(rows, table.Row{c.metric.Title, c.text()})
	}
	return renderTable(st, cols, rows)
}

func renderInfoTable(st styles, t repository.InfoTable, width int) string {
	if len(t.Columns) == 0 {
		return ""
	}
	colWidth := max(10, (width-4)/len(t.Columns)-2)
	cols := make([]table.Column, 0, len(t.Columns))
	for _, name := range t.Columns {
		cols = append(cols, table.Column{Title: name, Width: colWidth})
	}
	rows := make([]table.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(table.Row, len(t.Columns))
		copy(row, r)
		rows = append(rows, row)
	}
	return st.heading.Render(t.Title) + "\n" + renderTable(st, cols, rows)
}

func renderTable(st styles, cols []table.Column, rows []table.Row) string {
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithFocused(false), table.WithHeight(len(rows)+2))
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).BorderForeground(st.series[0])
	// no cursor row on a read-only table
	ts.Selected = lipgloss.NewStyle()
	t.SetStyles(ts)
	return st.panel.Render(t.View())
}

func renderCharts(st styles, series []repository.ChartSeries, width int) string {
	if len(series) == 0 {
		return ""
	}
	perRow := 2
	if width < 80 || len(series) == 1 {
		perRow = 1
	}
	panelWidth := width/perRow - 4
	var panels []string
	for i, s := range series {
		color := st.series[i%len(st.series)]
		var body string
		switch s.Kind {
		case "bar":
			body = barChart(s, panelWidth, color)
		default:
			body = lineChart(s, panelWidth, color)
		}
		panels = append(panels, st.panel.Render(st.heading.Render(s.Title)+"\n"+body))
	}
	var rows []string
	for start := 0; start < len(panels); start += perRow {
		end := min(start+perRow, len(panels))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func barChart(s repository.ChartSeries, width int, color lipgloss.Color) string {
	if len(s.Points) == 0 {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(color)
	data := make([]barchart.BarData, 0, len(s.Points))
	for _, p := range s.Points {
		data = append(data, barchart.BarData{
			Label:  p.Label,
			Values: []barchart.BarValue{{Name: p.Label, Value: p.Value, Style: style}},
		})
	}
	bc := barchart.New(width, chartHeight)
	bc.PushAll(data)
	bc.Draw()
	return bc.View()
}

// chartEpoch anchors line chart points; point i sits i days after it and the
// x axis labels map back to the point labels.
var chartEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func lineChart(s repository.ChartSeries, width int, color lipgloss.Color) string {
	if len(s.Points) < 2 {
		return ""
	}
	minY, maxY := s.Points[0].Value, s.Points[0].Value
	for _, p := range s.Points {
		minY = math.Min(minY, p.Value)
		maxY = math.Max(maxY, p.Value)
	}
	pad := (maxY - minY) * 0.1
	if pad == 0 {
		pad = 1
	}
	start := chartEpoch
	end := chartEpoch.AddDate(0, 0, len(s.Points)-1)

	chart := tslc.New(width, chartHeight)
	chart.SetStyle(lipgloss.NewStyle().Foreground(color))
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(math.Max(0, minY-pad), maxY+pad)
	chart.SetViewYRange(math.Max(0, minY-pad), maxY+pad)
	chart.Model.XLabelFormatter = pointLabelFormatter(s.Points)
	chart.Model.YLabelFormatter = func(_ int, v float64) string { return fmt.Sprintf("%.0f", v) }
	for i, p := range s.Points {
		chart.Push(tslc.TimePoint{Time: chartEpoch.AddDate(0, 0, i), Value: p.Value})
	}
	chart.DrawBraille()
	return chart.View()
}

// pointLabelFormatter labels each point once, at the first axis tick that
// rounds to it.
func pointLabelFormatter(points []repository.ChartPoint) linechart.LabelFormatter {
	used := make(map[int]bool, len(points))
	return func(_ int, v float64) string {
		days := (v - float64(chartEpoch.Unix())) / 86400
		idx := int(math.Round(days))
		if idx < 0 || idx >= len(points) || used[idx] {
			return ""
		}
		used[idx] = true
		return points[idx].Label
	}
}

func renderActivities(st styles, feed []repository.Activity) string {
	lines := []string{st.heading.Render("Recent Activity")}
	for _, a := range feed {
		line := "• " + a.Body
		if a.Kind != "" {
			line += " " + st.muted.Render("["+a.Kind+"]")
		}
		lines = append(lines, line, "  "+st.muted.Render(a.Occurred))
	}
	return strings.Join(lines, "\n")
}
