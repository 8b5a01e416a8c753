package tui

import "github.com/charmbracelet/lipgloss"

// Theme is a dashboard palette.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Tertiary  lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Up        lipgloss.Color
	Down      lipgloss.Color
	Neutral   lipgloss.Color
}

// ThemeNames is the cycle order for the theme key.
var ThemeNames = []string{"light", "green", "blue", "ocean"}

var themes = map[string]Theme{
	"light": {
		Name: "Default", Primary: "#059669", Secondary: "#0ea5e9", Accent: "#8b5cf6", Tertiary: "#f59e0b",
		Text: "#1e293b", Muted: "#64748b", Border: "#cbd5e1",
		Up: "#047857", Down: "#b91c1c", Neutral: "#475569",
	},
	"green": {
		Name: "Green", Primary: "#16a34a", Secondary: "#65a30d", Accent: "#0d9488", Tertiary: "#ca8a04",
		Text: "#14532d", Muted: "#4d7c0f", Border: "#bbf7d0",
		Up: "#15803d", Down: "#b91c1c", Neutral: "#475569",
	},
	"blue": {
		Name: "VidyaLink", Primary: "#001675", Secondary: "#2563eb", Accent: "#7c3aed", Tertiary: "#f59e0b",
		Text: "#0f172a", Muted: "#444346", Border: "#bfdbfe",
		Up: "#047857", Down: "#b91c1c", Neutral: "#475569",
	},
	"ocean": {
		Name: "Ocean", Primary: "#0891b2", Secondary: "#0284c7", Accent: "#6366f1", Tertiary: "#14b8a6",
		Text: "#083344", Muted: "#155e75", Border: "#a5f3fc",
		Up: "#0f766e", Down: "#be123c", Neutral: "#475569",
	},
}

// ThemeByName falls back to light for unknown names.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["light"]
}

func nextTheme(name string) string {
	for i, n := range ThemeNames {
		if n == name {
			return ThemeNames[(i+1)%len(ThemeNames)]
		}
	}
	return ThemeNames[0]
}

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	card      lipgloss.Style
	cardTitle lipgloss.Style
	counter   lipgloss.Style
	hero      lipgloss.Style
	panel     lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	badge     map[string]lipgloss.Style
	status    lipgloss.Style
	errStatus lipgloss.Style
	series    []lipgloss.Color
}

func newStyles(t Theme) styles {
	badge := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c).Bold(true) }
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtitle:  lipgloss.NewStyle().Foreground(t.Muted),
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(t.Muted),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true).Foreground(t.Primary),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		cardTitle: lipgloss.NewStyle().Foreground(t.Muted),
		counter:   lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		hero:      lipgloss.NewStyle().Bold(true).Foreground(t.Primary).PaddingTop(1),
		panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1),
		heading:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(t.Text),
		muted:     lipgloss.NewStyle().Foreground(t.Muted),
		badge: map[string]lipgloss.Style{
			"up":      badge(t.Up),
			"down":    badge(t.Down),
			"neutral": badge(t.Neutral),
		},
		status:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		errStatus: lipgloss.NewStyle().Foreground(t.Down).Bold(true),
		series:    []lipgloss.Color{t.Primary, t.Secondary, t.Accent, t.Tertiary},
	}
}
