package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jask/campusboard/internal/config"
	"github.com/jask/campusboard/internal/counter"
	"github.com/jask/campusboard/internal/database/repository"
	"github.com/jask/campusboard/internal/frame"
	"github.com/jask/campusboard/internal/prefs"
	"github.com/jask/campusboard/internal/service"
)

const defaultWidth = 100

// App is the dashboard model. Every counter on screen shares one frame loop,
// which is flushed on a tea.Tick while it has work queued.
type App struct {
	ctx      context.Context
	services Services
	log      *zerolog.Logger

	loop     *frame.Loop
	interval time.Duration // between frames
	refresh  time.Duration
	ticking  bool
	compact  counter.Options
	hero     counter.Options

	roles     []repository.Dashboard
	role      string
	dash      *service.Dashboard
	headline  []*card
	stats     []*card
	themeName string

	keys     keyMap
	help     help.Model
	jump     textinput.Model
	jumping  bool
	status   string
	statusOK bool
	width    int
	quitting bool
}

type Services struct {
	Dashboards *service.DashboardService
	// SaveSession persists the role and theme; nil disables it.
	SaveSession func(prefs.Session) error
}

// New builds the model. cfg.UI.Role and cfg.UI.Theme are the starting role and theme.
func New(ctx context.Context, cfg config.Config, services Services, log *zerolog.Logger) (*App, error) {
	compact, hero, err := CounterOptions(cfg.Counter)
	if err != nil {
		return nil, err
	}
	if log == nil {
		l := zerolog.Nop()
		log = &l
	}
	fps := cfg.UI.FPS
	if fps <= 0 {
		fps = 60
	}
	jump := textinput.New()
	jump.Prompt = "role: "
	jump.Placeholder = "admin, principal, hod..."
	jump.CharLimit = 32

	return &App{
		ctx:       ctx,
		services:  services,
		log:       log,
		loop:      frame.NewLoop(),
		interval:  time.Second / time.Duration(fps),
		refresh:   cfg.UI.RefreshInterval,
		compact:   compact,
		hero:      hero,
		role:      cfg.UI.Role,
		themeName: cfg.UI.Theme,
		keys:      newKeyMap(),
		help:      help.New(),
		jump:      jump,
	}, nil
}

// CounterOptions turns counter config into options for compact and hero cards.
func CounterOptions(cfg config.CounterConfig) (compact, hero counter.Options, err error) {
	easing, err := counter.EasingByName(cfg.Easing)
	if err != nil {
		return compact, hero, err
	}
	tag, err := counter.ParseLocale(cfg.Locale)
	if err != nil {
		return compact, hero, err
	}
	f := counter.NewFormatter(tag)
	compact = counter.Options{Duration: cfg.CompactDuration, Easing: easing, Formatter: f}
	hero = counter.Options{Duration: cfg.HeroDuration, Easing: easing, Formatter: f}
	return compact, hero, nil
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadRoles(), a.refreshTick())
}

// messages
type frameMsg time.Time

type refreshMsg time.Time

type rolesMsg []repository.Dashboard

type dashboardMsg struct {
	dash    service.Dashboard
	remount bool
}

type roleResolvedMsg string

type errMsg struct{ error }

func (a *App) loadRoles() tea.Cmd {
	return func() tea.Msg {
		roles, err := a.services.Dashboards.Roles(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return rolesMsg(roles)
	}
}

func (a *App) loadDashboard(role string, remount bool) tea.Cmd {
	return func() tea.Msg {
		d, err := a.services.Dashboards.Load(a.ctx, role)
		if err != nil {
			return errMsg{err}
		}
		return dashboardMsg{dash: d, remount: remount}
	}
}

func (a *App) resolveRoleCmd(input string) tea.Cmd {
	return func() tea.Msg {
		role, err := a.services.Dashboards.ResolveRole(a.ctx, input)
		if err != nil {
			return errMsg{err}
		}
		return roleResolvedMsg(role)
	}
}

func (a *App) saveSessionCmd() tea.Cmd {
	if a.services.SaveSession == nil {
		return nil
	}
	s := prefs.Session{Role: a.role, Theme: a.themeName}
	save := a.services.SaveSession
	return func() tea.Msg {
		if err := save(s); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (a *App) refreshTick() tea.Cmd {
	if a.refresh <= 0 {
		return nil
	}
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

// scheduleFrame keeps at most one frame tick outstanding, and none while the
// loop is idle.
func (a *App) scheduleFrame() tea.Cmd {
	if a.ticking || a.loop.Pending() == 0 {
		return nil
	}
	a.ticking = true
	return tea.Tick(a.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case tea.KeyMsg:
		if a.jumping {
			return a.handleJumpKey(m)
		}
		return a.handleKey(m)
	case frameMsg:
		a.ticking = false
		a.loop.Flush(time.Time(m))
		return a, a.scheduleFrame()
	case refreshMsg:
		if a.dash == nil {
			return a, a.refreshTick()
		}
		return a, tea.Batch(a.loadDashboard(a.role, false), a.refreshTick())
	case rolesMsg:
		a.roles = []repository.Dashboard(m)
		if a.roleIndex() < 0 && len(a.roles) > 0 {
			a.setStatus("unknown role "+a.role+", showing "+a.roles[0].Role, false)
			a.role = a.roles[0].Role
		}
		if a.role == "" {
			return a, nil
		}
		return a, a.loadDashboard(a.role, true)
	case dashboardMsg:
		if m.dash.Role != a.role {
			// stale load for a role we already left
			return a, nil
		}
		a.apply(m.dash, m.remount)
		return a, a.scheduleFrame()
	case roleResolvedMsg:
		return a, a.switchTo(string(m))
	case errMsg:
		a.log.Error().Err(m.error).Str("role", a.role).Msg("dashboard error")
		a.setStatus("error: "+m.Error(), false)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.quitting = true
		a.unmount()
		return a, tea.Quit
	case key.Matches(m, a.keys.Next):
		return a, a.step(1)
	case key.Matches(m, a.keys.Prev):
		return a, a.step(-1)
	case key.Matches(m, a.keys.Theme):
		a.themeName = nextTheme(a.themeName)
		a.setStatus("theme: "+ThemeByName(a.themeName).Name, true)
		return a, a.saveSessionCmd()
	case key.Matches(m, a.keys.Replay):
		if a.dash != nil {
			a.apply(*a.dash, true)
		}
		return a, a.scheduleFrame()
	case key.Matches(m, a.keys.Reload):
		if a.role == "" {
			return a, nil
		}
		a.setStatus("reloading...", true)
		return a, a.loadDashboard(a.role, false)
	case key.Matches(m, a.keys.Jump):
		a.jumping = true
		a.jump.SetValue("")
		return a, a.jump.Focus()
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) handleJumpKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Cancel):
		a.closeJump()
		return a, nil
	case key.Matches(m, a.keys.Confirm):
		input := strings.TrimSpace(a.jump.Value())
		a.closeJump()
		if input == "" {
			return a, nil
		}
		return a, a.resolveRoleCmd(input)
	case m.Type == tea.KeyCtrlC:
		a.quitting = true
		a.unmount()
		return a, tea.Quit
	}
	var cmd tea.Cmd
	a.jump, cmd = a.jump.Update(m)
	return a, cmd
}

func (a *App) closeJump() {
	a.jumping = false
	a.jump.Blur()
}

func (a *App) roleIndex() int {
	for i, d := range a.roles {
		if d.Role == a.role {
			return i
		}
	}
	return -1
}

func (a *App) step(delta int) tea.Cmd {
	if len(a.roles) == 0 {
		return nil
	}
	i := a.roleIndex()
	if i < 0 {
		i = 0
	}
	i = (i + delta + len(a.roles)) % len(a.roles)
	return a.switchTo(a.roles[i].Role)
}

// switchTo tears down the current counters before the next dashboard loads.
func (a *App) switchTo(role string) tea.Cmd {
	if role == a.role && a.dash != nil {
		return nil
	}
	a.unmount()
	a.dash = nil
	a.role = role
	a.status = ""
	a.log.Debug().Str("role", role).Msg("switch role")
	return tea.Batch(a.loadDashboard(role, true), a.saveSessionCmd())
}

// apply mounts d, or retargets the existing cards when only values changed.
func (a *App) apply(d service.Dashboard, remount bool) {
	if !remount && a.dash != nil && a.dash.ID == d.ID &&
		retargetCards(a.headline, d.Headline) && retargetCards(a.stats, d.Stats) {
		a.dash = &d
		if a.status == "reloading..." {
			a.status = ""
		}
		return
	}
	a.unmount()
	a.dash = &d
	opts := a.compact
	if d.CounterStyle == "hero" {
		opts = a.hero
	}
	a.headline = mountCards(a.loop, d.Headline, opts)
	a.stats = mountCards(a.loop, d.Stats, a.compact)
	if a.status == "reloading..." {
		a.status = ""
	}
}

func (a *App) unmount() {
	disposeCards(a.headline)
	disposeCards(a.stats)
	a.headline, a.stats = nil, nil
}

func (a *App) setStatus(s string, ok bool) {
	a.status, a.statusOK = s, ok
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	width := a.width
	if width <= 0 {
		width = defaultWidth
	}
	st := newStyles(ThemeByName(a.themeName))

	var b strings.Builder
	b.WriteString(renderTabs(st, a.roles, a.role))
	b.WriteString("\n\n")
	if a.dash == nil {
		b.WriteString(st.muted.Render("loading..."))
	} else {
		b.WriteString(renderDashboard(st, *a.dash, a.headline, a.stats, width))
	}
	b.WriteString("\n")
	if a.jumping {
		b.WriteString("\n" + a.jump.View())
	}
	if a.status != "" {
		style := st.status
		if !a.statusOK {
			style = st.errStatus
		}
		b.WriteString("\n" + style.Render(a.status))
	}
	b.WriteString("\n")
	if a.jumping {
		b.WriteString(a.help.View(jumpKeyMap{a.keys}))
	} else {
		b.WriteString(a.help.View(a.keys))
	}
	return b.String()
}
