package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/tgienger/dues/internal/router"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
	"github.com/tgienger/dues/internal/ui/views"
)

// headerHeight is the number of lines the nav bar takes
const headerHeight = 2

var navPages = []struct {
	page  router.Page
	label string
}{
	{router.PageDashboard, "1 Dashboard"},
	{router.PageDeadlines, "2 Deadlines"},
	{router.PageCourses, "3 Courses"},
	{router.PageCalendar, "4 Calendar"},
	{router.PageSettings, "5 Settings"},
}

type App struct {
	env     *views.Env
	state   router.State
	current tea.Model
	styles  *styles.Styles
	keys    keys.KeyMap
	width   int
	height  int
}

// Creates a new application
func NewApp(manager *tracker.Manager, log logrus.FieldLogger) *App {
	styles.SetTheme(manager.Theme())
	return &App{
		env: &views.Env{
			Manager: manager,
			Log:     log.WithField("component", "ui"),
			Now:     time.Now,
		},
		current: views.NewLandingView(),
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
	}
}

// State returns the current router state
func (a *App) State() router.State {
	return a.state
}

func (a *App) Init() tea.Cmd {
	a.state = router.Restore(a.env.Manager.LastSession())
	a.env.Log.WithField("page", a.state.Page).Info("session restored")
	return a.open()
}

// open builds the view for the current page and persists the session
func (a *App) open() tea.Cmd {
	a.current = a.build(a.state)

	var err error
	if a.state.Authenticated {
		err = a.env.Manager.SaveSession(string(a.state.Page), true)
	} else {
		err = a.env.Manager.EndSession()
	}
	if err != nil {
		a.env.Log.WithError(err).Error("save session")
	}

	return tea.Batch(
		a.current.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height - a.chrome()}
		},
	)
}

func (a *App) build(s router.State) tea.Model {
	switch s.Page {
	case router.PageLogin:
		return views.NewAuthView(false)
	case router.PageSignup:
		return views.NewAuthView(true)
	case router.PageDashboard:
		return views.NewDashboardView(a.env)
	case router.PageDeadlines:
		return views.NewDeadlinesView(a.env)
	case router.PageCourses:
		return views.NewCoursesView(a.env)
	case router.PageCourseDetails:
		return views.NewCourseDetailsView(a.env, s.CourseID)
	case router.PageCalendar:
		return views.NewCalendarView(a.env)
	case router.PageSettings:
		return views.NewSettingsView(a.env)
	}
	return views.NewLandingView()
}

// apply runs a router action and opens the resulting page
func (a *App) apply(action router.Action) tea.Cmd {
	if signup, ok := action.(router.Signup); ok {
		if err := a.env.Manager.SetDisplayName(signup.Name); err != nil {
			a.env.Log.WithError(err).Error("save display name")
		}
	}

	next := router.Transition(a.state, action)
	a.env.Log.WithFields(logrus.Fields{
		"from": a.state.Page,
		"to":   next.Page,
	}).Debug("navigate")

	if next == a.state {
		return nil
	}
	a.state = next
	return a.open()
}

// chrome is the height taken by the nav bar, zero on public pages
func (a *App) chrome() int {
	if a.state.Authenticated {
		return headerHeight
	}
	return 0
}

func (a *App) capturing() bool {
	c, ok := a.current.(views.Capturer)
	return ok && c.Capturing()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		msg.Height -= a.chrome()
		_, cmd := a.current.Update(msg)
		return a, cmd

	case views.Go:
		return a, a.apply(msg.Action)

	case views.ThemeChanged:
		a.styles = styles.NewStyles()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturing() {
			if cmd, ok := a.globalKey(msg); ok {
				return a, cmd
			}
		}
	}

	_, cmd := a.current.Update(msg)
	return a, cmd
}

// globalKey handles page switching, logout and quit
func (a *App) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, a.keys.Logout) && a.state.Authenticated:
		return a.apply(router.Logout{}), true
	}

	pages := []struct {
		binding key.Binding
		page    router.Page
	}{
		{a.keys.Dashboard, router.PageDashboard},
		{a.keys.Deadlines, router.PageDeadlines},
		{a.keys.Courses, router.PageCourses},
		{a.keys.Calendar, router.PageCalendar},
		{a.keys.Settings, router.PageSettings},
	}
	for _, p := range pages {
		if key.Matches(msg, p.binding) {
			return a.apply(router.Navigate{Page: p.page}), true
		}
	}
	return nil, false
}

func (a *App) View() string {
	if a.current == nil {
		return ""
	}
	if !a.state.Authenticated {
		return a.current.View()
	}
	return a.renderNav() + "\n" + a.current.View()
}

func (a *App) renderNav() string {
	s := a.styles
	tabs := make([]string, 0, len(navPages)+2)
	tabs = append(tabs, s.Title.Render("dues "))
	for _, p := range navPages {
		active := p.page == a.state.Page ||
			(p.page == router.PageCourses && a.state.Page == router.PageCourseDetails)
		if active {
			tabs = append(tabs, s.TabActive.Render(p.label))
		} else {
			tabs = append(tabs, s.Tab.Render(p.label))
		}
	}
	tabs = append(tabs, s.Tab.Render("L Log out"))

	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, tabs...),
		s.TitleMuted.Render(strings.Repeat("─", styles.ContentWidth(a.width))),
	)
	if a.width > styles.MaxWidth {
		header = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header)
	}
	return header
}
