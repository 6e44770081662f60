package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/dues/internal/logger"
	"github.com/tgienger/dues/internal/router"
	"github.com/tgienger/dues/internal/store"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/views"
)

func newTestApp(t *testing.T, s *store.Store) *App {
	t.Helper()
	m := tracker.New(s, tracker.WithLogger(logger.Discard()))
	a := NewApp(m, logger.Discard())
	a.env.Now = func() time.Time { return time.Date(2024, 12, 12, 9, 0, 0, 0, time.UTC) }
	run(a, a.Init())
	return a
}

// run executes cmd and feeds navigation messages back into the app,
// the way the bubbletea runtime would
func run(a *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(a, c)
		}
	case views.Go, tea.WindowSizeMsg:
		_, next := a.Update(msg)
		run(a, next)
	}
}

func press(a *App, k string) {
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	run(a, cmd)
}

func send(a *App, action router.Action) {
	_, cmd := a.Update(views.Go{Action: action})
	run(a, cmd)
}

func TestFreshSessionStartsOnLanding(t *testing.T) {
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	a := newTestApp(t, s)

	assert.Equal(t, router.Initial(), a.State())
	assert.IsType(t, &views.LandingView{}, a.current)
	assert.False(t, s.IsAuthenticated())
}

func TestSignupPersistsSession(t *testing.T) {
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	a := newTestApp(t, s)

	send(a, router.Navigate{Page: router.PageSignup})
	assert.IsType(t, &views.AuthView{}, a.current)

	send(a, router.Signup{Name: "Ada"})
	assert.Equal(t, router.PageDashboard, a.State().Page)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "dashboard", s.LastPage())
	assert.Equal(t, "Ada", s.UserName())
}

func TestGlobalKeys(t *testing.T) {
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	a := newTestApp(t, s)
	send(a, router.Login{})

	tests := []struct {
		key  string
		page router.Page
		view any
	}{
		{"2", router.PageDeadlines, &views.DeadlinesView{}},
		{"3", router.PageCourses, &views.CoursesView{}},
		{"4", router.PageCalendar, &views.CalendarView{}},
		{"5", router.PageSettings, &views.SettingsView{}},
		{"1", router.PageDashboard, &views.DashboardView{}},
	}
	for _, tt := range tests {
		press(a, tt.key)
		assert.Equal(t, tt.page, a.State().Page, "key %s", tt.key)
		assert.IsType(t, tt.view, a.current)
		assert.Equal(t, string(tt.page), s.LastPage())
	}

	press(a, "L")
	assert.Equal(t, router.Initial(), a.State())
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.LastPage())
}

func TestPageKeysIgnoredWhileTyping(t *testing.T) {
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	a := newTestApp(t, s)
	send(a, router.Navigate{Page: router.PageLogin})

	press(a, "1")
	assert.Equal(t, router.PageLogin, a.State().Page)
}

func TestProtectedPageRedirectsToLogin(t *testing.T) {
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	a := newTestApp(t, s)

	press(a, "4")
	assert.Equal(t, router.PageLogin, a.State().Page)
}

func TestRestoreLastPage(t *testing.T) {
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	a := newTestApp(t, s)
	send(a, router.Login{})
	press(a, "4")

	restored := newTestApp(t, s)
	assert.Equal(t, router.State{Page: router.PageCalendar, Authenticated: true}, restored.State())
	assert.IsType(t, &views.CalendarView{}, restored.current)
}

func TestMissingCourseFallsBackToCourses(t *testing.T) {
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	a := newTestApp(t, s)
	send(a, router.Login{})

	send(a, router.ViewCourse{ID: "gone"})
	assert.Equal(t, router.PageCourses, a.State().Page)
}

func TestViewCourse(t *testing.T) {
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	a := newTestApp(t, s)
	course, err := a.env.Manager.AddCourse(tracker.CourseInput{
		Title: "Physics I", Instructor: "Dr. Davis", Semester: "Fall 2024", Color: "#EF4444",
	})
	require.NoError(t, err)
	send(a, router.Login{})

	send(a, router.ViewCourse{ID: course.ID})
	assert.Equal(t, router.State{Page: router.PageCourseDetails, Authenticated: true, CourseID: course.ID}, a.State())
	assert.Contains(t, a.View(), "Physics I")
}
