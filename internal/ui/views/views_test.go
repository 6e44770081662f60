package views

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgienger/dues/internal/logger"
	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/router"
	"github.com/tgienger/dues/internal/store"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/styles"
)

var testNow = time.Date(2024, 12, 12, 9, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	s := store.New(store.NewMemoryBackend(), logger.Discard())
	return &Env{
		Manager: tracker.New(s, tracker.WithLogger(logger.Discard()), tracker.WithOverdueDerivation(true)),
		Log:     logger.Discard(),
		Now:     func() time.Time { return testNow },
	}
}

func addCourse(t *testing.T, env *Env, title string) models.Course {
	t.Helper()
	c, err := env.Manager.AddCourse(tracker.CourseInput{
		Title: title, Instructor: "Dr. Smith", Semester: "Fall 2024", Color: "#3B82F6",
	})
	require.NoError(t, err)
	return c
}

func addDeadline(t *testing.T, env *Env, courseID, name string, due time.Time) models.Deadline {
	t.Helper()
	d, err := env.Manager.AddDeadline(tracker.DeadlineInput{
		TaskName: name, CourseID: courseID, Type: models.TypeAssignment,
		DueDate: due, Priority: models.PriorityMedium,
	})
	require.NoError(t, err)
	return d
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m tea.Model, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

func TestDeadlinesViewAddThroughForm(t *testing.T) {
	env := newTestEnv(t)
	course := addCourse(t, env, "Calculus II")
	v := NewDeadlinesView(env)

	v.Update(keyRunes("n"))
	require.True(t, v.Capturing())

	typeText(v, "Problem Set 7")
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.False(t, v.Capturing())
	deadlines := env.Manager.Deadlines()
	require.Len(t, deadlines, 1)
	assert.Equal(t, "Problem Set 7", deadlines[0].TaskName)
	assert.Equal(t, course.ID, deadlines[0].CourseID)
	assert.Equal(t, models.Midnight(testNow), deadlines[0].DueDate)
	assert.Equal(t, models.StatusUpcoming, deadlines[0].Status)
}

func TestDeadlinesViewFormRejectsEmptyName(t *testing.T) {
	env := newTestEnv(t)
	addCourse(t, env, "Calculus II")
	v := NewDeadlinesView(env)

	v.Update(keyRunes("n"))
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.True(t, v.Capturing())
	assert.NotEmpty(t, v.form.err)
	assert.Empty(t, env.Manager.Deadlines())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.Capturing())
}

func TestDeadlinesViewToggleAndDelete(t *testing.T) {
	env := newTestEnv(t)
	c := addCourse(t, env, "Physics I")
	later := addDeadline(t, env, c.ID, "Quiz 4", testNow.AddDate(0, 0, 8))
	sooner := addDeadline(t, env, c.ID, "Lab", testNow.AddDate(0, 0, 1))
	v := NewDeadlinesView(env)

	// sorted by due date, so the cursor starts on the sooner one
	v.Update(tea.KeyMsg{Type: tea.KeySpace})
	d, _ := env.Manager.Deadline(sooner.ID)
	assert.Equal(t, models.StatusCompleted, d.Status)

	v.Update(keyRunes("j"))
	v.Update(keyRunes("d"))
	require.True(t, v.confirmingDelete)
	v.Update(keyRunes("n"))
	assert.Len(t, env.Manager.Deadlines(), 2)

	v.Update(keyRunes("d"))
	v.Update(keyRunes("y"))
	_, ok := env.Manager.Deadline(later.ID)
	assert.False(t, ok)

	v.Update(keyRunes("C"))
	v.Update(keyRunes("y"))
	assert.Empty(t, env.Manager.Deadlines())
}

func TestDeadlinesViewEditKeepsMissingCourse(t *testing.T) {
	tests := []struct {
		name       string
		withCourse bool
		pickCourse bool
		wantKept   bool
	}{
		{"other courses exist", true, false, true},
		{"no courses left", false, false, true},
		{"user picks a course", true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			var course models.Course
			if tt.withCourse {
				course = addCourse(t, env, "Physics I")
			}
			d := addDeadline(t, env, "missing-course", "Lab Report", testNow.AddDate(0, 0, 2))
			v := NewDeadlinesView(env)

			v.Update(keyRunes("e"))
			require.True(t, v.Capturing())
			if tt.pickCourse {
				v.Update(tea.KeyMsg{Type: tea.KeyTab})
				v.Update(tea.KeyMsg{Type: tea.KeyRight})
			}
			v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
			require.False(t, v.Capturing())

			got, ok := env.Manager.Deadline(d.ID)
			require.True(t, ok)
			if tt.wantKept {
				assert.Equal(t, "missing-course", got.CourseID)
			} else {
				assert.Equal(t, course.ID, got.CourseID)
			}
		})
	}
}

func TestDeadlinesViewFilters(t *testing.T) {
	env := newTestEnv(t)
	a := addCourse(t, env, "A")
	b := addCourse(t, env, "B")
	addDeadline(t, env, a.ID, "a1", testNow)
	addDeadline(t, env, b.ID, "b1", testNow)
	addDeadline(t, env, b.ID, "late", testNow.AddDate(0, 0, -3))
	v := NewDeadlinesView(env)
	require.Len(t, v.deadlines, 3)

	v.Update(keyRunes("f"))
	assert.Equal(t, a.ID, v.courseFilter)
	assert.Len(t, v.deadlines, 1)

	v.Update(keyRunes("f"))
	assert.Equal(t, b.ID, v.courseFilter)
	assert.Len(t, v.deadlines, 2)

	// the past-due upcoming deadline displays as overdue
	v.Update(keyRunes("s"))
	v.Update(keyRunes("s"))
	assert.Equal(t, "overdue", statusFilters[v.statusIdx])
	require.Len(t, v.deadlines, 1)
	assert.Equal(t, "late", v.deadlines[0].TaskName)

	v.Update(keyRunes("f"))
	assert.Equal(t, tracker.All, v.courseFilter)
}

func TestCoursesViewCreateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	v := NewCoursesView(env)

	v.Update(keyRunes("n"))
	require.True(t, v.Capturing())
	typeText(v, "Data Structures")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "Prof. Johnson")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "Fall 2024")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	courses := env.Manager.Courses()
	require.Len(t, courses, 1)
	assert.Equal(t, "Data Structures", courses[0].Title)
	assert.Equal(t, models.PresetColors[1], courses[0].Color)
	require.NotNil(t, cmd)
	assert.Equal(t, Go{Action: router.ViewCourse{ID: courses[0].ID}}, cmd())

	addDeadline(t, env, courses[0].ID, "Midterm", testNow)
	v.Update(keyRunes("d"))
	require.True(t, v.confirmingDelete)
	assert.Equal(t, 1, v.deleteCascade)
	v.Update(keyRunes("y"))
	assert.Empty(t, env.Manager.Courses())
	assert.Empty(t, env.Manager.Deadlines())
}

func TestCourseDetailsGroupsByStatus(t *testing.T) {
	env := newTestEnv(t)
	c := addCourse(t, env, "English Literature")
	other := addCourse(t, env, "Other")
	done := addDeadline(t, env, c.ID, "Reading Response", testNow.AddDate(0, 0, -4))
	require.NoError(t, env.Manager.ToggleCompleted(done.ID))
	addDeadline(t, env, c.ID, "Essay Draft", testNow.AddDate(0, 0, -2))
	addDeadline(t, env, c.ID, "Final Paper", testNow.AddDate(0, 0, 9))
	addDeadline(t, env, other.ID, "Elsewhere", testNow)

	v := NewCourseDetailsView(env, c.ID)
	assert.Nil(t, v.Init())

	names := make([]string, len(v.rows))
	for i, d := range v.rows {
		names[i] = d.TaskName
	}
	assert.Equal(t, []string{"Final Paper", "Essay Draft", "Reading Response"}, names)
}

func TestCourseDetailsMissingCourse(t *testing.T) {
	env := newTestEnv(t)
	v := NewCourseDetailsView(env, "gone")

	cmd := v.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, Go{Action: router.CourseGone{}}, cmd())
}

func TestCalendarMonthNavigation(t *testing.T) {
	env := newTestEnv(t)
	v := NewCalendarView(env)
	assert.Equal(t, time.December, v.month)

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, time.January, v.month)
	assert.Equal(t, 2025, v.year)

	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, time.November, v.month)
	assert.Equal(t, 2024, v.year)

	v.Update(keyRunes("t"))
	assert.Equal(t, time.December, v.month)
}

func TestSettingsSave(t *testing.T) {
	t.Cleanup(func() { styles.SetTheme(tracker.ThemeLight) })

	env := newTestEnv(t)
	v := NewSettingsView(env)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Capturing())
	typeText(v, "Ada")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, v.Capturing())

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	assert.Equal(t, "Ada", env.Manager.DisplayName())
	assert.Equal(t, tracker.ThemeDark, env.Manager.Theme())
	assert.Equal(t, styles.TokyoNight.Name, styles.Current.Name)
	assert.Equal(t, "Settings saved", v.banner)

	v.Update(bannerExpired{seq: v.bannerSeq - 1})
	assert.NotEmpty(t, v.banner)
	v.Update(bannerExpired{seq: v.bannerSeq})
	assert.Empty(t, v.banner)
}

func TestAuthRequiresEveryField(t *testing.T) {
	v := NewAuthView(true)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, v.err)

	typeText(v, "Ada")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "ada@uni.edu")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(v, "secret")

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Equal(t, Go{Action: router.Signup{Name: "Ada"}}, cmd())
}

func TestRelativeDue(t *testing.T) {
	today := time.Date(2024, 12, 12, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		due  time.Time
		want string
	}{
		{today, "today"},
		{today.AddDate(0, 0, 1), "tomorrow"},
		{today.AddDate(0, 0, -1), "yesterday"},
		{today.AddDate(0, 0, 5), "in 5 days"},
		{today.AddDate(0, 0, -3), "3 days ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeDue(tt.due, today))
	}
}
