package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/router"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
)

// CourseDetailsView shows one course and its deadlines grouped by status
type CourseDetailsView struct {
	env      *Env
	courseID string
	styles   *styles.Styles
	keys     keys.KeyMap

	rows   []models.Deadline // upcoming, overdue, completed; each by due date
	cursor int
	form   *deadlineForm

	err           string
	showHelpPopup bool
	width         int
	height        int
}

func NewCourseDetailsView(env *Env, courseID string) *CourseDetailsView {
	v := &CourseDetailsView{
		env:      env,
		courseID: courseID,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
	}
	v.refresh()
	return v
}

func (v *CourseDetailsView) refresh() {
	mine := tracker.FilterByCourse(v.env.deadlines(), v.courseID)
	v.rows = v.rows[:0]
	for _, status := range models.Statuses {
		v.rows = append(v.rows, tracker.SortByDueDate(tracker.FilterByStatus(mine, string(status)))...)
	}
	v.cursor = clamp(v.cursor, 0, max(len(v.rows)-1, 0))
}

// Init reports a course that vanished before the page opened
func (v *CourseDetailsView) Init() tea.Cmd {
	if _, ok := v.env.Manager.Course(v.courseID); !ok {
		return goTo(router.CourseGone{})
	}
	return nil
}

// Capturing is true while the form is open
func (v *CourseDetailsView) Capturing() bool {
	return v.form != nil
}

func (v *CourseDetailsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		if v.form != nil {
			v.form.setWidth(styles.ContentWidth(v.width))
		}

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.form != nil {
			return v.updateForm(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Back):
			return v, goTo(router.Navigate{Page: router.PageCourses})
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(v.rows)-1 {
				v.cursor++
			}
		case key.Matches(msg, v.keys.Toggle):
			if v.cursor < len(v.rows) {
				v.err = ""
				if err := v.env.Manager.ToggleCompleted(v.rows[v.cursor].ID); err != nil {
					v.err = v.env.fail(err, "toggle deadline")
				}
				v.refresh()
			}
		case key.Matches(msg, v.keys.New):
			v.err = ""
			v.form = newDeadlineForm(v.styles, v.env.Manager.Courses(), v.env.today())
			v.form.preselect(v.courseID)
			v.form.setWidth(styles.ContentWidth(v.width))
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
		}
	}
	return v, nil
}

func (v *CourseDetailsView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.form.update(msg)
	switch result {
	case formCancelled:
		v.form = nil
	case formSubmitted:
		in, err := v.form.input()
		if err != nil {
			v.form.err = err.Error()
			return v, nil
		}
		if _, err := v.env.Manager.AddDeadline(in); err != nil {
			v.form.err = v.env.fail(err, "add deadline")
			return v, nil
		}
		v.form = nil
		v.refresh()
	}
	return v, cmd
}

var courseDetailsHelp = [][2]string{
	{"n", "add deadline"},
	{"space", "toggle done"},
	{"esc", "back to courses"},
	{"1-5", "pages"},
	{"q", "quit"},
}

func (v *CourseDetailsView) View() string {
	s := v.styles
	if v.showHelpPopup {
		return helpPopup(s, v.width, v.height, courseDetailsHelp...)
	}
	if v.form != nil {
		return v.form.view(v.width, v.height)
	}

	course, ok := v.env.Manager.Course(v.courseID)
	if !ok {
		return s.TitleMuted.Render("Course not found")
	}

	contentWidth := styles.ContentWidth(v.width)
	rowWidth := max(contentWidth-4, 20)
	courses := map[string]models.Course{course.ID: course}
	today := v.env.today()
	counts := tracker.CountByStatus(v.rows)

	var b strings.Builder
	b.WriteString(s.Button.Render("← Courses"))
	b.WriteString("\n")
	b.WriteString(courseTag(s, course, true))
	b.WriteString("\n")
	b.WriteString(s.TitleMuted.Render(fmt.Sprintf("%s • %s • %d%% complete",
		course.Instructor, course.Semester, tracker.CompletionRate(v.rows))))
	b.WriteString("\n")

	i := 0
	sections := []struct {
		status models.Status
		title  string
		n      int
	}{
		{models.StatusUpcoming, "Upcoming", counts.Upcoming},
		{models.StatusOverdue, "Overdue", counts.Overdue},
		{models.StatusCompleted, "Completed", counts.Completed},
	}
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(s.Title.Foreground(styles.StatusColor(sec.status)).Render(fmt.Sprintf("%s (%d)", sec.title, sec.n)))
		b.WriteString("\n")
		if sec.n == 0 {
			b.WriteString(s.TitleMuted.Render("  none"))
			b.WriteString("\n")
		}
		for ; sec.n > 0; sec.n-- {
			b.WriteString(deadlineRow(s, v.rows[i], courses, today, i == v.cursor, rowWidth))
			b.WriteString("\n")
			i++
		}
	}

	b.WriteString("\n")
	if v.err != "" {
		b.WriteString(statusLine(s, v.err))
		b.WriteString("\n")
	}
	b.WriteString(helpLine(s, contentWidth, courseDetailsHelp[:3]...))
	return styles.CenterView(b.String(), v.width, v.height)
}
