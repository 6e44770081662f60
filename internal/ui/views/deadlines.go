package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
)

// statusFilters in the order the status filter cycles through
var statusFilters = []string{
	tracker.All,
	string(models.StatusUpcoming),
	string(models.StatusOverdue),
	string(models.StatusCompleted),
}

// DeadlinesView lists every deadline with course and status filters
type DeadlinesView struct {
	env    *Env
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	deadlines []models.Deadline // filtered and sorted
	cursor    int
	scrollY   int

	courseFilter string // course id or tracker.All
	statusIdx    int

	form *deadlineForm // non-nil while adding or editing

	confirmingDelete bool
	deleteTarget     models.Deadline
	confirmingClear  bool

	err           string
	showHelpPopup bool
}

func NewDeadlinesView(env *Env) *DeadlinesView {
	v := &DeadlinesView{
		env:          env,
		styles:       styles.NewStyles(),
		keys:         keys.DefaultKeyMap(),
		courseFilter: tracker.All,
	}
	v.refresh()
	return v
}

func (v *DeadlinesView) refresh() {
	ds := tracker.FilterByCourse(v.env.deadlines(), v.courseFilter)
	ds = tracker.FilterByStatus(ds, statusFilters[v.statusIdx])
	v.deadlines = tracker.SortByDueDate(ds)
	if v.cursor >= len(v.deadlines) {
		v.cursor = max(0, len(v.deadlines)-1)
	}
	v.ensureVisible()
}

// Capturing is true while the form is open
func (v *DeadlinesView) Capturing() bool {
	return v.form != nil
}

func (v *DeadlinesView) Init() tea.Cmd { return nil }

func (v *DeadlinesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		if v.form != nil {
			v.form.setWidth(styles.ContentWidth(v.width))
		}
		v.ensureVisible()
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.confirmingClear {
			return v.updateConfirmClear(msg)
		}
		if v.form != nil {
			return v.updateForm(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *DeadlinesView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.deadlines)-1 {
			v.cursor++
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.FilterCourse):
		v.cycleCourseFilter()
		v.cursor, v.scrollY = 0, 0
		v.refresh()

	case key.Matches(msg, v.keys.FilterStatus):
		v.statusIdx = cycle(v.statusIdx, len(statusFilters), 1)
		v.cursor, v.scrollY = 0, 0
		v.refresh()

	case key.Matches(msg, v.keys.Toggle):
		if d, ok := v.selected(); ok {
			v.err = ""
			if err := v.env.Manager.ToggleCompleted(d.ID); err != nil {
				v.err = v.env.fail(err, "toggle deadline")
			}
			v.refresh()
		}

	case key.Matches(msg, v.keys.New):
		v.err = ""
		v.form = newDeadlineForm(v.styles, v.env.Manager.Courses(), v.env.today())
		if v.courseFilter != tracker.All {
			v.form.preselect(v.courseFilter)
		}
		v.form.setWidth(styles.ContentWidth(v.width))
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if d, ok := v.selected(); ok {
			v.err = ""
			stored, _ := v.env.Manager.Deadline(d.ID)
			v.form = newDeadlineForm(v.styles, v.env.Manager.Courses(), v.env.today())
			v.form.load(stored)
			v.form.setWidth(styles.ContentWidth(v.width))
			return v, textinput.Blink
		}

	case key.Matches(msg, v.keys.Delete):
		if d, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTarget = d
		}

	case key.Matches(msg, v.keys.ClearCompleted):
		v.confirmingClear = true

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
	}
	return v, nil
}

func (v *DeadlinesView) cycleCourseFilter() {
	options := []string{tracker.All}
	for _, c := range v.env.Manager.Courses() {
		options = append(options, c.ID)
	}
	i := 0
	for j, id := range options {
		if id == v.courseFilter {
			i = j
		}
	}
	v.courseFilter = options[cycle(i, len(options), 1)]
}

func (v *DeadlinesView) selected() (models.Deadline, bool) {
	if v.cursor < 0 || v.cursor >= len(v.deadlines) {
		return models.Deadline{}, false
	}
	return v.deadlines[v.cursor], true
}

func (v *DeadlinesView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.form.update(msg)
	switch result {
	case formCancelled:
		v.form = nil
	case formSubmitted:
		v.saveForm()
	}
	return v, cmd
}

// saveForm hands the form to the tracker and closes it on success
func (v *DeadlinesView) saveForm() {
	in, err := v.form.input()
	if err != nil {
		v.form.err = err.Error()
		return
	}
	if v.form.editingID == "" {
		_, err = v.env.Manager.AddDeadline(in)
	} else {
		err = v.env.Manager.EditDeadline(v.form.editingID, in)
	}
	if err != nil {
		v.form.err = v.env.fail(err, "save deadline")
		return
	}
	v.form = nil
	v.refresh()
}

func (v *DeadlinesView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	yes, decided := confirmKey(msg)
	if !decided {
		return v, nil
	}
	v.confirmingDelete = false
	if yes {
		v.err = ""
		if err := v.env.Manager.DeleteDeadline(v.deleteTarget.ID); err != nil {
			v.err = v.env.fail(err, "delete deadline")
		}
		v.refresh()
	}
	return v, nil
}

func (v *DeadlinesView) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	yes, decided := confirmKey(msg)
	if !decided {
		return v, nil
	}
	v.confirmingClear = false
	if yes {
		v.err = ""
		if _, err := v.env.Manager.ClearCompleted(); err != nil {
			v.err = v.env.fail(err, "clear completed")
		}
		v.refresh()
	}
	return v, nil
}

// visibleItems is how many two-line rows fit below the header
func (v *DeadlinesView) visibleItems() int {
	return max((v.height-10)/3, 1)
}

func (v *DeadlinesView) ensureVisible() {
	visible := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	}
	if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
	v.scrollY = clamp(v.scrollY, 0, max(len(v.deadlines)-1, 0))
}

var deadlinesHelp = [][2]string{
	{"n", "new deadline"},
	{"e", "edit"},
	{"d", "delete"},
	{"space", "toggle done"},
	{"f", "filter by course"},
	{"s", "filter by status"},
	{"C", "clear completed"},
	{"1-5", "pages"},
	{"q", "quit"},
}

func (v *DeadlinesView) View() string {
	s := v.styles
	switch {
	case v.showHelpPopup:
		return helpPopup(s, v.width, v.height, deadlinesHelp...)
	case v.confirmingDelete:
		return confirmDialog(s, v.width, v.height, "Delete Deadline?",
			fmt.Sprintf("%q will be removed.", v.deleteTarget.TaskName))
	case v.confirmingClear:
		n := tracker.CountByStatus(v.env.Manager.Deadlines()).Completed
		return confirmDialog(s, v.width, v.height, "Clear Completed?",
			fmt.Sprintf("%d completed deadline(s) will be removed.", n))
	case v.form != nil:
		return v.form.view(v.width, v.height)
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderList())
	b.WriteString("\n")
	if v.err != "" {
		b.WriteString(statusLine(s, v.err))
		b.WriteString("\n")
	}
	b.WriteString(helpLine(s, styles.ContentWidth(v.width),
		[2]string{"n", "new"}, [2]string{"e", "edit"}, [2]string{"d", "del"},
		[2]string{"space", "done"}, [2]string{"f/s", "filter"}, [2]string{"?", "more"},
	))
	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *DeadlinesView) renderHeader() string {
	s := v.styles

	courseLabel := "All courses"
	if c, ok := v.env.Manager.Course(v.courseFilter); ok {
		courseLabel = c.Title
	}
	statusLabel := "All statuses"
	if v.statusIdx > 0 {
		statusLabel = statusFilters[v.statusIdx]
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(fmt.Sprintf("Deadlines (%d)", len(v.deadlines))),
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.Button.Render("f "+courseLabel+" ▼"),
			"  ",
			s.Button.Render("s "+statusLabel+" ▼"),
		),
	)
}

func (v *DeadlinesView) renderList() string {
	s := v.styles
	if len(v.deadlines) == 0 {
		return s.TitleMuted.Render("No deadlines match. Press 'n' to add one.")
	}

	width := max(styles.ContentWidth(v.width)-4, 20)
	courses := tracker.CourseIndex(v.env.Manager.Courses())
	today := v.env.today()

	var items []string
	end := min(v.scrollY+v.visibleItems(), len(v.deadlines))
	for i := v.scrollY; i < end; i++ {
		items = append(items, deadlineRow(s, v.deadlines[i], courses, today, i == v.cursor, width)+"\n")
	}
	if end < len(v.deadlines) {
		items = append(items, s.TitleMuted.Render(fmt.Sprintf("  … %d more", len(v.deadlines)-end)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}
