package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/router"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
)

type courseItem struct {
	course   models.Course
	upcoming int
}

func (i courseItem) Title() string { return i.course.Title }
func (i courseItem) Description() string {
	return fmt.Sprintf("%s • %s • %d upcoming", i.course.Instructor, i.course.Semester, i.upcoming)
}
func (i courseItem) FilterValue() string { return i.course.Title }

type courseDelegate struct {
	styles *styles.Styles
	width  int
}

func (d courseDelegate) Height() int                               { return 2 }
func (d courseDelegate) Spacing() int                              { return 1 }
func (d courseDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d courseDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(courseItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.course.Color)).Render("●")
	title := titleStyle.Render(dot + " " + c.Title())
	desc := descStyle.Render(c.Description())

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// CoursesView lists the courses with their upcoming deadline counts
type CoursesView struct {
	env      *Env
	list     list.Model
	delegate *courseDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	form *courseForm // non-nil while creating

	confirmingDelete bool
	deleteTarget     models.Course
	deleteCascade    int

	err           string
	showHelpPopup bool
}

func NewCoursesView(env *Env) *CoursesView {
	s := styles.NewStyles()

	delegate := &courseDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Courses"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	v := &CoursesView{
		env:      env,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
	v.refresh()
	return v
}

func (v *CoursesView) refresh() {
	deadlines := v.env.Manager.Deadlines()
	courses := v.env.Manager.Courses()
	items := make([]list.Item, len(courses))
	for i, c := range courses {
		items[i] = courseItem{course: c, upcoming: tracker.UpcomingCountForCourse(deadlines, c.ID)}
	}
	v.list.SetItems(items)
}

// Capturing is true while the form is open or the list is filtering
func (v *CoursesView) Capturing() bool {
	return v.form != nil || v.list.FilterState() == list.Filtering
}

func (v *CoursesView) Init() tea.Cmd { return nil }

func (v *CoursesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.form != nil {
			return v.updateCreating(msg)
		}
		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.New):
			v.err = ""
			v.form = newCourseForm(v.styles)
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(courseItem); ok {
				return v, goTo(router.ViewCourse{ID: item.course.ID})
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(courseItem); ok {
				v.confirmingDelete = true
				v.deleteTarget = item.course
				v.deleteCascade = len(tracker.FilterByCourse(v.env.Manager.Deadlines(), item.course.ID))
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *CoursesView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	yes, decided := confirmKey(msg)
	if !decided {
		return v, nil
	}
	v.confirmingDelete = false
	if yes {
		v.err = ""
		if err := v.env.Manager.DeleteCourse(v.deleteTarget.ID); err != nil {
			v.err = v.env.fail(err, "delete course")
		}
		v.refresh()
	}
	return v, nil
}

func (v *CoursesView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.form.update(msg)
	switch result {
	case formCancelled:
		v.form = nil
	case formSubmitted:
		course, err := v.env.Manager.AddCourse(v.form.input())
		if err != nil {
			v.form.err = v.env.fail(err, "add course")
			return v, nil
		}
		v.form = nil
		v.refresh()
		return v, goTo(router.ViewCourse{ID: course.ID})
	}
	return v, cmd
}

var coursesHelp = [][2]string{
	{"↵", "open course"},
	{"n", "new course"},
	{"d", "delete course"},
	{"/", "filter"},
	{"1-5", "pages"},
	{"q", "quit"},
}

// View renders the view
func (v *CoursesView) View() string {
	s := v.styles
	switch {
	case v.showHelpPopup:
		return helpPopup(s, v.width, v.height, coursesHelp...)
	case v.confirmingDelete:
		return confirmDialog(s, v.width, v.height, "Delete Course?",
			fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTarget.Title),
			fmt.Sprintf("This will also delete its %d deadline(s).", v.deleteCascade))
	case v.form != nil:
		return v.form.view(v.width, v.height)
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n"
	if v.err != "" {
		content += statusLine(s, v.err) + "\n"
	}
	content += helpLine(s, styles.ContentWidth(v.width), coursesHelp[:4]...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *CoursesView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Courses"),
		"",
		s.TitleMuted.Render("Press 'n' to add your first course"),
		"",
		s.ButtonPrimary.Render(" New Course "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
