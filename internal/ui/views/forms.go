package views

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
)

// formResult is what a key press did to a form
type formResult int

const (
	formEditing formResult = iota
	formSubmitted
	formCancelled
)

// Deadline form fields in focus order
const (
	dfName = iota
	dfCourse
	dfType
	dfDue
	dfPriority
	dfDesc
	dfSave
	dfCount
)

// deadlineForm creates or edits a deadline. It does not call the
// tracker; the owning view reads input() after formSubmitted.
type deadlineForm struct {
	styles *styles.Styles
	keys   keys.KeyMap

	courses   []models.Course
	editingID string // empty for a new deadline

	name        textinput.Model
	due         textinput.Model
	desc        textarea.Model
	courseIdx   int
	lostCourse  string // course id of an edited deadline whose course is gone
	typeIdx     int
	priorityIdx int

	focus int
	err   string
}

func newDeadlineForm(s *styles.Styles, courses []models.Course, today time.Time) *deadlineForm {
	name := textinput.New()
	name.Placeholder = "Task name"
	name.CharLimit = 200

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.SetValue(today.Format(time.DateOnly))

	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 1000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	f := &deadlineForm{
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		courses:     courses,
		name:        name,
		due:         due,
		desc:        desc,
		priorityIdx: slices.Index(models.Priorities, models.PriorityMedium),
	}
	f.updateFocus()
	return f
}

// preselect picks the course with id, if present
func (f *deadlineForm) preselect(courseID string) {
	if i := slices.IndexFunc(f.courses, func(c models.Course) bool { return c.ID == courseID }); i >= 0 {
		f.courseIdx = i
	}
}

// load fills the form from an existing deadline for editing
func (f *deadlineForm) load(d models.Deadline) {
	f.editingID = d.ID
	f.name.SetValue(d.TaskName)
	f.due.SetValue(d.DueDate.Format(time.DateOnly))
	f.desc.SetValue(d.Description)
	f.preselect(d.CourseID)
	if !slices.ContainsFunc(f.courses, func(c models.Course) bool { return c.ID == d.CourseID }) {
		f.lostCourse = d.CourseID
	}
	f.typeIdx = max(slices.Index(models.DeadlineTypes, d.Type), 0)
	f.priorityIdx = max(slices.Index(models.Priorities, d.Priority), 0)
}

func (f *deadlineForm) setWidth(width int) {
	f.desc.SetWidth(clamp(width-10, 20, 50))
}

// input converts the form into tracker input. The due date is the only
// field checked here; the rest is left to the tracker's validation.
func (f *deadlineForm) input() (tracker.DeadlineInput, error) {
	due, err := models.ParseDueDate(f.due.Value())
	if err != nil {
		return tracker.DeadlineInput{}, errors.Errorf("due date must look like %s", time.DateOnly)
	}
	in := tracker.DeadlineInput{
		TaskName:    strings.TrimSpace(f.name.Value()),
		Type:        models.DeadlineTypes[f.typeIdx],
		DueDate:     due,
		Priority:    models.Priorities[f.priorityIdx],
		Description: strings.TrimSpace(f.desc.Value()),
	}
	switch {
	case f.lostCourse != "":
		in.CourseID = f.lostCourse
	case len(f.courses) > 0:
		in.CourseID = f.courses[f.courseIdx].ID
	}
	return in, nil
}

func (f *deadlineForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return formCancelled, nil

	case key.Matches(msg, f.keys.Save):
		return formSubmitted, nil

	case msg.String() == "shift+tab":
		f.focus = cycle(f.focus, dfCount, -1)
		f.updateFocus()
		return formEditing, nil

	case key.Matches(msg, f.keys.Tab):
		f.focus = cycle(f.focus, dfCount, 1)
		f.updateFocus()
		return formEditing, nil

	case key.Matches(msg, f.keys.Enter) && f.focus != dfDesc:
		if f.focus == dfSave {
			return formSubmitted, nil
		}
		f.focus++
		f.updateFocus()
		return formEditing, nil
	}

	if dir := arrow(f.keys, msg); dir != 0 {
		switch f.focus {
		case dfCourse:
			// the first press leaves the missing course for a real one
			if f.lostCourse != "" && len(f.courses) > 0 {
				f.lostCourse = ""
				return formEditing, nil
			}
			f.courseIdx = cycle(f.courseIdx, len(f.courses), dir)
			return formEditing, nil
		case dfType:
			f.typeIdx = cycle(f.typeIdx, len(models.DeadlineTypes), dir)
			return formEditing, nil
		case dfPriority:
			f.priorityIdx = cycle(f.priorityIdx, len(models.Priorities), dir)
			return formEditing, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case dfName:
		f.name, cmd = f.name.Update(msg)
	case dfDue:
		f.due, cmd = f.due.Update(msg)
	case dfDesc:
		f.desc, cmd = f.desc.Update(msg)
	}
	return formEditing, cmd
}

// arrow returns -1 or 1 for left/right keys, 0 otherwise
func arrow(km keys.KeyMap, msg tea.KeyMsg) int {
	switch {
	case key.Matches(msg, km.Left):
		return -1
	case key.Matches(msg, km.Right):
		return 1
	}
	return 0
}

func (f *deadlineForm) updateFocus() {
	f.name.Blur()
	f.due.Blur()
	f.desc.Blur()
	switch f.focus {
	case dfName:
		f.name.Focus()
	case dfDue:
		f.due.Focus()
	case dfDesc:
		f.desc.Focus()
	}
}

func (f *deadlineForm) view(width, height int) string {
	s := f.styles
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	field := func(idx int) lipgloss.Style {
		if f.focus == idx {
			return s.InputFocused.Width(inputWidth)
		}
		return s.Input.Width(inputWidth)
	}

	courseLabel := s.TitleMuted.Render("create a course first")
	switch {
	case f.lostCourse != "":
		courseLabel = s.TitleMuted.Render("Unknown course")
	case len(f.courses) > 0:
		c := f.courses[f.courseIdx]
		courseLabel = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●") + " " + c.Title
	}

	btnStyle := s.Button
	if f.focus == dfSave {
		btnStyle = s.ButtonFocused
	}
	title, button := "New Deadline", " Add "
	if f.editingID != "" {
		title, button = "Edit Deadline", " Save "
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(title),
		"",
		"Task:",
		field(dfName).Render(f.name.View()),
		"Course:",
		field(dfCourse).Render("‹ "+courseLabel+" ›"),
		"Type:",
		field(dfType).Render("‹ "+typeIcon(models.DeadlineTypes[f.typeIdx])+" "+string(models.DeadlineTypes[f.typeIdx])+" ›"),
		"Due:",
		field(dfDue).Render(f.due.View()),
		"Priority:",
		field(dfPriority).Render("‹ "+badge(s, string(models.Priorities[f.priorityIdx]), styles.PriorityColor(models.Priorities[f.priorityIdx]))+"›"),
		"Description:",
		field(dfDesc).Render(f.desc.View()),
		"",
		btnStyle.Render(button),
		statusLine(s, f.err),
		s.TitleMuted.Render("Tab: next • ←/→: choose • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, width, height)
}

// Course form fields in focus order
const (
	cfTitle = iota
	cfInstructor
	cfSemester
	cfColor
	cfCreate
	cfCount
)

// courseForm creates a course with a color from the preset palette
type courseForm struct {
	styles *styles.Styles
	keys   keys.KeyMap

	title      textinput.Model
	instructor textinput.Model
	semester   textinput.Model
	colorIdx   int

	focus int
	err   string
}

func newCourseForm(s *styles.Styles) *courseForm {
	title := textinput.New()
	title.Placeholder = "Course title"
	title.CharLimit = 100

	instructor := textinput.New()
	instructor.Placeholder = "Instructor"
	instructor.CharLimit = 100

	semester := textinput.New()
	semester.Placeholder = "Semester, e.g. Fall 2024"
	semester.CharLimit = 50

	f := &courseForm{
		styles:     s,
		keys:       keys.DefaultKeyMap(),
		title:      title,
		instructor: instructor,
		semester:   semester,
	}
	f.updateFocus()
	return f
}

func (f *courseForm) input() tracker.CourseInput {
	return tracker.CourseInput{
		Title:      strings.TrimSpace(f.title.Value()),
		Instructor: strings.TrimSpace(f.instructor.Value()),
		Semester:   strings.TrimSpace(f.semester.Value()),
		Color:      models.PresetColors[f.colorIdx],
	}
}

func (f *courseForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return formCancelled, nil

	case key.Matches(msg, f.keys.Save):
		return formSubmitted, nil

	case msg.String() == "shift+tab":
		f.focus = cycle(f.focus, cfCount, -1)
		f.updateFocus()
		return formEditing, nil

	case key.Matches(msg, f.keys.Tab):
		f.focus = cycle(f.focus, cfCount, 1)
		f.updateFocus()
		return formEditing, nil

	case key.Matches(msg, f.keys.Enter):
		if f.focus == cfCreate {
			return formSubmitted, nil
		}
		f.focus++
		f.updateFocus()
		return formEditing, nil
	}

	if f.focus == cfColor {
		if dir := arrow(f.keys, msg); dir != 0 {
			f.colorIdx = cycle(f.colorIdx, len(models.PresetColors), dir)
		}
		return formEditing, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case cfTitle:
		f.title, cmd = f.title.Update(msg)
	case cfInstructor:
		f.instructor, cmd = f.instructor.Update(msg)
	case cfSemester:
		f.semester, cmd = f.semester.Update(msg)
	}
	return formEditing, cmd
}

func (f *courseForm) updateFocus() {
	f.title.Blur()
	f.instructor.Blur()
	f.semester.Blur()
	switch f.focus {
	case cfTitle:
		f.title.Focus()
	case cfInstructor:
		f.instructor.Focus()
	case cfSemester:
		f.semester.Focus()
	}
}

func (f *courseForm) view(width, height int) string {
	s := f.styles
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	field := func(idx int) lipgloss.Style {
		if f.focus == idx {
			return s.InputFocused.Width(inputWidth)
		}
		return s.Input.Width(inputWidth)
	}

	swatches := make([]string, len(models.PresetColors))
	for i, c := range models.PresetColors {
		mark := "○"
		if i == f.colorIdx {
			mark = "●"
		}
		swatches[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(mark)
	}

	btnStyle := s.Button
	if f.focus == cfCreate {
		btnStyle = s.ButtonFocused
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Course"),
		"",
		"Title:",
		field(cfTitle).Render(f.title.View()),
		"Instructor:",
		field(cfInstructor).Render(f.instructor.View()),
		"Semester:",
		field(cfSemester).Render(f.semester.View()),
		"Color:",
		field(cfColor).Render(strings.Join(swatches, " ")),
		"",
		btnStyle.Render(" Create "),
		statusLine(s, f.err),
		s.TitleMuted.Render("Tab: next • ←/→: color • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, width, height)
}
