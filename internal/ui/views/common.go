// Package views holds one bubbletea model per page. Views read from and
// write to the tracker synchronously and ask the app to move between
// pages by emitting Go messages.
package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/router"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/styles"
)

// Env is what every view needs from the app
type Env struct {
	Manager *tracker.Manager
	Log     logrus.FieldLogger
	Now     func() time.Time
}

func (e *Env) today() time.Time {
	return models.Midnight(e.Now())
}

// deadlines returns the deadlines as displayed today
func (e *Env) deadlines() []models.Deadline {
	return e.Manager.DeadlinesAsOf(e.today())
}

// fail logs err and returns the text shown in the status line
func (e *Env) fail(err error, what string) string {
	e.Log.WithError(err).Error(what)
	return fmt.Sprintf("%s: %v", what, err)
}

// Go asks the app to apply a router action
type Go struct {
	Action router.Action
}

func goTo(a router.Action) tea.Cmd {
	return func() tea.Msg { return Go{Action: a} }
}

// ThemeChanged tells the app to rebuild its styles
type ThemeChanged struct{}

// Capturer is implemented by views that sometimes need every key,
// for example while a text input is focused
type Capturer interface {
	Capturing() bool
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// cycle moves i by dir within [0, n), wrapping around
func cycle(i, n, dir int) int {
	if n == 0 {
		return 0
	}
	return ((i+dir)%n + n) % n
}

func typeIcon(t models.DeadlineType) string {
	switch t {
	case models.TypeQuiz:
		return "?"
	case models.TypeExam:
		return "★"
	case models.TypeProject:
		return "◆"
	}
	return "✎"
}

// relativeDue describes due relative to today in whole days
func relativeDue(due, today time.Time) string {
	days := int(models.Midnight(due).Sub(models.Midnight(today)).Hours() / 24)
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	}
	return fmt.Sprintf("in %d days", days)
}

func badge(s *styles.Styles, text string, color lipgloss.Color) string {
	return s.Badge.Foreground(color).Render(text)
}

// courseTag renders a course title on its tinted color. Deadlines whose
// course was deleted get a muted placeholder.
func courseTag(s *styles.Styles, course models.Course, ok bool) string {
	if !ok {
		return s.TitleMuted.Render("Unknown course")
	}
	return s.Tag.
		Foreground(lipgloss.Color(course.Color)).
		Background(styles.Blend(tracker.Tint(course.Color, "20"))).
		Render(course.Title)
}

// deadlineRow renders a two-line deadline entry
func deadlineRow(s *styles.Styles, d models.Deadline, courses map[string]models.Course, today time.Time, selected bool, width int) string {
	check := "[ ]"
	if d.Status == models.StatusCompleted {
		check = "[x]"
	}
	title := fmt.Sprintf("%s %s %s", check, typeIcon(d.Type), d.TaskName)

	course, ok := courses[d.CourseID]
	meta := lipgloss.JoinHorizontal(lipgloss.Top,
		courseTag(s, course, ok),
		s.TitleMuted.Render(fmt.Sprintf("%s (%s) ", d.DueDate.Format("Jan 2"), relativeDue(d.DueDate, today))),
		badge(s, string(d.Priority), styles.PriorityColor(d.Priority)),
		badge(s, string(d.Status), styles.StatusColor(d.Status)),
	)

	itemStyle := s.ListItem
	if selected {
		itemStyle = s.ListSelected
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		itemStyle.Width(width).Render(title),
		s.ListItem.Width(width).Render(meta),
	)
}

// helpLine renders "key desc • key desc" hints, or a "?" hint when narrow
func helpLine(s *styles.Styles, width int, pairs ...[2]string) string {
	if width > 0 && width < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = s.HelpKey.Render(p[0]) + " " + p[1]
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

func helpPopup(s *styles.Styles, width, height int, pairs ...[2]string) string {
	items := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for _, p := range pairs {
		items = append(items, fmt.Sprintf("%-8s %s", s.HelpKey.Render(p[0]), p[1]))
	}
	items = append(items, "", s.TitleMuted.Render("Press any key to close"))

	contentWidth := styles.ContentWidth(width)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(lipgloss.JoinVertical(lipgloss.Left, items...)),
	)
	return styles.CenterView(centered, width, height)
}

func confirmDialog(s *styles.Styles, width, height int, title string, lines ...string) string {
	body := []string{s.Title.Foreground(styles.Current.Error).Render(title), ""}
	for _, l := range lines {
		body = append(body, s.TitleMuted.Render(l))
	}
	body = append(body, "",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	contentWidth := styles.ContentWidth(width)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, body...),
	)
	return styles.CenterView(centered, width, height)
}

// confirmKey reads a y/n answer; decided is false for any other key
func confirmKey(msg tea.KeyMsg) (yes, decided bool) {
	switch msg.String() {
	case "y", "Y":
		return true, true
	case "n", "N", "esc":
		return false, true
	}
	return false, false
}

func statusLine(s *styles.Styles, err string) string {
	if err == "" {
		return ""
	}
	return s.Error.Render(err)
}
