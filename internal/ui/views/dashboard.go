package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/router"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
)

const (
	dashboardUpcoming = 5
	chartDays         = 7
	chartHeight       = 5
)

// DashboardView summarizes the deadlines: totals, completion, what is
// next, what is late and a seven day chart
type DashboardView struct {
	env    *Env
	styles *styles.Styles
	keys   keys.KeyMap

	next    []models.Deadline
	overdue []models.Deadline
	cursor  int // over next then overdue
	err     string

	showHelpPopup bool
	width         int
	height        int
}

func NewDashboardView(env *Env) *DashboardView {
	v := &DashboardView{env: env, styles: styles.NewStyles(), keys: keys.DefaultKeyMap()}
	v.refresh()
	return v
}

func (v *DashboardView) refresh() {
	deadlines := v.env.deadlines()
	v.next = tracker.NextUpcoming(deadlines, dashboardUpcoming)
	v.overdue = tracker.SortByDueDate(tracker.FilterByStatus(deadlines, string(models.StatusOverdue)))
	v.cursor = clamp(v.cursor, 0, max(len(v.next)+len(v.overdue)-1, 0))
}

func (v *DashboardView) selected() (models.Deadline, bool) {
	switch {
	case v.cursor < len(v.next):
		return v.next[v.cursor], true
	case v.cursor-len(v.next) < len(v.overdue):
		return v.overdue[v.cursor-len(v.next)], true
	}
	return models.Deadline{}, false
}

func (v *DashboardView) Init() tea.Cmd { return nil }

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		total := len(v.next) + len(v.overdue)
		switch {
		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, v.keys.Down):
			if v.cursor < total-1 {
				v.cursor++
			}
		case key.Matches(msg, v.keys.Toggle):
			if d, ok := v.selected(); ok {
				v.err = ""
				if err := v.env.Manager.ToggleCompleted(d.ID); err != nil {
					v.err = v.env.fail(err, "toggle deadline")
				}
				v.refresh()
			}
		case key.Matches(msg, v.keys.Enter):
			if d, ok := v.selected(); ok {
				return v, goTo(router.ViewCourse{ID: d.CourseID})
			}
		case key.Matches(msg, v.keys.New):
			return v, goTo(router.Navigate{Page: router.PageDeadlines})
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
		}
	}
	return v, nil
}

var dashboardHelp = [][2]string{
	{"↑/↓", "move"},
	{"space", "toggle done"},
	{"↵", "open course"},
	{"n", "manage deadlines"},
	{"1-5", "pages"},
	{"q", "quit"},
}

func (v *DashboardView) View() string {
	s := v.styles
	if v.showHelpPopup {
		return helpPopup(s, v.width, v.height, dashboardHelp...)
	}

	contentWidth := styles.ContentWidth(v.width)
	deadlines := v.env.deadlines()
	counts := tracker.CountByStatus(deadlines)
	courses := tracker.CourseIndex(v.env.Manager.Courses())
	today := v.env.today()

	greeting := "Welcome back"
	if name := v.env.Manager.DisplayName(); name != "" {
		greeting += ", " + name
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(greeting))
	b.WriteString("\n")
	b.WriteString(s.TitleMuted.Render(today.Format("Monday, January 2")))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		v.card("Upcoming", counts.Upcoming),
		v.card("Overdue", counts.Overdue),
		v.card("Completed", counts.Completed),
		v.card("Courses", len(courses)),
	))
	b.WriteString("\n")
	b.WriteString(v.renderProgress(tracker.CompletionRate(deadlines), contentWidth))
	b.WriteString("\n\n")

	rowWidth := max(contentWidth-4, 20)
	b.WriteString(s.Title.Render("Next up"))
	b.WriteString("\n")
	if len(v.next) == 0 {
		b.WriteString(s.TitleMuted.Render("Nothing upcoming. Enjoy the break."))
		b.WriteString("\n")
	}
	for i, d := range v.next {
		b.WriteString(deadlineRow(s, d, courses, today, i == v.cursor, rowWidth))
		b.WriteString("\n")
	}

	if len(v.overdue) > 0 {
		b.WriteString("\n")
		b.WriteString(s.Error.Render(fmt.Sprintf("Overdue (%d)", len(v.overdue))))
		b.WriteString("\n")
		for i, d := range v.overdue {
			b.WriteString(deadlineRow(s, d, courses, today, len(v.next)+i == v.cursor, rowWidth))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(s.Title.Render("Next 7 days"))
	b.WriteString("\n")
	b.WriteString(v.renderChart(tracker.CountsByDay(deadlines, today, chartDays)))
	b.WriteString("\n")
	if v.err != "" {
		b.WriteString(statusLine(s, v.err))
		b.WriteString("\n")
	}
	b.WriteString(helpLine(s, contentWidth, dashboardHelp[:4]...))

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *DashboardView) card(label string, n int) string {
	return v.styles.Card.Width(16).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			v.styles.CardValue.Render(fmt.Sprint(n)),
			v.styles.TitleMuted.Render(label),
		),
	)
}

func (v *DashboardView) renderProgress(rate, width int) string {
	barWidth := clamp(width-20, 10, 50)
	filled := barWidth * rate / 100
	bar := v.styles.Success.Render(strings.Repeat("█", filled)) +
		v.styles.TitleMuted.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("Completion %s %3d%%", bar, rate)
}

// renderChart draws one vertical bar per day scaled to the busiest day
func (v *DashboardView) renderChart(days []tracker.DayCount) string {
	s := v.styles
	peak := 0
	for _, d := range days {
		peak = max(peak, d.Count)
	}

	columns := make([]string, len(days))
	for i, d := range days {
		height := 0
		if peak > 0 {
			height = d.Count * chartHeight / peak
			if d.Count > 0 {
				height = max(height, 1)
			}
		}
		cells := make([]string, 0, chartHeight+2)
		cells = append(cells, s.TitleMuted.Render(fmt.Sprintf("%3d", d.Count)))
		for row := chartHeight; row > 0; row-- {
			if row <= height {
				cells = append(cells, s.Bar.Render(" ██"))
			} else {
				cells = append(cells, "   ")
			}
		}
		cells = append(cells, s.TitleMuted.Render(d.Label))
		columns[i] = lipgloss.NewStyle().MarginRight(2).Render(lipgloss.JoinVertical(lipgloss.Right, cells...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, columns...)
}
