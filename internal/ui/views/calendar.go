package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/tracker"
	"github.com/tgienger/dues/internal/ui/keys"
	"github.com/tgienger/dues/internal/ui/styles"
)

const calendarCellWidth = 9

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CalendarView is a month grid with per-day deadline counts and a panel
// of the deadlines due this week
type CalendarView struct {
	env    *Env
	styles *styles.Styles
	keys   keys.KeyMap

	year  int
	month time.Month

	showHelpPopup bool
	width         int
	height        int
}

func NewCalendarView(env *Env) *CalendarView {
	today := env.today()
	return &CalendarView{
		env:    env,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		year:   today.Year(),
		month:  today.Month(),
	}
}

func (v *CalendarView) Init() tea.Cmd { return nil }

// shift moves the displayed month by n
func (v *CalendarView) shift(n int) {
	first := time.Date(v.year, v.month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	v.year, v.month = first.Year(), first.Month()
}

func (v *CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		switch {
		case key.Matches(msg, v.keys.Left):
			v.shift(-1)
		case key.Matches(msg, v.keys.Right):
			v.shift(1)
		case msg.String() == "t":
			today := v.env.today()
			v.year, v.month = today.Year(), today.Month()
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
		}
	}
	return v, nil
}

var calendarHelp = [][2]string{
	{"←/h", "previous month"},
	{"→/l", "next month"},
	{"t", "this month"},
	{"1-5", "pages"},
	{"q", "quit"},
}

func (v *CalendarView) View() string {
	s := v.styles
	if v.showHelpPopup {
		return helpPopup(s, v.width, v.height, calendarHelp...)
	}

	deadlines := v.env.deadlines()
	today := v.env.today()
	contentWidth := styles.ContentWidth(v.width)

	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("‹ %s %d ›", v.month, v.year)))
	b.WriteString("\n\n")
	b.WriteString(v.renderGrid(deadlines, today))
	b.WriteString("\n\n")

	b.WriteString(s.Title.Render("This week"))
	b.WriteString("\n")
	week := tracker.ThisWeek(deadlines, today)
	if len(week) == 0 {
		b.WriteString(s.TitleMuted.Render("Nothing due in the next 7 days."))
		b.WriteString("\n")
	}
	courses := tracker.CourseIndex(v.env.Manager.Courses())
	for _, d := range week {
		b.WriteString(deadlineRow(s, d, courses, today, false, max(contentWidth-4, 20)))
		b.WriteString("\n")
	}

	b.WriteString(helpLine(s, contentWidth, calendarHelp[:3]...))
	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *CalendarView) renderGrid(deadlines []models.Deadline, today time.Time) string {
	s := v.styles
	cell := lipgloss.NewStyle().Width(calendarCellWidth)

	header := make([]string, len(weekdays))
	for i, d := range weekdays {
		header[i] = cell.Inherit(s.TitleMuted).Render(d)
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	cells := tracker.CalendarGrid(v.year, v.month)
	for start := 0; start < len(cells); start += 7 {
		week := make([]string, 0, 7)
		for _, day := range cells[start:min(start+7, len(cells))] {
			week = append(week, v.renderCell(cell, day, deadlines, today))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *CalendarView) renderCell(cell lipgloss.Style, day int, deadlines []models.Deadline, today time.Time) string {
	if day == 0 {
		return cell.Render("")
	}
	s := v.styles
	date := time.Date(v.year, v.month, day, 0, 0, 0, 0, time.UTC)
	label := fmt.Sprintf("%2d", day)

	style := cell
	if models.SameDay(date, today) {
		style = cell.Inherit(s.CardValue)
	}

	due := tracker.DeadlinesOn(deadlines, date)
	if len(due) == 0 {
		return style.Render(label)
	}
	color := styles.Current.Info
	if tracker.CountByStatus(due).Overdue > 0 {
		color = styles.Current.Error
	}
	return style.Render(label + " " + lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("•%d", len(due))))
}
