package tracker

import (
	"math"
	"slices"
	"time"

	"github.com/tgienger/dues/internal/models"
)

// All disables a status or course filter
const All = "all"

// Derived views never modify their input.

// SortByDueDate returns deadlines ordered by due date, earliest first.
// Deadlines due the same day keep their relative order.
func SortByDueDate(deadlines []models.Deadline) []models.Deadline {
	out := slices.Clone(deadlines)
	slices.SortStableFunc(out, func(a, b models.Deadline) int {
		return a.DueDate.Compare(b.DueDate)
	})
	return out
}

// FilterByStatus keeps deadlines with the given status, or all of them for All
func FilterByStatus(deadlines []models.Deadline, status string) []models.Deadline {
	if status == All {
		return slices.Clone(deadlines)
	}
	return filter(deadlines, func(d models.Deadline) bool { return string(d.Status) == status })
}

// FilterByCourse keeps deadlines of the given course, or all of them for All
func FilterByCourse(deadlines []models.Deadline, courseID string) []models.Deadline {
	if courseID == All {
		return slices.Clone(deadlines)
	}
	return filter(deadlines, func(d models.Deadline) bool { return d.CourseID == courseID })
}

// UpcomingWithin keeps upcoming deadlines due between start and end, both
// inclusive, comparing calendar days only
func UpcomingWithin(deadlines []models.Deadline, start, end time.Time) []models.Deadline {
	start, end = models.Midnight(start), models.Midnight(end)
	return filter(deadlines, func(d models.Deadline) bool {
		due := models.Midnight(d.DueDate)
		return d.Status == models.StatusUpcoming && !due.Before(start) && !due.After(end)
	})
}

// DayCount is one bar of the per-day chart
type DayCount struct {
	Day   time.Time
	Label string // short weekday name
	Count int
}

// CountsByDay counts upcoming deadlines on each of numDays consecutive
// days starting at start. Days without deadlines count zero.
func CountsByDay(deadlines []models.Deadline, start time.Time, numDays int) []DayCount {
	first := models.Midnight(start)
	out := make([]DayCount, 0, max(numDays, 0))
	for i := 0; i < numDays; i++ {
		day := first.AddDate(0, 0, i)
		count := 0
		for _, d := range deadlines {
			if d.Status == models.StatusUpcoming && models.SameDay(d.DueDate, day) {
				count++
			}
		}
		out = append(out, DayCount{Day: day, Label: day.Format("Mon"), Count: count})
	}
	return out
}

// CompletionRate is the rounded percentage of completed deadlines, 0 for none
func CompletionRate(deadlines []models.Deadline) int {
	if len(deadlines) == 0 {
		return 0
	}
	completed := 0
	for _, d := range deadlines {
		if d.Status == models.StatusCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(deadlines))))
}

// UpcomingCountForCourse counts the upcoming deadlines of a course
func UpcomingCountForCourse(deadlines []models.Deadline, courseID string) int {
	count := 0
	for _, d := range deadlines {
		if d.CourseID == courseID && d.Status == models.StatusUpcoming {
			count++
		}
	}
	return count
}

// CalendarGrid lays out a month for a 7-column, Sunday-first grid.
// Leading cells are 0 up to the weekday of the 1st, then 1..daysInMonth.
func CalendarGrid(year int, month time.Month) []int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	pad := int(first.Weekday())
	days := first.AddDate(0, 1, -1).Day()

	cells := make([]int, pad, pad+days)
	for day := 1; day <= days; day++ {
		cells = append(cells, day)
	}
	return cells
}

// DeadlinesOn keeps deadlines of any status due on day
func DeadlinesOn(deadlines []models.Deadline, day time.Time) []models.Deadline {
	return filter(deadlines, func(d models.Deadline) bool { return models.SameDay(d.DueDate, day) })
}

// NextUpcoming returns at most n upcoming deadlines, earliest first
func NextUpcoming(deadlines []models.Deadline, n int) []models.Deadline {
	upcoming := SortByDueDate(FilterByStatus(deadlines, string(models.StatusUpcoming)))
	n = max(n, 0)
	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}

// ThisWeek returns upcoming deadlines from today through today+7, earliest first
func ThisWeek(deadlines []models.Deadline, today time.Time) []models.Deadline {
	start := models.Midnight(today)
	return SortByDueDate(UpcomingWithin(deadlines, start, start.AddDate(0, 0, 7)))
}

// StatusCounts totals deadlines per status
type StatusCounts struct {
	Upcoming  int
	Overdue   int
	Completed int
}

// CountByStatus totals deadlines per status
func CountByStatus(deadlines []models.Deadline) StatusCounts {
	var c StatusCounts
	for _, d := range deadlines {
		switch d.Status {
		case models.StatusUpcoming:
			c.Upcoming++
		case models.StatusOverdue:
			c.Overdue++
		case models.StatusCompleted:
			c.Completed++
		}
	}
	return c
}

// CourseIndex maps course ids to courses. Deadlines whose course is gone
// simply miss the lookup.
func CourseIndex(courses []models.Course) map[string]models.Course {
	index := make(map[string]models.Course, len(courses))
	for _, c := range courses {
		index[c.ID] = c
	}
	return index
}

// Tint appends a two-digit hex alpha to a #RRGGBB color
func Tint(color, alpha string) string {
	return color + alpha
}

// EffectiveStatus reads an upcoming deadline that is past due on today as overdue
func EffectiveStatus(d models.Deadline, today time.Time) models.Status {
	if d.Status == models.StatusUpcoming && models.Midnight(d.DueDate).Before(models.Midnight(today)) {
		return models.StatusOverdue
	}
	return d.Status
}

// WithDerivedOverdue returns copies of deadlines with EffectiveStatus applied
func WithDerivedOverdue(deadlines []models.Deadline, today time.Time) []models.Deadline {
	out := slices.Clone(deadlines)
	for i := range out {
		out[i].Status = EffectiveStatus(out[i], today)
	}
	return out
}

func filter(deadlines []models.Deadline, keep func(models.Deadline) bool) []models.Deadline {
	out := make([]models.Deadline, 0, len(deadlines))
	for _, d := range deadlines {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
