// Package tracker owns the in-memory courses and deadlines of a session.
// Every mutation is flushed to the store before it returns.
package tracker

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tgienger/dues/internal/models"
	"github.com/tgienger/dues/internal/store"
)

// Themes accepted by SetTheme
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Manager is the authoritative copy of the session's courses and
// deadlines. It is not safe for concurrent use.
type Manager struct {
	store         *store.Store
	log           logrus.FieldLogger
	validate      *validator.Validate
	newID         func() string
	deriveOverdue bool

	courses   []models.Course
	deadlines []models.Deadline
	userName  string
	theme     string
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the manager's logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = log }
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// WithOverdueDerivation makes DeadlinesAsOf report past-due upcoming
// deadlines as overdue
func WithOverdueDerivation(enabled bool) Option {
	return func(m *Manager) { m.deriveOverdue = enabled }
}

// New seeds a manager from s
func New(s *store.Store, opts ...Option) *Manager {
	discard := logrus.New()
	discard.SetLevel(logrus.PanicLevel)

	m := &Manager{
		store:    s,
		log:      discard,
		validate: newValidator(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithField("component", "tracker")

	m.courses = dedupe(m.log, "course", s.Courses(), func(c models.Course) string { return c.ID })
	m.deadlines = dedupe(m.log, "deadline", s.Deadlines(), func(d models.Deadline) string { return d.ID })
	m.userName = s.UserName()
	m.theme = s.Theme()

	m.log.WithFields(logrus.Fields{
		"courses":   len(m.courses),
		"deadlines": len(m.deadlines),
	}).Info("collections loaded")
	return m
}

// dedupe keeps the first element for each id of a loaded collection
func dedupe[T any](log logrus.FieldLogger, kind string, items []T, id func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if seen[id(item)] {
			log.WithFields(logrus.Fields{"kind": kind, "id": id(item)}).Warn("dropping duplicate id from store")
			continue
		}
		seen[id(item)] = true
		out = append(out, item)
	}
	return out
}

// Courses returns the courses in insertion order
func (m *Manager) Courses() []models.Course {
	return slices.Clone(m.courses)
}

// Deadlines returns the deadlines in insertion order, as stored
func (m *Manager) Deadlines() []models.Deadline {
	return slices.Clone(m.deadlines)
}

// DeadlinesAsOf returns the deadlines as they should be displayed on
// today: with overdue derivation applied when enabled.
func (m *Manager) DeadlinesAsOf(today time.Time) []models.Deadline {
	if !m.deriveOverdue {
		return m.Deadlines()
	}
	return WithDerivedOverdue(m.deadlines, today)
}

// Course looks up a course by id
func (m *Manager) Course(id string) (models.Course, bool) {
	i := m.courseIndex(id)
	if i < 0 {
		return models.Course{}, false
	}
	return m.courses[i], true
}

// Deadline looks up a deadline by id
func (m *Manager) Deadline(id string) (models.Deadline, bool) {
	i := m.deadlineIndex(id)
	if i < 0 {
		return models.Deadline{}, false
	}
	return m.deadlines[i], true
}

// DisplayName returns the profile display name
func (m *Manager) DisplayName() string {
	return m.userName
}

// Theme returns the display theme
func (m *Manager) Theme() string {
	return m.theme
}

func (m *Manager) courseIndex(id string) int {
	return slices.IndexFunc(m.courses, func(c models.Course) bool { return c.ID == id })
}

func (m *Manager) deadlineIndex(id string) int {
	return slices.IndexFunc(m.deadlines, func(d models.Deadline) bool { return d.ID == id })
}

// nextID draws a fresh id. A collision means the generator is broken,
// so it panics rather than returning an error.
func (m *Manager) nextID(kind string, taken func(string) bool) string {
	id := m.newID()
	if id == "" || taken(id) {
		panic(fmt.Sprintf("tracker: id generator produced duplicate %s id %q", kind, id))
	}
	return id
}

// AddCourse creates a course with a fresh id and persists the course list
func (m *Manager) AddCourse(in CourseInput) (models.Course, error) {
	if err := check(m.validate, in); err != nil {
		return models.Course{}, err
	}

	course := models.Course{
		ID:         m.nextID("course", func(id string) bool { return m.courseIndex(id) >= 0 }),
		Title:      in.Title,
		Instructor: in.Instructor,
		Semester:   in.Semester,
		Color:      in.Color,
	}
	m.courses = append(m.courses, course)
	m.log.WithField("id", course.ID).Debug("course added")

	return course, m.store.SaveCourses(m.courses)
}

// DeleteCourse removes a course and every deadline that references it.
// Unknown ids are a no-op.
func (m *Manager) DeleteCourse(id string) error {
	i := m.courseIndex(id)
	if i < 0 {
		return nil
	}
	m.courses = slices.Delete(m.courses, i, i+1)

	before := len(m.deadlines)
	m.deadlines = slices.DeleteFunc(m.deadlines, func(d models.Deadline) bool { return d.CourseID == id })
	m.log.WithFields(logrus.Fields{
		"id":        id,
		"deadlines": before - len(m.deadlines),
	}).Debug("course deleted")

	if err := m.store.SaveCourses(m.courses); err != nil {
		return err
	}
	return m.store.SaveDeadlines(m.deadlines)
}

// AddDeadline creates an upcoming deadline with a fresh id and persists
// the deadline list
func (m *Manager) AddDeadline(in DeadlineInput) (models.Deadline, error) {
	if err := check(m.validate, in); err != nil {
		return models.Deadline{}, err
	}

	deadline := models.Deadline{
		ID:          m.nextID("deadline", func(id string) bool { return m.deadlineIndex(id) >= 0 }),
		TaskName:    in.TaskName,
		CourseID:    in.CourseID,
		Type:        in.Type,
		DueDate:     models.Midnight(in.DueDate),
		Priority:    in.Priority,
		Description: in.Description,
		Status:      models.StatusUpcoming,
	}
	m.deadlines = append(m.deadlines, deadline)
	m.log.WithFields(logrus.Fields{"id": deadline.ID, "course": deadline.CourseID}).Debug("deadline added")

	return deadline, m.store.SaveDeadlines(m.deadlines)
}

// UpdateDeadline merges patch into the deadline with id.
// Unknown ids are a no-op.
func (m *Manager) UpdateDeadline(id string, patch DeadlinePatch) error {
	if err := check(m.validate, patch); err != nil {
		return err
	}

	i := m.deadlineIndex(id)
	if i < 0 {
		return nil
	}

	d := &m.deadlines[i]
	if patch.TaskName != nil {
		d.TaskName = *patch.TaskName
	}
	if patch.CourseID != nil {
		d.CourseID = *patch.CourseID
	}
	if patch.Type != nil {
		d.Type = *patch.Type
	}
	if patch.DueDate != nil {
		d.DueDate = models.Midnight(*patch.DueDate)
	}
	if patch.Priority != nil {
		d.Priority = *patch.Priority
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	if patch.Status != nil {
		d.Status = *patch.Status
	}
	m.log.WithFields(logrus.Fields{"id": id, "status": d.Status}).Debug("deadline updated")

	return m.store.SaveDeadlines(m.deadlines)
}

// EditDeadline replaces every form field of a deadline, leaving its status
func (m *Manager) EditDeadline(id string, in DeadlineInput) error {
	if err := check(m.validate, in); err != nil {
		return err
	}
	return m.UpdateDeadline(id, DeadlinePatch{
		TaskName:    &in.TaskName,
		CourseID:    &in.CourseID,
		Type:        &in.Type,
		DueDate:     &in.DueDate,
		Priority:    &in.Priority,
		Description: &in.Description,
	})
}

// ToggleCompleted flips a deadline between completed and upcoming
func (m *Manager) ToggleCompleted(id string) error {
	d, ok := m.Deadline(id)
	if !ok {
		return nil
	}
	if d.Status == models.StatusCompleted {
		return m.UpdateDeadline(id, StatusPatch(models.StatusUpcoming))
	}
	return m.UpdateDeadline(id, StatusPatch(models.StatusCompleted))
}

// DeleteDeadline removes a deadline. Unknown ids are a no-op.
func (m *Manager) DeleteDeadline(id string) error {
	i := m.deadlineIndex(id)
	if i < 0 {
		return nil
	}
	m.deadlines = slices.Delete(m.deadlines, i, i+1)
	m.log.WithField("id", id).Debug("deadline deleted")

	return m.store.SaveDeadlines(m.deadlines)
}

// ClearCompleted removes every completed deadline and reports how many
func (m *Manager) ClearCompleted() (int, error) {
	before := len(m.deadlines)
	m.deadlines = slices.DeleteFunc(m.deadlines, func(d models.Deadline) bool {
		return d.Status == models.StatusCompleted
	})
	removed := before - len(m.deadlines)
	m.log.WithField("removed", removed).Debug("completed deadlines cleared")

	return removed, m.store.SaveDeadlines(m.deadlines)
}

// SetDisplayName updates the profile display name
func (m *Manager) SetDisplayName(name string) error {
	m.userName = name
	return m.store.SetUserName(name)
}

// SetTheme updates the display theme
func (m *Manager) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return &ValidationError{Fields: []FieldError{{Field: "theme", Rule: "oneof"}}}
	}
	m.theme = theme
	return m.store.SetTheme(theme)
}

// LastSession reports the page and auth flag saved by the previous run
func (m *Manager) LastSession() (page string, authenticated bool) {
	return m.store.LastPage(), m.store.IsAuthenticated()
}

// SaveSession records the current page and auth flag
func (m *Manager) SaveSession(page string, authenticated bool) error {
	if err := m.store.SetAuthenticated(authenticated); err != nil {
		return err
	}
	return m.store.SetLastPage(page)
}

// EndSession forgets the auth flag and last page. Courses, deadlines and
// the profile survive a logout.
func (m *Manager) EndSession() error {
	m.log.Debug("session ended")
	return m.store.ClearSession()
}
