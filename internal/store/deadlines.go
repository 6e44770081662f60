package store

import (
	"encoding/json"

	"github.com/tgienger/dues/internal/models"
)

// deadlineDoc is the persisted shape of a deadline; dueDate is a date string
type deadlineDoc struct {
	ID          string              `json:"id"`
	TaskName    string              `json:"taskName"`
	CourseID    string              `json:"courseId"`
	Type        models.DeadlineType `json:"type"`
	DueDate     string              `json:"dueDate"`
	Priority    models.Priority     `json:"priority"`
	Description string              `json:"description"`
	Status      models.Status       `json:"status"`
}

func toDoc(d models.Deadline) deadlineDoc {
	return deadlineDoc{
		ID:          d.ID,
		TaskName:    d.TaskName,
		CourseID:    d.CourseID,
		Type:        d.Type,
		DueDate:     models.FormatDueDate(d.DueDate),
		Priority:    d.Priority,
		Description: d.Description,
		Status:      d.Status,
	}
}

// Deadlines loads the deadline list, re-hydrating each due date.
// Elements that are not objects or carry an unreadable date are dropped.
func (s *Store) Deadlines() []models.Deadline {
	raw := Load[[]json.RawMessage](s, KeyDeadlines, nil)

	deadlines := make([]models.Deadline, 0, len(raw))
	for i, elem := range raw {
		var doc deadlineDoc
		if err := json.Unmarshal(elem, &doc); err != nil {
			s.log.WithError(err).WithField("index", i).Warn("dropping malformed deadline")
			continue
		}
		due, err := models.ParseDueDate(doc.DueDate)
		if err != nil {
			s.log.WithError(err).WithField("id", doc.ID).Warn("dropping deadline with unreadable due date")
			continue
		}
		deadlines = append(deadlines, models.Deadline{
			ID:          doc.ID,
			TaskName:    doc.TaskName,
			CourseID:    doc.CourseID,
			Type:        doc.Type,
			DueDate:     due,
			Priority:    doc.Priority,
			Description: doc.Description,
			Status:      doc.Status,
		})
	}
	return deadlines
}

// SaveDeadlines overwrites the deadline list
func (s *Store) SaveDeadlines(deadlines []models.Deadline) error {
	docs := make([]deadlineDoc, len(deadlines))
	for i, d := range deadlines {
		docs[i] = toDoc(d)
	}
	return s.Save(KeyDeadlines, docs)
}
