package tracker

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tgienger/dues/internal/models"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// CheckFormat reports whether Export can write format
func CheckFormat(format string) error {
	if format != FormatJSON && format != FormatYAML {
		return errors.Errorf("export: unknown format %q", format)
	}
	return nil
}

type exportDeadline struct {
	ID          string `json:"id" yaml:"id"`
	TaskName    string `json:"taskName" yaml:"taskName"`
	CourseID    string `json:"courseId" yaml:"courseId"`
	Course      string `json:"course,omitempty" yaml:"course,omitempty"`
	Type        string `json:"type" yaml:"type"`
	DueDate     string `json:"dueDate" yaml:"dueDate"`
	Priority    string `json:"priority" yaml:"priority"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string `json:"status" yaml:"status"`
}

type exportDoc struct {
	ExportedAt string           `json:"exportedAt" yaml:"exportedAt"`
	Courses    []models.Course  `json:"courses" yaml:"courses"`
	Deadlines  []exportDeadline `json:"deadlines" yaml:"deadlines"`
}

// Export writes every course and deadline to w in the given format.
// Deadlines are ordered by due date and carry their course title.
func (m *Manager) Export(w io.Writer, format string, now time.Time) error {
	if err := CheckFormat(format); err != nil {
		return err
	}
	courses := CourseIndex(m.courses)

	doc := exportDoc{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Courses:    m.Courses(),
		Deadlines:  []exportDeadline{},
	}
	if doc.Courses == nil {
		doc.Courses = []models.Course{}
	}
	for _, d := range SortByDueDate(m.deadlines) {
		doc.Deadlines = append(doc.Deadlines, exportDeadline{
			ID:          d.ID,
			TaskName:    d.TaskName,
			CourseID:    d.CourseID,
			Course:      courses[d.CourseID].Title,
			Type:        string(d.Type),
			DueDate:     models.Midnight(d.DueDate).Format("2006-01-02"),
			Priority:    string(d.Priority),
			Description: d.Description,
			Status:      string(d.Status),
		})
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(doc), "export: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(err, "export: encode yaml")
		}
		return errors.Wrap(enc.Close(), "export: flush yaml")
	}
	return nil
}
