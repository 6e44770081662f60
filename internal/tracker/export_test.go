package tracker

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func exportFixture(t *testing.T) *Manager {
	t.Helper()
	m, _ := newTestManager(t)
	course, err := m.AddCourse(courseInput("Computer Science 101"))
	require.NoError(t, err)
	_, err = m.AddDeadline(deadlineInput(course.ID, day(2024, 12, 15)))
	require.NoError(t, err)
	_, err = m.AddDeadline(deadlineInput("gone", day(2024, 12, 10)))
	require.NoError(t, err)
	return m
}

func TestExportFormats(t *testing.T) {
	now := time.Date(2024, 12, 12, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		format string
		decode func([]byte, any) error
	}{
		{format: FormatJSON, decode: json.Unmarshal},
		{format: FormatYAML, decode: yaml.Unmarshal},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			m := exportFixture(t)

			var buf bytes.Buffer
			require.NoError(t, m.Export(&buf, tt.format, now))

			var doc exportDoc
			require.NoError(t, tt.decode(buf.Bytes(), &doc))

			assert.Equal(t, "2024-12-12T09:30:00Z", doc.ExportedAt)
			assert.Equal(t, m.Courses(), doc.Courses)
			require.Len(t, doc.Deadlines, 2)

			assert.Equal(t, "2024-12-10", doc.Deadlines[0].DueDate)
			assert.Equal(t, "gone", doc.Deadlines[0].CourseID)
			assert.Empty(t, doc.Deadlines[0].Course)

			assert.Equal(t, "2024-12-15", doc.Deadlines[1].DueDate)
			assert.Equal(t, "Computer Science 101", doc.Deadlines[1].Course)
			assert.Equal(t, "upcoming", doc.Deadlines[1].Status)
		})
	}
}

func TestExportEmpty(t *testing.T) {
	m, _ := newTestManager(t)

	var buf bytes.Buffer
	require.NoError(t, m.Export(&buf, FormatJSON, time.Now()))
	assert.Contains(t, buf.String(), `"courses": []`)
	assert.Contains(t, buf.String(), `"deadlines": []`)
}

func TestExportUnknownFormat(t *testing.T) {
	m, _ := newTestManager(t)
	var out bytes.Buffer
	assert.Error(t, m.Export(&out, "csv", time.Now()))
	assert.Zero(t, out.Len())

	assert.NoError(t, CheckFormat(FormatJSON))
	assert.NoError(t, CheckFormat(FormatYAML))
	assert.Error(t, CheckFormat("xml"))
}
