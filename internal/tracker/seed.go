package tracker

import (
	"time"

	"github.com/tgienger/dues/internal/models"
)

type seedDeadline struct {
	in     DeadlineInput
	course int // index into seedCourses
	offset int // days from today
	status models.Status
}

var seedCourses = []CourseInput{
	{Title: "Computer Science 101", Instructor: "Dr. Smith", Semester: "Fall 2024", Color: "#3B82F6"},
	{Title: "Data Structures", Instructor: "Prof. Johnson", Semester: "Fall 2024", Color: "#10B981"},
	{Title: "Calculus II", Instructor: "Dr. Williams", Semester: "Fall 2024", Color: "#F59E0B"},
	{Title: "English Literature", Instructor: "Prof. Brown", Semester: "Fall 2024", Color: "#8B5CF6"},
	{Title: "Physics I", Instructor: "Dr. Davis", Semester: "Fall 2024", Color: "#EF4444"},
}

var seedDeadlines = []seedDeadline{
	{DeadlineInput{TaskName: "Lab Report #3", Type: models.TypeAssignment, Priority: models.PriorityHigh, Description: "Complete the data analysis section"}, 0, 3, models.StatusUpcoming},
	{DeadlineInput{TaskName: "Midterm Exam", Type: models.TypeExam, Priority: models.PriorityHigh, Description: "Chapters 1-6"}, 1, 6, models.StatusUpcoming},
	{DeadlineInput{TaskName: "Problem Set 7", Type: models.TypeAssignment, Priority: models.PriorityMedium, Description: "Integration problems"}, 2, 2, models.StatusUpcoming},
	{DeadlineInput{TaskName: "Essay Draft", Type: models.TypeAssignment, Priority: models.PriorityHigh, Description: "Analysis of Shakespeare"}, 3, -2, models.StatusOverdue},
	{DeadlineInput{TaskName: "Quiz 4", Type: models.TypeQuiz, Priority: models.PriorityLow, Description: "Newton's Laws"}, 4, 8, models.StatusUpcoming},
	{DeadlineInput{TaskName: "Project Proposal", Type: models.TypeProject, Priority: models.PriorityMedium, Description: "Binary search tree implementation"}, 1, 4, models.StatusUpcoming},
	{DeadlineInput{TaskName: "Reading Response", Type: models.TypeAssignment, Priority: models.PriorityLow, Description: "Hamlet Act 3"}, 3, -4, models.StatusCompleted},
}

// Seed fills an empty manager with demo courses and deadlines placed
// around today. It reports false and does nothing if courses exist.
func Seed(m *Manager, today time.Time) (bool, error) {
	if len(m.courses) > 0 {
		return false, nil
	}

	ids := make([]string, len(seedCourses))
	for i, in := range seedCourses {
		course, err := m.AddCourse(in)
		if err != nil {
			return false, err
		}
		ids[i] = course.ID
	}

	today = models.Midnight(today)
	for _, sd := range seedDeadlines {
		in := sd.in
		in.CourseID = ids[sd.course]
		in.DueDate = today.AddDate(0, 0, sd.offset)

		d, err := m.AddDeadline(in)
		if err != nil {
			return false, err
		}
		if sd.status != models.StatusUpcoming {
			if err := m.UpdateDeadline(d.ID, StatusPatch(sd.status)); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
