package tracker

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/tgienger/dues/internal/models"
)

// ErrInvalidInput is matched by every ValidationError
var ErrInvalidInput = errors.New("invalid input")

// FieldError names a rejected field and the rule it broke
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError is returned when manager input is rejected.
// Nothing is changed when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Rule)
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// CourseInput is the data needed to create a course
type CourseInput struct {
	Title      string `json:"title" validate:"required"`
	Instructor string `json:"instructor" validate:"required"`
	Semester   string `json:"semester" validate:"required"`
	Color      string `json:"color" validate:"required,len=7,hexcolor"`
}

// DeadlineInput is the data needed to create or fully edit a deadline.
// Status is not part of it: new deadlines always start upcoming.
type DeadlineInput struct {
	TaskName    string              `json:"taskName" validate:"required"`
	CourseID    string              `json:"courseId" validate:"required"`
	Type        models.DeadlineType `json:"type" validate:"oneof=assignment quiz exam project"`
	DueDate     time.Time           `json:"dueDate" validate:"required"`
	Priority    models.Priority     `json:"priority" validate:"oneof=low medium high"`
	Description string              `json:"description"`
}

// DeadlinePatch holds the fields to merge into a deadline; nil means keep
type DeadlinePatch struct {
	TaskName    *string              `json:"taskName" validate:"omitnil,min=1"`
	CourseID    *string              `json:"courseId"`
	Type        *models.DeadlineType `json:"type" validate:"omitnil,oneof=assignment quiz exam project"`
	DueDate     *time.Time           `json:"dueDate"`
	Priority    *models.Priority     `json:"priority" validate:"omitnil,oneof=low medium high"`
	Description *string              `json:"description"`
	Status      *models.Status       `json:"status" validate:"omitnil,oneof=upcoming overdue completed"`
}

// StatusPatch returns a patch that only sets the status
func StatusPatch(status models.Status) DeadlinePatch {
	return DeadlinePatch{Status: &status}
}

func newValidator() *validator.Validate {
	validate := validator.New()

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// check runs struct validation and converts failures to a ValidationError
func check(validate *validator.Validate, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
