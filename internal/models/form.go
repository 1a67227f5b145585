package models

import "strings"

// Field identifies one input of the student form. The string value doubles
// as the JSON key used by the HTTP API.
type Field string

const (
	FieldFirstName     Field = "fname"
	FieldLastName      Field = "lname"
	FieldCourseSection Field = "section_year"
	FieldStudentID     Field = "student_id"
	FieldEmail         Field = "email"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldCourseSection,
	FieldStudentID,
	FieldEmail,
}

func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// FormInput is the live field set a user edits.
type FormInput struct {
	FirstName     string `json:"fname"`
	LastName      string `json:"lname"`
	CourseSection string `json:"section_year"`
	StudentID     string `json:"student_id"`
	Email         string `json:"email"`
}

func (f FormInput) Get(field Field) string {
	switch field {
	case FieldFirstName:
		return f.FirstName
	case FieldLastName:
		return f.LastName
	case FieldCourseSection:
		return f.CourseSection
	case FieldStudentID:
		return f.StudentID
	case FieldEmail:
		return f.Email
	}
	return ""
}

// Set assigns value to field and reports whether the field is known.
func (f *FormInput) Set(field Field, value string) bool {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldCourseSection:
		f.CourseSection = value
	case FieldStudentID:
		f.StudentID = value
	case FieldEmail:
		f.Email = value
	default:
		return false
	}
	return true
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f FormInput) Trimmed() FormInput {
	return FormInput{
		FirstName:     strings.TrimSpace(f.FirstName),
		LastName:      strings.TrimSpace(f.LastName),
		CourseSection: strings.TrimSpace(f.CourseSection),
		StudentID:     strings.TrimSpace(f.StudentID),
		Email:         strings.TrimSpace(f.Email),
	}
}

// Filled lists the fields that hold a non-blank value, in display order.
func (f FormInput) Filled() []Field {
	filled := make([]Field, 0, len(Fields))
	for _, field := range Fields {
		if strings.TrimSpace(f.Get(field)) != "" {
			filled = append(filled, field)
		}
	}
	return filled
}

// ValidationErrors maps a field to its message. A missing key or an empty
// message means the field is valid.
type ValidationErrors map[Field]string

// Clear drops the entry for one field without touching the others.
func (e ValidationErrors) Clear(field Field) {
	delete(e, field)
}

func (e ValidationErrors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}
