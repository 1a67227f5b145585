// Package validator checks a student form and reports one message per
// offending field.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	playground "github.com/go-playground/validator/v10"

	"ncfqr/internal/models"
	apperrors "ncfqr/pkg/errors"
)

const (
	MsgFirstNameRequired     = "First name is required"
	MsgLastNameRequired      = "Last name is required"
	MsgCourseSectionRequired = "Course/Year/Section is required"
	MsgCourseSectionInvalid  = "Select a valid Course/Year/Section"
	MsgStudentIDRequired     = "Student ID is required"
	MsgStudentIDFormat       = "Student ID must follow the format 12-34567"
	MsgEmailRequired         = "Email is required"
	MsgEmailFormat           = "Enter a valid email address"
)

// suggestionThreshold matches the Jaro-Winkler cut-off used for institution
// name matching.
const suggestionThreshold = 0.85

type Validator struct {
	studentIDRegex *regexp.Regexp
	fields         *playground.Validate
	similarity     *metrics.JaroWinkler
}

func NewValidator() *Validator {
	return &Validator{
		studentIDRegex: regexp.MustCompile(`^\d{2}-\d{5}$`),
		fields:         playground.New(),
		similarity:     metrics.NewJaroWinkler(),
	}
}

var defaultValidator = NewValidator()

// Validate runs the default validator.
func Validate(in models.FormInput) (models.ValidationErrors, bool) {
	return defaultValidator.Validate(in)
}

// Validate checks every field independently and collects all failures.
// Within a field the first failing rule wins: presence is checked before
// format, so an empty field always reports its required message.
func (v *Validator) Validate(in models.FormInput) (models.ValidationErrors, bool) {
	in = in.Trimmed()
	errs := models.ValidationErrors{}

	if in.FirstName == "" {
		errs[models.FieldFirstName] = MsgFirstNameRequired
	}
	if in.LastName == "" {
		errs[models.FieldLastName] = MsgLastNameRequired
	}
	if msg := v.checkCourseSection(in.CourseSection); msg != "" {
		errs[models.FieldCourseSection] = msg
	}
	if msg := v.checkStudentID(in.StudentID); msg != "" {
		errs[models.FieldStudentID] = msg
	}
	if msg := v.checkEmail(in.Email); msg != "" {
		errs[models.FieldEmail] = msg
	}

	return errs, errs.Valid()
}

func (v *Validator) checkCourseSection(value string) string {
	if value == "" {
		return MsgCourseSectionRequired
	}
	if _, ok := models.ParseCourseSection(value); ok {
		return ""
	}
	if s, ok := v.Suggest(value); ok {
		return fmt.Sprintf("%s (did you mean %s?)", MsgCourseSectionInvalid, s)
	}
	return MsgCourseSectionInvalid
}

func (v *Validator) checkStudentID(value string) string {
	if value == "" {
		return MsgStudentIDRequired
	}
	if !v.studentIDRegex.MatchString(value) {
		return MsgStudentIDFormat
	}
	return ""
}

func (v *Validator) checkEmail(value string) string {
	if value == "" {
		return MsgEmailRequired
	}
	if err := v.fields.Var(value, "email"); err != nil {
		return MsgEmailFormat
	}
	return ""
}

// Suggest returns the catalog entry closest to value when it is similar
// enough to be a likely typo.
func (v *Validator) Suggest(value string) (models.CourseSection, bool) {
	needle := strings.ToUpper(strings.TrimSpace(value))
	if needle == "" {
		return "", false
	}

	var best models.CourseSection
	bestScore := 0.0
	for _, c := range models.Catalog {
		score := strutil.Similarity(needle, string(c), v.similarity)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < suggestionThreshold {
		return "", false
	}
	return best, true
}

// FieldErrors converts the map into ValidationError values in form order,
// for logging.
func FieldErrors(in models.FormInput, errs models.ValidationErrors) []error {
	out := make([]error, 0, len(errs))
	for _, f := range models.Fields {
		if msg := errs[f]; msg != "" {
			out = append(out, apperrors.ValidationError{
				Field:   string(f),
				Value:   in.Get(f),
				Message: msg,
			})
		}
	}
	return out
}
