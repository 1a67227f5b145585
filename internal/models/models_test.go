package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCourseSection(t *testing.T) {
	c, ok := ParseCourseSection("BSCS 1A")
	require.True(t, ok)
	require.Equal(t, BSCS1A, c)

	c, ok = ParseCourseSection("ACT 2A")
	require.True(t, ok)
	require.Equal(t, ACT2A, c)

	for _, in := range []string{"", "bscs 1a", "BSCS-1A", "BSCS 5A", " BSCS 1A"} {
		_, ok := ParseCourseSection(in)
		require.False(t, ok, in)
	}
	require.Len(t, Catalog, 20)
}

func TestFormInputAccessors(t *testing.T) {
	var f FormInput
	for _, field := range Fields {
		require.True(t, f.Set(field, "v-"+string(field)))
		require.Equal(t, "v-"+string(field), f.Get(field))
	}
	require.False(t, f.Set(Field("nickname"), "x"))
	require.Equal(t, "", f.Get(Field("nickname")))

	_, ok := ParseField("student_id")
	require.True(t, ok)
	_, ok = ParseField("studentId")
	require.False(t, ok)
}

func TestFormInputTrimmed(t *testing.T) {
	f := FormInput{FirstName: "  Ana ", LastName: "\tCruz\n", CourseSection: " BSCS 1A", StudentID: "23-45678 ", Email: " ana@gbox.ncf.edu.ph"}
	require.Equal(t, FormInput{
		FirstName:     "Ana",
		LastName:      "Cruz",
		CourseSection: "BSCS 1A",
		StudentID:     "23-45678",
		Email:         "ana@gbox.ncf.edu.ph",
	}, f.Trimmed())
}

func TestFormInputFilled(t *testing.T) {
	require.Empty(t, FormInput{}.Filled())
	require.NotNil(t, FormInput{}.Filled())

	in := FormInput{FirstName: "Ana", CourseSection: "  ", StudentID: "23-45678", Email: "ana@gbox.ncf.edu.ph"}
	require.Equal(t, []Field{FieldFirstName, FieldStudentID, FieldEmail}, in.Filled())
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{FieldFirstName: "required", FieldEmail: ""}
	require.False(t, errs.Valid())

	errs.Clear(FieldFirstName)
	require.True(t, errs.Valid())
	require.NotContains(t, errs, FieldFirstName)
	require.True(t, ValidationErrors(nil).Valid())
}

func TestArtifactHelpers(t *testing.T) {
	a := &Artifact{PNG: []byte{0x89, 'P', 'N', 'G'}}
	require.Equal(t, "data:image/png;base64,iVBORw==", a.DataURI())
	require.Equal(t, "Ana_Cruz_QR.png", QRFilename("Ana", "Cruz"))
}
