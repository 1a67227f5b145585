package models

import (
	"encoding/base64"
	"fmt"
)

const (
	Institution  = "Naga College Foundation"
	AcademicYear = "2024-2025"
)

// StudentRecord is the payload placed inside the QR symbol. Field order is
// the key order of the serialized JSON.
type StudentRecord struct {
	Institution       string `json:"institution"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	CourseYearSection string `json:"course_year_section"`
	StudentID         string `json:"student_id"`
	GeneratedAt       string `json:"generated_at"`
	AcademicYear      string `json:"academic_year"`
}

// Artifact is a rendered QR code together with the record it encodes.
type Artifact struct {
	Record   StudentRecord `json:"record"`
	PNG      []byte        `json:"png"`
	Filename string        `json:"filename"`
}

func (a *Artifact) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(a.PNG)
}

// QRFilename is the default download name for a student's code.
func QRFilename(firstName, lastName string) string {
	return fmt.Sprintf("%s_%s_QR.png", firstName, lastName)
}
