package models

// CourseSection is one entry of the fixed course/year/section catalog.
type CourseSection string

const (
	BSCS1A CourseSection = "BSCS 1A"
	BSCS2A CourseSection = "BSCS 2A"
	BSCS3A CourseSection = "BSCS 3A"
	BSCS3B CourseSection = "BSCS 3B"
	BSCS4  CourseSection = "BSCS 4"
	BSIS1A CourseSection = "BSIS 1A"
	BSIS2A CourseSection = "BSIS 2A"
	BSIS3A CourseSection = "BSIS 3A"
	BSIS3B CourseSection = "BSIS 3B"
	BSIS4  CourseSection = "BSIS 4"
	BSIT1A CourseSection = "BSIT 1A"
	BSIT1B CourseSection = "BSIT 1B"
	BSIT1C CourseSection = "BSIT 1C"
	BSIT1D CourseSection = "BSIT 1D"
	BSIT2A CourseSection = "BSIT 2A"
	BSIT2B CourseSection = "BSIT 2B"
	BSIT2C CourseSection = "BSIT 2C"
	BSIT2D CourseSection = "BSIT 2D"
	ACT1A  CourseSection = "ACT 1A"
	ACT2A  CourseSection = "ACT 2A"
)

// Catalog is the closed set of accepted values, in dropdown order.
var Catalog = []CourseSection{
	BSCS1A, BSCS2A, BSCS3A, BSCS3B, BSCS4,
	BSIS1A, BSIS2A, BSIS3A, BSIS3B, BSIS4,
	BSIT1A, BSIT1B, BSIT1C, BSIT1D, BSIT2A, BSIT2B, BSIT2C, BSIT2D,
	ACT1A, ACT2A,
}

// ParseCourseSection only accepts exact catalog values.
func ParseCourseSection(s string) (CourseSection, bool) {
	for _, c := range Catalog {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c CourseSection) String() string {
	return string(c)
}
