package models

import "github.com/yigit/mathplan/internal/domain/mathplan"

// Course represents a row of the courses table.
type Course struct {
	ID         string `json:"id" db:"id" yaml:"id" validate:"required,max=32"`
	Label      string `json:"label,omitempty" db:"label" yaml:"label"`
	Title      string `json:"title,omitempty" db:"title" yaml:"title"`
	Credits    int    `json:"credits" db:"credits" yaml:"credits" validate:"min=0,max=12"`
	CatalogURL string `json:"catalogUrl,omitempty" db:"catalog_url" yaml:"catalog_url" validate:"omitempty,url"`
}

// ToDomain converts the row to the planner's catalog entry.
func (c Course) ToDomain() mathplan.Course {
	return mathplan.Course{
		ID:         c.ID,
		Label:      c.Label,
		Title:      c.Title,
		Credits:    c.Credits,
		CatalogURL: c.CatalogURL,
	}
}

// CourseGroup represents a row of the course_groups table.
// A nil RequiredCredits makes it a pick-one group.
type CourseGroup struct {
	Code             string   `json:"code" db:"code" yaml:"code" validate:"required,max=32"`
	RequiredCredits  *int     `json:"requiredCredits,omitempty" db:"required_credits" yaml:"required_credits" validate:"omitempty,min=1"`
	LowestLastCourse string   `json:"lowestLastCourse" db:"lowest_last_course" yaml:"lowest_last_course" validate:"required"`
	CourseIDs        []string `json:"courseIds" db:"course_ids" yaml:"course_ids" validate:"required,min=1,dive,required"`
}

// ToDomain converts the row to an immutable course group.
func (g CourseGroup) ToDomain() mathplan.CourseGroup {
	return mathplan.NewCourseGroup(g.Code, g.RequiredCredits, g.LowestLastCourse, g.CourseIDs...)
}

// Prerequisite represents a row of the course_prerequisites table.
type Prerequisite struct {
	ID              int64      `json:"id" db:"id" yaml:"-"`
	CourseID        string     `json:"courseId" db:"course_id" yaml:"course_id" validate:"required"`
	Position        int        `json:"position" db:"position" yaml:"position"`
	Alternatives    []string   `json:"alternatives" db:"alternatives" yaml:"alternatives" validate:"required,min=1,dive,required"`
	MinimumGrades   []*float64 `json:"minimumGrades,omitempty" db:"minimum_grades" yaml:"minimum_grades"`
	MayBeConcurrent bool       `json:"mayBeConcurrent" db:"may_be_concurrent" yaml:"may_be_concurrent"`
}

// ToDomain converts the row to a prerequisite rule. Grade thresholds are padded to
// the number of alternatives.
func (p Prerequisite) ToDomain() mathplan.RequiredPrereq {
	grades := make([]*float64, len(p.Alternatives))
	copy(grades, p.MinimumGrades)
	return mathplan.RequiredPrereq{
		CourseID:        p.CourseID,
		Alternatives:    append([]string(nil), p.Alternatives...),
		MinimumGrades:   grades,
		MayBeConcurrent: p.MayBeConcurrent,
	}
}

// MajorRequirement represents a row of the major_requirements table.
type MajorRequirement struct {
	ProgramCode string `json:"programCode" db:"program_code" yaml:"program_code" validate:"required,max=32"`
	Name        string `json:"name" db:"name" yaml:"name"`
	Semester1   string `json:"semester1" db:"semester1" yaml:"semester1"`
	Semester2   string `json:"semester2" db:"semester2" yaml:"semester2"`
	Additional  string `json:"additional" db:"additional" yaml:"additional"`
}

// ToDomain decodes the encoded term slots.
func (m MajorRequirement) ToDomain() mathplan.MajorMathRequirement {
	return mathplan.ParseMajorRequirement(m.ProgramCode, m.Semester1, m.Semester2, m.Additional)
}
