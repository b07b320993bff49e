package dto

import (
	"time"

	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/domain/mathplan"
)

// CourseResponse is a catalog course.
type CourseResponse struct {
	ID         string `json:"id" example:"M 160"`
	Label      string `json:"label" example:"MATH 160"`
	Title      string `json:"title,omitempty" example:"Calculus for Physical Scientists I"`
	Credits    int    `json:"credits" example:"4"`
	CatalogURL string `json:"catalogUrl,omitempty"`
}

// CourseListResponse is one page of courses.
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// NewCourseResponse maps a course row.
func NewCourseResponse(c models.Course) CourseResponse {
	return CourseResponse{
		ID:         c.ID,
		Label:      c.ToDomain().DisplayLabel(),
		Title:      c.Title,
		Credits:    c.Credits,
		CatalogURL: c.CatalogURL,
	}
}

// CourseGroupResponse is a course group with its human-readable description.
type CourseGroupResponse struct {
	Code             string   `json:"code" example:"AUCC3"`
	RequiredCredits  *int     `json:"requiredCredits,omitempty" example:"3"`
	LowestLastCourse string   `json:"lowestLastCourse" example:"M 101"`
	CourseIDs        []string `json:"courseIds"`
	Description      string   `json:"description" example:"Select 3 credits from (M 101, M 117)"`
}

// NewCourseGroupResponse maps a group row, describing it against catalog.
func NewCourseGroupResponse(g models.CourseGroup, catalog mathplan.CourseCatalog) CourseGroupResponse {
	return CourseGroupResponse{
		Code:             g.Code,
		RequiredCredits:  g.RequiredCredits,
		LowestLastCourse: g.LowestLastCourse,
		CourseIDs:        g.CourseIDs,
		Description:      g.ToDomain().Describe(catalog),
	}
}

// MajorSlotResponse is one group of a major's term slot with its urgency.
type MajorSlotResponse struct {
	Code    string `json:"code" example:"M 160"`
	Urgency string `json:"urgency" example:"critical" enums:"critical,recommended,typical"`
}

// MajorResponse is a major with its decoded term slots.
type MajorResponse struct {
	ProgramCode string              `json:"programCode" example:"BZ-BS"`
	Name        string              `json:"name" example:"Biology"`
	Semester1   []MajorSlotResponse `json:"semester1"`
	Semester2   []MajorSlotResponse `json:"semester2"`
	Additional  []string            `json:"additional"`
}

func slots(critical, recommended, typical []string) []MajorSlotResponse {
	out := make([]MajorSlotResponse, 0, len(critical)+len(recommended)+len(typical))
	for _, code := range critical {
		out = append(out, MajorSlotResponse{Code: code, Urgency: mathplan.Critical.String()})
	}
	for _, code := range recommended {
		out = append(out, MajorSlotResponse{Code: code, Urgency: mathplan.Recommended.String()})
	}
	for _, code := range typical {
		out = append(out, MajorSlotResponse{Code: code, Urgency: mathplan.Typical.String()})
	}
	return out
}

// NewMajorResponse maps a major row.
func NewMajorResponse(m models.MajorRequirement) MajorResponse {
	req := m.ToDomain()
	additional := req.Additional
	if additional == nil {
		additional = []string{}
	}
	return MajorResponse{
		ProgramCode: m.ProgramCode,
		Name:        m.Name,
		Semester1:   slots(req.Sem1Critical, req.Sem1Recommended, req.Sem1Typical),
		Semester2:   slots(req.Sem2Critical, req.Sem2Recommended, req.Sem2Typical),
		Additional:  additional,
	}
}

// CatalogVersionResponse identifies a loaded catalog snapshot.
type CatalogVersionResponse struct {
	Version  string    `json:"version"`
	LoadedAt time.Time `json:"loadedAt"`
	Courses  int       `json:"courses"`
	Majors   int       `json:"majors"`
}

// NewCatalogVersionResponse describes a snapshot.
func NewCatalogVersionResponse(version string, loadedAt time.Time, courses, majors int) CatalogVersionResponse {
	return CatalogVersionResponse{Version: version, LoadedAt: loadedAt, Courses: courses, Majors: majors}
}
