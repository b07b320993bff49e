package dto

import (
	"time"

	"github.com/yigit/mathplan/internal/domain/mathplan"
)

// PreviewPlanRequest computes a plan for an inline record without storing it.
type PreviewPlanRequest struct {
	Majors      []string             `json:"majors" binding:"required,min=1" validate:"required,min=1,dive,required"`
	Student     PreviewStudentRecord `json:"student"`
	CanRegister []string             `json:"canRegister,omitempty"`
	Variant     string               `json:"variant,omitempty" validate:"omitempty,oneof=critical recommended typical"`
}

// PreviewStudentRecord is the inline academic record of a preview request.
type PreviewStudentRecord struct {
	StudentID  string                     `json:"studentId,omitempty" validate:"max=64"`
	Completed  []mathplan.CompletedCourse `json:"completed" validate:"dive"`
	Transfers  []mathplan.TransferCredit  `json:"transfers" validate:"dive"`
	Placements []mathplan.PlacementResult `json:"placements" validate:"dive"`
}

// ToDomain converts the inline record.
func (r PreviewStudentRecord) ToDomain() *mathplan.StudentRecord {
	return &mathplan.StudentRecord{
		StudentID:  r.StudentID,
		Completed:  r.Completed,
		Transfers:  r.Transfers,
		Placements: r.Placements,
	}
}

// PlannedCourseResponse is one course placed in a bucket.
type PlannedCourseResponse struct {
	ID                  string   `json:"id" example:"M 160"`
	Label               string   `json:"label" example:"MATH 160"`
	Credits             int      `json:"credits" example:"4"`
	Status              string   `json:"status" example:"NONE"`
	Sufficient          bool     `json:"sufficient"`
	AddedAsPrerequisite bool     `json:"addedAsPrerequisite"`
	RequiredGrade       *float64 `json:"requiredGrade,omitempty"`
	EarnedGrade         *float64 `json:"earnedGrade,omitempty"`
}

// PlannedGroupResponse is an unresolved choice left in a bucket.
type PlannedGroupResponse struct {
	Code             string                  `json:"code" example:"AUCC3"`
	Description      string                  `json:"description" example:"Select 3 credits from (MATH 101, MATH 117)"`
	RemainingCredits *int                    `json:"remainingCredits,omitempty"`
	Satisfied        bool                    `json:"satisfied"`
	Courses          []PlannedCourseResponse `json:"courses"`
}

// BucketResponse is one term partition of a plan.
type BucketResponse struct {
	Name    string                  `json:"name" example:"semester1" enums:"pre-arrival,semester1,semester2,additional"`
	HasData bool                    `json:"hasData"`
	Courses []PlannedCourseResponse `json:"courses"`
	Groups  []PlannedGroupResponse  `json:"groups"`
}

// SequenceResponse is one plan variant.
type SequenceResponse struct {
	Variant              string           `json:"variant" example:"critical"`
	Buckets              []BucketResponse `json:"buckets"`
	PreArrivalPending    int              `json:"preArrivalPending"`
	HasMultipleCalc1     bool             `json:"hasMultipleCalc1"`
	HasMultipleCalc2     bool             `json:"hasMultipleCalc2"`
	EligibleForSemester1 *bool            `json:"eligibleForSemester1,omitempty"`
}

// PlanResponse is the result of a plan computation.
type PlanResponse struct {
	PlanID          string             `json:"planId"`
	StudentID       string             `json:"studentId,omitempty"`
	Majors          []string           `json:"majors"`
	CatalogVersion  string             `json:"catalogVersion"`
	ComputedAt      time.Time          `json:"computedAt"`
	TransferCredits float64            `json:"transferCredits"`
	CoreCredits     float64            `json:"coreCredits"`
	Variants        []SequenceResponse `json:"variants"`
}

func newPlannedCourse(ci *mathplan.CourseInfo) PlannedCourseResponse {
	out := PlannedCourseResponse{
		ID:                  ci.ID(),
		Label:               ci.Course.DisplayLabel(),
		Credits:             ci.Course.Credits,
		Status:              ci.Status.Name(),
		Sufficient:          ci.Status.Sufficient(),
		AddedAsPrerequisite: ci.AddedAsPrerequisite,
		RequiredGrade:       ci.RequiredGrade,
	}
	if g, ok := ci.EarnedGrade(); ok {
		out.EarnedGrade = &g
	}
	return out
}

func newPlannedGroup(g *mathplan.CourseInfoGroup, catalog mathplan.CourseCatalog) PlannedGroupResponse {
	out := PlannedGroupResponse{
		Code:        g.Code(),
		Description: g.Outstanding().Describe(catalog),
		Satisfied:   g.Satisfied(),
		Courses:     make([]PlannedCourseResponse, 0, len(g.Courses())),
	}
	if remaining, ok := g.RemainingCredits(); ok {
		out.RemainingCredits = &remaining
	}
	for _, ci := range g.Courses() {
		out.Courses = append(out.Courses, newPlannedCourse(ci))
	}
	return out
}

// NewSequenceResponse maps a computed plan variant. A nil canRegister leaves
// eligibility unset.
func NewSequenceResponse(variant string, seq *mathplan.CourseSequence, catalog mathplan.CourseCatalog, canRegister []string) SequenceResponse {
	out := SequenceResponse{
		Variant:           variant,
		Buckets:           make([]BucketResponse, 0, len(mathplan.Buckets)),
		PreArrivalPending: seq.PreArrivalPending(),
		HasMultipleCalc1:  seq.HasMultipleCalc1(),
		HasMultipleCalc2:  seq.HasMultipleCalc2(),
	}
	if canRegister != nil {
		eligible := seq.IsEligibleForSemester1(canRegister)
		out.EligibleForSemester1 = &eligible
	}

	for _, b := range mathplan.Buckets {
		bucket := BucketResponse{
			Name:    b.String(),
			HasData: seq.HasData(b),
			Courses: []PlannedCourseResponse{},
			Groups:  []PlannedGroupResponse{},
		}
		for _, ci := range seq.Courses(b) {
			bucket.Courses = append(bucket.Courses, newPlannedCourse(ci))
		}
		for _, g := range seq.Groups(b) {
			bucket.Groups = append(bucket.Groups, newPlannedGroup(g, catalog))
		}
		out.Buckets = append(out.Buckets, bucket)
	}
	return out
}

// VariantNames lists the plan variants in response order.
var VariantNames = []string{mathplan.VariantCritical, mathplan.VariantRecommended, mathplan.VariantTypical}

// NewSequenceResponses maps the requested variants of rec; an empty variant selects all three.
func NewSequenceResponses(rec *mathplan.Recommendations, variant string, catalog mathplan.CourseCatalog, canRegister []string) ([]SequenceResponse, bool) {
	names := VariantNames
	if variant != "" {
		names = []string{variant}
	}

	out := make([]SequenceResponse, 0, len(names))
	for _, name := range names {
		seq, ok := rec.Variant(name)
		if !ok {
			return nil, false
		}
		out = append(out, NewSequenceResponse(name, seq, catalog, canRegister))
	}
	return out, true
}
