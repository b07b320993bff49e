package mathplan

import (
	"math"

	"github.com/rs/zerolog"
)

// Variant names of the three plans.
const (
	VariantCritical    = "critical"
	VariantRecommended = "recommended"
	VariantTypical     = "typical"
)

// Recommendations holds the three plan variants computed for one student.
type Recommendations struct {
	Critical    *CourseSequence
	Recommended *CourseSequence
	Typical     *CourseSequence
}

// Variant returns a plan by name.
func (r *Recommendations) Variant(name string) (*CourseSequence, bool) {
	switch name {
	case VariantCritical:
		return r.Critical, true
	case VariantRecommended:
		return r.Recommended, true
	case VariantTypical:
		return r.Typical, true
	default:
		return nil, false
	}
}

// Planner computes recommendations against fixed reference data. It holds no per-student
// state and may be shared between goroutines.
type Planner struct {
	ref Reference
	lgr zerolog.Logger
}

// NewPlanner creates a planner. Missing catalogs are treated as empty.
func NewPlanner(ref Reference, lgr zerolog.Logger) *Planner {
	if ref.Courses == nil {
		ref.Courses = CourseMap{}
	}
	if ref.Groups == nil {
		ref.Groups = GroupMap{}
	}
	if ref.Prereqs == nil {
		ref.Prereqs = PrereqMap{}
	}
	return &Planner{ref: ref, lgr: lgr}
}

// Reference returns the planner's reference data.
func (p *Planner) Reference() Reference { return p.ref }

// Compute builds the critical, recommended and typical plans for the union of the given
// requirements and runs every planning pass on them.
func (p *Planner) Compute(requirements []MajorMathRequirement, student *StudentRecord) *Recommendations {
	lgr := p.lgr
	if student != nil && student.StudentID != "" {
		lgr = lgr.With().Str("student", student.StudentID).Logger()
	}

	rec := &Recommendations{
		Critical:    NewCourseSequence(p.ref, student, lgr.With().Str("variant", VariantCritical).Logger()),
		Recommended: NewCourseSequence(p.ref, student, lgr.With().Str("variant", VariantRecommended).Logger()),
		Typical:     NewCourseSequence(p.ref, student, lgr.With().Str("variant", VariantTypical).Logger()),
	}

	for _, req := range requirements {
		addAll(rec.Critical, Semester1, req.Sem1Critical)
		addAll(rec.Critical, Semester2, req.Sem2Critical)
		addAll(rec.Critical, Additional, req.Sem1Recommended, req.Sem2Recommended,
			req.Sem1Typical, req.Sem2Typical, req.Additional)

		addAll(rec.Recommended, Semester1, req.Sem1Critical, req.Sem1Recommended)
		addAll(rec.Recommended, Semester2, req.Sem2Critical, req.Sem2Recommended)
		addAll(rec.Recommended, Additional, req.Sem1Typical, req.Sem2Typical, req.Additional)

		addAll(rec.Typical, Semester1, req.Sem1Critical, req.Sem1Recommended, req.Sem1Typical)
		addAll(rec.Typical, Semester2, req.Sem2Critical, req.Sem2Recommended, req.Sem2Typical)
		addAll(rec.Typical, Additional, req.Additional)
	}

	for _, seq := range []*CourseSequence{rec.Critical, rec.Recommended, rec.Typical} {
		seq.Run()
	}

	p.escalate(rec, student, lgr)
	return rec
}

func addAll(seq *CourseSequence, b Bucket, lists ...[]string) {
	for _, list := range lists {
		for _, code := range list {
			seq.AddGroup(b, code)
		}
	}
}

// escalate pulls core requirements forward for students who will reach the transfer credit
// ceiling before completing the core requirement.
func (p *Planner) escalate(rec *Recommendations, student *StudentRecord, lgr zerolog.Logger) {
	completed := student.CoreCreditsCompleted(p.ref)
	remaining := int(math.Ceil(p.ref.Core.RequiredCredits - completed))
	if remaining <= 0 {
		return
	}

	transfer := student.TransferCreditTotal()
	switch {
	case transfer >= p.ref.Core.Semester1TransferCredits:
		lgr.Debug().Float64("transferCredits", transfer).Int("coreRemaining", remaining).Msg("Core credits escalated to semester 1")
		rec.Critical.EnsureCoreSemester1(remaining)
		rec.Recommended.EnsureCoreSemester1(remaining)
		rec.Typical.EnsureCoreSemester1(remaining)
	case transfer >= p.ref.Core.Semester12TransferCredits:
		lgr.Debug().Float64("transferCredits", transfer).Int("coreRemaining", remaining).Msg("Core credits escalated to semesters 1 and 2")
		rec.Critical.EnsureCoreSemesters12(remaining)
		rec.Recommended.EnsureCoreSemesters12(remaining)
		rec.Typical.EnsureCoreSemesters12(remaining)
	}
}
