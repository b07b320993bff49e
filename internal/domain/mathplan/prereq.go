package mathplan

// RequiredPrereq is one prerequisite rule of a course: any single alternative satisfies it.
type RequiredPrereq struct {
	CourseID        string
	Alternatives    []string
	MinimumGrades   []*float64
	MayBeConcurrent bool
}

// NewRequiredPrereq builds a rule without grade thresholds.
func NewRequiredPrereq(courseID string, mayBeConcurrent bool, alternatives ...string) RequiredPrereq {
	return RequiredPrereq{
		CourseID:        courseID,
		Alternatives:    alternatives,
		MinimumGrades:   make([]*float64, len(alternatives)),
		MayBeConcurrent: mayBeConcurrent,
	}
}

// MinimumGrade returns the grade threshold of the i-th alternative.
func (r RequiredPrereq) MinimumGrade(i int) *float64 {
	if i < 0 || i >= len(r.MinimumGrades) {
		return nil
	}
	return r.MinimumGrades[i]
}

// isAlternative reports whether courseID satisfies the rule.
func (r RequiredPrereq) isAlternative(courseID string) bool {
	for _, id := range r.Alternatives {
		if id == courseID {
			return true
		}
	}
	return false
}
