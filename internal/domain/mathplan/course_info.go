package mathplan

// CourseInfo is one occurrence of a course in a plan.
type CourseInfo struct {
	Course              Course
	AddedAsPrerequisite bool
	RequiredGrade       *float64
	Status              CourseStatus
}

func newCourseInfo(c Course, asPrereq bool) *CourseInfo {
	return &CourseInfo{Course: c, AddedAsPrerequisite: asPrereq}
}

// ID returns the course id.
func (ci *CourseInfo) ID() string { return ci.Course.ID }

// EarnedGrade returns the best grade on record, if any.
func (ci *CourseInfo) EarnedGrade() (float64, bool) { return ci.Status.Grade() }

// CourseInfoGroup tracks one course group within a plan. Satisfaction only ever moves
// from false to true, and a satisfied credit group has no remaining credits.
type CourseInfoGroup struct {
	group     CourseGroup
	remaining int
	satisfied bool
	courses   []*CourseInfo
	credited  map[string]bool
}

func newCourseInfoGroup(g CourseGroup, members []*CourseInfo) *CourseInfoGroup {
	return &CourseInfoGroup{
		group:     g,
		remaining: g.credits,
		courses:   members,
		credited:  make(map[string]bool),
	}
}

// Group returns the underlying group definition.
func (g *CourseInfoGroup) Group() CourseGroup { return g.group }

// Code returns the group code, which is also the group's identity within a plan.
func (g *CourseInfoGroup) Code() string { return g.group.code }

// RemainingCredits returns the credits still needed; ok is false for pick-one groups.
func (g *CourseInfoGroup) RemainingCredits() (int, bool) {
	return g.remaining, g.group.countsCredits
}

// Outstanding returns the requirement still open, as a group.
func (g *CourseInfoGroup) Outstanding() CourseGroup {
	return g.group.WithRequiredCredits(g.remaining)
}

// Satisfied reports whether the group no longer needs any work.
func (g *CourseInfoGroup) Satisfied() bool { return g.satisfied }

// Courses returns the member courses found in the catalog, in group order.
func (g *CourseInfoGroup) Courses() []*CourseInfo { return g.courses }

func (g *CourseInfoGroup) markSatisfied() {
	g.satisfied = true
	if g.group.countsCredits {
		g.remaining = 0
	}
}

// credit applies a course's credits toward a credit group once.
func (g *CourseInfoGroup) credit(courseID string, credits int) {
	if !g.group.countsCredits || g.credited[courseID] {
		return
	}
	g.credited[courseID] = true
	if g.remaining <= credits {
		g.markSatisfied()
		return
	}
	g.remaining -= credits
}
