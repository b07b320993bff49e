package mathplan

import "strings"

// CompletedCourse is a course taken here. A nil grade means a non-passing grade.
type CompletedCourse struct {
	CourseID string   `json:"courseId" yaml:"course_id" validate:"required"`
	Grade    *float64 `json:"grade,omitempty" yaml:"grade" validate:"omitempty,min=0,max=4"`
}

// TransferCredit is credit brought from another institution. CourseID is the local
// equivalent; TransferredID is the identifier of the original course.
type TransferCredit struct {
	CourseID      string   `json:"courseId" yaml:"course_id" validate:"required"`
	TransferredID string   `json:"transferredId,omitempty" yaml:"transferred_id"`
	Credits       float64  `json:"credits" yaml:"credits" validate:"min=0"`
	Grade         *float64 `json:"grade,omitempty" yaml:"grade" validate:"omitempty,min=0,max=4"`
}

// PlacementResult is a placement or challenge exam outcome for a course.
type PlacementResult struct {
	CourseID  string `json:"courseId" yaml:"course_id" validate:"required"`
	Challenge bool   `json:"challenge" yaml:"challenge"`
}

// StudentRecord is the prior work a plan is measured against.
type StudentRecord struct {
	StudentID  string            `json:"studentId" yaml:"student_id"`
	Completed  []CompletedCourse `json:"completed" yaml:"completed" validate:"dive"`
	Transfers  []TransferCredit  `json:"transfers" yaml:"transfers" validate:"dive"`
	Placements []PlacementResult `json:"placements" yaml:"placements" validate:"dive"`
}

func (s *StudentRecord) placement(courseID string) (CourseStatus, bool) {
	for _, p := range s.Placements {
		if p.CourseID != courseID {
			continue
		}
		if p.Challenge {
			return SatisfiedBy(SourceChallengeExam, nil), true
		}
		return SatisfiedBy(SourcePlacement, nil), true
	}
	return Unsatisfied(), false
}

func gradedStatus(source StatusSource, grade float64, required *float64) CourseStatus {
	if required == nil || grade >= *required {
		g := grade
		return SatisfiedBy(source, &g)
	}
	return Deficient(source, grade)
}

// resolveStatus finds the status of a course named in a plan. Placement wins outright;
// otherwise the best grade across completed and transferred work decides, with cleared
// courses placed out when no passing record exists.
func (s *StudentRecord) resolveStatus(info *CourseInfo, clearances []Clearance) CourseStatus {
	if s == nil {
		return Unsatisfied()
	}
	id := info.ID()
	if st, ok := s.placement(id); ok {
		return st
	}

	status := Unsatisfied()
	var best *float64
	for _, c := range s.Completed {
		if c.CourseID != id || c.Grade == nil {
			continue
		}
		if best == nil || *best < *c.Grade {
			best = c.Grade
			status = gradedStatus(SourceCompleted, *c.Grade, info.RequiredGrade)
		}
	}
	for _, t := range s.Transfers {
		if t.CourseID != id || t.Grade == nil {
			continue
		}
		if best == nil || *best < *t.Grade {
			best = t.Grade
			status = gradedStatus(SourceTransfer, *t.Grade, info.RequiredGrade)
		}
	}

	if !status.Sufficient() && s.clearedByTransfer(id, clearances) {
		return SatisfiedBy(SourcePlacement, nil)
	}
	return status
}

func (s *StudentRecord) clearedByTransfer(courseID string, clearances []Clearance) bool {
	for _, cl := range clearances {
		if !containsString(cl.Courses, courseID) {
			continue
		}
		for _, t := range s.Transfers {
			if containsString(cl.TransferredCourses, t.CourseID) {
				return true
			}
		}
	}
	return false
}

// firstStatus finds the status of an inserted prerequisite from the first matching record of
// each kind, in placement, completed, transfer order.
func (s *StudentRecord) firstStatus(info *CourseInfo) CourseStatus {
	if s == nil {
		return Unsatisfied()
	}
	id := info.ID()
	if st, ok := s.placement(id); ok {
		return st
	}
	for _, c := range s.Completed {
		if c.CourseID == id && c.Grade != nil {
			return gradedStatus(SourceCompleted, *c.Grade, info.RequiredGrade)
		}
	}
	for _, t := range s.Transfers {
		if t.CourseID == id && t.Grade != nil {
			return gradedStatus(SourceTransfer, *t.Grade, info.RequiredGrade)
		}
	}
	return Unsatisfied()
}

// TransferCreditTotal sums all transfer credits on record.
func (s *StudentRecord) TransferCreditTotal() float64 {
	if s == nil {
		return 0
	}
	total := 0.0
	for _, t := range s.Transfers {
		total += t.Credits
	}
	return total
}

// CoreCreditsCompleted sums credits that count toward the core requirement: passing work in
// courses of the core group, each course once, plus transfer credit whose original course
// id carries one of the policy's core suffixes.
func (s *StudentRecord) CoreCreditsCompleted(ref Reference) float64 {
	if s == nil {
		return 0
	}

	total := 0.0
	counted := make(map[string]bool)

	if core, ok := ref.Groups.Group(ref.Core.GroupCode); ok {
		for _, c := range s.Completed {
			if counted[c.CourseID] || c.Grade == nil || *c.Grade <= ref.Core.MinimumGrade || !core.Contains(c.CourseID) {
				continue
			}
			if course, ok := ref.Courses.Course(c.CourseID); ok {
				counted[c.CourseID] = true
				total += float64(course.Credits)
			}
		}
		for _, t := range s.Transfers {
			if counted[t.CourseID] || t.Grade == nil || *t.Grade <= ref.Core.MinimumGrade || !core.Contains(t.CourseID) {
				continue
			}
			counted[t.CourseID] = true
			total += t.Credits
		}
	}

	for _, t := range s.Transfers {
		for _, suffix := range ref.Core.TransferSuffixes {
			if suffix != "" && strings.HasSuffix(t.TransferredID, suffix) {
				total += t.Credits
				break
			}
		}
	}
	return total
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
