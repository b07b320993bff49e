package mathplan

import "strings"

// EnsureCoreSemester1 pulls core groups, then core courses, forward from semester 2 and the
// additional bucket until semester 1 holds n core credits or nothing is left to pull.
func (s *CourseSequence) EnsureCoreSemester1(n int) {
	short := n - s.coreCredits(Semester1)
	if short <= 0 {
		return
	}
	short = s.pullCoreGroups(Semester2, Semester1, short)
	short = s.pullCoreGroups(Additional, Semester1, short)
	short = s.pullCoreCourses(Semester2, Semester1, short)
	s.pullCoreCourses(Additional, Semester1, short)
}

// EnsureCoreSemesters12 pulls core groups, then core courses, from the additional bucket into
// semester 2 until semesters 1 and 2 together hold n core credits.
func (s *CourseSequence) EnsureCoreSemesters12(n int) {
	short := n - s.coreCredits(Semester1) - s.coreCredits(Semester2)
	if short <= 0 {
		return
	}
	short = s.pullCoreGroups(Additional, Semester2, short)
	s.pullCoreCourses(Additional, Semester2, short)
}

func (s *CourseSequence) isCoreGroup(code string) bool {
	prefix := s.ref.Core.GroupPrefix
	return prefix != "" && strings.HasPrefix(code, prefix)
}

func (s *CourseSequence) coreGroup() (CourseGroup, bool) {
	g, ok := s.ref.Groups.Group(s.ref.Core.GroupCode)
	if !ok {
		s.lgr.Warn().Str("group", s.ref.Core.GroupCode).Msg("Core course group missing from the catalog")
	}
	return g, ok
}

// coreCredits counts the core credits a bucket already asks for.
func (s *CourseSequence) coreCredits(b Bucket) int {
	bk := s.bucket(b)
	total := 0
	if core, ok := s.coreGroup(); ok {
		for id, ci := range bk.courses {
			if core.Contains(id) {
				total += ci.Course.Credits
			}
		}
	}
	for code, g := range bk.groups {
		if s.isCoreGroup(code) {
			total += g.remaining
		}
	}
	return total
}

func (s *CourseSequence) pullCoreGroups(from, to Bucket, short int) int {
	src, dst := s.bucket(from), s.bucket(to)
	for _, g := range src.sortedGroups() {
		if short <= 0 {
			break
		}
		if !s.isCoreGroup(g.Code()) {
			continue
		}
		delete(src.groups, g.Code())
		dst.groups[g.Code()] = g
		if remaining, ok := g.RemainingCredits(); ok {
			short -= remaining
		}
	}
	return short
}

func (s *CourseSequence) pullCoreCourses(from, to Bucket, short int) int {
	if short <= 0 {
		return short
	}
	core, ok := s.coreGroup()
	if !ok {
		return short
	}
	src, dst := s.bucket(from), s.bucket(to)
	for _, id := range src.courseIDs() {
		if short <= 0 {
			break
		}
		if !core.Contains(id) {
			continue
		}
		ci := src.courses[id]
		delete(src.courses, id)
		dst.courses[id] = ci
		short -= ci.Course.Credits
	}
	return short
}
