package mathplan

// EliminateDuplicates removes from each bucket the courses and groups already present in an
// earlier bucket.
func (s *CourseSequence) EliminateDuplicates() {
	for later := Additional; later > PreArrival; later-- {
		lb := s.bucket(later)
		for earlier := PreArrival; earlier < later; earlier++ {
			eb := s.bucket(earlier)
			for id := range eb.courses {
				delete(lb.courses, id)
			}
			for code := range eb.groups {
				delete(lb.groups, code)
			}
		}
	}
}

// ConvertOneCourseGroups replaces every group listing a single course with that course.
func (s *CourseSequence) ConvertOneCourseGroups() {
	for _, b := range Buckets {
		bk := s.bucket(b)
		for _, g := range bk.sortedGroups() {
			if g.group.Len() != 1 {
				continue
			}
			delete(bk.groups, g.Code())

			id := g.group.courseIDs[0]
			if _, exists := bk.courses[id]; exists {
				continue
			}
			c, ok := s.ref.Courses.Course(id)
			if !ok {
				s.lgr.Warn().Str("group", g.Code()).Str("course", id).Msg("Single-course group names a course missing from the catalog")
				continue
			}
			bk.courses[id] = newCourseInfo(c, false)
		}
	}
}

// CleanNeedlessGroups drops groups already satisfied by the courses of their bucket and
// earlier buckets, or guaranteed by another group still in the plan at that point.
func (s *CourseSequence) CleanNeedlessGroups() {
	inPlan := make(map[string]bool)
	var kept []CourseGroup

	for _, b := range Buckets {
		bk := s.bucket(b)
		for id := range bk.courses {
			inPlan[id] = true
		}

		candidates := bk.sortedGroups()
		removed := make(map[string]bool, len(candidates))
		for _, g := range candidates {
			others := make([]CourseGroup, 0, len(kept)+len(candidates))
			others = append(others, kept...)
			for _, c := range candidates {
				if !removed[c.Code()] {
					others = append(others, c.group)
				}
			}

			if g.group.IsSatisfiedBy(inPlan, s.ref.Courses) || g.group.IsSatisfiedByGroup(others, s.ref.Courses) {
				removed[g.Code()] = true
				delete(bk.groups, g.Code())
			}
		}

		for _, g := range candidates {
			if !removed[g.Code()] {
				kept = append(kept, g.group)
			}
		}
	}
}

// MergeExclusiveCourses keeps one course of each exclusion set named more than once in the
// plan. The highest-ranked named course is kept, at the earliest bucket where any member
// course or a group containing one appeared; the other occurrences are removed.
func (s *CourseSequence) MergeExclusiveCourses() {
	for _, set := range s.ref.Exclusions {
		present := s.namedCourses(set.Courses)
		if len(present) < 2 {
			continue
		}

		keep := present[0]
		earliest := Additional
		found := false

		for _, b := range Buckets {
			bk := s.bucket(b)
			for _, id := range present {
				if _, ok := bk.courses[id]; ok {
					delete(bk.courses, id)
					if !found || b < earliest {
						earliest, found = b, true
					}
				}
			}
			for code, g := range bk.groups {
				if !containsAny(g.group, present) {
					continue
				}
				delete(bk.groups, code)
				if !found || b < earliest {
					earliest, found = b, true
				}
			}
		}

		// Named only as the lowest course of groups that do not list it: nothing to merge
		if !found {
			continue
		}
		s.merged[set.ID] = true

		c, ok := s.ref.Courses.Course(keep)
		if !ok {
			s.lgr.Warn().Str("course", keep).Str("exclusion", set.ID).Msg("Exclusion set names a course missing from the catalog")
			continue
		}
		s.bucket(earliest).courses[keep] = newCourseInfo(c, false)
		s.lgr.Debug().Str("exclusion", set.ID).Str("kept", keep).Str("bucket", earliest.String()).Msg("Merged mutually exclusive courses")
	}
}

// namedCourses returns, in ranked order, the courses of ranked that the plan names either
// directly or as the lowest last course of a group.
func (s *CourseSequence) namedCourses(ranked []string) []string {
	named := make(map[string]bool)
	for _, bk := range s.buckets {
		for id := range bk.courses {
			named[id] = true
		}
		for _, g := range bk.groups {
			named[g.group.lowestLast] = true
		}
	}

	var out []string
	for _, id := range ranked {
		if named[id] && !containsString(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func containsAny(g CourseGroup, ids []string) bool {
	for _, id := range ids {
		if g.Contains(id) {
			return true
		}
	}
	return false
}

// MarkStatus applies the student record to every course and group in the plan. A course is
// only tested while it has no status.
func (s *CourseSequence) MarkStatus() {
	for _, bk := range s.buckets {
		for _, ci := range bk.courses {
			s.markCourse(ci)
		}
	}
	for _, bk := range s.buckets {
		for _, g := range bk.groups {
			s.markGroup(g)
		}
	}
}

func (s *CourseSequence) markCourse(ci *CourseInfo) {
	if !ci.Status.IsNone() {
		return
	}
	ci.Status = s.student.resolveStatus(ci, s.ref.Clearances)
}

func (s *CourseSequence) markGroup(g *CourseInfoGroup) {
	for _, ci := range g.courses {
		s.markCourse(ci)
	}

	if !g.group.countsCredits {
		for _, ci := range g.courses {
			if ci.Status.Sufficient() {
				g.markSatisfied()
				return
			}
		}
		return
	}

	// Placement never reduces the credits a named course list requires.
	for _, ci := range g.courses {
		if ci.Status.earnsCredit() {
			g.credit(ci.ID(), ci.Course.Credits)
		}
	}
}

// SimplifyGroups credits each credit group with the member courses that appear in its
// bucket or an earlier one.
func (s *CourseSequence) SimplifyGroups() {
	for _, b := range []Bucket{Semester1, Semester2, Additional} {
		for _, g := range s.bucket(b).sortedGroups() {
			if !g.group.countsCredits || g.satisfied {
				continue
			}
			for _, id := range g.group.courseIDs {
				if s.presentThrough(b, id) {
					g.credit(id, s.credits(id))
				}
			}
		}
	}
}

// ResolveGroups pulls member courses from later buckets into the bucket of the group they
// can satisfy, removing the groups this satisfies. A course whose prerequisites are not met
// in the group's bucket stays where it is.
func (s *CourseSequence) ResolveGroups() {
	sem1 := s.bucket(Semester1)
	for _, g := range sem1.sortedGroups() {
		if s.resolveGroup(g, Semester1, Semester2) || s.resolveGroup(g, Semester1, Additional) {
			delete(sem1.groups, g.Code())
		}
	}

	sem2 := s.bucket(Semester2)
	for _, g := range sem2.sortedGroups() {
		if s.resolveGroup(g, Semester2, Additional) {
			delete(sem2.groups, g.Code())
		}
	}
}

func (s *CourseSequence) resolveGroup(g *CourseInfoGroup, target, source Bucket) bool {
	tb, sb := s.bucket(target), s.bucket(source)
	for _, id := range g.group.courseIDs {
		ci, ok := sb.courses[id]
		if !ok || !s.coursePrereqsMet(id, target) {
			continue
		}
		delete(sb.courses, id)
		tb.courses[id] = ci

		if !g.group.countsCredits {
			return true
		}
		g.credit(id, ci.Course.Credits)
		if g.satisfied {
			return true
		}
	}
	return false
}
