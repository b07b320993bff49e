package mathplan

type visitKey struct {
	bucket Bucket
	course string
}

// backfill tracks one bucket's traversal: courses already checked and the chain of courses
// currently being expanded.
type backfill struct {
	checked map[visitKey]bool
	chain   map[string]bool
}

func newBackfill() *backfill {
	return &backfill{
		checked: make(map[visitKey]bool),
		chain:   make(map[string]bool),
	}
}

// EnsurePrerequisitesMet walks the buckets in term order and inserts the first alternative of
// every unmet prerequisite rule into the earliest legal bucket, then checks the inserted course
// the same way. A prerequisite that would close a cycle is logged and not inserted.
func (s *CourseSequence) EnsurePrerequisitesMet() {
	for _, b := range Buckets {
		bf := newBackfill()
		for _, id := range s.bucket(b).courseIDs() {
			s.checkCourse(bf, b, id)
		}
		for _, g := range s.bucket(b).sortedGroups() {
			s.checkGroup(bf, b, g)
		}
	}
}

func (s *CourseSequence) checkCourse(bf *backfill, b Bucket, courseID string) {
	key := visitKey{bucket: b, course: courseID}
	if bf.checked[key] || bf.chain[courseID] {
		return
	}
	bf.chain[courseID] = true
	defer delete(bf.chain, courseID)

	for _, req := range s.ref.Prereqs.Prerequisites(courseID) {
		if s.prereqNeeded(req, b) {
			s.insertPrereq(bf, req, b)
		}
	}
	bf.checked[key] = true
}

func (s *CourseSequence) checkGroup(bf *backfill, b Bucket, g *CourseInfoGroup) {
	if len(g.courses) == 0 {
		return
	}

	if g.group.countsCredits {
		if s.creditsWithPrereqsMet(g, b) > 0 {
			return
		}
	} else if s.anyMemberReady(g, b) {
		return
	}

	first := g.courses[0].ID()
	for _, req := range s.ref.Prereqs.Prerequisites(first) {
		if s.prereqNeeded(req, b) {
			s.insertPrereq(bf, req, b)
		}
	}
}

// insertPrereq adds the first alternative of req for a course in bucket b. Concurrent rules
// insert into b itself; others one bucket earlier, except at the ends of the plan where
// there is no other bucket to use.
func (s *CourseSequence) insertPrereq(bf *backfill, req RequiredPrereq, b Bucket) {
	if len(req.Alternatives) == 0 {
		return
	}
	id := req.Alternatives[0]
	if bf.chain[id] {
		s.lgr.Warn().Str("course", req.CourseID).Str("prerequisite", id).Msg("Cyclic prerequisite rule, not inserting")
		return
	}

	c, ok := s.ref.Courses.Course(id)
	if !ok {
		s.lgr.Warn().Str("course", req.CourseID).Str("prerequisite", id).Msg("Prerequisite course missing from the catalog")
		return
	}

	target := b
	if !req.MayBeConcurrent && (b == Semester1 || b == Semester2) {
		target = b - 1
	}

	info := newCourseInfo(c, true)
	info.RequiredGrade = req.MinimumGrade(0)
	info.Status = s.student.firstStatus(info)
	s.bucket(target).courses[id] = info

	s.checkCourse(bf, target, id)
}

// prereqNeeded reports whether no alternative of req is met by bucket b: alternatives in an
// earlier bucket always count, same-bucket ones only when taking them together is allowed,
// and a pick-one group counts when every choice from it is an alternative.
func (s *CourseSequence) prereqNeeded(req RequiredPrereq, b Bucket) bool {
	together := req.MayBeConcurrent || b == PreArrival || b == Additional

	for _, alt := range req.Alternatives {
		if b > PreArrival && s.presentThrough(b-1, alt) {
			return false
		}
		if together && s.HasCourse(b, alt) {
			return false
		}
	}

	for gb := Semester1; gb <= b; gb++ {
		if gb == b && !together {
			break
		}
		for _, g := range s.bucket(gb).groups {
			if groupImplies(g.group, req) {
				return false
			}
		}
	}
	return true
}

// groupImplies reports whether any course picked from g satisfies req. Every member has to
// be an alternative; a group that also allows other courses guarantees nothing.
func groupImplies(g CourseGroup, req RequiredPrereq) bool {
	if g.countsCredits || len(g.courseIDs) == 0 {
		return false
	}
	for _, id := range g.courseIDs {
		if !req.isAlternative(id) {
			return false
		}
	}
	return true
}

func (s *CourseSequence) coursePrereqsMet(courseID string, b Bucket) bool {
	for _, req := range s.ref.Prereqs.Prerequisites(courseID) {
		if s.prereqNeeded(req, b) {
			return false
		}
	}
	return true
}

func (s *CourseSequence) anyMemberReady(g *CourseInfoGroup, b Bucket) bool {
	for _, ci := range g.courses {
		if s.coursePrereqsMet(ci.ID(), b) {
			return true
		}
	}
	return false
}

// creditsWithPrereqsMet totals the credits of group members that are already planned or
// could be taken in bucket b.
func (s *CourseSequence) creditsWithPrereqsMet(g *CourseInfoGroup, b Bucket) int {
	total := 0
	for _, ci := range g.courses {
		if s.presentThrough(b, ci.ID()) || s.coursePrereqsMet(ci.ID(), b) {
			total += ci.Course.Credits
		}
	}
	return total
}
