package mathplan

import (
	"sort"

	"github.com/rs/zerolog"
)

// Bucket is a term partition of a plan.
type Bucket int

const (
	PreArrival Bucket = iota
	Semester1
	Semester2
	Additional
)

// Buckets lists every bucket in term order.
var Buckets = []Bucket{PreArrival, Semester1, Semester2, Additional}

func (b Bucket) String() string {
	switch b {
	case PreArrival:
		return "pre-arrival"
	case Semester1:
		return "semester1"
	case Semester2:
		return "semester2"
	case Additional:
		return "additional"
	default:
		return "unknown"
	}
}

type bucket struct {
	courses map[string]*CourseInfo
	groups  map[string]*CourseInfoGroup
}

func newBucket() *bucket {
	return &bucket{
		courses: make(map[string]*CourseInfo),
		groups:  make(map[string]*CourseInfoGroup),
	}
}

func (b *bucket) courseIDs() []string {
	ids := make([]string, 0, len(b.courses))
	for id := range b.courses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (b *bucket) sortedGroups() []*CourseInfoGroup {
	out := make([]*CourseInfoGroup, 0, len(b.groups))
	for _, g := range b.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].group.Compare(out[j].group) < 0
	})
	return out
}

// CourseSequence is one plan variant: four term buckets of courses and groups, rewritten in
// place by the planning passes. A sequence is owned by a single computation.
type CourseSequence struct {
	buckets [4]*bucket
	ref     Reference
	student *StudentRecord
	lgr     zerolog.Logger
	merged  map[string]bool
}

// NewCourseSequence creates an empty sequence over the given reference data and record.
func NewCourseSequence(ref Reference, student *StudentRecord, lgr zerolog.Logger) *CourseSequence {
	s := &CourseSequence{
		ref:     ref,
		student: student,
		lgr:     lgr,
		merged:  make(map[string]bool),
	}
	for i := range s.buckets {
		s.buckets[i] = newBucket()
	}
	return s
}

func (s *CourseSequence) bucket(b Bucket) *bucket { return s.buckets[b] }

// AddGroup places the catalog group with the given code into a bucket. Unknown codes are
// logged and skipped.
func (s *CourseSequence) AddGroup(b Bucket, code string) {
	g, ok := s.ref.Groups.Group(code)
	if !ok {
		s.lgr.Warn().Str("group", code).Str("bucket", b.String()).Msg("No course group with this code")
		return
	}
	if _, exists := s.bucket(b).groups[code]; exists {
		return
	}
	s.bucket(b).groups[code] = s.newGroupInfo(g)
}

func (s *CourseSequence) newGroupInfo(g CourseGroup) *CourseInfoGroup {
	members := make([]*CourseInfo, 0, g.Len())
	for _, id := range g.courseIDs {
		c, ok := s.ref.Courses.Course(id)
		if !ok {
			s.lgr.Warn().Str("group", g.code).Str("course", id).Msg("Course group lists a course missing from the catalog")
			continue
		}
		members = append(members, newCourseInfo(c, false))
	}
	return newCourseInfoGroup(g, members)
}

// AddCourse places a course into a bucket, replacing any entry for it there.
func (s *CourseSequence) AddCourse(b Bucket, courseID string) {
	c, ok := s.ref.Courses.Course(courseID)
	if !ok {
		s.lgr.Warn().Str("course", courseID).Str("bucket", b.String()).Msg("No course with this id")
		return
	}
	s.bucket(b).courses[courseID] = newCourseInfo(c, false)
}

// Courses returns the courses in a bucket, ordered by id.
func (s *CourseSequence) Courses(b Bucket) []*CourseInfo {
	bk := s.bucket(b)
	out := make([]*CourseInfo, 0, len(bk.courses))
	for _, id := range bk.courseIDs() {
		out = append(out, bk.courses[id])
	}
	return out
}

// Groups returns the groups in a bucket in group order.
func (s *CourseSequence) Groups(b Bucket) []*CourseInfoGroup {
	return s.bucket(b).sortedGroups()
}

// Course returns the entry for a course in a bucket.
func (s *CourseSequence) Course(b Bucket, courseID string) (*CourseInfo, bool) {
	ci, ok := s.bucket(b).courses[courseID]
	return ci, ok
}

// HasCourse reports whether a course is in a bucket.
func (s *CourseSequence) HasCourse(b Bucket, courseID string) bool {
	_, ok := s.bucket(b).courses[courseID]
	return ok
}

// HasAnyCourse reports whether any of the courses is in a bucket.
func (s *CourseSequence) HasAnyCourse(b Bucket, courseIDs ...string) bool {
	for _, id := range courseIDs {
		if s.HasCourse(b, id) {
			return true
		}
	}
	return false
}

// HasGroup reports whether a group is in a bucket.
func (s *CourseSequence) HasGroup(b Bucket, code string) bool {
	_, ok := s.bucket(b).groups[code]
	return ok
}

// HasData reports whether a bucket still asks the student to do anything.
func (s *CourseSequence) HasData(b Bucket) bool {
	bk := s.bucket(b)
	for _, ci := range bk.courses {
		if !ci.Status.Sufficient() {
			return true
		}
	}
	for _, g := range bk.groups {
		if !g.satisfied {
			return true
		}
	}
	return false
}

// PreArrivalPending counts pre-arrival courses with no record at all.
func (s *CourseSequence) PreArrivalPending() int {
	n := 0
	for _, ci := range s.bucket(PreArrival).courses {
		if ci.Status.IsNone() {
			n++
		}
	}
	return n
}

// IsEligibleForSemester1 reports whether the student can register for at least one
// semester 1 course, directly or through a group.
func (s *CourseSequence) IsEligibleForSemester1(canRegister []string) bool {
	if len(canRegister) == 0 {
		return false
	}
	bk := s.bucket(Semester1)
	for id := range bk.courses {
		if containsString(canRegister, id) {
			return true
		}
	}
	for _, g := range bk.groups {
		for _, id := range g.group.courseIDs {
			if containsString(canRegister, id) {
				return true
			}
		}
	}
	return false
}

// Merged reports whether the plan named more than one course of an exclusion set.
func (s *CourseSequence) Merged(exclusionID string) bool { return s.merged[exclusionID] }

// HasMultipleCalc1 reports whether more than one calculus I course was named.
func (s *CourseSequence) HasMultipleCalc1() bool { return s.merged[ExclusionCalc1] }

// HasMultipleCalc2 reports whether more than one calculus II course was named.
func (s *CourseSequence) HasMultipleCalc2() bool { return s.merged[ExclusionCalc2] }

// Run applies the planning passes in their fixed order.
func (s *CourseSequence) Run() {
	s.EliminateDuplicates()
	s.ConvertOneCourseGroups()
	s.CleanNeedlessGroups()
	s.MergeExclusiveCourses()
	s.MarkStatus()
	s.EnsurePrerequisitesMet()
	s.EliminateDuplicates()
	s.SimplifyGroups()
	s.CleanNeedlessGroups()
	s.ResolveGroups()
}

// presentThrough reports whether a course is in bucket last or any earlier bucket.
func (s *CourseSequence) presentThrough(last Bucket, courseID string) bool {
	for b := PreArrival; b <= last; b++ {
		if s.HasCourse(b, courseID) {
			return true
		}
	}
	return false
}

func (s *CourseSequence) credits(courseID string) int {
	c, ok := s.ref.Courses.Course(courseID)
	if !ok {
		return 0
	}
	return c.Credits
}
