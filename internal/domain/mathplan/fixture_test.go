package mathplan

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func testCourses() []Course {
	return []Course{
		{ID: "M 101", Credits: 3},
		{ID: "S 100", Credits: 3},
		{ID: "F 200", Credits: 3},
		{ID: "M 117", Credits: 1},
		{ID: "M 118", Credits: 1},
		{ID: "M 120", Credits: 3},
		{ID: "M 124", Credits: 1},
		{ID: "M 125", Credits: 1},
		{ID: "M 126", Credits: 1},
		{ID: "M 127", Credits: 4},
		{ID: "M 141", Credits: 3},
		{ID: "M 155", Credits: 4},
		{ID: "M 160", Credits: 4},
		{ID: "M 161", Credits: 4},
		{ID: "M 229", Credits: 2},
		{ID: "M 255", Credits: 4},
		{ID: "M 261", Credits: 4},
		{ID: "M 330", Credits: 3},
		{ID: "M 340", Credits: 4},
		{ID: "M 345", Credits: 4},
	}
}

func testReference() Reference {
	courses := testCourses()

	groups := []CourseGroup{
		PickCredits("AUCC3", 3, "M 101",
			"M 101", "S 100", "M 117", "M 118", "M 124", "M 125", "M 126", "M 141", "M 155", "M 160", "M 161"),
		PickOne("CALC", "M 141", "M 141", "M 155", "M 160"),
		PickOne("CALC1BIO", "M 155", "M 155", "M 160"),
		PickCredits("AGED3A", 3, "M 124", "M 117", "M 118", "M 124"),
	}
	groups = append(groups, SingleCourseGroups(courses...)...)

	prereqs := NewPrereqMap(
		NewRequiredPrereq("M 118", true, "M 117", "M 120"),
		NewRequiredPrereq("M 124", true, "M 118", "M 120"),
		NewRequiredPrereq("M 125", true, "M 118", "M 120"),
		NewRequiredPrereq("M 126", true, "M 125"),
		NewRequiredPrereq("M 141", false, "M 118", "M 120"),
		NewRequiredPrereq("M 155", false, "M 120", "M 124", "M 127"),
		NewRequiredPrereq("M 155", false, "M 125", "M 127"),
		NewRequiredPrereq("M 160", false, "M 124", "M 120", "M 127"),
		NewRequiredPrereq("M 160", false, "M 126", "M 127"),
		NewRequiredPrereq("M 161", false, "M 160"),
		NewRequiredPrereq("M 229", false, "M 141", "M 155", "M 160"),
		NewRequiredPrereq("M 255", true, "M 126"),
		NewRequiredPrereq("M 255", false, "M 155"),
		NewRequiredPrereq("M 261", false, "M 161"),
	)

	return Reference{
		Courses:    NewCourseMap(courses...),
		Groups:     NewGroupMap(groups...),
		Prereqs:    prereqs,
		Exclusions: DefaultExclusions(),
		Clearances: DefaultClearances(),
		Core:       DefaultCorePolicy(),
	}
}

func newTestSequence(t *testing.T, student *StudentRecord) *CourseSequence {
	t.Helper()
	return NewCourseSequence(testReference(), student, zerolog.Nop())
}

func grade(g float64) *float64 { return &g }

// snapshot renders every bucket of a sequence in a stable text form.
func snapshot(s *CourseSequence) string {
	var b strings.Builder
	for _, bk := range Buckets {
		fmt.Fprintf(&b, "[%s]\n", bk)
		for _, ci := range s.Courses(bk) {
			fmt.Fprintf(&b, "  course %s status=%s prereq=%t\n", ci.ID(), ci.Status.Name(), ci.AddedAsPrerequisite)
		}
		for _, g := range s.Groups(bk) {
			remaining, _ := g.RemainingCredits()
			fmt.Fprintf(&b, "  group %s remaining=%d satisfied=%t\n", g.Code(), remaining, g.Satisfied())
		}
	}
	return b.String()
}

func courseIDs(s *CourseSequence, b Bucket) []string {
	var ids []string
	for _, ci := range s.Courses(b) {
		ids = append(ids, ci.ID())
	}
	return ids
}

func assertCourses(t *testing.T, s *CourseSequence, b Bucket, want ...string) {
	t.Helper()
	got := courseIDs(s, b)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("%s courses = %v, want %v", b, got, want)
	}
}

func assertDisjoint(t *testing.T, s *CourseSequence) {
	t.Helper()
	seen := make(map[string]Bucket)
	for _, b := range Buckets {
		for _, id := range courseIDs(s, b) {
			if prev, ok := seen[id]; ok {
				t.Errorf("course %s in both %s and %s", id, prev, b)
			}
			seen[id] = b
		}
	}
}
