package mathplan

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestEliminateDuplicates(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddCourse(PreArrival, "M 117")
	s.AddCourse(Semester1, "M 117")
	s.AddCourse(Semester1, "M 101")
	s.AddCourse(Additional, "M 101")
	s.AddGroup(Semester2, "CALC")
	s.AddGroup(Additional, "CALC")

	s.EliminateDuplicates()

	assertCourses(t, s, PreArrival, "M 117")
	assertCourses(t, s, Semester1, "M 101")
	assertCourses(t, s, Additional)
	if !s.HasGroup(Semester2, "CALC") || s.HasGroup(Additional, "CALC") {
		t.Error("CALC should only remain in semester 2")
	}

	before := snapshot(s)
	s.EliminateDuplicates()
	if after := snapshot(s); after != before {
		t.Errorf("second pass changed the plan:\n%s\nvs\n%s", before, after)
	}
}

func TestConvertOneCourseGroups(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddGroup(Semester1, "M 160")
	s.AddGroup(Semester1, "CALC")

	s.ConvertOneCourseGroups()

	assertCourses(t, s, Semester1, "M 160")
	if s.HasGroup(Semester1, "M 160") {
		t.Error("single-course group still present")
	}
	if !s.HasGroup(Semester1, "CALC") {
		t.Error("multi-course group removed")
	}
}

func TestCleanNeedlessGroups(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddCourse(PreArrival, "M 155")
	s.AddGroup(Semester1, "CALC1BIO")
	s.AddGroup(Semester2, "AUCC3")
	s.AddGroup(Semester2, "AGED3A")
	s.AddGroup(Additional, "CALC")

	s.CleanNeedlessGroups()

	if s.HasGroup(Semester1, "CALC1BIO") {
		t.Error("CALC1BIO is satisfied by M 155 in pre-arrival")
	}
	if !s.HasGroup(Semester2, "AGED3A") {
		t.Error("AGED3A has no satisfying course or group")
	}
	if s.HasGroup(Semester2, "AUCC3") {
		t.Error("AUCC3 is satisfied by the 4 credits of M 155")
	}
	if s.HasGroup(Additional, "CALC") {
		t.Error("CALC is satisfied by M 155 in pre-arrival")
	}
}

func TestCleanNeedlessGroups_KeepsOneOfMutuallySatisfyingGroups(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddGroup(Semester1, "CALC")
	s.AddGroup(Semester1, "CALC1BIO")

	s.CleanNeedlessGroups()

	if s.HasGroup(Semester1, "CALC") {
		t.Error("CALC is guaranteed by CALC1BIO")
	}
	if !s.HasGroup(Semester1, "CALC1BIO") {
		t.Error("CALC1BIO must be kept")
	}
}

func TestMergeExclusiveCourses(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddCourse(Semester1, "M 141")
	s.AddCourse(Semester2, "M 160")
	s.AddGroup(Additional, "CALC1BIO")

	s.MergeExclusiveCourses()

	assertCourses(t, s, Semester1, "M 160")
	assertCourses(t, s, Semester2)
	if s.HasGroup(Additional, "CALC1BIO") {
		t.Error("group naming an exclusive course should be removed")
	}
	if !s.HasMultipleCalc1() || s.HasMultipleCalc2() {
		t.Errorf("calc1=%v calc2=%v, want true false", s.HasMultipleCalc1(), s.HasMultipleCalc2())
	}
}

func TestMergeExclusiveCourses_SingleCourseLeftAlone(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddCourse(Semester2, "M 141")
	s.AddGroup(Semester2, "AUCC3")

	s.MergeExclusiveCourses()

	assertCourses(t, s, Semester2, "M 141")
	if !s.HasGroup(Semester2, "AUCC3") {
		t.Error("AUCC3 removed though nothing merged")
	}
	if s.HasMultipleCalc1() {
		t.Error("calc1 flagged for one course")
	}
}

func TestMarkStatus_CreditGroupSatisfied(t *testing.T) {
	student := &StudentRecord{Completed: []CompletedCourse{{CourseID: "M 155", Grade: grade(3)}}}
	s := newTestSequence(t, student)
	s.AddGroup(Semester1, "AUCC3")

	s.Run()

	groups := s.Groups(Semester1)
	if len(groups) != 1 {
		t.Fatalf("semester 1 groups = %d, want 1", len(groups))
	}
	remaining, ok := groups[0].RemainingCredits()
	if !ok || remaining != 0 || !groups[0].Satisfied() {
		t.Errorf("remaining=%d ok=%v satisfied=%v, want 0 true true", remaining, ok, groups[0].Satisfied())
	}
	if s.HasData(Semester1) {
		t.Error("semester 1 still has work")
	}
}

func TestMarkStatus_PlacementDoesNotEarnCredit(t *testing.T) {
	student := &StudentRecord{Placements: []PlacementResult{{CourseID: "M 117"}, {CourseID: "M 118"}}}
	s := newTestSequence(t, student)
	s.AddGroup(Additional, "AGED3A")

	s.MarkStatus()

	g := s.Groups(Additional)[0]
	if remaining, _ := g.RemainingCredits(); remaining != 3 || g.Satisfied() {
		t.Errorf("remaining=%d satisfied=%v, want 3 false", remaining, g.Satisfied())
	}
	for _, ci := range g.Courses()[:2] {
		if ci.Status.Name() != "PLACED_OUT" {
			t.Errorf("%s status = %s", ci.ID(), ci.Status.Name())
		}
	}
}

func TestMarkStatus_PickOneSatisfiedByPlacement(t *testing.T) {
	student := &StudentRecord{Placements: []PlacementResult{{CourseID: "M 155", Challenge: true}}}
	s := newTestSequence(t, student)
	s.AddGroup(Semester2, "CALC")

	s.MarkStatus()

	if g := s.Groups(Semester2)[0]; !g.Satisfied() {
		t.Error("pick-one group should be satisfied by a challenge exam")
	}
}

func TestMarkStatus_KeepsExistingStatus(t *testing.T) {
	s := newTestSequence(t, &StudentRecord{Completed: []CompletedCourse{{CourseID: "M 101", Grade: grade(4)}}})
	s.AddCourse(Semester1, "M 101")
	ci, _ := s.Course(Semester1, "M 101")
	ci.Status = SatisfiedBy(SourcePlacement, nil)

	s.MarkStatus()

	if ci.Status.Name() != "PLACED_OUT" {
		t.Errorf("status overwritten with %s", ci.Status.Name())
	}
}

func TestSimplifyGroups(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddCourse(PreArrival, "M 117")
	s.AddCourse(Semester1, "M 118")
	s.AddCourse(Additional, "M 124")
	s.AddGroup(Semester2, "AGED3A")

	s.SimplifyGroups()
	s.SimplifyGroups()

	g := s.Groups(Semester2)[0]
	if remaining, _ := g.RemainingCredits(); remaining != 1 || g.Satisfied() {
		t.Errorf("remaining=%d satisfied=%v, want 1 false", remaining, g.Satisfied())
	}
}

func TestResolveGroups(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddCourse(PreArrival, "M 120")
	s.AddCourse(PreArrival, "M 127")
	s.AddGroup(Semester1, "CALC")
	s.AddCourse(Additional, "M 155")
	s.AddGroup(Semester2, "AGED3A")
	s.AddCourse(Additional, "M 124")

	s.ResolveGroups()

	assertCourses(t, s, Semester1, "M 155")
	if s.HasGroup(Semester1, "CALC") {
		t.Error("CALC resolved by M 155 should be removed")
	}
	assertCourses(t, s, Semester2, "M 124")
	g := s.Groups(Semester2)
	if len(g) != 1 {
		t.Fatalf("AGED3A should stay with 2 credits left, got %d groups", len(g))
	}
	if remaining, _ := g[0].RemainingCredits(); remaining != 2 {
		t.Errorf("remaining = %d, want 2", remaining)
	}
	assertCourses(t, s, Additional)
}

func TestResolveGroups_PrerequisitesNotMet(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddGroup(Semester1, "CALC")
	s.AddCourse(Additional, "M 155")

	s.ResolveGroups()

	assertCourses(t, s, Semester1)
	assertCourses(t, s, Additional, "M 155")
	if !s.HasGroup(Semester1, "CALC") {
		t.Error("CALC should stay until a member can be taken in semester 1")
	}
}

func TestMergeExclusiveCourses_NamedOnlyByUnlistedLowest(t *testing.T) {
	ref := testReference()
	ref.Groups = NewGroupMap(
		PickOne("LOW1", "M 160", "M 101", "S 100"),
		PickOne("LOW2", "M 155", "M 120", "M 127"),
	)
	s := NewCourseSequence(ref, nil, zerolog.Nop())
	s.AddGroup(Semester2, "LOW1")
	s.AddGroup(Semester2, "LOW2")

	s.MergeExclusiveCourses()

	for _, b := range Buckets {
		assertCourses(t, s, b)
	}
	if !s.HasGroup(Semester2, "LOW1") || !s.HasGroup(Semester2, "LOW2") {
		t.Error("groups not listing an exclusive course should stay")
	}
	if s.HasMultipleCalc1() {
		t.Error("calc1 flagged though no course was merged")
	}
}

func TestAddGroup_UnknownCodeSkipped(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddGroup(Semester1, "NO-SUCH-GROUP")
	s.AddCourse(Semester1, "M 999")

	if s.HasData(Semester1) {
		t.Error("unknown references should leave the bucket empty")
	}
	s.Run()
	for _, b := range Buckets {
		if s.HasData(b) {
			t.Errorf("%s has data", b)
		}
	}
}

func TestIsEligibleForSemester1(t *testing.T) {
	s := newTestSequence(t, nil)
	s.AddCourse(Semester1, "M 101")
	s.AddGroup(Semester1, "CALC")

	tests := []struct {
		name        string
		canRegister []string
		want        bool
	}{
		{"direct course", []string{"M 101"}, true},
		{"group member", []string{"M 160"}, true},
		{"unrelated", []string{"M 261"}, false},
		{"nothing", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsEligibleForSemester1(tt.canRegister); got != tt.want {
				t.Errorf("IsEligibleForSemester1() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreArrivalPending(t *testing.T) {
	s := newTestSequence(t, &StudentRecord{Completed: []CompletedCourse{{CourseID: "M 117", Grade: grade(3)}}})
	s.AddGroup(Semester1, "M 160")

	s.Run()

	// M 124, M 118, M 126 and M 125 are still needed; M 117 is done.
	if got := s.PreArrivalPending(); got != 4 {
		t.Errorf("PreArrivalPending() = %d, want 4\n%s", got, snapshot(s))
	}
}
