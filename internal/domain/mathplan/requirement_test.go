package mathplan

import (
	"reflect"
	"testing"
)

func TestParseMajorRequirement(t *testing.T) {
	req := ParseMajorRequirement("MATH-BS", " M 160! , CALC.,AUCC3,", "M 161!,M 229", "M 261,,M 340 ")

	checks := []struct {
		name string
		got  []string
		want []string
	}{
		{"sem1 critical", req.Sem1Critical, []string{"M 160"}},
		{"sem1 recommended", req.Sem1Recommended, []string{"CALC"}},
		{"sem1 typical", req.Sem1Typical, []string{"AUCC3"}},
		{"sem2 critical", req.Sem2Critical, []string{"M 161"}},
		{"sem2 recommended", req.Sem2Recommended, nil},
		{"sem2 typical", req.Sem2Typical, []string{"M 229"}},
		{"additional", req.Additional, []string{"M 261", "M 340"}},
	}
	for _, c := range checks {
		if !reflect.DeepEqual(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if req.ProgramCode != "MATH-BS" {
		t.Errorf("ProgramCode = %q", req.ProgramCode)
	}
}

func TestParseMajorRequirement_Empty(t *testing.T) {
	req := ParseMajorRequirement("UNDECLARED", "", "  ", "")
	if codes := req.Codes(); len(codes) != 0 {
		t.Errorf("Codes() = %v, want none", codes)
	}
}

func TestMajorMathRequirement_Encode(t *testing.T) {
	req := ParseMajorRequirement("AGED", "M 117!,M 118.,M 124", "M 125!", "M 155")
	s1, s2, add := req.Encode()

	if s1 != "M 117!,M 118.,M 124" || s2 != "M 125!" || add != "M 155" {
		t.Errorf("Encode() = %q %q %q", s1, s2, add)
	}
	if again := ParseMajorRequirement("AGED", s1, s2, add); !reflect.DeepEqual(again, req) {
		t.Errorf("re-parsed requirement differs: %+v", again)
	}
}

func TestUrgency_String(t *testing.T) {
	for u, want := range map[Urgency]string{Critical: "critical", Recommended: "recommended", Typical: "typical"} {
		if got := u.String(); got != want {
			t.Errorf("%d.String() = %s, want %s", u, got, want)
		}
	}
}

func TestSingleCourseGroups(t *testing.T) {
	groups := SingleCourseGroups(Course{ID: "M 160", Credits: 4})
	if len(groups) != 1 {
		t.Fatalf("got %d groups", len(groups))
	}
	g := groups[0]
	if g.Code() != "M 160" || g.Len() != 1 || g.CountsCredits() || g.LowestLastCourse() != "M 160" {
		t.Errorf("unexpected group %+v", g)
	}
}
