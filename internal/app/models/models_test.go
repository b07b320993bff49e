package models

import "testing"

func TestPrerequisite_ToDomainPadsGrades(t *testing.T) {
	two := 2.0
	p := Prerequisite{CourseID: "M 261", Alternatives: []string{"M 161", "M 255"}, MinimumGrades: []*float64{&two}}

	rule := p.ToDomain()
	if len(rule.MinimumGrades) != 2 {
		t.Fatalf("len(MinimumGrades) = %d, want 2", len(rule.MinimumGrades))
	}
	if g := rule.MinimumGrade(0); g == nil || *g != 2 {
		t.Errorf("MinimumGrade(0) = %v, want 2", g)
	}
	if rule.MinimumGrade(1) != nil {
		t.Error("MinimumGrade(1) should be nil")
	}
}

func TestCourseGroup_ToDomain(t *testing.T) {
	three := 3
	tests := []struct {
		name        string
		row         CourseGroup
		wantCredits bool
	}{
		{"pick one", CourseGroup{Code: "CALC", LowestLastCourse: "M 160", CourseIDs: []string{"M 155", "M 160"}}, false},
		{"credits", CourseGroup{Code: "AUCC3", RequiredCredits: &three, LowestLastCourse: "M 101", CourseIDs: []string{"M 101"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.row.ToDomain()
			if g.Code() != tt.row.Code || g.CountsCredits() != tt.wantCredits || g.Len() != len(tt.row.CourseIDs) {
				t.Errorf("ToDomain() = %s credits=%v len=%d", g.Code(), g.CountsCredits(), g.Len())
			}
		})
	}
}

func TestMajorRequirement_ToDomain(t *testing.T) {
	req := MajorRequirement{ProgramCode: "BIO", Semester1: "M 160!,AUCC3.", Additional: "M 229"}.ToDomain()
	if req.ProgramCode != "BIO" || len(req.Sem1Critical) != 1 || len(req.Sem1Recommended) != 1 || len(req.Additional) != 1 {
		t.Errorf("ToDomain() = %+v", req)
	}
}
