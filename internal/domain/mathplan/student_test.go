package mathplan

import "testing"

func TestStudentRecord_ResolveStatus(t *testing.T) {
	tests := []struct {
		name     string
		record   *StudentRecord
		course   string
		required *float64
		want     string
		grade    float64
	}{
		{
			name:   "no record",
			record: nil,
			course: "M 117",
			want:   "NONE",
		},
		{
			name: "placement wins over a grade",
			record: &StudentRecord{
				Placements: []PlacementResult{{CourseID: "M 117"}},
				Completed:  []CompletedCourse{{CourseID: "M 117", Grade: grade(4)}},
			},
			course: "M 117",
			want:   "PLACED_OUT",
		},
		{
			name:   "challenge exam",
			record: &StudentRecord{Placements: []PlacementResult{{CourseID: "M 118", Challenge: true}}},
			course: "M 118",
			want:   "MATH_CHALLENGE_EXAM",
		},
		{
			name: "best grade across kinds",
			record: &StudentRecord{
				Completed: []CompletedCourse{{CourseID: "M 124", Grade: grade(1)}},
				Transfers: []TransferCredit{{CourseID: "M 124", Credits: 1, Grade: grade(3)}},
			},
			course: "M 124",
			want:   "TRANSFER_CREDIT",
			grade:  3,
		},
		{
			name: "completed preferred on a tie",
			record: &StudentRecord{
				Completed: []CompletedCourse{{CourseID: "M 124", Grade: grade(3)}},
				Transfers: []TransferCredit{{CourseID: "M 124", Credits: 1, Grade: grade(3)}},
			},
			course: "M 124",
			want:   "COMPLETED_AT_CSU",
			grade:  3,
		},
		{
			name:     "grade below requirement",
			record:   &StudentRecord{Completed: []CompletedCourse{{CourseID: "M 125", Grade: grade(1.5)}}},
			course:   "M 125",
			required: grade(2),
			want:     "COMPLETED_AT_CSU_GRADE_TOO_LOW",
			grade:    1.5,
		},
		{
			name:   "non-passing grade ignored",
			record: &StudentRecord{Completed: []CompletedCourse{{CourseID: "M 125"}}},
			course: "M 125",
			want:   "NONE",
		},
		{
			name:   "transferred calculus clears precalculus",
			record: &StudentRecord{Transfers: []TransferCredit{{CourseID: "M 160", Credits: 4, Grade: grade(3)}}},
			course: "M 126",
			want:   "PLACED_OUT",
		},
		{
			name: "clearance does not replace a passing grade",
			record: &StudentRecord{
				Completed: []CompletedCourse{{CourseID: "M 126", Grade: grade(2)}},
				Transfers: []TransferCredit{{CourseID: "M 161", Credits: 4, Grade: grade(3)}},
			},
			course: "M 126",
			want:   "COMPLETED_AT_CSU",
			grade:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := newCourseInfo(Course{ID: tt.course, Credits: 1}, false)
			info.RequiredGrade = tt.required

			got := tt.record.resolveStatus(info, DefaultClearances())
			if got.Name() != tt.want {
				t.Fatalf("status = %s, want %s", got.Name(), tt.want)
			}
			if g, ok := got.Grade(); ok && g != tt.grade {
				t.Errorf("grade = %v, want %v", g, tt.grade)
			}
		})
	}
}

func TestStudentRecord_FirstStatus(t *testing.T) {
	record := &StudentRecord{
		Completed: []CompletedCourse{
			{CourseID: "M 118", Grade: grade(1)},
			{CourseID: "M 118", Grade: grade(4)},
		},
	}
	info := newCourseInfo(Course{ID: "M 118", Credits: 1}, true)
	info.RequiredGrade = grade(2)

	if got := record.firstStatus(info); got.Name() != "COMPLETED_AT_CSU_GRADE_TOO_LOW" {
		t.Errorf("firstStatus = %s, want first record to decide", got.Name())
	}
}

func TestStudentRecord_CoreCredits(t *testing.T) {
	ref := testReference()

	tests := []struct {
		name   string
		record *StudentRecord
		want   float64
	}{
		{"nil record", nil, 0},
		{
			name:   "passing core course",
			record: &StudentRecord{Completed: []CompletedCourse{{CourseID: "M 101", Grade: grade(3)}}},
			want:   3,
		},
		{
			name:   "grade at the minimum does not count",
			record: &StudentRecord{Completed: []CompletedCourse{{CourseID: "M 101", Grade: grade(1.9)}}},
			want:   0,
		},
		{
			name: "course counted once",
			record: &StudentRecord{Completed: []CompletedCourse{
				{CourseID: "M 117", Grade: grade(2)},
				{CourseID: "M 117", Grade: grade(3)},
			}},
			want: 1,
		},
		{
			name:   "non-core course",
			record: &StudentRecord{Completed: []CompletedCourse{{CourseID: "M 229", Grade: grade(4)}}},
			want:   0,
		},
		{
			name: "core transfer by suffix",
			record: &StudentRecord{Transfers: []TransferCredit{
				{CourseID: "MATH 1++", TransferredID: "MAT 1++1B", Credits: 3},
			}},
			want: 3,
		},
		{
			name: "core transfer by course",
			record: &StudentRecord{Transfers: []TransferCredit{
				{CourseID: "M 160", Credits: 4, Grade: grade(3.5)},
			}},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.CoreCreditsCompleted(ref); got != tt.want {
				t.Errorf("CoreCreditsCompleted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStudentRecord_TransferCreditTotal(t *testing.T) {
	record := &StudentRecord{Transfers: []TransferCredit{
		{CourseID: "A", Credits: 12.5},
		{CourseID: "B", Credits: 30},
	}}
	if got := record.TransferCreditTotal(); got != 42.5 {
		t.Errorf("TransferCreditTotal() = %v, want 42.5", got)
	}
	var none *StudentRecord
	if got := none.TransferCreditTotal(); got != 0 {
		t.Errorf("nil TransferCreditTotal() = %v", got)
	}
}
