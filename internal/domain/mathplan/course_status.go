package mathplan

// StatusSource identifies the record that produced a course status.
type StatusSource int

const (
	SourceNone StatusSource = iota
	SourceCompleted
	SourceTransfer
	SourceChallengeExam
	SourcePlacement
)

// CourseStatus is either unsatisfied, satisfied by a record, or backed by a record whose
// grade is below the required threshold.
type CourseStatus struct {
	source    StatusSource
	grade     float64
	hasGrade  bool
	deficient bool
}

// Unsatisfied is the status of a course with no relevant record.
func Unsatisfied() CourseStatus {
	return CourseStatus{}
}

// SatisfiedBy is the status of a course covered by a record. grade may be nil.
func SatisfiedBy(source StatusSource, grade *float64) CourseStatus {
	s := CourseStatus{source: source}
	if grade != nil {
		s.grade, s.hasGrade = *grade, true
	}
	return s
}

// Deficient is the status of a course taken with a grade below the required grade.
func Deficient(source StatusSource, grade float64) CourseStatus {
	return CourseStatus{source: source, grade: grade, hasGrade: true, deficient: true}
}

// Source returns the record kind behind the status.
func (s CourseStatus) Source() StatusSource { return s.source }

// Grade returns the earned grade, if the status carries one.
func (s CourseStatus) Grade() (float64, bool) { return s.grade, s.hasGrade }

// IsNone reports whether no record has been applied.
func (s CourseStatus) IsNone() bool { return s.source == SourceNone }

// Sufficient reports whether the status means the course need not be taken.
func (s CourseStatus) Sufficient() bool {
	return s.source != SourceNone && !s.deficient
}

// Name returns the status name used in API payloads.
func (s CourseStatus) Name() string {
	switch s.source {
	case SourceCompleted:
		if s.deficient {
			return "COMPLETED_AT_CSU_GRADE_TOO_LOW"
		}
		return "COMPLETED_AT_CSU"
	case SourceTransfer:
		if s.deficient {
			return "TRANSFER_CREDIT_GRADE_TOO_LOW"
		}
		return "TRANSFER_CREDIT"
	case SourceChallengeExam:
		return "MATH_CHALLENGE_EXAM"
	case SourcePlacement:
		return "PLACED_OUT"
	default:
		return "NONE"
	}
}

func (s CourseStatus) String() string { return s.Name() }

// earnsCredit reports whether the status counts toward a credit group.
func (s CourseStatus) earnsCredit() bool {
	return s.Sufficient() && s.source != SourcePlacement
}
