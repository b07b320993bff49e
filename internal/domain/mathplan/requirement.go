package mathplan

import "strings"

// Urgency tiers of a requirement slot.
type Urgency int

const (
	Typical Urgency = iota
	Recommended
	Critical
)

func (u Urgency) String() string {
	switch u {
	case Critical:
		return "critical"
	case Recommended:
		return "recommended"
	default:
		return "typical"
	}
}

// MajorMathRequirement lists the group codes a major requires, by term and urgency.
type MajorMathRequirement struct {
	ProgramCode     string
	Sem1Critical    []string
	Sem1Recommended []string
	Sem1Typical     []string
	Sem2Critical    []string
	Sem2Recommended []string
	Sem2Typical     []string
	Additional      []string
}

// ParseMajorRequirement decodes comma-separated term slots. A trailing "!" marks a critical
// group, a trailing "." a recommended one; anything else is typical.
func ParseMajorRequirement(programCode, semester1, semester2, additional string) MajorMathRequirement {
	req := MajorMathRequirement{ProgramCode: programCode}

	for _, entry := range splitSlots(semester1) {
		code, urgency := parseSlot(entry)
		switch urgency {
		case Critical:
			req.Sem1Critical = append(req.Sem1Critical, code)
		case Recommended:
			req.Sem1Recommended = append(req.Sem1Recommended, code)
		default:
			req.Sem1Typical = append(req.Sem1Typical, code)
		}
	}

	for _, entry := range splitSlots(semester2) {
		code, urgency := parseSlot(entry)
		switch urgency {
		case Critical:
			req.Sem2Critical = append(req.Sem2Critical, code)
		case Recommended:
			req.Sem2Recommended = append(req.Sem2Recommended, code)
		default:
			req.Sem2Typical = append(req.Sem2Typical, code)
		}
	}

	req.Additional = splitSlots(additional)
	return req
}

func splitSlots(encoded string) []string {
	var out []string
	for _, part := range strings.Split(encoded, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSlot(entry string) (string, Urgency) {
	switch {
	case strings.HasSuffix(entry, "!"):
		return strings.TrimSpace(strings.TrimSuffix(entry, "!")), Critical
	case strings.HasSuffix(entry, "."):
		return strings.TrimSpace(strings.TrimSuffix(entry, ".")), Recommended
	default:
		return entry, Typical
	}
}

// Encode renders the requirement back into its slot encoding.
func (r MajorMathRequirement) Encode() (semester1, semester2, additional string) {
	var s1, s2 []string
	for _, c := range r.Sem1Critical {
		s1 = append(s1, c+"!")
	}
	for _, c := range r.Sem1Recommended {
		s1 = append(s1, c+".")
	}
	s1 = append(s1, r.Sem1Typical...)
	for _, c := range r.Sem2Critical {
		s2 = append(s2, c+"!")
	}
	for _, c := range r.Sem2Recommended {
		s2 = append(s2, c+".")
	}
	s2 = append(s2, r.Sem2Typical...)
	return strings.Join(s1, ","), strings.Join(s2, ","), strings.Join(r.Additional, ",")
}

// Codes returns every group code the requirement names, in slot order.
func (r MajorMathRequirement) Codes() []string {
	var all []string
	for _, list := range [][]string{
		r.Sem1Critical, r.Sem1Recommended, r.Sem1Typical,
		r.Sem2Critical, r.Sem2Recommended, r.Sem2Typical,
		r.Additional,
	} {
		all = append(all, list...)
	}
	return all
}

// SingleCourseGroups builds the one-course group that lets a requirement name a course directly.
func SingleCourseGroups(courses ...Course) []CourseGroup {
	groups := make([]CourseGroup, 0, len(courses))
	for _, c := range courses {
		groups = append(groups, PickOne(c.ID, c.ID, c.ID))
	}
	return groups
}
