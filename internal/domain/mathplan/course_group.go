// Package mathplan resolves a student's selected majors and academic record into
// prerequisite-consistent math course plans.
package mathplan

import (
	"fmt"
	"strings"
)

// CourseGroup is an immutable requirement unit: either pick one listed course, or
// accumulate a number of credits from the listed courses.
type CourseGroup struct {
	code          string
	credits       int
	countsCredits bool
	lowestLast    string
	courseIDs     []string
}

// NewCourseGroup builds a group. A nil requiredCredits makes it a pick-one group.
func NewCourseGroup(code string, requiredCredits *int, lowestLast string, courseIDs ...string) CourseGroup {
	g := CourseGroup{
		code:       code,
		lowestLast: lowestLast,
		courseIDs:  append([]string(nil), courseIDs...),
	}
	if requiredCredits != nil {
		g.credits = *requiredCredits
		g.countsCredits = true
	}
	return g
}

// PickOne builds a group satisfied by any single listed course.
func PickOne(code, lowestLast string, courseIDs ...string) CourseGroup {
	return NewCourseGroup(code, nil, lowestLast, courseIDs...)
}

// PickCredits builds a group satisfied by a credit total from the listed courses.
func PickCredits(code string, credits int, lowestLast string, courseIDs ...string) CourseGroup {
	return NewCourseGroup(code, &credits, lowestLast, courseIDs...)
}

// Code returns the group code.
func (g CourseGroup) Code() string { return g.code }

// RequiredCredits returns the credit total and whether the group counts credits at all.
func (g CourseGroup) RequiredCredits() (int, bool) { return g.credits, g.countsCredits }

// CountsCredits reports whether the group is a credit group rather than a pick-one group.
func (g CourseGroup) CountsCredits() bool { return g.countsCredits }

// LowestLastCourse returns the course used to order groups.
func (g CourseGroup) LowestLastCourse() string { return g.lowestLast }

// CourseIDs returns a copy of the listed course ids.
func (g CourseGroup) CourseIDs() []string { return append([]string(nil), g.courseIDs...) }

// Len returns the number of listed courses.
func (g CourseGroup) Len() int { return len(g.courseIDs) }

// Contains reports whether courseID is listed.
func (g CourseGroup) Contains(courseID string) bool {
	for _, id := range g.courseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// WithRequiredCredits returns a copy of a credit group that requires n credits.
// Pick-one groups are returned unchanged.
func (g CourseGroup) WithRequiredCredits(n int) CourseGroup {
	if !g.countsCredits {
		return g
	}
	out := g
	out.courseIDs = append([]string(nil), g.courseIDs...)
	out.credits = n
	return out
}

// IsSatisfiedBy tests whether the courses in completed satisfy the group.
func (g CourseGroup) IsSatisfiedBy(completed map[string]bool, catalog CourseCatalog) bool {
	if !g.countsCredits {
		for _, id := range g.courseIDs {
			if completed[id] {
				return true
			}
		}
		return false
	}

	total := 0
	for _, id := range g.courseIDs {
		if !completed[id] {
			continue
		}
		if c, ok := catalog.Course(id); ok {
			total += c.Credits
		}
	}
	return total >= g.credits
}

// IsSatisfiedByGroup tests whether another pick-one group in others guarantees this group:
// every course of that group is listed here (and, for a credit group, carries enough credits
// on its own). The group itself is ignored.
func (g CourseGroup) IsSatisfiedByGroup(others []CourseGroup, catalog CourseCatalog) bool {
	for _, other := range others {
		if other.code == g.code || other.countsCredits || len(other.courseIDs) == 0 {
			continue
		}
		if g.coversGroup(other, catalog) {
			return true
		}
	}
	return false
}

func (g CourseGroup) coversGroup(other CourseGroup, catalog CourseCatalog) bool {
	for _, id := range other.courseIDs {
		c, ok := catalog.Course(id)
		if !ok || !g.Contains(id) {
			return false
		}
		if g.countsCredits && c.Credits < g.credits {
			return false
		}
	}
	return true
}

// Compare orders groups by lowest last course, then longer lists first, then code.
func (g CourseGroup) Compare(other CourseGroup) int {
	if c := strings.Compare(g.lowestLast, other.lowestLast); c != 0 {
		return c
	}
	if len(g.courseIDs) != len(other.courseIDs) {
		if len(g.courseIDs) > len(other.courseIDs) {
			return -1
		}
		return 1
	}
	return strings.Compare(g.code, other.code)
}

// Describe renders the group for display, skipping courses missing from the catalog.
func (g CourseGroup) Describe(catalog CourseCatalog) string {
	var b strings.Builder
	if g.countsCredits {
		fmt.Fprintf(&b, "Select %d credits from (", g.credits)
	} else {
		b.WriteString("Select one course from (")
	}

	first := true
	for _, id := range g.courseIDs {
		c, ok := catalog.Course(id)
		if !ok {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		b.WriteString(c.DisplayLabel())
		first = false
	}
	b.WriteString(")")
	return b.String()
}

// String returns the group code.
func (g CourseGroup) String() string { return g.code }
