package mathplan

// Course is a catalog entry the planner can place into a bucket.
type Course struct {
	ID         string
	Label      string
	Title      string
	Credits    int
	CatalogURL string
}

// DisplayLabel returns the label shown to students, falling back to the id.
func (c Course) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// CourseCatalog resolves course ids to catalog entries.
type CourseCatalog interface {
	Course(id string) (Course, bool)
}

// GroupCatalog resolves group codes to course group definitions.
type GroupCatalog interface {
	Group(code string) (CourseGroup, bool)
}

// PrerequisiteRules lists the prerequisite rules of a course. Every returned rule must be met.
type PrerequisiteRules interface {
	Prerequisites(courseID string) []RequiredPrereq
}

// CourseMap is a CourseCatalog backed by a map.
type CourseMap map[string]Course

// NewCourseMap indexes courses by id.
func NewCourseMap(courses ...Course) CourseMap {
	m := make(CourseMap, len(courses))
	for _, c := range courses {
		m[c.ID] = c
	}
	return m
}

// Course implements CourseCatalog.
func (m CourseMap) Course(id string) (Course, bool) {
	c, ok := m[id]
	return c, ok
}

// GroupMap is a GroupCatalog backed by a map.
type GroupMap map[string]CourseGroup

// NewGroupMap indexes groups by code.
func NewGroupMap(groups ...CourseGroup) GroupMap {
	m := make(GroupMap, len(groups))
	for _, g := range groups {
		m[g.Code()] = g
	}
	return m
}

// Group implements GroupCatalog.
func (m GroupMap) Group(code string) (CourseGroup, bool) {
	g, ok := m[code]
	return g, ok
}

// PrereqMap is a PrerequisiteRules table backed by a map.
type PrereqMap map[string][]RequiredPrereq

// NewPrereqMap groups rules by target course, keeping their order.
func NewPrereqMap(rules ...RequiredPrereq) PrereqMap {
	m := make(PrereqMap)
	for _, r := range rules {
		m[r.CourseID] = append(m[r.CourseID], r)
	}
	return m
}

// Prerequisites implements PrerequisiteRules.
func (m PrereqMap) Prerequisites(courseID string) []RequiredPrereq {
	return m[courseID]
}

// Exclusion set ids that drive the aggregate calculus flags.
const (
	ExclusionCalc1 = "calc1"
	ExclusionCalc2 = "calc2"
)

// ExclusionSet is a set of equivalent courses for which credit can be earned only once.
// Courses are ranked: the first listed course present in a plan is the one kept.
type ExclusionSet struct {
	ID      string   `yaml:"id"`
	Courses []string `yaml:"courses"`
}

// DefaultExclusions returns the mutually exclusive course sets of the mathematics catalog.
func DefaultExclusions() []ExclusionSet {
	return []ExclusionSet{
		{ID: ExclusionCalc1, Courses: []string{"M 160", "M 155", "M 141"}},
		{ID: ExclusionCalc2, Courses: []string{"M 161", "M 255"}},
		{ID: "linalg", Courses: []string{"M 330", "M 230"}},
		{ID: "diffeq", Courses: []string{"M 345", "M 340"}},
	}
}

// Clearance marks Courses as placed out when the student transferred any of TransferredCourses.
type Clearance struct {
	Courses            []string `yaml:"courses"`
	TransferredCourses []string `yaml:"transferred_courses"`
}

// DefaultClearances returns the precalculus clearance granted by transferred calculus.
func DefaultClearances() []Clearance {
	return []Clearance{{
		Courses:            []string{"M 117", "M 118", "M 124", "M 125", "M 126"},
		TransferredCourses: []string{"M 160", "M 161"},
	}}
}

// CorePolicy configures the core-credit escalation applied near the transfer credit ceiling.
type CorePolicy struct {
	GroupCode                 string   `yaml:"group_code"`
	GroupPrefix               string   `yaml:"group_prefix"`
	RequiredCredits           float64  `yaml:"required_credits"`
	Semester1TransferCredits  float64  `yaml:"semester1_transfer_credits"`
	Semester12TransferCredits float64  `yaml:"semester12_transfer_credits"`
	MinimumGrade              float64  `yaml:"minimum_grade"`
	TransferSuffixes          []string `yaml:"transfer_suffixes"`
}

// DefaultCorePolicy returns the quantitative-reasoning core policy.
func DefaultCorePolicy() CorePolicy {
	return CorePolicy{
		GroupCode:                 "AUCC3",
		GroupPrefix:               "AUCC",
		RequiredCredits:           3,
		Semester1TransferCredits:  45,
		Semester12TransferCredits: 30,
		MinimumGrade:              1.9,
		TransferSuffixes:          []string{"++1B"},
	}
}

// Reference bundles the read-only reference data a Planner works from.
type Reference struct {
	Courses    CourseCatalog
	Groups     GroupCatalog
	Prereqs    PrerequisiteRules
	Exclusions []ExclusionSet
	Clearances []Clearance
	Core       CorePolicy
}
