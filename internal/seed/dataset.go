package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/yigit/mathplan/internal/app/models"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

var validate = validator.New()

// Dataset is a complete set of reference rows plus optional student records, as found in
// seed and fixture files.
type Dataset struct {
	Courses       []models.Course           `yaml:"courses" validate:"dive"`
	Groups        []models.CourseGroup      `yaml:"groups" validate:"dive"`
	Prerequisites []models.Prerequisite     `yaml:"prerequisites" validate:"dive"`
	Majors        []models.MajorRequirement `yaml:"majors" validate:"dive"`
	Students      []models.StudentRecord    `yaml:"students" validate:"dive"`
}

// DefaultDataset returns the built-in catalog.
func DefaultDataset() (*Dataset, error) {
	return ParseDataset(defaultCatalog)
}

// LoadDataset reads and validates a dataset file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return ParseDataset(data)
}

// ParseDataset decodes a YAML dataset, numbers prerequisite rules per course and validates
// the result. Unknown keys are rejected.
func ParseDataset(data []byte) (*Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	ds.numberPrerequisites()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// numberPrerequisites assigns each rule its position among the rules of the same course.
func (ds *Dataset) numberPrerequisites() {
	next := make(map[string]int)
	for i := range ds.Prerequisites {
		p := &ds.Prerequisites[i]
		p.Position = next[p.CourseID]
		next[p.CourseID]++
	}
}

// Validate checks field constraints and that every reference between rows resolves.
func (ds *Dataset) Validate() error {
	if err := validate.Struct(ds); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}

	courses := make(map[string]bool, len(ds.Courses))
	var errs []error
	for _, c := range ds.Courses {
		if courses[c.ID] {
			errs = append(errs, fmt.Errorf("duplicate course %q", c.ID))
		}
		courses[c.ID] = true
	}

	groups := make(map[string]bool, len(ds.Groups))
	for _, g := range ds.Groups {
		if groups[g.Code] || courses[g.Code] {
			errs = append(errs, fmt.Errorf("group %q collides with another group or course", g.Code))
		}
		groups[g.Code] = true
		for _, id := range g.CourseIDs {
			if !courses[id] {
				errs = append(errs, fmt.Errorf("group %q lists unknown course %q", g.Code, id))
			}
		}
	}

	for _, p := range ds.Prerequisites {
		if !courses[p.CourseID] {
			errs = append(errs, fmt.Errorf("prerequisite for unknown course %q", p.CourseID))
		}
		if len(p.MinimumGrades) > len(p.Alternatives) {
			errs = append(errs, fmt.Errorf("prerequisite of %q has more grades than alternatives", p.CourseID))
		}
	}

	majors := make(map[string]bool, len(ds.Majors))
	for _, m := range ds.Majors {
		majors[m.ProgramCode] = true
		req := m.ToDomain()
		for _, code := range req.Codes() {
			if !courses[code] && !groups[code] {
				errs = append(errs, fmt.Errorf("major %q requires unknown group %q", m.ProgramCode, code))
			}
		}
	}

	for _, s := range ds.Students {
		for _, code := range s.Student.Majors {
			if !majors[code] {
				errs = append(errs, fmt.Errorf("student %q selects unknown major %q", s.Student.ID, code))
			}
		}
	}

	return errors.Join(errs...)
}
