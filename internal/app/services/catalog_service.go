package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/domain/mathplan"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
)

// CatalogStore is the read side of the catalog repository.
type CatalogStore interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListCourseGroups(ctx context.Context) ([]models.CourseGroup, error)
	ListPrerequisites(ctx context.Context) ([]models.Prerequisite, error)
	ListMajors(ctx context.Context) ([]models.MajorRequirement, error)
}

// Catalog is an immutable snapshot of the reference tables together with a planner built on it.
// Snapshots are replaced, never modified, so they can be shared between requests.
type Catalog struct {
	Version  string
	LoadedAt time.Time
	Courses  []models.Course
	Groups   []models.CourseGroup
	Majors   []models.MajorRequirement
	Planner  *mathplan.Planner

	courses map[string]models.Course
	majors  map[string]models.MajorRequirement
}

// Course returns a catalog course by id.
func (c *Catalog) Course(id string) (models.Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// Major returns a major requirement by program code.
func (c *Catalog) Major(code string) (models.MajorRequirement, bool) {
	m, ok := c.majors[code]
	return m, ok
}

// Requirements decodes the requirements of the given majors in order.
func (c *Catalog) Requirements(codes []string) ([]mathplan.MajorMathRequirement, error) {
	reqs := make([]mathplan.MajorMathRequirement, 0, len(codes))
	for _, code := range codes {
		m, ok := c.majors[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrMajorNotFound, code)
		}
		reqs = append(reqs, m.ToDomain())
	}
	return reqs, nil
}

// NewCatalog indexes reference rows and builds the planner. Every course also acts as a
// single-course group so requirement slots may name courses directly; an explicit group
// with the same code wins.
func NewCatalog(policy mathplan.Reference, courses []models.Course, groups []models.CourseGroup,
	prereqs []models.Prerequisite, majors []models.MajorRequirement, lgr zerolog.Logger) *Catalog {

	c := &Catalog{
		Version:  uuid.NewString(),
		LoadedAt: time.Now(),
		Courses:  courses,
		Groups:   groups,
		Majors:   majors,
		courses:  make(map[string]models.Course, len(courses)),
		majors:   make(map[string]models.MajorRequirement, len(majors)),
	}

	domainCourses := make([]mathplan.Course, 0, len(courses))
	for _, course := range courses {
		c.courses[course.ID] = course
		domainCourses = append(domainCourses, course.ToDomain())
	}

	domainGroups := mathplan.SingleCourseGroups(domainCourses...)
	for _, g := range groups {
		domainGroups = append(domainGroups, g.ToDomain())
	}

	rules := make([]mathplan.RequiredPrereq, 0, len(prereqs))
	for _, p := range prereqs {
		rules = append(rules, p.ToDomain())
	}

	for _, m := range majors {
		c.majors[m.ProgramCode] = m
	}

	ref := policy
	ref.Courses = mathplan.NewCourseMap(domainCourses...)
	ref.Groups = mathplan.NewGroupMap(domainGroups...)
	ref.Prereqs = mathplan.NewPrereqMap(rules...)
	c.Planner = mathplan.NewPlanner(ref, lgr)

	return c
}

// CatalogService serves the reference catalog from a periodically reloaded snapshot.
type CatalogService interface {
	Snapshot(ctx context.Context) (*Catalog, error)
	Reload(ctx context.Context) (*Catalog, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourseGroups(ctx context.Context) ([]models.CourseGroup, error)
	ListMajors(ctx context.Context) ([]models.MajorRequirement, error)
	GetMajor(ctx context.Context, programCode string) (*models.MajorRequirement, error)
}

// catalogServiceImpl implements the CatalogService interface
type catalogServiceImpl struct {
	store          CatalogStore
	policy         mathplan.Reference
	reloadInterval time.Duration
	logger         zerolog.Logger
	now            func() time.Time

	mu      sync.RWMutex
	current *Catalog
	group   singleflight.Group
}

// NewCatalogService creates a new catalog service. policy carries the exclusion, clearance
// and core settings; its catalog tables are ignored.
func NewCatalogService(store CatalogStore, policy mathplan.Reference, reloadInterval time.Duration, lgr zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		store:          store,
		policy:         policy,
		reloadInterval: reloadInterval,
		logger:         lgr.With().Str("component", "catalog").Logger(),
		now:            time.Now,
	}
}

// Snapshot returns the current snapshot, reloading it once it is older than the reload
// interval. A failed reload keeps serving the previous snapshot.
func (s *catalogServiceImpl) Snapshot(ctx context.Context) (*Catalog, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil && (s.reloadInterval <= 0 || s.now().Sub(current.LoadedAt) < s.reloadInterval) {
		return current, nil
	}

	fresh, err := s.Reload(ctx)
	if err != nil {
		if current != nil {
			s.logger.Warn().Err(err).Str("version", current.Version).Msg("Catalog reload failed, serving previous snapshot")
			return current, nil
		}
		return nil, err
	}
	return fresh, nil
}

// Reload loads a new snapshot. Concurrent callers share one load.
func (s *catalogServiceImpl) Reload(ctx context.Context) (*Catalog, error) {
	v, err, _ := s.group.Do("catalog", func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*Catalog), nil
}

func (s *catalogServiceImpl) load(ctx context.Context) (*Catalog, error) {
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, errors.Join(apperrors.ErrCatalogUnavailable, err)
	}
	groups, err := s.store.ListCourseGroups(ctx)
	if err != nil {
		return nil, errors.Join(apperrors.ErrCatalogUnavailable, err)
	}
	prereqs, err := s.store.ListPrerequisites(ctx)
	if err != nil {
		return nil, errors.Join(apperrors.ErrCatalogUnavailable, err)
	}
	majors, err := s.store.ListMajors(ctx)
	if err != nil {
		return nil, errors.Join(apperrors.ErrCatalogUnavailable, err)
	}

	c := NewCatalog(s.policy, courses, groups, prereqs, majors, s.logger)
	c.LoadedAt = s.now()

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()

	s.logger.Info().
		Str("version", c.Version).
		Int("courses", len(courses)).
		Int("groups", len(groups)).
		Int("prerequisites", len(prereqs)).
		Int("majors", len(majors)).
		Msg("Catalog snapshot loaded")
	return c, nil
}

func (s *catalogServiceImpl) ListCourses(ctx context.Context) ([]models.Course, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.Courses, nil
}

func (s *catalogServiceImpl) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	course, ok := c.Course(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, id)
	}
	return &course, nil
}

func (s *catalogServiceImpl) ListCourseGroups(ctx context.Context) ([]models.CourseGroup, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.Groups, nil
}

func (s *catalogServiceImpl) ListMajors(ctx context.Context) ([]models.MajorRequirement, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return c.Majors, nil
}

func (s *catalogServiceImpl) GetMajor(ctx context.Context, programCode string) (*models.MajorRequirement, error) {
	c, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := c.Major(programCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrMajorNotFound, programCode)
	}
	return &m, nil
}
