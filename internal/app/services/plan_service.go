package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/domain/mathplan"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
)

// StudentStore is the read side of the student repository.
type StudentStore interface {
	GetRecord(ctx context.Context, id string) (*models.StudentRecord, error)
}

// Plan is one computed set of recommendations. It is read-only once returned.
type Plan struct {
	ID                string
	StudentID         string
	Majors            []string
	CatalogVersion    string
	ComputedAt        time.Time
	TransferCredits   float64
	CoreCredits       float64
	Recommendations   *mathplan.Recommendations
	Reference         mathplan.Reference
	MajorRequirements []models.MajorRequirement
}

// PlanService computes course plans for stored students and for inline previews.
type PlanService interface {
	StudentPlan(ctx context.Context, studentID string, majors []string) (*Plan, error)
	Preview(ctx context.Context, record *mathplan.StudentRecord, majors []string) (*Plan, error)
	Invalidate(studentID string)
}

type cachedPlan struct {
	plan    *Plan
	expires time.Time
}

// planServiceImpl implements the PlanService interface
type planServiceImpl struct {
	catalog   CatalogService
	students  StudentStore
	ttl       time.Duration
	maxMajors int
	logger    zerolog.Logger
	now       func() time.Time

	mu          sync.Mutex
	cache       map[string]cachedPlan
	generations map[string]uint64
	group       singleflight.Group
}

// NewPlanService creates a new plan service. Plans of stored students are cached for ttl;
// a zero ttl disables caching.
func NewPlanService(catalog CatalogService, students StudentStore, ttl time.Duration, maxMajors int, lgr zerolog.Logger) PlanService {
	return &planServiceImpl{
		catalog:     catalog,
		students:    students,
		ttl:         ttl,
		maxMajors:   maxMajors,
		logger:      lgr.With().Str("component", "planner").Logger(),
		now:         time.Now,
		cache:       make(map[string]cachedPlan),
		generations: make(map[string]uint64),
	}
}

// normalizeMajors trims, upper-cases and de-duplicates program codes, keeping their order.
func normalizeMajors(majors []string) []string {
	seen := make(map[string]bool, len(majors))
	out := make([]string, 0, len(majors))
	for _, m := range majors {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func (s *planServiceImpl) validateMajors(majors []string) error {
	if len(majors) == 0 {
		return fmt.Errorf("%w: at least one major is required", apperrors.ErrValidationFailed)
	}
	if s.maxMajors > 0 && len(majors) > s.maxMajors {
		return fmt.Errorf("%w: at most %d majors may be combined", apperrors.ErrValidationFailed, s.maxMajors)
	}
	return nil
}

func cacheKey(studentID, catalogVersion string, majors []string) string {
	sorted := append([]string(nil), majors...)
	sort.Strings(sorted)
	return studentID + "|" + catalogVersion + "|" + strings.Join(sorted, ",")
}

// StudentPlan computes the plan of a stored student. Without explicit majors the student's
// selected majors are used. Concurrent requests for the same plan share one computation.
func (s *planServiceImpl) StudentPlan(ctx context.Context, studentID string, majors []string) (*Plan, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, fmt.Errorf("%w: student id is required", apperrors.ErrValidationFailed)
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	majors = normalizeMajors(majors)
	if len(majors) > 0 {
		if err := s.validateMajors(majors); err != nil {
			return nil, err
		}
		key := cacheKey(studentID, catalog.Version, majors)
		if plan, ok := s.cached(key); ok {
			return plan, nil
		}
	}

	// Invalidate bumps the generation; a computation started before it must not be cached.
	gen := s.generation(studentID)
	flightKey := fmt.Sprintf("%s|%d|%s|%s", studentID, gen, catalog.Version, strings.Join(majors, ","))
	// The shared computation outlives a caller that gives up.
	detached := context.WithoutCancel(ctx)

	ch := s.group.DoChan(flightKey, func() (interface{}, error) {
		record, err := s.students.GetRecord(detached, studentID)
		if err != nil {
			return nil, err
		}

		selected := majors
		if len(selected) == 0 {
			selected = normalizeMajors(record.Student.Majors)
			if err := s.validateMajors(selected); err != nil {
				return nil, err
			}
		}

		key := cacheKey(studentID, catalog.Version, selected)
		if plan, ok := s.cached(key); ok {
			return plan, nil
		}

		plan, err := s.compute(catalog, record.ToDomain(), selected)
		if err != nil {
			return nil, err
		}
		s.storeIfCurrent(studentID, gen, key, plan)
		return plan, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug().Str("student", studentID).Msg("Plan computation shared between requests")
		}
		return res.Val.(*Plan), nil
	}
}

// Preview computes a plan for an inline record without touching the cache.
func (s *planServiceImpl) Preview(ctx context.Context, record *mathplan.StudentRecord, majors []string) (*Plan, error) {
	majors = normalizeMajors(majors)
	if err := s.validateMajors(majors); err != nil {
		return nil, err
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.compute(catalog, record, majors)
}

// Invalidate drops every cached plan of a student, including plans still being computed.
func (s *planServiceImpl) Invalidate(studentID string) {
	prefix := studentID + "|"
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[studentID]++
	for key := range s.cache {
		if strings.HasPrefix(key, prefix) {
			delete(s.cache, key)
		}
	}
}

func (s *planServiceImpl) compute(catalog *Catalog, record *mathplan.StudentRecord, majors []string) (*Plan, error) {
	reqs, err := catalog.Requirements(majors)
	if err != nil {
		return nil, err
	}

	rows := make([]models.MajorRequirement, 0, len(majors))
	for _, code := range majors {
		m, _ := catalog.Major(code)
		rows = append(rows, m)
	}

	start := s.now()
	ref := catalog.Planner.Reference()
	plan := &Plan{
		ID:                uuid.NewString(),
		Majors:            majors,
		CatalogVersion:    catalog.Version,
		ComputedAt:        start,
		Recommendations:   catalog.Planner.Compute(reqs, record),
		Reference:         ref,
		MajorRequirements: rows,
	}
	if record != nil {
		plan.StudentID = record.StudentID
		plan.TransferCredits = record.TransferCreditTotal()
		plan.CoreCredits = record.CoreCreditsCompleted(ref)
	}

	s.logger.Info().
		Str("plan", plan.ID).
		Str("student", plan.StudentID).
		Strs("majors", majors).
		Dur("elapsed", s.now().Sub(start)).
		Msg("Plan computed")
	return plan, nil
}

func (s *planServiceImpl) cached(key string) (*Plan, bool) {
	if s.ttl <= 0 {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(entry.expires) {
		delete(s.cache, key)
		return nil, false
	}
	return entry.plan, true
}

func (s *planServiceImpl) generation(studentID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[studentID]
}

// storeIfCurrent caches plan unless the student was invalidated after gen was read.
func (s *planServiceImpl) storeIfCurrent(studentID string, gen uint64, key string, plan *Plan) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[studentID] != gen {
		return
	}

	now := s.now()
	for k, entry := range s.cache {
		if !now.Before(entry.expires) {
			delete(s.cache, k)
		}
	}
	s.cache[key] = cachedPlan{plan: plan, expires: now.Add(s.ttl)}
}
