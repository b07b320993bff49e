package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
)

// StudentRecordStore is the student repository.
type StudentRecordStore interface {
	StudentStore
	SaveRecord(ctx context.Context, rec *models.StudentRecord) error
}

// StudentService reads and replaces stored academic records.
type StudentService interface {
	GetRecord(ctx context.Context, studentID string) (*models.StudentRecord, error)
	SaveRecord(ctx context.Context, studentID string, rec *models.StudentRecord) error
}

type studentServiceImpl struct {
	store   StudentRecordStore
	catalog CatalogService
	plans   PlanService
	logger  zerolog.Logger
}

// NewStudentService creates a new student service. Saving a record drops the student's cached plans.
func NewStudentService(store StudentRecordStore, catalog CatalogService, plans PlanService, lgr zerolog.Logger) StudentService {
	return &studentServiceImpl{
		store:   store,
		catalog: catalog,
		plans:   plans,
		logger:  lgr.With().Str("component", "students").Logger(),
	}
}

// GetRecord returns the stored record of a student.
func (s *studentServiceImpl) GetRecord(ctx context.Context, studentID string) (*models.StudentRecord, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, apperrors.ErrInvalidStudentID
	}
	return s.store.GetRecord(ctx, studentID)
}

// SaveRecord replaces the record of studentID. Majors must exist in the current catalog.
func (s *studentServiceImpl) SaveRecord(ctx context.Context, studentID string, rec *models.StudentRecord) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return apperrors.ErrInvalidStudentID
	}
	if rec.Student.ID == "" {
		rec.Student.ID = studentID
	}
	if rec.Student.ID != studentID {
		return apperrors.NewValidationError("student.id", "student id does not match the path")
	}

	rec.Student.Majors = normalizeMajors(rec.Student.Majors)
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return err
	}
	for _, code := range rec.Student.Majors {
		if _, ok := catalog.Major(code); !ok {
			return fmt.Errorf("%w: %s", apperrors.ErrMajorNotFound, code)
		}
	}

	if err := s.store.SaveRecord(ctx, rec); err != nil {
		return err
	}
	s.plans.Invalidate(studentID)

	s.logger.Info().
		Str("student", studentID).
		Int("completed", len(rec.Completed)).
		Int("transfers", len(rec.Transfers)).
		Int("placements", len(rec.Placements)).
		Msg("Student record saved")
	return nil
}
