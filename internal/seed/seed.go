package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/yigit/mathplan/internal/app/models"
	appRepos "github.com/yigit/mathplan/internal/app/repositories"
	"github.com/yigit/mathplan/internal/db"
)

// CatalogWriter is the write side of the catalog repository.
type CatalogWriter interface {
	UpsertCourse(ctx context.Context, c models.Course) error
	UpsertCourseGroup(ctx context.Context, g models.CourseGroup) error
	UpsertPrerequisite(ctx context.Context, p models.Prerequisite) error
	UpsertMajor(ctx context.Context, m models.MajorRequirement) error
}

// StudentWriter is the write side of the student repository.
type StudentWriter interface {
	SaveRecord(ctx context.Context, rec *models.StudentRecord) error
}

// CreateDefaultData loads the built-in catalog and sample students in one transaction.
// Existing rows are updated in place, so it is safe to run on every start.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	ds, err := DefaultDataset()
	if err != nil {
		return fmt.Errorf("default dataset: %w", err)
	}
	return ImportDataset(ctx, database, ds, lgr)
}

// ImportDataset writes ds inside a single transaction.
func ImportDataset(ctx context.Context, database *db.PostgresDB, ds *Dataset, lgr zerolog.Logger) error {
	catalogRepo := appRepos.NewCatalogRepository(database.Pool)
	studentRepo := appRepos.NewStudentRepository(database.Pool)

	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return Import(ctx, catalogRepo.WithTx(tx), studentRepo.WithTx(tx), ds, lgr)
	})
}

// Import writes every row of ds. Catalog rows are written before students so that
// student majors resolve. All failures are collected and returned together.
func Import(ctx context.Context, catalog CatalogWriter, students StudentWriter, ds *Dataset, lgr zerolog.Logger) error {
	lgr.Info().
		Int("courses", len(ds.Courses)).
		Int("groups", len(ds.Groups)).
		Int("prerequisites", len(ds.Prerequisites)).
		Int("majors", len(ds.Majors)).
		Int("students", len(ds.Students)).
		Msg("Importing reference data...")

	var finalErr error

	for _, c := range ds.Courses {
		if err := catalog.UpsertCourse(ctx, c); err != nil {
			lgr.Error().Err(err).Str("course", c.ID).Msg("Error importing course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, g := range ds.Groups {
		if err := catalog.UpsertCourseGroup(ctx, g); err != nil {
			lgr.Error().Err(err).Str("group", g.Code).Msg("Error importing course group")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, p := range ds.Prerequisites {
		if err := catalog.UpsertPrerequisite(ctx, p); err != nil {
			lgr.Error().Err(err).Str("course", p.CourseID).Int("position", p.Position).Msg("Error importing prerequisite")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, m := range ds.Majors {
		if err := catalog.UpsertMajor(ctx, m); err != nil {
			lgr.Error().Err(err).Str("major", m.ProgramCode).Msg("Error importing major")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr != nil {
		return finalErr
	}

	for i := range ds.Students {
		rec := &ds.Students[i]
		if err := students.SaveRecord(ctx, rec); err != nil {
			lgr.Error().Err(err).Str("student", rec.Student.ID).Msg("Error importing student record")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Reference data imported.")
	}
	return finalErr
}
