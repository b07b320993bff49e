package seed

import (
	"context"

	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
)

// A Dataset can stand in for the catalog and student repositories, which lets plans be
// computed offline from a fixture file.

func (ds *Dataset) ListCourses(ctx context.Context) ([]models.Course, error) {
	return ds.Courses, nil
}

func (ds *Dataset) ListCourseGroups(ctx context.Context) ([]models.CourseGroup, error) {
	return ds.Groups, nil
}

func (ds *Dataset) ListPrerequisites(ctx context.Context) ([]models.Prerequisite, error) {
	return ds.Prerequisites, nil
}

func (ds *Dataset) ListMajors(ctx context.Context) ([]models.MajorRequirement, error) {
	return ds.Majors, nil
}

// GetRecord returns the student record with the given id.
func (ds *Dataset) GetRecord(ctx context.Context, id string) (*models.StudentRecord, error) {
	for i := range ds.Students {
		if ds.Students[i].Student.ID == id {
			return &ds.Students[i], nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}
