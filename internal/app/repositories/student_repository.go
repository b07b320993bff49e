package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/domain/mathplan"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
	"github.com/yigit/mathplan/internal/pkg/dberrors"
	"github.com/yigit/mathplan/internal/pkg/logger"
)

// StudentRepository handles students and their academic record tables.
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// WithTx returns a repository bound to tx.
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx, sb: r.sb}
}

// GetStudent returns a student with their majors or apperrors.ErrStudentNotFound.
func (r *StudentRepository) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	sql, args, err := r.sb.Select("id", "name", "created_at", "updated_at").
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("student", id).Msg("Error getting student")
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	s.Majors, err = r.listMajors(ctx, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StudentRepository) listMajors(ctx context.Context, studentID string) ([]string, error) {
	sql, args, err := r.sb.Select("program_code").
		From("student_majors").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("position", "program_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list student majors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list student majors: %w", err)
	}
	defer rows.Close()

	var majors []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan student major: %w", err)
		}
		majors = append(majors, code)
	}
	return majors, rows.Err()
}

// GetRecord loads a student and every completed, transfer and placement row.
func (r *StudentRepository) GetRecord(ctx context.Context, id string) (*models.StudentRecord, error) {
	student, err := r.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := &models.StudentRecord{Student: *student}

	if rec.Completed, err = r.listCompleted(ctx, id); err != nil {
		return nil, err
	}
	if rec.Transfers, err = r.listTransfers(ctx, id); err != nil {
		return nil, err
	}
	if rec.Placements, err = r.listPlacements(ctx, id); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *StudentRepository) listCompleted(ctx context.Context, studentID string) ([]mathplan.CompletedCourse, error) {
	sql, args, err := r.sb.Select("course_id", "grade").
		From("student_completed_courses").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build completed courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("student", studentID).Msg("Error listing completed courses")
		return nil, fmt.Errorf("failed to list completed courses: %w", err)
	}
	defer rows.Close()

	var out []mathplan.CompletedCourse
	for rows.Next() {
		var c mathplan.CompletedCourse
		if err := rows.Scan(&c.CourseID, &c.Grade); err != nil {
			return nil, fmt.Errorf("failed to scan completed course: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *StudentRepository) listTransfers(ctx context.Context, studentID string) ([]mathplan.TransferCredit, error) {
	sql, args, err := r.sb.Select("course_id", "transferred_id", "credits", "grade").
		From("student_transfer_credits").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer credits query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("student", studentID).Msg("Error listing transfer credits")
		return nil, fmt.Errorf("failed to list transfer credits: %w", err)
	}
	defer rows.Close()

	var out []mathplan.TransferCredit
	for rows.Next() {
		var t mathplan.TransferCredit
		if err := rows.Scan(&t.CourseID, &t.TransferredID, &t.Credits, &t.Grade); err != nil {
			return nil, fmt.Errorf("failed to scan transfer credit: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *StudentRepository) listPlacements(ctx context.Context, studentID string) ([]mathplan.PlacementResult, error) {
	sql, args, err := r.sb.Select("course_id", "challenge").
		From("student_placement_results").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build placement results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("student", studentID).Msg("Error listing placement results")
		return nil, fmt.Errorf("failed to list placement results: %w", err)
	}
	defer rows.Close()

	var out []mathplan.PlacementResult
	for rows.Next() {
		var p mathplan.PlacementResult
		if err := rows.Scan(&p.CourseID, &p.Challenge); err != nil {
			return nil, fmt.Errorf("failed to scan placement result: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveRecord upserts the student and replaces every record row. Run it inside a
// transaction so a partial record is never visible.
func (r *StudentRepository) SaveRecord(ctx context.Context, rec *models.StudentRecord) error {
	s := rec.Student
	sql, args, err := r.sb.Insert("students").
		Columns("id", "name").
		Values(s.ID, s.Name).
		Suffix("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert student query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("student", s.ID).Msg("Error upserting student")
		return fmt.Errorf("failed to upsert student: %w", err)
	}

	for _, table := range []string{"student_majors", "student_completed_courses", "student_transfer_credits", "student_placement_results"} {
		sql, args, err := r.sb.Delete(table).Where(squirrel.Eq{"student_id": s.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build clear %s query: %w", table, err)
		}
		if _, err := r.db.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if len(s.Majors) > 0 {
		q := r.sb.Insert("student_majors").Columns("student_id", "program_code", "position")
		for i, code := range s.Majors {
			q = q.Values(s.ID, code, i)
		}
		if err := r.exec(ctx, q); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: student %s names an unknown major", apperrors.ErrMajorNotFound, s.ID)
			}
			if dberrors.IsDuplicateKey(err) {
				return apperrors.NewValidationError("majors", "majors must be unique")
			}
			return fmt.Errorf("failed to insert student majors: %w", err)
		}
	}

	if len(rec.Completed) > 0 {
		q := r.sb.Insert("student_completed_courses").Columns("student_id", "course_id", "grade")
		for _, c := range rec.Completed {
			q = q.Values(s.ID, c.CourseID, c.Grade)
		}
		if err := r.exec(ctx, q); err != nil {
			return fmt.Errorf("failed to insert completed courses: %w", err)
		}
	}

	if len(rec.Transfers) > 0 {
		q := r.sb.Insert("student_transfer_credits").Columns("student_id", "course_id", "transferred_id", "credits", "grade")
		for _, t := range rec.Transfers {
			q = q.Values(s.ID, t.CourseID, t.TransferredID, t.Credits, t.Grade)
		}
		if err := r.exec(ctx, q); err != nil {
			return fmt.Errorf("failed to insert transfer credits: %w", err)
		}
	}

	if len(rec.Placements) > 0 {
		q := r.sb.Insert("student_placement_results").Columns("student_id", "course_id", "challenge")
		for _, p := range rec.Placements {
			q = q.Values(s.ID, p.CourseID, p.Challenge)
		}
		if err := r.exec(ctx, q); err != nil {
			return fmt.Errorf("failed to insert placement results: %w", err)
		}
	}

	return nil
}

func (r *StudentRepository) exec(ctx context.Context, q squirrel.InsertBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
