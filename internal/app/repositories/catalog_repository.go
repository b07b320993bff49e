package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/mathplan/internal/app/models"
	"github.com/yigit/mathplan/internal/pkg/apperrors"
	"github.com/yigit/mathplan/internal/pkg/logger"
)

// CatalogRepository handles the reference tables: courses, groups, prerequisites and majors.
type CatalogRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db DBTX) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// WithTx returns a repository bound to tx.
func (r *CatalogRepository) WithTx(tx pgx.Tx) *CatalogRepository {
	return &CatalogRepository{db: tx, sb: r.sb}
}

var courseColumns = []string{"id", "label", "title", "credits", "catalog_url"}

func scanCourse(row pgx.Row) (models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.Label, &c.Title, &c.Credits, &c.CatalogURL)
	return c, err
}

// ListCourses returns every course ordered by id.
func (r *CatalogRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses").OrderBy("id").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// GetCourse returns one course or apperrors.ErrCourseNotFound.
func (r *CatalogRepository) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("course", id).Msg("Error getting course")
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return &c, nil
}

// UpsertCourse inserts a course or updates it in place.
func (r *CatalogRepository) UpsertCourse(ctx context.Context, c models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(c.ID, c.Label, c.Title, c.Credits, c.CatalogURL).
		Suffix("ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label, title = EXCLUDED.title, " +
			"credits = EXCLUDED.credits, catalog_url = EXCLUDED.catalog_url").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("course", c.ID).Msg("Error upserting course")
		return fmt.Errorf("failed to upsert course %s: %w", c.ID, err)
	}
	return nil
}

// ListCourseGroups returns every course group ordered by code.
func (r *CatalogRepository) ListCourseGroups(ctx context.Context) ([]models.CourseGroup, error) {
	sql, args, err := r.sb.Select("code", "required_credits", "lowest_last_course", "course_ids").
		From("course_groups").
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list course groups query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list course groups query")
		return nil, fmt.Errorf("failed to list course groups: %w", err)
	}
	defer rows.Close()

	var groups []models.CourseGroup
	for rows.Next() {
		var g models.CourseGroup
		if err := rows.Scan(&g.Code, &g.RequiredCredits, &g.LowestLastCourse, &g.CourseIDs); err != nil {
			return nil, fmt.Errorf("failed to scan course group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course groups: %w", err)
	}

	return groups, nil
}

// UpsertCourseGroup inserts a course group or replaces its definition.
func (r *CatalogRepository) UpsertCourseGroup(ctx context.Context, g models.CourseGroup) error {
	sql, args, err := r.sb.Insert("course_groups").
		Columns("code", "required_credits", "lowest_last_course", "course_ids").
		Values(g.Code, g.RequiredCredits, g.LowestLastCourse, g.CourseIDs).
		Suffix("ON CONFLICT (code) DO UPDATE SET required_credits = EXCLUDED.required_credits, " +
			"lowest_last_course = EXCLUDED.lowest_last_course, course_ids = EXCLUDED.course_ids").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert course group query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("group", g.Code).Msg("Error upserting course group")
		return fmt.Errorf("failed to upsert course group %s: %w", g.Code, err)
	}
	return nil
}

// ListPrerequisites returns every prerequisite rule ordered by course and position.
func (r *CatalogRepository) ListPrerequisites(ctx context.Context) ([]models.Prerequisite, error) {
	sql, args, err := r.sb.Select("id", "course_id", "position", "alternatives", "minimum_grades", "may_be_concurrent").
		From("course_prerequisites").
		OrderBy("course_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list prerequisites query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list prerequisites query")
		return nil, fmt.Errorf("failed to list prerequisites: %w", err)
	}
	defer rows.Close()

	var rules []models.Prerequisite
	for rows.Next() {
		var p models.Prerequisite
		if err := rows.Scan(&p.ID, &p.CourseID, &p.Position, &p.Alternatives, &p.MinimumGrades, &p.MayBeConcurrent); err != nil {
			return nil, fmt.Errorf("failed to scan prerequisite: %w", err)
		}
		rules = append(rules, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prerequisites: %w", err)
	}

	return rules, nil
}

// UpsertPrerequisite inserts the rule at (course, position) or replaces it.
func (r *CatalogRepository) UpsertPrerequisite(ctx context.Context, p models.Prerequisite) error {
	grades := p.MinimumGrades
	if grades == nil {
		grades = []*float64{}
	}

	sql, args, err := r.sb.Insert("course_prerequisites").
		Columns("course_id", "position", "alternatives", "minimum_grades", "may_be_concurrent").
		Values(p.CourseID, p.Position, p.Alternatives, grades, p.MayBeConcurrent).
		Suffix("ON CONFLICT (course_id, position) DO UPDATE SET alternatives = EXCLUDED.alternatives, " +
			"minimum_grades = EXCLUDED.minimum_grades, may_be_concurrent = EXCLUDED.may_be_concurrent").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert prerequisite query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("course", p.CourseID).Int("position", p.Position).Msg("Error upserting prerequisite")
		return fmt.Errorf("failed to upsert prerequisite of %s: %w", p.CourseID, err)
	}
	return nil
}

var majorColumns = []string{"program_code", "name", "semester1", "semester2", "additional"}

func scanMajor(row pgx.Row) (models.MajorRequirement, error) {
	var m models.MajorRequirement
	err := row.Scan(&m.ProgramCode, &m.Name, &m.Semester1, &m.Semester2, &m.Additional)
	return m, err
}

// ListMajors returns every major requirement ordered by program code.
func (r *CatalogRepository) ListMajors(ctx context.Context) ([]models.MajorRequirement, error) {
	sql, args, err := r.sb.Select(majorColumns...).From("major_requirements").OrderBy("program_code").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list majors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list majors query")
		return nil, fmt.Errorf("failed to list majors: %w", err)
	}
	defer rows.Close()

	var majors []models.MajorRequirement
	for rows.Next() {
		m, err := scanMajor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan major: %w", err)
		}
		majors = append(majors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating majors: %w", err)
	}

	return majors, nil
}

// GetMajor returns one major or apperrors.ErrMajorNotFound.
func (r *CatalogRepository) GetMajor(ctx context.Context, programCode string) (*models.MajorRequirement, error) {
	sql, args, err := r.sb.Select(majorColumns...).
		From("major_requirements").
		Where(squirrel.Eq{"program_code": programCode}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get major query: %w", err)
	}

	m, err := scanMajor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMajorNotFound
		}
		logger.Error().Err(err).Str("program", programCode).Msg("Error getting major")
		return nil, fmt.Errorf("failed to get major: %w", err)
	}
	return &m, nil
}

// UpsertMajor inserts a major requirement or updates its slots.
func (r *CatalogRepository) UpsertMajor(ctx context.Context, m models.MajorRequirement) error {
	sql, args, err := r.sb.Insert("major_requirements").
		Columns(majorColumns...).
		Values(m.ProgramCode, m.Name, m.Semester1, m.Semester2, m.Additional).
		Suffix("ON CONFLICT (program_code) DO UPDATE SET name = EXCLUDED.name, semester1 = EXCLUDED.semester1, " +
			"semester2 = EXCLUDED.semester2, additional = EXCLUDED.additional").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert major query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("program", m.ProgramCode).Msg("Error upserting major")
		return fmt.Errorf("failed to upsert major %s: %w", m.ProgramCode, err)
	}
	return nil
}
