package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/pkg/logger"
)

// CourseRepository handles courses, curriculums and lessons
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db, sb: psql}
}

var courseColumns = []string{
	"c.id", "c.title", "c.description", "c.thumbnail_url", "c.sort_order", "c.created_at",
	"(SELECT COUNT(*) FROM course_curriculums cc WHERE cc.course_id = c.id) AS curriculum_count",
	"(SELECT COUNT(*) FROM course_lessons l JOIN course_curriculums cc ON cc.id = l.curriculum_id WHERE cc.course_id = c.id) AS lesson_count",
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.ThumbnailURL, &c.SortOrder, &c.CreatedAt, &c.CurriculumCount, &c.LessonCount); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCourses returns all courses ordered by sort_order then creation time
func (r *CourseRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses c").OrderBy("c.sort_order ASC", "c.created_at ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	out := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetCourse returns a course without its tree
func (r *CourseRepository) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses c").Where(idEq("c.id", id)).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return c, nil
}

// GetCourseTree returns a course with its curriculums and lessons in sort order
func (r *CourseRepository) GetCourseTree(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	course, err := r.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.Select("id", "course_id", "title", "description", "sort_order").
		From("course_curriculums").Where(idEq("course_id", id)).OrderBy("sort_order ASC", "title ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build curriculums query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error querying curriculums")
		return nil, fmt.Errorf("error querying curriculums: %w", err)
	}
	index := make(map[uuid.UUID]int)
	course.Curriculums = []models.Curriculum{}
	for rows.Next() {
		var cur models.Curriculum
		if err := rows.Scan(&cur.ID, &cur.CourseID, &cur.Title, &cur.Description, &cur.SortOrder); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning curriculum row: %w", err)
		}
		cur.Lessons = []models.Lesson{}
		index[cur.ID] = len(course.Curriculums)
		course.Curriculums = append(course.Curriculums, cur)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sql, args, err = r.sb.Select("l.id", "l.curriculum_id", "l.title", "l.content", "l.video_url", "l.duration_minutes", "l.sort_order").
		From("course_lessons l").Join("course_curriculums cc ON cc.id = l.curriculum_id").
		Where(idEq("cc.course_id", id)).OrderBy("l.sort_order ASC", "l.title ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lessons query: %w", err)
	}
	rows, err = r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error querying lessons")
		return nil, fmt.Errorf("error querying lessons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.CurriculumID, &l.Title, &l.Content, &l.VideoURL, &l.DurationMinutes, &l.SortOrder); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		if i, ok := index[l.CurriculumID]; ok {
			course.Curriculums[i].Lessons = append(course.Curriculums[i].Lessons, l)
		}
	}
	return course, rows.Err()
}

// CreateCourse inserts a course
func (r *CourseRepository) CreateCourse(ctx context.Context, c *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "description", "thumbnail_url", "sort_order").
		Values(c.Title, c.Description, c.ThumbnailURL, c.SortOrder).
		Suffix("RETURNING id, created_at").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		logger.Error().Err(err).Str("title", c.Title).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// CreateCurriculum inserts a curriculum into a course
func (r *CourseRepository) CreateCurriculum(ctx context.Context, c *models.Curriculum) error {
	sql, args, err := r.sb.Insert("course_curriculums").
		Columns("course_id", "title", "description", "sort_order").
		Values(c.CourseID, c.Title, c.Description, c.SortOrder).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create curriculum query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID); err != nil {
		logger.Error().Err(err).Str("courseID", c.CourseID.String()).Msg("Error executing create curriculum query")
		return fmt.Errorf("error creating curriculum: %w", err)
	}
	c.Lessons = []models.Lesson{}
	return nil
}

// CreateLesson inserts a lesson into a curriculum
func (r *CourseRepository) CreateLesson(ctx context.Context, l *models.Lesson) error {
	sql, args, err := r.sb.Insert("course_lessons").
		Columns("curriculum_id", "title", "content", "video_url", "duration_minutes", "sort_order").
		Values(l.CurriculumID, l.Title, l.Content, l.VideoURL, l.DurationMinutes, l.SortOrder).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create lesson query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&l.ID); err != nil {
		logger.Error().Err(err).Str("curriculumID", l.CurriculumID.String()).Msg("Error executing create lesson query")
		return fmt.Errorf("error creating lesson: %w", err)
	}
	return nil
}

// CurriculumExists reports whether a curriculum id is known
func (r *CourseRepository) CurriculumExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM course_curriculums WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking curriculum: %w", err)
	}
	return exists, nil
}

// GetLessonCourseID returns the course a lesson belongs to
func (r *CourseRepository) GetLessonCourseID(ctx context.Context, lessonID uuid.UUID) (uuid.UUID, error) {
	var courseID uuid.UUID
	err := r.db.QueryRow(ctx,
		`SELECT cc.course_id FROM course_lessons l JOIN course_curriculums cc ON cc.id = l.curriculum_id WHERE l.id = $1`,
		lessonID).Scan(&courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrNotFound
		}
		logger.Error().Err(err).Str("lessonID", lessonID.String()).Msg("Error resolving lesson course")
		return uuid.Nil, fmt.Errorf("error resolving lesson: %w", err)
	}
	return courseID, nil
}

// CountCourses returns the number of courses
func (r *CourseRepository) CountCourses(ctx context.Context) (int64, error) {
	return count(ctx, r.db, r.sb.Select("COUNT(*)").From("courses"))
}
