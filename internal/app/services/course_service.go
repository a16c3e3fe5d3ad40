package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/pkg/apperrors"
	"github.com/ehimebase/babybase/internal/pkg/helpers"
)

// CourseService serves the e-learning catalogue and progress tracking
type CourseService struct {
	courses         CourseStore
	progress        ProgressStore
	recommendations RecommendationStore
	logger          zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, progress ProgressStore, recommendations RecommendationStore, logger zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, progress: progress, recommendations: recommendations, logger: logger}
}

// List returns every course with its module and lesson counts
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// Tree returns a course with its curriculums and lessons in order
func (s *CourseService) Tree(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courses.GetCourseTree(ctx, id)
}

// percent is floor(done*100/total); an empty course is 0%
func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}

// markCompleted flags completed lessons on the tree and returns (done, total)
func markCompleted(course *models.Course, completed []uuid.UUID) (int, int) {
	set := make(map[uuid.UUID]bool, len(completed))
	for _, id := range completed {
		set[id] = true
	}

	done, total := 0, 0
	for ci := range course.Curriculums {
		lessons := course.Curriculums[ci].Lessons
		for li := range lessons {
			total++
			if set[lessons[li].ID] {
				lessons[li].Completed = true
				done++
			}
		}
	}
	return done, total
}

func nextLesson(course *models.Course) *models.Lesson {
	for _, cur := range course.Curriculums {
		for _, l := range cur.Lessons {
			if !l.Completed {
				lesson := l
				return &lesson
			}
		}
	}
	return nil
}

// Progress returns the course tree annotated with the user's completion
func (s *CourseService) Progress(ctx context.Context, userID, courseID uuid.UUID) (*dto.CourseProgressResponse, error) {
	course, err := s.courses.GetCourseTree(ctx, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.progress.CompletedLessons(ctx, userID, &courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading progress: %w", err)
	}

	done, total := markCompleted(course, completed[courseID])
	return &dto.CourseProgressResponse{
		Course:           course,
		CompletedLessons: done,
		TotalLessons:     total,
		Percent:          percent(done, total),
	}, nil
}

// CompleteLesson marks a lesson as done for the user
func (s *CourseService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) error {
	courseID, err := s.courses.GetLessonCourseID(ctx, lessonID)
	if err != nil {
		return err
	}
	return s.progress.MarkComplete(ctx, userID, lessonID, courseID)
}

// ResetLesson clears the user's completion of a lesson
func (s *CourseService) ResetLesson(ctx context.Context, userID, lessonID uuid.UUID) error {
	if _, err := s.courses.GetLessonCourseID(ctx, lessonID); err != nil {
		return err
	}
	return s.progress.Reset(ctx, userID, lessonID)
}

// Dashboard summarises every course for the user and attaches their recommendations
func (s *CourseService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.LearningDashboard, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	completed, err := s.progress.CompletedLessons(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading progress: %w", err)
	}

	cards := make([]dto.DashboardCourse, 0, len(courses))
	for _, c := range courses {
		tree, err := s.courses.GetCourseTree(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		done, total := markCompleted(tree, completed[c.ID])
		cards = append(cards, dto.DashboardCourse{
			CourseID:         c.ID,
			Title:            c.Title,
			ThumbnailURL:     c.ThumbnailURL,
			CompletedLessons: done,
			TotalLessons:     total,
			Percent:          percent(done, total),
			NextLesson:       nextLesson(tree),
		})
	}

	recs, err := s.recommendations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading recommendations: %w", err)
	}
	return &dto.LearningDashboard{Courses: cards, Recommendations: recs}, nil
}

// CreateCourse adds a course
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error) {
	c := &models.Course{
		Title:        strings.TrimSpace(req.Title),
		Description:  helpers.NilIfEmpty(req.Description),
		ThumbnailURL: helpers.NilIfEmpty(req.ThumbnailURL),
		SortOrder:    req.SortOrder,
		Curriculums:  []models.Curriculum{},
	}
	if c.Title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}
	if err := s.courses.CreateCourse(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info().Str("courseID", c.ID.String()).Msg("Course created")
	return c, nil
}

// CreateCurriculum adds a module to a course
func (s *CourseService) CreateCurriculum(ctx context.Context, courseID uuid.UUID, req *dto.CurriculumRequest) (*models.Curriculum, error) {
	if _, err := s.courses.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	c := &models.Curriculum{
		CourseID:    courseID,
		Title:       strings.TrimSpace(req.Title),
		Description: helpers.NilIfEmpty(req.Description),
		SortOrder:   req.SortOrder,
	}
	if err := s.courses.CreateCurriculum(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateLesson adds a lesson to a module
func (s *CourseService) CreateLesson(ctx context.Context, curriculumID uuid.UUID, req *dto.LessonRequest) (*models.Lesson, error) {
	ok, err := s.courses.CurriculumExists(ctx, curriculumID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("curriculum not found")
	}
	l := &models.Lesson{
		CurriculumID:    curriculumID,
		Title:           strings.TrimSpace(req.Title),
		Content:         helpers.NilIfEmpty(req.Content),
		VideoURL:        helpers.NilIfEmpty(req.VideoURL),
		DurationMinutes: req.DurationMinutes,
		SortOrder:       req.SortOrder,
	}
	if err := s.courses.CreateLesson(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
