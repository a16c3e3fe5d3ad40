package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ehimebase/babybase/internal/app/models/dto"
	"github.com/ehimebase/babybase/internal/app/services"
	"github.com/ehimebase/babybase/internal/middleware"
)

// CourseController serves the e-learning catalogue
type CourseController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{courseService: courseService, logger: logger}
}

// List returns all courses
// @Summary List courses
// @Tags learning
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, courses)
}

// Get returns a course with its modules and lessons
// @Summary Get a course tree
// @Tags learning
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	course, err := c.courseService.Tree(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, course)
}

// Progress returns the caller's completion of a course
// @Summary Course progress
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseProgressResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /courses/{id}/progress [get]
func (c *CourseController) Progress(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	res, err := c.courseService.Progress(ctx.Request.Context(), actor.UserID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}

// CompleteLesson marks a lesson done
// @Summary Complete a lesson
// @Tags learning
// @Security BearerAuth
// @Param id path string true "Lesson ID"
// @Success 204 "Completed"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{id}/complete [post]
func (c *CourseController) CompleteLesson(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.courseService.CompleteLesson(ctx.Request.Context(), actor.UserID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ResetLesson clears a lesson's completion
// @Summary Reset a lesson
// @Tags learning
// @Security BearerAuth
// @Param id path string true "Lesson ID"
// @Success 204 "Reset"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{id}/complete [delete]
func (c *CourseController) ResetLesson(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.courseService.ResetLesson(ctx.Request.Context(), actor.UserID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Dashboard summarises the caller's learning
// @Summary Learning dashboard
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.LearningDashboard}
// @Router /learning/dashboard [get]
func (c *CourseController) Dashboard(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	res, err := c.courseService.Dashboard(ctx.Request.Context(), actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, res)
}

// CreateCourse adds a course
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Router /admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, course)
}

// CreateCurriculum adds a module to a course
// @Summary Create a curriculum
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body dto.CurriculumRequest true "Curriculum"
// @Success 201 {object} dto.APIResponse{data=models.Curriculum}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id}/curriculums [post]
func (c *CourseController) CreateCurriculum(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CurriculumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	cur, err := c.courseService.CreateCurriculum(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, cur)
}

// CreateLesson adds a lesson to a module
// @Summary Create a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Curriculum ID"
// @Param request body dto.LessonRequest true "Lesson"
// @Success 201 {object} dto.APIResponse{data=models.Lesson}
// @Failure 404 {object} dto.ErrorResponse "Curriculum not found"
// @Router /admin/curriculums/{id}/lessons [post]
func (c *CourseController) CreateLesson(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err)
		return
	}
	lesson, err := c.courseService.CreateLesson(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, lesson)
}
