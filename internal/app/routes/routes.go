package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ehimebase/babybase/internal/app/controllers"
	"github.com/ehimebase/babybase/internal/app/models"
	"github.com/ehimebase/babybase/internal/middleware"
	"github.com/ehimebase/babybase/internal/pkg/websocket"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth           *controllers.AuthController
	Profile        *controllers.ProfileController
	Organization   *controllers.OrganizationController
	Job            *controllers.JobController
	Interaction    *controllers.InteractionController
	Application    *controllers.ApplicationController
	Scout          *controllers.ScoutController
	Media          *controllers.MediaController
	Course         *controllers.CourseController
	Recommendation *controllers.RecommendationController
	AI             *controllers.AIController
	Admin          *controllers.AdminController
	Notifications  *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	if ctrl.Notifications != nil {
		router.GET("/ws/notifications", ctrl.Notifications.HandleConnection)
	}

	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	public := v1.Group("")
	public.Use(authMiddleware.OptionalJWT())
	{
		public.GET("/organizations", ctrl.Organization.List)
		public.GET("/organizations/:id", ctrl.Organization.Get)
		public.GET("/jobs", ctrl.Job.List)
		public.GET("/jobs/:id", ctrl.Job.Get)
		public.GET("/media", ctrl.Media.List)
		public.GET("/courses", ctrl.Course.List)
		public.GET("/courses/:id", ctrl.Course.Get)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/me", ctrl.Profile.GetMe)
			profiles.PUT("/me", ctrl.Profile.UpdateMe)
			profiles.GET("/:id", ctrl.Profile.GetByID)
		}

		authenticated.POST("/interactions/toggle", ctrl.Interaction.Toggle)
		authenticated.GET("/interactions", ctrl.Interaction.List)

		// Learning
		authenticated.GET("/courses/:id/progress", ctrl.Course.Progress)
		authenticated.POST("/lessons/:id/complete", ctrl.Course.CompleteLesson)
		authenticated.DELETE("/lessons/:id/complete", ctrl.Course.ResetLesson)
		authenticated.GET("/learning/dashboard", ctrl.Course.Dashboard)
		authenticated.GET("/recommendations", ctrl.Recommendation.List)
		authenticated.POST("/ai/course-recommendation", ctrl.AI.CourseRecommendation)

		students := authenticated.Group("")
		students.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			students.POST("/jobs/:id/apply", ctrl.Application.Apply)
			students.GET("/applications/mine", ctrl.Application.Mine)
			students.GET("/scouts/received", ctrl.Scout.Received)
			students.POST("/recommendations/generate", ctrl.Recommendation.Generate)
		}

		// Company admins; system admins pass every membership check
		companies := authenticated.Group("")
		companies.Use(authMiddleware.RoleRequired(models.RoleCompanyAdmin, models.RoleSystemAdmin))
		{
			companies.GET("/organizations/mine", ctrl.Organization.Mine)
			companies.POST("/organizations", ctrl.Organization.Create)
			companies.PUT("/organizations/:id", ctrl.Organization.Update)
			companies.GET("/organizations/:id/applications", ctrl.Application.ListForOrganization)

			companies.POST("/jobs", ctrl.Job.Create)
			companies.PUT("/jobs/:id", ctrl.Job.Update)
			companies.DELETE("/jobs/:id", ctrl.Job.Delete)
			companies.PATCH("/applications/:id/status", ctrl.Application.UpdateStatus)

			companies.POST("/scouts", ctrl.Scout.Scout)

			companies.POST("/media", ctrl.Media.Upload)
			companies.DELETE("/media/:id", ctrl.Media.Delete)

			companies.POST("/ai/organization-profile", ctrl.AI.OrganizationProfile)
			companies.POST("/ai/job-description", ctrl.AI.JobDescription)
		}

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleSystemAdmin))
		{
			admin.GET("/stats", ctrl.Admin.Stats)
			admin.GET("/users", ctrl.Admin.Users)
			admin.DELETE("/jobs/:id", ctrl.Admin.DeleteJob)
			admin.GET("/organizations", ctrl.Admin.Organizations)
			admin.PATCH("/organizations/:id/status", ctrl.Admin.SetOrganizationStatus)
			admin.PATCH("/organizations/:id/premium", ctrl.Admin.SetOrganizationPremium)
			admin.GET("/applications/summary", ctrl.Admin.ApplicationsSummary)

			admin.POST("/courses", ctrl.Course.CreateCourse)
			admin.POST("/courses/:id/curriculums", ctrl.Course.CreateCurriculum)
			admin.POST("/curriculums/:id/lessons", ctrl.Course.CreateLesson)
		}
	}
}
