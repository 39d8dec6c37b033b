package app

import (
	"taru_backend/docs"
	"taru_backend/internal/config"
	"taru_backend/internal/middleware"
	"taru_backend/internal/model"

	"taru_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerParentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// student id + email pairs shown on the parent signup form
		public.GET("/students", c.user.ListStudents)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.GET("/user/preferences", c.user.GetPreferences)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	rg.GET("/learning-paths", c.learningPath.GetLearningPaths)
	rg.GET("/modules/:moduleId", c.learningPath.GetModule)

	rg.GET("/announcements", c.announcement.GetAnnouncements)

	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/user/setup-name", c.user.SetupName)
		student.PUT("/user/preferences", c.user.UpdatePreferences)
		student.GET("/progress", c.progress.GetProgress)
		student.POST("/progress/activity", c.progress.SubmitActivity)
		student.GET("/dashboard", c.progress.GetDashboard)
		student.GET("/analysis", c.analysis.GetAnalysis)
		student.GET("/recommendations", c.analysis.GetRecommendations)
	}
}

func (a *App) registerParentRoutes(rg *gin.RouterGroup, c *controllers) {
	parent := rg.Group("/parent")
	parent.Use(middleware.RoleMiddleware(model.Parent))
	{
		parent.GET("/aspiration", c.parent.GetAspiration)
		parent.PUT("/aspiration", c.parent.UpdateAspiration)
		parent.GET("/report", c.parent.GetStudentReport)
		parent.POST("/unlink", c.parent.UnlinkStudent)
		parent.POST("/relink", c.parent.RelinkStudent)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/students", c.teacher.GetStudents)
		teacher.POST("/announcements", c.announcement.CreateAnnouncement)
	}
}
