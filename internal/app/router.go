package app

import (
	"gimeldaled_backend/docs"
	"gimeldaled_backend/internal/config"
	"gimeldaled_backend/internal/middleware"
	"gimeldaled_backend/internal/model"

	"gimeldaled_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 学生自己的跟踪界面
		tracking := authGroup.Group("/tracking")
		{
			tracking.GET("/profile", c.tracking.GetMyProfile)
			tracking.PUT("/project", c.tracking.UpdateProject)
			tracking.POST("/proposal/upload", c.tracking.UploadProposal)
			tracking.GET("/reports", c.tracking.ListMyReports)
			tracking.POST("/reports", c.tracking.CreateReport)
			tracking.GET("/plan", c.tracking.ListMyPlan)
			tracking.POST("/plan", c.tracking.AddPlanItem)
			tracking.PUT("/plan/:id", c.tracking.UpdatePlanItem)
			tracking.DELETE("/plan/:id", c.tracking.DeletePlanItem)
		}

		// 教师端（admin 角色同样放行）
		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.GET("/students", c.teacher.ListStudents)
			teacher.GET("/students/:uid/reports", c.teacher.GetStudentReports)
			teacher.GET("/students/:uid/plan", c.teacher.GetStudentPlan)
			teacher.PUT("/reports/:id/notes", c.teacher.UpdateInstructorNotes)
		}

		// 权限管理：admin 角色且必须是引导管理员邮箱
		admin := authGroup.Group("/admin")
		admin.Use(middleware.AdminMiddleware(cfg))
		{
			admin.GET("/users", c.permission.GetUsers)
			admin.PUT("/users/:uid/role", c.permission.UpdateUserRole)
		}
	}
}
