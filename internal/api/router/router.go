package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tictac1213/JobNotification/config"
	"github.com/tictac1213/JobNotification/internal/api/handler"
	"github.com/tictac1213/JobNotification/internal/api/middleware"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/pkg/jwt"
	"github.com/tictac1213/JobNotification/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(5 << 20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Public routes.
		auth := api.Group("/auth")
		{
			auth.POST("/signup", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Signup)
			auth.POST("/login", middleware.RateLimit(rdb, 20, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}
		api.GET("/courses", h.Course.List)
		api.GET("/courses/:id", h.Course.GetByID)

		// Authenticated routes.
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			users := authorized.Group("/users")
			{
				users.GET("/me", h.Auth.GetMe)
				users.PUT("/me", h.Auth.UpdateProfile)
				users.PUT("/me/email-preferences", h.Auth.UpdateEmailPreferences)
			}

			companies := authorized.Group("/companies")
			{
				companies.GET("", h.Company.List)
				companies.GET("/:id", h.Company.GetByID)
				companies.GET("/:id/tasks", h.Company.ListTasks)
				companies.POST("", middleware.RoleAuth(model.RoleAdmin), h.Company.Create)
				companies.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Company.Update)
				companies.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Company.Delete)
				companies.POST("/:id/tasks", middleware.RoleAuth(model.RoleAdmin), h.Company.AddTask)
			}

			tasks := authorized.Group("/tasks")
			{
				tasks.GET("/calendar.ics", h.Task.ExportCalendar)
				tasks.GET("/:id", h.Task.GetByID)
				tasks.POST("", middleware.RoleAuth(model.RoleAdmin), h.Task.Create)
				tasks.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Task.Update)
				tasks.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Task.Delete)
				tasks.POST("/:id/complete", middleware.RoleAuth(model.RoleAdmin), h.Task.MarkCompleted)
			}

			authorized.POST("/courses", middleware.RoleAuth(model.RoleAdmin), h.Course.Create)

			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.List)
				announcements.GET("/:id", h.Announcement.GetByID)
				announcements.POST("", middleware.RoleAuth(model.RoleAdmin), h.Announcement.Create)
				announcements.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Announcement.Update)
				announcements.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Announcement.Delete)
			}

			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/dashboard", h.Admin.DashboardStats)
				admin.GET("/students", h.Admin.ListStudents)
				admin.GET("/students/pending", h.Admin.ListPending)
				admin.POST("/students/:id/approve", h.Admin.Approve)
				admin.POST("/students/:id/reject", h.Admin.Reject)
				admin.POST("/students/import", h.Admin.ImportStudents)
				admin.POST("/reminders/trigger", h.Admin.TriggerReminders)
			}
		}
	}

	return r
}
