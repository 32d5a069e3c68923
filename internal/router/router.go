package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/supertask-api/internal/constants"
	"github.com/yukikurage/supertask-api/internal/handlers"
	"github.com/yukikurage/supertask-api/internal/middleware"
	"github.com/yukikurage/supertask-api/internal/repository"
	"go.uber.org/zap"
)

// Handlers groups everything the routes are bound to
type Handlers struct {
	Auth      *handlers.AuthHandler
	Task      *handlers.TaskHandler
	Category  *handlers.CategoryHandler
	Dashboard *handlers.DashboardHandler
	Health    *handlers.HealthHandler
}

// Dependencies needed by the route middleware
type Dependencies struct {
	Logger       *zap.Logger
	SessionStore sessions.Store
	Tokens       middleware.TokenParser
	TaskRepo     repository.TaskRepository
	CategoryRepo repository.CategoryRepository
}

// New builds the gin engine with every API route registered
func New(h Handlers, deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Language(),
		middleware.GinZapMiddleware(deps.Logger),
		sessions.Sessions(constants.SessionCookieName, deps.SessionStore),
	)

	r.GET("/", h.Health.Home)
	r.GET("/health", h.Health.Health)

	requireAuth := middleware.RequireAuth(deps.Tokens)
	taskOwner := middleware.RequireTaskOwnership(deps.TaskRepo)
	categoryOwner := middleware.RequireCategoryOwnership(deps.CategoryRepo)

	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.GET("/user", requireAuth, h.Auth.GetCurrentUser)
			auth.GET("/profile", requireAuth, h.Auth.GetCurrentUser)
			auth.PATCH("/profile", requireAuth, h.Auth.UpdateProfile)
			auth.POST("/change-password", requireAuth, h.Auth.ChangePassword)
		}

		// Category routes (protected)
		categories := api.Group("/categories")
		categories.Use(requireAuth)
		{
			categories.GET("", h.Category.ListCategories)
			categories.POST("", h.Category.CreateCategory)
			categories.GET("/:id", categoryOwner, h.Category.GetCategory)
			categories.PUT("/:id", categoryOwner, h.Category.ReplaceCategory)
			categories.PATCH("/:id", categoryOwner, h.Category.UpdateCategory)
			categories.DELETE("/:id", categoryOwner, h.Category.DeleteCategory)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", h.Task.ListTasks)
			tasks.POST("", h.Task.CreateTask)
			tasks.GET("/:id", taskOwner, h.Task.GetTask)
			tasks.PUT("/:id", taskOwner, h.Task.ReplaceTask)
			tasks.PATCH("/:id", taskOwner, h.Task.UpdateTask)
			tasks.DELETE("/:id", taskOwner, h.Task.DeleteTask)
			tasks.PATCH("/:id/toggle-status", taskOwner, h.Task.ToggleTaskStatus)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(requireAuth)
		{
			dashboard.GET("/stats", h.Dashboard.Stats)
			dashboard.GET("/quote", h.Dashboard.Quote)
		}
	}

	return r
}
