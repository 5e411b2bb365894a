package routes

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/auth"
	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	tokens *auth.TokenManager,
	users services.UserService,
) *gin.Engine {

	// ---- public
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.Refresh)
	r.GET("/healthz", handlers.HealthCheck)

	// ---- protected: the bearer guard runs before anything else
	protected := r.Group("/", middleware.Auth(tokens, users))

	protected.GET("/me", authHandler.Me)

	tasks := protected.Group("/tasks")
	{
		tasks.GET("/dashboard", taskHandler.Dashboard)

		tasks.GET("", taskHandler.List)
		tasks.POST("", taskHandler.Create)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	return r
}
