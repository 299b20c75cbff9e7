package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkarpov/taskman-server/internal/api/http/handler"
	"github.com/dkarpov/taskman-server/internal/api/http/middleware"
	"github.com/dkarpov/taskman-server/internal/logger"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authHandler  *handler.Auth
	taskHandler  *handler.Task
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	taskService handler.TaskService,
	tokens middleware.TokenParser,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:  handler.NewAuth(authService, logger),
		taskHandler:  handler.NewTask(taskService, logger),
		authenticate: middleware.NewAuthenticate(tokens, logger),
		logging:      middleware.NewLogging(logger),
	}
}

// Register builds the engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), r.logging.Handle())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Task Manager API running")
	})
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", r.authHandler.Register)
		auth.POST("/login", r.authHandler.Login)
	}

	tasks := api.Group("/tasks")
	tasks.Use(r.authenticate.Handle())
	{
		tasks.GET("", r.taskHandler.List)
		tasks.POST("", r.taskHandler.Create)
		tasks.GET("/:id", r.taskHandler.Get)
		tasks.PUT("/:id", r.taskHandler.Update)
		tasks.DELETE("/:id", r.taskHandler.Delete)
	}

	return engine
}
