package web

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/virhant/planner/internal/core"
)

// PlannerEngine defines the engine surface the handlers consume
type PlannerEngine interface {
	CreateTask(ctx context.Context, req core.CreateTaskRequest) (*core.Task, error)
	GetTask(ctx context.Context, id string) (*core.Task, error)
	ListTasks(ctx context.Context, filter core.TaskFilter) ([]core.Task, error)
	UpdateTask(ctx context.Context, id string, req core.UpdateTaskRequest) (*core.Task, error)
	DeleteTask(ctx context.Context, id string) error
	AddProgress(ctx context.Context, taskID string, req core.AddProgressRequest) (*core.ProgressEntry, error)
	ListProgress(ctx context.Context, taskID string) ([]core.ProgressEntry, error)
	Summary(ctx context.Context, from, to time.Time) (*core.AnalyticsSummary, error)
	TaskAnalytics(ctx context.Context, taskID string) (*core.TaskAnalytics, error)
	Deadlines(ctx context.Context, now time.Time) (*core.DeadlineReport, error)
	PutWorkState(ctx context.Context, req core.WorkStateRequest) (*core.WorkState, error)
	ListWorkStates(ctx context.Context, from, to string) ([]core.WorkState, error)
}

// Server is the planner web server
type Server struct {
	engine PlannerEngine
	router *gin.Engine
}

// NewServer creates a new web server. corsOrigins lists the origins allowed
// to call the API from a browser; empty disables CORS headers.
func NewServer(engine PlannerEngine, corsOrigins []string) *Server {
	router := gin.Default()

	s := &Server{
		engine: engine,
		router: router,
	}

	if len(corsOrigins) > 0 {
		router.Use(corsMiddleware(corsOrigins))
	}

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.GET("/tasks/:id/progress", s.handleListProgress)
		api.POST("/tasks/:id/progress", s.handleAddProgress)

		api.GET("/deadlines", s.handleDeadlines)

		api.GET("/analytics/summary", s.handleSummary)
		api.GET("/analytics/task/:id", s.handleTaskAnalytics)

		api.GET("/workstate", s.handleListWorkStates)
		api.PUT("/workstate", s.handlePutWorkState)
	}

	return s
}

// Run starts the web server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// corsMiddleware sets the CORS headers for the configured origins
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
