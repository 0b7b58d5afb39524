package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/virhant/planner/internal/core"
)

const dayFormat = "2006-01-02"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps the engine error taxonomy onto HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsValidation(err):
		status = http.StatusBadRequest
	case core.IsNotFound(err):
		status = http.StatusNotFound
	case core.IsInvalidTransition(err):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// Task handlers

func (s *Server) handleListTasks(c *gin.Context) {
	filter := core.TaskFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}

	if raw := c.Query("priority_level"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "priority_level must be an integer",
			})
			return
		}
		filter.PriorityLevel = &level
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "start_date must be YYYY-MM-DD",
			})
			return
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "end_date must be YYYY-MM-DD",
			})
			return
		}
		filter.EndDate = &t
	}

	tasks, err := s.engine.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tasks,
		"count":   len(tasks),
	})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req core.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	task, err := s.engine.CreateTask(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    task,
	})
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.engine.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
	})
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var req core.UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	task, err := s.engine.UpdateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
	})
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.engine.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted",
	})
}

// Progress handlers

func (s *Server) handleListProgress(c *gin.Context) {
	entries, err := s.engine.ListProgress(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"count":   len(entries),
	})
}

func (s *Server) handleAddProgress(c *gin.Context) {
	var req core.AddProgressRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	entry, err := s.engine.AddProgress(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    entry,
	})
}

// Analytics handlers

func (s *Server) handleSummary(c *gin.Context) {
	fromRaw := c.Query("from")
	toRaw := c.Query("to")
	if fromRaw == "" || toRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "from and to parameters required",
		})
		return
	}

	from, err := parseDateParam(fromRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "from must be YYYY-MM-DD",
		})
		return
	}
	to, err := parseDateParam(toRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "to must be YYYY-MM-DD",
		})
		return
	}

	summary, err := s.engine.Summary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

func (s *Server) handleTaskAnalytics(c *gin.Context) {
	analytics, err := s.engine.TaskAnalytics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    analytics,
	})
}

func (s *Server) handleDeadlines(c *gin.Context) {
	report, err := s.engine.Deadlines(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report,
	})
}

// Work state handlers

func (s *Server) handleListWorkStates(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	for _, raw := range []string{from, to} {
		if raw == "" {
			continue
		}
		if _, err := parseDateParam(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "from and to must be YYYY-MM-DD",
			})
			return
		}
	}

	states, err := s.engine.ListWorkStates(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    states,
		"count":   len(states),
	})
}

func (s *Server) handlePutWorkState(c *gin.Context) {
	var req core.WorkStateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	state, err := s.engine.PutWorkState(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    state,
	})
}

func parseDateParam(raw string) (time.Time, error) {
	return time.Parse(dayFormat, raw)
}
