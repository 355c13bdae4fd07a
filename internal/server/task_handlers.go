package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"choreboard/internal/schedule"
	"choreboard/internal/service"
)

type taskRequest struct {
	Name         string     `json:"name" binding:"required"`
	Notes        string     `json:"notes"`
	CategoryID   *uint      `json:"category_id"`
	MemberID     *uint      `json:"member_id"`
	IsRecurring  bool       `json:"is_recurring"`
	IntervalDays *int       `json:"interval_days"`
	DueDate      *time.Time `json:"due_date"`
}

func (r taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Name:         r.Name,
		Notes:        r.Notes,
		CategoryID:   r.CategoryID,
		MemberID:     r.MemberID,
		IsRecurring:  r.IsRecurring,
		IntervalDays: r.IntervalDays,
		DueDate:      r.DueDate,
	}
}

// referenceDay reads the optional ?today=YYYY-MM-DD override used for
// deterministic listings; defaults to the current local day.
func referenceDay(c *gin.Context) time.Time {
	if raw := c.Query("today"); raw != "" {
		if day, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
			return day
		}
	}
	return schedule.Today()
}

// listTasks returns the active board (?all=true includes completed one-time
// tasks, without status).
func (s *Server) listTasks(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("all") == "true" {
		tasks, err := s.taskSvc.ListAll(ctx, currentUser(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
		return
	}

	tasks, err := s.taskSvc.ListActive(ctx, currentUser(c), referenceDay(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) createTask(c *gin.Context) {
	var body taskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	task, err := s.taskSvc.Create(c.Request.Context(), currentUser(c), body.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) getTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := s.taskSvc.Get(c.Request.Context(), currentUser(c), id, referenceDay(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) updateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body taskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	task, err := s.taskSvc.Update(c.Request.Context(), currentUser(c), id, body.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.taskSvc.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
