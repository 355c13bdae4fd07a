package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"choreboard/internal/service"
)

type completionRequest struct {
	MemberID    *uint      `json:"member_id"`
	CompletedAt *time.Time `json:"completed_at"`
	Notes       string     `json:"notes"`
}

func (s *Server) completeTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body completionRequest
	// An empty body is fine: completion defaults to "now, by nobody in
	// particular".
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}
	completion, err := s.historySvc.Complete(c.Request.Context(), currentUser(c), id, service.CompletionInput{
		MemberID:    body.MemberID,
		CompletedAt: body.CompletedAt,
		Notes:       body.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, completion)
}

func (s *Server) listCompletions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	completions, err := s.historySvc.ListForTask(c.Request.Context(), currentUser(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, completions)
}

func (s *Server) deleteCompletion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.historySvc.DeleteCompletion(c.Request.Context(), currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) clearHistory(c *gin.Context) {
	if err := s.historySvc.ClearHistory(c.Request.Context(), currentUser(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
