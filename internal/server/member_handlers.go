package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type memberRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *Server) listMembers(c *gin.Context) {
	members, err := s.memberSvc.List(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (s *Server) createMember(c *gin.Context) {
	var body memberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	member, err := s.memberSvc.Create(c.Request.Context(), currentUser(c), body.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (s *Server) updateMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body memberRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	member, err := s.memberSvc.Update(c.Request.Context(), currentUser(c), id, body.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (s *Server) deleteMember(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.memberSvc.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
