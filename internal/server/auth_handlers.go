package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var body credentialsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	user, err := s.authSvc.Register(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var body credentialsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	token, err := s.authSvc.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) setTelegramChat(c *gin.Context) {
	var body struct {
		ChatID int64 `json:"chat_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := s.authSvc.SetTelegramChat(c.Request.Context(), currentUser(c), body.ChatID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
