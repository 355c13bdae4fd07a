package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"choreboard/internal/service"
)

type categoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.categorySvc.List(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) createCategory(c *gin.Context) {
	var body categoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	category, err := s.categorySvc.Create(c.Request.Context(), currentUser(c), service.CategoryInput{Name: body.Name, Color: body.Color})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body categoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	category, err := s.categorySvc.Update(c.Request.Context(), currentUser(c), id, service.CategoryInput{Name: body.Name, Color: body.Color})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.categorySvc.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
