// Package server exposes the service over HTTP with gin.
package server

import (
	"github.com/gin-gonic/gin"

	"choreboard/internal/service"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	authSvc     *service.AuthService
	taskSvc     *service.TaskService
	categorySvc *service.CategoryService
	memberSvc   *service.MemberService
	historySvc  *service.HistoryService
}

func New(authSvc *service.AuthService, taskSvc *service.TaskService, categorySvc *service.CategoryService, memberSvc *service.MemberService, historySvc *service.HistoryService) *Server {
	return &Server{
		authSvc:     authSvc,
		taskSvc:     taskSvc,
		categorySvc: categorySvc,
		memberSvc:   memberSvc,
		historySvc:  historySvc,
	}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), Metrics())

	router.GET("/health", s.health)
	router.GET("/metrics", MetricsHandler())

	router.POST("/api/register", s.register)
	router.POST("/api/login", s.login)

	api := router.Group("/api")
	api.Use(s.Auth())
	{
		api.GET("/tasks", s.listTasks)
		api.POST("/tasks", s.createTask)
		api.GET("/tasks/:id", s.getTask)
		api.PUT("/tasks/:id", s.updateTask)
		api.DELETE("/tasks/:id", s.deleteTask)
		api.POST("/tasks/:id/complete", s.completeTask)
		api.GET("/tasks/:id/completions", s.listCompletions)

		api.DELETE("/completions/:id", s.deleteCompletion)
		api.DELETE("/history", s.clearHistory)

		api.GET("/categories", s.listCategories)
		api.POST("/categories", s.createCategory)
		api.PUT("/categories/:id", s.updateCategory)
		api.DELETE("/categories/:id", s.deleteCategory)

		api.GET("/members", s.listMembers)
		api.POST("/members", s.createMember)
		api.PUT("/members/:id", s.updateMember)
		api.DELETE("/members/:id", s.deleteMember)

		api.PUT("/me/telegram", s.setTelegramChat)
	}

	return router
}
