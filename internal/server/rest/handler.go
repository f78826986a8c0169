package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

type createTodoBody struct {
	Name    string `json:"name" binding:"required"`
	DueDate string `json:"dueDate" binding:"required"`
}

type updateTodoBody struct {
	Name    string `json:"name" binding:"required"`
	DueDate string `json:"dueDate" binding:"required"`
	Done    *bool  `json:"done" binding:"required"`
}

func (s *Server) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) GetTodos(c *gin.Context) {
	token, ok := s.bearer(c)
	if !ok {
		return
	}

	items, err := s.todos.ListTodos(c.Request.Context(), token)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) CreateTodo(c *gin.Context) {
	token, ok := s.bearer(c)
	if !ok {
		return
	}

	var body createTodoBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	item, err := s.todos.CreateTodo(c.Request.Context(),
		&models.CreateTodoRequest{Name: body.Name, DueDate: body.DueDate}, token)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (s *Server) UpdateTodo(c *gin.Context) {
	token, ok := s.bearer(c)
	if !ok {
		return
	}

	var body updateTodoBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}

	req := &models.UpdateTodoRequest{Name: body.Name, DueDate: body.DueDate, Done: *body.Done}
	if err := s.todos.UpdateTodo(c.Request.Context(), req, c.Param("todoId"), token); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (s *Server) DeleteTodo(c *gin.Context) {
	token, ok := s.bearer(c)
	if !ok {
		return
	}

	if err := s.todos.DeleteTodo(c.Request.Context(), c.Param("todoId"), token); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (s *Server) GenerateUploadURL(c *gin.Context) {
	token, ok := s.bearer(c)
	if !ok {
		return
	}

	url, err := s.todos.GenerateUploadURL(c.Request.Context(), c.Param("todoId"), token)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"uploadUrl": url})
}

// bearer extracts the token; on failure the 401 response is already written.
func (s *Server) bearer(c *gin.Context) (string, bool) {
	token, err := auth.ParseBearer(c.GetHeader(common.AuthorizationHeaderName))
	if err != nil {
		s.writeError(c, err)
		return "", false
	}
	return token, true
}

func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
	}
	c.String(status, err.Error())
}

func statusFor(err error) int {
	switch {
	case common.IsAuthError(err):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
