// Package rest exposes the todo use cases over HTTP/JSON with gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/authorizer"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// TodoService is the business logic behind the handlers. Tokens are passed
// through raw; the service verifies them.
type TodoService interface {
	ListTodos(ctx context.Context, token string) ([]*models.TodoItem, error)
	CreateTodo(ctx context.Context, req *models.CreateTodoRequest, token string) (*models.TodoItem, error)
	UpdateTodo(ctx context.Context, req *models.UpdateTodoRequest, todoID, token string) error
	DeleteTodo(ctx context.Context, todoID, token string) error
	GenerateUploadURL(ctx context.Context, todoID, token string) (string, error)
}

// RequestAuthorizer decides whether a request may reach the /todos routes.
type RequestAuthorizer interface {
	Authorize(ctx context.Context, header string) authorizer.Policy
}

type Server struct {
	address string
	engine  *gin.Engine
	todos   TodoService
	logger  logging.Logger
}

// NewServer builds the router. When authz is nil the /todos routes are not
// guarded in-process, which is the case behind API Gateway where the custom
// authorizer Lambda has already run.
func NewServer(address string, l logging.Logger, todos TodoService, authz RequestAuthorizer) *Server {
	s := &Server{
		address: address,
		engine:  gin.New(),
		todos:   todos,
		logger:  l.With("module", "rest_server"),
	}
	s.setupRoutes(authz)
	return s
}

func (s *Server) setupRoutes(authz RequestAuthorizer) {
	s.engine.Use(Recovery(s.logger), RequestLogger(s.logger), CORS())

	s.engine.GET("/ping", s.Ping)
	s.engine.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	todos := s.engine.Group("/todos")
	if authz != nil {
		todos.Use(GatewayAuthorizer(authz, s.logger))
	}
	todos.GET("", s.GetTodos)
	todos.POST("", s.CreateTodo)
	todos.PATCH("/:todoId", s.UpdateTodo)
	todos.DELETE("/:todoId", s.DeleteTodo)
	todos.POST("/:todoId/attachment", s.GenerateUploadURL)
}

// Engine exposes the router, e.g. for the API Gateway proxy adapter.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
