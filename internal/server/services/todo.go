// Package services contains server-side business logic. TodoService turns a
// raw bearer token into a user id and runs the todo use cases for that user.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
	"github.com/google/uuid"
)

// TodoAccess is the data access layer used by TodoService.
type TodoAccess interface {
	GetAllTodos(ctx context.Context, userID string) ([]*models.TodoItem, error)
	CreateTodo(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error)
	DeleteTodo(ctx context.Context, todoID, userID string) error
	UpdateTodo(ctx context.Context, req *models.UpdateTodoRequest, userID, todoID string) error
	AddImageToTodo(ctx context.Context, imageID, todoID, userID string) error
	GenerateUploadURL(ctx context.Context, imageID string) (string, error)
}

// TokenVerifier validates a raw JWT.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*auth.Claims, error)
}

type TodoService struct {
	access   TodoAccess
	verifier TokenVerifier
	logger   logging.Logger

	newID func() string
	now   func() time.Time
}

func NewTodoService(access TodoAccess, verifier TokenVerifier, logger logging.Logger) *TodoService {
	return &TodoService{
		access:   access,
		verifier: verifier,
		logger:   logger.With("module", "services.todo"),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// userID returns the subject of a valid token. Verification errors are
// returned unchanged.
func (s *TodoService) userID(ctx context.Context, token string) (string, error) {
	claims, err := s.verifier.VerifyToken(ctx, token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ListTodos returns the user's todos, newest first.
func (s *TodoService) ListTodos(ctx context.Context, token string) ([]*models.TodoItem, error) {
	userID, err := s.userID(ctx, token)
	if err != nil {
		return nil, err
	}

	items, err := s.access.GetAllTodos(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}
	if items == nil {
		items = make([]*models.TodoItem, 0)
	}
	return items, nil
}

// CreateTodo stores a new, not yet done, todo with a fresh id and timestamp.
func (s *TodoService) CreateTodo(ctx context.Context, req *models.CreateTodoRequest, token string) (*models.TodoItem, error) {
	userID, err := s.userID(ctx, token)
	if err != nil {
		return nil, err
	}

	item := &models.TodoItem{
		UserID:    userID,
		TodoID:    s.newID(),
		CreatedAt: timex.FormatISO(s.now()),
		Name:      req.Name,
		DueDate:   req.DueDate,
		Done:      false,
	}

	created, err := s.access.CreateTodo(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}

	s.logger.Info(ctx, "todo created", "user_id", userID, "todo_id", item.TodoID)
	return created, nil
}

// UpdateTodo overwrites name, due date and done flag.
func (s *TodoService) UpdateTodo(ctx context.Context, req *models.UpdateTodoRequest, todoID, token string) error {
	userID, err := s.userID(ctx, token)
	if err != nil {
		return err
	}

	if err := s.access.UpdateTodo(ctx, req, userID, todoID); err != nil {
		return fmt.Errorf("error updating todo: %w", err)
	}
	return nil
}

// DeleteTodo removes the todo. Deleting a missing todo succeeds.
func (s *TodoService) DeleteTodo(ctx context.Context, todoID, token string) error {
	userID, err := s.userID(ctx, token)
	if err != nil {
		return err
	}

	if err := s.access.DeleteTodo(ctx, todoID, userID); err != nil {
		return fmt.Errorf("error deleting todo: %w", err)
	}
	return nil
}

// GenerateUploadURL attaches a new image id to the todo and returns the
// presigned URL the client uploads the image to.
func (s *TodoService) GenerateUploadURL(ctx context.Context, todoID, token string) (string, error) {
	userID, err := s.userID(ctx, token)
	if err != nil {
		return "", err
	}

	imageID := s.newID()

	if err := s.access.AddImageToTodo(ctx, imageID, todoID, userID); err != nil {
		return "", fmt.Errorf("error attaching image: %w", err)
	}

	url, err := s.access.GenerateUploadURL(ctx, imageID)
	if err != nil {
		return "", fmt.Errorf("error generating upload url: %w", err)
	}

	s.logger.Debug(ctx, "upload url issued", "user_id", userID, "todo_id", todoID, "image_id", imageID)
	return url, nil
}
