// Package todos persists TodoItems. Two backends share one contract:
// DynamoDB (the managed document store) and PostgreSQL.
package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository stores the todos of every user, partitioned by user id.
//
// UpdateTodo and AddImageToTodo return an error matching
// common.ErrorNotFound when (userID, todoID) does not exist. DeleteTodo is
// idempotent.
type Repository interface {
	GetAllTodos(ctx context.Context, userID string) ([]*models.TodoItem, error)
	CreateTodo(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error)
	DeleteTodo(ctx context.Context, todoID, userID string) error
	UpdateTodo(ctx context.Context, req *models.UpdateTodoRequest, userID, todoID string) error
	AddImageToTodo(ctx context.Context, imageURL, todoID, userID string) error
}
