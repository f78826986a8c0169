// Package dataaccess is the single gateway from business logic to storage:
// the todos repository for items and the image store for attachments.
package dataaccess

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
)

// ImageStore maps image ids to public URLs and issues upload URLs.
type ImageStore interface {
	ImageURL(imageID string) string
	GenerateUploadURL(ctx context.Context, imageID string) (string, error)
}

type TodoAccess struct {
	repo   todos.Repository
	images ImageStore
}

func NewTodoAccess(repo todos.Repository, images ImageStore) *TodoAccess {
	return &TodoAccess{repo: repo, images: images}
}

func (a *TodoAccess) GetAllTodos(ctx context.Context, userID string) ([]*models.TodoItem, error) {
	return a.repo.GetAllTodos(ctx, userID)
}

func (a *TodoAccess) CreateTodo(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error) {
	return a.repo.CreateTodo(ctx, item)
}

func (a *TodoAccess) DeleteTodo(ctx context.Context, todoID, userID string) error {
	return a.repo.DeleteTodo(ctx, todoID, userID)
}

func (a *TodoAccess) UpdateTodo(ctx context.Context, req *models.UpdateTodoRequest, userID, todoID string) error {
	return a.repo.UpdateTodo(ctx, req, userID, todoID)
}

// AddImageToTodo records the URL the image will have once uploaded.
func (a *TodoAccess) AddImageToTodo(ctx context.Context, imageID, todoID, userID string) error {
	return a.repo.AddImageToTodo(ctx, a.images.ImageURL(imageID), todoID, userID)
}

func (a *TodoAccess) GenerateUploadURL(ctx context.Context, imageID string) (string, error) {
	return a.images.GenerateUploadURL(ctx, imageID)
}
