package repomanager

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
)

// RepositoryManager hides which backend the todos live in.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Todos() todos.Repository
}
