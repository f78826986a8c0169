package repomanager

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
)

// DynamoRepositoryManager vends DynamoDB-backed repositories. The table and
// its index are provisioned outside the service, so there is nothing to migrate.
type DynamoRepositoryManager struct {
	client todos.DynamoAPI
	table  string
	index  string
}

func (m *DynamoRepositoryManager) Todos() todos.Repository {
	return todos.NewDynamoRepository(m.client, m.table, m.index)
}

func (m *DynamoRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

// NewDynamoRepositoryManager constructs a DynamoDB-backed RepositoryManager.
func NewDynamoRepositoryManager(client todos.DynamoAPI, table, index string) RepositoryManager {
	return &DynamoRepositoryManager{client: client, table: table, index: index}
}
