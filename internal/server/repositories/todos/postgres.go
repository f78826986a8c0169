package todos

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// PostgresRepository implements todo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetAllTodos returns the user's todos, newest first.
func (r *PostgresRepository) GetAllTodos(ctx context.Context, userID string) ([]*models.TodoItem, error) {
	query := `SELECT todo_id, created_at, name, due_date, done, image_url FROM todos
		WHERE user_id=$1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	result := make([]*models.TodoItem, 0)
	for rows.Next() {
		var item models.TodoItem
		if err := rows.Scan(&item.TodoID, &item.CreatedAt, &item.Name, &item.DueDate, &item.Done, &item.ImageURL); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateTodo inserts a new row.
func (r *PostgresRepository) CreateTodo(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error) {
	query := `INSERT INTO todos (user_id, todo_id, created_at, name, due_date, done, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		item.UserID, item.TodoID, item.CreatedAt, item.Name, item.DueDate, item.Done, item.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// DeleteTodo removes the row if present. Missing rows are not an error.
func (r *PostgresRepository) DeleteTodo(ctx context.Context, todoID, userID string) error {
	query := `DELETE FROM todos WHERE user_id=$1 AND todo_id=$2`
	if _, err := r.db.ExecContext(ctx, query, userID, todoID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

// UpdateTodo overwrites name, due date and done flag.
func (r *PostgresRepository) UpdateTodo(ctx context.Context, req *models.UpdateTodoRequest, userID, todoID string) error {
	query := `UPDATE todos SET name=$1, due_date=$2, done=$3 WHERE user_id=$4 AND todo_id=$5`
	res, err := r.db.ExecContext(ctx, query, req.Name, req.DueDate, req.Done, userID, todoID)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return expectOneRow(res, todoID)
}

// AddImageToTodo records the attachment URL.
func (r *PostgresRepository) AddImageToTodo(ctx context.Context, imageURL, todoID, userID string) error {
	query := `UPDATE todos SET image_url=$1 WHERE user_id=$2 AND todo_id=$3`
	res, err := r.db.ExecContext(ctx, query, imageURL, userID, todoID)
	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	return expectOneRow(res, todoID)
}

func expectOneRow(res sql.Result, todoID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("todo %s: %w", todoID, common.ErrorNotFound)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
