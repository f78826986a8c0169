// Package models defines the server-side data models of todokeeper.
package models

// TodoItem is one to-do of one user. (UserID, TodoID) identifies it.
type TodoItem struct {
	// UserID is the token subject of the owner; partition key.
	UserID string `json:"userId,omitempty" dynamodbav:"userId,omitempty"`
	// TodoID is unique per user; sort key.
	TodoID string `json:"todoId" dynamodbav:"todoId"`
	// CreatedAt is an ISO-8601 UTC timestamp with millisecond precision.
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
	Name      string `json:"name" dynamodbav:"name"`
	DueDate   string `json:"dueDate" dynamodbav:"dueDate"`
	Done      bool   `json:"done" dynamodbav:"done"`
	// ImageURL is set once an attachment upload URL has been issued.
	ImageURL string `json:"imageUrl,omitempty" dynamodbav:"imageUrl,omitempty"`
}

type CreateTodoRequest struct {
	Name    string
	DueDate string
}

type UpdateTodoRequest struct {
	Name    string
	DueDate string
	Done    bool
}
