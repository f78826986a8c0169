package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

// tokenVerifier treats the token itself as the subject; "bad" is rejected.
type tokenVerifier struct{}

func (tokenVerifier) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "bad" {
		return nil, fmt.Errorf("%w: signature is invalid", common.ErrInvalidToken)
	}
	return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: token}}, nil
}

type memAccess struct {
	mu    sync.Mutex
	items map[string]map[string]*models.TodoItem
	log   []string

	uploadErr error
}

func newMemAccess() *memAccess {
	return &memAccess{items: map[string]map[string]*models.TodoItem{}}
}

func (m *memAccess) GetAllTodos(ctx context.Context, userID string) ([]*models.TodoItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.TodoItem
	for _, it := range m.items[userID] {
		c := *it
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *memAccess) CreateTodo(ctx context.Context, item *models.TodoItem) (*models.TodoItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items[item.UserID] == nil {
		m.items[item.UserID] = map[string]*models.TodoItem{}
	}
	c := *item
	m.items[item.UserID][item.TodoID] = &c
	return item, nil
}

func (m *memAccess) DeleteTodo(ctx context.Context, todoID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items[userID], todoID)
	return nil
}

func (m *memAccess) UpdateTodo(ctx context.Context, req *models.UpdateTodoRequest, userID, todoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[userID][todoID]
	if !ok {
		return common.ErrorNotFound
	}
	it.Name, it.DueDate, it.Done = req.Name, req.DueDate, req.Done
	return nil
}

func (m *memAccess) AddImageToTodo(ctx context.Context, imageID, todoID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = append(m.log, "attach:"+imageID)
	it, ok := m.items[userID][todoID]
	if !ok {
		return common.ErrorNotFound
	}
	it.ImageURL = "https://bucket.s3.amazonaws.com/" + imageID
	return nil
}

func (m *memAccess) GenerateUploadURL(ctx context.Context, imageID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = append(m.log, "presign:"+imageID)
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	return "https://bucket.s3.amazonaws.com/" + imageID + "?X-Amz-Signature=sig", nil
}

func newTestService(access TodoAccess) *TodoService {
	s := NewTodoService(access, tokenVerifier{}, logging.Nop{})
	var n int
	s.newID = func() string { n++; return fmt.Sprintf("id-%d", n) }
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { base = base.Add(time.Second); return base }
	return s
}

// --- tests ---

func TestCreateThenList_RoundTrip(t *testing.T) {
	svc := newTestService(newMemAccess())
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, &models.CreateTodoRequest{Name: "buy milk", DueDate: "2024-01-02"}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.TodoID)
	assert.Equal(t, "alice", created.UserID)
	assert.Equal(t, "2024-01-01T10:00:01.000Z", created.CreatedAt)
	assert.False(t, created.Done)

	items, err := svc.ListTodos(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "buy milk", items[0].Name)
	assert.Equal(t, "2024-01-02", items[0].DueDate)
}

func TestListTodos_NewestFirstAndNeverNil(t *testing.T) {
	svc := newTestService(newMemAccess())
	ctx := context.Background()

	items, err := svc.ListTodos(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	_, _ = svc.CreateTodo(ctx, &models.CreateTodoRequest{Name: "first"}, "alice")
	_, _ = svc.CreateTodo(ctx, &models.CreateTodoRequest{Name: "second"}, "alice")

	items, err = svc.ListTodos(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Name)
}

func TestUpdateTodo_ChangesOnlyMutableFields(t *testing.T) {
	svc := newTestService(newMemAccess())
	ctx := context.Background()

	created, err := svc.CreateTodo(ctx, &models.CreateTodoRequest{Name: "a", DueDate: "d1"}, "alice")
	require.NoError(t, err)

	err = svc.UpdateTodo(ctx, &models.UpdateTodoRequest{Name: "b", DueDate: "d2", Done: true}, created.TodoID, "alice")
	require.NoError(t, err)

	items, _ := svc.ListTodos(ctx, "alice")
	require.Len(t, items, 1)
	got := items[0]
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, "d2", got.DueDate)
	assert.True(t, got.Done)
	assert.Equal(t, created.TodoID, got.TodoID)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestUpdateTodo_MissingIsNotFound(t *testing.T) {
	svc := newTestService(newMemAccess())

	err := svc.UpdateTodo(context.Background(), &models.UpdateTodoRequest{}, "nope", "alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteTodo_Idempotent(t *testing.T) {
	svc := newTestService(newMemAccess())
	ctx := context.Background()

	created, _ := svc.CreateTodo(ctx, &models.CreateTodoRequest{Name: "a"}, "alice")

	require.NoError(t, svc.DeleteTodo(ctx, created.TodoID, "alice"))
	require.NoError(t, svc.DeleteTodo(ctx, created.TodoID, "alice"))

	items, _ := svc.ListTodos(ctx, "alice")
	assert.Empty(t, items)
}

func TestUsersAreIsolated(t *testing.T) {
	svc := newTestService(newMemAccess())
	ctx := context.Background()

	created, _ := svc.CreateTodo(ctx, &models.CreateTodoRequest{Name: "mine"}, "alice")

	items, err := svc.ListTodos(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, svc.DeleteTodo(ctx, created.TodoID, "bob"))
	assert.ErrorIs(t, svc.UpdateTodo(ctx, &models.UpdateTodoRequest{}, created.TodoID, "bob"), common.ErrorNotFound)

	items, _ = svc.ListTodos(ctx, "alice")
	assert.Len(t, items, 1)
}

func TestGenerateUploadURL_AttachesBeforePresigning(t *testing.T) {
	access := newMemAccess()
	svc := newTestService(access)
	ctx := context.Background()

	created, _ := svc.CreateTodo(ctx, &models.CreateTodoRequest{Name: "a"}, "alice")

	url, err := svc.GenerateUploadURL(ctx, created.TodoID, "alice")
	require.NoError(t, err)
	assert.Contains(t, url, "https://bucket.s3.amazonaws.com/id-2")
	assert.Equal(t, []string{"attach:id-2", "presign:id-2"}, access.log)

	items, _ := svc.ListTodos(ctx, "alice")
	assert.Equal(t, "https://bucket.s3.amazonaws.com/id-2", items[0].ImageURL)
}

func TestGenerateUploadURL_Errors(t *testing.T) {
	access := newMemAccess()
	svc := newTestService(access)
	ctx := context.Background()

	_, err := svc.GenerateUploadURL(ctx, "missing", "alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, []string{"attach:id-1"}, access.log, "no URL for a missing todo")

	created, _ := svc.CreateTodo(ctx, &models.CreateTodoRequest{Name: "a"}, "alice")
	access.uploadErr = errors.New("s3 down")
	_, err = svc.GenerateUploadURL(ctx, created.TodoID, "alice")
	assert.ErrorContains(t, err, "s3 down")
}

func TestInvalidTokenIsPropagated(t *testing.T) {
	svc := newTestService(newMemAccess())
	ctx := context.Background()

	_, err := svc.ListTodos(ctx, "bad")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	_, err = svc.CreateTodo(ctx, &models.CreateTodoRequest{}, "bad")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	assert.ErrorIs(t, svc.UpdateTodo(ctx, &models.UpdateTodoRequest{}, "t", "bad"), common.ErrInvalidToken)
	assert.ErrorIs(t, svc.DeleteTodo(ctx, "t", "bad"), common.ErrInvalidToken)
	_, err = svc.GenerateUploadURL(ctx, "t", "bad")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
