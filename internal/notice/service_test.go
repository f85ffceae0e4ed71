package notice

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anjuman-committee/community-backend/internal/auth"
	"github.com/anjuman-committee/community-backend/internal/notification"
)

type fakeRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*Notice
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, rows: map[uint]*Notice{}}
}

func (r *fakeRepo) Create(ctx context.Context, n *Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.nextID
	r.nextID++
	copied := *n
	r.rows[n.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, n *Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[n.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *n
	r.rows[n.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uint) (*Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notice
	for _, n := range r.rows {
		out = append(out, *n)
	}
	return out, nil
}

func (r *fakeRepo) EarliestCreatedAt(ctx context.Context) (*time.Time, error) {
	return nil, nil
}

type testNotifier struct {
	mu     sync.Mutex
	pushes int
}

func (n *testNotifier) SendCredentials(user *auth.User, username, plainPassword string)  {}
func (n *testNotifier) SendReceipt(toEmail, donorName, receiptNumber string, pdf []byte) {}
func (n *testNotifier) PushToAllDevices(ctx context.Context, title, message string) error {
	n.mu.Lock()
	n.pushes++
	n.mu.Unlock()
	return nil
}
func (n *testNotifier) RegisterDeviceToken(ctx context.Context, userID uint, token, deviceType string) error {
	return nil
}
func (n *testNotifier) RemoveDeviceToken(ctx context.Context, userID uint, token string) error {
	return nil
}
func (n *testNotifier) Deliver(job notification.Job) {}

func TestCreateNoticeDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &testNotifier{})

	n := &Notice{Title: " Eid Milan ", Body: "Gathering on Sunday."}
	require.NoError(t, svc.Create(context.Background(), n))

	assert.Equal(t, "Eid Milan", n.Title)
	assert.Equal(t, TypeInfo, n.Type, "untyped notices fall back to info")
	assert.NotEmpty(t, n.Icon)
	assert.NotEmpty(t, n.Color)
}

func TestCreateNoticeStyles(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &testNotifier{})

	n := &Notice{Title: "Water cut", Body: "Tanker delayed.", Type: TypeAlert}
	require.NoError(t, svc.Create(context.Background(), n))
	assert.Equal(t, "warning", n.Icon)
	assert.Equal(t, "#e53935", n.Color)
}

func TestCreateNoticeValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &testNotifier{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.Create(ctx, &Notice{Body: "b"}), ErrTitleRequired)
	assert.ErrorIs(t, svc.Create(ctx, &Notice{Title: "t"}), ErrBodyRequired)
	assert.ErrorIs(t, svc.Create(ctx, &Notice{Title: "t", Body: "b", Type: "breaking"}), ErrInvalidType)
	assert.Empty(t, repo.rows)
}

func TestUpdateNoticePreservesCreatedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &testNotifier{})

	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	repo.rows[1] = &Notice{ID: 1, Title: "Old", Body: "Old body", Type: TypeInfo, CreatedAt: created}
	repo.nextID = 2

	n := &Notice{ID: 1, Title: "New", Body: "New body", Type: TypeEvent}
	require.NoError(t, svc.Update(context.Background(), n))
	assert.Equal(t, created, repo.rows[1].CreatedAt)
	assert.Equal(t, TypeEvent, repo.rows[1].Type)

	missing := &Notice{ID: 9, Title: "x", Body: "y"}
	assert.ErrorIs(t, svc.Update(context.Background(), missing), ErrNotFound)
}

func TestDeleteNotice(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &testNotifier{})
	repo.rows[1] = &Notice{ID: 1, Title: "t", Body: "b", Type: TypeInfo}
	repo.nextID = 2

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrNotFound)
}
