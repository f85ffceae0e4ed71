package category

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	nextID uint
	cats   map[uint]*Category
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, cats: map[uint]*Category{}}
}

func (r *fakeRepo) Create(ctx context.Context, c *Category) error {
	c.ID = r.nextID
	r.nextID++
	copied := *c
	r.cats[c.ID] = &copied
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, c *Category) error {
	if _, ok := r.cats[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *c
	r.cats[c.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uint) (*Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepo) ListActive(ctx context.Context) ([]Category, error) {
	var out []Category
	for _, c := range r.cats {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) ListAll(ctx context.Context) ([]Category, error) {
	var out []Category
	for _, c := range r.cats {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeRepo) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	for _, c := range r.cats {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	c := &Category{Name: "  Sadqa  ", Rate: 100}
	require.NoError(t, svc.Create(context.Background(), c))

	assert.Equal(t, "Sadqa", c.Name)
	assert.True(t, c.IsActive, "new categories start active")
	assert.NotZero(t, c.ID)
}

func TestCreateCategoryValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	require.NoError(t, svc.Create(context.Background(), &Category{Name: "Sadqa", Rate: 100}))

	err := svc.Create(context.Background(), &Category{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)

	// duplicate detection is case-insensitive
	err = svc.Create(context.Background(), &Category{Name: "SADQA", Rate: 200})
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestUpdateCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	repo.cats[1] = &Category{ID: 1, Name: "Sadqa", Rate: 100, IsActive: true, CreatedAt: created}
	repo.cats[2] = &Category{ID: 2, Name: "Zakat", Rate: 250, IsActive: true}
	repo.nextID = 3

	t.Run("keeps own name", func(t *testing.T) {
		c := &Category{ID: 1, Name: "Sadqa", Rate: 120}
		require.NoError(t, svc.Update(context.Background(), c))
		assert.Equal(t, 120.0, repo.cats[1].Rate)
		assert.Equal(t, created, repo.cats[1].CreatedAt, "creation time survives updates")
	})

	t.Run("cannot take another category's name", func(t *testing.T) {
		c := &Category{ID: 1, Name: "zakat", Rate: 120}
		assert.ErrorIs(t, svc.Update(context.Background(), c), ErrNameTaken)
	})

	t.Run("unknown id", func(t *testing.T) {
		c := &Category{ID: 99, Name: "Fitra"}
		assert.ErrorIs(t, svc.Update(context.Background(), c), ErrNotFound)
	})
}

func TestDeactivateCategory(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	repo.cats[1] = &Category{ID: 1, Name: "Sadqa", Rate: 100, IsActive: true}
	repo.nextID = 2

	require.NoError(t, svc.Deactivate(context.Background(), 1))

	// a deactivated head disappears from the public list but stays
	// resolvable by id for old receipts
	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	got, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	// repeating is a no-op
	assert.NoError(t, svc.Deactivate(context.Background(), 1))

	assert.ErrorIs(t, svc.Deactivate(context.Background(), 99), ErrNotFound)
}

func TestUpdatePreservesActiveFlag(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	repo.cats[1] = &Category{ID: 1, Name: "Sadqa", Rate: 100, IsActive: false}
	repo.nextID = 2

	c := &Category{ID: 1, Name: "Sadqa", Rate: 150, IsActive: true}
	require.NoError(t, svc.Update(context.Background(), c))
	assert.False(t, repo.cats[1].IsActive, "editing a deactivated category must not revive it")
}
