package category

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNameRequired = errors.New("category name is required")
	ErrNameTaken    = errors.New("a category with this name already exists")
	ErrNotFound     = errors.New("category not found")
)

type Service interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	// Deactivate soft-deletes the category so past donations keep
	// resolving, while new donations can no longer pick it.
	Deactivate(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	ListActive(ctx context.Context) ([]Category, error)
	ListAll(ctx context.Context) ([]Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, c *Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameRequired
	}

	taken, err := s.repo.NameExists(ctx, c.Name, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameTaken
	}

	c.IsActive = true
	return s.repo.Create(ctx, c)
}

func (s *service) Update(ctx context.Context, c *Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameRequired
	}

	existing, err := s.repo.GetByID(ctx, c.ID)
	if err != nil {
		return ErrNotFound
	}

	taken, err := s.repo.NameExists(ctx, c.Name, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameTaken
	}

	c.IsActive = existing.IsActive
	c.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, c)
}

func (s *service) Deactivate(ctx context.Context, id uint) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if !c.IsActive {
		return nil
	}
	c.IsActive = false
	return s.repo.Update(ctx, c)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *service) ListActive(ctx context.Context) ([]Category, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) ListAll(ctx context.Context) ([]Category, error) {
	return s.repo.ListAll(ctx)
}
