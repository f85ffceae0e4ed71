package khandan

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNameRequired = errors.New("khandan name is required")
	ErrNameTaken    = errors.New("a khandan with this name already exists")
	ErrHasMembers   = errors.New("khandan still has members and cannot be deleted")
	ErrNotFound     = errors.New("khandan not found")
)

type Service interface {
	Create(ctx context.Context, k *Khandan) error
	Update(ctx context.Context, k *Khandan) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Khandan, error)
	List(ctx context.Context) ([]Khandan, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, k *Khandan) error {
	k.Name = strings.TrimSpace(k.Name)
	if k.Name == "" {
		return ErrNameRequired
	}

	taken, err := s.repo.NameExists(ctx, k.Name, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameTaken
	}

	return s.repo.Create(ctx, k)
}

func (s *service) Update(ctx context.Context, k *Khandan) error {
	k.Name = strings.TrimSpace(k.Name)
	if k.Name == "" {
		return ErrNameRequired
	}

	if _, err := s.repo.GetByID(ctx, k.ID); err != nil {
		return ErrNotFound
	}

	taken, err := s.repo.NameExists(ctx, k.Name, k.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameTaken
	}

	return s.repo.Update(ctx, k)
}

// Delete refuses while users still reference the family
func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}

	members, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return err
	}
	if members > 0 {
		return ErrHasMembers
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Khandan, error) {
	k, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return k, nil
}

func (s *service) List(ctx context.Context) ([]Khandan, error) {
	return s.repo.List(ctx)
}
