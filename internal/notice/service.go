package notice

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/anjuman-committee/community-backend/internal/notification"
)

var (
	ErrTitleRequired = errors.New("notice title is required")
	ErrBodyRequired  = errors.New("notice body is required")
	ErrInvalidType   = errors.New("invalid notice type")
	ErrNotFound      = errors.New("notice not found")
)

type Service interface {
	Create(ctx context.Context, n *Notice) error
	Update(ctx context.Context, n *Notice) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Notice, error)
	List(ctx context.Context) ([]Notice, error)
}

type service struct {
	repo     Repository
	notifier notification.Service
}

func NewService(repo Repository, notifier notification.Service) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) validate(n *Notice) error {
	n.Title = strings.TrimSpace(n.Title)
	n.Body = strings.TrimSpace(n.Body)
	if n.Title == "" {
		return ErrTitleRequired
	}
	if n.Body == "" {
		return ErrBodyRequired
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if !ValidType(n.Type) {
		return ErrInvalidType
	}
	n.applyStyle()
	return nil
}

func (s *service) Create(ctx context.Context, n *Notice) error {
	if err := s.validate(n); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	// Push is best effort; a notice is published even if FCM is down.
	go func(title, body string) {
		if err := s.notifier.PushToAllDevices(context.Background(), title, body); err != nil {
			log.Printf("⚠️ Failed to push notice to devices: %v", err)
		}
	}(n.Title, n.Body)

	return nil
}

func (s *service) Update(ctx context.Context, n *Notice) error {
	existing, err := s.repo.GetByID(ctx, n.ID)
	if err != nil {
		return ErrNotFound
	}
	if err := s.validate(n); err != nil {
		return err
	}
	n.CreatedAt = existing.CreatedAt
	return s.repo.Update(ctx, n)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Notice, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return n, nil
}

func (s *service) List(ctx context.Context) ([]Notice, error) {
	return s.repo.List(ctx)
}
