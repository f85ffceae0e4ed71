package team

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/anjuman-committee/community-backend/config"
)

var (
	ErrNameRequired    = errors.New("member name is required")
	ErrInvalidCategory = errors.New("invalid team category")
	ErrInvalidImage    = errors.New("image must be a jpg, jpeg, png or webp file")
	ErrNotFound        = errors.New("team member not found")
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type Service interface {
	Create(ctx context.Context, m *Member, image *multipart.FileHeader) error
	Update(ctx context.Context, m *Member, image *multipart.FileHeader) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Member, error)
	// ListActive backs the public page; ListAll is for the admin panel.
	ListActive(ctx context.Context) ([]Member, error)
	ListAll(ctx context.Context) ([]Member, error)
}

type service struct {
	repo Repository
	cfg  *config.Config
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) validate(m *Member) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return ErrNameRequired
	}
	if !ValidCategory(m.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// saveImage stores the upload under the configured directory with a
// generated filename, so originals can never collide or be guessed.
func (s *service) saveImage(image *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(image.Filename))
	if !allowedImageExts[ext] {
		return "", ErrInvalidImage
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	filename := uuid.New().String() + ext
	dst := filepath.Join(s.cfg.UploadDir, filename)

	src, err := image.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}

	return filename, nil
}

func (s *service) removeImage(filename string) {
	if filename == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.cfg.UploadDir, filename)); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Failed to remove team member image %s: %v", filename, err)
	}
}

func (s *service) Create(ctx context.Context, m *Member, image *multipart.FileHeader) error {
	if err := s.validate(m); err != nil {
		return err
	}

	if image != nil {
		filename, err := s.saveImage(image)
		if err != nil {
			return err
		}
		m.ImagePath = filename
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.removeImage(m.ImagePath)
		return err
	}
	return nil
}

func (s *service) Update(ctx context.Context, m *Member, image *multipart.FileHeader) error {
	existing, err := s.repo.GetByID(ctx, m.ID)
	if err != nil {
		return ErrNotFound
	}
	if err := s.validate(m); err != nil {
		return err
	}

	m.ImagePath = existing.ImagePath
	m.CreatedAt = existing.CreatedAt

	if image != nil {
		filename, err := s.saveImage(image)
		if err != nil {
			return err
		}
		m.ImagePath = filename
	}

	if err := s.repo.Update(ctx, m); err != nil {
		if image != nil {
			s.removeImage(m.ImagePath)
		}
		return err
	}

	// Drop the replaced file only after the row is safely updated.
	if image != nil && existing.ImagePath != "" && existing.ImagePath != m.ImagePath {
		s.removeImage(existing.ImagePath)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeImage(existing.ImagePath)
	return nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *service) ListActive(ctx context.Context) ([]Member, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) ListAll(ctx context.Context) ([]Member, error) {
	return s.repo.ListAll(ctx)
}
