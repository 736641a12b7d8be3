package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/club-management/models"
	"github.com/Dosada05/club-management/repositories"
	"github.com/Dosada05/club-management/storage"
)

var (
	ErrSportNameRequired   = errors.New("sport name is required")
	ErrSportCreationFailed = errors.New("failed to create sport")
	ErrSportUpdateFailed   = errors.New("failed to update sport")
	ErrSportDeleteFailed   = errors.New("failed to delete sport")
	ErrInvalidLogoType     = errors.New("logo content type must be an image")
)

type SportService interface {
	CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error)
	GetSportByID(ctx context.Context, id int) (*models.Sport, error)
	GetAllSports(ctx context.Context) ([]models.Sport, error)
	UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error)
	DeleteSport(ctx context.Context, id int) error
	UploadSportLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sport, error)
}

type CreateSportInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type UpdateSportInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type sportService struct {
	sportRepo repositories.SportRepository
	uploader  storage.FileUploader
}

func NewSportService(sportRepo repositories.SportRepository, uploader storage.FileUploader) SportService {
	return &sportService{
		sportRepo: sportRepo,
		uploader:  uploader,
	}
}

func (s *sportService) CreateSport(ctx context.Context, input CreateSportInput) (*models.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSportNameRequired
	}

	sport := &models.Sport{
		Name:        name,
		Description: input.Description,
	}

	err := s.sportRepo.Create(ctx, sport)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNameConflict) {
			return nil, ErrSportNameConflict
		}
		return nil, fmt.Errorf("%w: %w", ErrSportCreationFailed, err)
	}

	return sport, nil
}

func (s *sportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport by id %d: %w", id, err)
	}
	s.resolveLogoURL(sport)
	return sport, nil
}

func (s *sportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sports: %w", err)
	}
	for i := range sports {
		s.resolveLogoURL(&sports[i])
	}
	return sports, nil
}

func (s *sportService) UpdateSport(ctx context.Context, id int, input UpdateSportInput) (*models.Sport, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSportNameRequired
	}

	sportToUpdate := &models.Sport{
		ID:          id,
		Name:        name,
		Description: input.Description,
	}

	err := s.sportRepo.Update(ctx, sportToUpdate)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return nil, ErrSportNotFound
		case errors.Is(err, repositories.ErrSportNameConflict):
			return nil, ErrSportNameConflict
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrSportUpdateFailed, id, err)
		}
	}

	return sportToUpdate, nil
}

func (s *sportService) DeleteSport(ctx context.Context, id int) error {
	err := s.sportRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSportNotFound):
			return ErrSportNotFound
		case errors.Is(err, repositories.ErrSportInUse):
			return ErrSportInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrSportDeleteFailed, id, err)
		}
	}
	return nil
}

// UploadSportLogo загружает логотип в объектное хранилище и заменяет прежний.
func (s *sportService) UploadSportLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sport, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrInvalidLogoType
	}

	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport by id %d: %w", id, err)
	}

	key := fmt.Sprintf("sports/%d/logo_%s", id, randomSuffix())
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload sport logo: %w", err)
	}

	oldKey := sport.LogoKey
	if err := s.sportRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store sport logo key: %w", err)
	}

	if oldKey != nil && *oldKey != result.Key {
		// Прежний файл больше не нужен; ошибка удаления не фатальна.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	sport.LogoKey = &result.Key
	s.resolveLogoURL(sport)
	return sport, nil
}

func (s *sportService) resolveLogoURL(sport *models.Sport) {
	if sport.LogoKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*sport.LogoKey)
	if url != "" {
		sport.LogoURL = &url
	}
}

func randomSuffix() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(buf)
}
