package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/club-management/models"
	"github.com/Dosada05/club-management/repositories"
)

var (
	ErrCourtNameRequired  = errors.New("court name is required")
	ErrCourtSportRequired = errors.New("court sport is required")
)

type CourtService interface {
	CreateCourt(ctx context.Context, input CourtInput) (*models.Court, error)
	GetCourtByID(ctx context.Context, id int) (*models.Court, error)
	ListCourts(ctx context.Context, page int) ([]models.Court, int, error)
	UpdateCourt(ctx context.Context, id int, input CourtInput) (*models.Court, error)
	DeleteCourt(ctx context.Context, id int) error
}

type CourtInput struct {
	SportID  int     `json:"sport_id"`
	Name     string  `json:"name"`
	Location *string `json:"location"`
}

type courtService struct {
	courtRepo repositories.CourtRepository
	sportRepo repositories.SportRepository
}

func NewCourtService(courtRepo repositories.CourtRepository, sportRepo repositories.SportRepository) CourtService {
	return &courtService{
		courtRepo: courtRepo,
		sportRepo: sportRepo,
	}
}

func (s *courtService) CreateCourt(ctx context.Context, input CourtInput) (*models.Court, error) {
	court, err := s.buildCourt(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.courtRepo.Create(ctx, court); err != nil {
		if errors.Is(err, repositories.ErrCourtSportInvalid) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to create court: %w", err)
	}

	return court, nil
}

// buildCourt валидирует вход и проверяет существование спорта заранее,
// чтобы отдавать осмысленную ошибку вместо голого нарушения FK.
func (s *courtService) buildCourt(ctx context.Context, input CourtInput) (*models.Court, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCourtNameRequired
	}
	if input.SportID <= 0 {
		return nil, ErrCourtSportRequired
	}

	if _, err := s.sportRepo.GetByID(ctx, input.SportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to verify sport %d: %w", input.SportID, err)
	}

	return &models.Court{
		SportID:  input.SportID,
		Name:     name,
		Location: input.Location,
	}, nil
}

func (s *courtService) GetCourtByID(ctx context.Context, id int) (*models.Court, error) {
	court, err := s.courtRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to get court by id %d: %w", id, err)
	}
	return court, nil
}

func (s *courtService) ListCourts(ctx context.Context, page int) ([]models.Court, int, error) {
	courts, total, err := s.courtRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courts: %w", err)
	}
	return courts, total, nil
}

func (s *courtService) UpdateCourt(ctx context.Context, id int, input CourtInput) (*models.Court, error) {
	court, err := s.buildCourt(ctx, input)
	if err != nil {
		return nil, err
	}
	court.ID = id

	if err := s.courtRepo.Update(ctx, court); err != nil {
		switch {
		case errors.Is(err, repositories.ErrCourtNotFound):
			return nil, ErrCourtNotFound
		case errors.Is(err, repositories.ErrCourtSportInvalid):
			return nil, ErrSportNotFound
		default:
			return nil, fmt.Errorf("failed to update court %d: %w", id, err)
		}
	}

	return court, nil
}

func (s *courtService) DeleteCourt(ctx context.Context, id int) error {
	err := s.courtRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrCourtNotFound):
			return ErrCourtNotFound
		case errors.Is(err, repositories.ErrCourtInUse):
			return ErrCourtInUse
		default:
			return fmt.Errorf("failed to delete court %d: %w", id, err)
		}
	}
	return nil
}
