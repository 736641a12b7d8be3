package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/club-management/models"
	"github.com/Dosada05/club-management/repositories"
	"github.com/Dosada05/club-management/schedule"
	"golang.org/x/sync/errgroup"
)

// CourtAvailability описывает свободные и занятые часы одной площадки на дату.
// Оба списка отсортированы по возрастанию, их объединение покрывает все
// рабочие часы.
type CourtAvailability struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	HoursFree     []int  `json:"hours_free"`
	HoursReserved []int  `json:"hours_reserved"`
}

type SearchInput struct {
	SportName string `json:"sport_name"`
	Date      string `json:"date"`

	// Принимается от формы поиска для последующего бронирования; на
	// вычисление доступности не влияет.
	MemberID int `json:"member_id"`
}

type AvailabilityService interface {
	Search(ctx context.Context, input SearchInput) ([]CourtAvailability, error)
}

type availabilityService struct {
	sportRepo       repositories.SportRepository
	courtRepo       repositories.CourtRepository
	reservationRepo repositories.ReservationRepository
	hours           schedule.Hours
}

func NewAvailabilityService(
	sportRepo repositories.SportRepository,
	courtRepo repositories.CourtRepository,
	reservationRepo repositories.ReservationRepository,
	hours schedule.Hours,
) AvailabilityService {
	return &availabilityService{
		sportRepo:       sportRepo,
		courtRepo:       courtRepo,
		reservationRepo: reservationRepo,
		hours:           hours,
	}
}

// Search вычисляет свободные и занятые слоты по всем площадкам спорта на
// дату. Операция только читает данные, побочных эффектов нет.
func (s *availabilityService) Search(ctx context.Context, input SearchInput) ([]CourtAvailability, error) {
	// Формат даты проверяется до любого обращения к хранилищу.
	date, err := schedule.ParseSearchDate(strings.TrimSpace(input.Date))
	if err != nil {
		return nil, ErrInvalidSearchDate
	}

	sportName := strings.TrimSpace(input.SportName)
	sport, err := s.sportRepo.GetByName(ctx, sportName)
	if err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, s.sportNotFound(ctx, sportName)
		}
		return nil, fmt.Errorf("failed to find sport %q: %w", sportName, err)
	}

	courts, err := s.courtRepo.ListBySportID(ctx, sport.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts for sport %d: %w", sport.ID, err)
	}
	if len(courts) == 0 {
		return nil, ErrNoCourtsForSport
	}

	availability, err := s.collectAvailability(ctx, courts, date)
	if err != nil {
		return nil, err
	}

	// Защитная проверка: возможна только если ни одна площадка не дала
	// результата.
	if len(availability) == 0 {
		return nil, ErrNoHoursAvailable
	}

	return availability, nil
}

// collectAvailability опрашивает брони площадок параллельно; порядок
// результата совпадает с порядком площадок (по id).
func (s *availabilityService) collectAvailability(ctx context.Context, courts []models.Court, date time.Time) ([]CourtAvailability, error) {
	availability := make([]CourtAvailability, len(courts))

	g, gCtx := errgroup.WithContext(ctx)
	for i := range courts {
		i := i
		g.Go(func() error {
			court := courts[i]
			reserved, err := s.reservationRepo.ListHoursByCourtAndDate(gCtx, court.ID, date)
			if err != nil {
				return fmt.Errorf("failed to list reservations for court %d: %w", court.ID, err)
			}

			availability[i] = CourtAvailability{
				ID:            court.ID,
				Name:          court.Name,
				HoursFree:     s.hours.Free(reserved),
				HoursReserved: reserved,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return availability, nil
}

// sportNotFound дополняет ошибку полным списком известных видов спорта,
// чтобы клиент мог исправить запрос.
func (s *availabilityService) sportNotFound(ctx context.Context, name string) error {
	names, err := s.sportRepo.ListNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sport names: %w", err)
	}
	return &SportNotFoundError{Name: name, Available: names}
}
