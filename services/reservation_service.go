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
)

// MaxReservationsPerDate ограничивает число броней одного члена клуба на одну дату.
const MaxReservationsPerDate = 3

// Сообщения валидации отдаются клиенту как есть, по полям.
const (
	msgMemberRequired = "El ID del miembro es obligatorio."
	msgMemberMissing  = "El miembro seleccionado no existe."
	msgCourtRequired  = "El ID de la cancha es obligatorio."
	msgCourtMissing   = "La cancha seleccionada no existe."
	msgDateRequired   = "La fecha es obligatoria."
	msgDateInvalid    = "La fecha debe tener un formato válido."
	msgDatePast       = "La fecha no puede ser anterior a hoy."
	msgHourRequired   = "La hora es obligatoria."
	msgHourFormat     = "La hora debe tener el formato HH:MM."
	msgQuotaExceeded  = "El miembro ya tiene el máximo de 3 reservas permitidas para esta fecha."
	msgSlotOccupied   = "La cancha ya está ocupada en esta fecha y hora."
)

type ReservationInput struct {
	MemberID int    `json:"member_id"`
	CourtID  int    `json:"court_id"`
	Date     string `json:"date"`
	Hour     string `json:"hour"`
}

// AvailabilityNotifier рассылает события слотов подписчикам площадки.
type AvailabilityNotifier interface {
	BroadcastToRoom(roomID string, message schedule.Message)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, input ReservationInput) (*models.Reservation, error)
	GetReservationByID(ctx context.Context, id int) (*models.Reservation, error)
	ListReservations(ctx context.Context, filter repositories.ReservationFilter) ([]models.Reservation, int, error)
	UpdateReservation(ctx context.Context, id int, input ReservationInput) (*models.Reservation, error)
	CancelReservation(ctx context.Context, id int) error
}

type reservationService struct {
	reservationRepo repositories.ReservationRepository
	memberRepo      repositories.MemberRepository
	courtRepo       repositories.CourtRepository
	hours           schedule.Hours
	notifier        AvailabilityNotifier
}

func NewReservationService(
	reservationRepo repositories.ReservationRepository,
	memberRepo repositories.MemberRepository,
	courtRepo repositories.CourtRepository,
	hours schedule.Hours,
	notifier AvailabilityNotifier,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		memberRepo:      memberRepo,
		courtRepo:       courtRepo,
		hours:           hours,
		notifier:        notifier,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, input ReservationInput) (*models.Reservation, error) {
	reservation, err := s.validate(ctx, input, nil)
	if err != nil {
		return nil, err
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.notify(schedule.EventReservationCreated, reservation)
	return reservation, nil
}

func (s *reservationService) GetReservationByID(ctx context.Context, id int) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by id %d: %w", id, err)
	}
	return reservation, nil
}

func (s *reservationService) ListReservations(ctx context.Context, filter repositories.ReservationFilter) ([]models.Reservation, int, error) {
	reservations, total, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, total, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, id int, input ReservationInput) (*models.Reservation, error) {
	existing, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by id %d: %w", id, err)
	}

	// Изменение даты/часа/площадки заново проходит все проверки; сама
	// редактируемая бронь исключается из конфликтов с собой.
	reservation, err := s.validate(ctx, input, &id)
	if err != nil {
		return nil, err
	}
	reservation.ID = id
	reservation.CreatedAt = existing.CreatedAt

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, s.mapWriteError(err)
	}

	if existing.CourtID != reservation.CourtID {
		s.notify(schedule.EventReservationCanceled, existing)
	}
	s.notify(schedule.EventReservationUpdated, reservation)
	return reservation, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id int) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to get reservation by id %d: %w", id, err)
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to delete reservation %d: %w", id, err)
	}

	s.notify(schedule.EventReservationCanceled, reservation)
	return nil
}

// validate выполняет ВСЕ проверки кандидата и накапливает нарушения, не
// останавливаясь на первом: клиент получает полную карту поле -> сообщения.
func (s *reservationService) validate(ctx context.Context, input ReservationInput, excludeID *int) (*models.Reservation, error) {
	violations := NewValidationError()

	memberOK, err := s.checkMember(ctx, input.MemberID, violations)
	if err != nil {
		return nil, err
	}
	courtOK, err := s.checkCourt(ctx, input.CourtID, violations)
	if err != nil {
		return nil, err
	}

	date, dateOK, datePast := s.checkDate(input.Date, violations)
	hour, hourOK := s.checkHour(input.Hour, violations)

	// Лимиты не проверяются для прошедших дат: такая бронь уже отклонена
	// по полю date.
	if !datePast {
		if memberOK && dateOK {
			count, err := s.reservationRepo.CountByMemberAndDate(ctx, input.MemberID, date, excludeID)
			if err != nil {
				return nil, fmt.Errorf("failed to count member reservations: %w", err)
			}
			if count >= MaxReservationsPerDate {
				violations.Add("member_id", msgQuotaExceeded)
			}
		}

		if courtOK && dateOK && hourOK {
			occupied, err := s.reservationRepo.ExistsByCourtSlot(ctx, input.CourtID, date, hour, excludeID)
			if err != nil {
				return nil, fmt.Errorf("failed to check court slot: %w", err)
			}
			if occupied {
				violations.Add("court_id", msgSlotOccupied)
			}
		}
	}

	if violations.HasErrors() {
		return nil, violations
	}

	return &models.Reservation{
		MemberID: input.MemberID,
		CourtID:  input.CourtID,
		Date:     date,
		Hour:     hour,
	}, nil
}

func (s *reservationService) checkMember(ctx context.Context, memberID int, violations *ValidationError) (bool, error) {
	if memberID <= 0 {
		violations.Add("member_id", msgMemberRequired)
		return false, nil
	}
	// Статус члена клуба не проверяется: бронировать может любой.
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			violations.Add("member_id", msgMemberMissing)
			return false, nil
		}
		return false, fmt.Errorf("failed to verify member %d: %w", memberID, err)
	}
	return true, nil
}

func (s *reservationService) checkCourt(ctx context.Context, courtID int, violations *ValidationError) (bool, error) {
	if courtID <= 0 {
		violations.Add("court_id", msgCourtRequired)
		return false, nil
	}
	if _, err := s.courtRepo.GetByID(ctx, courtID); err != nil {
		if errors.Is(err, repositories.ErrCourtNotFound) {
			violations.Add("court_id", msgCourtMissing)
			return false, nil
		}
		return false, fmt.Errorf("failed to verify court %d: %w", courtID, err)
	}
	return true, nil
}

func (s *reservationService) checkDate(raw string, violations *ValidationError) (date time.Time, ok, past bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		violations.Add("date", msgDateRequired)
		return time.Time{}, false, false
	}

	date, err := schedule.ParseDate(raw)
	if err != nil {
		violations.Add("date", msgDateInvalid)
		return time.Time{}, false, false
	}

	if date.Before(schedule.Today()) {
		violations.Add("date", msgDatePast)
		return date, false, true
	}
	return date, true, false
}

func (s *reservationService) checkHour(raw string, violations *ValidationError) (hour int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		violations.Add("hour", msgHourRequired)
		return 0, false
	}

	hour, err := schedule.ParseHour(raw)
	if err != nil {
		violations.Add("hour", msgHourFormat)
		return 0, false
	}

	if !s.hours.Contains(hour) {
		violations.Add("hour", s.businessHoursMessage())
		return hour, false
	}
	return hour, true
}

func (s *reservationService) businessHoursMessage() string {
	return fmt.Sprintf("Las reservas solo están permitidas entre las %02d:00 y las %02d:00.", s.hours.Open, s.hours.Close)
}

// mapWriteError переводит срабатывание уникального ключа при записи в то же
// нарушение "слот занят", что и проверка валидатора: гонка двух одинаковых
// бронирований неотличима для клиента от обычного конфликта.
func (s *reservationService) mapWriteError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrReservationSlotTaken):
		violations := NewValidationError()
		violations.Add("court_id", msgSlotOccupied)
		return violations
	case errors.Is(err, repositories.ErrReservationMemberInvalid):
		violations := NewValidationError()
		violations.Add("member_id", msgMemberMissing)
		return violations
	case errors.Is(err, repositories.ErrReservationCourtInvalid):
		violations := NewValidationError()
		violations.Add("court_id", msgCourtMissing)
		return violations
	case errors.Is(err, repositories.ErrReservationNotFound):
		return ErrReservationNotFound
	default:
		return fmt.Errorf("failed to persist reservation: %w", err)
	}
}

func (s *reservationService) notify(eventType string, reservation *models.Reservation) {
	if s.notifier == nil {
		return
	}
	s.notifier.BroadcastToRoom(schedule.CourtRoom(reservation.CourtID), schedule.Message{
		Type: eventType,
		Payload: schedule.SlotEvent{
			ReservationID: reservation.ID,
			CourtID:       reservation.CourtID,
			Date:          schedule.FormatDate(reservation.Date),
			Hour:          reservation.Hour,
		},
	})
}
