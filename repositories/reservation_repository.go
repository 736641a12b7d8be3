package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/club-management/models"
	"github.com/lib/pq"
)

var (
	ErrReservationNotFound      = errors.New("reservation not found")
	ErrReservationSlotTaken     = errors.New("reservation slot is already taken")
	ErrReservationMemberInvalid = errors.New("reservation member does not exist")
	ErrReservationCourtInvalid  = errors.New("reservation court does not exist")
)

// ReservationFilter описывает предикаты выборки броней. Нулевые поля не
// участвуют в фильтрации.
type ReservationFilter struct {
	CourtID  *int
	MemberID *int
	Date     *time.Time
	Page     int
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *models.Reservation) error
	GetByID(ctx context.Context, id int) (*models.Reservation, error)
	List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int, error)
	ListHoursByCourtAndDate(ctx context.Context, courtID int, date time.Time) ([]int, error)
	CountByMemberAndDate(ctx context.Context, memberID int, date time.Time, excludeID *int) (int, error)
	ExistsByCourtSlot(ctx context.Context, courtID int, date time.Time, hour int, excludeID *int) (bool, error)
	Update(ctx context.Context, reservation *models.Reservation) error
	Delete(ctx context.Context, id int) error
}

type postgresReservationRepository struct {
	db *sql.DB
}

func NewPostgresReservationRepository(db *sql.DB) ReservationRepository {
	return &postgresReservationRepository{db: db}
}

func (r *postgresReservationRepository) Create(ctx context.Context, reservation *models.Reservation) error {
	query := `
		INSERT INTO reservations (member_id, court_id, date, hour)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		reservation.MemberID,
		reservation.CourtID,
		reservation.Date,
		reservation.Hour,
	).Scan(&reservation.ID, &reservation.CreatedAt)

	if err != nil {
		return mapReservationWriteError(err)
	}
	return nil
}

// mapReservationWriteError переводит ошибки constraint-ов в сентинели.
// Уникальный ключ (court_id, date, hour) страхует от гонки двух
// параллельных бронирований одного слота.
func mapReservationWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "reservations_court_id_date_hour_key" {
				return ErrReservationSlotTaken
			}
		case "23503": // foreign_key_violation
			switch pqErr.Constraint {
			case "reservations_member_id_fkey":
				return ErrReservationMemberInvalid
			case "reservations_court_id_fkey":
				return ErrReservationCourtInvalid
			}
		}
	}
	return err
}

func (r *postgresReservationRepository) GetByID(ctx context.Context, id int) (*models.Reservation, error) {
	query := `
		SELECT id, member_id, court_id, date, hour, created_at
		FROM reservations
		WHERE id = $1`

	var reservation models.Reservation
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.MemberID,
		&reservation.CourtID,
		&reservation.Date,
		&reservation.Hour,
		&reservation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *postgresReservationRepository) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM reservations
		WHERE ($1::int IS NULL OR court_id = $1)
		  AND ($2::int IS NULL OR member_id = $2)
		  AND ($3::date IS NULL OR date = $3)`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, filter.CourtID, filter.MemberID, filter.Date).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageOffset(filter.Page)
	query := `
		SELECT id, member_id, court_id, date, hour, created_at
		FROM reservations
		WHERE ($1::int IS NULL OR court_id = $1)
		  AND ($2::int IS NULL OR member_id = $2)
		  AND ($3::date IS NULL OR date = $3)
		ORDER BY date ASC, hour ASC, id ASC
		LIMIT $4 OFFSET $5`

	rows, err := r.db.QueryContext(ctx, query, filter.CourtID, filter.MemberID, filter.Date, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reservations := make([]models.Reservation, 0)
	for rows.Next() {
		var reservation models.Reservation
		scanErr := rows.Scan(
			&reservation.ID,
			&reservation.MemberID,
			&reservation.CourtID,
			&reservation.Date,
			&reservation.Hour,
			&reservation.CreatedAt,
		)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// ListHoursByCourtAndDate возвращает занятые часы площадки на дату по
// возрастанию.
func (r *postgresReservationRepository) ListHoursByCourtAndDate(ctx context.Context, courtID int, date time.Time) ([]int, error) {
	query := `
		SELECT hour
		FROM reservations
		WHERE court_id = $1 AND date = $2
		ORDER BY hour ASC`

	rows, err := r.db.QueryContext(ctx, query, courtID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make([]int, 0)
	for rows.Next() {
		var hour int
		if scanErr := rows.Scan(&hour); scanErr != nil {
			return nil, scanErr
		}
		hours = append(hours, hour)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *postgresReservationRepository) CountByMemberAndDate(ctx context.Context, memberID int, date time.Time, excludeID *int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM reservations
		WHERE member_id = $1 AND date = $2
		  AND ($3::int IS NULL OR id != $3)`

	var count int
	err := r.db.QueryRowContext(ctx, query, memberID, date, excludeID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresReservationRepository) ExistsByCourtSlot(ctx context.Context, courtID int, date time.Time, hour int, excludeID *int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE court_id = $1 AND date = $2 AND hour = $3
			  AND ($4::int IS NULL OR id != $4)
		)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, courtID, date, hour, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresReservationRepository) Update(ctx context.Context, reservation *models.Reservation) error {
	query := `
		UPDATE reservations SET
			member_id = $1,
			court_id = $2,
			date = $3,
			hour = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		reservation.MemberID,
		reservation.CourtID,
		reservation.Date,
		reservation.Hour,
		reservation.ID,
	)
	if err != nil {
		return mapReservationWriteError(err)
	}

	return checkAffectedRows(result, ErrReservationNotFound)
}

func (r *postgresReservationRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkAffectedRows(result, ErrReservationNotFound)
}
