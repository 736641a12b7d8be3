package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/club-management/models"
	"github.com/lib/pq"
)

var (
	ErrCourtNotFound     = errors.New("court not found")
	ErrCourtSportInvalid = errors.New("court sport does not exist")
	ErrCourtInUse        = errors.New("court cannot be deleted as it has reservations")
)

type CourtRepository interface {
	Create(ctx context.Context, court *models.Court) error
	GetByID(ctx context.Context, id int) (*models.Court, error)
	List(ctx context.Context, page int) ([]models.Court, int, error)
	ListBySportID(ctx context.Context, sportID int) ([]models.Court, error)
	Update(ctx context.Context, court *models.Court) error
	Delete(ctx context.Context, id int) error
}

type postgresCourtRepository struct {
	db *sql.DB
}

func NewPostgresCourtRepository(db *sql.DB) CourtRepository {
	return &postgresCourtRepository{db: db}
}

func (r *postgresCourtRepository) Create(ctx context.Context, court *models.Court) error {
	query := `INSERT INTO courts (sport_id, name, location) VALUES ($1, $2, $3) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, court.SportID, court.Name, court.Location).Scan(&court.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			if pqErr.Constraint == "courts_sport_id_fkey" {
				return ErrCourtSportInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresCourtRepository) GetByID(ctx context.Context, id int) (*models.Court, error) {
	query := `
		SELECT
			c.id, c.sport_id, c.name, c.location,
			s.id, s.name, s.description
		FROM courts c
		JOIN sports s ON c.sport_id = s.id
		WHERE c.id = $1`

	var court models.Court
	var sport models.Sport

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&court.ID,
		&court.SportID,
		&court.Name,
		&court.Location,
		&sport.ID,
		&sport.Name,
		&sport.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to scan court with sport: %w", err)
	}

	court.Sport = &sport
	return &court, nil
}

func (r *postgresCourtRepository) List(ctx context.Context, page int) ([]models.Court, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageOffset(page)
	query := `
		SELECT id, sport_id, name, location
		FROM courts
		ORDER BY id ASC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	courts := make([]models.Court, 0)
	for rows.Next() {
		var court models.Court
		if scanErr := rows.Scan(&court.ID, &court.SportID, &court.Name, &court.Location); scanErr != nil {
			return nil, 0, scanErr
		}
		courts = append(courts, court)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return courts, total, nil
}

// ListBySportID возвращает площадки спорта в порядке создания (по id),
// чтобы порядок в ответе доступности был стабильным.
func (r *postgresCourtRepository) ListBySportID(ctx context.Context, sportID int) ([]models.Court, error) {
	query := `
		SELECT id, sport_id, name, location
		FROM courts
		WHERE sport_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, sportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courts := make([]models.Court, 0)
	for rows.Next() {
		var court models.Court
		if scanErr := rows.Scan(&court.ID, &court.SportID, &court.Name, &court.Location); scanErr != nil {
			return nil, scanErr
		}
		courts = append(courts, court)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return courts, nil
}

func (r *postgresCourtRepository) Update(ctx context.Context, court *models.Court) error {
	query := `UPDATE courts SET sport_id = $1, name = $2, location = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, court.SportID, court.Name, court.Location, court.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "courts_sport_id_fkey" {
				return ErrCourtSportInvalid
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrCourtNotFound)
}

func (r *postgresCourtRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM courts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// ON DELETE RESTRICT для reservations
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrCourtInUse
		}
		return err
	}

	return checkAffectedRows(result, ErrCourtNotFound)
}
