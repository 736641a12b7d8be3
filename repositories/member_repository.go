package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/club-management/models"
	"github.com/lib/pq"
)

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberEmailConflict = errors.New("member email conflict")
	ErrMemberInUse         = errors.New("member cannot be deleted as it has reservations")
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id int) (*models.Member, error)
	List(ctx context.Context, page int, status *models.MemberStatus) ([]models.Member, int, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id int) error
}

type postgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) MemberRepository {
	return &postgresMemberRepository{db: db}
}

func (r *postgresMemberRepository) Create(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (user_id, name, email, phone, membership_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		member.UserID,
		member.Name,
		member.Email,
		member.Phone,
		member.MembershipDate,
		member.Status,
	).Scan(&member.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "members_email_key" {
				return ErrMemberEmailConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresMemberRepository) GetByID(ctx context.Context, id int) (*models.Member, error) {
	query := `
		SELECT id, user_id, name, email, phone, membership_date, status
		FROM members
		WHERE id = $1`

	var member models.Member
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.UserID,
		&member.Name,
		&member.Email,
		&member.Phone,
		&member.MembershipDate,
		&member.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *postgresMemberRepository) List(ctx context.Context, page int, status *models.MemberStatus) ([]models.Member, int, error) {
	countQuery := `SELECT COUNT(*) FROM members WHERE ($1::text IS NULL OR status = $1)`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageOffset(page)
	query := `
		SELECT id, user_id, name, email, phone, membership_date, status
		FROM members
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := make([]models.Member, 0)
	for rows.Next() {
		var member models.Member
		scanErr := rows.Scan(
			&member.ID,
			&member.UserID,
			&member.Name,
			&member.Email,
			&member.Phone,
			&member.MembershipDate,
			&member.Status,
		)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		members = append(members, member)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *postgresMemberRepository) Update(ctx context.Context, member *models.Member) error {
	query := `
		UPDATE members SET
			user_id = $1,
			name = $2,
			email = $3,
			phone = $4,
			membership_date = $5,
			status = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		member.UserID,
		member.Name,
		member.Email,
		member.Phone,
		member.MembershipDate,
		member.Status,
		member.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "members_email_key" {
				return ErrMemberEmailConflict
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresMemberRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM members WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMemberInUse
		}
		return err
	}

	return checkAffectedRows(result, ErrMemberNotFound)
}
