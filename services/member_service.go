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

var (
	ErrMemberNameRequired  = errors.New("member name is required")
	ErrMemberInvalidStatus = errors.New("member status must be active, inactive or suspended")
	ErrMemberInvalidDate   = errors.New("membership date must be a valid Y-m-d date")
)

type MemberService interface {
	CreateMember(ctx context.Context, input MemberInput) (*models.Member, error)
	GetMemberByID(ctx context.Context, id int) (*models.Member, error)
	ListMembers(ctx context.Context, page int, status *models.MemberStatus) ([]models.Member, int, error)
	UpdateMember(ctx context.Context, id int, input MemberInput) (*models.Member, error)
	DeleteMember(ctx context.Context, id int) error
}

type MemberInput struct {
	UserID         *int    `json:"user_id"`
	Name           string  `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	MembershipDate string  `json:"membership_date"`
	Status         string  `json:"status"`
}

type memberService struct {
	memberRepo repositories.MemberRepository
}

func NewMemberService(memberRepo repositories.MemberRepository) MemberService {
	return &memberService{
		memberRepo: memberRepo,
	}
}

func (s *memberService) CreateMember(ctx context.Context, input MemberInput) (*models.Member, error) {
	member, err := buildMember(input)
	if err != nil {
		return nil, err
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, repositories.ErrMemberEmailConflict) {
			return nil, ErrMemberEmailConflict
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

func buildMember(input MemberInput) (*models.Member, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrMemberNameRequired
	}

	status := models.MemberStatus(input.Status)
	switch status {
	case models.MemberActive, models.MemberInactive, models.MemberSuspended:
	default:
		return nil, ErrMemberInvalidStatus
	}

	var membershipDate time.Time
	if input.MembershipDate != "" {
		parsed, err := schedule.ParseDate(input.MembershipDate)
		if err != nil {
			return nil, ErrMemberInvalidDate
		}
		membershipDate = parsed
	} else {
		membershipDate = schedule.Today()
	}

	return &models.Member{
		UserID:         input.UserID,
		Name:           name,
		Email:          input.Email,
		Phone:          input.Phone,
		MembershipDate: membershipDate,
		Status:         status,
	}, nil
}

func (s *memberService) GetMemberByID(ctx context.Context, id int) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMemberNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by id %d: %w", id, err)
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context, page int, status *models.MemberStatus) ([]models.Member, int, error) {
	members, total, err := s.memberRepo.List(ctx, page, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

func (s *memberService) UpdateMember(ctx context.Context, id int, input MemberInput) (*models.Member, error) {
	member, err := buildMember(input)
	if err != nil {
		return nil, err
	}
	member.ID = id

	if err := s.memberRepo.Update(ctx, member); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMemberNotFound):
			return nil, ErrMemberNotFound
		case errors.Is(err, repositories.ErrMemberEmailConflict):
			return nil, ErrMemberEmailConflict
		default:
			return nil, fmt.Errorf("failed to update member %d: %w", id, err)
		}
	}

	return member, nil
}

func (s *memberService) DeleteMember(ctx context.Context, id int) error {
	err := s.memberRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMemberNotFound):
			return ErrMemberNotFound
		case errors.Is(err, repositories.ErrMemberInUse):
			return ErrMemberInUse
		default:
			return fmt.Errorf("failed to delete member %d: %w", id, err)
		}
	}
	return nil
}
