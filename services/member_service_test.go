package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/club-management/models"
	"github.com/Dosada05/club-management/repositories"
	"github.com/Dosada05/club-management/schedule"
)

// recordingMemberRepo запоминает записанных членов клуба.
type recordingMemberRepo struct {
	fakeMemberRepo
	created   *models.Member
	updated   *models.Member
	createErr error
	updateErr error
	deleteErr error
}

func (f *recordingMemberRepo) Create(_ context.Context, member *models.Member) error {
	if f.createErr != nil {
		return f.createErr
	}
	member.ID = 1
	f.created = member
	return nil
}

func (f *recordingMemberRepo) Update(_ context.Context, member *models.Member) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = member
	return nil
}

func (f *recordingMemberRepo) Delete(_ context.Context, _ int) error {
	return f.deleteErr
}

func TestCreateMember(t *testing.T) {
	repo := &recordingMemberRepo{}
	service := NewMemberService(repo)

	member, err := service.CreateMember(context.Background(), MemberInput{
		Name:           "Ana García",
		MembershipDate: "2024-01-15",
		Status:         "active",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member.ID != 1 {
		t.Fatalf("expected assigned id 1, got %d", member.ID)
	}
	if member.Status != models.MemberActive {
		t.Fatalf("expected active status, got %s", member.Status)
	}
	if schedule.FormatDate(member.MembershipDate) != "2024-01-15" {
		t.Fatalf("unexpected membership date: %v", member.MembershipDate)
	}
}

// Дата членства по умолчанию ставится на сегодня.
func TestCreateMemberDefaultMembershipDate(t *testing.T) {
	repo := &recordingMemberRepo{}
	service := NewMemberService(repo)

	member, err := service.CreateMember(context.Background(), MemberInput{
		Name:   "Luis Pérez",
		Status: "inactive",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !member.MembershipDate.Equal(schedule.Today()) {
		t.Fatalf("expected today's date, got %v", member.MembershipDate)
	}
}

func TestCreateMemberInvalidInput(t *testing.T) {
	service := NewMemberService(&recordingMemberRepo{})

	cases := []struct {
		name    string
		input   MemberInput
		wantErr error
	}{
		{"blank name", MemberInput{Name: "  ", Status: "active"}, ErrMemberNameRequired},
		{"unknown status", MemberInput{Name: "Ana", Status: "banned"}, ErrMemberInvalidStatus},
		{"bad date", MemberInput{Name: "Ana", Status: "active", MembershipDate: "15/01/2024"}, ErrMemberInvalidDate},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := service.CreateMember(context.Background(), c.input); !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
		})
	}
}

func TestCreateMemberEmailConflict(t *testing.T) {
	repo := &recordingMemberRepo{createErr: repositories.ErrMemberEmailConflict}
	service := NewMemberService(repo)

	email := "ana@example.com"
	_, err := service.CreateMember(context.Background(), MemberInput{
		Name:   "Ana",
		Email:  &email,
		Status: "active",
	})
	if !errors.Is(err, ErrMemberEmailConflict) {
		t.Fatalf("expected ErrMemberEmailConflict, got %v", err)
	}
}

func TestUpdateMemberNotFound(t *testing.T) {
	repo := &recordingMemberRepo{updateErr: repositories.ErrMemberNotFound}
	service := NewMemberService(repo)

	_, err := service.UpdateMember(context.Background(), 42, MemberInput{
		Name:   "Ana",
		Status: "active",
	})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestDeleteMemberInUse(t *testing.T) {
	repo := &recordingMemberRepo{deleteErr: repositories.ErrMemberInUse}
	service := NewMemberService(repo)

	if err := service.DeleteMember(context.Background(), 1); !errors.Is(err, ErrMemberInUse) {
		t.Fatalf("expected ErrMemberInUse, got %v", err)
	}
}
