package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/club-management/models"
	"github.com/Dosada05/club-management/repositories"
	"github.com/Dosada05/club-management/schedule"
)

var testHours = schedule.Hours{Open: 8, Close: 21}

// fakeSportRepo симулирует хранилище видов спорта.
type fakeSportRepo struct {
	sport          *models.Sport
	names          []string
	getByNameCalls int
}

func (f *fakeSportRepo) Create(_ context.Context, _ *models.Sport) error { return errNotImplemented }
func (f *fakeSportRepo) GetByID(_ context.Context, _ int) (*models.Sport, error) {
	return nil, errNotImplemented
}
func (f *fakeSportRepo) GetByName(_ context.Context, name string) (*models.Sport, error) {
	f.getByNameCalls++
	if f.sport == nil || f.sport.Name != name {
		return nil, repositories.ErrSportNotFound
	}
	return f.sport, nil
}
func (f *fakeSportRepo) GetAll(_ context.Context) ([]models.Sport, error) {
	return nil, errNotImplemented
}
func (f *fakeSportRepo) ListNames(_ context.Context) ([]string, error) { return f.names, nil }
func (f *fakeSportRepo) Update(_ context.Context, _ *models.Sport) error {
	return errNotImplemented
}
func (f *fakeSportRepo) UpdateLogoKey(_ context.Context, _ int, _ *string) error {
	return errNotImplemented
}
func (f *fakeSportRepo) Delete(_ context.Context, _ int) error { return errNotImplemented }

// fakeCourtRepo симулирует хранилище площадок.
type fakeCourtRepo struct {
	courts []models.Court
}

func (f *fakeCourtRepo) Create(_ context.Context, _ *models.Court) error { return errNotImplemented }
func (f *fakeCourtRepo) GetByID(_ context.Context, id int) (*models.Court, error) {
	for i := range f.courts {
		if f.courts[i].ID == id {
			return &f.courts[i], nil
		}
	}
	return nil, repositories.ErrCourtNotFound
}
func (f *fakeCourtRepo) List(_ context.Context, _ int) ([]models.Court, int, error) {
	return nil, 0, errNotImplemented
}
func (f *fakeCourtRepo) ListBySportID(_ context.Context, sportID int) ([]models.Court, error) {
	var result []models.Court
	for _, court := range f.courts {
		if court.SportID == sportID {
			result = append(result, court)
		}
	}
	return result, nil
}
func (f *fakeCourtRepo) Update(_ context.Context, _ *models.Court) error { return errNotImplemented }
func (f *fakeCourtRepo) Delete(_ context.Context, _ int) error           { return errNotImplemented }

// fakeReservationRepo симулирует хранилище броней.
type fakeReservationRepo struct {
	hoursByCourt map[int][]int
	reservations []models.Reservation
	createErr    error
	updateErr    error
	created      *models.Reservation
	updated      *models.Reservation
	deletedID    int
}

var errNotImplemented = errors.New("not implemented")

func (f *fakeReservationRepo) Create(_ context.Context, reservation *models.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	reservation.ID = len(f.reservations) + 1
	f.created = reservation
	return nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int) (*models.Reservation, error) {
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			return &f.reservations[i], nil
		}
	}
	return nil, repositories.ErrReservationNotFound
}

func (f *fakeReservationRepo) List(_ context.Context, _ repositories.ReservationFilter) ([]models.Reservation, int, error) {
	return f.reservations, len(f.reservations), nil
}

func (f *fakeReservationRepo) ListHoursByCourtAndDate(_ context.Context, courtID int, _ time.Time) ([]int, error) {
	return f.hoursByCourt[courtID], nil
}

func (f *fakeReservationRepo) CountByMemberAndDate(_ context.Context, memberID int, date time.Time, excludeID *int) (int, error) {
	count := 0
	for _, r := range f.reservations {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.MemberID == memberID && r.Date.Equal(date) {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) ExistsByCourtSlot(_ context.Context, courtID int, date time.Time, hour int, excludeID *int) (bool, error) {
	for _, r := range f.reservations {
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.CourtID == courtID && r.Date.Equal(date) && r.Hour == hour {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, reservation *models.Reservation) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = reservation
	return nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id int) error {
	f.deletedID = id
	return nil
}

func newAvailabilityFixture(reserved map[int][]int) AvailabilityService {
	sportRepo := &fakeSportRepo{
		sport: &models.Sport{ID: 1, Name: "Tenis"},
	}
	courtRepo := &fakeCourtRepo{
		courts: []models.Court{
			{ID: 1, SportID: 1, Name: "Pista Central"},
			{ID: 2, SportID: 1, Name: "Pista 2"},
		},
	}
	reservationRepo := &fakeReservationRepo{hoursByCourt: reserved}
	return NewAvailabilityService(sportRepo, courtRepo, reservationRepo, testHours)
}

func TestSearchComputesFreeAndReservedHours(t *testing.T) {
	service := newAvailabilityFixture(map[int][]int{
		1: {12, 13},
	})

	result, err := service.Search(context.Background(), SearchInput{
		SportName: "Tenis",
		Date:      "22/05/2025",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected availability for 2 courts, got %d", len(result))
	}

	central := result[0]
	if central.Name != "Pista Central" {
		t.Fatalf("expected Pista Central first, got %q", central.Name)
	}
	if len(central.HoursReserved) != 2 || central.HoursReserved[0] != 12 || central.HoursReserved[1] != 13 {
		t.Fatalf("expected reserved hours [12 13], got %v", central.HoursReserved)
	}
	if len(central.HoursFree) != 12 {
		t.Fatalf("expected 12 free hours, got %d: %v", len(central.HoursFree), central.HoursFree)
	}
	for _, hour := range central.HoursFree {
		if hour == 12 || hour == 13 {
			t.Fatalf("reserved hour %d listed as free", hour)
		}
	}

	// Объединение свободных и занятых часов покрывает весь рабочий день.
	seen := make(map[int]bool)
	for _, hour := range central.HoursFree {
		seen[hour] = true
	}
	for _, hour := range central.HoursReserved {
		if seen[hour] {
			t.Fatalf("hour %d is both free and reserved", hour)
		}
		seen[hour] = true
	}
	for hour := 8; hour <= 21; hour++ {
		if !seen[hour] {
			t.Fatalf("hour %d missing from availability", hour)
		}
	}
}

func TestSearchCourtWithoutReservationsIsFullyFree(t *testing.T) {
	service := newAvailabilityFixture(map[int][]int{})

	result, err := service.Search(context.Background(), SearchInput{
		SportName: "Tenis",
		Date:      "22/05/2025",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, court := range result {
		if len(court.HoursFree) != 14 {
			t.Fatalf("court %q: expected all 14 hours free, got %d", court.Name, len(court.HoursFree))
		}
		if len(court.HoursReserved) != 0 {
			t.Fatalf("court %q: expected no reserved hours, got %v", court.Name, court.HoursReserved)
		}
	}
}

func TestSearchUnknownSportListsAvailable(t *testing.T) {
	sportRepo := &fakeSportRepo{
		names: []string{"Fútbol", "Tenis", "Pádel"},
	}
	service := NewAvailabilityService(sportRepo, &fakeCourtRepo{}, &fakeReservationRepo{}, testHours)

	_, err := service.Search(context.Background(), SearchInput{
		SportName: "Cricket",
		Date:      "22/05/2025",
	})

	var notFound *SportNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SportNotFoundError, got %v", err)
	}
	if !errors.Is(err, ErrSportNotFound) {
		t.Fatal("expected error to match ErrSportNotFound")
	}
	if notFound.Name != "Cricket" {
		t.Fatalf("expected queried name Cricket, got %q", notFound.Name)
	}
	if len(notFound.Available) != 3 {
		t.Fatalf("expected 3 available sports, got %v", notFound.Available)
	}
}

func TestSearchInvalidDateRejectedBeforeQueries(t *testing.T) {
	sportRepo := &fakeSportRepo{
		sport: &models.Sport{ID: 1, Name: "Tenis"},
	}
	service := NewAvailabilityService(sportRepo, &fakeCourtRepo{}, &fakeReservationRepo{}, testHours)

	// Y-m-d вместо d/m/Y
	_, err := service.Search(context.Background(), SearchInput{
		SportName: "Tenis",
		Date:      "2025-05-22",
	})
	if !errors.Is(err, ErrInvalidSearchDate) {
		t.Fatalf("expected ErrInvalidSearchDate, got %v", err)
	}
	if sportRepo.getByNameCalls != 0 {
		t.Fatal("sport lookup should not run when the date is invalid")
	}
}

func TestSearchNoCourtsForSport(t *testing.T) {
	sportRepo := &fakeSportRepo{
		sport: &models.Sport{ID: 7, Name: "Squash"},
	}
	service := NewAvailabilityService(sportRepo, &fakeCourtRepo{}, &fakeReservationRepo{}, testHours)

	_, err := service.Search(context.Background(), SearchInput{
		SportName: "Squash",
		Date:      "22/05/2025",
	})
	if !errors.Is(err, ErrNoCourtsForSport) {
		t.Fatalf("expected ErrNoCourtsForSport, got %v", err)
	}
}
