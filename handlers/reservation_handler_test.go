package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/club-management/models"
	"github.com/Dosada05/club-management/repositories"
	"github.com/Dosada05/club-management/services"
)

// fakeReservationService возвращает заранее заданный результат.
type fakeReservationService struct {
	reservation *models.Reservation
	err         error
}

func (f *fakeReservationService) CreateReservation(_ context.Context, _ services.ReservationInput) (*models.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeReservationService) GetReservationByID(_ context.Context, _ int) (*models.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeReservationService) ListReservations(_ context.Context, _ repositories.ReservationFilter) ([]models.Reservation, int, error) {
	return nil, 0, f.err
}

func (f *fakeReservationService) UpdateReservation(_ context.Context, _ int, _ services.ReservationInput) (*models.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservation, nil
}

func (f *fakeReservationService) CancelReservation(_ context.Context, _ int) error {
	return f.err
}

func createRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateReservationResponse(t *testing.T) {
	handler := NewReservationHandler(&fakeReservationService{
		reservation: &models.Reservation{ID: 1, MemberID: 1, CourtID: 1, Hour: 10},
	})

	recorder := httptest.NewRecorder()
	handler.CreateReservation(recorder, createRequest(`{"member_id":1,"court_id":1,"date":"2030-05-22","hour":"10:00"}`))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}
}

// Нарушения бизнес-правил отдаются как 422 с картой поле -> сообщения.
func TestCreateReservationValidationResponse(t *testing.T) {
	violations := services.NewValidationError()
	violations.Add("member_id", "El miembro seleccionado no existe.")
	violations.Add("court_id", "La cancha ya está ocupada en esta fecha y hora.")

	handler := NewReservationHandler(&fakeReservationService{err: violations})

	recorder := httptest.NewRecorder()
	handler.CreateReservation(recorder, createRequest(`{"member_id":99,"court_id":1,"date":"2030-05-22","hour":"10:00"}`))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", recorder.Code)
	}

	var payload struct {
		Error map[string][]string `json:"error"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Error["member_id"]) != 1 || len(payload.Error["court_id"]) != 1 {
		t.Fatalf("expected violations for member_id and court_id, got %+v", payload.Error)
	}
}

func TestCreateReservationMalformedBody(t *testing.T) {
	handler := NewReservationHandler(&fakeReservationService{})

	recorder := httptest.NewRecorder()
	handler.CreateReservation(recorder, createRequest(`{"member_id":`))

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}
