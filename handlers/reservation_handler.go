package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/club-management/repositories"
	"github.com/Dosada05/club-management/schedule"
	"github.com/Dosada05/club-management/services"
)

type ReservationHandler struct {
	reservationService services.ReservationService
}

func NewReservationHandler(reservationService services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var input services.ReservationInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reservation, err := h.reservationService.CreateReservation(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"reservation": reservation,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReservationHandler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	reservationID, err := getIDFromURL(r, "reservationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reservation, err := h.reservationService.GetReservationByID(r.Context(), reservationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"reservation": reservation,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListReservations поддерживает фильтры court_id, member_id и date (Y-m-d).
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ReservationFilter{
		Page: queryPage(r),
	}

	query := r.URL.Query()

	if raw := query.Get("court_id"); raw != "" {
		courtID, err := strconv.Atoi(raw)
		if err != nil || courtID <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid court_id filter: %q", raw))
			return
		}
		filter.CourtID = &courtID
	}

	if raw := query.Get("member_id"); raw != "" {
		memberID, err := strconv.Atoi(raw)
		if err != nil || memberID <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid member_id filter: %q", raw))
			return
		}
		filter.MemberID = &memberID
	}

	if raw := query.Get("date"); raw != "" {
		date, err := schedule.ParseDate(raw)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		filter.Date = &date
	}

	reservations, total, err := h.reservationService.ListReservations(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"reservations": reservations,
		"total":        total,
		"current_page": filter.Page,
		"last_page":    totalPages(total),
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := getIDFromURL(r, "reservationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ReservationInput
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reservation, err := h.reservationService.UpdateReservation(r.Context(), reservationID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"reservation": reservation,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := getIDFromURL(r, "reservationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err = h.reservationService.CancelReservation(r.Context(), reservationID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
