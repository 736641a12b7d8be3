package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/club-management/services"
)

type CourtHandler struct {
	courtService        services.CourtService
	availabilityService services.AvailabilityService
}

func NewCourtHandler(cs services.CourtService, as services.AvailabilityService) *CourtHandler {
	return &CourtHandler{
		courtService:        cs,
		availabilityService: as,
	}
}

func (h *CourtHandler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var input services.CourtInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	court, err := h.courtService.CreateCourt(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"court": court,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) GetCourtByID(w http.ResponseWriter, r *http.Request) {
	courtID, err := getIDFromURL(r, "courtID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	court, err := h.courtService.GetCourtByID(r.Context(), courtID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"court": court,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	courts, total, err := h.courtService.ListCourts(r.Context(), page)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"courts":       courts,
		"total":        total,
		"current_page": page,
		"last_page":    totalPages(total),
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	courtID, err := getIDFromURL(r, "courtID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CourtInput
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	court, err := h.courtService.UpdateCourt(r.Context(), courtID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"court": court,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CourtHandler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	courtID, err := getIDFromURL(r, "courtID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err = h.courtService.DeleteCourt(r.Context(), courtID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search возвращает свободные и занятые часы всех площадок спорта на дату.
func (h *CourtHandler) Search(w http.ResponseWriter, r *http.Request) {
	var input services.SearchInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.SportName == "" || input.Date == "" {
		badRequestResponse(w, r, errors.New("sport_name and date are required"))
		return
	}

	availability, err := h.availabilityService.Search(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"available_hours": availability,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
