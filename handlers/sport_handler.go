package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/club-management/middleware"
	"github.com/Dosada05/club-management/models"
	"github.com/Dosada05/club-management/services"
)

type SportHandler struct {
	sportService services.SportService
}

func NewSportHandler(sportService services.SportService) *SportHandler {
	return &SportHandler{
		sportService: sportService,
	}
}

// requireAdmin проверяет роль текущего пользователя из claims.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return false
	}
	if role != models.RoleAdmin {
		forbiddenResponse(w, r, "administrator privileges required")
		return false
	}
	return true
}

func (h *SportHandler) CreateSport(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var input services.CreateSportInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.CreateSport(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"sport": sport,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) GetSportByID(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.GetSportByID(r.Context(), sportID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"sport": sport,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) GetAllSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.GetAllSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"sports": sports,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) UpdateSport(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateSportInput
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.UpdateSport(r.Context(), sportID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"sport": sport,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) DeleteSport(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err = h.sportService.DeleteSport(r.Context(), sportID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadSportLogo принимает multipart-форму с полем "logo" и загружает
// файл в объектное хранилище.
func (h *SportHandler) UploadSportLogo(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	sportID, err := getIDFromURL(r, "sportID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	const maxLogoSize = 5 << 20 // 5MB
	r.Body = http.MaxBytesReader(w, r.Body, maxLogoSize)
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		badRequestResponse(w, r, errors.New("failed to parse multipart form, logo must not exceed 5MB"))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, errors.New("form field 'logo' is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	sport, err := h.sportService.UploadSportLogo(r.Context(), sportID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"sport": sport,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
