package handlers

import (
	"fmt"
	"net/http"

	"github.com/Dosada05/club-management/models"
	"github.com/Dosada05/club-management/services"
)

type MemberHandler struct {
	memberService services.MemberService
}

func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var input services.MemberInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	member, err := h.memberService.CreateMember(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"member": member,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MemberHandler) GetMemberByID(w http.ResponseWriter, r *http.Request) {
	memberID, err := getIDFromURL(r, "memberID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	member, err := h.memberService.GetMemberByID(r.Context(), memberID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"member": member,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)

	var status *models.MemberStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		candidate := models.MemberStatus(raw)
		switch candidate {
		case models.MemberActive, models.MemberInactive, models.MemberSuspended:
			status = &candidate
		default:
			badRequestResponse(w, r, fmt.Errorf("invalid status filter: %q", raw))
			return
		}
	}

	members, total, err := h.memberService.ListMembers(r.Context(), page, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"members":      members,
		"total":        total,
		"current_page": page,
		"last_page":    totalPages(total),
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	memberID, err := getIDFromURL(r, "memberID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MemberInput
	err = readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	member, err := h.memberService.UpdateMember(r.Context(), memberID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"member": member,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	memberID, err := getIDFromURL(r, "memberID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	err = h.memberService.DeleteMember(r.Context(), memberID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
