package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/smashhub/smashhub-server/middleware"
	"github.com/smashhub/smashhub-server/services"
)

type SkillHandler struct {
	skillService services.SkillService
}

func NewSkillHandler(skillService services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

func (h *SkillHandler) Template(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	template, err := h.skillService.Template(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"template": template}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SkillHandler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		Groups map[string][]string `json:"groups"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	template, err := h.skillService.SaveTemplate(r.Context(), clubID, input.Groups)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"template": template}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SkillHandler) RecordSnapshot(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	var input struct {
		Date    string                    `json:"date"`
		Ratings map[string]map[string]int `json:"ratings"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	snapshot, err := h.skillService.RecordSnapshot(r.Context(), playerID, input.Date, input.Ratings)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"snapshot": snapshot}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SkillHandler) History(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.skillService.History(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"snapshots": snapshots}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
