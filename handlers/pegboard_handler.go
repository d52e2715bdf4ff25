package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/smashhub/smashhub-server/middleware"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/pegboard"
	"github.com/smashhub/smashhub-server/services"
)

type PegboardHandler struct {
	pegboardService services.PegboardService
}

func NewPegboardHandler(pegboardService services.PegboardService) *PegboardHandler {
	return &PegboardHandler{pegboardService: pegboardService}
}

func (h *PegboardHandler) Board(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	board, err := h.pegboardService.Board(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PegboardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	board, err := h.pegboardService.ResetBoard(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PegboardHandler) AutoAssign(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		Category      string `json:"category"`
		AllowFullPool bool   `json:"allow_full_pool"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	board, err := h.pegboardService.AutoAssign(r.Context(), clubID, models.MatchCategory(input.Category), input.AllowFullPool)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PegboardHandler) SmartAssign(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		Category string `json:"category"`
		Level    string `json:"level"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	board, err := h.pegboardService.SmartAssign(r.Context(), clubID, models.MatchCategory(input.Category), pegboard.SkillLevel(input.Level))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PegboardHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	suggestions, err := h.pegboardService.Suggestions(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"suggestions": suggestions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PegboardHandler) AssignSelection(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		PlayerIDs []string `json:"player_ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if n := len(input.PlayerIDs); n != 2 && n != 4 {
		badRequestResponse(w, r, errors.New("player_ids must name exactly 2 or 4 players"))
		return
	}

	board, err := h.pegboardService.AssignSelection(r.Context(), clubID, input.PlayerIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Complete clears a court. A real score records the result; an empty or
// placeholder score needs force=true and returns the players unrecorded.
func (h *PegboardHandler) Complete(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	courtNo, err := strconv.Atoi(chi.URLParam(r, "courtNo"))
	if err != nil {
		badRequestResponse(w, r, errors.New("court number must be an integer"))
		return
	}

	var input struct {
		Score string `json:"score"`
		Force bool   `json:"force"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	board, warnings, err := h.pegboardService.CompleteCourt(r.Context(), clubID, courtNo, input.Score, input.Force)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"board": board}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PegboardHandler) AddGuest(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		FirstName string `json:"first_name"`
		SurName   string `json:"sur_name"`
		Gender    string `json:"gender"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.FirstName == "" {
		badRequestResponse(w, r, errors.New("first_name is required"))
		return
	}

	board, guest, err := h.pegboardService.AddGuest(r.Context(), clubID, input.FirstName, input.SurName, models.Gender(input.Gender))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"board": board, "guest": guest}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PegboardHandler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	board, err := h.pegboardService.RemoveGuest(r.Context(), clubID, chi.URLParam(r, "guestID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": board}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
