package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/smashhub/smashhub-server/middleware"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/pegboard"
	"github.com/smashhub/smashhub-server/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) History(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			badRequestResponse(w, r, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	records, err := h.matchService.HistoryByPlayer(r.Context(), playerID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"history": records}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Record stores a finished match posted directly by a client that ran the
// court itself. The players arrive in court order; the score decides the
// sides, exactly as it does on the live board.
func (h *MatchHandler) Record(w http.ResponseWriter, r *http.Request) {
	var input struct {
		AssignedPlayers []models.Player      `json:"assigned_players"`
		CourtNo         int                  `json:"court_no"`
		MatchType       models.MatchCategory `json:"match_type"`
		Score           string               `json:"score"`
		Duration        string               `json:"duration"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := pegboard.ResolveOutcome(input.CourtNo, input.AssignedPlayers, input.Score, input.Duration)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if input.MatchType != "" {
		if !input.MatchType.Valid() {
			mapServiceErrorToHTTP(w, r, pegboard.ErrInvalidCategory)
			return
		}
		outcome.Category = input.MatchType
	}

	if err := h.matchService.RecordMatch(r.Context(), outcome, time.Now()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"message": "match recorded"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TopPlayers returns the roster decorated with rolling averages, best first.
func (h *MatchHandler) TopPlayers(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	if v := r.URL.Query().Get("clubId"); v != "" {
		clubID = v
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			badRequestResponse(w, r, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	ranked, err := h.matchService.RankedRoster(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvgScore > ranked[j].AvgScore
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": ranked}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
