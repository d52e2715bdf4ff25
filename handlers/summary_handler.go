package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/smashhub/smashhub-server/middleware"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/services"
)

type SummaryHandler struct {
	summaryService services.SummaryService
	emailService   *services.EmailService
}

func NewSummaryHandler(summaryService services.SummaryService, emailService *services.EmailService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		emailService:   emailService,
	}
}

// Get serves the winner board for a date, defaulting to today.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	if v := r.URL.Query().Get("clubId"); v != "" {
		clubID = v
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
		return
	}

	summary, err := h.summaryService.Get(r.Context(), clubID, date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Record folds a match result posted directly by a client into the day's
// winner board. The live board posts through the pegboard service instead.
func (h *SummaryHandler) Record(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		Date    string                 `json:"date"`
		Winners []models.SummaryWinner `json:"winners"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
		return
	}

	summary, err := h.summaryService.RecordResult(r.Context(), clubID, input.Date, input.Winners)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EmailReport mails the day's winner board to the given recipients.
func (h *SummaryHandler) EmailReport(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		Date   string   `json:"date"`
		Emails []string `json:"emails"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Emails) == 0 {
		badRequestResponse(w, r, errors.New("at least one recipient email is required"))
		return
	}
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
		return
	}

	summary, err := h.summaryService.Get(r.Context(), clubID, input.Date)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := h.emailService.SendDailyReport(input.Emails, summary); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "report sent"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
