package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/smashhub/smashhub-server/middleware"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/services"
)

type FinanceHandler struct {
	financeService services.FinanceService
}

func NewFinanceHandler(financeService services.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

func (h *FinanceHandler) identity(w http.ResponseWriter, r *http.Request) (clubID, userID string, ok bool) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return "", "", false
	}
	userID, err = middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return "", "", false
	}
	return clubID, userID, true
}

func (h *FinanceHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	clubID, userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var input struct {
		Category    string `json:"category"`
		Description string `json:"description"`
		AmountPence int64  `json:"amount_pence"`
		Date        string `json:"date"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	expense := &models.Expense{
		ClubID:      clubID,
		Category:    input.Category,
		Description: input.Description,
		AmountPence: input.AmountPence,
		Date:        input.Date,
	}
	expense, err := h.financeService.AddExpense(r.Context(), userID, expense)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"expense": expense}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FinanceHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	clubID, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	expenses, err := h.financeService.ListExpenses(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"expenses": expenses}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FinanceHandler) AddRevenue(w http.ResponseWriter, r *http.Request) {
	clubID, userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var input struct {
		Source      string `json:"source"`
		Description string `json:"description"`
		AmountPence int64  `json:"amount_pence"`
		Date        string `json:"date"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	revenue := &models.Revenue{
		ClubID:      clubID,
		Source:      input.Source,
		Description: input.Description,
		AmountPence: input.AmountPence,
		Date:        input.Date,
	}
	revenue, err := h.financeService.AddRevenue(r.Context(), userID, revenue)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"revenue": revenue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FinanceHandler) ListRevenue(w http.ResponseWriter, r *http.Request) {
	clubID, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	revenue, err := h.financeService.ListRevenue(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"revenue": revenue}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FinanceHandler) AddPayroll(w http.ResponseWriter, r *http.Request) {
	clubID, userID, ok := h.identity(w, r)
	if !ok {
		return
	}

	var input struct {
		Payee       string `json:"payee"`
		RoleTitle   string `json:"role_title"`
		AmountPence int64  `json:"amount_pence"`
		PeriodStart string `json:"period_start"`
		PeriodEnd   string `json:"period_end"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry := &models.PayrollEntry{
		ClubID:      clubID,
		Payee:       input.Payee,
		RoleTitle:   input.RoleTitle,
		AmountPence: input.AmountPence,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
	}
	entry, err := h.financeService.AddPayroll(r.Context(), userID, entry)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"payroll": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FinanceHandler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	clubID, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	entries, err := h.financeService.ListPayroll(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"payroll": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FinanceHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	clubID, _, ok := h.identity(w, r)
	if !ok {
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.financeService.AuditTrail(r.Context(), clubID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"audit": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
