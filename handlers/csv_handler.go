package handlers

import (
	"errors"
	"net/http"

	"github.com/smashhub/smashhub-server/middleware"
	"github.com/smashhub/smashhub-server/services"
)

type CSVHandler struct {
	csvService services.CSVService
}

func NewCSVHandler(csvService services.CSVService) *CSVHandler {
	return &CSVHandler{csvService: csvService}
}

// Template serves the import template as a downloadable CSV file.
func (h *CSVHandler) Template(w http.ResponseWriter, r *http.Request) {
	data := h.csvService.Template()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="roster_template.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

const maxImportBytes = 10 << 20 // 10MB

func (h *CSVHandler) Import(w http.ResponseWriter, r *http.Request) {
	clubID, err := middleware.GetClubIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form"))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		badRequestResponse(w, r, errors.New("file is required"))
		return
	}
	defer file.Close()

	report, err := h.csvService.Import(r.Context(), clubID, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
