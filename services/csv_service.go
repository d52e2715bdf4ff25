package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// utf8BOM keeps Excel from mangling the template on double-click.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"firstName", "surName", "dob", "sex",
	"parentName", "parentPhone", "email",
	"emergencyContactName", "emergencyContactPhone",
	"joiningDate", "paymentStatus", "clubRoles",
	"playerType", "enableSkillTracking",
}

var csvSampleRow = []string{
	"Alex", "Smith", "2010-04-12", "Male",
	"Jamie Smith", "07700900000", "jamie.smith@example.com",
	"Jamie Smith", "07700900000",
	"2024-09-01", "Paid", "Captain",
	"Junior Club Member", "true",
}

// ImportRowError ties a validation failure back to its 1-based data row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportReport struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

type CSVService interface {
	Template() []byte
	// Import reads a roster CSV and creates a player per valid row. Invalid
	// rows are reported, not fatal; the valid rows around them still land.
	Import(ctx context.Context, clubID string, r io.Reader) (*ImportReport, error)
}

type csvService struct {
	roster RosterService
}

func NewCSVService(roster RosterService) CSVService {
	return &csvService{roster: roster}
}

func (s *csvService) Template() []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	w.Write(csvHeader)
	w.Write(csvSampleRow)
	w.Flush()
	return buf.Bytes()
}

func (s *csvService) Import(ctx context.Context, clubID string, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(newBOMReader(r))
	reader.FieldsPerRecord = len(csvHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, ErrValidationFailed
	}
	if !headerMatches(header) {
		return nil, fmt.Errorf("%w: unexpected CSV header", ErrValidationFailed)
	}

	report := &ImportReport{}
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			report.Errors = append(report.Errors, ImportRowError{Row: row, Message: "malformed row"})
			continue
		}

		input, err := rowToInput(record, clubID)
		if err != nil {
			report.Errors = append(report.Errors, ImportRowError{Row: row, Message: err.Error()})
			continue
		}

		if _, err := s.roster.CreatePlayer(ctx, input); err != nil {
			report.Errors = append(report.Errors, ImportRowError{Row: row, Message: err.Error()})
			continue
		}
		report.Imported++
	}
	return report, nil
}

func rowToInput(record []string, clubID string) (PlayerInput, error) {
	get := func(i int) string { return strings.TrimSpace(record[i]) }

	dob, err := normalizeDate(get(2))
	if err != nil {
		return PlayerInput{}, fmt.Errorf("dob: %w", err)
	}
	joining, err := normalizeDate(get(9))
	if err != nil {
		return PlayerInput{}, fmt.Errorf("joiningDate: %w", err)
	}

	input := PlayerInput{
		FirstName:           get(0),
		SurName:             get(1),
		DOB:                 dob,
		Gender:              get(3),
		JoiningDate:         joining,
		PlayerType:          get(12),
		EnableSkillTracking: strings.EqualFold(get(13), "true"),
		ClubID:              clubID,
	}
	if v := get(4); v != "" {
		input.ParentName = &v
	}
	if v := get(5); v != "" {
		input.ParentPhone = &v
	}
	if v := get(6); v != "" {
		input.Email = &v
	}
	if v := get(7); v != "" {
		input.EmergencyContactName = &v
	}
	if v := get(8); v != "" {
		input.EmergencyContactPhone = &v
	}
	if v := get(10); v != "" {
		input.PaymentStatus = &v
	}
	if v := get(11); v != "" {
		input.ClubRoles = splitRoles(v)
	}
	return input, nil
}

// normalizeDate accepts the template's ISO format plus the DD/MM/YYYY that
// spreadsheets tend to rewrite dates into.
func normalizeDate(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", ErrInvalidDate
}

func splitRoles(raw string) []string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(h), csvHeader[i]) {
			return false
		}
	}
	return true
}

// newBOMReader strips a leading UTF-8 BOM if present.
func newBOMReader(r io.Reader) io.Reader {
	buf := make([]byte, 3)
	n, _ := io.ReadFull(r, buf)
	if n == 3 && bytes.Equal(buf, utf8BOM) {
		return r
	}
	return io.MultiReader(bytes.NewReader(buf[:n]), r)
}
