package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/smashhub/smashhub-server/models"
)

func newCSVServiceForTest() (CSVService, *fakePlayerRepo) {
	repo := newFakePlayerRepo()
	roster := &rosterService{playerRepo: repo, now: func() time.Time { return filterNow }}
	return NewCSVService(roster), repo
}

func TestTemplateStartsWithBOMAndHeader(t *testing.T) {
	svc, _ := newCSVServiceForTest()
	data := svc.Template()

	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatal("template does not start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimSpace(string(data[len(utf8BOM):])), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one sample row, got %d lines", len(lines))
	}
	if got, want := strings.TrimSpace(lines[0]), strings.Join(csvHeader, ","); got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
}

func TestImportCreatesValidRowsAndReportsBadOnes(t *testing.T) {
	svc, repo := newCSVServiceForTest()

	csvData := strings.Join([]string{
		strings.Join(csvHeader, ","),
		// ISO dates, parent details, two roles.
		"Alex,Smith,2010-04-12,Male,Jamie Smith,07700900000,jamie@example.com,Jamie Smith,07700900000,2024-09-01,Paid,Captain;Treasurer,Junior Club Member,true",
		// Spreadsheet-style DD/MM/YYYY dates still land.
		"Mia,Jones,20/08/1992,Female,,,,,,01/02/2023,,,Adult Club Member,false",
		// Unparseable dob is a per-row error, not a fatal one.
		"Bad,Row,April 2010,Male,,,,,,,,,Adult Club Member,false",
		"Casey,Lee,2000-11-30,Female,,,,,,,,,Club Member,true",
	}, "\n")

	report, err := svc.Import(context.Background(), "club-1", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Imported != 3 {
		t.Errorf("imported = %d, want 3", report.Imported)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 row error, got %d: %v", len(report.Errors), report.Errors)
	}
	if report.Errors[0].Row != 3 {
		t.Errorf("error row = %d, want 3", report.Errors[0].Row)
	}

	players, _ := repo.ListByClub(context.Background(), "club-1", 0)
	if len(players) != 3 {
		t.Fatalf("expected 3 players on the roster, got %d", len(players))
	}

	alex := players[0]
	if alex.PlayerType != models.PlayerTypeJunior || !alex.IsJunior {
		t.Errorf("Alex should import as junior, got %s", alex.PlayerType)
	}
	if len(alex.ClubRoles) != 2 {
		t.Errorf("Alex roles = %v, want two", alex.ClubRoles)
	}

	mia := players[1]
	if mia.DOB == nil || mia.DOB.Format("2006-01-02") != "1992-08-20" {
		t.Errorf("Mia's DD/MM/YYYY dob not normalised: %v", mia.DOB)
	}
	if mia.JoiningDate == nil || mia.JoiningDate.Format("2006-01-02") != "2023-02-01" {
		t.Errorf("Mia's joining date not normalised: %v", mia.JoiningDate)
	}
}

func TestImportAcceptsBOMPrefixedFile(t *testing.T) {
	svc, _ := newCSVServiceForTest()

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	buf.WriteString(strings.Join(csvHeader, ",") + "\n")
	buf.WriteString("Alex,Smith,2010-04-12,Male,,,,,,,,,Junior Club Member,true\n")

	report, err := svc.Import(context.Background(), "club-1", &buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Imported != 1 || len(report.Errors) != 0 {
		t.Errorf("report = %+v, want one clean import", report)
	}
}

func TestImportRejectsWrongHeader(t *testing.T) {
	svc, _ := newCSVServiceForTest()

	csvData := "name,dob\nAlex,2010-04-12\n"
	if _, err := svc.Import(context.Background(), "club-1", strings.NewReader(csvData)); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestImportMalformedRowReported(t *testing.T) {
	svc, _ := newCSVServiceForTest()

	csvData := strings.Join([]string{
		strings.Join(csvHeader, ","),
		"Alex,Smith,2010-04-12,Male", // too few fields
		"Casey,Lee,2000-11-30,Female,,,,,,,,,Club Member,true",
	}, "\n")

	report, err := svc.Import(context.Background(), "club-1", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Imported != 1 {
		t.Errorf("imported = %d, want 1", report.Imported)
	}
	if len(report.Errors) != 1 || report.Errors[0].Message != "malformed row" {
		t.Errorf("errors = %v, want one malformed-row error", report.Errors)
	}
}
