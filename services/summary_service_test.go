package services

import (
	"context"
	"errors"
	"testing"

	"github.com/smashhub/smashhub-server/models"
)

const summaryDate = "2026-03-14"

func newSummaryServiceForTest(playerRepo *fakePlayerRepo) (*summaryService, *fakeSummaryRepo) {
	repo := newFakeSummaryRepo()
	svc := &summaryService{
		summaryRepo: repo,
		playerRepo:  playerRepo,
		cache:       nil, // nil client is a no-op cache
		logger:      discardLogger,
	}
	return svc, repo
}

func TestRecordResultNoWinners(t *testing.T) {
	svc, _ := newSummaryServiceForTest(newFakePlayerRepo())
	if _, err := svc.RecordResult(context.Background(), "club-1", summaryDate, nil); !errors.Is(err, ErrNoWinnersProvided) {
		t.Fatalf("expected ErrNoWinnersProvided, got %v", err)
	}
}

func TestRecordResultAccumulates(t *testing.T) {
	svc, _ := newSummaryServiceForTest(newFakePlayerRepo())
	ctx := context.Background()

	// First match: a mixed pair wins.
	summary, err := svc.RecordResult(ctx, "club-1", summaryDate, []models.SummaryWinner{
		{PlayerID: "m1", Gender: models.GenderMale},
		{PlayerID: "f1", Gender: models.GenderFemale},
	})
	if err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if summary.TotalMatches != 1 {
		t.Errorf("total matches = %d, want 1", summary.TotalMatches)
	}
	if summary.TopMaleID == nil || *summary.TopMaleID != "m1" {
		t.Error("first male winner did not take the male slot")
	}
	if summary.TopFemaleID == nil || *summary.TopFemaleID != "f1" {
		t.Error("first female winner did not take the female slot")
	}
	if summary.TopPlayerID == nil || *summary.TopPlayerID != "m1" {
		t.Error("top player should be the earliest winner on a tie")
	}

	// Two more wins for f1 push her to the top overall.
	for i := 0; i < 2; i++ {
		summary, err = svc.RecordResult(ctx, "club-1", summaryDate, []models.SummaryWinner{
			{PlayerID: "f1", Gender: models.GenderFemale},
		})
		if err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}
	if summary.TotalMatches != 3 {
		t.Errorf("total matches = %d, want 3", summary.TotalMatches)
	}
	if *summary.TopPlayerID != "f1" {
		t.Errorf("top player = %s, want f1", *summary.TopPlayerID)
	}
	if got := winsFor(summary, "f1"); got != 3 {
		t.Errorf("f1 wins = %d, want 3", got)
	}
	if got := winsFor(summary, "m1"); got != 1 {
		t.Errorf("m1 wins = %d, want 1", got)
	}
}

func TestRecordResultGenderSlotHeldByFirstWinner(t *testing.T) {
	svc, _ := newSummaryServiceForTest(newFakePlayerRepo())
	ctx := context.Background()

	if _, err := svc.RecordResult(ctx, "club-1", summaryDate, []models.SummaryWinner{
		{PlayerID: "m1", Gender: models.GenderMale},
	}); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	var summary *models.MatchSummary
	var err error
	for i := 0; i < 2; i++ {
		summary, err = svc.RecordResult(ctx, "club-1", summaryDate, []models.SummaryWinner{
			{PlayerID: "m2", Gender: models.GenderMale},
		})
		if err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}

	// m2 leads overall but the male slot stays with the day's first male winner.
	if *summary.TopPlayerID != "m2" {
		t.Errorf("top player = %s, want m2", *summary.TopPlayerID)
	}
	if *summary.TopMaleID != "m1" {
		t.Errorf("top male = %s, want m1", *summary.TopMaleID)
	}
}

func TestGetDecoratesWinners(t *testing.T) {
	m1 := matchPlayer("m1", models.GenderMale)
	f1 := matchPlayer("f1", models.GenderFemale)
	playerRepo := newFakePlayerRepo(m1, f1)
	svc, _ := newSummaryServiceForTest(playerRepo)
	ctx := context.Background()

	if _, err := svc.RecordResult(ctx, "club-1", summaryDate, []models.SummaryWinner{
		{PlayerID: "m1", Gender: models.GenderMale},
		{PlayerID: "f1", Gender: models.GenderFemale},
	}); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	decorated, err := svc.Get(ctx, "club-1", summaryDate)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if decorated.TotalMatches != 1 {
		t.Errorf("total matches = %d, want 1", decorated.TotalMatches)
	}
	if decorated.TopMale == nil || decorated.TopMale.ID != "m1" || decorated.TopMale.Wins != 1 {
		t.Errorf("top male not resolved: %+v", decorated.TopMale)
	}
	if decorated.TopFemale == nil || decorated.TopFemale.ID != "f1" {
		t.Errorf("top female not resolved: %+v", decorated.TopFemale)
	}
	if decorated.TopPlayer == nil {
		t.Error("top player not resolved")
	}
}

func TestGetDeletedWinnerDegradesToEmptySlot(t *testing.T) {
	// Only the female winner still exists on the roster.
	f1 := matchPlayer("f1", models.GenderFemale)
	playerRepo := newFakePlayerRepo(f1)
	svc, _ := newSummaryServiceForTest(playerRepo)
	ctx := context.Background()

	if _, err := svc.RecordResult(ctx, "club-1", summaryDate, []models.SummaryWinner{
		{PlayerID: "deleted", Gender: models.GenderMale},
		{PlayerID: "f1", Gender: models.GenderFemale},
	}); err != nil {
		t.Fatalf("RecordResult: %v", err)
	}

	decorated, err := svc.Get(ctx, "club-1", summaryDate)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if decorated.TopMale != nil {
		t.Errorf("deleted winner should leave an empty slot, got %+v", decorated.TopMale)
	}
	if decorated.TopFemale == nil {
		t.Error("surviving winner lost her slot")
	}
}

func TestGetMissingSummary(t *testing.T) {
	svc, _ := newSummaryServiceForTest(newFakePlayerRepo())
	if _, err := svc.Get(context.Background(), "club-1", summaryDate); !errors.Is(err, ErrSummaryNotFound) {
		t.Fatalf("expected ErrSummaryNotFound, got %v", err)
	}
}
