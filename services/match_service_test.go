package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/pegboard"
)

var matchNow = time.Date(2026, 3, 14, 20, 30, 0, 0, time.UTC)

func matchPlayer(id string, gender models.Gender) models.Player {
	return models.Player{
		ID:         id,
		ClubID:     "club-1",
		FirstName:  id,
		Gender:     gender,
		PlayerType: models.PlayerTypeAdult,
	}
}

func guestPlayer(id string, gender models.Gender) models.Player {
	p := matchPlayer(models.GuestIDPrefix+id, gender)
	p.PlayerType = models.PlayerTypeGuest
	return p
}

func recordFor(t *testing.T, records []models.MatchRecord, playerID string) models.MatchRecord {
	t.Helper()
	for _, r := range records {
		if r.PlayerID == playerID {
			return r
		}
	}
	t.Fatalf("no record for player %s", playerID)
	return models.MatchRecord{}
}

func TestRecordMatchWritesRecordPerMember(t *testing.T) {
	w1 := matchPlayer("w1", models.GenderMale)
	w2 := matchPlayer("w2", models.GenderFemale)
	l1 := matchPlayer("l1", models.GenderMale)
	guest := guestPlayer("g1", models.GenderFemale)

	playerRepo := newFakePlayerRepo(w1, w2, l1)
	historyRepo := &fakeHistoryRepo{}
	svc := &matchService{historyRepo: historyRepo, playerRepo: playerRepo, logger: discardLogger}

	outcome := &pegboard.Outcome{
		CourtNo:  2,
		Winners:  []models.Player{w1, w2},
		Losers:   []models.Player{l1, guest},
		Category: models.CategoryMixedDoubles,
		Score:    "21/15",
		Duration: "14:32",
	}
	if err := svc.RecordMatch(context.Background(), outcome, matchNow); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	// One record per member, none for the guest.
	if len(historyRepo.records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(historyRepo.records))
	}
	for _, r := range historyRepo.records {
		if r.PlayerID == guest.ID {
			t.Fatal("guest owns a match record")
		}
		if r.MatchID != historyRepo.records[0].MatchID {
			t.Error("records of one match carry different match ids")
		}
		if r.CourtNo != 2 || r.Duration != "14:32" {
			t.Errorf("court/duration not carried: %+v", r)
		}
	}

	winRec := recordFor(t, historyRepo.records, "w1")
	if winRec.Result != models.ResultWin || winRec.Points != 21 {
		t.Errorf("winner record = %s/%d, want Win/21", winRec.Result, winRec.Points)
	}
	if winRec.Partner != "w2" || winRec.PartnerSex != models.GenderFemale {
		t.Errorf("partner decoration wrong: %s/%s", winRec.Partner, winRec.PartnerSex)
	}
	if len(winRec.Opponents) != 2 {
		t.Fatalf("expected 2 opponents, got %d", len(winRec.Opponents))
	}

	loseRec := recordFor(t, historyRepo.records, "l1")
	if loseRec.Result != models.ResultLoss || loseRec.Points != 15 {
		t.Errorf("loser record = %s/%d, want Loss/15", loseRec.Result, loseRec.Points)
	}
	// The guest partners the member even though they own no record themselves.
	if loseRec.Partner != guest.Name() {
		t.Errorf("loser partner = %q, want guest name %q", loseRec.Partner, guest.Name())
	}

	// Winner counters and rolling aggregates land on the roster.
	if got := playerRepo.players["w1"].Wins; got != 1 {
		t.Errorf("w1 wins = %d, want 1", got)
	}
	if got := playerRepo.players["l1"].Wins; got != 0 {
		t.Errorf("l1 wins = %d, want 0", got)
	}
	if got := playerRepo.players["w1"].AveragePoints; got != 21 {
		t.Errorf("w1 average = %d, want 21", got)
	}
	if got := playerRepo.players["l1"].MatchCount; got != 1 {
		t.Errorf("l1 match count = %d, want 1", got)
	}
}

func TestRecordMatchReversedScoreStillFavoursWinners(t *testing.T) {
	w1 := matchPlayer("w1", models.GenderMale)
	l1 := matchPlayer("l1", models.GenderMale)
	playerRepo := newFakePlayerRepo(w1, l1)
	historyRepo := &fakeHistoryRepo{}
	svc := &matchService{historyRepo: historyRepo, playerRepo: playerRepo, logger: discardLogger}

	// The raw score arrives in court order; the winning side may be second.
	outcome := &pegboard.Outcome{
		CourtNo:  1,
		Winners:  []models.Player{w1},
		Losers:   []models.Player{l1},
		Category: models.CategoryMensSingles,
		Score:    "15/21",
		Duration: "10:00",
	}
	if err := svc.RecordMatch(context.Background(), outcome, matchNow); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	if rec := recordFor(t, historyRepo.records, "w1"); rec.Points != 21 {
		t.Errorf("winner points = %d, want 21", rec.Points)
	}
	if rec := recordFor(t, historyRepo.records, "l1"); rec.Points != 15 {
		t.Errorf("loser points = %d, want 15", rec.Points)
	}
}

func TestRecordMatchAllGuestsLeavesNoHistory(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	historyRepo := &fakeHistoryRepo{insertErr: errors.New("must not be called")}
	svc := &matchService{historyRepo: historyRepo, playerRepo: playerRepo, logger: discardLogger}

	outcome := &pegboard.Outcome{
		CourtNo:  1,
		Winners:  []models.Player{guestPlayer("a", models.GenderMale)},
		Losers:   []models.Player{guestPlayer("b", models.GenderMale)},
		Category: models.CategoryMensSingles,
		Score:    "21/10",
	}
	if err := svc.RecordMatch(context.Background(), outcome, matchNow); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}
	if len(historyRepo.records) != 0 {
		t.Errorf("expected no records, got %d", len(historyRepo.records))
	}
}

func TestRecordMatchInvalidScore(t *testing.T) {
	svc := &matchService{historyRepo: &fakeHistoryRepo{}, playerRepo: newFakePlayerRepo(), logger: discardLogger}
	outcome := &pegboard.Outcome{Score: "21-15"}
	if err := svc.RecordMatch(context.Background(), outcome, matchNow); !errors.Is(err, pegboard.ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}
}

func TestRankedRoster(t *testing.T) {
	p1 := matchPlayer("p1", models.GenderMale)
	p2 := matchPlayer("p2", models.GenderFemale)
	playerRepo := newFakePlayerRepo(p1, p2)
	historyRepo := &fakeHistoryRepo{points: map[string][]int{
		"p1": {21, 18, 15},
		"p2": {},
	}}
	svc := &matchService{historyRepo: historyRepo, playerRepo: playerRepo, logger: discardLogger}

	ranked, err := svc.RankedRoster(context.Background(), "club-1")
	if err != nil {
		t.Fatalf("RankedRoster: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked players, got %d", len(ranked))
	}

	byID := make(map[string]models.RankedPlayer, len(ranked))
	for _, r := range ranked {
		byID[r.ID] = r
	}
	if got := byID["p1"]; got.AvgScore != 18 || got.MatchCount != 3 {
		t.Errorf("p1 = avg %d count %d, want avg 18 count 3", got.AvgScore, got.MatchCount)
	}
	if got := byID["p2"]; got.AvgScore != 0 || got.MatchCount != 0 {
		t.Errorf("p2 = avg %d count %d, want zeros", got.AvgScore, got.MatchCount)
	}
}
