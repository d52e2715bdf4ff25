package pegboard

import (
	"errors"
	"testing"
	"time"

	"github.com/smashhub/smashhub-server/models"
)

var t0 = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

func testBoard(courts int, playerIDs ...string) Board {
	pool := make([]models.Player, 0, len(playerIDs))
	for i, id := range playerIDs {
		gender := models.GenderMale
		if i%2 == 1 {
			gender = models.GenderFemale
		}
		pool = append(pool, mkPlayer(id, gender))
	}
	return NewBoard("club-1", courts, pool)
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		score   string
		a, b    int
		wantErr bool
	}{
		{"21/15", 21, 15, false},
		{"0/21", 0, 21, false},
		{"00/00", 0, 0, false},
		{"21-15", 0, 0, true},
		{"21/", 0, 0, true},
		{"", 0, 0, true},
		{"21/15 ", 0, 0, true},
		{"-1/15", 0, 0, true},
	}
	for _, tt := range tests {
		a, b, err := ParseScore(tt.score)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidScore) {
				t.Errorf("ParseScore(%q): expected ErrInvalidScore, got %v", tt.score, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseScore(%q) returned error: %v", tt.score, err)
			continue
		}
		if a != tt.a || b != tt.b {
			t.Errorf("ParseScore(%q) = %d/%d, want %d/%d", tt.score, a, b, tt.a, tt.b)
		}
	}
}

func TestScoreEntered(t *testing.T) {
	if ScoreEntered("") {
		t.Error("empty score counted as entered")
	}
	if ScoreEntered(PlaceholderScore) {
		t.Error("placeholder score counted as entered")
	}
	if !ScoreEntered("21/15") {
		t.Error("real score not counted as entered")
	}
}

func TestAssignRemovesFromPool(t *testing.T) {
	board := testBoard(2, "p1", "p2", "p3", "p4", "p5", "p6")
	selection := []models.Player{board.Pool[0], board.Pool[1], board.Pool[2], board.Pool[3]}

	next, courtNo, err := board.Assign(selection, t0)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if courtNo != 1 {
		t.Errorf("expected first free court 1, got %d", courtNo)
	}

	// No assigned player may remain selectable.
	pool := ids(next.Pool)
	for _, p := range selection {
		if pool[p.ID] {
			t.Errorf("assigned player %s still in pool", p.ID)
		}
	}
	if len(next.Pool) != 2 {
		t.Errorf("expected 2 players left in pool, got %d", len(next.Pool))
	}

	// Original board untouched.
	if len(board.Pool) != 6 {
		t.Errorf("input board mutated: pool now %d", len(board.Pool))
	}
	if next.Courts[0].StartedAt == nil {
		t.Error("court timer not started")
	}
}

func TestAssignSecondCourtWhenFirstBusy(t *testing.T) {
	board := testBoard(2, "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8")

	board, _, err := board.Assign(board.Pool[:4], t0)
	if err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	_, courtNo, err := board.Assign(board.Pool[:4], t0)
	if err != nil {
		t.Fatalf("second Assign: %v", err)
	}
	if courtNo != 2 {
		t.Errorf("expected court 2, got %d", courtNo)
	}
}

func TestAssignNoFreeCourt(t *testing.T) {
	board := testBoard(1, "p1", "p2", "p3", "p4", "p5", "p6")

	board, _, err := board.Assign(board.Pool[:4], t0)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	_, _, err = board.Assign(board.Pool[:2], t0)
	if !errors.Is(err, ErrNoFreeCourt) {
		t.Fatalf("expected ErrNoFreeCourt, got %v", err)
	}
}

func TestAssignRejectsBadSelectionSize(t *testing.T) {
	board := testBoard(1, "p1", "p2", "p3")
	_, _, err := board.Assign(board.Pool[:3], t0)
	if !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
}

func TestCompleteWinnersReturnFirst(t *testing.T) {
	board := testBoard(1, "p1", "p2", "p3", "p4", "p5", "p6")
	selection := board.Pool[:4]

	board, _, err := board.Assign(selection, t0)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	next, outcome, err := board.Complete(1, "15/21", t0.Add(12*time.Minute))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Second side of the court won 21-15.
	winners := ids(outcome.Winners)
	if !winners["p3"] || !winners["p4"] {
		t.Errorf("expected p3/p4 as winners, got %v", winners)
	}
	for _, w := range outcome.Winners {
		if w.Wins != 1 {
			t.Errorf("winner %s wins = %d, want 1", w.ID, w.Wins)
		}
	}
	for _, l := range outcome.Losers {
		if l.Wins != 0 {
			t.Errorf("loser %s wins = %d, want 0", l.ID, l.Wins)
		}
	}

	// Pool order: the two waiting players, then winners, then losers.
	wantOrder := []string{"p5", "p6", "p3", "p4", "p1", "p2"}
	if len(next.Pool) != len(wantOrder) {
		t.Fatalf("pool size = %d, want %d", len(next.Pool), len(wantOrder))
	}
	for i, id := range wantOrder {
		if next.Pool[i].ID != id {
			t.Errorf("pool[%d] = %s, want %s", i, next.Pool[i].ID, id)
		}
	}

	if !next.Courts[0].Free() {
		t.Error("court not cleared after completion")
	}
	if outcome.Duration != "12:00" {
		t.Errorf("duration = %s, want 12:00", outcome.Duration)
	}
}

func TestResolveOutcomeSidesFollowScore(t *testing.T) {
	players := []models.Player{
		mkPlayer("a", models.GenderMale),
		mkPlayer("b", models.GenderFemale),
		mkPlayer("c", models.GenderMale),
		mkPlayer("d", models.GenderFemale),
	}

	outcome, err := ResolveOutcome(3, players, "21/15", "09:30")
	if err != nil {
		t.Fatalf("ResolveOutcome: %v", err)
	}
	winners := ids(outcome.Winners)
	if !winners["a"] || !winners["b"] {
		t.Errorf("expected first pair to win 21/15, got %v", winners)
	}

	// Same court, reversed score flips the sides.
	outcome, err = ResolveOutcome(3, players, "15/21", "09:30")
	if err != nil {
		t.Fatalf("ResolveOutcome: %v", err)
	}
	winners = ids(outcome.Winners)
	if !winners["c"] || !winners["d"] {
		t.Errorf("expected second pair to win 15/21, got %v", winners)
	}
	if outcome.Category != models.CategoryMixedDoubles {
		t.Errorf("category = %s, want XD", outcome.Category)
	}

	if _, err := ResolveOutcome(3, players[:3], "21/15", ""); !errors.Is(err, ErrCourtNotOccupied) {
		t.Errorf("expected ErrCourtNotOccupied for a 3-player side split, got %v", err)
	}
}

func TestCompleteEqualScore(t *testing.T) {
	board := testBoard(1, "p1", "p2", "p3", "p4")
	board, _, err := board.Assign(board.Pool[:4], t0)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	_, _, err = board.Complete(1, "21/21", t0)
	if !errors.Is(err, ErrUndecidedScore) {
		t.Fatalf("expected ErrUndecidedScore, got %v", err)
	}
}

func TestCompleteUnknownCourt(t *testing.T) {
	board := testBoard(1, "p1", "p2")
	_, _, err := board.Complete(7, "21/15", t0)
	if !errors.Is(err, ErrCourtNotFound) {
		t.Fatalf("expected ErrCourtNotFound, got %v", err)
	}
}

func TestCompleteEmptyCourt(t *testing.T) {
	board := testBoard(1, "p1", "p2")
	_, _, err := board.Complete(1, "21/15", t0)
	if !errors.Is(err, ErrCourtNotOccupied) {
		t.Fatalf("expected ErrCourtNotOccupied, got %v", err)
	}
}

func TestCancelReturnsPlayersInCourtOrder(t *testing.T) {
	board := testBoard(1, "p1", "p2", "p3", "p4", "p5")
	board, _, err := board.Assign(board.Pool[:4], t0)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	next, returned, err := board.Cancel(1)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(returned) != 4 {
		t.Fatalf("expected 4 returned players, got %d", len(returned))
	}

	wantOrder := []string{"p5", "p1", "p2", "p3", "p4"}
	for i, id := range wantOrder {
		if next.Pool[i].ID != id {
			t.Errorf("pool[%d] = %s, want %s", i, next.Pool[i].ID, id)
		}
	}
	if !next.Courts[0].Free() {
		t.Error("court not cleared after cancel")
	}
}

func TestGuestLifecycle(t *testing.T) {
	board := testBoard(1, "p1", "p2")

	board, guest := board.AddGuest("Sam", "Visitor", models.GenderMale)
	if !guest.IsGuest() {
		t.Fatal("added guest does not classify as guest")
	}
	if len(board.Pool) != 3 {
		t.Fatalf("guest not added to pool: pool = %d", len(board.Pool))
	}

	// A guest on court cannot be removed.
	withCourt, _, err := board.Assign([]models.Player{board.Pool[0], guest}, t0)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := withCourt.RemoveGuest(guest.ID); !errors.Is(err, ErrGuestOnCourt) {
		t.Fatalf("expected ErrGuestOnCourt, got %v", err)
	}

	// Off court the guest removes cleanly.
	next, err := board.RemoveGuest(guest.ID)
	if err != nil {
		t.Fatalf("RemoveGuest: %v", err)
	}
	if ids(next.Pool)[guest.ID] {
		t.Error("guest still in pool after removal")
	}

	if _, err := next.RemoveGuest("guest-unknown"); !errors.Is(err, ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func TestSuggestedTeamsForceIncludeAndSize(t *testing.T) {
	pool := []models.RankedPlayer{
		mkRanked("p1", models.GenderMale, 50),
		mkRanked("h1", models.GenderMale, 80),
		mkRanked("h2", models.GenderMale, 75),
		mkRanked("h3", models.GenderMale, 90),
		mkRanked("m1", models.GenderMale, 50),
		mkRanked("m2", models.GenderFemale, 45),
		mkRanked("m3", models.GenderFemale, 60),
		mkRanked("l1", models.GenderFemale, 10),
	}

	options := SuggestedTeams(pool)
	if len(options) == 0 {
		t.Fatal("no suggestions produced")
	}
	for _, o := range options {
		if len(o.Players) != 4 {
			t.Errorf("option %s has %d players, want 4", o.Label, len(o.Players))
		}
		if o.Players[0].ID != "p1" {
			t.Errorf("option %s does not lead with next-up player", o.Label)
		}
		if countUnique(o.Players) != 4 {
			t.Errorf("option %s contains duplicates", o.Label)
		}
	}
}

func TestSuggestedTeamsEmptyPool(t *testing.T) {
	if got := SuggestedTeams(nil); got != nil {
		t.Errorf("expected nil for empty pool, got %v", got)
	}
}
