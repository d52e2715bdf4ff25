package pegboard

import (
	"errors"
	"testing"

	"github.com/smashhub/smashhub-server/models"
)

func mkPlayer(id string, gender models.Gender) models.Player {
	return models.Player{
		ID:         id,
		FirstName:  id,
		Gender:     gender,
		PlayerType: models.PlayerTypeAdult,
	}
}

func mkGuest(id string, gender models.Gender) models.Player {
	p := mkPlayer(models.GuestIDPrefix+id, gender)
	p.PlayerType = models.PlayerTypeGuest
	return p
}

func mkRanked(id string, gender models.Gender, avg int) models.RankedPlayer {
	return models.RankedPlayer{Player: mkPlayer(id, gender), AvgScore: avg}
}

func ids(players []models.Player) map[string]bool {
	out := make(map[string]bool, len(players))
	for _, p := range players {
		out[p.ID] = true
	}
	return out
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name   string
		points []int
		want   int
	}{
		{"empty history", nil, 0},
		{"single match", []int{21}, 21},
		{"rounds half up", []int{21, 18}, 20},     // 19.5 -> 20
		{"rounds down", []int{10, 11, 11}, 11},    // 10.66 -> 11
		{"all zeros", []int{0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageScore(tt.points); got != tt.want {
				t.Errorf("AverageScore(%v) = %d, want %d", tt.points, got, tt.want)
			}
		})
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		avg  int
		want SkillLevel
	}{
		{0, LevelLow},
		{39, LevelLow},
		{40, LevelMedium},
		{69, LevelMedium},
		{70, LevelHigh},
		{100, LevelHigh},
	}
	for _, tt := range tests {
		if got := BucketFor(tt.avg); got != tt.want {
			t.Errorf("BucketFor(%d) = %s, want %s", tt.avg, got, tt.want)
		}
	}
}

func TestAutoAssignForceIncludesNextUp(t *testing.T) {
	pool := []models.Player{
		mkPlayer("p1", models.GenderMale),
		mkPlayer("p2", models.GenderMale),
		mkPlayer("p3", models.GenderMale),
		mkPlayer("p4", models.GenderMale),
		mkPlayer("p5", models.GenderMale),
	}

	for i := 0; i < 20; i++ {
		selected, err := AutoAssign(pool, models.CategoryMensDoubles, false)
		if err != nil {
			t.Fatalf("AutoAssign returned error: %v", err)
		}
		if len(selected) != 4 {
			t.Fatalf("expected 4 players, got %d", len(selected))
		}
		if selected[0].ID != "p1" {
			t.Fatalf("next-up player not first in selection: got %s", selected[0].ID)
		}
	}
}

func TestAutoAssignSinglesPicksTwo(t *testing.T) {
	pool := []models.Player{
		mkPlayer("p1", models.GenderFemale),
		mkPlayer("p2", models.GenderFemale),
		mkPlayer("p3", models.GenderFemale),
	}

	selected, err := AutoAssign(pool, models.CategoryWomensSingles, false)
	if err != nil {
		t.Fatalf("AutoAssign returned error: %v", err)
	}
	if len(selected) != 2 {
		t.Fatalf("expected 2 players for singles, got %d", len(selected))
	}
	if selected[0].ID != "p1" {
		t.Errorf("next-up player not first: got %s", selected[0].ID)
	}
}

func TestAutoAssignRespectsEligibleWindow(t *testing.T) {
	pool := make([]models.Player, 0, 12)
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11", "p12"} {
		pool = append(pool, mkPlayer(id, models.GenderMale))
	}

	for i := 0; i < 50; i++ {
		selected, err := AutoAssign(pool, models.CategoryMensDoubles, false)
		if err != nil {
			t.Fatalf("AutoAssign returned error: %v", err)
		}
		got := ids(selected)
		for _, outside := range []string{"p9", "p10", "p11", "p12"} {
			if got[outside] {
				t.Fatalf("player %s selected from outside the eligible window", outside)
			}
		}
	}
}

func TestAutoAssignFullPoolOptIn(t *testing.T) {
	pool := make([]models.Player, 0, 12)
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11", "p12"} {
		pool = append(pool, mkPlayer(id, models.GenderMale))
	}

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		selected, err := AutoAssign(pool, models.CategoryMensDoubles, true)
		if err != nil {
			t.Fatalf("AutoAssign returned error: %v", err)
		}
		for _, p := range selected {
			seen[p.ID] = true
		}
	}
	if !seen["p9"] && !seen["p10"] && !seen["p11"] && !seen["p12"] {
		t.Error("full-pool mode never selected anyone beyond the window")
	}
}

func TestAutoAssignGenderFilter(t *testing.T) {
	pool := []models.Player{
		mkPlayer("m1", models.GenderMale),
		mkPlayer("f1", models.GenderFemale),
		mkPlayer("m2", models.GenderMale),
		mkPlayer("f2", models.GenderFemale),
		mkPlayer("m3", models.GenderMale),
		mkPlayer("m4", models.GenderMale),
	}

	selected, err := AutoAssign(pool, models.CategoryMensDoubles, false)
	if err != nil {
		t.Fatalf("AutoAssign returned error: %v", err)
	}
	for _, p := range selected {
		if p.Gender != models.GenderMale {
			t.Errorf("women's entry %s selected for men's doubles", p.ID)
		}
	}
}

func TestAutoAssignWrongGenderFixed(t *testing.T) {
	pool := []models.Player{
		mkPlayer("f1", models.GenderFemale),
		mkPlayer("m1", models.GenderMale),
		mkPlayer("m2", models.GenderMale),
		mkPlayer("m3", models.GenderMale),
		mkPlayer("m4", models.GenderMale),
	}

	_, err := AutoAssign(pool, models.CategoryMensDoubles, false)
	if !errors.Is(err, ErrWrongGenderFixed) {
		t.Fatalf("expected ErrWrongGenderFixed, got %v", err)
	}
}

func TestAutoAssignExcludesGuests(t *testing.T) {
	pool := []models.Player{
		mkPlayer("p1", models.GenderMale),
		mkGuest("g1", models.GenderMale),
		mkPlayer("p2", models.GenderMale),
		mkGuest("g2", models.GenderMale),
		mkPlayer("p3", models.GenderMale),
		mkPlayer("p4", models.GenderMale),
	}

	for i := 0; i < 20; i++ {
		selected, err := AutoAssign(pool, models.CategoryMensDoubles, false)
		if err != nil {
			t.Fatalf("AutoAssign returned error: %v", err)
		}
		for _, p := range selected {
			if p.IsGuest() {
				t.Fatalf("guest %s selected by auto assignment", p.ID)
			}
		}
	}
}

func TestAutoAssignMixedDeterministic(t *testing.T) {
	pool := []models.Player{
		mkPlayer("m1", models.GenderMale),
		mkPlayer("f1", models.GenderFemale),
		mkPlayer("m2", models.GenderMale),
		mkPlayer("f2", models.GenderFemale),
		mkPlayer("m3", models.GenderMale),
	}

	selected, err := AutoAssign(pool, models.CategoryMixedDoubles, false)
	if err != nil {
		t.Fatalf("AutoAssign returned error: %v", err)
	}

	want := []string{"m1", "f1", "m2", "f2"}
	for i, id := range want {
		if selected[i].ID != id {
			t.Errorf("slot %d = %s, want %s", i, selected[i].ID, id)
		}
	}
}

func TestAutoAssignMixedNotEnoughOfOneGender(t *testing.T) {
	pool := []models.Player{
		mkPlayer("m1", models.GenderMale),
		mkPlayer("m2", models.GenderMale),
		mkPlayer("m3", models.GenderMale),
		mkPlayer("f1", models.GenderFemale),
	}

	_, err := AutoAssign(pool, models.CategoryMixedDoubles, false)
	if !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
}

func TestAutoAssignEmptyPool(t *testing.T) {
	_, err := AutoAssign(nil, models.CategoryMensDoubles, false)
	if !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
}

func TestSmartAssignPrefersRequestedBucket(t *testing.T) {
	ranked := []models.RankedPlayer{
		mkRanked("h1", models.GenderMale, 80),
		mkRanked("h2", models.GenderMale, 75),
		mkRanked("h3", models.GenderMale, 90),
		mkRanked("h4", models.GenderMale, 71),
		mkRanked("m1", models.GenderMale, 50),
		mkRanked("l1", models.GenderMale, 10),
	}

	selected, err := SmartAssign(ranked, models.CategoryMensDoubles, LevelHigh)
	if err != nil {
		t.Fatalf("SmartAssign returned error: %v", err)
	}
	got := ids(selected)
	for _, id := range []string{"h1", "h2", "h3", "h4"} {
		if !got[id] {
			t.Errorf("high bucket player %s not selected", id)
		}
	}
}

func TestSmartAssignFallsBackAcrossBuckets(t *testing.T) {
	ranked := []models.RankedPlayer{
		mkRanked("h1", models.GenderMale, 80),
		mkRanked("h2", models.GenderMale, 75),
		mkRanked("m1", models.GenderMale, 50),
		mkRanked("l1", models.GenderMale, 10),
	}

	selected, err := SmartAssign(ranked, models.CategoryMensDoubles, LevelHigh)
	if err != nil {
		t.Fatalf("SmartAssign returned error: %v", err)
	}
	if len(selected) != 4 {
		t.Fatalf("expected a full court of 4, got %d", len(selected))
	}
	// Requested bucket members must lead the selection.
	if selected[0].ID != "h1" || selected[1].ID != "h2" {
		t.Errorf("high bucket not selected first: got %s, %s", selected[0].ID, selected[1].ID)
	}
}

func TestSmartAssignExcludesGuestsAndWrongGender(t *testing.T) {
	ranked := []models.RankedPlayer{
		mkRanked("m1", models.GenderMale, 80),
		{Player: mkGuest("g1", models.GenderMale), AvgScore: 95},
		mkRanked("f1", models.GenderFemale, 85),
		mkRanked("m2", models.GenderMale, 60),
		mkRanked("m3", models.GenderMale, 55),
		mkRanked("m4", models.GenderMale, 20),
	}

	selected, err := SmartAssign(ranked, models.CategoryMensDoubles, LevelHigh)
	if err != nil {
		t.Fatalf("SmartAssign returned error: %v", err)
	}
	got := ids(selected)
	if got[models.GuestIDPrefix+"g1"] {
		t.Error("guest selected by smart assignment")
	}
	if got["f1"] {
		t.Error("female player selected for men's doubles")
	}
}

func TestSmartAssignNotEnoughPlayers(t *testing.T) {
	ranked := []models.RankedPlayer{
		mkRanked("m1", models.GenderMale, 80),
		mkRanked("m2", models.GenderMale, 60),
		mkRanked("m3", models.GenderMale, 40),
	}

	_, err := SmartAssign(ranked, models.CategoryMensDoubles, LevelMedium)
	if !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
}

func TestSmartAssignNoDuplicates(t *testing.T) {
	ranked := []models.RankedPlayer{
		mkRanked("p1", models.GenderMale, 80),
		mkRanked("p1", models.GenderMale, 80), // same player listed twice
		mkRanked("p2", models.GenderMale, 60),
		mkRanked("p3", models.GenderMale, 50),
		mkRanked("p4", models.GenderMale, 40),
	}

	selected, err := SmartAssign(ranked, models.CategoryMensDoubles, LevelHigh)
	if err != nil {
		t.Fatalf("SmartAssign returned error: %v", err)
	}
	if countUnique(selected) != 4 {
		t.Errorf("selection contains duplicates: %v", ids(selected))
	}
}
