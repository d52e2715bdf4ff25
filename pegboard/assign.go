package pegboard

import (
	"math"
	"math/rand"

	"github.com/smashhub/smashhub-server/models"
)

// eligibleWindow keeps rotation fair: unless the caller opts into the full
// pool, only the next seven waiting players behind the fixed player are
// considered for selection.
const eligibleWindow = 7

type SkillLevel string

const (
	LevelHigh   SkillLevel = "High"
	LevelMedium SkillLevel = "Medium"
	LevelLow    SkillLevel = "Low"
)

func (l SkillLevel) Valid() bool {
	return l == LevelHigh || l == LevelMedium || l == LevelLow
}

// AverageScore is the rolling skill metric: the rounded arithmetic mean of a
// player's recent match points. An empty history averages to zero.
func AverageScore(points []int) int {
	if len(points) == 0 {
		return 0
	}
	total := 0
	for _, p := range points {
		total += p
	}
	return int(math.Round(float64(total) / float64(len(points))))
}

// BucketFor maps an average score onto a skill bucket.
func BucketFor(avg int) SkillLevel {
	switch {
	case avg >= 70:
		return LevelHigh
	case avg >= 40:
		return LevelMedium
	default:
		return LevelLow
	}
}

// AutoAssign picks the players for one court: the first player in the pool is
// always force-included (the "next up" player), the rest are drawn by random
// shuffle of the eligible window. Mixed doubles is deterministic instead:
// first male, first female, second male, second female.
//
// The input pool is never mutated; the returned selection is a fresh slice.
func AutoAssign(pool []models.Player, category models.MatchCategory, allowFullPool bool) ([]models.Player, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if len(pool) == 0 {
		return nil, ErrNoPlayers
	}

	fixed := pool[0]
	if fixed.IsGuest() {
		return nil, ErrWrongGenderFixed
	}

	window := pool[1:]
	if !allowFullPool && len(window) > eligibleWindow {
		window = window[:eligibleWindow]
	}

	eligible := make([]models.Player, 0, len(window))
	for _, p := range window {
		if !p.IsGuest() {
			eligible = append(eligible, p)
		}
	}

	switch category {
	case models.CategoryMensSingles, models.CategoryMensDoubles:
		if fixed.Gender != models.GenderMale {
			return nil, ErrWrongGenderFixed
		}
		eligible = filterGender(eligible, models.GenderMale)
	case models.CategoryWomensSingles, models.CategoryWomensDoubles:
		if fixed.Gender != models.GenderFemale {
			return nil, ErrWrongGenderFixed
		}
		eligible = filterGender(eligible, models.GenderFemale)
	case models.CategoryMixedDoubles:
		return assignMixed(fixed, eligible)
	}

	need := 4
	if category.Singles() {
		need = 2
	}
	if len(eligible) < need-1 {
		return nil, ErrNotEnoughPlayers
	}

	shuffled := shuffle(withoutID(eligible, fixed.ID))
	if len(shuffled) < need-1 {
		return nil, ErrNotEnoughPlayers
	}

	selected := append([]models.Player{fixed}, shuffled[:need-1]...)
	if countUnique(selected) < need {
		return nil, ErrDuplicateSelection
	}
	return selected, nil
}

// assignMixed builds the deterministic XD four: the sub-pools keep pool order,
// so the next-up player occupies the first slot of their gender.
func assignMixed(fixed models.Player, eligible []models.Player) ([]models.Player, error) {
	combined := append([]models.Player{fixed}, eligible...)
	males := filterGender(combined, models.GenderMale)
	females := filterGender(combined, models.GenderFemale)

	if len(males) < 2 || len(females) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	selected := []models.Player{males[0], females[0], males[1], females[1]}
	if countUnique(selected) < 4 {
		return nil, ErrDuplicateSelection
	}
	return selected, nil
}

// SmartAssign selects four players by skill bucket. The requested level's
// bucket goes first; the remaining buckets are appended as fallback so a thin
// bucket still yields a full court.
func SmartAssign(ranked []models.RankedPlayer, category models.MatchCategory, level SkillLevel) ([]models.Player, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if !level.Valid() {
		return nil, ErrInvalidSkillLevel
	}

	eligible := make([]models.RankedPlayer, 0, len(ranked))
	for _, p := range ranked {
		if p.IsGuest() {
			continue
		}
		switch category {
		case models.CategoryMensSingles, models.CategoryMensDoubles:
			if p.Gender != models.GenderMale {
				continue
			}
		case models.CategoryWomensSingles, models.CategoryWomensDoubles:
			if p.Gender != models.GenderFemale {
				continue
			}
		}
		eligible = append(eligible, p)
	}

	if len(eligible) < 4 {
		return nil, ErrNotEnoughPlayers
	}

	var high, medium, low []models.RankedPlayer
	for _, p := range eligible {
		switch BucketFor(p.AvgScore) {
		case LevelHigh:
			high = append(high, p)
		case LevelMedium:
			medium = append(medium, p)
		default:
			low = append(low, p)
		}
	}

	var ordered []models.RankedPlayer
	switch level {
	case LevelHigh:
		ordered = concat(high, medium, low)
	case LevelMedium:
		ordered = concat(medium, high, low)
	case LevelLow:
		ordered = concat(low, high, medium)
	}

	selected := make([]models.Player, 0, 4)
	seen := make(map[string]struct{}, 4)
	for _, p := range ordered {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		selected = append(selected, p.Player)
		if len(selected) == 4 {
			break
		}
	}

	if len(selected) < 4 {
		return nil, ErrNotEnoughPlayers
	}
	return selected, nil
}

func filterGender(players []models.Player, g models.Gender) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.Gender == g {
			out = append(out, p)
		}
	}
	return out
}

func withoutID(players []models.Player, id string) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func shuffle(players []models.Player) []models.Player {
	out := make([]models.Player, len(players))
	copy(out, players)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func countUnique(players []models.Player) int {
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		seen[p.ID] = struct{}{}
	}
	return len(seen)
}

func concat(groups ...[]models.RankedPlayer) []models.RankedPlayer {
	var out []models.RankedPlayer
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
