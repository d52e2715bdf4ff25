package pegboard

import (
	"math/rand"

	"github.com/smashhub/smashhub-server/models"
)

// Suggestion is one previewable team option for the Smart Assign modal.
type Suggestion struct {
	Label   string          `json:"label"`
	Players []models.Player `json:"players"`
}

const (
	SuggestionHard     = "Hard"
	SuggestionMedium   = "Medium"
	SuggestionEasy     = "Easy"
	SuggestionSurprise = "Surprise"
)

// SuggestedTeams produces up to four labeled team previews from the pool.
// Every option force-includes the next-up player; an option that cannot reach
// exactly four unique players is discarded rather than padded.
func SuggestedTeams(pool []models.RankedPlayer) []Suggestion {
	if len(pool) == 0 {
		return nil
	}

	first := pool[0]
	remaining := pool[1:]
	if len(remaining) > eligibleWindow {
		remaining = remaining[:eligibleWindow]
	}

	var hard, medium, easy []models.RankedPlayer
	for _, p := range remaining {
		switch BucketFor(p.AvgScore) {
		case LevelHigh:
			hard = append(hard, p)
		case LevelMedium:
			medium = append(medium, p)
		default:
			easy = append(easy, p)
		}
	}

	surprisePool := make([]models.RankedPlayer, len(pool)-1)
	copy(surprisePool, pool[1:])
	rand.Shuffle(len(surprisePool), func(i, j int) {
		surprisePool[i], surprisePool[j] = surprisePool[j], surprisePool[i]
	})

	options := []Suggestion{
		{Label: SuggestionHard, Players: buildTeam(first, hard)},
		{Label: SuggestionMedium, Players: buildTeam(first, medium)},
		{Label: SuggestionEasy, Players: buildTeam(first, easy)},
		{Label: SuggestionSurprise, Players: buildTeam(first, surprisePool)},
	}

	valid := options[:0]
	for _, o := range options {
		if len(o.Players) == 4 {
			valid = append(valid, o)
		}
	}
	return valid
}

// buildTeam fills a four around the fixed player from one bucket. Returns nil
// when the bucket cannot supply three distinct partners.
func buildTeam(first models.RankedPlayer, bucket []models.RankedPlayer) []models.Player {
	candidates := make([]models.Player, 0, len(bucket))
	for _, p := range bucket {
		if p.ID != first.ID {
			candidates = append(candidates, p.Player)
		}
	}
	shuffled := shuffle(candidates)
	if len(shuffled) < 3 {
		return nil
	}

	team := append([]models.Player{first.Player}, shuffled[:3]...)
	if countUnique(team) != 4 {
		return nil
	}
	return team
}
