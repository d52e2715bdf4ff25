package pegboard

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/smashhub/smashhub-server/models"
)

// PlaceholderScore is what the score input holds before anyone types. A court
// cleared with this value goes through the no-record path.
const PlaceholderScore = "00/00"

var scorePattern = regexp.MustCompile(`^([0-9]+)/([0-9]+)$`)

// ParseScore parses a "NN/NN" score string. Both sides are unsigned integers
// with no surrounding whitespace.
func ParseScore(score string) (int, int, error) {
	m := scorePattern.FindStringSubmatch(score)
	if m == nil {
		return 0, 0, ErrInvalidScore
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	return a, b, nil
}

// ScoreEntered reports whether the score field actually holds a result.
func ScoreEntered(score string) bool {
	return score != "" && score != PlaceholderScore
}

// CourtSlot is one physical court's assignment state.
type CourtSlot struct {
	CourtNo   int             `json:"court_no"`
	Assigned  []models.Player `json:"assigned"` // len 0, 2 or 4
	StartedAt *time.Time      `json:"started_at,omitempty"`
}

// Free reports whether nothing is assigned to the court.
func (c CourtSlot) Free() bool {
	return len(c.Assigned) == 0
}

// Board holds one club's PegBoard session: the waiting pool plus the court
// slots. All mutating methods are copy-on-write — they return a new Board and
// never touch the receiver, so a caller can hold the previous state across a
// failed downstream write.
type Board struct {
	ClubID string          `json:"club_id"`
	Courts []CourtSlot     `json:"courts"`
	Pool   []models.Player `json:"pool"`
}

// Outcome describes a completed match before it is persisted.
type Outcome struct {
	CourtNo  int                  `json:"court_no"`
	Players  []models.Player      `json:"players"` // court order: team A then team B
	Winners  []models.Player      `json:"winners"`
	Losers   []models.Player      `json:"losers"`
	Category models.MatchCategory `json:"category"`
	Score    string               `json:"score"`
	Duration string               `json:"duration"` // MM:SS
}

func NewBoard(clubID string, courtCount int, pool []models.Player) Board {
	courts := make([]CourtSlot, courtCount)
	for i := range courts {
		courts[i] = CourtSlot{CourtNo: i + 1}
	}
	return Board{
		ClubID: clubID,
		Courts: courts,
		Pool:   clonePlayers(pool),
	}
}

// FreeCourt returns the number of the first free court.
func (b Board) FreeCourt() (int, bool) {
	for _, c := range b.Courts {
		if c.Free() {
			return c.CourtNo, true
		}
	}
	return 0, false
}

func (b Board) court(courtNo int) (int, bool) {
	for i, c := range b.Courts {
		if c.CourtNo == courtNo {
			return i, true
		}
	}
	return 0, false
}

// Assign commits a selection to the first free court, removes the selected
// players from the pool and starts the court timer. The selection and pool
// removal are applied in one step so a court can never hold players that are
// still selectable.
func (b Board) Assign(selection []models.Player, now time.Time) (Board, int, error) {
	courtNo, ok := b.FreeCourt()
	if !ok {
		return b, 0, ErrNoFreeCourt
	}
	if n := len(selection); n != 2 && n != 4 {
		return b, 0, ErrNotEnoughPlayers
	}
	if countUnique(selection) != len(selection) {
		return b, 0, ErrDuplicateSelection
	}

	next := b.clone()
	idx, _ := next.court(courtNo)
	next.Courts[idx].Assigned = clonePlayers(selection)
	started := now
	next.Courts[idx].StartedAt = &started

	selected := make(map[string]struct{}, len(selection))
	for _, p := range selection {
		selected[p.ID] = struct{}{}
	}
	remaining := next.Pool[:0]
	for _, p := range next.Pool {
		if _, ok := selected[p.ID]; !ok {
			remaining = append(remaining, p)
		}
	}
	next.Pool = remaining

	return next, courtNo, nil
}

// ResolveOutcome applies a final score to players listed in court order. The
// players split positionally into two sides (first half vs second half), the
// higher score wins, and each winner's running win counter is incremented.
func ResolveOutcome(courtNo int, players []models.Player, score, duration string) (*Outcome, error) {
	if len(players) != 2 && len(players) != 4 {
		return nil, ErrCourtNotOccupied
	}

	scoreA, scoreB, err := ParseScore(score)
	if err != nil {
		return nil, err
	}
	if scoreA == scoreB {
		return nil, ErrUndecidedScore
	}

	half := len(players) / 2
	teamA := clonePlayers(players[:half])
	teamB := clonePlayers(players[half:])

	winners, losers := teamA, teamB
	if scoreB > scoreA {
		winners, losers = teamB, teamA
	}
	for i := range winners {
		winners[i].Wins++
	}

	return &Outcome{
		CourtNo:  courtNo,
		Players:  append(clonePlayers(teamA), teamB...),
		Winners:  winners,
		Losers:   losers,
		Category: models.InferCategory(players),
		Score:    score,
		Duration: duration,
	}, nil
}

// Complete resolves a court from a final score and returns everyone to the
// back of the pool, winners first. The court is cleared and its timer stopped
// regardless of whether the result is later persisted.
func (b Board) Complete(courtNo int, score string, now time.Time) (Board, *Outcome, error) {
	idx, ok := b.court(courtNo)
	if !ok {
		return b, nil, ErrCourtNotFound
	}
	assigned := b.Courts[idx].Assigned
	if len(assigned) == 0 {
		return b, nil, ErrCourtNotOccupied
	}

	outcome, err := ResolveOutcome(courtNo, assigned, score, b.courtDuration(idx, now))
	if err != nil {
		return b, nil, err
	}

	next := b.clone()
	next.Courts[idx].Assigned = nil
	next.Courts[idx].StartedAt = nil
	next.Pool = append(next.Pool, outcome.Winners...)
	next.Pool = append(next.Pool, outcome.Losers...)

	return next, outcome, nil
}

// Cancel clears a court without recording a result: the assigned players go
// back to the pool in court order and nothing else changes.
func (b Board) Cancel(courtNo int) (Board, []models.Player, error) {
	idx, ok := b.court(courtNo)
	if !ok {
		return b, nil, ErrCourtNotFound
	}
	assigned := b.Courts[idx].Assigned
	if len(assigned) == 0 {
		return b, nil, ErrCourtNotOccupied
	}

	returned := clonePlayers(assigned)
	next := b.clone()
	next.Courts[idx].Assigned = nil
	next.Courts[idx].StartedAt = nil
	next.Pool = append(next.Pool, returned...)

	return next, returned, nil
}

// AddGuest creates a session-only player and appends them to the pool. Guests
// are never persisted; their distinguishing id prefix keeps them out of every
// selection filter and match record.
func (b Board) AddGuest(firstName, surName string, gender models.Gender) (Board, models.Player) {
	guest := models.Player{
		ID:         models.GuestIDPrefix + uuid.NewString(),
		ClubID:     b.ClubID,
		FirstName:  firstName,
		SurName:    surName,
		Gender:     gender,
		PlayerType: models.PlayerTypeGuest,
	}
	next := b.clone()
	next.Pool = append(next.Pool, guest)
	return next, guest
}

// RemoveGuest drops a guest from the pool. A guest currently on a court must
// finish or cancel their match first.
func (b Board) RemoveGuest(id string) (Board, error) {
	for _, c := range b.Courts {
		for _, p := range c.Assigned {
			if p.ID == id {
				return b, ErrGuestOnCourt
			}
		}
	}
	for i, p := range b.Pool {
		if p.ID == id && p.IsGuest() {
			next := b.clone()
			next.Pool = append(next.Pool[:i:i], next.Pool[i+1:]...)
			return next, nil
		}
	}
	return b, ErrGuestNotFound
}

func (b Board) courtDuration(idx int, now time.Time) string {
	started := b.Courts[idx].StartedAt
	if started == nil {
		return "00:00"
	}
	elapsed := now.Sub(*started)
	if elapsed < 0 {
		elapsed = 0
	}
	total := int(elapsed.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (b Board) clone() Board {
	courts := make([]CourtSlot, len(b.Courts))
	for i, c := range b.Courts {
		courts[i] = CourtSlot{
			CourtNo:   c.CourtNo,
			Assigned:  clonePlayers(c.Assigned),
			StartedAt: c.StartedAt,
		}
	}
	return Board{
		ClubID: b.ClubID,
		Courts: courts,
		Pool:   clonePlayers(b.Pool),
	}
}

func clonePlayers(players []models.Player) []models.Player {
	if players == nil {
		return nil
	}
	out := make([]models.Player, len(players))
	copy(out, players)
	return out
}
