package models

import "time"

// MatchCategory is the closed set of badminton disciplines.
type MatchCategory string

const (
	CategoryMensSingles    MatchCategory = "MS"
	CategoryWomensSingles  MatchCategory = "WS"
	CategoryMensDoubles    MatchCategory = "MD"
	CategoryWomensDoubles  MatchCategory = "WD"
	CategoryMixedDoubles   MatchCategory = "XD"
)

func (c MatchCategory) Valid() bool {
	switch c {
	case CategoryMensSingles, CategoryWomensSingles, CategoryMensDoubles,
		CategoryWomensDoubles, CategoryMixedDoubles:
		return true
	}
	return false
}

// Singles reports whether the category is played one against one.
func (c MatchCategory) Singles() bool {
	return c == CategoryMensSingles || c == CategoryWomensSingles
}

// InferCategory derives the discipline from the genders of the players on
// court. It is used post-hoc when a result is recorded; assignment filters
// use the category a priori.
func InferCategory(players []Player) MatchCategory {
	if len(players) == 2 {
		if players[0].Gender == GenderMale && players[1].Gender == GenderMale {
			return CategoryMensSingles
		}
		if players[0].Gender == GenderFemale && players[1].Gender == GenderFemale {
			return CategoryWomensSingles
		}
		return CategoryMixedDoubles
	}

	males := 0
	females := 0
	for _, p := range players {
		switch p.Gender {
		case GenderMale:
			males++
		case GenderFemale:
			females++
		}
	}
	switch {
	case males == 4:
		return CategoryMensDoubles
	case females == 4:
		return CategoryWomensDoubles
	default:
		return CategoryMixedDoubles
	}
}

type MatchResult string

const (
	ResultWin  MatchResult = "Win"
	ResultLoss MatchResult = "Loss"
)

// Opponent is the slim shape stored per match record; guests appear here by
// name only since they have no roster entry.
type Opponent struct {
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

// MatchRecord is one row of a club member's match history. A single match
// produces one record per participating member; guests never own a record.
type MatchRecord struct {
	ID         string        `json:"id" db:"id"`
	PlayerID   string        `json:"player_id" db:"player_id"`
	MatchID    string        `json:"match_id" db:"match_id"`
	MatchDate  string        `json:"match_date" db:"match_date"`
	MatchTime  string        `json:"match_time" db:"match_time"`
	Result     MatchResult   `json:"result" db:"result"`
	MatchType  MatchCategory `json:"match_type" db:"match_type"`
	Partner    string        `json:"partner" db:"partner"`
	PartnerSex Gender        `json:"partner_sex" db:"partner_sex"`
	Opponents  []Opponent    `json:"opponents" db:"-"`
	Points     int           `json:"points" db:"points"`
	Duration   string        `json:"duration" db:"duration"`
	CourtNo    int           `json:"court_no" db:"court_no"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// RankedPlayer is a player decorated with the rolling average used by smart
// assignment and the top-players endpoint.
type RankedPlayer struct {
	Player
	AvgScore   int `json:"avg_score"`
	MatchCount int `json:"match_count"`
}
