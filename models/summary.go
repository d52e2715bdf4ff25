package models

import "time"

// WinnerTally is a per-player win count inside a daily summary.
type WinnerTally struct {
	PlayerID string `json:"player_id"`
	Wins     int    `json:"wins"`
}

// MatchSummary is the per-club, per-day leaderboard backing the winner board.
type MatchSummary struct {
	ID           string        `json:"id" db:"id"`
	ClubID       string        `json:"club_id" db:"club_id"`
	Date         string        `json:"date" db:"date"` // YYYY-MM-DD
	TotalMatches int           `json:"total_matches" db:"total_matches"`
	Winners      []WinnerTally `json:"winners" db:"-"`
	TopPlayerID  *string       `json:"top_player_id,omitempty" db:"top_player_id"`
	TopMaleID    *string       `json:"top_male_id,omitempty" db:"top_male_id"`
	TopFemaleID  *string       `json:"top_female_id,omitempty" db:"top_female_id"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// SummaryWinner is the slim winner shape posted on match completion.
type SummaryWinner struct {
	PlayerID string `json:"player_id"`
	Gender   Gender `json:"gender"`
}

// DecoratedSummary is the read shape returned to the winner board, with the
// leading players resolved to full roster entries carrying their win counts.
type DecoratedSummary struct {
	ClubID       string        `json:"club_id"`
	Date         string        `json:"date"`
	TotalMatches int           `json:"total_matches"`
	TopPlayer    *RankedWinner `json:"top_player"`
	TopMale      *RankedWinner `json:"top_male"`
	TopFemale    *RankedWinner `json:"top_female"`
}

type RankedWinner struct {
	Player
	Wins int `json:"wins"`
}
