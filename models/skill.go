package models

import "time"

// SkillTemplate — клубный документ, задающий структуру отслеживаемых навыков.
// Groups maps a group name ("Footwork", "Racquet Skills") to an ordered list
// of skill names.
type SkillTemplate struct {
	ID        string              `json:"id" db:"id"`
	ClubID    string              `json:"club_id" db:"club_id"`
	Groups    map[string][]string `json:"groups" db:"-"`
	UpdatedAt time.Time           `json:"updated_at" db:"updated_at"`
}

// SkillSnapshot is one dated rating entry in a player's skill history.
// All values are numeric; legacy non-numeric values are coerced at the
// repository boundary, never stored back.
type SkillSnapshot struct {
	ID       string                    `json:"id" db:"id"`
	PlayerID string                    `json:"player_id" db:"player_id"`
	Date     string                    `json:"date" db:"date"` // YYYY-MM-DD
	Ratings  map[string]map[string]int `json:"ratings" db:"-"` // group -> skill -> rating
}
