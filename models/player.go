package models

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// PlayerType представляет членские категории клуба, соответствующие ENUM в БД.
type PlayerType string

const (
	PlayerTypeJunior          PlayerType = "Junior Club Member"
	PlayerTypeAdult           PlayerType = "Adult Club Member"
	PlayerTypeCoachingOnly    PlayerType = "Coaching only"
	PlayerTypeCoachingAndClub PlayerType = "Coaching and Club Member"
	PlayerTypeClubMember      PlayerType = "Club Member"
	PlayerTypeGuest           PlayerType = "Guest"
)

// GuestIDPrefix marks session-only players that are never persisted.
const GuestIDPrefix = "guest-"

// NormalizePlayerType is the single conversion point for the free-form
// playerType strings that arrive from clients and CSV imports. Legacy data
// carries inconsistent casing ("Adult club member", "club member"); everything
// is folded here so the rest of the code can compare enum values directly.
func NormalizePlayerType(raw string) (PlayerType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "junior club member":
		return PlayerTypeJunior, true
	case "adult club member":
		return PlayerTypeAdult, true
	case "coaching only":
		return PlayerTypeCoachingOnly, true
	case "coaching and club member":
		return PlayerTypeCoachingAndClub, true
	case "club member":
		return PlayerTypeClubMember, true
	case "guest":
		return PlayerTypeGuest, true
	default:
		return "", false
	}
}

type Player struct {
	ID                    string     `json:"id" db:"id"`
	ClubID                string     `json:"club_id" db:"club_id"`
	FirstName             string     `json:"first_name" db:"first_name"`
	SurName               string     `json:"sur_name" db:"sur_name"`
	Gender                Gender     `json:"gender" db:"gender"`
	DOB                   *time.Time `json:"dob,omitempty" db:"dob"`
	PlayerType            PlayerType `json:"player_type" db:"player_type"`
	IsJunior              bool       `json:"is_junior" db:"is_junior"`
	ParentName            *string    `json:"parent_name,omitempty" db:"parent_name"`
	ParentPhone           *string    `json:"parent_phone,omitempty" db:"parent_phone"`
	Email                 *string    `json:"email,omitempty" db:"email"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty" db:"emergency_contact_phone"`
	JoiningDate           *time.Time `json:"joining_date,omitempty" db:"joining_date"`
	PaymentStatus         *string    `json:"payment_status,omitempty" db:"payment_status"`
	ClubRoles             []string   `json:"club_roles,omitempty" db:"club_roles"`
	EnableSkillTracking   bool       `json:"enable_skill_tracking" db:"enable_skill_tracking"`
	Wins                  int        `json:"wins" db:"wins"`
	AveragePoints         int        `json:"average_points" db:"average_points"`
	MatchCount            int        `json:"match_count" db:"match_count"`
	PhotoKey              *string    `json:"-" db:"photo_key"`
	PhotoURL              *string    `json:"photo_url,omitempty" db:"-"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
}

// Name returns the display name used in match records and winner boards.
func (p Player) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.SurName)
}

// IsGuest reports whether the player is a session-only guest entry.
func (p Player) IsGuest() bool {
	return p.PlayerType == PlayerTypeGuest || strings.HasPrefix(p.ID, GuestIDPrefix)
}

// Age returns the raw calendar-year difference between dob and now.
// Note: this intentionally does NOT decrement for a birthday that has not yet
// occurred this year. The under-18 boundary is handled by IsJuniorAt, which
// reproduces the historical month/day comparison; the two must stay in sync
// with each other, not with "true" age arithmetic.
func Age(dob, now time.Time) int {
	return now.Year() - dob.Year()
}

// IsJuniorAt classifies a date of birth as under-18 at the given moment.
// The month/day deltas only decide the exact-18 boundary; they never adjust
// the year delta itself. Registration, CSV import and attendance all share
// this one implementation.
func IsJuniorAt(dob, now time.Time) bool {
	age := now.Year() - dob.Year()
	m := int(now.Month()) - int(dob.Month())
	d := now.Day() - dob.Day()
	return age < 18 || (age == 18 && (m < 0 || (m == 0 && d < 0)))
}

// ClassifyPlayerType maps a date of birth to the junior/adult membership type.
func ClassifyPlayerType(dob, now time.Time) PlayerType {
	if IsJuniorAt(dob, now) {
		return PlayerTypeJunior
	}
	return PlayerTypeAdult
}
