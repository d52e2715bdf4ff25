package models

import "time"

type UserRole string

const (
	RoleClubAdmin UserRole = "club_admin"
	RoleCoach     UserRole = "coach"
	RoleParent    UserRole = "parent"
	RoleOrganiser UserRole = "organiser"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleClubAdmin, RoleCoach, RoleParent, RoleOrganiser:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id" db:"id"`
	ClubID       string    `json:"club_id" db:"club_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	ThemeColor   *string   `json:"theme_color,omitempty" db:"theme_color"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
