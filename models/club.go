package models

import "time"

type Club struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Location  *string   `json:"location,omitempty" db:"location"`
	Courts    int       `json:"courts" db:"courts"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
