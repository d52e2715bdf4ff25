package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

type Attendance struct {
	ID        string           `json:"id" db:"id"`
	ClubID    string           `json:"club_id" db:"club_id"`
	PlayerID  string           `json:"player_id" db:"player_id"`
	Date      string           `json:"date" db:"date"` // YYYY-MM-DD
	Day       string           `json:"day" db:"day"`
	Status    AttendanceStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// DailyAttendanceStat is one point of the 30-day attendance chart, split by
// membership type the way the admin dashboard expects it.
type DailyAttendanceStat struct {
	Date    string `json:"date"`
	Juniors int    `json:"juniors"`
	Adults  int    `json:"adults"`
}
