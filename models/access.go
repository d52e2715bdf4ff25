package models

// AccessView selects which role-management table a player list is being
// partitioned for.
type AccessView string

const (
	ViewParent AccessView = "parent"
	ViewMember AccessView = "member"
	ViewAdmin  AccessView = "admin"
)

func (v AccessView) Valid() bool {
	return v == ViewParent || v == ViewMember || v == ViewAdmin
}

// PermissionFlags is the default per-user feature toggle record shown in the
// role-management tables. Every flag starts false; admins enable them one by
// one.
type PermissionFlags struct {
	PegBoard      bool `json:"peg_board"`
	PlayerProfile bool `json:"player_profile"`
	Attendance    bool `json:"attendance"`
	Finance       bool `json:"finance"`
	CaptainSquad  bool `json:"captain_squad"`
}

// Account status defaults differ per consumer view.
const (
	AccessStatusPending    = "Pending"
	AccessStatusInactive   = "Inactive"
	AccessStatusNotCreated = "Not Created"
)

// AccessUser is a roster player decorated for one of the access tables.
type AccessUser struct {
	Player
	Permissions PermissionFlags `json:"permissions"`
	Status      string          `json:"status"`
}
