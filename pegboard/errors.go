package pegboard

import "errors"

var (
	ErrNoPlayers          = errors.New("no players available to assign")
	ErrNotEnoughPlayers   = errors.New("not enough eligible players")
	ErrWrongGenderFixed   = errors.New("next-up player is not eligible for this category")
	ErrDuplicateSelection = errors.New("duplicate players found in selection")
	ErrNoSuitableTeam     = errors.New("no suitable team found")
	ErrNoFreeCourt        = errors.New("no available court found")
	ErrCourtNotFound      = errors.New("court not found")
	ErrCourtNotOccupied   = errors.New("court has no players assigned")
	ErrInvalidScore       = errors.New("score must be in NN/NN format")
	ErrUndecidedScore     = errors.New("match undecided: scores are equal")
	ErrInvalidCategory    = errors.New("invalid match category")
	ErrInvalidSkillLevel  = errors.New("invalid skill level")
	ErrGuestNotFound      = errors.New("guest player not found in pool")
	ErrGuestOnCourt       = errors.New("guest player is currently assigned to a court")
)
