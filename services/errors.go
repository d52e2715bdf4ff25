package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation / business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRole         = errors.New("invalid user role")
	ErrInvalidGender       = errors.New("gender must be Male or Female")
	ErrInvalidPlayerType   = errors.New("invalid player type")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidAccessView   = errors.New("access view must be parent, member or admin")
	ErrScoreNotEntered     = errors.New("score not entered: confirm to clear without saving")
	ErrNonNumericRating    = errors.New("skill ratings must be numeric")
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrNoWinnersProvided   = errors.New("at least one winner is required")
	ErrGuestCannotPersist  = errors.New("guest players cannot be saved to the roster")

	// Conflicts
	ErrUserEmailConflict   = errors.New("email address is already in use")
	ErrPlayerEmailConflict = errors.New("player email is already in use")
	ErrClubNameConflict    = errors.New("club name already exists")

	// AuthN / AuthZ
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific not-found (more context than the generic ErrNotFound)
	ErrUserNotFound     = errors.New("user not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrClubNotFound     = errors.New("club not found")
	ErrSummaryNotFound  = errors.New("no summary found")
	ErrTemplateNotFound = errors.New("skill template not found")
)
