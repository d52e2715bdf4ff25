package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/repositories"
	"github.com/smashhub/smashhub-server/storage"
)

type RosterService interface {
	CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id string, input PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id string) error
	ListPlayers(ctx context.Context, clubID string) ([]models.Player, error)
	AccessUsers(ctx context.Context, clubID string, view models.AccessView) ([]models.AccessUser, error)
	UploadPhoto(ctx context.Context, playerID, contentType string, photo io.Reader) (*models.Player, error)
}

type PlayerInput struct {
	FirstName             string  `json:"first_name"`
	SurName               string  `json:"sur_name"`
	Gender                string  `json:"gender"`
	DOB                   string  `json:"dob"` // YYYY-MM-DD
	PlayerType            string  `json:"player_type,omitempty"`
	ParentName            *string `json:"parent_name,omitempty"`
	ParentPhone           *string `json:"parent_phone,omitempty"`
	Email                 *string `json:"email,omitempty"`
	EmergencyContactName  *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string `json:"emergency_contact_phone,omitempty"`
	JoiningDate           string  `json:"joining_date,omitempty"`
	PaymentStatus         *string `json:"payment_status,omitempty"`
	ClubRoles             []string `json:"club_roles,omitempty"`
	EnableSkillTracking   bool    `json:"enable_skill_tracking"`
	ClubID                string  `json:"club_id"`
}

type rosterService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	now        func() time.Time
}

func NewRosterService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) RosterService {
	return &rosterService{
		playerRepo: playerRepo,
		uploader:   uploader,
		now:        time.Now,
	}
}

func (s *rosterService) CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	player, err := s.playerFromInput(input)
	if err != nil {
		return nil, err
	}
	player.ID = uuid.NewString()

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerEmailConflict) {
			return nil, ErrPlayerEmailConflict
		}
		if errors.Is(err, repositories.ErrPlayerClubInvalid) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.decoratePhoto(player)
	return player, nil
}

func (s *rosterService) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.decoratePhoto(player)
	return player, nil
}

func (s *rosterService) UpdatePlayer(ctx context.Context, id string, input PlayerInput) (*models.Player, error) {
	existing, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.playerFromInput(input)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.ClubID = existing.ClubID
	updated.Wins = existing.Wins
	updated.AveragePoints = existing.AveragePoints
	updated.MatchCount = existing.MatchCount
	updated.PhotoKey = existing.PhotoKey

	if err := s.playerRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		if errors.Is(err, repositories.ErrPlayerEmailConflict) {
			return nil, ErrPlayerEmailConflict
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	s.decoratePhoto(updated)
	return updated, nil
}

func (s *rosterService) DeletePlayer(ctx context.Context, id string) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *rosterService) ListPlayers(ctx context.Context, clubID string) ([]models.Player, error) {
	players, err := s.playerRepo.ListByClub(ctx, clubID, 0)
	if err != nil {
		return nil, err
	}
	for i := range players {
		s.decoratePhoto(&players[i])
	}
	return players, nil
}

// AccessUsers partitions the club roster for one of the role-management
// tables and decorates each row with its default permission flags and
// account status.
func (s *rosterService) AccessUsers(ctx context.Context, clubID string, view models.AccessView) ([]models.AccessUser, error) {
	if !view.Valid() {
		return nil, ErrInvalidAccessView
	}

	players, err := s.ListPlayers(ctx, clubID)
	if err != nil {
		return nil, err
	}

	var matched []models.Player
	var status string
	switch view {
	case models.ViewParent:
		matched = FilterParentUsers(players, s.now())
		status = models.AccessStatusPending
	case models.ViewMember:
		matched = FilterMemberUsers(players, s.now())
		status = models.AccessStatusInactive
	case models.ViewAdmin:
		matched = FilterAdminUsers(players, s.now())
		status = models.AccessStatusNotCreated
	}

	out := make([]models.AccessUser, 0, len(matched))
	for _, p := range matched {
		out = append(out, models.AccessUser{
			Player:      p,
			Permissions: models.PermissionFlags{}, // all flags start false
			Status:      status,
		})
	}
	return out, nil
}

func (s *rosterService) UploadPhoto(ctx context.Context, playerID, contentType string, photo io.Reader) (*models.Player, error) {
	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrValidationFailed
	}

	key := fmt.Sprintf("players/%s/photo", player.ID)
	result, err := s.uploader.Upload(ctx, key, contentType, photo)
	if err != nil {
		return nil, fmt.Errorf("failed to upload player photo: %w", err)
	}

	if err := s.playerRepo.UpdatePhotoKey(ctx, player.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save photo key: %w", err)
	}
	player.PhotoKey = &result.Key
	s.decoratePhoto(player)
	return player, nil
}

// FilterParentUsers returns the players visible on the parent-access table:
// juniors by age plus the membership types a parent account manages.
func FilterParentUsers(players []models.Player, now time.Time) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		byAge := p.DOB != nil && models.Age(*p.DOB, now) < 18
		byType := p.PlayerType == models.PlayerTypeJunior || p.PlayerType == models.PlayerTypeCoachingOnly
		if byAge || byType {
			out = append(out, p)
		}
	}
	return out
}

// FilterMemberUsers returns the players visible on the member-access table.
func FilterMemberUsers(players []models.Player, now time.Time) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		byAge := p.DOB != nil && models.Age(*p.DOB, now) >= 18
		byType := p.PlayerType == models.PlayerTypeClubMember || p.PlayerType == models.PlayerTypeAdult
		if byAge || byType {
			out = append(out, p)
		}
	}
	return out
}

// FilterAdminUsers currently matches FilterMemberUsers exactly. Whether admins
// should be a distinct subset is an open product question; until that is
// answered this mirrors the member predicate.
func FilterAdminUsers(players []models.Player, now time.Time) []models.Player {
	return FilterMemberUsers(players, now)
}

func (s *rosterService) playerFromInput(input PlayerInput) (*models.Player, error) {
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, ErrValidationFailed
	}

	gender := models.Gender(input.Gender)
	if gender != models.GenderMale && gender != models.GenderFemale {
		return nil, ErrInvalidGender
	}

	var dob *time.Time
	if input.DOB != "" {
		parsed, err := time.Parse("2006-01-02", input.DOB)
		if err != nil {
			return nil, ErrInvalidDate
		}
		dob = &parsed
	}

	var playerType models.PlayerType
	if input.PlayerType != "" {
		normalized, ok := models.NormalizePlayerType(input.PlayerType)
		if !ok {
			return nil, ErrInvalidPlayerType
		}
		if normalized == models.PlayerTypeGuest {
			return nil, ErrGuestCannotPersist
		}
		playerType = normalized
	} else {
		if dob == nil {
			return nil, ErrInvalidPlayerType
		}
		playerType = models.ClassifyPlayerType(*dob, s.now())
	}

	var joining *time.Time
	if input.JoiningDate != "" {
		parsed, err := time.Parse("2006-01-02", input.JoiningDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		joining = &parsed
	}

	isJunior := false
	if dob != nil {
		isJunior = models.IsJuniorAt(*dob, s.now())
	}

	return &models.Player{
		ClubID:                input.ClubID,
		FirstName:             strings.TrimSpace(input.FirstName),
		SurName:               strings.TrimSpace(input.SurName),
		Gender:                gender,
		DOB:                   dob,
		PlayerType:            playerType,
		IsJunior:              isJunior,
		ParentName:            input.ParentName,
		ParentPhone:           input.ParentPhone,
		Email:                 input.Email,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
		JoiningDate:           joining,
		PaymentStatus:         input.PaymentStatus,
		ClubRoles:             input.ClubRoles,
		EnableSkillTracking:   input.EnableSkillTracking,
	}, nil
}

func (s *rosterService) decoratePhoto(player *models.Player) {
	if player.PhotoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*player.PhotoKey)
		player.PhotoURL = &url
	}
}
