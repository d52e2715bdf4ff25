package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/repositories"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*models.User, error)
	Login(ctx context.Context, input models.Credentials) (*models.User, error)
	SaveTheme(ctx context.Context, userID, themeColor string) error
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ClubName string `json:"club_name"`
	ClubID   string `json:"club_id"`
}

type authService struct {
	userRepo repositories.UserRepository
	clubRepo repositories.ClubRepository
}

func NewAuthService(userRepo repositories.UserRepository, clubRepo repositories.ClubRepository) AuthService {
	return &authService{
		userRepo: userRepo,
		clubRepo: clubRepo,
	}
}

// defaultCourtCount seeds a fresh club's PegBoard with a sensible hall size.
const defaultCourtCount = 4

func (s *authService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := models.UserRole(input.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	clubID := input.ClubID
	if clubID == "" {
		// A club admin signing up without a club id founds a new club.
		if role != models.RoleClubAdmin || strings.TrimSpace(input.ClubName) == "" {
			return nil, ErrClubNotFound
		}
		club := &models.Club{
			ID:     uuid.NewString(),
			Name:   strings.TrimSpace(input.ClubName),
			Courts: defaultCourtCount,
		}
		if err := s.clubRepo.Create(ctx, club); err != nil {
			if errors.Is(err, repositories.ErrClubNameConflict) {
				return nil, ErrClubNameConflict
			}
			return nil, fmt.Errorf("failed to create club: %w", err)
		}
		clubID = club.ID
	} else if _, err := s.clubRepo.GetByID(ctx, clubID); err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to look up club: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		ClubID:       clubID,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input models.Credentials) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) SaveTheme(ctx context.Context, userID, themeColor string) error {
	if err := s.userRepo.UpdateTheme(ctx, userID, themeColor); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
