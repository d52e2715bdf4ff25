package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/repositories"
)

// Skill ratings live on a 0..100 scale.
const maxSkillRating = 100

type SkillService interface {
	Template(ctx context.Context, clubID string) (*models.SkillTemplate, error)
	SaveTemplate(ctx context.Context, clubID string, groups map[string][]string) (*models.SkillTemplate, error)
	RecordSnapshot(ctx context.Context, playerID, date string, ratings map[string]map[string]int) (*models.SkillSnapshot, error)
	History(ctx context.Context, playerID string) ([]models.SkillSnapshot, error)
}

type skillService struct {
	skillRepo  repositories.SkillRepository
	playerRepo repositories.PlayerRepository
}

func NewSkillService(skillRepo repositories.SkillRepository, playerRepo repositories.PlayerRepository) SkillService {
	return &skillService{
		skillRepo:  skillRepo,
		playerRepo: playerRepo,
	}
}

func (s *skillService) Template(ctx context.Context, clubID string) (*models.SkillTemplate, error) {
	template, err := s.skillRepo.GetTemplate(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrSkillTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to load skill template: %w", err)
	}
	return template, nil
}

func (s *skillService) SaveTemplate(ctx context.Context, clubID string, groups map[string][]string) (*models.SkillTemplate, error) {
	if len(groups) == 0 {
		return nil, ErrValidationFailed
	}
	for group, skills := range groups {
		if group == "" || len(skills) == 0 {
			return nil, ErrValidationFailed
		}
	}

	template := &models.SkillTemplate{
		ID:     uuid.NewString(),
		ClubID: clubID,
		Groups: groups,
	}
	if err := s.skillRepo.SaveTemplate(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save skill template: %w", err)
	}
	return template, nil
}

func (s *skillService) RecordSnapshot(ctx context.Context, playerID, date string, ratings map[string]map[string]int) (*models.SkillSnapshot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	if len(ratings) == 0 {
		return nil, ErrValidationFailed
	}
	for _, skills := range ratings {
		for _, rating := range skills {
			if rating < 0 || rating > maxSkillRating {
				return nil, ErrNonNumericRating
			}
		}
	}

	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	snapshot := &models.SkillSnapshot{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Date:     date,
		Ratings:  ratings,
	}
	if err := s.skillRepo.AppendSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to record skill snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *skillService) History(ctx context.Context, playerID string) ([]models.SkillSnapshot, error) {
	snapshots, err := s.skillRepo.ListSnapshots(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill history: %w", err)
	}
	return snapshots, nil
}
