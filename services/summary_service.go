package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/smashhub/smashhub-server/cache"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/repositories"
)

type SummaryService interface {
	// RecordResult folds one finished match into the club's daily summary.
	RecordResult(ctx context.Context, clubID, date string, winners []models.SummaryWinner) (*models.MatchSummary, error)
	Get(ctx context.Context, clubID, date string) (*models.DecoratedSummary, error)
}

type summaryService struct {
	summaryRepo repositories.MatchSummaryRepository
	playerRepo  repositories.PlayerRepository
	cache       *cache.Client
	logger      *slog.Logger
}

func NewSummaryService(summaryRepo repositories.MatchSummaryRepository, playerRepo repositories.PlayerRepository, cacheClient *cache.Client, logger *slog.Logger) SummaryService {
	return &summaryService{
		summaryRepo: summaryRepo,
		playerRepo:  playerRepo,
		cache:       cacheClient,
		logger:      logger,
	}
}

func (s *summaryService) RecordResult(ctx context.Context, clubID, date string, winners []models.SummaryWinner) (*models.MatchSummary, error) {
	if len(winners) == 0 {
		return nil, ErrNoWinnersProvided
	}

	summary, err := s.summaryRepo.Get(ctx, clubID, date)
	if err != nil {
		if !errors.Is(err, repositories.ErrSummaryNotFound) {
			return nil, fmt.Errorf("failed to load summary: %w", err)
		}
		summary = &models.MatchSummary{
			ID:     uuid.NewString(),
			ClubID: clubID,
			Date:   date,
		}
	}

	summary.TotalMatches++
	for _, w := range winners {
		tallyWin(summary, w.PlayerID)
		// The first male and female to win a match each day hold their slot
		// until someone overtakes them on total wins.
		switch w.Gender {
		case models.GenderMale:
			if summary.TopMaleID == nil {
				id := w.PlayerID
				summary.TopMaleID = &id
			}
		case models.GenderFemale:
			if summary.TopFemaleID == nil {
				id := w.PlayerID
				summary.TopFemaleID = &id
			}
		}
	}
	recomputeLeaders(summary)

	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	s.cache.InvalidateSummary(ctx, clubID, date)
	return summary, nil
}

func (s *summaryService) Get(ctx context.Context, clubID, date string) (*models.DecoratedSummary, error) {
	if cached := s.cache.GetSummary(ctx, clubID, date); cached != nil {
		return cached, nil
	}

	summary, err := s.summaryRepo.Get(ctx, clubID, date)
	if err != nil {
		if errors.Is(err, repositories.ErrSummaryNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}

	decorated := &models.DecoratedSummary{
		ClubID:       summary.ClubID,
		Date:         summary.Date,
		TotalMatches: summary.TotalMatches,
	}
	decorated.TopPlayer = s.resolveWinner(ctx, summary, summary.TopPlayerID)
	decorated.TopMale = s.resolveWinner(ctx, summary, summary.TopMaleID)
	decorated.TopFemale = s.resolveWinner(ctx, summary, summary.TopFemaleID)

	s.cache.SetSummary(ctx, decorated)
	return decorated, nil
}

// resolveWinner loads the full roster entry behind a leading player id.
// A player deleted since the summary was written degrades to an absent slot
// rather than failing the whole board.
func (s *summaryService) resolveWinner(ctx context.Context, summary *models.MatchSummary, id *string) *models.RankedWinner {
	if id == nil {
		return nil
	}
	player, err := s.playerRepo.GetByID(ctx, *id)
	if err != nil {
		if !errors.Is(err, repositories.ErrPlayerNotFound) {
			s.logger.Warn("failed to resolve summary winner", "player_id", *id, "error", err)
		}
		return nil
	}
	return &models.RankedWinner{
		Player: *player,
		Wins:   winsFor(summary, *id),
	}
}

func tallyWin(summary *models.MatchSummary, playerID string) {
	for i := range summary.Winners {
		if summary.Winners[i].PlayerID == playerID {
			summary.Winners[i].Wins++
			return
		}
	}
	summary.Winners = append(summary.Winners, models.WinnerTally{PlayerID: playerID, Wins: 1})
}

func winsFor(summary *models.MatchSummary, playerID string) int {
	for _, w := range summary.Winners {
		if w.PlayerID == playerID {
			return w.Wins
		}
	}
	return 0
}

// recomputeLeaders picks the day's top player by win count. Ties keep the
// earlier entrant since the tally list preserves first-win order.
func recomputeLeaders(summary *models.MatchSummary) {
	best := -1
	for _, w := range summary.Winners {
		if w.Wins > best {
			best = w.Wins
			id := w.PlayerID
			summary.TopPlayerID = &id
		}
	}
}
