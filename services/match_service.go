package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/pegboard"
	"github.com/smashhub/smashhub-server/repositories"
	"golang.org/x/sync/errgroup"
)

// rollingWindow is how many recent matches feed a player's average.
const rollingWindow = 10

// topPlayersFanOut caps the concurrent history reads behind the ranking
// endpoint.
const topPlayersFanOut = 8

type MatchService interface {
	RecordMatch(ctx context.Context, outcome *pegboard.Outcome, now time.Time) error
	HistoryByPlayer(ctx context.Context, playerID string, limit int) ([]models.MatchRecord, error)
	RankedRoster(ctx context.Context, clubID string) ([]models.RankedPlayer, error)
}

type matchService struct {
	historyRepo repositories.MatchHistoryRepository
	playerRepo  repositories.PlayerRepository
	logger      *slog.Logger
}

func NewMatchService(historyRepo repositories.MatchHistoryRepository, playerRepo repositories.PlayerRepository, logger *slog.Logger) MatchService {
	return &matchService{
		historyRepo: historyRepo,
		playerRepo:  playerRepo,
		logger:      logger,
	}
}

// RecordMatch writes one history row per club member who played. Guests take
// part in the match but own no history: they appear only inside other
// players' partner and opponent fields. After the insert each member's
// rolling average and match count are refreshed.
func (s *matchService) RecordMatch(ctx context.Context, outcome *pegboard.Outcome, now time.Time) error {
	winScore, loseScore, err := pegboard.ParseScore(outcome.Score)
	if err != nil {
		return err
	}
	if loseScore > winScore {
		winScore, loseScore = loseScore, winScore
	}

	matchID := uuid.NewString()
	matchDate := now.Format("2006-01-02")
	matchTime := now.Format("15:04:05")

	records := make([]models.MatchRecord, 0, len(outcome.Winners)+len(outcome.Losers))
	build := func(team, opponents []models.Player, result models.MatchResult, points int) {
		for _, p := range team {
			if p.IsGuest() {
				continue
			}
			rec := models.MatchRecord{
				ID:        uuid.NewString(),
				PlayerID:  p.ID,
				MatchID:   matchID,
				MatchDate: matchDate,
				MatchTime: matchTime,
				Result:    result,
				MatchType: outcome.Category,
				Opponents: opponentsOf(opponents),
				Points:    points,
				Duration:  outcome.Duration,
				CourtNo:   outcome.CourtNo,
			}
			if partner, ok := partnerOf(team, p.ID); ok {
				rec.Partner = partner.Name()
				rec.PartnerSex = partner.Gender
			}
			records = append(records, rec)
		}
	}
	build(outcome.Winners, outcome.Losers, models.ResultWin, winScore)
	build(outcome.Losers, outcome.Winners, models.ResultLoss, loseScore)

	if len(records) == 0 {
		// A court full of guests still clears, it just leaves no history.
		return nil
	}

	if err := s.historyRepo.InsertRecords(ctx, records); err != nil {
		return fmt.Errorf("failed to insert match records: %w", err)
	}

	for _, p := range outcome.Winners {
		if p.IsGuest() {
			continue
		}
		if err := s.playerRepo.IncrementWins(ctx, p.ID); err != nil && !errors.Is(err, repositories.ErrPlayerNotFound) {
			s.logger.Warn("failed to increment wins", "player_id", p.ID, "error", err)
		}
	}

	for _, rec := range records {
		points, err := s.historyRepo.LastPoints(ctx, rec.PlayerID, rollingWindow)
		if err != nil {
			s.logger.Warn("failed to load recent points", "player_id", rec.PlayerID, "error", err)
			continue
		}
		avg := pegboard.AverageScore(points)
		if err := s.playerRepo.UpdateAggregates(ctx, rec.PlayerID, avg); err != nil && !errors.Is(err, repositories.ErrPlayerNotFound) {
			s.logger.Warn("failed to update player aggregates", "player_id", rec.PlayerID, "error", err)
		}
	}

	return nil
}

func (s *matchService) HistoryByPlayer(ctx context.Context, playerID string, limit int) ([]models.MatchRecord, error) {
	records, err := s.historyRepo.ListByPlayer(ctx, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load match history: %w", err)
	}
	return records, nil
}

// RankedRoster decorates the club roster with each player's rolling average.
// History reads fan out with a bounded group since a club evening can easily
// involve forty players.
func (s *matchService) RankedRoster(ctx context.Context, clubID string) ([]models.RankedPlayer, error) {
	players, err := s.playerRepo.ListByClub(ctx, clubID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	ranked := make([]models.RankedPlayer, len(players))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(topPlayersFanOut)
	for i, p := range players {
		i, p := i, p
		g.Go(func() error {
			points, err := s.historyRepo.LastPoints(gctx, p.ID, rollingWindow)
			if err != nil {
				return fmt.Errorf("failed to load points for player %s: %w", p.ID, err)
			}
			ranked[i] = models.RankedPlayer{
				Player:     p,
				AvgScore:   pegboard.AverageScore(points),
				MatchCount: len(points),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ranked, nil
}

func partnerOf(team []models.Player, id string) (models.Player, bool) {
	if len(team) < 2 {
		return models.Player{}, false
	}
	for _, p := range team {
		if p.ID != id {
			return p, true
		}
	}
	return models.Player{}, false
}

func opponentsOf(team []models.Player) []models.Opponent {
	out := make([]models.Opponent, 0, len(team))
	for _, p := range team {
		out = append(out, models.Opponent{Name: p.Name(), Gender: p.Gender})
	}
	return out
}
