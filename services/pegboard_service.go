package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/pegboard"
	"github.com/smashhub/smashhub-server/repositories"
)

type PegboardService interface {
	// Board returns the club's current session, opening one from the roster
	// if none is running.
	Board(ctx context.Context, clubID string) (pegboard.Board, error)
	ResetBoard(ctx context.Context, clubID string) (pegboard.Board, error)
	AutoAssign(ctx context.Context, clubID string, category models.MatchCategory, allowFullPool bool) (pegboard.Board, error)
	SmartAssign(ctx context.Context, clubID string, category models.MatchCategory, level pegboard.SkillLevel) (pegboard.Board, error)
	Suggestions(ctx context.Context, clubID string) ([]pegboard.Suggestion, error)
	AssignSelection(ctx context.Context, clubID string, playerIDs []string) (pegboard.Board, error)
	// CompleteCourt clears a court. With a real score the result is recorded;
	// with an empty or placeholder score the caller must set force, and the
	// players return unrecorded. Persistence failures come back as warnings,
	// never as a rolled-back board.
	CompleteCourt(ctx context.Context, clubID string, courtNo int, score string, force bool) (pegboard.Board, []string, error)
	AddGuest(ctx context.Context, clubID, firstName, surName string, gender models.Gender) (pegboard.Board, models.Player, error)
	RemoveGuest(ctx context.Context, clubID, guestID string) (pegboard.Board, error)
}

type pegboardService struct {
	mu     sync.Mutex
	boards map[string]pegboard.Board

	clubRepo   repositories.ClubRepository
	playerRepo repositories.PlayerRepository
	matchSvc   MatchService
	summarySvc SummaryService
	hub        *pegboard.Hub
	logger     *slog.Logger
	now        func() time.Time
}

func NewPegboardService(
	clubRepo repositories.ClubRepository,
	playerRepo repositories.PlayerRepository,
	matchSvc MatchService,
	summarySvc SummaryService,
	hub *pegboard.Hub,
	logger *slog.Logger,
) PegboardService {
	return &pegboardService{
		boards:     make(map[string]pegboard.Board),
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		matchSvc:   matchSvc,
		summarySvc: summarySvc,
		hub:        hub,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *pegboardService) Board(ctx context.Context, clubID string) (pegboard.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boardLocked(ctx, clubID)
}

// ResetBoard discards the running session and reloads the pool from the
// roster. Used when an organiser starts a fresh club night.
func (s *pegboardService) ResetBoard(ctx context.Context, clubID string) (pegboard.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.boards, clubID)
	board, err := s.boardLocked(ctx, clubID)
	if err != nil {
		return pegboard.Board{}, err
	}
	s.hub.BroadcastBoard(clubID, board)
	return board, nil
}

func (s *pegboardService) AutoAssign(ctx context.Context, clubID string, category models.MatchCategory, allowFullPool bool) (pegboard.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardLocked(ctx, clubID)
	if err != nil {
		return pegboard.Board{}, err
	}
	if _, ok := board.FreeCourt(); !ok {
		return board, pegboard.ErrNoFreeCourt
	}

	selection, err := pegboard.AutoAssign(board.Pool, category, allowFullPool)
	if err != nil {
		return board, err
	}
	return s.commitSelection(clubID, board, selection)
}

func (s *pegboardService) SmartAssign(ctx context.Context, clubID string, category models.MatchCategory, level pegboard.SkillLevel) (pegboard.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardLocked(ctx, clubID)
	if err != nil {
		return pegboard.Board{}, err
	}
	if _, ok := board.FreeCourt(); !ok {
		return board, pegboard.ErrNoFreeCourt
	}

	selection, err := pegboard.SmartAssign(rankPool(board.Pool), category, level)
	if err != nil {
		return board, err
	}
	return s.commitSelection(clubID, board, selection)
}

func (s *pegboardService) Suggestions(ctx context.Context, clubID string) ([]pegboard.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardLocked(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return pegboard.SuggestedTeams(rankPool(board.Pool)), nil
}

// AssignSelection places a hand-picked set of pool players on a court.
func (s *pegboardService) AssignSelection(ctx context.Context, clubID string, playerIDs []string) (pegboard.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardLocked(ctx, clubID)
	if err != nil {
		return pegboard.Board{}, err
	}

	byID := make(map[string]models.Player, len(board.Pool))
	for _, p := range board.Pool {
		byID[p.ID] = p
	}
	selection := make([]models.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := byID[id]
		if !ok {
			return board, pegboard.ErrNotEnoughPlayers
		}
		selection = append(selection, p)
	}
	return s.commitSelection(clubID, board, selection)
}

func (s *pegboardService) CompleteCourt(ctx context.Context, clubID string, courtNo int, score string, force bool) (pegboard.Board, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardLocked(ctx, clubID)
	if err != nil {
		return pegboard.Board{}, nil, err
	}

	if !pegboard.ScoreEntered(score) {
		if !force {
			return board, nil, ErrScoreNotEntered
		}
		next, _, err := board.Cancel(courtNo)
		if err != nil {
			return board, nil, err
		}
		s.boards[clubID] = next
		s.hub.BroadcastBoard(clubID, next)
		return next, nil, nil
	}

	now := s.now()
	next, outcome, err := board.Complete(courtNo, score, now)
	if err != nil {
		return board, nil, err
	}

	// The board commits before anything is persisted. A failed history or
	// summary write must not strand players on a cleared court.
	s.boards[clubID] = next
	s.hub.BroadcastBoard(clubID, next)

	var warnings []string
	if err := s.matchSvc.RecordMatch(ctx, outcome, now); err != nil {
		s.logger.Warn("match history not saved", "club_id", clubID, "court_no", courtNo, "error", err)
		warnings = append(warnings, "match result could not be saved to history")
	}

	winners := make([]models.SummaryWinner, 0, len(outcome.Winners))
	for _, w := range outcome.Winners {
		if w.IsGuest() {
			continue
		}
		winners = append(winners, models.SummaryWinner{PlayerID: w.ID, Gender: w.Gender})
	}
	if len(winners) > 0 {
		date := now.Format("2006-01-02")
		if _, err := s.summarySvc.RecordResult(ctx, clubID, date, winners); err != nil {
			s.logger.Warn("daily summary not updated", "club_id", clubID, "date", date, "error", err)
			warnings = append(warnings, "daily summary could not be updated")
		}
	}

	return next, warnings, nil
}

func (s *pegboardService) AddGuest(ctx context.Context, clubID, firstName, surName string, gender models.Gender) (pegboard.Board, models.Player, error) {
	if gender != models.GenderMale && gender != models.GenderFemale {
		return pegboard.Board{}, models.Player{}, ErrInvalidGender
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardLocked(ctx, clubID)
	if err != nil {
		return pegboard.Board{}, models.Player{}, err
	}

	next, guest := board.AddGuest(firstName, surName, gender)
	s.boards[clubID] = next
	s.hub.BroadcastBoard(clubID, next)
	return next, guest, nil
}

func (s *pegboardService) RemoveGuest(ctx context.Context, clubID, guestID string) (pegboard.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.boardLocked(ctx, clubID)
	if err != nil {
		return pegboard.Board{}, err
	}

	next, err := board.RemoveGuest(guestID)
	if err != nil {
		return board, err
	}
	s.boards[clubID] = next
	s.hub.BroadcastBoard(clubID, next)
	return next, nil
}

// boardLocked returns the live board for a club, creating it on first use.
// Caller holds s.mu.
func (s *pegboardService) boardLocked(ctx context.Context, clubID string) (pegboard.Board, error) {
	if board, ok := s.boards[clubID]; ok {
		return board, nil
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, repositories.ErrClubNotFound) {
			return pegboard.Board{}, ErrClubNotFound
		}
		return pegboard.Board{}, fmt.Errorf("failed to load club: %w", err)
	}

	pool, err := s.playerRepo.ListByClub(ctx, clubID, 0)
	if err != nil {
		return pegboard.Board{}, fmt.Errorf("failed to load roster: %w", err)
	}

	board := pegboard.NewBoard(clubID, club.Courts, pool)
	s.boards[clubID] = board
	return board, nil
}

func (s *pegboardService) commitSelection(clubID string, board pegboard.Board, selection []models.Player) (pegboard.Board, error) {
	next, courtNo, err := board.Assign(selection, s.now())
	if err != nil {
		return board, err
	}
	s.boards[clubID] = next
	s.hub.BroadcastBoard(clubID, next)
	s.logger.Info("court assigned", "club_id", clubID, "court_no", courtNo, "players", len(selection))
	return next, nil
}

// rankPool decorates pool players with their persisted rolling averages so the
// skill heuristics can bucket them without touching the database.
func rankPool(pool []models.Player) []models.RankedPlayer {
	ranked := make([]models.RankedPlayer, len(pool))
	for i, p := range pool {
		ranked[i] = models.RankedPlayer{
			Player:     p,
			AvgScore:   p.AveragePoints,
			MatchCount: p.MatchCount,
		}
	}
	return ranked
}
