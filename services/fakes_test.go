package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/repositories"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakePlayerRepo struct {
	players   map[string]*models.Player
	order     []string
	createErr error
}

func newFakePlayerRepo(players ...models.Player) *fakePlayerRepo {
	repo := &fakePlayerRepo{players: make(map[string]*models.Player)}
	for _, p := range players {
		cp := p
		repo.players[p.ID] = &cp
		repo.order = append(repo.order, p.ID)
	}
	return repo
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *player
	r.players[player.ID] = &cp
	r.order = append(r.order, player.ID)
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id string) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	cp := *player
	r.players[player.ID] = &cp
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakePlayerRepo) ListByClub(_ context.Context, clubID string, limit int) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		if p.ClubID != clubID {
			continue
		}
		out = append(out, *p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) UpdateAggregates(_ context.Context, playerID string, averagePoints int) error {
	p, ok := r.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.AveragePoints = averagePoints
	p.MatchCount++
	return nil
}

func (r *fakePlayerRepo) IncrementWins(_ context.Context, playerID string) error {
	p, ok := r.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Wins++
	return nil
}

func (r *fakePlayerRepo) UpdatePhotoKey(_ context.Context, playerID string, key *string) error {
	p, ok := r.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.PhotoKey = key
	return nil
}

type fakeHistoryRepo struct {
	records   []models.MatchRecord
	points    map[string][]int
	insertErr error
}

func (r *fakeHistoryRepo) InsertRecords(_ context.Context, records []models.MatchRecord) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.records = append(r.records, records...)
	return nil
}

func (r *fakeHistoryRepo) ListByPlayer(_ context.Context, playerID string, limit int) ([]models.MatchRecord, error) {
	out := make([]models.MatchRecord, 0)
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].PlayerID != playerID {
			continue
		}
		out = append(out, r.records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) LastPoints(_ context.Context, playerID string, n int) ([]int, error) {
	if r.points != nil {
		points := r.points[playerID]
		if len(points) > n {
			points = points[:n]
		}
		return points, nil
	}
	out := make([]int, 0)
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].PlayerID != playerID {
			continue
		}
		out = append(out, r.records[i].Points)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

type fakeSummaryRepo struct {
	summaries map[string]*models.MatchSummary
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{summaries: make(map[string]*models.MatchSummary)}
}

func summaryFakeKey(clubID, date string) string {
	return clubID + "/" + date
}

func (r *fakeSummaryRepo) Get(_ context.Context, clubID, date string) (*models.MatchSummary, error) {
	s, ok := r.summaries[summaryFakeKey(clubID, date)]
	if !ok {
		return nil, repositories.ErrSummaryNotFound
	}
	return cloneSummary(s), nil
}

func (r *fakeSummaryRepo) Save(_ context.Context, summary *models.MatchSummary) error {
	r.summaries[summaryFakeKey(summary.ClubID, summary.Date)] = cloneSummary(summary)
	return nil
}

func cloneSummary(s *models.MatchSummary) *models.MatchSummary {
	cp := *s
	cp.Winners = append([]models.WinnerTally(nil), s.Winners...)
	return &cp
}
