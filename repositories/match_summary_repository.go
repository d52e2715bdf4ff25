package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smashhub/smashhub-server/models"
)

var ErrSummaryNotFound = errors.New("match summary not found")

type MatchSummaryRepository interface {
	Get(ctx context.Context, clubID, date string) (*models.MatchSummary, error)
	// Save upserts the summary keyed by (club_id, date).
	Save(ctx context.Context, summary *models.MatchSummary) error
}

type postgresMatchSummaryRepository struct {
	db *sql.DB
}

func NewPostgresMatchSummaryRepository(db *sql.DB) MatchSummaryRepository {
	return &postgresMatchSummaryRepository{db: db}
}

func (r *postgresMatchSummaryRepository) Get(ctx context.Context, clubID, date string) (*models.MatchSummary, error) {
	query := `
		SELECT id, club_id, date, total_matches, winners, top_player_id, top_male_id, top_female_id, updated_at
		FROM match_summaries
		WHERE club_id = $1 AND date = $2`

	summary := &models.MatchSummary{}
	var winners []byte
	err := r.db.QueryRowContext(ctx, query, clubID, date).Scan(
		&summary.ID,
		&summary.ClubID,
		&summary.Date,
		&summary.TotalMatches,
		&winners,
		&summary.TopPlayerID,
		&summary.TopMaleID,
		&summary.TopFemaleID,
		&summary.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSummaryNotFound
		}
		return nil, err
	}

	if len(winners) > 0 {
		if err := json.Unmarshal(winners, &summary.Winners); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary winners: %w", err)
		}
	}
	return summary, nil
}

func (r *postgresMatchSummaryRepository) Save(ctx context.Context, summary *models.MatchSummary) error {
	winners, err := json.Marshal(summary.Winners)
	if err != nil {
		return fmt.Errorf("failed to marshal summary winners: %w", err)
	}

	query := `
		INSERT INTO match_summaries (
			id, club_id, date, total_matches, winners, top_player_id, top_male_id, top_female_id, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (club_id, date) DO UPDATE SET
			total_matches = EXCLUDED.total_matches,
			winners = EXCLUDED.winners,
			top_player_id = EXCLUDED.top_player_id,
			top_male_id = EXCLUDED.top_male_id,
			top_female_id = EXCLUDED.top_female_id,
			updated_at = now()`

	_, err = r.db.ExecContext(ctx, query,
		summary.ID,
		summary.ClubID,
		summary.Date,
		summary.TotalMatches,
		winners,
		summary.TopPlayerID,
		summary.TopMaleID,
		summary.TopFemaleID,
	)
	return err
}
