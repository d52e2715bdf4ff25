package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smashhub/smashhub-server/models"
)

var ErrMatchRecordNotFound = errors.New("match record not found")

type MatchHistoryRepository interface {
	InsertRecords(ctx context.Context, records []models.MatchRecord) error
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]models.MatchRecord, error)
	// LastPoints returns the points of the player's most recent matches,
	// newest first, capped at n.
	LastPoints(ctx context.Context, playerID string, n int) ([]int, error)
}

type postgresMatchHistoryRepository struct {
	db *sql.DB
}

func NewPostgresMatchHistoryRepository(db *sql.DB) MatchHistoryRepository {
	return &postgresMatchHistoryRepository{db: db}
}

func (r *postgresMatchHistoryRepository) InsertRecords(ctx context.Context, records []models.MatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO match_history (
			id, player_id, match_id, match_date, match_time, result, match_type,
			partner, partner_sex, opponents, points, duration, court_no
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	for _, rec := range records {
		opponents, marshalErr := json.Marshal(rec.Opponents)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal opponents: %w", marshalErr)
		}
		if _, err = tx.ExecContext(ctx, query,
			rec.ID,
			rec.PlayerID,
			rec.MatchID,
			rec.MatchDate,
			rec.MatchTime,
			rec.Result,
			rec.MatchType,
			rec.Partner,
			rec.PartnerSex,
			opponents,
			rec.Points,
			rec.Duration,
			rec.CourtNo,
		); err != nil {
			return fmt.Errorf("failed to insert match record for player %s: %w", rec.PlayerID, err)
		}
	}

	return tx.Commit()
}

func (r *postgresMatchHistoryRepository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]models.MatchRecord, error) {
	query := `
		SELECT id, player_id, match_id, match_date, match_time, result, match_type,
		       partner, partner_sex, opponents, points, duration, court_no, created_at
		FROM match_history
		WHERE player_id = $1
		ORDER BY match_date DESC, match_time DESC`
	args := []interface{}{playerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.MatchRecord, 0)
	for rows.Next() {
		var rec models.MatchRecord
		var opponents []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.PlayerID,
			&rec.MatchID,
			&rec.MatchDate,
			&rec.MatchTime,
			&rec.Result,
			&rec.MatchType,
			&rec.Partner,
			&rec.PartnerSex,
			&opponents,
			&rec.Points,
			&rec.Duration,
			&rec.CourtNo,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(opponents) > 0 {
			if err := json.Unmarshal(opponents, &rec.Opponents); err != nil {
				return nil, fmt.Errorf("failed to unmarshal opponents: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *postgresMatchHistoryRepository) LastPoints(ctx context.Context, playerID string, n int) ([]int, error) {
	query := `
		SELECT points
		FROM match_history
		WHERE player_id = $1
		ORDER BY match_date DESC, match_time DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, playerID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]int, 0, n)
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
