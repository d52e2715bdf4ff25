package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smashhub/smashhub-server/models"
)

var ErrAttendanceConflict = errors.New("attendance already recorded for player and date")

type AttendanceRepository interface {
	BulkInsert(ctx context.Context, entries []models.Attendance) error
	ListByDate(ctx context.Context, clubID, date string) ([]models.Attendance, error)
	// DailyPresentCounts aggregates "Present" marks per day split by
	// junior/adult membership, inclusive of both bounds (YYYY-MM-DD).
	DailyPresentCounts(ctx context.Context, clubID, from, to string) ([]models.DailyAttendanceStat, error)
}

type postgresAttendanceRepository struct {
	db *sql.DB
}

func NewPostgresAttendanceRepository(db *sql.DB) AttendanceRepository {
	return &postgresAttendanceRepository{db: db}
}

func (r *postgresAttendanceRepository) BulkInsert(ctx context.Context, entries []models.Attendance) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO attendance (id, club_id, player_id, date, day, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (player_id, date) DO UPDATE SET status = EXCLUDED.status, day = EXCLUDED.day`

	for _, e := range entries {
		if _, err = tx.ExecContext(ctx, query, e.ID, e.ClubID, e.PlayerID, e.Date, e.Day, e.Status); err != nil {
			return fmt.Errorf("failed to record attendance for player %s: %w", e.PlayerID, err)
		}
	}

	return tx.Commit()
}

func (r *postgresAttendanceRepository) ListByDate(ctx context.Context, clubID, date string) ([]models.Attendance, error) {
	query := `
		SELECT id, club_id, player_id, date, day, status, created_at
		FROM attendance
		WHERE club_id = $1 AND date = $2
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, clubID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Attendance, 0)
	for rows.Next() {
		var e models.Attendance
		if err := rows.Scan(&e.ID, &e.ClubID, &e.PlayerID, &e.Date, &e.Day, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *postgresAttendanceRepository) DailyPresentCounts(ctx context.Context, clubID, from, to string) ([]models.DailyAttendanceStat, error) {
	// Only full club members count toward the dashboard chart; coaching-only
	// players are excluded the same way the admin roster view excludes them.
	query := `
		SELECT a.date,
		       COUNT(*) FILTER (WHERE p.player_type = 'Junior Club Member') AS juniors,
		       COUNT(*) FILTER (WHERE p.player_type = 'Adult Club Member') AS adults
		FROM attendance a
		JOIN players p ON p.id = a.player_id
		WHERE a.club_id = $1
		  AND a.status = 'Present'
		  AND a.date >= $2
		  AND a.date <= $3
		  AND p.player_type IN ('Junior Club Member', 'Adult Club Member')
		GROUP BY a.date
		ORDER BY a.date ASC`

	rows, err := r.db.QueryContext(ctx, query, clubID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.DailyAttendanceStat, 0)
	for rows.Next() {
		var s models.DailyAttendanceStat
		if err := rows.Scan(&s.Date, &s.Juniors, &s.Adults); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
