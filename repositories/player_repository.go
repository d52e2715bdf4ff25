package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/smashhub/smashhub-server/models"
)

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerEmailConflict = errors.New("player email conflict")
	ErrPlayerClubInvalid   = errors.New("player club invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id string) (*models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id string) error
	ListByClub(ctx context.Context, clubID string, limit int) ([]models.Player, error)
	UpdateAggregates(ctx context.Context, playerID string, averagePoints int) error
	IncrementWins(ctx context.Context, playerID string) error
	UpdatePhotoKey(ctx context.Context, playerID string, key *string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `
	id, club_id, first_name, sur_name, gender, dob, player_type, is_junior,
	parent_name, parent_phone, email, emergency_contact_name, emergency_contact_phone,
	joining_date, payment_status, club_roles, enable_skill_tracking,
	wins, average_points, match_count, photo_key, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (
			id, club_id, first_name, sur_name, gender, dob, player_type, is_junior,
			parent_name, parent_phone, email, emergency_contact_name, emergency_contact_phone,
			joining_date, payment_status, club_roles, enable_skill_tracking
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		player.ID,
		player.ClubID,
		player.FirstName,
		player.SurName,
		player.Gender,
		player.DOB,
		player.PlayerType,
		player.IsJunior,
		player.ParentName,
		player.ParentPhone,
		player.Email,
		player.EmergencyContactName,
		player.EmergencyContactPhone,
		player.JoiningDate,
		player.PaymentStatus,
		pq.Array(player.ClubRoles),
		player.EnableSkillTracking,
	).Scan(&player.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "players_email_key" {
					return ErrPlayerEmailConflict
				}
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "players_club_id_fkey" {
					return ErrPlayerClubInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	return r.scanPlayer(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			first_name = $1,
			sur_name = $2,
			gender = $3,
			dob = $4,
			player_type = $5,
			is_junior = $6,
			parent_name = $7,
			parent_phone = $8,
			email = $9,
			emergency_contact_name = $10,
			emergency_contact_phone = $11,
			joining_date = $12,
			payment_status = $13,
			club_roles = $14,
			enable_skill_tracking = $15
		WHERE id = $16`

	result, err := r.db.ExecContext(ctx, query,
		player.FirstName,
		player.SurName,
		player.Gender,
		player.DOB,
		player.PlayerType,
		player.IsJunior,
		player.ParentName,
		player.ParentPhone,
		player.Email,
		player.EmergencyContactName,
		player.EmergencyContactPhone,
		player.JoiningDate,
		player.PaymentStatus,
		pq.Array(player.ClubRoles),
		player.EnableSkillTracking,
		player.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "players_email_key" {
				return ErrPlayerEmailConflict
			}
		}
		return err
	}

	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// ListByClub returns the club roster in joining order. A limit of 0 means no
// limit.
func (r *postgresPlayerRepository) ListByClub(ctx context.Context, clubID string, limit int) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE club_id = $1 ORDER BY created_at ASC`
	args := []interface{}{clubID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		player, scanErr := r.scanPlayerRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		players = append(players, *player)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) UpdateAggregates(ctx context.Context, playerID string, averagePoints int) error {
	query := `
		UPDATE players SET
			average_points = $1,
			match_count = match_count + 1
		WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, averagePoints, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) IncrementWins(ctx context.Context, playerID string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET wins = wins + 1 WHERE id = $1`, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, playerID string, key *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET photo_key = $1 WHERE id = $2`, key, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresPlayerRepository) scanPlayer(row rowScanner) (*models.Player, error) {
	player, err := r.scanPlayerRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) scanPlayerRow(row rowScanner) (*models.Player, error) {
	var player models.Player
	var roles pq.StringArray
	err := row.Scan(
		&player.ID,
		&player.ClubID,
		&player.FirstName,
		&player.SurName,
		&player.Gender,
		&player.DOB,
		&player.PlayerType,
		&player.IsJunior,
		&player.ParentName,
		&player.ParentPhone,
		&player.Email,
		&player.EmergencyContactName,
		&player.EmergencyContactPhone,
		&player.JoiningDate,
		&player.PaymentStatus,
		&roles,
		&player.EnableSkillTracking,
		&player.Wins,
		&player.AveragePoints,
		&player.MatchCount,
		&player.PhotoKey,
		&player.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	player.ClubRoles = roles
	return &player, nil
}
