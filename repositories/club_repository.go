package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/smashhub/smashhub-server/models"
)

var (
	ErrClubNotFound     = errors.New("club not found")
	ErrClubNameConflict = errors.New("club name conflict")
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id string) (*models.Club, error)
	GetByName(ctx context.Context, name string) (*models.Club, error)
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

func (r *postgresClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (id, name, location, courts)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, club.ID, club.Name, club.Location, club.Courts).
		Scan(&club.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrClubNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id string) (*models.Club, error) {
	query := `SELECT id, name, location, courts, created_at FROM clubs WHERE id = $1`
	return r.scanClub(ctx, query, id)
}

func (r *postgresClubRepository) GetByName(ctx context.Context, name string) (*models.Club, error) {
	query := `SELECT id, name, location, courts, created_at FROM clubs WHERE name = $1`
	return r.scanClub(ctx, query, name)
}

func (r *postgresClubRepository) scanClub(ctx context.Context, query string, args ...interface{}) (*models.Club, error) {
	club := &models.Club{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&club.ID,
		&club.Name,
		&club.Location,
		&club.Courts,
		&club.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return club, nil
}
