package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/smashhub/smashhub-server/models"
)

var ErrSkillTemplateNotFound = errors.New("skill template not found")

type SkillRepository interface {
	GetTemplate(ctx context.Context, clubID string) (*models.SkillTemplate, error)
	SaveTemplate(ctx context.Context, template *models.SkillTemplate) error
	AppendSnapshot(ctx context.Context, snapshot *models.SkillSnapshot) error
	ListSnapshots(ctx context.Context, playerID string) ([]models.SkillSnapshot, error)
}

type postgresSkillRepository struct {
	db *sql.DB
}

func NewPostgresSkillRepository(db *sql.DB) SkillRepository {
	return &postgresSkillRepository{db: db}
}

func (r *postgresSkillRepository) GetTemplate(ctx context.Context, clubID string) (*models.SkillTemplate, error) {
	query := `SELECT id, club_id, groups, updated_at FROM skill_templates WHERE club_id = $1`

	template := &models.SkillTemplate{}
	var groups []byte
	err := r.db.QueryRowContext(ctx, query, clubID).Scan(
		&template.ID,
		&template.ClubID,
		&groups,
		&template.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSkillTemplateNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(groups, &template.Groups); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skill groups: %w", err)
	}
	return template, nil
}

func (r *postgresSkillRepository) SaveTemplate(ctx context.Context, template *models.SkillTemplate) error {
	groups, err := json.Marshal(template.Groups)
	if err != nil {
		return fmt.Errorf("failed to marshal skill groups: %w", err)
	}

	query := `
		INSERT INTO skill_templates (id, club_id, groups, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (club_id) DO UPDATE SET groups = EXCLUDED.groups, updated_at = now()`

	_, err = r.db.ExecContext(ctx, query, template.ID, template.ClubID, groups)
	return err
}

func (r *postgresSkillRepository) AppendSnapshot(ctx context.Context, snapshot *models.SkillSnapshot) error {
	ratings, err := json.Marshal(snapshot.Ratings)
	if err != nil {
		return fmt.Errorf("failed to marshal skill ratings: %w", err)
	}

	query := `
		INSERT INTO skill_snapshots (id, player_id, date, ratings)
		VALUES ($1, $2, $3, $4)`

	_, err = r.db.ExecContext(ctx, query, snapshot.ID, snapshot.PlayerID, snapshot.Date, ratings)
	return err
}

func (r *postgresSkillRepository) ListSnapshots(ctx context.Context, playerID string) ([]models.SkillSnapshot, error) {
	query := `
		SELECT id, player_id, date, ratings
		FROM skill_snapshots
		WHERE player_id = $1
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]models.SkillSnapshot, 0)
	for rows.Next() {
		var s models.SkillSnapshot
		var ratings []byte
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.Date, &ratings); err != nil {
			return nil, err
		}
		s.Ratings, err = coerceRatings(ratings)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// coerceRatings reads a ratings document whose leaf values may be legacy
// strings or floats and folds everything to integers. Unparseable leaves
// become zero rather than failing the whole history read.
func coerceRatings(data []byte) (map[string]map[string]int, error) {
	var raw map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skill ratings: %w", err)
	}

	out := make(map[string]map[string]int, len(raw))
	for group, skills := range raw {
		out[group] = make(map[string]int, len(skills))
		for skill, v := range skills {
			switch val := v.(type) {
			case float64:
				out[group][skill] = int(math.Round(val))
			case string:
				n, err := strconv.Atoi(val)
				if err != nil {
					n = 0
				}
				out[group][skill] = n
			default:
				out[group][skill] = 0
			}
		}
	}
	return out, nil
}
