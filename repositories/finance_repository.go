package repositories

import (
	"context"
	"database/sql"

	"github.com/smashhub/smashhub-server/models"
)

type FinanceRepository interface {
	InsertExpense(ctx context.Context, e *models.Expense) error
	ListExpenses(ctx context.Context, clubID string) ([]models.Expense, error)
	InsertRevenue(ctx context.Context, rev *models.Revenue) error
	ListRevenue(ctx context.Context, clubID string) ([]models.Revenue, error)
	InsertPayroll(ctx context.Context, p *models.PayrollEntry) error
	ListPayroll(ctx context.Context, clubID string) ([]models.PayrollEntry, error)
}

type AuditLogRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
	ListByClub(ctx context.Context, clubID string, limit int) ([]models.AuditLog, error)
}

type postgresFinanceRepository struct {
	db *sql.DB
}

func NewPostgresFinanceRepository(db *sql.DB) FinanceRepository {
	return &postgresFinanceRepository{db: db}
}

func (r *postgresFinanceRepository) InsertExpense(ctx context.Context, e *models.Expense) error {
	query := `
		INSERT INTO expenses (id, club_id, category, description, amount_pence, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	return r.db.QueryRowContext(ctx, query,
		e.ID, e.ClubID, e.Category, e.Description, e.AmountPence, e.Date, e.CreatedBy,
	).Scan(&e.CreatedAt)
}

func (r *postgresFinanceRepository) ListExpenses(ctx context.Context, clubID string) ([]models.Expense, error) {
	query := `
		SELECT id, club_id, category, description, amount_pence, date, created_by, created_at
		FROM expenses WHERE club_id = $1 ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.ClubID, &e.Category, &e.Description, &e.AmountPence, &e.Date, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *postgresFinanceRepository) InsertRevenue(ctx context.Context, rev *models.Revenue) error {
	query := `
		INSERT INTO revenue (id, club_id, source, description, amount_pence, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	return r.db.QueryRowContext(ctx, query,
		rev.ID, rev.ClubID, rev.Source, rev.Description, rev.AmountPence, rev.Date, rev.CreatedBy,
	).Scan(&rev.CreatedAt)
}

func (r *postgresFinanceRepository) ListRevenue(ctx context.Context, clubID string) ([]models.Revenue, error) {
	query := `
		SELECT id, club_id, source, description, amount_pence, date, created_by, created_at
		FROM revenue WHERE club_id = $1 ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Revenue, 0)
	for rows.Next() {
		var rev models.Revenue
		if err := rows.Scan(&rev.ID, &rev.ClubID, &rev.Source, &rev.Description, &rev.AmountPence, &rev.Date, &rev.CreatedBy, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *postgresFinanceRepository) InsertPayroll(ctx context.Context, p *models.PayrollEntry) error {
	query := `
		INSERT INTO payroll (id, club_id, payee, role_title, amount_pence, period_start, period_end, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	return r.db.QueryRowContext(ctx, query,
		p.ID, p.ClubID, p.Payee, p.RoleTitle, p.AmountPence, p.PeriodStart, p.PeriodEnd, p.CreatedBy,
	).Scan(&p.CreatedAt)
}

func (r *postgresFinanceRepository) ListPayroll(ctx context.Context, clubID string) ([]models.PayrollEntry, error) {
	query := `
		SELECT id, club_id, payee, role_title, amount_pence, period_start, period_end, created_by, created_at
		FROM payroll WHERE club_id = $1 ORDER BY period_start DESC`

	rows, err := r.db.QueryContext(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.PayrollEntry, 0)
	for rows.Next() {
		var p models.PayrollEntry
		if err := rows.Scan(&p.ID, &p.ClubID, &p.Payee, &p.RoleTitle, &p.AmountPence, &p.PeriodStart, &p.PeriodEnd, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type postgresAuditLogRepository struct {
	db *sql.DB
}

func NewPostgresAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &postgresAuditLogRepository{db: db}
}

func (r *postgresAuditLogRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, club_id, user_id, action, entity, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	return r.db.QueryRowContext(ctx, query,
		entry.ID, entry.ClubID, entry.UserID, entry.Action, entry.Entity, entry.EntityID, entry.Detail,
	).Scan(&entry.CreatedAt)
}

func (r *postgresAuditLogRepository) ListByClub(ctx context.Context, clubID string, limit int) ([]models.AuditLog, error) {
	query := `
		SELECT id, club_id, user_id, action, entity, entity_id, detail, created_at
		FROM audit_logs WHERE club_id = $1 ORDER BY created_at DESC`
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

	out := make([]models.AuditLog, 0)
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.ClubID, &e.UserID, &e.Action, &e.Entity, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
