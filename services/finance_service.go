package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/repositories"
)

type FinanceService interface {
	AddExpense(ctx context.Context, userID string, e *models.Expense) (*models.Expense, error)
	ListExpenses(ctx context.Context, clubID string) ([]models.Expense, error)
	AddRevenue(ctx context.Context, userID string, rev *models.Revenue) (*models.Revenue, error)
	ListRevenue(ctx context.Context, clubID string) ([]models.Revenue, error)
	AddPayroll(ctx context.Context, userID string, p *models.PayrollEntry) (*models.PayrollEntry, error)
	ListPayroll(ctx context.Context, clubID string) ([]models.PayrollEntry, error)
	AuditTrail(ctx context.Context, clubID string, limit int) ([]models.AuditLog, error)
}

type financeService struct {
	financeRepo repositories.FinanceRepository
	auditRepo   repositories.AuditLogRepository
	logger      *slog.Logger
}

func NewFinanceService(financeRepo repositories.FinanceRepository, auditRepo repositories.AuditLogRepository, logger *slog.Logger) FinanceService {
	return &financeService{
		financeRepo: financeRepo,
		auditRepo:   auditRepo,
		logger:      logger,
	}
}

func (s *financeService) AddExpense(ctx context.Context, userID string, e *models.Expense) (*models.Expense, error) {
	if e.AmountPence <= 0 {
		return nil, ErrAmountNotPositive
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return nil, ErrInvalidDate
	}
	e.ID = uuid.NewString()
	e.CreatedBy = userID

	if err := s.financeRepo.InsertExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}
	s.audit(ctx, e.ClubID, userID, "create", "expense", e.ID, e.Description)
	return e, nil
}

func (s *financeService) ListExpenses(ctx context.Context, clubID string) ([]models.Expense, error) {
	return s.financeRepo.ListExpenses(ctx, clubID)
}

func (s *financeService) AddRevenue(ctx context.Context, userID string, rev *models.Revenue) (*models.Revenue, error) {
	if rev.AmountPence <= 0 {
		return nil, ErrAmountNotPositive
	}
	if _, err := time.Parse("2006-01-02", rev.Date); err != nil {
		return nil, ErrInvalidDate
	}
	rev.ID = uuid.NewString()
	rev.CreatedBy = userID

	if err := s.financeRepo.InsertRevenue(ctx, rev); err != nil {
		return nil, fmt.Errorf("failed to insert revenue: %w", err)
	}
	s.audit(ctx, rev.ClubID, userID, "create", "revenue", rev.ID, rev.Description)
	return rev, nil
}

func (s *financeService) ListRevenue(ctx context.Context, clubID string) ([]models.Revenue, error) {
	return s.financeRepo.ListRevenue(ctx, clubID)
}

func (s *financeService) AddPayroll(ctx context.Context, userID string, p *models.PayrollEntry) (*models.PayrollEntry, error) {
	if p.AmountPence <= 0 {
		return nil, ErrAmountNotPositive
	}
	if _, err := time.Parse("2006-01-02", p.PeriodStart); err != nil {
		return nil, ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", p.PeriodEnd); err != nil {
		return nil, ErrInvalidDate
	}
	p.ID = uuid.NewString()
	p.CreatedBy = userID

	if err := s.financeRepo.InsertPayroll(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to insert payroll entry: %w", err)
	}
	s.audit(ctx, p.ClubID, userID, "create", "payroll", p.ID, p.Payee)
	return p, nil
}

func (s *financeService) ListPayroll(ctx context.Context, clubID string) ([]models.PayrollEntry, error) {
	return s.financeRepo.ListPayroll(ctx, clubID)
}

func (s *financeService) AuditTrail(ctx context.Context, clubID string, limit int) ([]models.AuditLog, error) {
	return s.auditRepo.ListByClub(ctx, clubID, limit)
}

// audit writes a trail entry. The trail is best-effort: a failed write is
// logged but never fails the finance operation it describes.
func (s *financeService) audit(ctx context.Context, clubID, userID, action, entity, entityID, detail string) {
	entry := &models.AuditLog{
		ID:       uuid.NewString(),
		ClubID:   clubID,
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	}
	if err := s.auditRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn("failed to write audit log", "club_id", clubID, "entity", entity, "error", err)
	}
}
