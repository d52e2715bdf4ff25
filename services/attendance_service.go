package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smashhub/smashhub-server/models"
	"github.com/smashhub/smashhub-server/repositories"
)

type AttendanceService interface {
	MarkAttendance(ctx context.Context, clubID, date string, marks []AttendanceMark) ([]models.Attendance, error)
	ListByDate(ctx context.Context, clubID, date string) ([]models.Attendance, error)
	// TrendStats backs the dashboard chart: present counts per day over the
	// trailing window, split into juniors and adults.
	TrendStats(ctx context.Context, clubID string, days int) ([]models.DailyAttendanceStat, error)
	// TrendRange is TrendStats over an explicit date range.
	TrendRange(ctx context.Context, clubID, from, to string) ([]models.DailyAttendanceStat, error)
}

type AttendanceMark struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
}

type attendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo repositories.AttendanceRepository) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

func (s *attendanceService) MarkAttendance(ctx context.Context, clubID, date string, marks []AttendanceMark) ([]models.Attendance, error) {
	if len(marks) == 0 {
		return nil, ErrValidationFailed
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	day := parsed.Weekday().String()

	entries := make([]models.Attendance, 0, len(marks))
	for _, m := range marks {
		status := models.AttendanceStatus(m.Status)
		if status != models.AttendancePresent && status != models.AttendanceAbsent {
			return nil, ErrValidationFailed
		}
		entries = append(entries, models.Attendance{
			ID:       uuid.NewString(),
			ClubID:   clubID,
			PlayerID: m.PlayerID,
			Date:     date,
			Day:      day,
			Status:   status,
		})
	}

	if err := s.attendanceRepo.BulkInsert(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}
	return entries, nil
}

func (s *attendanceService) ListByDate(ctx context.Context, clubID, date string) ([]models.Attendance, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}
	entries, err := s.attendanceRepo.ListByDate(ctx, clubID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return entries, nil
}

func (s *attendanceService) TrendStats(ctx context.Context, clubID string, days int) ([]models.DailyAttendanceStat, error) {
	if days <= 0 {
		days = 30
	}
	to := s.now()
	from := to.AddDate(0, 0, -(days - 1))

	stats, err := s.attendanceRepo.DailyPresentCounts(ctx, clubID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance stats: %w", err)
	}
	return stats, nil
}

func (s *attendanceService) TrendRange(ctx context.Context, clubID, from, to string) ([]models.DailyAttendanceStat, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if toDate.Before(fromDate) {
		return nil, ErrInvalidDate
	}

	stats, err := s.attendanceRepo.DailyPresentCounts(ctx, clubID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance stats: %w", err)
	}
	return stats, nil
}
