package services

import (
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

// reportService implements ReportServiceInterface
type reportService struct {
	entryRepo repositories.EntryRepositoryInterface
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
}

// NewReportService creates a report service
func NewReportService(
	entryRepo repositories.EntryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ReportServiceInterface {
	return &reportService{
		entryRepo: entryRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

// Summary aggregates the user's totals and month-by-month breakdown for
// the dashboard, scoped to the requested date range
func (s *reportService) Summary(userID uuid.UUID, rng models.DateRange) (*models.SummaryReport, error) {
	start := time.Now()

	income, err := s.entryRepo.SumByKind(userID, models.EntryKindIncome, rng)
	if err != nil {
		s.recordReport("summary", "error")
		return nil, fmt.Errorf("failed to sum incomes: %w", err)
	}

	expense, err := s.entryRepo.SumByKind(userID, models.EntryKindExpense, rng)
	if err != nil {
		s.recordReport("summary", "error")
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	monthly, err := s.entryRepo.MonthlyTotals(userID, rng)
	if err != nil {
		s.recordReport("summary", "error")
		return nil, fmt.Errorf("failed to load monthly totals: %w", err)
	}

	s.metrics.RecordProcessingTime("report", time.Since(start))
	s.recordReport("summary", "success")

	return &models.SummaryReport{
		TotalIncome:   income,
		TotalExpense:  expense,
		Balance:       income.Sub(expense),
		MonthlyTotals: monthly,
	}, nil
}

// Chart returns per-item totals for one kind within the date range,
// largest first
func (s *reportService) Chart(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) ([]models.ChartPoint, error) {
	start := time.Now()

	points, err := s.entryRepo.TotalsByItem(userID, kind, rng)
	if err != nil {
		s.recordReport("chart", "error")
		return nil, fmt.Errorf("failed to load chart totals: %w", err)
	}

	s.metrics.RecordProcessingTime("report", time.Since(start))
	s.recordReport("chart", "success")

	return points, nil
}

func (s *reportService) recordReport(report, status string) {
	s.metrics.IncrementCounter("report_request", map[string]string{
		"report": report,
		"status": status,
	})
}
