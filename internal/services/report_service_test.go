package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories/repository_mocks"
	"fintrack/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	entryRepo *repository_mocks.MockEntryRepositoryInterface
	metrics   *service_mocks.MockMetricsRecorderInterface
	service   ReportServiceInterface
	userID    uuid.UUID
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.entryRepo = repository_mocks.NewMockEntryRepositoryInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()
	s.service = NewReportService(s.entryRepo, s.metrics, slog.Default())
	s.userID = uuid.New()
}

func (s *ReportServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (s *ReportServiceTestSuite) TestSummary_Success() {
	monthly := []models.MonthlyTotal{
		{Month: "2026-01", Income: decimal.RequireFromString("2500.00"), Expense: decimal.RequireFromString("958.20")},
		{Month: "2026-02", Income: decimal.RequireFromString("2600.00"), Expense: decimal.Zero},
	}

	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindIncome, models.DateRange{}).Return(decimal.RequireFromString("5100.00"), nil)
	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindExpense, models.DateRange{}).Return(decimal.RequireFromString("958.20"), nil)
	s.entryRepo.EXPECT().MonthlyTotals(s.userID, models.DateRange{}).Return(monthly, nil)

	report, err := s.service.Summary(s.userID, models.DateRange{})

	s.NoError(err)
	s.True(report.TotalIncome.Equal(decimal.RequireFromString("5100.00")))
	s.True(report.TotalExpense.Equal(decimal.RequireFromString("958.20")))
	s.True(report.Balance.Equal(decimal.RequireFromString("4141.80")))
	s.Equal(monthly, report.MonthlyTotals)
}

func (s *ReportServiceTestSuite) TestSummary_NoEntries() {
	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindIncome, models.DateRange{}).Return(decimal.Zero, nil)
	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindExpense, models.DateRange{}).Return(decimal.Zero, nil)
	s.entryRepo.EXPECT().MonthlyTotals(s.userID, models.DateRange{}).Return([]models.MonthlyTotal{}, nil)

	report, err := s.service.Summary(s.userID, models.DateRange{})

	s.NoError(err)
	s.True(report.Balance.IsZero())
	s.Empty(report.MonthlyTotals)
}

func (s *ReportServiceTestSuite) TestSummary_NegativeBalance() {
	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindIncome, models.DateRange{}).Return(decimal.RequireFromString("100.00"), nil)
	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindExpense, models.DateRange{}).Return(decimal.RequireFromString("250.00"), nil)
	s.entryRepo.EXPECT().MonthlyTotals(s.userID, models.DateRange{}).Return([]models.MonthlyTotal{}, nil)

	report, err := s.service.Summary(s.userID, models.DateRange{})

	s.NoError(err)
	s.True(report.Balance.Equal(decimal.RequireFromString("-150.00")))
}

func (s *ReportServiceTestSuite) TestSummary_PassesDateRangeToRepository() {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	rng := models.DateRange{From: &from, To: &to}

	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindIncome, rng).Return(decimal.RequireFromString("2500.00"), nil)
	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindExpense, rng).Return(decimal.RequireFromString("958.20"), nil)
	s.entryRepo.EXPECT().MonthlyTotals(s.userID, rng).Return([]models.MonthlyTotal{}, nil)

	report, err := s.service.Summary(s.userID, rng)

	s.NoError(err)
	s.True(report.Balance.Equal(decimal.RequireFromString("1541.80")))
}

func (s *ReportServiceTestSuite) TestChart_PassesDateRangeToRepository() {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rng := models.DateRange{From: &from}

	s.entryRepo.EXPECT().TotalsByItem(s.userID, models.EntryKindExpense, rng).Return([]models.ChartPoint{}, nil)

	got, err := s.service.Chart(s.userID, models.EntryKindExpense, rng)

	s.NoError(err)
	s.Empty(got)
}

func (s *ReportServiceTestSuite) TestSummary_RepositoryError() {
	s.entryRepo.EXPECT().SumByKind(s.userID, models.EntryKindIncome, models.DateRange{}).Return(decimal.Zero, errors.New("connection reset"))

	report, err := s.service.Summary(s.userID, models.DateRange{})

	s.Error(err)
	s.Nil(report)
}

func (s *ReportServiceTestSuite) TestChart_Success() {
	points := []models.ChartPoint{
		{ItemName: "Rent", Total: decimal.RequireFromString("900.00")},
		{ItemName: "Groceries", Total: decimal.RequireFromString("120.00")},
	}

	s.entryRepo.EXPECT().TotalsByItem(s.userID, models.EntryKindExpense, models.DateRange{}).Return(points, nil)

	got, err := s.service.Chart(s.userID, models.EntryKindExpense, models.DateRange{})

	s.NoError(err)
	s.Equal(points, got)
}

func (s *ReportServiceTestSuite) TestChart_RepositoryError() {
	s.entryRepo.EXPECT().TotalsByItem(s.userID, models.EntryKindIncome, models.DateRange{}).Return(nil, errors.New("connection reset"))

	got, err := s.service.Chart(s.userID, models.EntryKindIncome, models.DateRange{})

	s.Error(err)
	s.Nil(got)
}
