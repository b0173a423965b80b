package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryNotFound     = errors.New("entry not found")
	ErrInvalidEntryDate  = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrEntryItemMismatch = errors.New("item type does not match the entry kind")
)

const entryDateLayout = "2006-01-02"

// entryService implements EntryServiceInterface
type entryService struct {
	entryRepo repositories.EntryRepositoryInterface
	itemRepo  repositories.ItemRepositoryInterface
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
}

// NewEntryService creates an entry service
func NewEntryService(
	entryRepo repositories.EntryRepositoryInterface,
	itemRepo repositories.ItemRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) EntryServiceInterface {
	return &entryService{
		entryRepo: entryRepo,
		itemRepo:  itemRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

// Query returns one page of the user's entries of one kind plus the
// filtered total
func (s *entryService) Query(userID uuid.UUID, kind models.EntryKind, query *models.TableQuery) (*dto.TableResponse[repositories.EntryRow], error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTableQuery, err)
	}

	table := kind.String() + "s"

	start := time.Now()
	rows, total, err := s.entryRepo.GetPage(userID, kind, *query)
	if err != nil {
		s.recordQuery(table, "error")
		if errors.Is(err, repositories.ErrInvalidQueryColumn) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTableQuery, err)
		}
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}

	s.metrics.RecordProcessingTime(table+"_query", time.Since(start))
	s.metrics.RecordGauge("table_rows_returned", float64(len(rows)), map[string]string{"table": table})
	s.recordQuery(table, "success")

	return &dto.TableResponse[repositories.EntryRow]{RowData: rows, RowCount: total}, nil
}

// Create records a new income or expense entry for the user
func (s *entryService) Create(userID uuid.UUID, kind models.EntryKind, req *dto.EntryRequest) (*models.Entry, error) {
	date, amount, err := s.parseFields(req)
	if err != nil {
		return nil, err
	}

	if err := s.checkItem(userID, kind, req.ItemID); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		Kind:   kind,
		Date:   date,
		Amount: amount,
		Note:   req.Note,
		ItemID: req.ItemID,
		UserID: userID,
	}

	if err := s.entryRepo.Create(entry); err != nil {
		s.recordMutation(kind, "create", "error")
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	s.recordMutation(kind, "create", "success")
	amountValue, _ := amount.Float64()
	s.metrics.RecordGauge("entry_amount", amountValue, map[string]string{"kind": kind.String()})
	s.logger.Info("entry created",
		"user_id", userID,
		"entry_id", entry.ID,
		"kind", kind.String())

	return entry, nil
}

// Update rewrites one of the user's entries
func (s *entryService) Update(userID uuid.UUID, kind models.EntryKind, id int64, req *dto.EntryRequest) (*models.Entry, error) {
	date, amount, err := s.parseFields(req)
	if err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	// The endpoints are kind-scoped: an income ID is invisible to the
	// expenses table and vice versa
	if entry.Kind != kind {
		return nil, ErrEntryNotFound
	}

	if err := s.checkItem(userID, kind, req.ItemID); err != nil {
		return nil, err
	}

	entry.Date = date
	entry.Amount = amount
	entry.Note = req.Note
	entry.ItemID = req.ItemID

	if err := s.entryRepo.Update(entry); err != nil {
		s.recordMutation(kind, "update", "error")
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	s.recordMutation(kind, "update", "success")

	return entry, nil
}

// Delete removes one of the user's entries of the given kind
func (s *entryService) Delete(userID uuid.UUID, kind models.EntryKind, id int64) error {
	if err := s.entryRepo.Delete(userID, kind, id); err != nil {
		if errors.Is(err, repositories.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.recordMutation(kind, "delete", "error")
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	s.recordMutation(kind, "delete", "success")
	s.logger.Info("entry deleted",
		"user_id", userID,
		"entry_id", id,
		"kind", kind.String())

	return nil
}

func (s *entryService) parseFields(req *dto.EntryRequest) (time.Time, decimal.Decimal, error) {
	date, err := time.Parse(entryDateLayout, req.Date)
	if err != nil {
		return time.Time{}, decimal.Zero, ErrInvalidEntryDate
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return time.Time{}, decimal.Zero, ErrInvalidAmount
	}

	return date, amount, nil
}

// checkItem verifies the referenced item belongs to the user and its type
// matches the entry kind.
func (s *entryService) checkItem(userID uuid.UUID, kind models.EntryKind, itemID int64) error {
	item, err := s.itemRepo.GetByID(userID, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to verify item: %w", err)
	}

	if item.Type != kind.ItemType() {
		return ErrEntryItemMismatch
	}

	return nil
}

func (s *entryService) recordQuery(table, status string) {
	s.metrics.IncrementCounter("table_query", map[string]string{
		"table":  table,
		"status": status,
	})
}

func (s *entryService) recordMutation(kind models.EntryKind, operation, status string) {
	s.metrics.IncrementCounter("entry_mutation", map[string]string{
		"kind":      kind.String(),
		"operation": operation,
		"status":    status,
	})
}
