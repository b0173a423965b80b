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
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrItemAlreadyExists = errors.New("item with this name already exists")
	ErrItemInUse         = errors.New("item is referenced by entries")
	ErrInvalidItemType   = errors.New("item type must be income or expense")
	ErrInvalidTableQuery = errors.New("invalid table query")
)

// itemService implements ItemServiceInterface
type itemService struct {
	itemRepo repositories.ItemRepositoryInterface
	metrics  MetricsRecorderInterface
	logger   *slog.Logger
}

// NewItemService creates an item service
func NewItemService(
	itemRepo repositories.ItemRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ItemServiceInterface {
	return &itemService{
		itemRepo: itemRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// Query returns one page of the user's items plus the filtered total
func (s *itemService) Query(userID uuid.UUID, query *models.TableQuery) (*dto.TableResponse[dto.ItemRow], error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTableQuery, err)
	}

	start := time.Now()
	items, total, err := s.itemRepo.GetPage(userID, *query)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidQueryColumn) {
			s.recordQuery("error")
			return nil, fmt.Errorf("%w: %v", ErrInvalidTableQuery, err)
		}
		s.recordQuery("error")
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	s.metrics.RecordProcessingTime("items_query", time.Since(start))
	s.metrics.RecordGauge("table_rows_returned", float64(len(items)), map[string]string{"table": "items"})
	s.recordQuery("success")

	rows := make([]dto.ItemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, dto.ItemRow{
			ID:   item.ID,
			Name: item.Name,
			Type: int(item.Type),
		})
	}

	return &dto.TableResponse[dto.ItemRow]{RowData: rows, RowCount: total}, nil
}

// Get returns one of the user's items
func (s *itemService) Get(userID uuid.UUID, id int64) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// Create creates a new item for the user
func (s *itemService) Create(userID uuid.UUID, req *dto.ItemRequest) (*models.Item, error) {
	itemType := models.ItemType(req.Type)
	if !itemType.IsValid() {
		return nil, ErrInvalidItemType
	}

	item := &models.Item{
		Name:   req.Name,
		Type:   itemType,
		UserID: userID,
	}

	if err := s.itemRepo.Create(item); err != nil {
		if errors.Is(err, repositories.ErrItemAlreadyExists) {
			s.recordMutation("create", "conflict")
			return nil, ErrItemAlreadyExists
		}
		s.recordMutation("create", "error")
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.recordMutation("create", "success")
	s.logger.Info("item created",
		"user_id", userID,
		"item_id", item.ID,
		"type", itemType.String())

	return item, nil
}

// Update renames or retypes one of the user's items
func (s *itemService) Update(userID uuid.UUID, id int64, req *dto.ItemRequest) (*models.Item, error) {
	itemType := models.ItemType(req.Type)
	if !itemType.IsValid() {
		return nil, ErrInvalidItemType
	}

	item, err := s.itemRepo.GetByID(userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	// Retyping an item in use would orphan its entries' kind
	if item.Type != itemType {
		count, err := s.itemRepo.CountEntries(userID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count entries: %w", err)
		}
		if count > 0 {
			s.recordMutation("update", "conflict")
			return nil, ErrItemInUse
		}
	}

	item.Name = req.Name
	item.Type = itemType

	if err := s.itemRepo.Update(item); err != nil {
		if errors.Is(err, repositories.ErrItemAlreadyExists) {
			s.recordMutation("update", "conflict")
			return nil, ErrItemAlreadyExists
		}
		s.recordMutation("update", "error")
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.recordMutation("update", "success")

	return item, nil
}

// Delete removes one of the user's items unless entries still reference it
func (s *itemService) Delete(userID uuid.UUID, id int64) error {
	if err := s.itemRepo.Delete(userID, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrItemNotFound):
			return ErrItemNotFound
		case errors.Is(err, repositories.ErrItemInUse):
			s.recordMutation("delete", "conflict")
			return ErrItemInUse
		default:
			s.recordMutation("delete", "error")
			return fmt.Errorf("failed to delete item: %w", err)
		}
	}

	s.recordMutation("delete", "success")
	s.logger.Info("item deleted",
		"user_id", userID,
		"item_id", id)

	return nil
}

// Options returns the user's items of one type for the entry form selector
func (s *itemService) Options(userID uuid.UUID, itemType models.ItemType) ([]models.ItemOption, error) {
	if !itemType.IsValid() {
		return nil, ErrInvalidItemType
	}

	options, err := s.itemRepo.ListByType(userID, itemType)
	if err != nil {
		return nil, fmt.Errorf("failed to list item options: %w", err)
	}

	return options, nil
}

func (s *itemService) recordQuery(status string) {
	s.metrics.IncrementCounter("table_query", map[string]string{
		"table":  "items",
		"status": status,
	})
}

func (s *itemService) recordMutation(operation, status string) {
	s.metrics.IncrementCounter("item_mutation", map[string]string{
		"operation": operation,
		"status":    status,
	})
}
