package repositories

import (
	"errors"
	"fmt"
	"strconv"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound       = errors.New("item not found")
	ErrItemAlreadyExists  = errors.New("item already exists")
	ErrItemInUse          = errors.New("item is referenced by entries")
	ErrInvalidQueryColumn = errors.New("unknown query column")
)

// itemFilterColumns whitelists the columns the items table may filter on
// and maps them to SQL expressions.
var itemFilterColumns = map[string]string{
	"name": "items.name",
	"type": "items.type",
}

// itemSortColumns whitelists the columns the items table may sort on.
var itemSortColumns = map[string]string{
	"id":   "items.id",
	"name": "items.name",
	"type": "items.type",
}

// ItemRepository handles database operations for items
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) ItemRepositoryInterface {
	return &ItemRepository{
		db: db,
	}
}

// Create creates a new item
func (r *ItemRepository) Create(item *models.Item) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}

	if err := r.db.Create(item).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrItemAlreadyExists
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID retrieves one of the user's items by ID
func (r *ItemRepository) GetByID(userID uuid.UUID, id int64) (*models.Item, error) {
	var item models.Item
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by ID: %w", err)
	}

	return &item, nil
}

// GetPage retrieves one window of the user's items plus the total count the
// filters match. Filter and sort columns are checked against whitelists.
func (r *ItemRepository) GetPage(userID uuid.UUID, query models.TableQuery) ([]models.Item, int64, error) {
	base := r.db.Model(&models.Item{}).Where("items.user_id = ?", userID)

	base, err := applyFilters(base, query.FilterModel, itemFilterColumns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	order, err := resolveOrder(query.SortModel, itemSortColumns, "items.id ASC")
	if err != nil {
		return nil, 0, err
	}

	var items []models.Item
	if err := base.Order(order).
		Offset(query.Offset()).
		Limit(query.Limit()).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get items page: %w", err)
	}

	return items, total, nil
}

// ListByType returns the user's items of one type as selector options,
// ordered by name.
func (r *ItemRepository) ListByType(userID uuid.UUID, itemType models.ItemType) ([]models.ItemOption, error) {
	var options []models.ItemOption
	if err := r.db.Model(&models.Item{}).
		Select("id, name").
		Where("user_id = ? AND type = ?", userID, itemType).
		Order("name ASC").
		Scan(&options).Error; err != nil {
		return nil, fmt.Errorf("failed to list items by type: %w", err)
	}

	return options, nil
}

// Update updates an item
func (r *ItemRepository) Update(item *models.Item) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}

	if err := r.db.Save(item).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrItemAlreadyExists
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	return nil
}

// Delete soft deletes one of the user's items. Items still referenced by
// entries are refused.
func (r *ItemRepository) Delete(userID uuid.UUID, id int64) error {
	count, err := r.CountEntries(userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrItemInUse
	}

	result := r.db.Where("user_id = ?", userID).Delete(&models.Item{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// CountEntries counts the entries referencing an item
func (r *ItemRepository) CountEntries(userID uuid.UUID, itemID int64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Entry{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count entries for item: %w", err)
	}

	return count, nil
}

// applyFilters translates a filter model into WHERE clauses. Contains
// filters become case-insensitive substring matches, equals filters exact
// comparisons. Unknown columns are rejected.
func applyFilters(query *gorm.DB, filterModel map[string]models.TableFilter, whitelist map[string]string) (*gorm.DB, error) {
	for column, filter := range filterModel {
		expr, ok := whitelist[column]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQueryColumn, column)
		}

		switch filter.Type {
		case models.FilterOpContains:
			query = query.Where("LOWER("+expr+") LIKE LOWER(?)", "%"+filter.Filter+"%")
		case models.FilterOpEquals:
			query = query.Where(expr+" = ?", filter.Filter)
		default:
			return nil, fmt.Errorf("unsupported filter operator: %s", filter.Type)
		}
	}

	return query, nil
}

// resolveOrder translates the sort model into an ORDER BY clause, falling
// back to a stable default when no sort is active.
func resolveOrder(sortModel []models.TableSort, whitelist map[string]string, fallback string) (string, error) {
	if len(sortModel) == 0 {
		return fallback, nil
	}

	sort := sortModel[0]
	expr, ok := whitelist[sort.ColID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidQueryColumn, sort.ColID)
	}

	direction := "ASC"
	if sort.Sort == models.SortDescending {
		direction = "DESC"
	}

	return fmt.Sprintf("%s %s, %s", expr, direction, fallback), nil
}

// formatItemID renders an item ID the way grid rows carry it.
func formatItemID(id int64) string {
	return strconv.FormatInt(id, 10)
}
