package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrEntryNotFound = errors.New("entry not found")

// entrySortColumns whitelists the columns the entry tables may sort on.
var entrySortColumns = map[string]string{
	"id":        "entries.id",
	"date":      "entries.date",
	"amount":    "entries.amount",
	"note":      "entries.note",
	"item_name": "items.name",
}

// EntryRepository handles database operations for income and expense entries
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *gorm.DB) EntryRepositoryInterface {
	return &EntryRepository{
		db: db,
	}
}

// Create creates a new entry
func (r *EntryRepository) Create(entry *models.Entry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}

	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// GetByID retrieves one of the user's entries by ID
func (r *EntryRepository) GetByID(userID uuid.UUID, id int64) (*models.Entry, error) {
	var entry models.Entry
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry by ID: %w", err)
	}

	return &entry, nil
}

// entryRecord is the joined row shape GetPage scans into before rendering.
type entryRecord struct {
	ID       int64
	Date     time.Time
	Amount   decimal.Decimal
	Note     string
	ItemID   int64
	ItemName string
}

// GetPage retrieves one window of the user's entries of one kind plus the
// total count the filters match. Rows carry the item name joined in.
func (r *EntryRepository) GetPage(userID uuid.UUID, kind models.EntryKind, query models.TableQuery) ([]EntryRow, int64, error) {
	base := r.db.Model(&models.Entry{}).
		Joins("INNER JOIN items ON items.id = entries.item_id AND items.deleted_at IS NULL").
		Where("entries.user_id = ? AND entries.kind = ?", userID, kind)

	base, err := applyEntryFilters(base, query.FilterModel)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	order, err := resolveOrder(query.SortModel, entrySortColumns, "entries.id ASC")
	if err != nil {
		return nil, 0, err
	}

	var records []entryRecord
	if err := base.
		Select("entries.id, entries.date, entries.amount, entries.note, entries.item_id, items.name AS item_name").
		Order(order).
		Offset(query.Offset()).
		Limit(query.Limit()).
		Scan(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get entries page: %w", err)
	}

	rows := make([]EntryRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, EntryRow{
			ID:       rec.ID,
			Date:     rec.Date.Format("2006-01-02"),
			Amount:   rec.Amount.StringFixed(2),
			Note:     rec.Note,
			ItemID:   formatItemID(rec.ItemID),
			ItemName: rec.ItemName,
		})
	}

	return rows, total, nil
}

// applyEntryFilters translates the entry tables' filter model. The item
// column is special: its autocomplete sends the item's ID with equals, so
// equality compares the foreign key while contains matches the item name.
func applyEntryFilters(query *gorm.DB, filterModel map[string]models.TableFilter) (*gorm.DB, error) {
	for column, filter := range filterModel {
		switch column {
		case "date":
			if filter.Type == models.FilterOpContains {
				query = query.Where("DATE(entries.date) LIKE ?", "%"+filter.Filter+"%")
			} else {
				query = query.Where("DATE(entries.date) = ?", filter.Filter)
			}
		case "amount":
			if filter.Type == models.FilterOpContains {
				query = query.Where("CAST(entries.amount AS TEXT) LIKE ?", "%"+filter.Filter+"%")
			} else {
				query = query.Where("entries.amount = ?", filter.Filter)
			}
		case "note":
			if filter.Type == models.FilterOpEquals {
				query = query.Where("entries.note = ?", filter.Filter)
			} else {
				query = query.Where("LOWER(entries.note) LIKE LOWER(?)", "%"+filter.Filter+"%")
			}
		case "item_name":
			if filter.Type == models.FilterOpEquals {
				query = query.Where("entries.item_id = ?", filter.Filter)
			} else {
				query = query.Where("LOWER(items.name) LIKE LOWER(?)", "%"+filter.Filter+"%")
			}
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidQueryColumn, column)
		}
	}

	return query, nil
}

// Update updates an entry
func (r *EntryRepository) Update(entry *models.Entry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}

	if err := r.db.Save(entry).Error; err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	return nil
}

// Delete soft deletes one of the user's entries of the given kind
func (r *EntryRepository) Delete(userID uuid.UUID, kind models.EntryKind, id int64) error {
	result := r.db.Where("user_id = ? AND kind = ?", userID, kind).Delete(&models.Entry{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// applyDateRange narrows an aggregation query to the requested window.
// To is inclusive, so the bound is the start of the following day.
func applyDateRange(query *gorm.DB, rng models.DateRange) *gorm.DB {
	if rng.From != nil {
		query = query.Where("entries.date >= ?", *rng.From)
	}
	if rng.To != nil {
		query = query.Where("entries.date < ?", rng.To.AddDate(0, 0, 1))
	}
	return query
}

// SumByKind sums the user's entries of one kind within the date range
func (r *EntryRepository) SumByKind(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	query := r.db.Model(&models.Entry{}).
		Select("SUM(amount)").
		Where("user_id = ? AND kind = ?", userID, kind)
	if err := applyDateRange(query, rng).Scan(&sum).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries: %w", err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// monthExpr returns the SQL expression rendering a date as "YYYY-MM" for
// the connected dialect.
func (r *EntryRepository) monthExpr() string {
	if r.db.Dialector.Name() == "postgres" {
		return "to_char(entries.date, 'YYYY-MM')"
	}
	return "strftime('%Y-%m', entries.date)"
}

// monthlyRecord is one month's sums as the aggregation query returns them.
type monthlyRecord struct {
	Month   string
	Income  decimal.NullDecimal
	Expense decimal.NullDecimal
}

// MonthlyTotals aggregates the user's entries per month within the date
// range, both kinds side by side, oldest month first.
func (r *EntryRepository) MonthlyTotals(userID uuid.UUID, rng models.DateRange) ([]models.MonthlyTotal, error) {
	month := r.monthExpr()

	query := r.db.Model(&models.Entry{}).
		Select(month+" AS month, "+
			"SUM(CASE WHEN kind = ? THEN amount ELSE 0 END) AS income, "+
			"SUM(CASE WHEN kind = ? THEN amount ELSE 0 END) AS expense",
			models.EntryKindIncome, models.EntryKindExpense).
		Where("entries.user_id = ?", userID)

	var records []monthlyRecord
	if err := applyDateRange(query, rng).
		Group(month).
		Order("month ASC").
		Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly totals: %w", err)
	}

	totals := make([]models.MonthlyTotal, 0, len(records))
	for _, rec := range records {
		total := models.MonthlyTotal{Month: rec.Month, Income: decimal.Zero, Expense: decimal.Zero}
		if rec.Income.Valid {
			total.Income = rec.Income.Decimal
		}
		if rec.Expense.Valid {
			total.Expense = rec.Expense.Decimal
		}
		totals = append(totals, total)
	}

	return totals, nil
}

// chartRecord is one item's total as the aggregation query returns it.
type chartRecord struct {
	ItemName string
	Total    decimal.NullDecimal
}

// TotalsByItem aggregates the user's entries of one kind per item within
// the date range, largest total first.
func (r *EntryRepository) TotalsByItem(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) ([]models.ChartPoint, error) {
	query := r.db.Model(&models.Entry{}).
		Joins("INNER JOIN items ON items.id = entries.item_id AND items.deleted_at IS NULL").
		Select("items.name AS item_name, SUM(entries.amount) AS total").
		Where("entries.user_id = ? AND entries.kind = ?", userID, kind)

	var records []chartRecord
	if err := applyDateRange(query, rng).
		Group("items.name").
		Order("total DESC").
		Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate totals by item: %w", err)
	}

	points := make([]models.ChartPoint, 0, len(records))
	for _, rec := range records {
		point := models.ChartPoint{ItemName: rec.ItemName, Total: decimal.Zero}
		if rec.Total.Valid {
			point.Total = rec.Total.Decimal
		}
		points = append(points, point)
	}

	return points, nil
}
