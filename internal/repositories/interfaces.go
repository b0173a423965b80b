package repositories

import (
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	UpdatePasswordHash(userID uuid.UUID, passwordHash string) error
	UpdateFailedLoginAttempts(user *models.User) error
	ResetFailedLoginAttempts(userID uuid.UUID) error
	Delete(userID uuid.UUID) error
}

// ItemRepositoryInterface defines the contract for item repository operations
type ItemRepositoryInterface interface {
	Create(item *models.Item) error
	GetByID(userID uuid.UUID, id int64) (*models.Item, error)
	GetPage(userID uuid.UUID, query models.TableQuery) ([]models.Item, int64, error)
	ListByType(userID uuid.UUID, itemType models.ItemType) ([]models.ItemOption, error)
	Update(item *models.Item) error
	Delete(userID uuid.UUID, id int64) error
	CountEntries(userID uuid.UUID, itemID int64) (int64, error)
}

// EntryRow is one datatable row of the income/expense tables, the item name
// joined in and scalar fields rendered as the grid carries them.
type EntryRow struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
}

// EntryRepositoryInterface defines the contract for entry repository operations
type EntryRepositoryInterface interface {
	Create(entry *models.Entry) error
	GetByID(userID uuid.UUID, id int64) (*models.Entry, error)
	GetPage(userID uuid.UUID, kind models.EntryKind, query models.TableQuery) ([]EntryRow, int64, error)
	Update(entry *models.Entry) error
	Delete(userID uuid.UUID, kind models.EntryKind, id int64) error
	SumByKind(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) (decimal.Decimal, error)
	MonthlyTotals(userID uuid.UUID, rng models.DateRange) ([]models.MonthlyTotal, error)
	TotalsByItem(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) ([]models.ChartPoint, error)
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByID(id uuid.UUID) (*models.AuditLog, error)
	GetByUserID(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error)
	DeleteOlderThan(duration time.Duration) (int64, error)
}

type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	GetByID(id uuid.UUID) (*models.RefreshToken, error)
	GetByTokenHash(tokenHash string) (*models.RefreshToken, error)
	GetActiveByUserID(userID uuid.UUID) ([]*models.RefreshToken, error)
	Update(token *models.RefreshToken) error
	Revoke(tokenID uuid.UUID) error
	RevokeAllForUser(userID uuid.UUID) error
	DeleteExpired() (int64, error)
	DeleteRevokedOlderThan(duration time.Duration) (int64, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for blacklisted token repository operations
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}
