package services

import (
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest, ipAddress, userAgent string) (*models.User, error)
	Login(req *dto.LoginRequest, ipAddress, userAgent string) (*dto.TokenResponse, error)
	RefreshTokens(refreshToken, ipAddress, userAgent string) (*dto.TokenResponse, error)
	Logout(accessToken, ipAddress, userAgent string) error
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	GenerateRefreshToken(userID uuid.UUID) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ValidateRefreshToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
	GetJTI(tokenString string) (string, error)
	GetTokenExpiry(tokenString string) (time.Time, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
	HashPasswordWithoutValidation(password string) (string, error)
	GenerateSecurePassword() (string, error)
	GenerateSecurePasswordWithLength(length int) (string, error)
	PasswordStrength(password string) int
	UpdatePassword(userID uuid.UUID, currentPassword, newPassword string) error
}

// AuditServiceInterface defines the contract for audit logging operations
type AuditServiceInterface interface {
	CreateAuditLog(log *models.AuditLog) error
	GetUserActivity(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error)
	LogLogin(userID uuid.UUID, ipAddress, userAgent string) error
	LogLogout(userID uuid.UUID, ipAddress, userAgent string) error
	LogItemMutation(userID uuid.UUID, action string, itemID int64, ipAddress, userAgent string) error
	LogEntryMutation(userID uuid.UUID, action string, kind models.EntryKind, entryID int64, ipAddress, userAgent string) error
	LogReportViewed(userID uuid.UUID, report, ipAddress, userAgent string) error
}

// ItemServiceInterface defines item-related business operations
type ItemServiceInterface interface {
	Query(userID uuid.UUID, query *models.TableQuery) (*dto.TableResponse[dto.ItemRow], error)
	Get(userID uuid.UUID, id int64) (*models.Item, error)
	Create(userID uuid.UUID, req *dto.ItemRequest) (*models.Item, error)
	Update(userID uuid.UUID, id int64, req *dto.ItemRequest) (*models.Item, error)
	Delete(userID uuid.UUID, id int64) error
	Options(userID uuid.UUID, itemType models.ItemType) ([]models.ItemOption, error)
}

// EntryServiceInterface defines income/expense entry business operations
type EntryServiceInterface interface {
	Query(userID uuid.UUID, kind models.EntryKind, query *models.TableQuery) (*dto.TableResponse[repositories.EntryRow], error)
	Create(userID uuid.UUID, kind models.EntryKind, req *dto.EntryRequest) (*models.Entry, error)
	Update(userID uuid.UUID, kind models.EntryKind, id int64, req *dto.EntryRequest) (*models.Entry, error)
	Delete(userID uuid.UUID, kind models.EntryKind, id int64) error
}

// ReportServiceInterface provides the dashboard aggregations
type ReportServiceInterface interface {
	Summary(userID uuid.UUID, rng models.DateRange) (*models.SummaryReport, error)
	Chart(userID uuid.UUID, kind models.EntryKind, rng models.DateRange) ([]models.ChartPoint, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
