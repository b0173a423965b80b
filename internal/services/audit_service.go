package services

import (
	"errors"
	"fmt"
	"strconv"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

// AuditService handles audit logging operations
type AuditService struct {
	repo repositories.AuditLogRepositoryInterface
}

// NewAuditService creates a new audit service
func NewAuditService(repo repositories.AuditLogRepositoryInterface) AuditServiceInterface {
	return &AuditService{
		repo: repo,
	}
}

var ErrInvalidAuditLog = errors.New("invalid audit log")

// ValidateActivityType validates that the activity type is one of the allowed types
func ValidateActivityType(action string) error {
	validActions := map[string]bool{
		models.AuditActionLogin:         true,
		models.AuditActionLogout:        true,
		models.AuditActionRegister:      true,
		models.AuditActionFailedLogin:   true,
		models.AuditActionAccountLocked: true,
		models.AuditActionTokenRefresh:  true,
		models.AuditActionItemCreated:   true,
		models.AuditActionItemUpdated:   true,
		models.AuditActionItemDeleted:   true,
		models.AuditActionEntryCreated:  true,
		models.AuditActionEntryUpdated:  true,
		models.AuditActionEntryDeleted:  true,
		models.AuditActionReportViewed:  true,
	}

	if !validActions[action] {
		return fmt.Errorf("invalid activity type: %s", action)
	}
	return nil
}

// CreateAuditLog creates a new audit log entry with validation
func (s *AuditService) CreateAuditLog(log *models.AuditLog) error {
	if log == nil {
		return ErrInvalidAuditLog
	}

	if err := ValidateActivityType(log.Action); err != nil {
		return err
	}

	if err := s.repo.Create(log); err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}

// GetUserActivity retrieves activity logs for a user, newest first
func (s *AuditService) GetUserActivity(userID uuid.UUID, offset, limit int) ([]*models.AuditLog, int64, error) {
	if userID == uuid.Nil {
		return nil, 0, errors.New("invalid user ID")
	}

	if limit <= 0 || limit > 1000 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.GetByUserID(userID, offset, limit)
}

// LogLogin logs a successful login event
func (s *AuditService) LogLogin(userID uuid.UUID, ipAddress, userAgent string) error {
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionLogin,
		Resource:   "auth",
		ResourceID: userID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}
	return s.CreateAuditLog(log)
}

// LogLogout logs a logout event
func (s *AuditService) LogLogout(userID uuid.UUID, ipAddress, userAgent string) error {
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionLogout,
		Resource:   "auth",
		ResourceID: userID.String(),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}
	return s.CreateAuditLog(log)
}

// LogItemMutation logs a create, update, or delete of an item
func (s *AuditService) LogItemMutation(userID uuid.UUID, action string, itemID int64, ipAddress, userAgent string) error {
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     action,
		Resource:   "item",
		ResourceID: strconv.FormatInt(itemID, 10),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}
	return s.CreateAuditLog(log)
}

// LogEntryMutation logs a create, update, or delete of an entry
func (s *AuditService) LogEntryMutation(userID uuid.UUID, action string, kind models.EntryKind, entryID int64, ipAddress, userAgent string) error {
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     action,
		Resource:   "entry",
		ResourceID: strconv.FormatInt(entryID, 10),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Metadata: models.JSONBMap{
			"kind": kind.String(),
		},
	}
	return s.CreateAuditLog(log)
}

// LogReportViewed logs a dashboard report view
func (s *AuditService) LogReportViewed(userID uuid.UUID, report, ipAddress, userAgent string) error {
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionReportViewed,
		Resource:   "report",
		ResourceID: report,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}
	return s.CreateAuditLog(log)
}
