package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ActivityHandler serves the audit trail endpoints
type ActivityHandler struct {
	auditService services.AuditServiceInterface
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(auditService services.AuditServiceInterface) *ActivityHandler {
	return &ActivityHandler{auditService: auditService}
}

// OwnActivity returns the authenticated user's recent audit trail
// @Summary Get own activity
// @Tags auth
// @Produce json
// @Param offset query int false "Offset"
// @Param limit query int false "Page size"
// @Success 200 {object} SuccessResponse
// @Router /auth/activity [get]
func (h *ActivityHandler) OwnActivity(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	return h.sendActivity(c, userID)
}

// UserActivity returns any user's audit trail, for administrators
// @Summary Get a user's activity
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Router /admin/users/{id}/activity [get]
func (h *ActivityHandler) UserActivity(c echo.Context) error {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.UserInvalidID)
	}

	return h.sendActivity(c, targetID)
}

func (h *ActivityHandler) sendActivity(c echo.Context, userID uuid.UUID) error {
	offset := getIntParam(c, "offset", 0)
	limit := getIntParam(c, "limit", 10)

	logs, total, err := h.auditService.GetUserActivity(userID, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.ActivityResponse{Activity: logs, Total: total},
	})
}
