package handlers

import (
	stderrors "errors"
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EntryHandler serves the income or expense endpoints. One instance is
// registered per kind so the routes stay flat.
type EntryHandler struct {
	kind         models.EntryKind
	entryService services.EntryServiceInterface
	auditService services.AuditServiceInterface
}

// NewEntryHandler creates an entry handler bound to one kind
func NewEntryHandler(
	kind models.EntryKind,
	entryService services.EntryServiceInterface,
	auditService services.AuditServiceInterface,
) *EntryHandler {
	return &EntryHandler{
		kind:         kind,
		entryService: entryService,
		auditService: auditService,
	}
}

// Query returns one page of the user's entries for the data table
// @Summary Query incomes or expenses
// @Tags Entries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.TableQuery true "Row window, filter model, and sort model"
// @Success 200 {object} dto.TableResponse[repositories.EntryRow]
// @Failure 400 {object} errors.ErrorResponse "Invalid query - ENTRY_007"
// @Router /incomes/query [post]
func (h *EntryHandler) Query(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query models.TableQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	resp, err := h.entryService.Query(userID, h.kind, &query)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidTableQuery) {
			return SendError(c, errors.EntryInvalidQuery, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Create records a new entry
// @Summary Create income or expense
// @Tags Entries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.EntryRequest true "Entry fields"
// @Success 201 {object} models.Entry
// @Failure 422 {object} errors.ErrorResponse "Item kind mismatch - ENTRY_005"
// @Router /incomes [post]
func (h *EntryHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.EntryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	entry, err := h.entryService.Create(userID, h.kind, &req)
	if err != nil {
		return h.mapEntryError(c, err)
	}

	h.audit(c, userID, models.AuditActionEntryCreated, entry.ID)

	return c.JSON(http.StatusCreated, entry)
}

// Update rewrites an entry
// @Summary Update income or expense
// @Tags Entries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Entry ID"
// @Param request body dto.EntryRequest true "Entry fields"
// @Success 200 {object} models.Entry
// @Failure 404 {object} errors.ErrorResponse "Entry not found - ENTRY_001"
// @Router /incomes/{id} [put]
func (h *EntryHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.EntryInvalidID)
	}

	var req dto.EntryRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	entry, err := h.entryService.Update(userID, h.kind, id, &req)
	if err != nil {
		return h.mapEntryError(c, err)
	}

	h.audit(c, userID, models.AuditActionEntryUpdated, entry.ID)

	return c.JSON(http.StatusOK, entry)
}

// Delete removes an entry
// @Summary Delete income or expense
// @Tags Entries
// @Security BearerAuth
// @Produce json
// @Param id path int true "Entry ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "Entry not found - ENTRY_001"
// @Router /incomes/{id} [delete]
func (h *EntryHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.EntryInvalidID)
	}

	if err := h.entryService.Delete(userID, h.kind, id); err != nil {
		return h.mapEntryError(c, err)
	}

	h.audit(c, userID, models.AuditActionEntryDeleted, id)

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Entry deleted successfully",
	})
}

func (h *EntryHandler) mapEntryError(c echo.Context, err error) error {
	switch err {
	case services.ErrEntryNotFound:
		return SendError(c, errors.EntryNotFound)
	case services.ErrInvalidEntryDate:
		return SendError(c, errors.EntryInvalidDate)
	case services.ErrInvalidAmount:
		return SendError(c, errors.EntryInvalidAmount)
	case services.ErrItemNotFound:
		return SendError(c, errors.ItemNotFound)
	case services.ErrEntryItemMismatch:
		return SendError(c, errors.EntryItemMismatch)
	default:
		return SendSystemError(c, err)
	}
}

func (h *EntryHandler) audit(c echo.Context, userID uuid.UUID, action string, entryID int64) {
	if err := h.auditService.LogEntryMutation(userID, action, h.kind, entryID, getClientIP(c), c.Request().UserAgent()); err != nil {
		// Audit logging failure should not block the operation
		_ = err
	}
}
