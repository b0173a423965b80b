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

// ItemHandler handles item endpoints
type ItemHandler struct {
	itemService  services.ItemServiceInterface
	auditService services.AuditServiceInterface
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService services.ItemServiceInterface, auditService services.AuditServiceInterface) *ItemHandler {
	return &ItemHandler{
		itemService:  itemService,
		auditService: auditService,
	}
}

// Query returns one page of the user's items for the data table
// @Summary Query items
// @Tags Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.TableQuery true "Row window, filter model, and sort model"
// @Success 200 {object} dto.TableResponse[dto.ItemRow]
// @Failure 400 {object} errors.ErrorResponse "Invalid query - ENTRY_007"
// @Router /items/query [post]
func (h *ItemHandler) Query(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query models.TableQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	resp, err := h.itemService.Query(userID, &query)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidTableQuery) {
			return SendError(c, errors.EntryInvalidQuery, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Get returns a single item
// @Summary Get one item
// @Tags Items
// @Security BearerAuth
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.Item
// @Failure 404 {object} errors.ErrorResponse "Item not found - ITEM_001"
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ItemInvalidID)
	}

	item, err := h.itemService.Get(userID, id)
	if err != nil {
		if err == services.ErrItemNotFound {
			return SendError(c, errors.ItemNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, item)
}

// Create creates a new item
// @Summary Create item
// @Tags Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ItemRequest true "Item name and type"
// @Success 201 {object} models.Item
// @Failure 422 {object} errors.ErrorResponse "Duplicate name - ITEM_002"
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.ItemRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	item, err := h.itemService.Create(userID, &req)
	if err != nil {
		switch err {
		case services.ErrInvalidItemType:
			return SendError(c, errors.ItemInvalidType)
		case services.ErrItemAlreadyExists:
			return SendError(c, errors.ItemAlreadyExists)
		default:
			return SendSystemError(c, err)
		}
	}

	h.audit(c, userID, models.AuditActionItemCreated, item.ID)

	return c.JSON(http.StatusCreated, item)
}

// Update renames or retypes an item
// @Summary Update item
// @Tags Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body dto.ItemRequest true "Item name and type"
// @Success 200 {object} models.Item
// @Failure 404 {object} errors.ErrorResponse "Item not found - ITEM_001"
// @Failure 409 {object} errors.ErrorResponse "Item in use - ITEM_004"
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ItemInvalidID)
	}

	var req dto.ItemRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	item, err := h.itemService.Update(userID, id, &req)
	if err != nil {
		switch err {
		case services.ErrInvalidItemType:
			return SendError(c, errors.ItemInvalidType)
		case services.ErrItemNotFound:
			return SendError(c, errors.ItemNotFound)
		case services.ErrItemInUse:
			return SendError(c, errors.ItemInUse, errors.WithDetails("Cannot change the type of an item that has entries"))
		case services.ErrItemAlreadyExists:
			return SendError(c, errors.ItemAlreadyExists)
		default:
			return SendSystemError(c, err)
		}
	}

	h.audit(c, userID, models.AuditActionItemUpdated, item.ID)

	return c.JSON(http.StatusOK, item)
}

// Delete removes an item with no entries
// @Summary Delete item
// @Tags Items
// @Security BearerAuth
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "Item not found - ITEM_001"
// @Failure 409 {object} errors.ErrorResponse "Item in use - ITEM_004"
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	id, err := parseIDParam(c)
	if err != nil {
		return SendError(c, errors.ItemInvalidID)
	}

	if err := h.itemService.Delete(userID, id); err != nil {
		switch err {
		case services.ErrItemNotFound:
			return SendError(c, errors.ItemNotFound)
		case services.ErrItemInUse:
			return SendError(c, errors.ItemInUse, errors.WithDetails("Delete or reassign its entries first"))
		default:
			return SendSystemError(c, err)
		}
	}

	h.audit(c, userID, models.AuditActionItemDeleted, id)

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Item deleted successfully",
	})
}

// Options lists items of one type for the entry form selector
// @Summary List item options
// @Tags Items
// @Security BearerAuth
// @Produce json
// @Param kind query string true "income or expense"
// @Success 200 {array} models.ItemOption
// @Failure 400 {object} errors.ErrorResponse "Invalid type - ITEM_003"
// @Router /items/options [get]
func (h *ItemHandler) Options(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	itemType, err := models.ParseItemType(c.QueryParam("kind"))
	if err != nil {
		return SendError(c, errors.ItemInvalidType)
	}

	options, err := h.itemService.Options(userID, itemType)
	if err != nil {
		if err == services.ErrInvalidItemType {
			return SendError(c, errors.ItemInvalidType)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, options)
}

func (h *ItemHandler) audit(c echo.Context, userID uuid.UUID, action string, itemID int64) {
	if err := h.auditService.LogItemMutation(userID, action, itemID, getClientIP(c), c.Request().UserAgent()); err != nil {
		// Audit logging failure should not block the operation
		_ = err
	}
}
