package handlers

import (
	"fmt"
	"net/http"
	"time"

	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves the dashboard aggregates
type ReportHandler struct {
	reportService services.ReportServiceInterface
	auditService  services.AuditServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportServiceInterface, auditService services.AuditServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		auditService:  auditService,
	}
}

// parseDateRange reads the optional from/to query params. Both sides are
// optional; each must be a YYYY-MM-DD date when present. The returned
// error message is safe to surface to the client.
func parseDateRange(c echo.Context) (models.DateRange, error) {
	var rng models.DateRange

	if raw := c.QueryParam("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return rng, fmt.Errorf("from must be a date in YYYY-MM-DD format")
		}
		rng.From = &from
	}

	if raw := c.QueryParam("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return rng, fmt.Errorf("to must be a date in YYYY-MM-DD format")
		}
		rng.To = &to
	}

	if rng.From != nil && rng.To != nil && rng.From.After(*rng.To) {
		return rng, fmt.Errorf("from must not be after to")
	}

	return rng, nil
}

// Summary returns the user's totals and monthly breakdown, optionally
// scoped to a date range
// @Summary Get dashboard summary
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} models.SummaryReport
// @Failure 400 {object} errors.ErrorResponse "Invalid date range - VALIDATION_001"
// @Router /report/summary [get]
func (h *ReportHandler) Summary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	rng, rngErr := parseDateRange(c)
	if rngErr != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(rngErr.Error()))
	}

	report, err := h.reportService.Summary(userID, rng)
	if err != nil {
		return SendSystemError(c, err)
	}

	if err := h.auditService.LogReportViewed(userID, "summary", getClientIP(c), c.Request().UserAgent()); err != nil {
		_ = err
	}

	return c.JSON(http.StatusOK, report)
}

// Chart returns per-item totals for one kind, optionally scoped to a
// date range
// @Summary Get per-item chart data
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param kind query string true "income or expense"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {array} models.ChartPoint
// @Failure 400 {object} errors.ErrorResponse "Invalid kind - ENTRY_004"
// @Router /report/chart [get]
func (h *ReportHandler) Chart(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	kind, err := models.ParseEntryKind(c.QueryParam("kind"))
	if err != nil {
		return SendError(c, errors.EntryInvalidKind)
	}

	rng, rngErr := parseDateRange(c)
	if rngErr != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(rngErr.Error()))
	}

	points, err := h.reportService.Chart(userID, kind, rng)
	if err != nil {
		return SendSystemError(c, err)
	}

	if err := h.auditService.LogReportViewed(userID, "chart", getClientIP(c), c.Request().UserAgent()); err != nil {
		_ = err
	}

	return c.JSON(http.StatusOK, points)
}
