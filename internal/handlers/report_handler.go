package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Asshabanu/finance-tracker/internal/services"
)

// ReportHandler serves the per-user financial reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary handles the current-month income/expense summary.
// @Summary     Monthly summary
// @Description Income, expenses, balance and transaction count for the current calendar month
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} reports.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondOK(c, http.StatusOK, summary)
}

// GetCategoryBreakdown handles the current-month spending per category.
// @Summary     Category breakdown
// @Description Current-month totals grouped by category, largest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  reports.CategoryTotal "Category totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.GetCategoryBreakdown(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondList(c, totals)
}

// GetMonthlyComparison handles the six-month income/expense comparison.
// @Summary     Monthly comparison
// @Description Income, expenses and balance for each of the last six months, oldest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  reports.MonthComparison "Monthly rows"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/monthly-comparison [get]
func (h *ReportHandler) GetMonthlyComparison(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.reportService.GetMonthlyComparison(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondList(c, rows)
}

// GetSpendingTrend handles the twelve-month expense trend.
// @Summary     Spending trend
// @Description Total expenses for each of the last twelve months, oldest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  reports.TrendPoint "Trend points"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/spending-trends [get]
func (h *ReportHandler) GetSpendingTrend(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.reportService.GetSpendingTrend(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondList(c, points)
}
