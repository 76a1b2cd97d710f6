package services

import (
	"context"

	"github.com/Asshabanu/finance-tracker/internal/reports"
)

// reportService exposes the report engine per user.
type reportService struct {
	engine *reports.Engine
}

// NewReportService creates a new ReportServicer.
func NewReportService(engine *reports.Engine) ReportServicer {
	return &reportService{engine: engine}
}

func (s *reportService) GetSummary(ctx context.Context, userID string) (*reports.Summary, error) {
	return s.engine.Summary(ctx, userID)
}

func (s *reportService) GetCategoryBreakdown(ctx context.Context, userID string) ([]reports.CategoryTotal, error) {
	return s.engine.CategoryBreakdown(ctx, userID)
}

func (s *reportService) GetMonthlyComparison(ctx context.Context, userID string) ([]reports.MonthComparison, error) {
	return s.engine.MonthlyComparison(ctx, userID)
}

func (s *reportService) GetSpendingTrend(ctx context.Context, userID string) ([]reports.TrendPoint, error) {
	return s.engine.SpendingTrend(ctx, userID)
}
