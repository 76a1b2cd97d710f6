package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/models"
	"github.com/Asshabanu/finance-tracker/internal/pagination"
	"github.com/Asshabanu/finance-tracker/internal/period"
	"github.com/Asshabanu/finance-tracker/internal/reports"
)

// BudgetEvaluator computes the status of a budget that has already passed
// existence and ownership checks.
type BudgetEvaluator interface {
	BudgetStatus(ctx context.Context, budget *models.Budget) (*reports.BudgetStatus, error)
}

// budgetService handles budget-related business logic.
type budgetService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	evaluator       BudgetEvaluator
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, categoryService CategoryServicer, evaluator BudgetEvaluator) BudgetServicer {
	return &budgetService{
		db:              db,
		categoryService: categoryService,
		evaluator:       evaluator,
	}
}

// CreateBudget creates a budget for one of the user's categories. The end
// date is derived from the start date and period; a zero start date
// defaults to now.
func (s *budgetService) CreateBudget(
	userID, categoryID string,
	amount decimal.Decimal,
	budgetPeriod models.BudgetPeriod,
	startDate time.Time,
) (*models.Budget, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must be greater than zero")
	}

	if startDate.IsZero() {
		startDate = time.Now()
	}
	startDate = startDate.UTC()
	endDate, err := period.EndDate(startDate, budgetPeriod)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryService.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     amount,
		Period:     budgetPeriod,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetUserBudgets returns a paginated list of budgets for the user with an optional period filter.
func (s *budgetService) GetUserBudgets(
	userID string,
	page pagination.PageRequest,
	budgetPeriod *models.BudgetPeriod,
) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)
	if budgetPeriod != nil {
		base = base.Where("period = ?", *budgetPeriod)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("start_date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget owned by userID.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	q := s.db.Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
	if err := loadOwned(q, &budget, budgetID, userID, apperrors.ErrBudgetNotFound); err != nil {
		return nil, err
	}
	return &budget, nil
}

// UpdateBudget applies the non-nil fields of update. When the start date or
// period changes, the end date is re-derived in the same write.
func (s *budgetService) UpdateBudget(userID, budgetID string, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must be greater than zero")
		}
		updates["amount"] = models.RoundAmount(*update.Amount)
	}
	if update.CategoryID != nil && *update.CategoryID != budget.CategoryID {
		if _, err := s.categoryService.GetCategoryByID(userID, *update.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}

	if update.StartDate != nil || update.Period != nil {
		start, p := budget.StartDate, budget.Period
		if update.StartDate != nil && !update.StartDate.IsZero() {
			start = update.StartDate.UTC()
		}
		if update.Period != nil {
			p = *update.Period
		}
		end, err := period.EndDate(start, p)
		if err != nil {
			return nil, err
		}
		updates["start_date"] = start.UTC()
		updates["period"] = p
		updates["end_date"] = end.UTC()
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetBudgetByID(userID, budgetID)
}

// DeleteBudget soft-deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetStatus reports spending against a budget over its whole
// [start_date, end_date] window.
func (s *budgetService) GetBudgetStatus(ctx context.Context, userID, budgetID string) (*reports.BudgetStatus, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}
	return s.evaluator.BudgetStatus(ctx, budget)
}
