package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Asshabanu/finance-tracker/internal/models"
	"github.com/Asshabanu/finance-tracker/internal/pagination"
	"github.com/Asshabanu/finance-tracker/internal/reports"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.CategoryType, description, icon, color string) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, description, icon, color string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *string
}

// TransactionUpdate holds the fields of a transaction that may be changed.
// Nil fields are left untouched.
type TransactionUpdate struct {
	CategoryID  *string
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID string, transactionType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BudgetUpdate holds the fields of a budget that may be changed. Changing
// StartDate or Period re-derives the end date.
type BudgetUpdate struct {
	CategoryID *string
	Amount     *decimal.Decimal
	Period     *models.BudgetPeriod
	StartDate  *time.Time
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID string, amount decimal.Decimal, period models.BudgetPeriod, startDate time.Time) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, period *models.BudgetPeriod) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
	GetBudgetStatus(ctx context.Context, userID, budgetID string) (*reports.BudgetStatus, error)
}

// ReportServicer defines the contract for the per-user financial reports.
type ReportServicer interface {
	GetSummary(ctx context.Context, userID string) (*reports.Summary, error)
	GetCategoryBreakdown(ctx context.Context, userID string) ([]reports.CategoryTotal, error)
	GetMonthlyComparison(ctx context.Context, userID string) ([]reports.MonthComparison, error)
	GetSpendingTrend(ctx context.Context, userID string) ([]reports.TrendPoint, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(entry AuditEntry)
}
