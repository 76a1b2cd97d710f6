package reports

import (
	"context"

	"github.com/shopspring/decimal"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/ledger"
	"github.com/Asshabanu/finance-tracker/internal/logger"
	"github.com/Asshabanu/finance-tracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// BudgetStatus reports how much of a budget has been used over its period.
type BudgetStatus struct {
	Budget       *models.Budget  `json:"budget"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percentage   decimal.Decimal `json:"percentage"`
	Transactions int             `json:"transactions"`
}

// EvaluateBudget computes the status of budget from the transactions recorded
// against it. Every transaction counts toward the spent total regardless of
// its type. Remaining goes negative once the budget is exceeded.
func EvaluateBudget(budget *models.Budget, txs []models.Transaction) (*BudgetStatus, error) {
	if budget.Amount.IsZero() {
		return nil, apperrors.ErrDegenerateBudget
	}

	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Amount.IsNegative() {
			return nil, apperrors.WithMessage(apperrors.ErrMalformedTransaction,
				"Transaction "+tx.ID+" has a negative amount")
		}
		spent = spent.Add(tx.Amount)
	}

	return &BudgetStatus{
		Budget:       budget,
		TotalSpent:   spent,
		Remaining:    budget.Amount.Sub(spent),
		Percentage:   spent.Div(budget.Amount).Mul(hundred),
		Transactions: len(txs),
	}, nil
}

// BudgetStatus loads the transactions in budget's category between its start
// and end dates, both inclusive, and evaluates the budget against them.
// Callers are expected to have checked that the budget exists and is owned by
// the requesting user.
func (e *Engine) BudgetStatus(ctx context.Context, budget *models.Budget) (*BudgetStatus, error) {
	if budget.Amount.IsZero() {
		return nil, apperrors.ErrDegenerateBudget
	}

	txs, err := e.ledger.Transactions(ctx, budget.UserID, ledger.Filter{
		From:       budget.StartDate,
		To:         budget.EndDate,
		CategoryID: budget.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	status, err := EvaluateBudget(budget, txs)
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("Evaluated budget status",
		"budget_id", budget.ID,
		"transactions", status.Transactions,
		"total_spent", status.TotalSpent.String(),
	)
	return status, nil
}
