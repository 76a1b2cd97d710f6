package reports

import (
	"context"

	"github.com/shopspring/decimal"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/ledger"
	"github.com/Asshabanu/finance-tracker/internal/logger"
	"github.com/Asshabanu/finance-tracker/internal/models"
	"github.com/Asshabanu/finance-tracker/internal/period"
)

// Summary is the income and expense position for one period.
type Summary struct {
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions int             `json:"transactions"`
}

// Summarize totals txs into income and expenses. Any type other than income
// is counted as an expense.
func Summarize(txs []models.Transaction) (*Summary, error) {
	income, expenses, err := splitTotals(txs)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Income:       income,
		Expenses:     expenses,
		Balance:      income.Sub(expenses),
		Transactions: len(txs),
	}, nil
}

// splitTotals sums amounts by income vs everything else.
func splitTotals(txs []models.Transaction) (income, expenses decimal.Decimal, err error) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if err := checkAmount(tx); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if tx.Type == models.TransactionTypeIncome {
			income = income.Add(tx.Amount)
		} else {
			expenses = expenses.Add(tx.Amount)
		}
	}
	return income, expenses, nil
}

func checkAmount(tx models.Transaction) error {
	if tx.Amount.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrMalformedTransaction,
			"Transaction "+tx.ID+" has a negative amount")
	}
	return nil
}

// Summary reports userID's totals for the current calendar month.
func (e *Engine) Summary(ctx context.Context, userID string) (*Summary, error) {
	month := period.MonthOf(e.today(), period.LabelLong)

	txs, err := e.ledger.Transactions(ctx, userID, ledger.Filter{From: month.Start, To: month.End})
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(txs)
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("Built financial summary", "user_id", userID, "month", month.Label, "transactions", summary.Transactions)
	return summary, nil
}
