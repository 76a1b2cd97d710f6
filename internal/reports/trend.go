package reports

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Asshabanu/finance-tracker/internal/ledger"
	"github.com/Asshabanu/finance-tracker/internal/logger"
	"github.com/Asshabanu/finance-tracker/internal/models"
	"github.com/Asshabanu/finance-tracker/internal/period"
)

// MonthComparison is one month of a monthly comparison.
type MonthComparison struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// TrendPoint is one month of a spending trend.
type TrendPoint struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthlyComparison reports income, expenses and balance for each of the
// last six calendar months, oldest first. Months without activity are
// reported as zero. Any type other than income counts as an expense.
func (e *Engine) MonthlyComparison(ctx context.Context, userID string) ([]MonthComparison, error) {
	windows := period.MonthWindows(comparisonMonths, e.today(), period.LabelLong)
	out := make([]MonthComparison, len(windows))

	err := e.eachMonth(ctx, userID, windows, "", func(i int, txs []models.Transaction) error {
		income, expenses, err := splitTotals(txs)
		if err != nil {
			return err
		}
		out[i] = MonthComparison{
			Month:    windows[i].Label,
			Income:   income,
			Expenses: expenses,
			Balance:  income.Sub(expenses),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("Built monthly comparison", "user_id", userID, "months", len(out))
	return out, nil
}

// SpendingTrend reports total expense spending for each of the last twelve
// calendar months, oldest first. Only transactions typed expense are counted.
func (e *Engine) SpendingTrend(ctx context.Context, userID string) ([]TrendPoint, error) {
	windows := period.MonthWindows(trendMonths, e.today(), period.LabelShort)
	out := make([]TrendPoint, len(windows))

	err := e.eachMonth(ctx, userID, windows, models.TransactionTypeExpense, func(i int, txs []models.Transaction) error {
		total := decimal.Zero
		for _, tx := range txs {
			if err := checkAmount(tx); err != nil {
				return err
			}
			total = total.Add(tx.Amount)
		}
		out[i] = TrendPoint{Month: windows[i].Label, Amount: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("Built spending trend", "user_id", userID, "months", len(out))
	return out, nil
}

// eachMonth queries the ledger once per window, concurrently, and hands each
// result to reduce together with the window's index. reduce must only write
// to state owned by that index. The first failure cancels the remaining
// queries and is returned as is.
func (e *Engine) eachMonth(
	ctx context.Context,
	userID string,
	windows []period.Window,
	txType models.TransactionType,
	reduce func(i int, txs []models.Transaction) error,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxConcurrency)

	for i, w := range windows {
		g.Go(func() error {
			txs, err := e.ledger.Transactions(gctx, userID, ledger.Filter{
				From: w.Start,
				To:   w.End,
				Type: txType,
			})
			if err != nil {
				return err
			}
			return reduce(i, txs)
		})
	}
	return g.Wait()
}
