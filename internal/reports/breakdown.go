package reports

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/ledger"
	"github.com/Asshabanu/finance-tracker/internal/logger"
	"github.com/Asshabanu/finance-tracker/internal/models"
	"github.com/Asshabanu/finance-tracker/internal/period"
)

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	CategoryID string              `json:"categoryId"`
	Name       string              `json:"name"`
	Color      string              `json:"color"`
	Type       models.CategoryType `json:"type"`
	Total      decimal.Decimal     `json:"total"`
	Count      int                 `json:"count"`
}

// Breakdown groups txs by category and returns one row per category with at
// least one transaction, largest total first. Categories with equal totals
// keep the order in which they first appear in txs. Every transaction must
// carry its resolved Category.
func Breakdown(txs []models.Transaction) ([]CategoryTotal, error) {
	byCategory := make(map[string]*CategoryTotal)
	var order []string

	for _, tx := range txs {
		if err := checkAmount(tx); err != nil {
			return nil, err
		}
		if tx.Category == nil || tx.Category.ID != tx.CategoryID {
			return nil, apperrors.WithMessage(apperrors.ErrMalformedTransaction,
				"Transaction "+tx.ID+" references an unknown category")
		}

		row, ok := byCategory[tx.CategoryID]
		if !ok {
			row = &CategoryTotal{
				CategoryID: tx.Category.ID,
				Name:       tx.Category.Name,
				Color:      tx.Category.Color,
				Type:       tx.Category.Type,
				Total:      decimal.Zero,
			}
			byCategory[tx.CategoryID] = row
			order = append(order, tx.CategoryID)
		}
		row.Total = row.Total.Add(tx.Amount)
		row.Count++
	}

	rows := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byCategory[id])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.GreaterThan(rows[j].Total)
	})
	return rows, nil
}

// CategoryBreakdown reports userID's current-month totals per category.
func (e *Engine) CategoryBreakdown(ctx context.Context, userID string) ([]CategoryTotal, error) {
	month := period.MonthOf(e.today(), period.LabelLong)

	txs, err := e.ledger.Transactions(ctx, userID, ledger.Filter{
		From:         month.Start,
		To:           month.End,
		WithCategory: true,
	})
	if err != nil {
		return nil, err
	}

	rows, err := Breakdown(txs)
	if err != nil {
		return nil, err
	}

	logger.Get().Debugw("Built category breakdown", "user_id", userID, "month", month.Label, "categories", len(rows))
	return rows, nil
}
