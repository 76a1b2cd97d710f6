package reports

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Asshabanu/finance-tracker/internal/ledger"
	"github.com/Asshabanu/finance-tracker/internal/models"
)

// fakeLedger is an in-memory Ledger applying the same filter semantics as the
// database adapter.
type fakeLedger struct {
	mu    sync.Mutex
	txs   []models.Transaction
	err   error
	calls int
}

func (f *fakeLedger) Transactions(_ context.Context, userID string, filter ledger.Filter) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	var out []models.Transaction
	for _, tx := range f.txs {
		if tx.UserID != userID || tx.Date.Before(filter.From) || tx.Date.After(filter.To) {
			continue
		}
		if filter.CategoryID != "" && tx.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if !filter.WithCategory {
			tx.Category = nil
		}
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeLedger) add(tx models.Transaction) {
	if tx.UserID == "" {
		tx.UserID = testUser
	}
	if tx.ID == "" {
		tx.ID = tx.Date.Format(time.RFC3339Nano) + "-" + tx.Amount.String()
	}
	if tx.Category != nil {
		tx.CategoryID = tx.Category.ID
	}
	f.txs = append(f.txs, tx)
}

const testUser = "user-1"

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(l ledger.Ledger) *Engine {
	return NewEngine(l, WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func category(id, name string, t models.CategoryType) *models.Category {
	c := &models.Category{Name: name, Color: "#112233", Type: t, UserID: testUser}
	c.ID = id
	return c
}

func tx(txType models.TransactionType, amount string, date time.Time, cat *models.Category) models.Transaction {
	t := models.Transaction{Type: txType, Amount: dec(amount), Date: date, Category: cat}
	if cat != nil {
		t.CategoryID = cat.ID
	}
	return t
}
