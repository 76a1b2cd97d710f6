// Package ledger is the read side of the transaction store: filtered range
// queries over one user's transactions. Reports and budget status depend only
// on the Ledger interface.
package ledger

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/models"
)

// Filter narrows a ledger read. From and To bound a closed interval on the
// transaction date. Empty CategoryID or Type match any value.
type Filter struct {
	From       time.Time
	To         time.Time
	CategoryID string
	Type       models.TransactionType

	// WithCategory resolves each transaction's Category, including
	// categories that have since been soft-deleted.
	WithCategory bool
}

// Ledger returns the transactions owned by userID that match a filter,
// ordered by date and then id. Store failures are reported as
// ErrStoreUnavailable.
type Ledger interface {
	Transactions(ctx context.Context, userID string, filter Filter) ([]models.Transaction, error)
}

type gormLedger struct {
	db *gorm.DB
}

// New returns a Ledger backed by the transactions table.
func New(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

func (l *gormLedger) Transactions(ctx context.Context, userID string, f Filter) ([]models.Transaction, error) {
	q := l.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, f.From.UTC(), f.To.UTC())
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.WithCategory {
		q = q.Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		})
	}

	var transactions []models.Transaction
	if err := q.Order("date ASC").Order("id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return transactions, nil
}
