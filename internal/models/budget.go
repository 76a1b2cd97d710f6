package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetPeriod represents the renewal cadence of a budget
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spending on a category over [StartDate, EndDate].
// EndDate is derived from StartDate and Period and is never user-supplied.
type Budget struct {
	Base
	UserID     string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Period     BudgetPeriod    `gorm:"not null" json:"period"`
	StartDate  time.Time       `gorm:"not null" json:"start_date"`
	EndDate    time.Time       `gorm:"not null" json:"end_date"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// OwnerID returns the id of the user the budget belongs to.
func (b *Budget) OwnerID() string { return b.UserID }

// BeforeSave stores the window in UTC and the amount at column precision.
func (b *Budget) BeforeSave(tx *gorm.DB) error {
	b.StartDate = b.StartDate.UTC()
	b.EndDate = b.EndDate.UTC()
	b.Amount = RoundAmount(b.Amount)
	return nil
}
