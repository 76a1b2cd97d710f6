package reports

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/models"
	"github.com/Asshabanu/finance-tracker/internal/testutil"
)

func newBudget(amount string) *models.Budget {
	b := &models.Budget{
		UserID:     testUser,
		CategoryID: "cat-food",
		Amount:     dec(amount),
		Period:     models.BudgetPeriodMonthly,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	b.ID = "budget-1"
	return b
}

func TestEvaluateBudget(t *testing.T) {
	t.Run("under_budget", func(t *testing.T) {
		txs := []models.Transaction{
			tx(models.TransactionTypeExpense, "150", time.Now(), nil),
			tx(models.TransactionTypeExpense, "200", time.Now(), nil),
		}
		status, err := EvaluateBudget(newBudget("500"), txs)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "totalSpent", status.TotalSpent, "350")
		testutil.AssertDecimal(t, "remaining", status.Remaining, "150")
		testutil.AssertDecimal(t, "percentage", status.Percentage, "70")
		if status.Transactions != 2 {
			t.Errorf("expected 2 transactions, got %d", status.Transactions)
		}
	})

	t.Run("over_budget_goes_negative", func(t *testing.T) {
		txs := []models.Transaction{tx(models.TransactionTypeExpense, "650", time.Now(), nil)}
		status, err := EvaluateBudget(newBudget("500"), txs)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "remaining", status.Remaining, "-150")
		testutil.AssertDecimal(t, "percentage", status.Percentage, "130")
	})

	t.Run("no_transactions", func(t *testing.T) {
		status, err := EvaluateBudget(newBudget("500"), nil)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "totalSpent", status.TotalSpent, "0")
		testutil.AssertDecimal(t, "remaining", status.Remaining, "500")
		testutil.AssertDecimal(t, "percentage", status.Percentage, "0")
	})

	t.Run("counts_every_type", func(t *testing.T) {
		txs := []models.Transaction{
			tx(models.TransactionTypeExpense, "100", time.Now(), nil),
			tx(models.TransactionTypeIncome, "40", time.Now(), nil),
		}
		status, err := EvaluateBudget(newBudget("200"), txs)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "totalSpent", status.TotalSpent, "140")
	})

	t.Run("zero_amount_is_degenerate", func(t *testing.T) {
		_, err := EvaluateBudget(newBudget("0"), nil)
		testutil.AssertAppError(t, err, "DEGENERATE_BUDGET")
	})

	t.Run("negative_amount_is_malformed", func(t *testing.T) {
		txs := []models.Transaction{tx(models.TransactionTypeExpense, "-5", time.Now(), nil)}
		_, err := EvaluateBudget(newBudget("500"), txs)
		testutil.AssertAppError(t, err, "MALFORMED_TRANSACTION")
	})
}

func TestEngine_BudgetStatus(t *testing.T) {
	food := category("cat-food", "Food", models.CategoryTypeExpense)
	rent := category("cat-rent", "Rent", models.CategoryTypeExpense)

	t.Run("closed_interval_and_category_scope", func(t *testing.T) {
		l := &fakeLedger{}
		l.add(tx(models.TransactionTypeExpense, "150", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), food))
		l.add(tx(models.TransactionTypeExpense, "200", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), food))
		l.add(tx(models.TransactionTypeExpense, "999", time.Date(2024, 2, 1, 0, 0, 0, 1, time.UTC), food))
		l.add(tx(models.TransactionTypeExpense, "999", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), rent))
		l.add(models.Transaction{UserID: "someone-else", CategoryID: food.ID, Type: models.TransactionTypeExpense,
			Amount: dec("999"), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)})

		status, err := newTestEngine(l).BudgetStatus(context.Background(), newBudget("500"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "totalSpent", status.TotalSpent, "350")
		testutil.AssertDecimal(t, "remaining", status.Remaining, "150")
		testutil.AssertDecimal(t, "percentage", status.Percentage, "70")
		if status.Transactions != 2 {
			t.Errorf("expected 2 transactions, got %d", status.Transactions)
		}
		if status.Budget.ID != "budget-1" {
			t.Errorf("expected budget to be echoed, got %q", status.Budget.ID)
		}
	})

	t.Run("degenerate_budget_skips_query", func(t *testing.T) {
		l := &fakeLedger{}
		_, err := newTestEngine(l).BudgetStatus(context.Background(), newBudget("0"))
		testutil.AssertAppError(t, err, "DEGENERATE_BUDGET")
		if l.calls != 0 {
			t.Errorf("expected no ledger query, got %d", l.calls)
		}
	})

	t.Run("store_failure_is_propagated", func(t *testing.T) {
		storeErr := apperrors.Wrap(apperrors.ErrStoreUnavailable, context.DeadlineExceeded)
		l := &fakeLedger{err: storeErr}
		_, err := newTestEngine(l).BudgetStatus(context.Background(), newBudget("500"))
		if err != storeErr {
			t.Fatalf("expected store error unchanged, got %v", err)
		}
	})
}
