package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/models"
	"github.com/Asshabanu/finance-tracker/internal/pagination"
	"github.com/Asshabanu/finance-tracker/internal/services"
)

const testCategoryID = "0190a4d2-0000-7000-8000-0000000000cc"

// --- mock transaction service ---

type mockTransactionService struct {
	createTransactionFn   func(userID, categoryID string, txType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	getUserTransactionsFn func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getTransactionByIDFn  func(userID, transactionID string) (*models.Transaction, error)
	updateTransactionFn   func(userID, transactionID string, update services.TransactionUpdate) (*models.Transaction, error)
	deleteTransactionFn   func(userID, transactionID string) error
}

func (m *mockTransactionService) CreateTransaction(userID, categoryID string, txType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, categoryID, txType, amount, description, date)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, pagination.PageRequest{Page: 1, PageSize: 20}, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID string, update services.TransactionUpdate) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, update)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetUserTransactions)
	auth.GET("/transactions/:id", handler.GetTransactionByID)
	auth.PUT("/transactions/:id", handler.UpdateTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

func TestTransactionHandler_Create(t *testing.T) {
	t.Run("returns 201 with parsed fields", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockTransactionService{
			createTransactionFn: func(userID, categoryID string, txType models.TransactionType, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error) {
				if !amount.Equal(decimal.RequireFromString("42.50")) {
					t.Errorf("expected amount 42.50, got %s", amount)
				}
				if !date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("expected 2024-03-15, got %v", date)
				}
				return &models.Transaction{
					Base: models.Base{ID: testResourceID}, UserID: userID, CategoryID: categoryID,
					Type: txType, Amount: amount, Description: description, Date: date,
				}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, audit))

		rec := doRequest(r, "POST", "/transactions",
			`{"category_id":"`+testCategoryID+`","type":"expense","amount":42.50,"description":"Lunch","date":"2024-03-15"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		data := dataObject(t, rec)
		if data["amount"] != 42.5 {
			t.Errorf("expected numeric amount 42.5, got %v", data["amount"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_TRANSACTION" {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})

	t.Run("accepts zero amount and omitted date", func(t *testing.T) {
		var gotDate time.Time
		svc := &mockTransactionService{
			createTransactionFn: func(_, _ string, _ models.TransactionType, amount decimal.Decimal, _ string, date time.Time) (*models.Transaction, error) {
				gotDate = date
				return &models.Transaction{Amount: amount}, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"category_id":"`+testCategoryID+`","type":"income","amount":0}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotDate.IsZero() {
			t.Errorf("expected zero date to be passed through, got %v", gotDate)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"negative amount", `{"category_id":"` + testCategoryID + `","type":"expense","amount":-1}`},
		{"missing amount", `{"category_id":"` + testCategoryID + `","type":"expense"}`},
		{"unsupported type", `{"category_id":"` + testCategoryID + `","type":"transfer","amount":5}`},
		{"malformed category id", `{"category_id":"7","type":"expense","amount":5}`},
		{"bad date", `{"category_id":"` + testCategoryID + `","type":"expense","amount":5,"date":"15/03/2024"}`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

			rec := doRequest(r, "POST", "/transactions", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}

	t.Run("returns 401 when category belongs to another user", func(t *testing.T) {
		svc := &mockTransactionService{
			createTransactionFn: func(string, string, models.TransactionType, decimal.Decimal, string, time.Time) (*models.Transaction, error) {
				return nil, apperrors.ErrNotAuthorized
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/transactions", `{"category_id":"`+testCategoryID+`","type":"expense","amount":5}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NOT_AUTHORIZED")
	})
}

func TestTransactionHandler_List(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		var got services.TransactionFilter
		svc := &mockTransactionService{
			getUserTransactionsFn: func(_ string, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.Transaction{{Type: models.TransactionTypeExpense}}, pagination.PageRequest{Page: 1, PageSize: 20}, 1)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET",
			"/transactions?from_date=2024-01-01&to_date=2024-01-31T23:59:59Z&type=expense&category_id="+testCategoryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.FromDate == nil || !got.FromDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected from_date: %v", got.FromDate)
		}
		if got.ToDate == nil || !got.ToDate.Equal(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)) {
			t.Errorf("unexpected to_date: %v", got.ToDate)
		}
		if got.Type == nil || *got.Type != models.TransactionTypeExpense {
			t.Errorf("unexpected type: %v", got.Type)
		}
		if got.CategoryID == nil || *got.CategoryID != testCategoryID {
			t.Errorf("unexpected category_id: %v", got.CategoryID)
		}
		if parseJSON(t, rec)["total_items"] != float64(1) {
			t.Error("expected total_items=1")
		}
	})

	tests := []struct {
		name  string
		query string
	}{
		{"bad from_date", "?from_date=yesterday"},
		{"bad to_date", "?to_date=2024-13-01"},
		{"bad type", "?type=transfer"},
		{"bad category_id", "?category_id=12"},
		{"page size too large", "?page_size=500"},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

			rec := doRequest(r, "GET", "/transactions"+tt.query, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestTransactionHandler_GetUpdateDelete(t *testing.T) {
	t.Run("get returns 404 when missing", func(t *testing.T) {
		svc := &mockTransactionService{
			getTransactionByIDFn: func(string, string) (*models.Transaction, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/transactions/"+testResourceID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})

	t.Run("update passes only provided fields", func(t *testing.T) {
		var got services.TransactionUpdate
		svc := &mockTransactionService{
			updateTransactionFn: func(_, _ string, update services.TransactionUpdate) (*models.Transaction, error) {
				got = update
				return &models.Transaction{}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(svc, audit))

		rec := doRequest(r, "PUT", "/transactions/"+testResourceID, `{"amount":"19.99","date":"2024-02-29"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Amount == nil || !got.Amount.Equal(decimal.RequireFromString("19.99")) {
			t.Errorf("unexpected amount: %v", got.Amount)
		}
		if got.Date == nil || !got.Date.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date: %v", got.Date)
		}
		if got.Type != nil || got.CategoryID != nil || got.Description != nil {
			t.Errorf("expected untouched fields to be nil: %+v", got)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "UPDATE_TRANSACTION" {
			t.Fatalf("unexpected audit entries: %+v", audit.entries)
		}
		if audit.entries[0].changes["amount"] == nil {
			t.Errorf("expected submitted amount in audit changes, got %+v", audit.entries[0].changes)
		}
	})

	t.Run("update rejects negative amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/transactions/"+testResourceID, `{"amount":-3}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("delete audits", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, audit))

		rec := doRequest(r, "DELETE", "/transactions/"+testResourceID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "DELETE_TRANSACTION" || audit.entries[0].resourceID != testResourceID {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})

	t.Run("delete returns 400 on malformed id", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/transactions/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
