package integration

import (
	"net/http"
	"testing"
)

func TestTransactionFlow_CRUDAndFilters(t *testing.T) {
	app := setupApp(t)
	token, _, userID := app.registerUser(t, "tx@test.com", "password123")
	salary := app.createCategory(t, token, "Salary", "income")
	coffee := app.createCategory(t, token, "Coffee", "expense")

	payday := app.createTransaction(t, token, salary, "income", "2500", "2024-06-01")
	latte := app.createTransaction(t, token, coffee, "expense", "4.75", "2024-06-03")
	app.createTransaction(t, token, coffee, "expense", "3.20", "2024-05-28")

	// Newest first, scoped to the user
	page := expect(t, app.request("GET", "/api/v1/transactions", "", token), http.StatusOK)
	rows := items(t, page)
	if len(rows) != 3 || rows[0]["id"] != latte || rows[1]["id"] != payday {
		t.Fatalf("unexpected order: %v", rows)
	}
	if rows[0]["user_id"] != userID {
		t.Errorf("expected user_id %s, got %v", userID, rows[0]["user_id"])
	}
	if cat, ok := rows[0]["category"].(map[string]any); !ok || cat["name"] != "Coffee" {
		t.Errorf("expected preloaded category, got %v", rows[0]["category"])
	}

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"june only", "?from_date=2024-06-01&to_date=2024-06-30", 2},
		{"expenses", "?type=expense", 2},
		{"coffee in june", "?category_id=" + coffee + "&from_date=2024-06-01", 1},
		{"income", "?type=income", 1},
		{"paged", "?page=2&page_size=2", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expect(t, app.request("GET", "/api/v1/transactions"+tt.query, "", token), http.StatusOK)
			if result["total_items"] != tt.want {
				t.Errorf("expected %v items, got %v", tt.want, result["total_items"])
			}
		})
	}

	// Update amount and move the latte to another day
	updated := data(t, expect(t, app.request("PUT", "/api/v1/transactions/"+latte,
		`{"amount":5.25,"date":"2024-06-04","description":"oat latte"}`, token), http.StatusOK))
	if updated["amount"] != 5.25 || updated["description"] != "oat latte" {
		t.Errorf("unexpected update result: %v", updated)
	}
	if updated["date"] != "2024-06-04T00:00:00Z" {
		t.Errorf("expected moved date, got %v", updated["date"])
	}
	if updated["type"] != "expense" {
		t.Errorf("expected type untouched, got %v", updated["type"])
	}

	// Zero is a valid amount, negatives are not
	app.createTransaction(t, token, coffee, "expense", "0", "2024-06-05")
	expectError(t, app.request("POST", "/api/v1/transactions",
		`{"category_id":"`+coffee+`","type":"expense","amount":-1}`, token), http.StatusBadRequest, "INVALID_INPUT")

	// Delete
	expect(t, app.request("DELETE", "/api/v1/transactions/"+latte, "", token), http.StatusOK)
	expectError(t, app.request("GET", "/api/v1/transactions/"+latte, "", token), http.StatusNotFound, "TRANSACTION_NOT_FOUND")

	// Every mutation is audited
	var audits int64
	if err := app.DB.Table("audit_logs").Where("user_id = ?", userID).Count(&audits).Error; err != nil {
		t.Fatalf("count audit logs: %v", err)
	}
	// 2 categories + 4 creates + 1 update + 1 delete
	if audits != 8 {
		t.Errorf("expected 8 audit entries, got %d", audits)
	}
}

func TestCategoryFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "cat@test.com", "password123")

	rent := app.createCategory(t, token, "Rent", "expense")
	app.createCategory(t, token, "Bonus", "income")

	expectError(t, app.request("POST", "/api/v1/categories", `{"name":"Rent","type":"expense"}`, token),
		http.StatusConflict, "DUPLICATE_CATEGORY")

	incomes := items(t, expect(t, app.request("GET", "/api/v1/categories?type=income", "", token), http.StatusOK))
	if len(incomes) != 1 || incomes[0]["name"] != "Bonus" {
		t.Errorf("expected only Bonus, got %v", incomes)
	}

	updated := data(t, expect(t, app.request("PUT", "/api/v1/categories/"+rent,
		`{"name":"Housing","color":"#336699"}`, token), http.StatusOK))
	if updated["name"] != "Housing" || updated["color"] != "#336699" {
		t.Errorf("unexpected update: %v", updated)
	}

	expect(t, app.request("DELETE", "/api/v1/categories/"+rent, "", token), http.StatusOK)
	all := expect(t, app.request("GET", "/api/v1/categories", "", token), http.StatusOK)
	if all["total_items"] != float64(1) {
		t.Errorf("expected 1 category after delete, got %v", all["total_items"])
	}
}
