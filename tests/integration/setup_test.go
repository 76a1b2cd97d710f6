package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Asshabanu/finance-tracker/internal/config"
	"github.com/Asshabanu/finance-tracker/internal/logger"
	"github.com/Asshabanu/finance-tracker/internal/reports"
	"github.com/Asshabanu/finance-tracker/internal/server"
	"github.com/Asshabanu/finance-tracker/internal/testutil"
	"github.com/Asshabanu/finance-tracker/internal/validator"
)

// fixedNow is the "current" instant seen by the report engine in every flow.
var fixedNow = time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		CORSAllowedOrigins:   []string{"*"},
		ReportLocation:       time.UTC,
		ReportMaxConcurrency: 4,
	}
	router := server.NewRouter(db, cfg, reports.WithClock(func() time.Time { return fixedNow }))

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// expect asserts the status code and returns the parsed body.
func expect(t *testing.T, rec *httptest.ResponseRecorder, status int) map[string]any {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

// expectError asserts a failure envelope with the given status and code.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	result := expect(t, rec, status)
	if result["success"] != false {
		t.Errorf("expected success=false, got %v", result["success"])
	}
	if result["code"] != code {
		t.Errorf("expected code %q, got %v", code, result["code"])
	}
}

// data returns the object under "data" in a success envelope.
func data(t *testing.T, result map[string]any) map[string]any {
	t.Helper()
	obj, ok := result["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", result["data"])
	}
	return obj
}

// items returns the array under "data" in a list envelope.
func items(t *testing.T, result map[string]any) []map[string]any {
	t.Helper()
	raw, ok := result["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %v", result["data"])
	}
	out := make([]map[string]any, len(raw))
	for i, v := range raw {
		out[i] = v.(map[string]any)
	}
	return out
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	result := data(t, expect(t, app.request("POST", "/api/v1/auth/register", body, ""), http.StatusCreated))
	user := result["user"].(map[string]any)
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	result := data(t, expect(t, app.request("POST", "/api/v1/auth/login", body, ""), http.StatusOK))
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createCategory creates a category and returns its ID.
func (app *testApp) createCategory(t *testing.T, token, name, categoryType string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"type":%q}`, name, categoryType)
	return data(t, expect(t, app.request("POST", "/api/v1/categories", body, token), http.StatusCreated))["id"].(string)
}

// createTransaction records a transaction and returns its ID.
func (app *testApp) createTransaction(t *testing.T, token, categoryID, txType, amount, date string) string {
	t.Helper()
	body := fmt.Sprintf(`{"category_id":%q,"type":%q,"amount":%s,"date":%q}`, categoryID, txType, amount, date)
	return data(t, expect(t, app.request("POST", "/api/v1/transactions", body, token), http.StatusCreated))["id"].(string)
}

// createBudget creates a budget and returns its ID.
func (app *testApp) createBudget(t *testing.T, token, categoryID, amount, period, startDate string) string {
	t.Helper()
	body := fmt.Sprintf(`{"category_id":%q,"amount":%s,"period":%q,"start_date":%q}`, categoryID, amount, period, startDate)
	return data(t, expect(t, app.request("POST", "/api/v1/budgets", body, token), http.StatusCreated))["id"].(string)
}
