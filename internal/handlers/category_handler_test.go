package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Asshabanu/finance-tracker/internal/errors"
	"github.com/Asshabanu/finance-tracker/internal/models"
	"github.com/Asshabanu/finance-tracker/internal/pagination"
	"github.com/Asshabanu/finance-tracker/internal/services"
)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn    func(userID, name string, categoryType models.CategoryType, description, icon, color string) (*models.Category, error)
	getUserCategoriesFn func(userID string, page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error)
	getCategoryByIDFn   func(userID, categoryID string) (*models.Category, error)
	updateCategoryFn    func(userID, categoryID, name, description, icon, color string) (*models.Category, error)
	deleteCategoryFn    func(userID, categoryID string) error
}

func (m *mockCategoryService) CreateCategory(userID, name string, categoryType models.CategoryType, description, icon, color string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, name, categoryType, description, icon, color)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetUserCategories(userID string, page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error) {
	if m.getUserCategoriesFn != nil {
		return m.getUserCategoriesFn(userID, page, categoryType)
	}
	resp := pagination.NewPageResponse([]models.Category{}, pagination.PageRequest{Page: 1, PageSize: 20}, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(userID, categoryID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(userID, categoryID, name, description, icon, color string) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(userID, categoryID, name, description, icon, color)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/categories", handler.CreateCategory)
	auth.GET("/categories", handler.GetUserCategories)
	auth.GET("/categories/:id", handler.GetCategoryByID)
	auth.PUT("/categories/:id", handler.UpdateCategory)
	auth.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("returns 201 and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockCategoryService{
			createCategoryFn: func(userID, name string, ct models.CategoryType, _, _, color string) (*models.Category, error) {
				if userID != testUserID {
					t.Errorf("expected user %s, got %s", testUserID, userID)
				}
				return &models.Category{Base: models.Base{ID: testResourceID}, UserID: userID, Name: name, Type: ct, Color: color}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, audit))

		rec := doRequest(r, "POST", "/categories", `{"name":"Groceries","type":"expense","color":"#FF5733"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		data := dataObject(t, rec)
		if data["name"] != "Groceries" || data["type"] != "expense" {
			t.Errorf("unexpected category: %v", data)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_CATEGORY" || audit.entries[0].resourceID != testResourceID {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"type":"expense"}`},
		{"invalid type", `{"name":"Bad","type":"transfer"}`},
		{"invalid color", `{"name":"Bad","type":"expense","color":"red"}`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

			rec := doRequest(r, "POST", "/categories", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(string, string, models.CategoryType, string, string, string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Food","type":"expense"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_CATEGORY")
	})
}

func TestCategoryHandler_List(t *testing.T) {
	t.Run("returns a page", func(t *testing.T) {
		svc := &mockCategoryService{
			getUserCategoriesFn: func(_ string, page pagination.PageRequest, ct *models.CategoryType) (*pagination.PageResponse[models.Category], error) {
				if ct != nil {
					t.Errorf("expected no type filter, got %v", *ct)
				}
				resp := pagination.NewPageResponse([]models.Category{{Name: "Food"}, {Name: "Rent"}}, pagination.PageRequest{Page: 2, PageSize: 2}, 5)
				return &resp, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?page=2&page_size=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["count"] != float64(2) || result["total_items"] != float64(5) || result["total_pages"] != float64(3) {
			t.Errorf("unexpected page metadata: %v", result)
		}
	})

	t.Run("passes type filter", func(t *testing.T) {
		var got *models.CategoryType
		svc := &mockCategoryService{
			getUserCategoriesFn: func(_ string, _ pagination.PageRequest, ct *models.CategoryType) (*pagination.PageResponse[models.Category], error) {
				got = ct
				resp := pagination.NewPageResponse([]models.Category{}, pagination.PageRequest{Page: 1, PageSize: 20}, 0)
				return &resp, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?type=income", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got == nil || *got != models.CategoryTypeIncome {
			t.Errorf("expected income filter, got %v", got)
		}
	})

	t.Run("returns 400 on invalid type", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?type=savings", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_GetByID(t *testing.T) {
	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 401 NOT_AUTHORIZED for another user's category", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryByIDFn: func(string, string) (*models.Category, error) {
				return nil, apperrors.ErrNotAuthorized
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories/"+testResourceID, "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NOT_AUTHORIZED")
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryByIDFn: func(string, string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories/"+testResourceID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestCategoryHandler_UpdateAndDelete(t *testing.T) {
	t.Run("update forwards fields", func(t *testing.T) {
		svc := &mockCategoryService{
			updateCategoryFn: func(_, categoryID, name, _, _, _ string) (*models.Category, error) {
				if categoryID != testResourceID {
					t.Errorf("expected id %s, got %s", testResourceID, categoryID)
				}
				return &models.Category{Base: models.Base{ID: categoryID}, Name: name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/categories/"+testResourceID, `{"name":"Dining"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if dataObject(t, rec)["name"] != "Dining" {
			t.Error("expected updated name")
		}
	})

	t.Run("delete returns message and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, audit))

		rec := doRequest(r, "DELETE", "/categories/"+testResourceID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["success"] != true || result["message"] == "" {
			t.Errorf("unexpected body: %v", result)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "DELETE_CATEGORY" {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})
}
