package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mytheresa/product-barcode/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Repository ---

type MockCategoryRepo struct {
	Categories []models.Category
	CreateErr  error
	ListErr    error

	lastSaved *models.Category
}

func (m *MockCategoryRepo) GetAllCategories(_ context.Context) ([]models.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Categories, nil
}

func (m *MockCategoryRepo) CreateCategory(_ context.Context, category *models.Category) error {
	m.lastSaved = category
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, c := range m.Categories {
		if c.Code == category.Code {
			return models.ErrDuplicateCategory
		}
	}
	m.Categories = append(m.Categories, *category)
	return nil
}

// --- Helpers ---

func newCatalogCategories() []models.Category {
	return []models.Category{
		{Code: "clothing", Name: "Clothing"},
		{Code: "shoes", Name: "Shoes"},
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	return errResp["error"]
}

// --- Tests: GET /categories ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		repo               *MockCategoryRepo
		expectedStatusCode int
		expectedCodes      []string
		expectedError      string
	}{
		{
			name:               "Categories in repository order",
			repo:               &MockCategoryRepo{Categories: newCatalogCategories()},
			expectedStatusCode: http.StatusOK,
			expectedCodes:      []string{"clothing", "shoes"},
		},
		{
			name:               "Empty list is an empty array",
			repo:               &MockCategoryRepo{},
			expectedStatusCode: http.StatusOK,
			expectedCodes:      []string{},
		},
		{
			name:               "Repository error",
			repo:               &MockCategoryRepo{ListErr: errors.New("db down")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      "failed to fetch categories",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := NewCategoryHandler(tc.repo)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetAll(rec, httptest.NewRequest("GET", "/categories", nil))

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, errorMessage(t, rec))
				return
			}
			var resp []CategoryResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			codes := make([]string, len(resp))
			for i, c := range resp {
				codes[i] = c.Code
			}
			assert.Equal(t, tc.expectedCodes, codes)
		})
	}
}

// --- Tests: POST /categories ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		repo               *MockCategoryRepo
		expectedStatusCode int
		expectedError      string
		expectedSaved      *models.Category
	}{
		{
			name:               "Success",
			requestBody:        `{"code":"accessories","name":"Accessories"}`,
			repo:               &MockCategoryRepo{Categories: newCatalogCategories()},
			expectedStatusCode: http.StatusCreated,
			expectedSaved:      &models.Category{Code: "accessories", Name: "Accessories"},
		},
		{
			name:               "Surrounding spaces are trimmed",
			requestBody:        `{"code":" toys ","name":" Toys "}`,
			repo:               &MockCategoryRepo{},
			expectedStatusCode: http.StatusCreated,
			expectedSaved:      &models.Category{Code: "toys", Name: "Toys"},
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{invalid json`,
			repo:               &MockCategoryRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Invalid JSON body",
		},
		{
			name:               "Missing code",
			requestBody:        `{"name":"MissingCode"}`,
			repo:               &MockCategoryRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Missing code or name",
		},
		{
			name:               "Blank name",
			requestBody:        `{"code":"bags","name":"   "}`,
			repo:               &MockCategoryRepo{},
			expectedStatusCode: http.StatusBadRequest,
			expectedError:      "Missing code or name",
		},
		{
			name:               "Duplicate category code",
			requestBody:        `{"code":"shoes","name":"More shoes"}`,
			repo:               &MockCategoryRepo{Categories: newCatalogCategories()},
			expectedStatusCode: http.StatusConflict,
			expectedError:      "Category code already exists",
		},
		{
			name:               "Repository error on create",
			requestBody:        `{"code":"toys","name":"Toys"}`,
			repo:               &MockCategoryRepo{CreateErr: errors.New("insert failed")},
			expectedStatusCode: http.StatusInternalServerError,
			expectedError:      "Failed to create category",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := NewCategoryHandler(tc.repo)
			req := httptest.NewRequest("POST", "/categories", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedError != "" {
				assert.Equal(t, tc.expectedError, errorMessage(t, rec))
			}
			if tc.expectedSaved != nil {
				assert.Equal(t, tc.expectedSaved, tc.repo.lastSaved)
				assert.Contains(t, tc.repo.Categories, *tc.expectedSaved)
			}
			if tc.expectedStatusCode == http.StatusBadRequest {
				assert.Nil(t, tc.repo.lastSaved, "CreateCategory should not be called")
			}
		})
	}
}
