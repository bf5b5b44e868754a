package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mytheresa/product-barcode/app/api"
	"github.com/mytheresa/product-barcode/app/logger"
	"github.com/mytheresa/product-barcode/models"
	"go.uber.org/zap"
)

type CategoryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to fetch categories", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}
	api.WriteJSON(w, http.StatusOK, newCategoryResponses(list))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CategoryResponse
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, ok := input.category()
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Missing code or name")
		return
	}

	switch err := h.repo.CreateCategory(r.Context(), category); {
	case errors.Is(err, models.ErrDuplicateCategory):
		api.WriteError(w, http.StatusConflict, "Category code already exists")
	case err != nil:
		logger.FromContext(r.Context()).Error("Failed to create category", zap.String("code", category.Code), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to create category")
	default:
		api.WriteJSON(w, http.StatusCreated, map[string]string{
			"message": "Category created successfully",
		})
	}
}

// category builds the model from trimmed input; both fields are required.
func (in CategoryResponse) category() (*models.Category, bool) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, false
	}
	return &models.Category{Code: code, Name: name}, true
}

func newCategoryResponses(list []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(list))
	for i, c := range list {
		out[i] = CategoryResponse{Code: c.Code, Name: c.Name}
	}
	return out
}
