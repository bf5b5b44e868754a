package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mytheresa/product-barcode/app/api"
	"github.com/mytheresa/product-barcode/app/logger"
	"github.com/mytheresa/product-barcode/models"
	"github.com/mytheresa/product-barcode/search"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type Response struct {
	Total     int        `json:"total"`
	Templates []Template `json:"templates"`
}

type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Template struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Category Category `json:"category"`
}

type Variant struct {
	ID      uint     `json:"id"`
	Code    string   `json:"code"`
	RecName string   `json:"rec_name"`
	Price   float64  `json:"price"`
	Codes   []string `json:"codes"`
}

type TemplateDetail struct {
	Template
	Variants []Variant `json:"variants"`
}

type TemplateProvider interface {
	GetFilteredTemplates(ctx context.Context, offset, limit int, filters models.TemplateFilters) ([]models.Template, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Template, error)
}

type CatalogHandler struct {
	repo TemplateProvider
}

func NewCatalogHandler(r TemplateProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	offset, limit := api.Pagination(r)

	// Parse filters
	filters := models.TemplateFilters{
		CategoryCode:    r.URL.Query().Get("category"),
		IncludeInactive: api.QueryBool(r, "inactive"),
	}
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := cast.ToFloat64E(priceStr); err == nil {
			filters.PriceLessThan = &val
		}
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		filters.Name = &search.Clause{Field: "rec_name", Operator: search.ILike, Value: search.LikeValue(q)}
	}

	res, total, err := h.repo.GetFilteredTemplates(r.Context(), offset, limit, filters)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list templates", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to retrieve catalog")
		return
	}

	templates := make([]Template, len(res))
	for i, t := range res {
		templates[i] = newTemplate(t)
	}

	api.WriteJSON(w, http.StatusOK, Response{
		Total:     int(total),
		Templates: templates,
	})
}

func (h *CatalogHandler) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid template id")
		return
	}

	template, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrTemplateNotFound) {
		api.WriteError(w, http.StatusNotFound, "Template not found")
		return
	}
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to load template", zap.Uint("id", id), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to retrieve template")
		return
	}

	// Variants without a price of their own inherit the list price.
	variants := make([]Variant, len(template.Products))
	for i, p := range template.Products {
		p.Template = *template
		codes := make([]string, len(p.Codes))
		for j, c := range p.Codes {
			codes[j] = c.RecName()
		}
		variants[i] = Variant{
			ID:      p.ID,
			Code:    p.Code,
			RecName: p.RecName(),
			Price:   p.EffectivePrice().InexactFloat64(),
			Codes:   codes,
		}
	}

	api.WriteJSON(w, http.StatusOK, TemplateDetail{
		Template: newTemplate(*template),
		Variants: variants,
	})
}

func newTemplate(t models.Template) Template {
	return Template{
		ID:    t.ID,
		Name:  t.Name,
		Price: t.ListPrice.InexactFloat64(),
		Category: Category{
			Code: t.Category.Code,
			Name: t.Category.Name,
		},
	}
}
