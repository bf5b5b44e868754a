// Package products serves product search and the product detail with
// its barcode codes.
package products

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mytheresa/product-barcode/app/api"
	"github.com/mytheresa/product-barcode/app/logger"
	"github.com/mytheresa/product-barcode/barcode"
	"github.com/mytheresa/product-barcode/models"
	"github.com/mytheresa/product-barcode/search"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type Code struct {
	ID       uint   `json:"id"`
	Barcode  string `json:"barcode"`
	Number   string `json:"number"`
	Sequence *int   `json:"sequence"`
	Active   bool   `json:"active"`
}

type Product struct {
	ID         uint    `json:"id"`
	TemplateID uint    `json:"template_id"`
	Code       string  `json:"code"`
	RecName    string  `json:"rec_name"`
	Price      float64 `json:"price"`
	Active     bool    `json:"active"`
	Codes      []Code  `json:"codes"`
	// Barcodes holds one code_<type> entry per supported barcode type.
	Barcodes map[string]*string `json:"barcodes"`
}

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type ProductProvider interface {
	Search(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Copy(ctx context.Context, id uint) (*models.Product, error)
}

// TypesProvider lists the barcode types products get a derived field for.
type TypesProvider interface {
	Types() []string
}

type ProductHandler struct {
	repo  ProductProvider
	types TypesProvider
}

// NewProductHandler derives code_<type> fields for the whole barcode
// catalog, whether or not numbers are validated.
func NewProductHandler(r ProductProvider) *ProductHandler {
	return &ProductHandler{repo: r, types: barcode.Default()}
}

func (h *ProductHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	offset, limit := api.Pagination(r)

	filters := models.ProductFilters{
		IncludeInactive: api.QueryBool(r, "inactive"),
		TemplateID:      cast.ToUint(r.URL.Query().Get("template_id")),
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		op := search.ILike
		if api.QueryBool(r, "exclude") {
			op = search.NotILike
		}
		filters.Name = &search.Clause{Field: "rec_name", Operator: op, Value: search.LikeValue(q)}
	}

	res, total, err := h.repo.Search(r.Context(), offset, limit, filters)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to search products", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to search products")
		return
	}

	types := h.types.Types()
	products := make([]Product, len(res))
	for i := range res {
		products[i] = newProduct(&res[i], types)
	}

	api.WriteJSON(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if !h.handleError(w, r, err, "Failed to retrieve product") {
		return
	}
	api.WriteJSON(w, http.StatusOK, newProduct(product, h.types.Types()))
}

func (h *ProductHandler) HandleCopy(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.repo.Copy(r.Context(), id)
	if !h.handleError(w, r, err, "Failed to copy product") {
		return
	}
	logger.FromContext(r.Context()).Info("Product copied",
		zap.Uint("source_id", id), zap.Uint("id", product.ID))
	api.WriteJSON(w, http.StatusCreated, newProduct(product, h.types.Types()))
}

// handleError writes the response for err and reports whether the
// handler may go on.
func (h *ProductHandler) handleError(w http.ResponseWriter, r *http.Request, err error, message string) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, models.ErrProductNotFound):
		api.WriteError(w, http.StatusNotFound, "Product not found")
	default:
		logger.FromContext(r.Context()).Error(message, zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, message)
	}
	return false
}

func newProduct(p *models.Product, types []string) Product {
	codes := make([]Code, len(p.Codes))
	for i, c := range p.Codes {
		codes[i] = Code{
			ID:       c.ID,
			Barcode:  c.Barcode,
			Number:   c.Number,
			Sequence: c.Sequence,
			Active:   c.Active,
		}
	}
	return Product{
		ID:         p.ID,
		TemplateID: p.TemplateID,
		Code:       p.Code,
		RecName:    p.RecName(),
		Price:      p.EffectivePrice().InexactFloat64(),
		Active:     p.Active,
		Codes:      codes,
		Barcodes:   p.BarcodeFields(types),
	}
}
