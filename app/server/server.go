// Package server wires the handlers into one HTTP handler.
package server

import (
	"net/http"

	"github.com/mytheresa/product-barcode/app/api"
	"github.com/mytheresa/product-barcode/app/catalog"
	"github.com/mytheresa/product-barcode/app/categories"
	"github.com/mytheresa/product-barcode/app/codes"
	"github.com/mytheresa/product-barcode/app/metrics"
	"github.com/mytheresa/product-barcode/app/middleware"
	"github.com/mytheresa/product-barcode/app/products"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Catalog    *catalog.CatalogHandler
	Products   *products.ProductHandler
	Codes      *codes.CodeHandler
	Categories *categories.CategoryHandler
}

// New registers the routes and wraps them with the middleware chain.
// gatherer backs the /metrics endpoint.
func New(h Handlers, m *metrics.Metrics, gatherer prometheus.Gatherer, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /catalog", h.Catalog.HandleGet)
	mux.HandleFunc("GET /catalog/{id}", h.Catalog.HandleGetTemplate)

	mux.HandleFunc("GET /products", h.Products.HandleSearch)
	mux.HandleFunc("GET /products/{id}", h.Products.HandleGet)
	mux.HandleFunc("POST /products/{id}/copy", h.Products.HandleCopy)

	mux.HandleFunc("GET /products/{id}/codes", h.Codes.HandleList)
	mux.HandleFunc("POST /products/{id}/codes", h.Codes.HandleCreate)
	mux.HandleFunc("GET /codes", h.Codes.HandleSearch)
	mux.HandleFunc("POST /codes/import", h.Codes.HandleImport)
	mux.HandleFunc("PUT /codes/{id}", h.Codes.HandleUpdate)
	mux.HandleFunc("DELETE /codes/{id}", h.Codes.HandleDelete)
	mux.HandleFunc("GET /barcodes", h.Codes.HandleBarcodes)

	mux.HandleFunc("GET /categories", h.Categories.HandleGetAll)
	mux.HandleFunc("POST /categories", h.Categories.HandleCreate)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Metrics must run inside Logging: the mux records the route pattern
	// on the request value it receives.
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(log),
		middleware.Metrics(m),
		middleware.Recover,
	)
}
