// Package codes serves the barcode codes of products: listing, edits,
// search and bulk CSV import.
package codes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/mytheresa/product-barcode/app/api"
	"github.com/mytheresa/product-barcode/app/logger"
	"github.com/mytheresa/product-barcode/barcode"
	"github.com/mytheresa/product-barcode/models"
	"github.com/mytheresa/product-barcode/search"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type CodeResponse struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"product_id"`
	Barcode   string `json:"barcode"`
	Number    string `json:"number"`
	RecName   string `json:"rec_name"`
	Sequence  *int   `json:"sequence"`
	Active    bool   `json:"active"`
}

type SearchResponse struct {
	Total int            `json:"total"`
	Codes []CodeResponse `json:"codes"`
}

// CodeInput is the body of code writes. Absent fields keep their
// stored value on update.
type CodeInput struct {
	Barcode  *string `json:"barcode"`
	Number   *string `json:"number"`
	Sequence *int   `json:"sequence"`
	Active   *bool  `json:"active"`
}

type CodeProvider interface {
	ListByProduct(ctx context.Context, productID uint) ([]models.Code, error)
	Get(ctx context.Context, id uint) (*models.Code, error)
	Create(ctx context.Context, code *models.Code) error
	Update(ctx context.Context, code *models.Code) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, clause search.Clause, offset, limit int, includeInactive bool) ([]models.Code, int64, error)
	Import(ctx context.Context, codes []models.Code) error
}

// TypeCatalog describes the barcode types numbers are validated against.
type TypeCatalog interface {
	Enabled() bool
	Types() []string
}

// ImportRecorder is told how many codes each import created.
type ImportRecorder interface {
	ObserveImport(count int)
}

type CodeHandler struct {
	repo     CodeProvider
	types    TypeCatalog
	recorder ImportRecorder
}

func NewCodeHandler(r CodeProvider, types TypeCatalog, recorder ImportRecorder) *CodeHandler {
	return &CodeHandler{repo: r, types: types, recorder: recorder}
}

func (h *CodeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	productID, ok := api.ParseID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	codes, err := h.repo.ListByProduct(r.Context(), productID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list codes", zap.Uint("product_id", productID), zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to list codes")
		return
	}
	api.WriteJSON(w, http.StatusOK, newCodes(codes))
}

func (h *CodeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	productID, ok := api.ParseID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var input CodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	code := &models.Code{ProductID: productID, Active: true}
	input.apply(code)
	if code.Sequence == nil {
		sequence := models.DefaultCodeSequence
		code.Sequence = &sequence
	}

	if err := h.repo.Create(r.Context(), code); err != nil {
		h.writeError(w, r, code, err, "Failed to save code")
		return
	}

	logger.FromContext(r.Context()).Info("Code created",
		zap.Uint("id", code.ID),
		zap.Uint("product_id", productID),
		zap.String("barcode", code.Barcode))
	api.WriteJSON(w, http.StatusCreated, newCode(code))
}

func (h *CodeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid code id")
		return
	}

	var input CodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	code, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, nil, err, "Failed to retrieve code")
		return
	}
	input.apply(code)

	if err := h.repo.Update(r.Context(), code); err != nil {
		h.writeError(w, r, code, err, "Failed to save code")
		return
	}
	api.WriteJSON(w, http.StatusOK, newCode(code))
}

func (h *CodeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(r, "id")
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "Invalid code id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, nil, err, "Failed to delete code")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CodeHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		api.WriteError(w, http.StatusBadRequest, "Missing query")
		return
	}
	offset, limit := api.Pagination(r)

	clause := search.Clause{Field: "rec_name", Operator: search.ILike, Value: search.LikeValue(q)}

	codes, total, err := h.repo.Search(r.Context(), clause, offset, limit, api.QueryBool(r, "inactive"))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to search codes", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to search codes")
		return
	}
	api.WriteJSON(w, http.StatusOK, SearchResponse{Total: int(total), Codes: newCodes(codes)})
}

// importRow is one line of a code import file.
type importRow struct {
	ProductID string `csv:"product_id"`
	Barcode   string `csv:"barcode"`
	Number    string `csv:"number"`
	Sequence  string `csv:"sequence"`
	Active    string `csv:"active"`
}

func (row importRow) code() (models.Code, error) {
	productID, err := cast.ToUintE(strings.TrimSpace(row.ProductID))
	if err != nil || productID == 0 {
		return models.Code{}, fmt.Errorf("invalid product_id %q", row.ProductID)
	}
	code := models.Code{
		ProductID: productID,
		Barcode:   row.Barcode,
		Number:    row.Number,
		Active:    true,
	}
	if s := strings.TrimSpace(row.Sequence); s != "" {
		sequence, err := cast.ToIntE(s)
		if err != nil {
			return models.Code{}, fmt.Errorf("invalid sequence %q", row.Sequence)
		}
		code.Sequence = &sequence
	} else {
		sequence := models.DefaultCodeSequence
		code.Sequence = &sequence
	}
	if s := strings.TrimSpace(row.Active); s != "" {
		active, err := cast.ToBoolE(s)
		if err != nil {
			return models.Code{}, fmt.Errorf("invalid active %q", row.Active)
		}
		code.Active = active
	}
	return code, nil
}

// HandleImport creates the codes of a CSV file with a header line. The
// file is saved entirely or not at all.
func (h *CodeHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var rows []importRow
	if err := gocsv.Unmarshal(r.Body, &rows); err != nil {
		api.WriteError(w, http.StatusBadRequest, "Invalid CSV body")
		return
	}
	if len(rows) == 0 {
		api.WriteError(w, http.StatusBadRequest, "No codes to import")
		return
	}

	codes := make([]models.Code, len(rows))
	for i, row := range rows {
		code, err := row.code()
		if err != nil {
			api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("row %d: %v", i+1, err))
			return
		}
		codes[i] = code
	}

	if err := h.repo.Import(r.Context(), codes); err != nil {
		var importErr *models.ImportError
		if errors.As(err, &importErr) {
			status, message := h.status(&codes[importErr.Row-1], importErr.Err)
			if status != http.StatusInternalServerError {
				api.WriteError(w, status, fmt.Sprintf("row %d: %s", importErr.Row, message))
				return
			}
		}
		logger.FromContext(r.Context()).Error("Failed to import codes", zap.Error(err))
		api.WriteError(w, http.StatusInternalServerError, "Failed to import codes")
		return
	}

	if h.recorder != nil {
		h.recorder.ObserveImport(len(codes))
	}
	logger.FromContext(r.Context()).Info("Codes imported", zap.Int("count", len(codes)))
	api.WriteJSON(w, http.StatusCreated, map[string]int{"imported": len(codes)})
}

// HandleBarcodes lists the barcode types codes can be validated for.
func (h *CodeHandler) HandleBarcodes(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, struct {
		Validation bool     `json:"validation"`
		Types      []string `json:"types"`
	}{
		Validation: h.types.Enabled(),
		Types:      h.types.Types(),
	})
}

// status maps a repository error to the response status and message.
func (h *CodeHandler) status(code *models.Code, err error) (int, string) {
	switch {
	case errors.Is(err, barcode.ErrInvalidNumber):
		return http.StatusUnprocessableEntity, fmt.Sprintf("The number %q of code %q is not valid", code.Number, code.Barcode)
	case errors.Is(err, barcode.ErrUnsupportedType):
		return http.StatusUnprocessableEntity, fmt.Sprintf("Unsupported barcode type %q", code.Barcode)
	case errors.Is(err, models.ErrNumberRequired):
		return http.StatusUnprocessableEntity, "Missing number"
	case errors.Is(err, models.ErrDuplicateCode):
		return http.StatusConflict, fmt.Sprintf("There is another code with the number %q", code.Number)
	case errors.Is(err, models.ErrCodeNotFound):
		return http.StatusNotFound, "Code not found"
	case errors.Is(err, models.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	}
	return http.StatusInternalServerError, ""
}

func (h *CodeHandler) writeError(w http.ResponseWriter, r *http.Request, code *models.Code, err error, fallback string) {
	if code == nil {
		code = &models.Code{}
	}
	status, message := h.status(code, err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error(fallback, zap.Error(err))
		message = fallback
	}
	api.WriteError(w, status, message)
}

func (in CodeInput) apply(code *models.Code) {
	if in.Barcode != nil {
		code.Barcode = *in.Barcode
	}
	if in.Number != nil {
		code.Number = *in.Number
	}
	if in.Sequence != nil {
		code.Sequence = in.Sequence
	}
	if in.Active != nil {
		code.Active = *in.Active
	}
}

func newCode(c *models.Code) CodeResponse {
	return CodeResponse{
		ID:        c.ID,
		ProductID: c.ProductID,
		Barcode:   c.Barcode,
		Number:    c.Number,
		RecName:   c.RecName(),
		Sequence:  c.Sequence,
		Active:    c.Active,
	}
}

func newCodes(codes []models.Code) []CodeResponse {
	out := make([]CodeResponse, len(codes))
	for i := range codes {
		out[i] = newCode(&codes[i])
	}
	return out
}
