// Package api holds the JSON plumbing shared by the HTTP handlers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/spf13/cast"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// WriteJSON writes v as the JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a {"error": message} body.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// Pagination reads offset and limit query parameters. Malformed values
// fall back to the defaults; limit is clamped to [1, MaxLimit].
func Pagination(r *http.Request) (offset, limit int) {
	offset = 0
	limit = DefaultLimit

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := cast.ToIntE(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := cast.ToIntE(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > MaxLimit {
				limit = MaxLimit
			} else {
				limit = l
			}
		}
	}
	return offset, limit
}

// ParseID reads a positive numeric path value.
func ParseID(r *http.Request, name string) (uint, bool) {
	id, err := cast.ToUintE(strings.TrimSpace(r.PathValue(name)))
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// QueryBool reads a boolean query parameter, false when absent or malformed.
func QueryBool(r *http.Request, name string) bool {
	b, err := cast.ToBoolE(r.URL.Query().Get(name))
	return err == nil && b
}
