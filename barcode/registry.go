package barcode

import (
	"sort"
	"strings"
)

// Checker reports whether number carries a valid check digit for one
// barcode type.
type Checker func(number string) bool

// Registry maps barcode type tags to their checkers.
// Tags are stored upper-case and looked up case-insensitively.
type Registry struct {
	checks map[string]Checker
}

func NewRegistry() *Registry {
	return &Registry{checks: make(map[string]Checker)}
}

// Register adds or replaces the checker for tag.
func (r *Registry) Register(tag string, c Checker) {
	r.checks[strings.ToUpper(strings.TrimSpace(tag))] = c
}

// Lookup returns the checker registered for tag.
func (r *Registry) Lookup(tag string) (Checker, bool) {
	c, ok := r.checks[strings.ToUpper(strings.TrimSpace(tag))]
	return c, ok
}

// Types returns the registered tags in alphabetical order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.checks))
	for t := range r.checks {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Default returns a registry holding every built-in barcode type.
func Default() *Registry {
	r := NewRegistry()
	r.Register("CODE39", checkCode39)
	r.Register("EAN", checkEAN)
	r.Register("EAN13", checkEAN13)
	r.Register("EAN8", checkEAN8)
	r.Register("GS1", checkGS1)
	r.Register("GTIN", checkEAN)
	r.Register("ISBN", checkISBN)
	r.Register("ISBN10", checkISBN10)
	r.Register("ISBN13", checkISBN13)
	r.Register("ISSN", checkISSN)
	r.Register("JAN", checkJAN)
	r.Register("PZN", checkPZN)
	r.Register("UPC", checkUPC)
	r.Register("UPCA", checkUPC)
	return r
}
