package search

import (
	"regexp"
	"strings"
)

const (
	ProductCodesPath  = "codes.number"
	TemplateCodesPath = "products.codes.number"
)

// RecName extends a name search so records also match through the
// numbers of their codes. base is the domain the plain name search
// produces for clause. Negated clauses must hold on both sides, so they
// are joined with AND instead of OR.
func RecName(base Node, clause Clause, codesPath string) Node {
	op := Or
	if clause.Operator.Negated() {
		op = And
	}
	return Group{
		Op:    op,
		Nodes: []Node{base, clause.WithField(codesPath)},
	}
}

// ProductRecName is the rec_name search of a product: its own code,
// its template name, and the numbers of its codes.
func ProductRecName(clause Clause) Node {
	op := Or
	if clause.Operator.Negated() {
		op = And
	}
	base := Group{Op: op, Nodes: []Node{
		clause.WithField("code"),
		clause.WithField("name"),
	}}
	return RecName(base, clause, ProductCodesPath)
}

// TemplateRecName is the rec_name search of a template: its name and
// the code numbers of any of its products.
func TemplateRecName(clause Clause) Node {
	return RecName(clause.WithField("name"), clause, TemplateCodesPath)
}

// ZeroPadPattern expands the "prefix.suffix" shorthand used when
// searching code numbers: the dot stands for one or more zeros, so
// "84.5" finds "8405" and "840005". Like wildcards are ignored.
func ZeroPadPattern(value string) (string, bool) {
	q := strings.ReplaceAll(value, "%", "")
	prefix, suffix, found := strings.Cut(q, ".")
	if !found {
		return "", false
	}
	return "^" + regexp.QuoteMeta(prefix) + "0+" + regexp.QuoteMeta(suffix) + "$", true
}

// LikeValue wraps a user query in wildcards for a contains search.
func LikeValue(q string) string {
	return "%" + strings.TrimSpace(q) + "%"
}
