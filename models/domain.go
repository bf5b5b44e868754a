package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"github.com/mytheresa/product-barcode/search"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// field describes how a search path is reached from a root table.
// Direct fields compare column. Fields behind a relation select the keys
// of matching related rows with query, which has one %s for the
// condition on column, and compare key against them. active, when set,
// restricts the related rows to active ones.
type field struct {
	column string
	key    string
	query  string
	active string
}

type fieldMap map[string]field

var templateFields = fieldMap{
	"id":            {column: "templates.id"},
	"name":          {column: "templates.name"},
	"active":        {column: "templates.active"},
	"category_id":   {column: "templates.category_id"},
	"category.code": {column: "categories.code", key: "templates.category_id", query: "SELECT categories.id FROM categories WHERE %s"},
	"products.code": {
		column: "products.code",
		key:    "templates.id",
		query:  "SELECT products.template_id FROM products WHERE %s",
		active: "products.active = true",
	},
	search.TemplateCodesPath: {
		column: "product_codes.number",
		key:    "templates.id",
		query:  "SELECT products.template_id FROM products JOIN product_codes ON product_codes.product_id = products.id WHERE %s",
		active: "products.active = true AND product_codes.active = true",
	},
}

var productFields = fieldMap{
	"id":          {column: "products.id"},
	"code":        {column: "products.code"},
	"active":      {column: "products.active"},
	"template_id": {column: "products.template_id"},
	"name":        {column: "templates.name", key: "products.template_id", query: "SELECT templates.id FROM templates WHERE %s"},
	search.ProductCodesPath: {
		column: "product_codes.number",
		key:    "products.id",
		query:  "SELECT product_codes.product_id FROM product_codes WHERE %s",
		active: "product_codes.active = true",
	},
	"codes.barcode": {
		column: "product_codes.barcode",
		key:    "products.id",
		query:  "SELECT product_codes.product_id FROM product_codes WHERE %s",
		active: "product_codes.active = true",
	},
}

var codeFields = fieldMap{
	"id":         {column: "product_codes.id"},
	"number":     {column: "product_codes.number"},
	"barcode":    {column: "product_codes.barcode"},
	"active":     {column: "product_codes.active"},
	"product_id": {column: "product_codes.product_id"},
}

// compiler turns a search domain into a WHERE expression for one root
// table. db decides the SQL dialect and runs the prefilter query of
// dialects without regular expressions. With activeOnly, relation
// fields only see active related rows.
type compiler struct {
	db         *gorm.DB
	fields     fieldMap
	activeOnly bool
}

func compileDomain(db *gorm.DB, fields fieldMap, node search.Node, activeOnly bool) (string, []any, error) {
	c := compiler{db: db, fields: fields, activeOnly: activeOnly}
	return c.node(node)
}

func (c compiler) dialect() string {
	return c.db.Dialector.Name()
}

func (c compiler) node(node search.Node) (string, []any, error) {
	switch n := node.(type) {
	case search.Group:
		return c.group(n)
	case search.Clause:
		return c.clause(n)
	}
	return "", nil, errors.Errorf("unexpected search node %T", node)
}

func (c compiler) group(g search.Group) (string, []any, error) {
	if len(g.Nodes) == 0 {
		return "1 = 1", nil, nil
	}
	sep := " AND "
	if g.Op == search.Or {
		sep = " OR "
	}
	parts := make([]string, 0, len(g.Nodes))
	var args []any
	for _, child := range g.Nodes {
		sql, childArgs, err := c.node(child)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		args = append(args, childArgs...)
	}
	return "(" + strings.Join(parts, sep) + ")", args, nil
}

func (c compiler) clause(cl search.Clause) (string, []any, error) {
	f, ok := c.fields[cl.Field]
	if !ok {
		return "", nil, errors.Wrap(ErrUnknownField, cl.Field)
	}
	if !cl.Operator.Valid() {
		return "", nil, errors.Wrap(ErrUnsupportedOperator, string(cl.Operator))
	}

	if f.query == "" {
		return c.condition(cl.Field, f.column, cl.Operator, cl.Value)
	}

	// A negated clause on a relation excludes records having any matching
	// related row.
	cond, args, err := c.condition(cl.Field, f.column, cl.Operator.Positive(), cl.Value)
	if err != nil {
		return "", nil, err
	}
	if c.activeOnly && f.active != "" {
		cond += " AND " + f.active
	}
	in := " IN "
	if cl.Operator.Negated() {
		in = " NOT IN "
	}
	return f.key + in + "(" + fmt.Sprintf(f.query, cond) + ")", args, nil
}

func (c compiler) condition(path, column string, op search.Operator, value any) (string, []any, error) {
	if op.IsLike() && search.IsCodeNumberPath(path) {
		if s, ok := value.(string); ok {
			if pattern, ok := search.ZeroPadPattern(s); ok {
				return c.zeroPad(column, op.Negated(), s, pattern)
			}
		}
	}

	switch op {
	case search.Equal:
		if value == nil {
			return column + " IS NULL", nil, nil
		}
		return column + " = ?", []any{value}, nil
	case search.NotEqual:
		if value == nil {
			return column + " IS NOT NULL", nil, nil
		}
		return column + " <> ?", []any{value}, nil
	case search.Like:
		return column + " LIKE ?", []any{value}, nil
	case search.NotLike:
		return column + " NOT LIKE ?", []any{value}, nil
	case search.ILike, search.NotILike:
		not := ""
		if op.Negated() {
			not = "NOT "
		}
		if c.dialect() == "postgres" {
			return column + " " + not + "ILIKE ?", []any{value}, nil
		}
		return "LOWER(" + column + ") " + not + "LIKE LOWER(?)", []any{value}, nil
	case search.In, search.NotIn:
		return c.in(column, op.Negated(), value)
	}
	return "", nil, errors.Wrap(ErrUnsupportedOperator, string(op))
}

func (c compiler) in(column string, negated bool, value any) (string, []any, error) {
	ids, isIDs := int64s(value)
	if isIDs && len(ids) == 0 {
		if negated {
			return "1 = 1", nil, nil
		}
		return "1 = 0", nil, nil
	}
	if isIDs && c.dialect() == "postgres" {
		if negated {
			return "NOT (" + column + " = ANY(?))", []any{pq.Array(ids)}, nil
		}
		return column + " = ANY(?)", []any{pq.Array(ids)}, nil
	}
	if negated {
		return column + " NOT IN ?", []any{value}, nil
	}
	return column + " IN ?", []any{value}, nil
}

// zeroPad compiles the "prefix.suffix" code number shorthand.
func (c compiler) zeroPad(column string, negated bool, value, pattern string) (string, []any, error) {
	switch c.dialect() {
	case "postgres":
		if negated {
			return column + " !~ ?", []any{pattern}, nil
		}
		return column + " ~ ?", []any{pattern}, nil
	case "mysql":
		if negated {
			return column + " NOT REGEXP ?", []any{pattern}, nil
		}
		return column + " REGEXP ?", []any{pattern}, nil
	}

	// No regular expressions in SQL: narrow down with LIKE, then filter.
	prefix, suffix, _ := strings.Cut(strings.ReplaceAll(value, "%", ""), ".")
	var rows []struct {
		ID     int64
		Number string
	}
	if err := c.db.Session(&gorm.Session{NewDB: true}).Table("product_codes").
		Select("id, number").
		Where("number LIKE ?", prefix+"%"+suffix).
		Scan(&rows).Error; err != nil {
		return "", nil, errors.Wrap(err, "prefilter code numbers")
	}
	re := regexp.MustCompile(pattern)
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		if re.MatchString(r.Number) {
			ids = append(ids, r.ID)
		}
	}
	return c.in("product_codes.id", negated, ids)
}

// int64s converts id lists to int64 so they can be bound as one array.
func int64s(value any) ([]int64, bool) {
	switch v := value.(type) {
	case []int64:
		return v, true
	case []int:
		out := make([]int64, len(v))
		for i, n := range v {
			out[i] = int64(n)
		}
		return out, true
	case []uint:
		out := make([]int64, len(v))
		for i, n := range v {
			out[i] = int64(n)
		}
		return out, true
	}
	return nil, false
}
