package search

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Record exposes field values to Match. A path through a one-to-many
// relation yields one value per related record.
type Record interface {
	Values(path string) []any
}

// RecordFunc adapts a function to Record.
type RecordFunc func(path string) []any

func (f RecordFunc) Values(path string) []any { return f(path) }

// IsCodeNumberPath reports whether the field holds code numbers, which
// support the zero padding shorthand.
func IsCodeNumberPath(field string) bool {
	return field == "number" || strings.HasSuffix(field, "codes.number")
}

// Match evaluates node against r in memory.
func Match(node Node, r Record) bool {
	switch n := node.(type) {
	case Group:
		if len(n.Nodes) == 0 {
			return true
		}
		for _, child := range n.Nodes {
			ok := Match(child, r)
			if n.Op == Or && ok {
				return true
			}
			if n.Op != Or && !ok {
				return false
			}
		}
		return n.Op != Or
	case Clause:
		return matchClause(n, r)
	}
	return false
}

func matchClause(c Clause, r Record) bool {
	positive := c.Operator.Positive()
	found := false
	for _, v := range r.Values(c.Field) {
		if matchValue(c.Field, positive, v, c.Value) {
			found = true
			break
		}
	}
	if c.Operator.Negated() {
		return !found
	}
	return found
}

func matchValue(field string, op Operator, got, want any) bool {
	switch op {
	case Equal:
		return fmt.Sprint(got) == fmt.Sprint(want)
	case In:
		for _, w := range toSlice(want) {
			if fmt.Sprint(got) == fmt.Sprint(w) {
				return true
			}
		}
		return false
	case Like, ILike:
		pattern, ok := want.(string)
		if !ok {
			return false
		}
		s := fmt.Sprint(got)
		if IsCodeNumberPath(field) {
			if expr, ok := ZeroPadPattern(pattern); ok {
				return regexp.MustCompile(expr).MatchString(s)
			}
		}
		return likeRegexp(pattern, op == ILike).MatchString(s)
	}
	return false
}

// likeRegexp translates a SQL like pattern into an anchored regexp.
func likeRegexp(pattern string, fold bool) *regexp.Regexp {
	var b strings.Builder
	if fold {
		b.WriteString("(?is)")
	} else {
		b.WriteString("(?s)")
	}
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

func toSlice(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
