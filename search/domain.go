// Package search models search domains: trees of field clauses joined
// with AND/OR, the way free-text product search is expressed before it
// is compiled to SQL.
package search

import (
	"strings"
)

type Operator string

const (
	Equal    Operator = "="
	NotEqual Operator = "!="
	Like     Operator = "like"
	ILike    Operator = "ilike"
	NotLike  Operator = "not like"
	NotILike Operator = "not ilike"
	In       Operator = "in"
	NotIn    Operator = "not in"
)

// Negated reports whether the operator excludes matching records.
func (o Operator) Negated() bool {
	return strings.HasPrefix(string(o), "!") || strings.HasPrefix(string(o), "not ")
}

// Positive returns the operator with its negation removed.
func (o Operator) Positive() Operator {
	switch {
	case strings.HasPrefix(string(o), "not "):
		return Operator(strings.TrimPrefix(string(o), "not "))
	case o == NotEqual:
		return Equal
	}
	return o
}

// IsLike reports whether the operator is one of the like family.
func (o Operator) IsLike() bool {
	switch o {
	case Like, ILike, NotLike, NotILike:
		return true
	}
	return false
}

func (o Operator) Valid() bool {
	switch o {
	case Equal, NotEqual, Like, ILike, NotLike, NotILike, In, NotIn:
		return true
	}
	return false
}

type BoolOp string

const (
	And BoolOp = "AND"
	Or  BoolOp = "OR"
)

// Node is either a Clause or a Group.
type Node interface {
	node()
}

// Clause compares the value of a field path with Value.
// Paths through one-to-many relations use dots, e.g. "codes.number".
type Clause struct {
	Field    string
	Operator Operator
	Value    any
}

func (Clause) node() {}

// Group joins its nodes with Op. An empty group matches everything.
type Group struct {
	Op    BoolOp
	Nodes []Node
}

func (Group) node() {}

// StringValue returns the clause value when it is a string.
func (c Clause) StringValue() (string, bool) {
	s, ok := c.Value.(string)
	return s, ok
}

// WithField returns a copy of the clause on another field.
func (c Clause) WithField(field string) Clause {
	return Clause{Field: field, Operator: c.Operator, Value: c.Value}
}
