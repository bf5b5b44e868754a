package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type product struct {
	code   string
	name   string
	codes  []string
	active bool
}

func (p product) Values(path string) []any {
	switch path {
	case "code":
		return []any{p.code}
	case "name":
		return []any{p.name}
	case "active":
		return []any{p.active}
	case ProductCodesPath:
		values := make([]any, len(p.codes))
		for i, c := range p.codes {
			values[i] = c
		}
		return values
	}
	return nil
}

func TestRecName(t *testing.T) {
	testCases := []struct {
		name       string
		clause     Clause
		expectedOp BoolOp
	}{
		{"ilike is joined with OR", Clause{"rec_name", ILike, "%shirt%"}, Or},
		{"like is joined with OR", Clause{"rec_name", Like, "shirt%"}, Or},
		{"equal is joined with OR", Clause{"rec_name", Equal, "shirt"}, Or},
		{"not ilike is joined with AND", Clause{"rec_name", NotILike, "%shirt%"}, And},
		{"not like is joined with AND", Clause{"rec_name", NotLike, "%shirt%"}, And},
		{"!= is joined with AND", Clause{"rec_name", NotEqual, "shirt"}, And},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base := tc.clause.WithField("name")

			got := RecName(base, tc.clause, ProductCodesPath)

			assert.Equal(t, Group{
				Op: tc.expectedOp,
				Nodes: []Node{
					base,
					Clause{ProductCodesPath, tc.clause.Operator, tc.clause.Value},
				},
			}, got)
		})
	}
}

func TestTemplateRecName(t *testing.T) {
	got := TemplateRecName(Clause{"rec_name", ILike, "%84%"})

	assert.Equal(t, Group{Op: Or, Nodes: []Node{
		Clause{"name", ILike, "%84%"},
		Clause{TemplateCodesPath, ILike, "%84%"},
	}}, got)
}

func TestProductRecNameMatchesCodeNumbers(t *testing.T) {
	shirt := product{code: "SH-1", name: "Shirt", codes: []string{"4006381333931", "73513537", "840005"}}
	shoe := product{code: "SO-1", name: "Shoe"}

	testCases := []struct {
		name     string
		query    Clause
		expected map[string]bool
	}{
		{
			name:     "Substring of a code number finds the owner",
			query:    Clause{"rec_name", ILike, LikeValue("63813")},
			expected: map[string]bool{"SH-1": true, "SO-1": false},
		},
		{
			name:     "Name still matches",
			query:    Clause{"rec_name", ILike, LikeValue("shoe")},
			expected: map[string]bool{"SH-1": false, "SO-1": true},
		},
		{
			name:     "Own code still matches",
			query:    Clause{"rec_name", ILike, LikeValue("so-")},
			expected: map[string]bool{"SH-1": false, "SO-1": true},
		},
		{
			name:     "Negated search excludes code owners",
			query:    Clause{"rec_name", NotILike, LikeValue("7351")},
			expected: map[string]bool{"SH-1": false, "SO-1": true},
		},
		{
			name:     "Zero padding shorthand on code numbers",
			query:    Clause{"rec_name", ILike, LikeValue("84.5")},
			expected: map[string]bool{"SH-1": true, "SO-1": false},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			domain := ProductRecName(tc.query)

			assert.Equal(t, tc.expected["SH-1"], Match(domain, shirt))
			assert.Equal(t, tc.expected["SO-1"], Match(domain, shoe))
		})
	}
}

func TestZeroPadPattern(t *testing.T) {
	testCases := []struct {
		value    string
		pattern  string
		ok       bool
		matches  []string
		rejected []string
	}{
		{
			value:    "84.5",
			pattern:  "^840+5$",
			ok:       true,
			matches:  []string{"8405", "840005"},
			rejected: []string{"845", "84050", "18405"},
		},
		{
			value:   "%12.3%",
			pattern: "^120+3$",
			ok:      true,
			matches: []string{"1203"},
		},
		{
			value: "845",
			ok:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			pattern, ok := ZeroPadPattern(tc.value)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.pattern, pattern)
			for _, number := range tc.matches {
				assert.True(t, Match(Clause{"number", Like, tc.value}, RecordFunc(func(string) []any {
					return []any{number}
				})), number)
			}
			for _, number := range tc.rejected {
				assert.False(t, Match(Clause{"number", Like, tc.value}, RecordFunc(func(string) []any {
					return []any{number}
				})), number)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	shirt := product{code: "SH-1", name: "Shirt", codes: []string{"111", "222"}, active: true}

	testCases := []struct {
		name     string
		domain   Node
		expected bool
	}{
		{"empty group", Group{Op: And}, true},
		{"equal", Clause{"code", Equal, "SH-1"}, true},
		{"not equal", Clause{"code", NotEqual, "SH-1"}, false},
		{"in", Clause{"code", In, []string{"XX", "SH-1"}}, true},
		{"not in", Clause{"code", NotIn, []string{"XX"}}, true},
		{"like is case sensitive", Clause{"name", Like, "shirt"}, false},
		{"ilike folds case", Clause{"name", ILike, "shirt"}, true},
		{"underscore wildcard", Clause{"name", Like, "Sh_rt"}, true},
		{"x2many any value", Clause{ProductCodesPath, Equal, "222"}, true},
		{"x2many negated means none", Clause{ProductCodesPath, NotEqual, "222"}, false},
		{"bool", Clause{"active", Equal, true}, true},
		{"and", Group{Op: And, Nodes: []Node{
			Clause{"code", Equal, "SH-1"},
			Clause{"name", Equal, "Shoe"},
		}}, false},
		{"or", Group{Op: Or, Nodes: []Node{
			Clause{"code", Equal, "SH-1"},
			Clause{"name", Equal, "Shoe"},
		}}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Match(tc.domain, shirt))
		})
	}
}

func TestOperator(t *testing.T) {
	assert.True(t, NotILike.Negated())
	assert.True(t, NotEqual.Negated())
	assert.False(t, ILike.Negated())
	assert.Equal(t, ILike, NotILike.Positive())
	assert.Equal(t, Equal, NotEqual.Positive())
	assert.Equal(t, In, NotIn.Positive())
	assert.True(t, NotLike.IsLike())
	assert.False(t, In.IsLike())
	assert.False(t, Operator("~").Valid())
}
