// Package schema describes the static shape of a relation: attribute
// names, their domains and the primary key.
package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tobsdb/reldb/internal/relerr"
	"github.com/tobsdb/reldb/internal/types"
	"github.com/tobsdb/reldb/pkg"
)

// Schema is immutable once built by New; accessors return copies.
type Schema struct {
	name       string
	attributes []string
	domains    []types.Domain
	key        []string

	columns     pkg.Map[string, int]
	key_columns []int
}

// schema rules:
// - one domain per attribute
// - attribute names are non-empty and unique
// - every domain is a valid builtin domain
// - the key is non-empty and names existing attributes only
func New(name string, attributes []string, domains []types.Domain, key []string) (*Schema, error) {
	if len(name) == 0 {
		return nil, relerr.New(relerr.KindSchemaMismatch, "relation name cannot be empty")
	}
	if len(attributes) != len(domains) {
		return nil, relerr.Newf(relerr.KindSchemaMismatch,
			"relation %s has %d attributes but %d domains", name, len(attributes), len(domains))
	}
	if len(attributes) == 0 {
		return nil, relerr.Newf(relerr.KindSchemaMismatch, "relation %s must have at least one attribute", name)
	}

	columns := pkg.Map[string, int]{}
	for i, attr := range attributes {
		if len(attr) == 0 {
			return nil, relerr.Newf(relerr.KindSchemaMismatch, "relation %s: attribute %d has no name", name, i)
		}
		if columns.Has(attr) {
			return nil, relerr.Newf(relerr.KindSchemaMismatch, "relation %s: duplicate attribute %s", name, attr)
		}
		if !domains[i].IsValid() {
			return nil, relerr.Newf(relerr.KindTypeMismatch,
				"relation %s: attribute %s has invalid domain %q", name, attr, domains[i])
		}
		columns.Set(attr, i)
	}

	if len(key) == 0 {
		return nil, relerr.Newf(relerr.KindSchemaMismatch, "relation %s must have a primary key", name)
	}
	key_columns := make([]int, len(key))
	for i, k := range key {
		col, ok := columns.Lookup(k)
		if !ok {
			return nil, relerr.Newf(relerr.KindAttributeNotFound,
				"relation %s: key attribute %s is not an attribute", name, k)
		}
		key_columns[i] = col
	}

	return &Schema{
		name:        name,
		attributes:  slices.Clone(attributes),
		domains:     slices.Clone(domains),
		key:         slices.Clone(key),
		columns:     columns,
		key_columns: key_columns,
	}, nil
}

// Parse builds a schema from space separated lists, e.g.
//
//	Parse("movie", "title year length genre studioName producerNo",
//		"String Integer Integer String String Integer", "title year")
func Parse(name, attributes, domains, key string) (*Schema, error) {
	d, err := types.ParseDomains(domains)
	if err != nil {
		return nil, fmt.Errorf("relation %s: %w", name, err)
	}
	return New(name, strings.Fields(attributes), d, strings.Fields(key))
}

func MustParse(name, attributes, domains, key string) *Schema {
	s, err := Parse(name, attributes, domains, key)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string                { return s.name }
func (s *Schema) Arity() int                  { return len(s.attributes) }
func (s *Schema) Attributes() []string        { return slices.Clone(s.attributes) }
func (s *Schema) Domains() []types.Domain     { return slices.Clone(s.domains) }
func (s *Schema) Key() []string               { return slices.Clone(s.key) }
func (s *Schema) KeyColumns() []int           { return slices.Clone(s.key_columns) }
func (s *Schema) Attribute(col int) string    { return s.attributes[col] }
func (s *Schema) Domain(col int) types.Domain { return s.domains[col] }

// ColumnOf returns the position of the named attribute.
func (s *Schema) ColumnOf(name string) (int, bool) {
	return s.columns.Lookup(name)
}

// Columns resolves every name to its position, failing on the first
// unknown attribute.
func (s *Schema) Columns(names []string) ([]int, error) {
	cols := make([]int, len(names))
	for i, name := range names {
		col, ok := s.ColumnOf(name)
		if !ok {
			return nil, relerr.AttributeNotFound(s.name, name)
		}
		cols[i] = col
	}
	return cols, nil
}

func (s *Schema) DomainsOf(cols []int) []types.Domain {
	domains := make([]types.Domain, len(cols))
	for i, col := range cols {
		domains[i] = s.domains[col]
	}
	return domains
}

func (s *Schema) KeyDomains() []types.Domain { return s.DomainsOf(s.key_columns) }

// Compatible checks that both relations have the same arity and the same
// domain at every position. Attribute names are not compared.
func (s *Schema) Compatible(other *Schema) error {
	if len(s.domains) != len(other.domains) {
		return relerr.Newf(relerr.KindSchemaMismatch,
			"relations %s and %s have different arity (%d vs %d)",
			s.name, other.name, len(s.domains), len(other.domains))
	}
	for i := range s.domains {
		if s.domains[i] != other.domains[i] {
			return relerr.Newf(relerr.KindSchemaMismatch,
				"relations %s and %s disagree on domain %d (%s vs %s)",
				s.name, other.name, i, s.domains[i], other.domains[i])
		}
	}
	return nil
}

// Rename returns a copy of s under a new relation name.
func (s *Schema) Rename(name string) *Schema {
	c := *s
	c.name = name
	return &c
}

func (s *Schema) String() string {
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteByte('(')
	for i, attr := range s.attributes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", attr, s.domains[i])
	}
	fmt.Fprintf(&b, ") key(%s)", strings.Join(s.key, ", "))
	return b.String()
}
