package relation

import (
	"fmt"
	"strings"

	"github.com/tobsdb/reldb/internal/index"
	"github.com/tobsdb/reldb/internal/relerr"
	"github.com/tobsdb/reldb/internal/schema"
	"github.com/tobsdb/reldb/internal/types"
	"github.com/tobsdb/reldb/pkg"
)

func (r *Relation) nextName() string { return r.opts.Namer.Next(r.Name()) }

// Project keeps the given attributes, in the given order. The key is kept
// when every key attribute is projected; otherwise all projected
// attributes form the new key. Duplicate rows are not removed.
//
//	movie.Project("title", "year", "studioNo")
func (r *Relation) Project(attrs ...string) (*Relation, error) {
	pkg.DebugLog(fmt.Sprintf("RA> %s.project (%s)", r.Name(), strings.Join(attrs, " ")))

	if len(attrs) == 0 {
		return nil, relerr.Newf(relerr.KindAttributeNotFound, "project on %s needs at least one attribute", r.Name())
	}
	cols, err := r.schema.Columns(attrs)
	if err != nil {
		return nil, err
	}

	key := r.schema.Key()
	if !pkg.ContainsAll(attrs, key) {
		key = attrs
	}
	s, err := schema.New(r.nextName(), attrs, r.schema.DomainsOf(cols), key)
	if err != nil {
		return nil, err
	}

	src := r.snapshot()
	rows := make([]Tuple, len(src))
	for i, t := range src {
		rows[i] = extract(t, cols)
	}
	return r.derive(s, rows), nil
}

func extract(t Tuple, cols []int) Tuple {
	out := make(Tuple, len(cols))
	for i, col := range cols {
		out[i] = t[col]
	}
	return out
}

// Select keeps the tuples for which predicate returns true, in order.
// predicate must not modify the tuple it is given.
//
//	movie.Select(func(t Tuple) bool { return t[year] == types.Integer(1977) })
func (r *Relation) Select(predicate func(t Tuple) bool) *Relation {
	pkg.DebugLog(fmt.Sprintf("RA> %s.select (predicate)", r.Name()))
	rows := pkg.Filter(r.snapshot(), predicate)
	return r.derive(r.schema.Rename(r.nextName()), rows)
}

// SelectKey returns the tuple whose primary key equals key, if any. The key
// index is used when the relation has one; otherwise tuples are scanned
// and the first match wins. No match gives an empty relation.
func (r *Relation) SelectKey(key index.CompositeKey) (*Relation, error) {
	if pkg.DebugEnabled() {
		pkg.DebugLog(fmt.Sprintf("RA> %s.select (%s)", r.Name(), key))
	}

	if err := r.checkKey(key); err != nil {
		return nil, err
	}

	var rows []Tuple
	if r.index.Kind() != index.KindNone {
		pkg.RLockWrap(r, func() {
			if t, ok := r.index.Get(key); ok {
				rows = append(rows, t)
			}
		})
	} else {
		for _, t := range r.snapshot() {
			if index.KeyOf(t, r.key_columns).Equal(key) {
				rows = append(rows, t)
				break
			}
		}
	}
	return r.derive(r.schema.Rename(r.nextName()), rows), nil
}

// SelectKeyValues is SelectKey with loose Go values coerced to the key
// domains.
//
//	movie.SelectKeyValues("Star_Wars", 1977)
func (r *Relation) SelectKeyValues(values ...any) (*Relation, error) {
	key, err := index.NewKey(r.schema.KeyDomains(), values...)
	if err != nil {
		return nil, err
	}
	return r.SelectKey(key)
}

func (r *Relation) checkKey(key index.CompositeKey) error {
	domains := r.schema.KeyDomains()
	if len(key) != len(domains) {
		return relerr.Newf(relerr.KindTypeMismatch,
			"key %s has %d values but the key of %s has %d attributes", key, len(key), r.Name(), len(domains))
	}
	for i, v := range key {
		if !types.Conforms(v, domains[i]) {
			return relerr.Newf(relerr.KindTypeMismatch,
				"key value %d of %s must be %s, got %s", i, r.Name(), domains[i], describe(v))
		}
	}
	return nil
}

// Union returns the tuples of r followed by the tuples of other, skipping
// any tuple equal to one already in the result. Both relations must be
// compatible. Repeated tuples of r collapse too, so a bag produced by
// Project comes back as a set.
func (r *Relation) Union(other *Relation) (*Relation, error) {
	pkg.DebugLog(fmt.Sprintf("RA> %s.union (%s)", r.Name(), other.Name()))
	if err := r.schema.Compatible(other.schema); err != nil {
		return nil, err
	}

	left, right := r.snapshot(), other.snapshot()
	rows := make([]Tuple, 0, len(left)+len(right))
	seen := newTupleSet(len(left) + len(right))
	for _, t := range left {
		if seen.Add(t) {
			rows = append(rows, t)
		}
	}
	for _, t := range right {
		if seen.Add(t) {
			rows = append(rows, t)
		}
	}
	return r.derive(r.schema.Rename(r.nextName()), rows), nil
}

// Minus returns the tuples of r not equal to any tuple of other, in order.
func (r *Relation) Minus(other *Relation) (*Relation, error) {
	pkg.DebugLog(fmt.Sprintf("RA> %s.minus (%s)", r.Name(), other.Name()))
	if err := r.schema.Compatible(other.schema); err != nil {
		return nil, err
	}

	exclude := setOf(other.snapshot())
	rows := pkg.Filter(r.snapshot(), func(t Tuple) bool { return !exclude.Contains(t) })
	return r.derive(r.schema.Rename(r.nextName()), rows), nil
}

// Intersect returns the tuples of r equal to some tuple of other, in
// order. It gives the same tuples as r.Minus(r.Minus(other)).
func (r *Relation) Intersect(other *Relation) (*Relation, error) {
	pkg.DebugLog(fmt.Sprintf("RA> %s.intersect (%s)", r.Name(), other.Name()))
	if err := r.schema.Compatible(other.schema); err != nil {
		return nil, err
	}

	keep := setOf(other.snapshot())
	rows := pkg.Filter(r.snapshot(), keep.Contains)
	return r.derive(r.schema.Rename(r.nextName()), rows), nil
}
