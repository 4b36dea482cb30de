// Package relation implements in-memory relations and the relational
// algebra over them. Operators never modify their inputs; each returns a
// freshly named relation.
package relation

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/tobsdb/reldb/internal/index"
	"github.com/tobsdb/reldb/internal/relerr"
	"github.com/tobsdb/reldb/internal/schema"
	"github.com/tobsdb/reldb/internal/types"
	"github.com/tobsdb/reldb/pkg"
)

type Tuple = types.Tuple

type Relation struct {
	locker sync.RWMutex

	schema      *schema.Schema
	key_columns []int
	tuples      []Tuple
	index       index.KeyIndex

	opts Options
}

func (r *Relation) GetLocker() *sync.RWMutex { return &r.locker }

// New builds an empty relation.
func New(s *schema.Schema, opts Options) (*Relation, error) {
	opts = opts.normalize()
	idx, err := index.New(opts.Index)
	if err != nil {
		return nil, err
	}
	return &Relation{schema: s, key_columns: s.KeyColumns(), index: idx, opts: opts}, nil
}

// NewWithTuples builds a relation holding tuples, in order. Every tuple is
// type checked; the key index is rebuilt from them without duplicate key
// handling.
func NewWithTuples(s *schema.Schema, tuples []Tuple, opts Options) (*Relation, error) {
	r, err := New(s, opts)
	if err != nil {
		return nil, err
	}
	rows := make([]Tuple, len(tuples))
	for i, t := range tuples {
		if err := TypeCheck(t, s); err != nil {
			return nil, fmt.Errorf("tuple %d: %w", i, err)
		}
		rows[i] = slices.Clone(t)
	}
	r.load(rows)
	return r, nil
}

// derive builds an operator result. rows are owned by the new relation and
// are already known to match s.
func (r *Relation) derive(s *schema.Schema, rows []Tuple) *Relation {
	idx, err := index.New(r.opts.Index)
	if err != nil {
		// the kind was validated when r was built
		panic(err)
	}
	d := &Relation{schema: s, key_columns: s.KeyColumns(), index: idx, opts: r.opts}
	d.load(rows)
	return d
}

func (r *Relation) load(rows []Tuple) {
	r.tuples = rows
	for _, t := range rows {
		r.index.Put(index.KeyOf(t, r.key_columns), t)
	}
}

func (r *Relation) Name() string           { return r.schema.Name() }
func (r *Relation) Schema() *schema.Schema { return r.schema }
func (r *Relation) Options() Options       { return r.opts }
func (r *Relation) IndexKind() index.Kind  { return r.index.Kind() }

func (r *Relation) Len() int {
	r.locker.RLock()
	defer r.locker.RUnlock()
	return len(r.tuples)
}

// snapshot returns the tuples inserted so far. Tuples are append-only and
// never modified, so the returned slice stays valid without the lock.
func (r *Relation) snapshot() []Tuple {
	var rows []Tuple
	pkg.RLockWrap(r, func() {
		rows = r.tuples[:len(r.tuples):len(r.tuples)]
	})
	return rows
}

// Tuples returns a copy of every tuple in insertion order.
func (r *Relation) Tuples() []Tuple {
	rows := r.snapshot()
	out := make([]Tuple, len(rows))
	for i, t := range rows {
		out[i] = slices.Clone(t)
	}
	return out
}

// Each calls fn for every tuple in insertion order until fn returns false.
// fn must not modify t.
func (r *Relation) Each(fn func(t Tuple) bool) {
	for _, t := range r.snapshot() {
		if !fn(t) {
			return
		}
	}
}

// EachKey walks the key index in key order. It does nothing for relations
// without an index. fn must not insert into r.
func (r *Relation) EachKey(fn func(key index.CompositeKey, t Tuple) bool) {
	pkg.RLockWrap(r, func() { r.index.Ascend(fn) })
}

// Col returns the position of the named attribute.
func (r *Relation) Col(name string) (int, error) {
	col, ok := r.schema.ColumnOf(name)
	if !ok {
		return -1, relerr.AttributeNotFound(r.Name(), name)
	}
	return col, nil
}

// TypeCheck verifies that t has one value per attribute of s and that
// every value belongs to the domain of its position.
func TypeCheck(t Tuple, s *schema.Schema) error {
	if len(t) != s.Arity() {
		return relerr.Newf(relerr.KindTypeMismatch,
			"tuple has %d values but relation %s has %d attributes", len(t), s.Name(), s.Arity())
	}
	for i, v := range t {
		if !types.Conforms(v, s.Domain(i)) {
			return relerr.Newf(relerr.KindTypeMismatch,
				"invalid value for %s.%s: expected %s, got %s",
				s.Name(), s.Attribute(i), s.Domain(i), describe(v))
		}
	}
	return nil
}

// Check is the predicate form of TypeCheck.
func Check(t Tuple, s *schema.Schema) bool { return TypeCheck(t, s) == nil }

func describe(v types.Value) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%s %s", v.Domain(), v)
}

// Insert type checks t and appends a copy of it. The tuple store and the
// key index are updated in one critical section; on error neither changes.
func (r *Relation) Insert(t Tuple) error {
	if pkg.DebugEnabled() {
		pkg.DebugLog(fmt.Sprintf("DML> insert into %s values ( %s )", r.Name(), formatTuple(t)))
	}

	if err := TypeCheck(t, r.schema); err != nil {
		return err
	}

	t = slices.Clone(t)
	key := index.KeyOf(t, r.key_columns)

	replaced := false
	err := pkg.LockWrapErr(r, func() error {
		if r.opts.DuplicateKeys == DuplicateKeysReject && r.hasKey(key) {
			return relerr.Newf(relerr.KindDuplicateKey,
				"relation %s already has a tuple with key %s", r.Name(), key)
		}
		r.tuples = append(r.tuples, t)
		replaced = r.index.Put(key, t)
		return nil
	})
	if err != nil {
		return err
	}

	if replaced {
		pkg.WarnLog("duplicate key", key.String(), "in relation", r.Name(), "; index entry overwritten")
		if r.opts.OnDuplicateKey != nil {
			r.opts.OnDuplicateKey(r, key)
		}
	}
	return nil
}

// InsertValues coerces loose Go values to the relation's domains and
// inserts them as one tuple.
//
//	movie.InsertValues("Star_Wars", 1977, 124, "sciFi", "Fox", 12345)
func (r *Relation) InsertValues(values ...any) error {
	if len(values) != r.schema.Arity() {
		return relerr.Newf(relerr.KindTypeMismatch,
			"tuple has %d values but relation %s has %d attributes", len(values), r.Name(), r.schema.Arity())
	}
	t := make(Tuple, len(values))
	for i, v := range values {
		tv, err := types.Coerce(r.schema.Domain(i), v)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", r.Name(), r.schema.Attribute(i), err)
		}
		t[i] = tv
	}
	return r.Insert(t)
}

// hasKey must be called with r.locker held.
func (r *Relation) hasKey(key index.CompositeKey) bool {
	if r.index.Kind() != index.KindNone {
		_, ok := r.index.Get(key)
		return ok
	}
	for _, t := range r.tuples {
		if index.KeyOf(t, r.key_columns).Equal(key) {
			return true
		}
	}
	return false
}

func formatTuple(t Tuple) string {
	parts := make([]string, len(t))
	for i, v := range t {
		if v == nil {
			parts[i] = "null"
		} else {
			parts[i] = v.String()
		}
	}
	return strings.Join(parts, ", ")
}
