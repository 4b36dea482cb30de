package relation_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/tobsdb/reldb/internal/index"
	. "github.com/tobsdb/reldb/internal/relation"
	"github.com/tobsdb/reldb/internal/schema"
	"github.com/tobsdb/reldb/internal/types"
)

// fromInts builds name(a, b) with one tuple (x, x%3) per x, keeping
// duplicates.
func fromInts(name string, xs []int, opts Options) *Relation {
	s := schema.MustParse(name, "a b", "Integer Integer", "a")
	rows := make([]Tuple, len(xs))
	for i, x := range xs {
		rows[i] = tuple(types.Integer(x), types.Integer(x%3))
	}
	r, err := NewWithTuples(s, rows, opts)
	if err != nil {
		panic(err)
	}
	return r
}

func sortedTuples(rows []Tuple) []Tuple {
	rows = slices.Clone(rows)
	slices.SortFunc(rows, func(a, b Tuple) int {
		return index.CompositeKey(a).Compare(index.CompositeKey(b))
	})
	return rows
}

func containsTuple(rows []Tuple, t Tuple) bool {
	return slices.ContainsFunc(rows, func(u Tuple) bool { return types.TupleEqual(t, u) })
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	return gopter.NewProperties(parameters)
}

func ints() gopter.Gen { return gen.SliceOf(gen.IntRange(0, 9)) }

func TestProperty_Algebra(t *testing.T) {
	properties := newProperties()

	properties.Property("identity projection keeps every tuple in order", prop.ForAll(
		func(xs []int) bool {
			r := fromInts("r", xs, DefaultOptions())
			p, err := r.Project(r.Schema().Attributes()...)
			return err == nil && cmp.Equal(p.Tuples(), r.Tuples())
		},
		ints(),
	))

	properties.Property("union has no duplicates and is bounded", prop.ForAll(
		func(xs, ys []int) bool {
			r, s := fromInts("r", xs, DefaultOptions()), fromInts("s", ys, DefaultOptions())
			u, err := r.Union(s)
			if err != nil || u.Len() > r.Len()+s.Len() {
				return false
			}
			rows := u.Tuples()
			for i := range rows {
				if containsTuple(rows[:i], rows[i]) {
					return false
				}
			}
			for _, t := range append(r.Tuples(), s.Tuples()...) {
				if !containsTuple(rows, t) {
					return false
				}
			}
			return true
		},
		ints(), ints(),
	))

	properties.Property("minus shares nothing with its argument", prop.ForAll(
		func(xs, ys []int) bool {
			r, s := fromInts("r", xs, DefaultOptions()), fromInts("s", ys, DefaultOptions())
			m, err := r.Minus(s)
			if err != nil {
				return false
			}
			i, err := m.Intersect(s)
			return err == nil && i.Len() == 0
		},
		ints(), ints(),
	))

	properties.Property("difference and intersection cover both sides", prop.ForAll(
		func(xs, ys []int) bool {
			r, s := fromInts("r", xs, DefaultOptions()), fromInts("s", ys, DefaultOptions())
			rs, _ := r.Minus(s)
			sr, _ := s.Minus(r)
			common, _ := s.Minus(sr)
			u, err := rs.Union(common)
			if err != nil {
				return false
			}
			all := u.Tuples()
			for _, t := range r.Tuples() {
				if !containsTuple(all, t) {
					return false
				}
			}
			return true
		},
		ints(), ints(),
	))

	properties.TestingRun(t)
}

func TestProperty_Join(t *testing.T) {
	properties := newProperties()

	properties.Property("equi-join is commutative up to attribute order", prop.ForAll(
		func(xs, ys []int, strategy int) bool {
			opts := DefaultOptions()
			opts.Join = strategies[strategy]
			r, s := fromInts("r", xs, opts), fromInts("s", ys, opts)

			rs, err := r.Join([]string{"b"}, []string{"a"}, s)
			if err != nil {
				return false
			}
			sr, err := s.Join([]string{"a"}, []string{"b"}, r)
			if err != nil {
				return false
			}
			swapped := make([]Tuple, 0, sr.Len())
			for _, t := range sr.Tuples() {
				swapped = append(swapped, append(t[2:4:4], t[0:2]...))
			}
			return cmp.Equal(sortedTuples(rs.Tuples()), sortedTuples(swapped))
		},
		ints(), ints(), gen.IntRange(0, len(strategies)-1),
	))

	properties.Property("natural join of disjoint schemas is the cross product", prop.ForAll(
		func(xs, ys []int) bool {
			r := fromInts("r", xs, DefaultOptions())
			rows := []Tuple{}
			for _, y := range ys {
				rows = append(rows, tuple(types.Integer(y)))
			}
			s, err := NewWithTuples(schema.MustParse("s", "c", "Integer", "c"), rows, DefaultOptions())
			if err != nil {
				return false
			}
			j, err := r.NaturalJoin(s)
			return err == nil && j.Len() == r.Len()*s.Len()
		},
		ints(), gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}

func TestProperty_InsertRejects(t *testing.T) {
	properties := newProperties()

	properties.Property("a rejected insert leaves the relation unchanged", prop.ForAll(
		func(xs []int, width int) bool {
			r := fromInts("r", xs, DefaultOptions())
			before := r.Tuples()
			if width == 2 {
				width = 3
			}
			bad := make(Tuple, width)
			for i := range bad {
				bad[i] = types.Integer(i)
			}
			return r.Insert(bad) != nil && cmp.Equal(r.Tuples(), before)
		},
		ints(), gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
