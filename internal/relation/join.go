package relation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tobsdb/reldb/internal/index"
	"github.com/tobsdb/reldb/internal/relerr"
	"github.com/tobsdb/reldb/internal/schema"
	"github.com/tobsdb/reldb/internal/types"
	"github.com/tobsdb/reldb/pkg"
)

// joinPlan describes how two relations are combined: a right tuple matches
// a left tuple when every left_cols[i] equals right_cols[i], and each match
// emits the left tuple followed by the right values at keep_cols.
type joinPlan struct {
	left_cols  []int
	right_cols []int
	keep_cols  []int
}

// Join is the equi-join of r and other. leftAttrs[i] is compared with
// rightAttrs[i] and a pair of tuples matches only when every compared pair
// is equal. Result tuples are the left tuple followed by the right tuple.
// Right attribute names already used on the left are suffixed with "2".
// The key is the key of r.
//
//	movie.Join([]string{"studioNo"}, []string{"studioNo"}, studio)
func (r *Relation) Join(leftAttrs, rightAttrs []string, other *Relation) (*Relation, error) {
	pkg.DebugLog(fmt.Sprintf("RA> %s.join (%s) on (%s) = (%s)",
		r.Name(), other.Name(), strings.Join(leftAttrs, " "), strings.Join(rightAttrs, " ")))

	if len(leftAttrs) != len(rightAttrs) {
		return nil, relerr.Newf(relerr.KindJoinArity,
			"join of %s and %s compares %d attributes with %d", r.Name(), other.Name(), len(leftAttrs), len(rightAttrs))
	}
	if len(leftAttrs) == 0 {
		return nil, relerr.Newf(relerr.KindJoinArity,
			"join of %s and %s needs at least one attribute pair", r.Name(), other.Name())
	}

	left_cols, err := r.schema.Columns(leftAttrs)
	if err != nil {
		return nil, err
	}
	right_cols, err := other.schema.Columns(rightAttrs)
	if err != nil {
		return nil, err
	}
	if err := checkJoinDomains(r, other, left_cols, right_cols); err != nil {
		return nil, err
	}

	plan := joinPlan{left_cols: left_cols, right_cols: right_cols}
	for col := range other.schema.Arity() {
		plan.keep_cols = append(plan.keep_cols, col)
	}

	s, err := schema.New(r.nextName(),
		pkg.Concat(r.schema.Attributes(), disambiguate(r.schema.Attributes(), other.schema.Attributes())),
		pkg.Concat(r.schema.Domains(), other.schema.Domains()),
		r.schema.Key())
	if err != nil {
		return nil, err
	}
	return r.derive(s, r.joinRows(other, plan)), nil
}

// NaturalJoin joins r and other on every attribute name they share. The
// shared attributes of other are left out of the result. With nothing
// shared the result is the cross product.
func (r *Relation) NaturalJoin(other *Relation) (*Relation, error) {
	pkg.DebugLog(fmt.Sprintf("RA> %s.join (%s)", r.Name(), other.Name()))

	plan := joinPlan{}
	attrs := r.schema.Attributes()
	domains := r.schema.Domains()
	for col, name := range other.schema.Attributes() {
		if left_col, ok := r.schema.ColumnOf(name); ok {
			plan.left_cols = append(plan.left_cols, left_col)
			plan.right_cols = append(plan.right_cols, col)
			continue
		}
		plan.keep_cols = append(plan.keep_cols, col)
		attrs = append(attrs, name)
		domains = append(domains, other.schema.Domain(col))
	}
	if err := checkJoinDomains(r, other, plan.left_cols, plan.right_cols); err != nil {
		return nil, err
	}

	s, err := schema.New(r.nextName(), attrs, domains, r.schema.Key())
	if err != nil {
		return nil, err
	}
	return r.derive(s, r.joinRows(other, plan)), nil
}

func checkJoinDomains(r, other *Relation, left_cols, right_cols []int) error {
	for i := range left_cols {
		ld, rd := r.schema.Domain(left_cols[i]), other.schema.Domain(right_cols[i])
		if ld != rd {
			return relerr.Newf(relerr.KindSchemaMismatch,
				"cannot join %s.%s (%s) with %s.%s (%s)",
				r.Name(), r.schema.Attribute(left_cols[i]), ld,
				other.Name(), other.schema.Attribute(right_cols[i]), rd)
		}
	}
	return nil
}

// disambiguate renames every name in right that is taken on the left, or
// by an earlier right name, by appending "2" until it is unique.
func disambiguate(left, right []string) []string {
	taken := pkg.IndexOf(left)
	out := make([]string, len(right))
	for i, name := range right {
		for taken.Has(name) {
			name += "2"
		}
		taken.Set(name, i)
		out[i] = name
	}
	return out
}

func (p joinPlan) matches(l, rt Tuple) bool {
	for i, col := range p.left_cols {
		if !types.Equal(l[col], rt[p.right_cols[i]]) {
			return false
		}
	}
	return true
}

func (p joinPlan) emit(l, rt Tuple) Tuple {
	out := make(Tuple, 0, len(l)+len(p.keep_cols))
	out = append(out, l...)
	for _, col := range p.keep_cols {
		out = append(out, rt[col])
	}
	return out
}

// joinRows runs the configured strategy. Every strategy emits matches in
// left order, then right order.
func (r *Relation) joinRows(other *Relation, plan joinPlan) []Tuple {
	left := r.snapshot()
	switch r.opts.Join {
	case JoinIndex:
		if rows, ok := indexJoin(left, other, plan); ok {
			return rows
		}
		pkg.DebugLog("RA> index join not applicable to", other.Name(), "; using hash join")
		return hashJoin(left, other.snapshot(), plan)
	case JoinHash:
		return hashJoin(left, other.snapshot(), plan)
	default:
		return nestedLoopJoin(left, other.snapshot(), plan)
	}
}

func nestedLoopJoin(left, right []Tuple, plan joinPlan) []Tuple {
	rows := []Tuple{}
	for _, l := range left {
		for _, rt := range right {
			if plan.matches(l, rt) {
				rows = append(rows, plan.emit(l, rt))
			}
		}
	}
	return rows
}

func hashJoin(left, right []Tuple, plan joinPlan) []Tuple {
	buckets := make(map[uint64][]Tuple, len(right))
	for _, rt := range right {
		h := index.KeyOf(rt, plan.right_cols).Hash()
		buckets[h] = append(buckets[h], rt)
	}

	rows := []Tuple{}
	for _, l := range left {
		for _, rt := range buckets[index.KeyOf(l, plan.left_cols).Hash()] {
			if plan.matches(l, rt) {
				rows = append(rows, plan.emit(l, rt))
			}
		}
	}
	return rows
}

// indexJoin probes the key index of other. It only applies when the right
// attributes are exactly the key of other and the index holds one entry
// per tuple, so each left tuple has at most one partner.
func indexJoin(left []Tuple, other *Relation, plan joinPlan) (rows []Tuple, ok bool) {
	if other.index.Kind() == index.KindNone || !slices.Equal(plan.right_cols, other.key_columns) {
		return nil, false
	}
	pkg.RLockWrap(other, func() {
		if other.index.Len() != len(other.tuples) {
			return
		}
		ok = true
		rows = []Tuple{}
		for _, l := range left {
			if rt, found := other.index.Get(index.KeyOf(l, plan.left_cols)); found && plan.matches(l, rt) {
				rows = append(rows, plan.emit(l, rt))
			}
		}
	})
	return rows, ok
}
