// Package index maps composite primary keys to tuples. Backends are
// chosen when a relation is built and are interchangeable behind KeyIndex.
package index

import (
	"strings"

	"github.com/spaolacci/murmur3"
	"github.com/tobsdb/reldb/internal/relerr"
	"github.com/tobsdb/reldb/internal/types"
)

// CompositeKey is the sequence of a tuple's values at its key positions.
type CompositeKey []types.Value

// KeyOf extracts the values of t at cols.
func KeyOf(t types.Tuple, cols []int) CompositeKey {
	k := make(CompositeKey, len(cols))
	for i, col := range cols {
		k[i] = t[col]
	}
	return k
}

// NewKey builds a key from loose Go values, coercing each to its domain.
func NewKey(domains []types.Domain, values ...any) (CompositeKey, error) {
	if len(values) != len(domains) {
		return nil, relerr.Newf(relerr.KindTypeMismatch,
			"key has %d values, expected %d", len(values), len(domains))
	}
	k := make(CompositeKey, len(values))
	for i, v := range values {
		tv, err := types.Coerce(domains[i], v)
		if err != nil {
			return nil, err
		}
		k[i] = tv
	}
	return k, nil
}

func (k CompositeKey) Equal(o CompositeKey) bool {
	return types.TupleEqual(k, o)
}

// Compare orders keys lexicographically; a strict prefix sorts first.
func (k CompositeKey) Compare(o CompositeKey) int {
	for i := 0; i < len(k) && i < len(o); i++ {
		if c := types.Compare(k[i], o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(o):
		return -1
	case len(k) > len(o):
		return 1
	}
	return 0
}

func (k CompositeKey) bytes() []byte {
	var buf []byte
	for _, v := range k {
		buf = types.AppendBinary(buf, v)
	}
	return buf
}

// Encode returns a string that is equal for equal keys only. It is used
// as a Go map key.
func (k CompositeKey) Encode() string { return string(k.bytes()) }

func (k CompositeKey) Hash() uint64 { return murmur3.Sum64(k.bytes()) }

func (k CompositeKey) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		if v == nil {
			parts[i] = "null"
		} else {
			parts[i] = v.String()
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
