package relation

import (
	"github.com/spaolacci/murmur3"
	"github.com/tobsdb/reldb/internal/types"
)

// tupleSet holds tuples by full value equality. Buckets are keyed by the
// murmur3 hash of the tuple encoding; collisions are resolved by
// comparing values.
type tupleSet struct {
	buckets map[uint64][]Tuple
}

func newTupleSet(size int) *tupleSet {
	return &tupleSet{buckets: make(map[uint64][]Tuple, size)}
}

func hashTuple(t Tuple) uint64 {
	var buf []byte
	for _, v := range t {
		buf = types.AppendBinary(buf, v)
	}
	return murmur3.Sum64(buf)
}

func (s *tupleSet) Contains(t Tuple) bool {
	for _, u := range s.buckets[hashTuple(t)] {
		if types.TupleEqual(t, u) {
			return true
		}
	}
	return false
}

// Add reports whether t was not in the set yet.
func (s *tupleSet) Add(t Tuple) bool {
	h := hashTuple(t)
	for _, u := range s.buckets[h] {
		if types.TupleEqual(t, u) {
			return false
		}
	}
	s.buckets[h] = append(s.buckets[h], t)
	return true
}

func setOf(rows []Tuple) *tupleSet {
	s := newTupleSet(len(rows))
	for _, t := range rows {
		s.Add(t)
	}
	return s
}
