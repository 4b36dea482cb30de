package index

import (
	"slices"

	"github.com/tobsdb/reldb/internal/types"
)

// HashIndex buckets entries by the murmur3 hash of their key. Lookups are
// O(1); Ascend sorts a copy of the entries on every call.
type HashIndex struct {
	buckets map[uint64][]entry
	size    int
}

func NewHashIndex() *HashIndex {
	return &HashIndex{buckets: map[uint64][]entry{}}
}

func (idx *HashIndex) Kind() Kind { return KindHash }

func (idx *HashIndex) Get(key CompositeKey) (types.Tuple, bool) {
	for _, e := range idx.buckets[key.Hash()] {
		if e.key.Equal(key) {
			return e.tuple, true
		}
	}
	return nil, false
}

func (idx *HashIndex) Put(key CompositeKey, t types.Tuple) bool {
	h := key.Hash()
	bucket := idx.buckets[h]
	for i, e := range bucket {
		if e.key.Equal(key) {
			bucket[i].tuple = t
			return true
		}
	}
	idx.buckets[h] = append(bucket, entry{key, t})
	idx.size++
	return false
}

func (idx *HashIndex) Ascend(fn func(key CompositeKey, t types.Tuple) bool) {
	entries := make([]entry, 0, idx.size)
	for _, bucket := range idx.buckets {
		entries = append(entries, bucket...)
	}
	slices.SortFunc(entries, func(a, b entry) int { return a.key.Compare(b.key) })

	for _, e := range entries {
		if !fn(e.key, e.tuple) {
			return
		}
	}
}

func (idx *HashIndex) Len() int { return idx.size }
