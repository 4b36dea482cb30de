package index

import (
	"github.com/tobsdb/reldb/internal/types"
	sorted "github.com/tobshub/go-sortedmap"
)

// TreeIndex is an ordered map from encoded key to entry, kept sorted by
// CompositeKey.Compare.
type TreeIndex struct {
	m *sorted.SortedMap[string, entry]
}

func treeIndexComparisonFunc(a, b entry) bool {
	return a.key.Compare(b.key) < 0
}

func NewTreeIndex() *TreeIndex {
	return &TreeIndex{sorted.New[string, entry](0, treeIndexComparisonFunc)}
}

func (idx *TreeIndex) Kind() Kind { return KindTree }

func (idx *TreeIndex) Get(key CompositeKey) (types.Tuple, bool) {
	e, ok := idx.m.Get(key.Encode())
	if !ok {
		return nil, false
	}
	return e.tuple, true
}

func (idx *TreeIndex) Put(key CompositeKey, t types.Tuple) bool {
	enc := key.Encode()
	e := entry{key, t}
	if idx.m.Insert(enc, e) {
		return false
	}
	idx.m.Replace(enc, e)
	return true
}

func (idx *TreeIndex) Ascend(fn func(key CompositeKey, t types.Tuple) bool) {
	if idx.m.Len() == 0 {
		return
	}
	iterCh, err := idx.m.IterCh()
	if err != nil {
		return
	}
	defer iterCh.Close()

	for rec := range iterCh.Records() {
		if !fn(rec.Val.key, rec.Val.tuple) {
			return
		}
	}
}

func (idx *TreeIndex) Len() int { return idx.m.Len() }
