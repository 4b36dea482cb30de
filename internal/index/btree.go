package index

import (
	"github.com/emirpasic/gods/trees/btree"
	"github.com/tobsdb/reldb/internal/types"
)

const DefaultBTreeOrder = 32

type BTreeIndex struct {
	tree *btree.Tree
}

func compareKeys(a, b interface{}) int {
	return a.(CompositeKey).Compare(b.(CompositeKey))
}

func NewBTreeIndex(order int) *BTreeIndex {
	if order < 3 {
		order = DefaultBTreeOrder
	}
	return &BTreeIndex{btree.NewWith(order, compareKeys)}
}

func (idx *BTreeIndex) Kind() Kind { return KindBTree }

func (idx *BTreeIndex) Get(key CompositeKey) (types.Tuple, bool) {
	v, found := idx.tree.Get(key)
	if !found {
		return nil, false
	}
	return v.(types.Tuple), true
}

func (idx *BTreeIndex) Put(key CompositeKey, t types.Tuple) bool {
	_, found := idx.tree.Get(key)
	idx.tree.Put(key, t)
	return found
}

func (idx *BTreeIndex) Ascend(fn func(key CompositeKey, t types.Tuple) bool) {
	it := idx.tree.Iterator()
	for it.Next() {
		if !fn(it.Key().(CompositeKey), it.Value().(types.Tuple)) {
			return
		}
	}
}

func (idx *BTreeIndex) Len() int { return idx.tree.Size() }
