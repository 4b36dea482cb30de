package index

import (
	"fmt"

	"github.com/tobsdb/reldb/internal/types"
)

type Kind string

const (
	KindNone  Kind = "none"
	KindTree  Kind = "tree"
	KindBTree Kind = "btree"
	KindHash  Kind = "hash"
)

var VALID_KINDS = []Kind{KindNone, KindTree, KindBTree, KindHash}

type KeyIndex interface {
	Kind() Kind
	Get(key CompositeKey) (types.Tuple, bool)
	// Put stores t under key and reports whether an earlier entry was
	// replaced.
	Put(key CompositeKey, t types.Tuple) bool
	// Ascend calls fn in key order until fn returns false.
	Ascend(fn func(key CompositeKey, t types.Tuple) bool)
	Len() int
}

func New(kind Kind) (KeyIndex, error) {
	switch kind {
	case KindNone:
		return NoIndex{}, nil
	case KindTree, "":
		return NewTreeIndex(), nil
	case KindBTree:
		return NewBTreeIndex(DefaultBTreeOrder), nil
	case KindHash:
		return NewHashIndex(), nil
	}
	return nil, fmt.Errorf("unknown index kind %q", kind)
}

func ParseKind(s string) (Kind, error) {
	for _, k := range VALID_KINDS {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown index kind %q", s)
}

// NoIndex keeps nothing. Relations using it scan their tuples instead.
type NoIndex struct{}

func (NoIndex) Kind() Kind                                  { return KindNone }
func (NoIndex) Get(CompositeKey) (types.Tuple, bool)        { return nil, false }
func (NoIndex) Put(CompositeKey, types.Tuple) bool          { return false }
func (NoIndex) Ascend(func(CompositeKey, types.Tuple) bool) {}
func (NoIndex) Len() int                                    { return 0 }

type entry struct {
	key   CompositeKey
	tuple types.Tuple
}
