package relation

import "github.com/tobsdb/reldb/internal/index"

type DuplicateKeyPolicy int

const (
	// DuplicateKeysOverwrite appends the tuple, replaces the index entry of
	// the earlier tuple with the same key and reports it through a warning
	// log line and Options.OnDuplicateKey.
	DuplicateKeysOverwrite DuplicateKeyPolicy = iota
	// DuplicateKeysReject refuses the insert with a DuplicateKeyError.
	DuplicateKeysReject
)

type JoinStrategy int

const (
	JoinNestedLoop JoinStrategy = iota
	JoinHash
	// JoinIndex probes the right relation's key index when the right join
	// attributes are exactly its primary key, and hashes otherwise.
	JoinIndex
)

func (s JoinStrategy) String() string {
	switch s {
	case JoinNestedLoop:
		return "nested-loop"
	case JoinHash:
		return "hash"
	case JoinIndex:
		return "index"
	}
	return "unknown"
}

// Options are fixed when a relation is built. Relations derived by an
// operator inherit the options of the receiver, including its Namer.
type Options struct {
	Index          index.Kind
	Namer          Namer
	Join           JoinStrategy
	DuplicateKeys  DuplicateKeyPolicy
	OnDuplicateKey func(r *Relation, key index.CompositeKey)
}

func DefaultOptions() Options {
	return Options{
		Index:         index.KindTree,
		Namer:         NewCounterNamer(),
		Join:          JoinNestedLoop,
		DuplicateKeys: DuplicateKeysOverwrite,
	}
}

func (o Options) normalize() Options {
	if o.Index == "" {
		o.Index = index.KindTree
	}
	if o.Namer == nil {
		o.Namer = NewCounterNamer()
	}
	return o
}
