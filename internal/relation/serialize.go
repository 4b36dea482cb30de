package relation

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/golang/snappy"
	"github.com/tobsdb/reldb/internal/index"
	"github.com/tobsdb/reldb/internal/schema"
	"github.com/tobsdb/reldb/internal/types"
)

// record is the durable form of a relation. The key index is not stored;
// it is rebuilt from Tuples on load.
type record struct {
	Name       string
	Attributes []string
	Domains    []types.Domain
	Key        []string
	Index      index.Kind
	Tuples     []Tuple
}

// Serialize encodes the schema and tuples of r, in insertion order, as a
// snappy compressed gob record.
func Serialize(r *Relation) ([]byte, error) {
	types.GobRegisterTypes()

	rec := record{
		Name:       r.Name(),
		Attributes: r.schema.Attributes(),
		Domains:    r.schema.Domains(),
		Key:        r.schema.Key(),
		Index:      r.IndexKind(),
		Tuples:     r.snapshot(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to encode relation %s: %w", rec.Name, err)
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

// Deserialize rebuilds a relation written by Serialize. When opts.Index is
// empty the index kind of the serialized relation is used.
func Deserialize(data []byte, opts Options) (*Relation, error) {
	types.GobRegisterTypes()

	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress relation: %w", err)
	}

	var rec record
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode relation: %w", err)
	}

	s, err := schema.New(rec.Name, rec.Attributes, rec.Domains, rec.Key)
	if err != nil {
		return nil, err
	}
	if opts.Index == "" {
		opts.Index = rec.Index
	}
	return NewWithTuples(s, rec.Tuples, opts)
}
