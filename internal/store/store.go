// Package store persists serialized relations as named blobs.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tobsdb/reldb/internal/relation"
	"github.com/tobsdb/reldb/pkg"
)

// Blobs are stored under the relation name with this extension.
const BLOB_EXT = ".dbf"

var ErrBlobNotFound = errors.New("blob not found")

type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) error
	// Get returns an error wrapping ErrBlobNotFound when nothing is stored
	// under name.
	Get(ctx context.Context, name string) ([]byte, error)
	Exists(ctx context.Context, name string) (bool, error)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid blob name %q", name)
	}
	return nil
}

// Save serializes r and stores it under its name.
func Save(ctx context.Context, bs BlobStore, r *relation.Relation) error {
	pkg.DebugLog("writing relation", r.Name())

	data, err := relation.Serialize(r)
	if err != nil {
		return err
	}
	if err := bs.Put(ctx, r.Name(), data); err != nil {
		return fmt.Errorf("failed to save relation %s: %w", r.Name(), err)
	}
	pkg.InfoLog("saved relation", r.Name(), len(data), "bytes")
	return nil
}

// Load reads the relation stored under name.
func Load(ctx context.Context, bs BlobStore, name string, opts relation.Options) (*relation.Relation, error) {
	pkg.DebugLog("reading relation", name)

	data, err := bs.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load relation %s: %w", name, err)
	}
	return relation.Deserialize(data, opts)
}
