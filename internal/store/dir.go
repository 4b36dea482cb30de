package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirStore keeps each blob in its own file, <dir>/<name>.dbf.
type DirStore struct {
	dir string
}

func NewDirStore(dir string) *DirStore { return &DirStore{dir: dir} }

func (s *DirStore) path(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+BLOB_EXT), nil
}

func (s *DirStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(name)
	if err != nil {
		return err
	}

	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(p, data, 0644)
}

func (s *DirStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, p)
	}
	return data, err
}

func (s *DirStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p, err := s.path(name)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(p)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}
