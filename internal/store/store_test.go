package store_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/tobsdb/reldb/internal/relation"
	"github.com/tobsdb/reldb/internal/schema"
	. "github.com/tobsdb/reldb/internal/store"
	"gotest.tools/assert"
)

// fakeS3 keeps objects in memory and fails like S3 for missing keys.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func newMovie(t *testing.T) *relation.Relation {
	s := schema.MustParse("movie", "title year studioNo", "String Integer Integer", "title year")
	r, err := relation.New(s, relation.DefaultOptions())
	assert.NilError(t, err)
	assert.NilError(t, r.InsertValues("Star_Wars", 1977, 1))
	assert.NilError(t, r.InsertValues("Jaws", 1975, 2))
	return r
}

func testBlobStore(t *testing.T, bs BlobStore) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		ok, err := bs.Exists(ctx, "movie")
		assert.NilError(t, err)
		assert.Assert(t, !ok)

		_, err = bs.Get(ctx, "movie")
		assert.Assert(t, errors.Is(err, ErrBlobNotFound))

		_, err = Load(ctx, bs, "movie", relation.DefaultOptions())
		assert.ErrorContains(t, err, "failed to load relation movie")
		assert.Assert(t, errors.Is(err, ErrBlobNotFound))
	})

	t.Run("save and load", func(t *testing.T) {
		r := newMovie(t)
		assert.NilError(t, Save(ctx, bs, r))

		ok, err := bs.Exists(ctx, "movie")
		assert.NilError(t, err)
		assert.Assert(t, ok)

		loaded, err := Load(ctx, bs, "movie", relation.Options{})
		assert.NilError(t, err)
		assert.Equal(t, loaded.Schema().String(), r.Schema().String())
		assert.DeepEqual(t, loaded.Tuples(), r.Tuples())
	})

	t.Run("overwrite", func(t *testing.T) {
		assert.NilError(t, bs.Put(ctx, "blob", []byte("one")))
		assert.NilError(t, bs.Put(ctx, "blob", []byte("two")))
		data, err := bs.Get(ctx, "blob")
		assert.NilError(t, err)
		assert.DeepEqual(t, data, []byte("two"))
	})

	t.Run("invalid name", func(t *testing.T) {
		err := bs.Put(ctx, "../movie", []byte("x"))
		assert.ErrorContains(t, err, "invalid blob name")
		_, err = bs.Get(ctx, "")
		assert.ErrorContains(t, err, "invalid blob name")
	})
}

func TestDirStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	testBlobStore(t, NewDirStore(dir))

	_, err := os.Stat(filepath.Join(dir, "movie"+BLOB_EXT))
	assert.NilError(t, err)

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewDirStore(dir).Put(ctx, "movie", nil)
		assert.Assert(t, errors.Is(err, context.Canceled))
	})
}

func TestS3Store(t *testing.T) {
	client := newFakeS3()
	testBlobStore(t, NewS3StoreWithClient(client, "bucket", DefaultS3Config()))

	_, ok := client.objects["bucket/relations/movie"+BLOB_EXT]
	assert.Assert(t, ok)
}
