package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("hello world, this is a test blob for vecbench")
	require.NoError(t, store.Put(ctx, "sets/data-001.txt", data))

	_, err := os.Stat(filepath.Join(tmpDir, "sets", "data-001.txt"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "sets/data-001.txt")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	all, err := io.ReadAll(NewReader(blob))
	require.NoError(t, err)
	assert.Equal(t, data, all)
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "missing.bin")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_CanceledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Open(ctx, "any")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_List(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	for _, name := range []string{"sift/base.fvecs", "sift/query.fvecs", "glove.txt"} {
		require.NoError(t, store.Put(ctx, name, []byte("x")))
	}
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "sift", "partial.fvecs.tmp"), []byte("x"), 0o644))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"glove.txt", "sift/base.fvecs", "sift/query.fvecs"}, names)

	names, err = store.List(ctx, "sift/")
	require.NoError(t, err)
	assert.Equal(t, []string{"sift/base.fvecs", "sift/query.fvecs"}, names)

	names, err = store.List(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = NewLocalStore(filepath.Join(tmpDir, "missing")).List(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	original := []byte("abcdef")
	require.NoError(t, store.Put(ctx, "a/1", original))
	require.NoError(t, store.Put(ctx, "a/2", []byte("x")))
	require.NoError(t, store.Put(ctx, "b/1", []byte("y")))

	// Put copies its input.
	original[0] = 'z'

	blob, err := store.Open(ctx, "a/1")
	require.NoError(t, err)
	defer blob.Close()

	all, err := io.ReadAll(NewReader(blob))
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(all))

	_, err = store.Open(ctx, "a/3")
	assert.ErrorIs(t, err, ErrNotFound)
}

// plainBlob hides Mappable so NewReader takes the buffered path.
type plainBlob struct {
	r *bytes.Reader
}

func (b plainBlob) ReadAt(p []byte, off int64) (int, error) { return b.r.ReadAt(p, off) }
func (b plainBlob) Close() error                            { return nil }
func (b plainBlob) Size() int64                             { return b.r.Size() }

func TestNewReader_Buffered(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"small", 7},
		{"larger than buffer", DefaultReadBufferSize + 123},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{0xAB}, tt.size)
			got, err := io.ReadAll(NewReader(plainBlob{r: bytes.NewReader(data)}))
			require.NoError(t, err)
			assert.Len(t, got, tt.size)
		})
	}
}
