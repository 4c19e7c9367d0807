package dataset

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/vecbench/blobstore"
)

// Decode reads a compressed, encoded dataset from r.
func Decode(r io.Reader, f Format, c Compression) (Dataset, error) {
	dr, err := NewDecompressor(r, c)
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	return Read(dr, f)
}

// Encode writes ds to w using format f under compression c.
func Encode(w io.Writer, ds Dataset, f Format, c Compression) error {
	cw, err := NewCompressor(w, c)
	if err != nil {
		return err
	}

	if err := Write(cw, ds, f); err != nil {
		_ = cw.Close()
		return err
	}

	return cw.Close()
}

// Load opens name in store and decodes it. Format and compression are
// inferred with DetectEncoding. The result is validated for consistent
// dimensions.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (Dataset, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", name, err)
	}
	defer blob.Close()

	f, c := DetectEncoding(name)

	ds, err := Decode(blobstore.NewReader(blob), f, c)
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s (%v, %v): %w", name, f, c, err)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validate dataset %s: %w", name, err)
	}

	return ds, nil
}
