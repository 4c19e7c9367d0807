package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/vecbench/blobstore"
	"github.com/hupe1980/vecbench/blobstore/minio"
	"github.com/hupe1980/vecbench/blobstore/s3"
	"github.com/hupe1980/vecbench/dataset"
)

// Environment variables read for minio:// locations.
const (
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
	envMinioSecure    = "MINIO_SECURE"
)

const (
	schemeLocal = "file"
	schemeS3    = "s3"
	schemeMinio = "minio"
)

// location is a parsed dataset URI.
type location struct {
	scheme   string
	endpoint string // minio only
	bucket   string // local: directory
	name     string
}

func (l location) String() string {
	switch l.scheme {
	case schemeS3:
		return "s3://" + l.bucket + "/" + l.name
	case schemeMinio:
		return "minio://" + l.endpoint + "/" + l.bucket + "/" + l.name
	default:
		return filepath.Join(l.bucket, l.name)
	}
}

// parseLocation accepts a local path, s3://bucket/key or
// minio://endpoint/bucket/key.
func parseLocation(uri string) (location, error) {
	if uri == "" {
		return location{}, errors.New("empty dataset location")
	}

	if !strings.Contains(uri, "://") {
		return location{scheme: schemeLocal, bucket: filepath.Dir(uri), name: filepath.Base(uri)}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return location{}, fmt.Errorf("parse location %q: %w", uri, err)
	}
	p := strings.TrimPrefix(u.Path, "/")

	switch u.Scheme {
	case schemeLocal:
		path := u.Host + u.Path
		if path == "" {
			return location{}, fmt.Errorf("location %q: missing path", uri)
		}
		return location{scheme: schemeLocal, bucket: filepath.Dir(path), name: filepath.Base(path)}, nil
	case schemeS3:
		if u.Host == "" || p == "" {
			return location{}, fmt.Errorf("location %q: want s3://bucket/key", uri)
		}
		return location{scheme: schemeS3, bucket: u.Host, name: p}, nil
	case schemeMinio:
		bucket, key, ok := strings.Cut(p, "/")
		if u.Host == "" || !ok || bucket == "" || key == "" {
			return location{}, fmt.Errorf("location %q: want minio://endpoint/bucket/key", uri)
		}
		return location{scheme: schemeMinio, endpoint: u.Host, bucket: bucket, name: key}, nil
	default:
		return location{}, fmt.Errorf("location %q: unsupported scheme %q", uri, u.Scheme)
	}
}

// parsePrefix parses a listing target: a local directory,
// s3://bucket[/prefix] or minio://endpoint/bucket[/prefix]. The returned
// name is the prefix and may be empty.
func parsePrefix(uri string) (location, error) {
	if uri == "" {
		return location{}, errors.New("empty dataset location")
	}

	if !strings.Contains(uri, "://") {
		return location{scheme: schemeLocal, bucket: filepath.Clean(uri)}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return location{}, fmt.Errorf("parse location %q: %w", uri, err)
	}
	p := strings.TrimPrefix(u.Path, "/")

	switch u.Scheme {
	case schemeLocal:
		dir := u.Host + u.Path
		if dir == "" {
			return location{}, fmt.Errorf("location %q: missing path", uri)
		}
		return location{scheme: schemeLocal, bucket: filepath.Clean(dir)}, nil
	case schemeS3:
		if u.Host == "" {
			return location{}, fmt.Errorf("location %q: want s3://bucket[/prefix]", uri)
		}
		return location{scheme: schemeS3, bucket: u.Host, name: p}, nil
	case schemeMinio:
		bucket, prefix, _ := strings.Cut(p, "/")
		if u.Host == "" || bucket == "" {
			return location{}, fmt.Errorf("location %q: want minio://endpoint/bucket[/prefix]", uri)
		}
		return location{scheme: schemeMinio, endpoint: u.Host, bucket: bucket, name: prefix}, nil
	default:
		return location{}, fmt.Errorf("location %q: unsupported scheme %q", uri, u.Scheme)
	}
}

// store is a blob store that also accepts writes and lists its names.
type store interface {
	blobstore.BlobStore
	Put(ctx context.Context, name string, data []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
}

var (
	_ store = (*blobstore.LocalStore)(nil)
	_ store = (*s3.Store)(nil)
	_ store = (*minio.Store)(nil)
)

func openStore(ctx context.Context, loc location) (store, error) {
	switch loc.scheme {
	case schemeS3:
		return s3.New(ctx, loc.bucket)
	case schemeMinio:
		return minio.New(loc.endpoint, loc.bucket,
			minio.WithCredentials(os.Getenv(envMinioAccessKey), os.Getenv(envMinioSecretKey)),
			minio.WithSecure(os.Getenv(envMinioSecure) == "true"),
		)
	default:
		return blobstore.NewLocalStore(loc.bucket), nil
	}
}

// loadDataset reads the dataset at uri. S3 objects are fetched whole with
// parallel ranged downloads; other stores are streamed.
func loadDataset(ctx context.Context, uri string) (dataset.Dataset, error) {
	loc, err := parseLocation(uri)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, loc)
	if err != nil {
		return nil, err
	}

	s3Store, ok := st.(*s3.Store)
	if !ok {
		return dataset.Load(ctx, st, loc.name)
	}

	data, err := s3Store.ReadAll(ctx, loc.name)
	if err != nil {
		return nil, fmt.Errorf("download dataset %s: %w", loc, err)
	}

	f, c := dataset.DetectEncoding(loc.name)
	ds, err := dataset.Decode(bytes.NewReader(data), f, c)
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s (%v, %v): %w", loc, f, c, err)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("validate dataset %s: %w", loc, err)
	}
	return ds, nil
}

// saveDataset encodes ds with the encoding implied by the name at uri and
// stores it there.
func saveDataset(ctx context.Context, uri string, ds dataset.Dataset) (int, error) {
	loc, err := parseLocation(uri)
	if err != nil {
		return 0, err
	}

	st, err := openStore(ctx, loc)
	if err != nil {
		return 0, err
	}

	f, c := dataset.DetectEncoding(loc.name)

	var buf bytes.Buffer
	if err := dataset.Encode(&buf, ds, f, c); err != nil {
		return 0, fmt.Errorf("encode dataset %s: %w", loc, err)
	}

	if err := st.Put(ctx, loc.name, buf.Bytes()); err != nil {
		return 0, fmt.Errorf("store dataset %s: %w", loc, err)
	}
	return buf.Len(), nil
}

// listDatasets returns the location of every blob under the prefix at uri.
func listDatasets(ctx context.Context, uri string) ([]location, error) {
	loc, err := parsePrefix(uri)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, loc)
	if err != nil {
		return nil, err
	}

	names, err := st.List(ctx, loc.name)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", uri, err)
	}

	locs := make([]location, len(names))
	for i, name := range names {
		locs[i] = location{scheme: loc.scheme, endpoint: loc.endpoint, bucket: loc.bucket, name: name}
	}
	return locs, nil
}
