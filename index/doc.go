// Package index defines the uniform index surface the benchmark drives and
// the factory that builds an index from a symbolic configuration.
//
// Each variant binds a distance metric to the dataset preprocessing that
// metric needs, so a caller cannot pair the wrong normalization with a
// metric:
//
//	idx, err := index.New(index.Config{
//	    Metric:       "cosine",
//	    MaxLinks:     index.Int(16),
//	    InsertMethod: index.String("link_diverse"),
//	})
//	if err != nil {
//	    return err // errors.Is(err, index.ErrInvalidConfig)
//	}
//	idx.PrepareDataset(ds) // normalizes for cosine, no-op for dot_product
//
// Index implementations are not required to be safe for concurrent use.
package index
