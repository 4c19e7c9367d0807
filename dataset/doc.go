// Package dataset holds the vectors a benchmark run is built from and the
// preparation steps applied to them before an index sees them.
//
// A run typically loads a dataset, lets the index variant preprocess it,
// shuffles it with a seeded generator and splits off a control set:
//
//	ds, err := dataset.Load(ctx, store, "sift-10k.fvecs.zst")
//	idx.PrepareDataset(ds)
//	dataset.Shuffle(ds, rand.New(rand.NewSource(seed)))
//	main, control := dataset.Split(ds, dataset.ControlSize(ds, nil))
//
// The main set populates the index; the control set is queried against it.
// None of the preparation functions are safe for concurrent use on the same
// dataset.
package dataset
