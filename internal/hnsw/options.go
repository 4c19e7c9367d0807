package hnsw

import "github.com/hupe1980/vecbench/distance"

const (
	// DefaultMaxLinks is the default number of links per node on upper layers.
	DefaultMaxLinks = 32

	// DefaultEFConstruction is the default size of the insert candidate list.
	DefaultEFConstruction = 300

	// DefaultEFSearch is the default lower bound of the search candidate list.
	DefaultEFSearch = 64

	// layer0Multiplier scales MaxLinks for layer 0.
	layer0Multiplier = 2

	// minimumMaxLinks keeps the level multiplier finite.
	minimumMaxLinks = 2

	// maxLevelCap bounds the random level of a node.
	maxLevelCap = 16
)

// Options represents the options for configuring the graph.
type Options struct {
	MaxLinks       int
	EFConstruction int
	EFSearch       int
	InsertMethod   InsertMethod
	RemoveMethod   RemoveMethod
	DistanceFunc   distance.Func
	RandomSeed     *int64
}

// DefaultOptions contains the default options for the graph.
var DefaultOptions = Options{
	MaxLinks:       DefaultMaxLinks,
	EFConstruction: DefaultEFConstruction,
	EFSearch:       DefaultEFSearch,
	InsertMethod:   LinkDiverse,
	RemoveMethod:   CompensateIncomingLinks,
	DistanceFunc:   distance.DotProductDistance,
}
