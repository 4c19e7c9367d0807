package hnsw

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyVector is returned when inserting or searching an empty vector.
	ErrEmptyVector = errors.New("hnsw: vector cannot be empty")
	// ErrCorrupted is wrapped by every structural validation failure.
	ErrCorrupted = errors.New("hnsw: graph invariant violated")
)

// ErrDimensionMismatch is returned when a vector does not match the graph's
// dimension, which is fixed by the first insert.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("hnsw: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// InvariantError describes a structural defect found by Validate.
type InvariantError struct {
	ID     uint32
	Layer  int
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("hnsw: node %d layer %d: %s", e.ID, e.Layer, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrCorrupted
}

// SearchResult is a key with its distance to the query.
type SearchResult struct {
	Key      string
	Distance float32
}

// InsertMethod selects how a node chooses its links.
type InsertMethod int

const (
	// LinkNearest keeps the closest candidates up to the layer capacity.
	LinkNearest InsertMethod = iota
	// LinkDiverse applies the relative neighborhood heuristic without
	// filling up to capacity.
	LinkDiverse
)

func (m InsertMethod) String() string {
	switch m {
	case LinkNearest:
		return "link_nearest"
	case LinkDiverse:
		return "link_diverse"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseInsertMethod maps a symbolic name to an InsertMethod.
func ParseInsertMethod(name string) (InsertMethod, bool) {
	switch name {
	case "link_nearest":
		return LinkNearest, true
	case "link_diverse":
		return LinkDiverse, true
	default:
		return 0, false
	}
}

// RemoveMethod selects how the graph repairs itself when a node is removed.
type RemoveMethod int

const (
	// NoLink drops incoming links without replacement.
	NoLink RemoveMethod = iota
	// CompensateIncomingLinks re-selects links for every node that pointed
	// at the removed node.
	CompensateIncomingLinks
)

func (m RemoveMethod) String() string {
	switch m {
	case NoLink:
		return "no_link"
	case CompensateIncomingLinks:
		return "compensate_incoming_links"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseRemoveMethod maps a symbolic name to a RemoveMethod.
func ParseRemoveMethod(name string) (RemoveMethod, bool) {
	switch name {
	case "no_link":
		return NoLink, true
	case "compensate_incoming_links":
		return CompensateIncomingLinks, true
	default:
		return 0, false
	}
}

// LevelStats summarizes one layer of the graph.
type LevelStats struct {
	Level    int     `json:"level"`
	Nodes    int     `json:"nodes"`
	Links    int     `json:"links"`
	AvgLinks float64 `json:"avg_links"`
}

// Stats is a snapshot of the graph shape.
type Stats struct {
	Nodes      int          `json:"nodes"`
	Dimension  int          `json:"dimension"`
	FreeIDs    uint64       `json:"free_ids"`
	MaxLevel   int          `json:"max_level"`
	EntryPoint string       `json:"entry_point"`
	Levels     []LevelStats `json:"levels"`
}
