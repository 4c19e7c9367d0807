package hnsw

import (
	"cmp"
	"slices"
)

// node is a graph vertex. links[l] holds outgoing links on layer l and
// incoming[l] the ids of nodes linking to it on layer l.
type node struct {
	key      string
	vector   []float32
	level    int
	links    [][]uint32
	incoming []map[uint32]struct{}
}

func newNode(key string, vector []float32, level int) *node {
	n := &node{
		key:      key,
		vector:   vector,
		level:    level,
		links:    make([][]uint32, level+1),
		incoming: make([]map[uint32]struct{}, level+1),
	}
	for l := range n.incoming {
		n.incoming[l] = make(map[uint32]struct{})
	}
	return n
}

// incomingSorted returns the incoming ids of layer l in ascending order.
func (n *node) incomingSorted(layer int) []uint32 {
	ids := make([]uint32, 0, len(n.incoming[layer]))
	for id := range n.incoming[layer] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// sortItems orders by distance, then id, so selection is deterministic.
func sortItems(items []queueItem) {
	slices.SortFunc(items, func(a, b queueItem) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Node, b.Node)
	})
}

func itemIDs(items []queueItem) []uint32 {
	ids := make([]uint32, len(items))
	for i, it := range items {
		ids[i] = it.Node
	}
	return ids
}
