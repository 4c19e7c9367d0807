package hnsw

import "fmt"

// Check reports whether the graph passes Validate.
func (g *Graph) Check() bool {
	return g.Validate() == nil
}

// Validate walks the whole graph and returns the first structural defect.
// Errors wrap ErrCorrupted.
func (g *Graph) Validate() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	live := 0
	topLevel := -1
	for i, n := range g.nodes {
		id := uint32(i)

		if n == nil {
			if !g.free.Contains(id) {
				return &InvariantError{ID: id, Reason: "empty slot is not in the free set"}
			}
			continue
		}
		live++
		topLevel = max(topLevel, n.level)

		if g.free.Contains(id) {
			return &InvariantError{ID: id, Reason: "live node is in the free set"}
		}
		if mapped, ok := g.keys[n.key]; !ok || mapped != id {
			return &InvariantError{ID: id, Reason: fmt.Sprintf("key %q does not map back to the node", n.key)}
		}
		if len(n.vector) != g.dim {
			return &InvariantError{ID: id, Reason: fmt.Sprintf("vector has dimension %d, want %d", len(n.vector), g.dim)}
		}
		if len(n.links) != n.level+1 || len(n.incoming) != n.level+1 {
			return &InvariantError{ID: id, Reason: "layer count does not match level"}
		}

		for l := 0; l <= n.level; l++ {
			if err := g.validateLayer(id, n, l); err != nil {
				return err
			}
		}
	}

	if live != len(g.keys) {
		return fmt.Errorf("%w: %d live nodes but %d keys", ErrCorrupted, live, len(g.keys))
	}
	if g.free.GetCardinality() != uint64(len(g.nodes)-live) {
		return fmt.Errorf("%w: free set holds %d ids, want %d", ErrCorrupted, g.free.GetCardinality(), len(g.nodes)-live)
	}

	if live == 0 {
		if g.hasEntry {
			return fmt.Errorf("%w: empty graph has an entry point", ErrCorrupted)
		}
		return nil
	}

	if !g.hasEntry || int(g.entry) >= len(g.nodes) || g.nodes[g.entry] == nil {
		return fmt.Errorf("%w: entry point is missing", ErrCorrupted)
	}
	if g.nodes[g.entry].level != g.maxLevel || g.maxLevel != topLevel {
		return &InvariantError{ID: g.entry, Layer: g.maxLevel, Reason: fmt.Sprintf("entry point is not on the top level %d", topLevel)}
	}

	return nil
}

func (g *Graph) validateLayer(id uint32, n *node, layer int) error {
	links := n.links[layer]
	if len(links) > g.capacity(layer) {
		return &InvariantError{ID: id, Layer: layer, Reason: fmt.Sprintf("%d links exceed capacity %d", len(links), g.capacity(layer))}
	}

	seen := make(map[uint32]struct{}, len(links))
	for _, t := range links {
		if t == id {
			return &InvariantError{ID: id, Layer: layer, Reason: "self link"}
		}
		if _, dup := seen[t]; dup {
			return &InvariantError{ID: id, Layer: layer, Reason: fmt.Sprintf("duplicate link to %d", t)}
		}
		seen[t] = struct{}{}

		if int(t) >= len(g.nodes) || g.nodes[t] == nil {
			return &InvariantError{ID: id, Layer: layer, Reason: fmt.Sprintf("link to removed node %d", t)}
		}
		target := g.nodes[t]
		if target.level < layer {
			return &InvariantError{ID: id, Layer: layer, Reason: fmt.Sprintf("link to node %d below its level", t)}
		}
		if _, ok := target.incoming[layer][id]; !ok {
			return &InvariantError{ID: id, Layer: layer, Reason: fmt.Sprintf("link to %d missing from its incoming set", t)}
		}
	}

	for s := range n.incoming[layer] {
		if int(s) >= len(g.nodes) || g.nodes[s] == nil {
			return &InvariantError{ID: id, Layer: layer, Reason: fmt.Sprintf("incoming link from removed node %d", s)}
		}
		source := g.nodes[s]
		if source.level < layer || !contains(source.links[layer], id) {
			return &InvariantError{ID: id, Layer: layer, Reason: fmt.Sprintf("stale incoming link from %d", s)}
		}
	}

	return nil
}

func contains(ids []uint32, id uint32) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
