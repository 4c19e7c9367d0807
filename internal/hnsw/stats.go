package hnsw

// Stats returns a snapshot of the graph shape.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := Stats{
		Nodes:     len(g.keys),
		Dimension: g.dim,
		FreeIDs:   g.free.GetCardinality(),
		MaxLevel:  g.maxLevel,
	}
	if g.hasEntry {
		st.EntryPoint = g.nodes[g.entry].key
	}
	if len(g.keys) == 0 {
		return st
	}

	st.Levels = make([]LevelStats, g.maxLevel+1)
	for l := range st.Levels {
		st.Levels[l].Level = l
	}

	for _, n := range g.nodes {
		if n == nil {
			continue
		}
		for l := 0; l <= n.level; l++ {
			st.Levels[l].Nodes++
			st.Levels[l].Links += len(n.links[l])
		}
	}

	for l := range st.Levels {
		if st.Levels[l].Nodes > 0 {
			st.Levels[l].AvgLinks = float64(st.Levels[l].Links) / float64(st.Levels[l].Nodes)
		}
	}

	return st
}
