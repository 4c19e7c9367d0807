package hnsw

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/vecbench/distance"
)

// Graph is a string-keyed HNSW graph.
type Graph struct {
	mu sync.RWMutex

	opts      Options
	distFunc  distance.Func
	maxLinks0 int
	levelMult float64
	rng       *rand.Rand
	visitPool sync.Pool

	dim      int
	nodes    []*node
	keys     map[string]uint32
	free     *roaring.Bitmap
	entry    uint32
	hasEntry bool
	maxLevel int
}

// New creates an empty graph.
func New(optFns ...func(o *Options)) *Graph {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxLinks < minimumMaxLinks {
		opts.MaxLinks = minimumMaxLinks
	}
	if opts.EFConstruction < 1 {
		opts.EFConstruction = 1
	}
	if opts.EFSearch < 1 {
		opts.EFSearch = 1
	}
	if opts.DistanceFunc == nil {
		opts.DistanceFunc = distance.DotProductDistance
	}

	seed := time.Now().UnixNano()
	if opts.RandomSeed != nil {
		seed = *opts.RandomSeed
	}

	g := &Graph{
		opts:      opts,
		distFunc:  opts.DistanceFunc,
		maxLinks0: opts.MaxLinks * layer0Multiplier,
		levelMult: 1 / math.Log(float64(opts.MaxLinks)),
		rng:       rand.New(rand.NewSource(seed)),
		keys:      make(map[string]uint32),
		free:      roaring.New(),
	}
	g.visitPool.New = func() any { return &visitMarks{} }

	return g
}

// Options returns the effective options.
func (g *Graph) Options() Options {
	return g.opts
}

// Size returns the number of live keys.
func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.keys)
}

// Insert adds key with vector v. An existing key is replaced.
// The vector is copied.
func (g *Graph) Insert(key string, v []float32) error {
	if len(v) == 0 {
		return ErrEmptyVector
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dim != 0 && len(v) != g.dim {
		return &ErrDimensionMismatch{Expected: g.dim, Actual: len(v)}
	}
	g.dim = len(v)

	if id, ok := g.keys[key]; ok {
		g.remove(id)
	}

	vec := make([]float32, len(v))
	copy(vec, v)

	id := g.allocateID()
	level := g.randomLevel()
	n := newNode(key, vec, level)
	g.nodes[id] = n
	g.keys[key] = id

	if !g.hasEntry {
		g.entry, g.maxLevel, g.hasEntry = id, level, true
		return nil
	}

	visited := g.acquireVisited()
	defer g.releaseVisited(visited)

	eps := []queueItem{{Node: g.entry, Distance: g.distFunc(vec, g.nodes[g.entry].vector)}}
	for l := g.maxLevel; l > level; l-- {
		eps = g.searchLayer(vec, eps, 1, l, visited)
	}

	for l := min(level, g.maxLevel); l >= 0; l-- {
		candidates := g.searchLayer(vec, eps, g.opts.EFConstruction, l, visited)
		g.connect(id, l, candidates)
		eps = candidates
	}

	if level > g.maxLevel {
		g.entry, g.maxLevel = id, level
	}

	return nil
}

// Remove deletes key and repairs the links that pointed at it according to
// the configured RemoveMethod. It reports whether the key was present.
func (g *Graph) Remove(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, ok := g.keys[key]
	if !ok {
		return false
	}

	g.remove(id)
	return true
}

// Search returns up to k keys closest to q, closest first.
func (g *Graph) Search(q []float32, k int) ([]SearchResult, error) {
	if len(q) == 0 {
		return nil, ErrEmptyVector
	}
	if k <= 0 {
		return []SearchResult{}, nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.hasEntry {
		return []SearchResult{}, nil
	}
	if len(q) != g.dim {
		return nil, &ErrDimensionMismatch{Expected: g.dim, Actual: len(q)}
	}

	visited := g.acquireVisited()
	defer g.releaseVisited(visited)

	eps := []queueItem{{Node: g.entry, Distance: g.distFunc(q, g.nodes[g.entry].vector)}}
	for l := g.maxLevel; l > 0; l-- {
		eps = g.searchLayer(q, eps, 1, l, visited)
	}

	found := g.searchLayer(q, eps, max(k, g.opts.EFSearch), 0, visited)
	if len(found) > k {
		found = found[:k]
	}

	results := make([]SearchResult, len(found))
	for i, it := range found {
		results[i] = SearchResult{Key: g.nodes[it.Node].key, Distance: it.Distance}
	}

	return results, nil
}

func (g *Graph) capacity(layer int) int {
	if layer == 0 {
		return g.maxLinks0
	}
	return g.opts.MaxLinks
}

func (g *Graph) randomLevel() int {
	// 1-Float64 is in (0, 1], keeping the logarithm finite.
	level := int(math.Floor(-math.Log(1-g.rng.Float64()) * g.levelMult))
	return min(level, maxLevelCap)
}

func (g *Graph) allocateID() uint32 {
	if !g.free.IsEmpty() {
		id := g.free.Minimum()
		g.free.Remove(id)
		return id
	}
	g.nodes = append(g.nodes, nil)
	return uint32(len(g.nodes) - 1)
}

func (g *Graph) acquireVisited() *visitMarks {
	v := g.visitPool.Get().(*visitMarks)
	v.begin(len(g.nodes))
	return v
}

func (g *Graph) releaseVisited(v *visitMarks) {
	g.visitPool.Put(v)
}

// searchLayer runs a best-first search on one layer starting from entries
// and returns at most ef items, closest first.
func (g *Graph) searchLayer(q []float32, entries []queueItem, ef, layer int, visited *visitMarks) []queueItem {
	visited.begin(len(g.nodes))

	candidates := newPriorityQueue(false, ef)
	results := newPriorityQueue(true, ef)

	for _, e := range entries {
		if visited.seen(e.Node) {
			continue
		}
		visited.visit(e.Node)
		candidates.Push(e)
		results.PushBounded(e, ef)
	}

	for candidates.Len() > 0 {
		curr, _ := candidates.Pop()
		if worst, _ := results.Top(); results.Len() >= ef && curr.Distance > worst.Distance {
			break
		}

		for _, next := range g.nodes[curr.Node].links[layer] {
			if visited.seen(next) {
				continue
			}
			visited.visit(next)

			d := g.distFunc(q, g.nodes[next].vector)
			if worst, _ := results.Top(); results.Len() >= ef && d >= worst.Distance {
				continue
			}

			it := queueItem{Node: next, Distance: d}
			candidates.Push(it)
			results.PushBounded(it, ef)
		}
	}

	return results.DrainAscending()
}

// selectNeighbors picks at most capacity links from candidates, which must
// be sorted closest first relative to the base node.
func (g *Graph) selectNeighbors(candidates []queueItem, capacity int) []queueItem {
	if g.opts.InsertMethod == LinkNearest {
		return candidates[:min(capacity, len(candidates))]
	}

	selected := make([]queueItem, 0, min(capacity, len(candidates)))
	for _, c := range candidates {
		if len(selected) >= capacity {
			break
		}

		cv := g.nodes[c.Node].vector
		keep := true
		for _, s := range selected {
			if g.distFunc(cv, g.nodes[s.Node].vector) < c.Distance {
				keep = false
				break
			}
		}
		if keep {
			selected = append(selected, c)
		}
	}

	return selected
}

// connect links a freshly inserted node on layer to the selected candidates
// and adds the reverse links.
func (g *Graph) connect(id uint32, layer int, candidates []queueItem) {
	selected := g.selectNeighbors(candidates, g.capacity(layer))
	g.setLinks(id, layer, itemIDs(selected))

	for _, s := range selected {
		g.addLink(s.Node, id, layer, s.Distance)
	}
}

// addLink adds from->to on layer. A full node re-selects among its current
// links plus the new one.
func (g *Graph) addLink(from, to uint32, layer int, dist float32) {
	n := g.nodes[from]
	limit := g.capacity(layer)

	if len(n.links[layer]) < limit {
		n.links[layer] = append(n.links[layer], to)
		g.nodes[to].incoming[layer][from] = struct{}{}
		return
	}

	candidates := make([]queueItem, 0, len(n.links[layer])+1)
	for _, t := range n.links[layer] {
		candidates = append(candidates, queueItem{Node: t, Distance: g.distFunc(n.vector, g.nodes[t].vector)})
	}
	candidates = append(candidates, queueItem{Node: to, Distance: dist})
	sortItems(candidates)

	g.setLinks(from, layer, itemIDs(g.selectNeighbors(candidates, limit)))
}

// setLinks replaces the outgoing links of id on layer and keeps the
// incoming sets of old and new targets in sync.
func (g *Graph) setLinks(id uint32, layer int, links []uint32) {
	n := g.nodes[id]
	for _, t := range n.links[layer] {
		delete(g.nodes[t].incoming[layer], id)
	}

	n.links[layer] = links
	for _, t := range links {
		g.nodes[t].incoming[layer][id] = struct{}{}
	}
}

func (g *Graph) remove(id uint32) {
	n := g.nodes[id]

	for l := 0; l <= n.level; l++ {
		out := n.links[l]

		for _, s := range n.incomingSorted(l) {
			if g.opts.RemoveMethod == CompensateIncomingLinks {
				g.compensate(s, id, l, out)
			} else {
				g.setLinks(s, l, without(g.nodes[s].links[l], id))
			}
		}

		for _, t := range out {
			delete(g.nodes[t].incoming[l], id)
		}
		n.links[l] = nil
	}

	g.nodes[id] = nil
	g.free.Add(id)
	delete(g.keys, n.key)

	if g.hasEntry && g.entry == id {
		g.electEntryPoint()
	}
}

// compensate rebuilds the links of s on layer after removed disappears,
// choosing from s's remaining links plus the removed node's links.
func (g *Graph) compensate(s, removed uint32, layer int, removedLinks []uint32) {
	n := g.nodes[s]

	seen := map[uint32]struct{}{s: {}, removed: {}}
	candidates := make([]queueItem, 0, len(n.links[layer])+len(removedLinks))

	add := func(t uint32) {
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		candidates = append(candidates, queueItem{Node: t, Distance: g.distFunc(n.vector, g.nodes[t].vector)})
	}
	for _, t := range n.links[layer] {
		add(t)
	}
	for _, t := range removedLinks {
		add(t)
	}
	sortItems(candidates)

	g.setLinks(s, layer, itemIDs(g.selectNeighbors(candidates, g.capacity(layer))))
}

// electEntryPoint picks the lowest id on the highest remaining level.
func (g *Graph) electEntryPoint() {
	g.hasEntry = false
	g.maxLevel = 0

	for id, n := range g.nodes {
		if n == nil {
			continue
		}
		if !g.hasEntry || n.level > g.maxLevel {
			g.entry, g.maxLevel, g.hasEntry = uint32(id), n.level, true
		}
	}
}

func without(ids []uint32, drop uint32) []uint32 {
	out := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
