// Package hnsw implements a Hierarchical Navigable Small World graph keyed
// by strings.
//
// The graph is the index the benchmark drives. It supports the two link
// selection strategies and the two removal strategies the benchmark
// compares, and keeps enough bookkeeping (reverse links, a free-id bitmap)
// to validate its own structure after arbitrary insert/remove sequences.
//
// # Parameters
//
//   - MaxLinks: max links per node on upper layers (default: 32); layer 0
//     allows twice as many
//   - EFConstruction: candidate list size while inserting (default: 300)
//   - EFSearch: lower bound for the candidate list while searching; a search
//     for k neighbors uses max(k, EFSearch)
//
// # Insert methods
//
//   - LinkNearest keeps the closest candidates.
//   - LinkDiverse keeps a candidate only if no already selected neighbor is
//     closer to it than the base node (relative neighborhood heuristic).
//
// # Remove methods
//
//   - NoLink drops every link pointing at the removed node.
//   - CompensateIncomingLinks lets every node that linked to the removed
//     node re-select its links from its remaining links plus the removed
//     node's links.
//
// All methods are safe for concurrent use; mutations are serialized.
//
// # Reference
//
// Malkov & Yashunin, "Efficient and robust approximate nearest neighbor search
// using Hierarchical Navigable Small World graphs", IEEE TPAMI 2018.
package hnsw
