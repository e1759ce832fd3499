// Package pathgraph1 builds PathGraph1 (component D): a graph whose vertices
// are marker graph "primary edges" and whose edges are pairs of primary
// edges with enough read-level evidence of adjacency (component C's
// candidates, filtered by coverage and corrected Jaccard).
package pathgraph1

import (
	"sort"

	"github.com/grailbio/longasm/journey"
	"github.com/grailbio/longasm/markergraph"
)

// VertexId indexes Graph.vertices.
type VertexId int32

// EdgeId indexes Graph.edges.
type EdgeId int32

// Vertex wraps the marker graph primary edge it represents.
type Vertex struct {
	MarkerEdge markergraph.EdgeId
}

// Edge is a directed PathGraph1 edge, carrying the evidence that produced it.
type Edge struct {
	Source, Target VertexId
	Info           markergraph.EdgePairInfo

	// TransitiveReduced and CrossEdge are soft removal flags: marked by
	// MarkTransitiveReduction and RemoveCrossEdges respectively, and
	// excluded from AllEdges/degree views once removed is true. Kept
	// distinct from "removed" so callers inspecting an unreduced Graph can
	// tell which rule flagged an edge.
	TransitiveReduced bool
	CrossEdge         bool
	removed           bool
}

// Graph is an index-based PathGraph1: vertices and edges are stored in
// flat slices, referenced by index, to avoid reference cycles (per the
// core's representation convention).
type Graph struct {
	vertices     []Vertex
	markerToVert map[markergraph.EdgeId]VertexId
	edges        []Edge
	outEdges     [][]EdgeId
	inEdges      [][]EdgeId
}

// Build runs components C and D: primary-edge selection, candidate
// generation, and PathGraph1 construction (edge creation, connected
// component filtering, local transitive reduction marking, and cross-edge
// removal). KNN thinning, if opts.KNN > 0, runs last.
func Build(g markergraph.Graph, journeys *journey.Store, opts Options) *Graph {
	primary := SelectPrimaryEdges(g, opts)
	candidates := GenerateCandidates(journeys, g, primary, opts)

	pg := &Graph{markerToVert: make(map[markergraph.EdgeId]VertexId, len(primary))}
	for _, id := range primary {
		pg.addVertex(id)
	}

	for _, c := range candidates {
		info := g.AnalyzeEdgePair(c.A, c.B)
		if info.Common < opts.MinEdgeCoverage || info.CorrectedJaccard < opts.MinCorrectedJaccard {
			continue
		}
		pg.addEdge(c.A, c.B, info)
	}

	pg.filterSmallComponents(opts.MinComponentSize)
	pg.MarkTransitiveReduction(opts)
	pg.RemoveCrossEdges(opts)
	if opts.KNN > 0 {
		pg.ThinToKNN(opts.KNN)
	}
	return pg
}

func (pg *Graph) addVertex(markerEdge markergraph.EdgeId) VertexId {
	if v, ok := pg.markerToVert[markerEdge]; ok {
		return v
	}
	v := VertexId(len(pg.vertices))
	pg.vertices = append(pg.vertices, Vertex{MarkerEdge: markerEdge})
	pg.outEdges = append(pg.outEdges, nil)
	pg.inEdges = append(pg.inEdges, nil)
	pg.markerToVert[markerEdge] = v
	return v
}

func (pg *Graph) addEdge(a, b markergraph.EdgeId, info markergraph.EdgePairInfo) EdgeId {
	u, uok := pg.markerToVert[a]
	v, vok := pg.markerToVert[b]
	if !uok || !vok {
		return -1
	}
	id := EdgeId(len(pg.edges))
	pg.edges = append(pg.edges, Edge{Source: u, Target: v, Info: info})
	pg.outEdges[u] = append(pg.outEdges[u], id)
	pg.inEdges[v] = append(pg.inEdges[v], id)
	return id
}

// NumVertices returns the number of PathGraph1 vertices.
func (pg *Graph) NumVertices() int { return len(pg.vertices) }

// Vertex returns the Vertex at id.
func (pg *Graph) Vertex(id VertexId) Vertex { return pg.vertices[id] }

// Edge returns the Edge at id.
func (pg *Graph) Edge(id EdgeId) Edge { return pg.edges[id] }

// OutEdges returns v's live (non-removed) out-edges, in creation order.
func (pg *Graph) OutEdges(v VertexId) []EdgeId { return pg.liveOnly(pg.outEdges[v]) }

// InEdges returns v's live (non-removed) in-edges, in creation order.
func (pg *Graph) InEdges(v VertexId) []EdgeId { return pg.liveOnly(pg.inEdges[v]) }

func (pg *Graph) liveOnly(ids []EdgeId) []EdgeId {
	out := make([]EdgeId, 0, len(ids))
	for _, id := range ids {
		if !pg.edges[id].removed {
			out = append(out, id)
		}
	}
	return out
}

// AllEdges returns every live edge id, sorted, for deterministic iteration.
func (pg *Graph) AllEdges() []EdgeId {
	out := make([]EdgeId, 0, len(pg.edges))
	for id := range pg.edges {
		if !pg.edges[id].removed {
			out = append(out, EdgeId(id))
		}
	}
	return out
}

func (pg *Graph) removeEdge(id EdgeId) { pg.edges[id].removed = true }

// connectedComponent assigns each vertex its component index, treating
// edges as undirected, considering only live edges.
func (pg *Graph) connectedComponents() []int {
	n := len(pg.vertices)
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	next := 0
	for start := 0; start < n; start++ {
		if comp[start] != -1 {
			continue
		}
		queue := []VertexId{VertexId(start)}
		comp[start] = next
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, id := range pg.OutEdges(cur) {
				t := pg.edges[id].Target
				if comp[t] == -1 {
					comp[t] = next
					queue = append(queue, t)
				}
			}
			for _, id := range pg.InEdges(cur) {
				s := pg.edges[id].Source
				if comp[s] == -1 {
					comp[s] = next
					queue = append(queue, s)
				}
			}
		}
		next++
	}
	return comp
}

// filterSmallComponents removes every edge incident to a vertex whose
// connected component has fewer than minSize vertices. Vertices themselves
// are left in place (the flat vertex slice is never reindexed after
// construction) but become isolated and so never appear in AllEdges-driven
// traversals.
func (pg *Graph) filterSmallComponents(minSize int) {
	if minSize <= 1 {
		return
	}
	comp := pg.connectedComponents()
	size := make(map[int]int)
	for _, c := range comp {
		size[c]++
	}
	for id := range pg.edges {
		e := &pg.edges[id]
		if e.removed {
			continue
		}
		if size[comp[e.Source]] < minSize {
			e.removed = true
		}
	}
}

// MarkTransitiveReduction flags (but does not remove) edges (u,v) for which
// a two-hop path u->w->v exists among u's other out-edges, with w's
// mediating edges both below TransitiveReductionMaxCoverage and the direct
// edge's estimated offset within TransitiveReductionDistance of the summed
// two-hop offset — i.e. the direct edge is explainable by a shorter,
// corroborated detour and so is locally redundant.
func (pg *Graph) MarkTransitiveReduction(opts Options) {
	for u := range pg.vertices {
		outs := pg.OutEdges(VertexId(u))
		for _, direct := range outs {
			de := pg.edges[direct]
			if de.Info.CorrectedJaccard > 0 && uint64(de.Info.Common) > opts.TransitiveReductionMaxCoverage {
				continue
			}
			for _, mid1 := range outs {
				if mid1 == direct {
					continue
				}
				w := pg.edges[mid1].Target
				if w == de.Target {
					continue
				}
				for _, mid2 := range pg.OutEdges(w) {
					e2 := pg.edges[mid2]
					if e2.Target != de.Target {
						continue
					}
					twoHop := pg.edges[mid1].Info.OffsetInBases + e2.Info.OffsetInBases
					diff := twoHop - de.Info.OffsetInBases
					if diff < 0 {
						diff = -diff
					}
					if diff <= opts.TransitiveReductionDistance {
						pg.edges[direct].TransitiveReduced = true
					}
				}
			}
		}
	}
}

// RemoveCrossEdges removes low-coverage edges (u,v) with Common <=
// CrossEdgesLowCoverageThreshold and a long estimated offset (>=
// CrossEdgesMinOffset), when every other in-edge of u and every other
// out-edge of v is itself high-coverage (Common >=
// CrossEdgesHighCoverageThreshold) — the signature of a mistaken
// connection across a repeat, crossing between two well-supported paths,
// rather than a true adjacency.
func (pg *Graph) RemoveCrossEdges(opts Options) {
	var toRemove []EdgeId
	for id := range pg.edges {
		e := pg.edges[id]
		if e.removed {
			continue
		}
		if e.Info.Common > opts.CrossEdgesLowCoverageThreshold {
			continue
		}
		off := e.Info.OffsetInBases
		if off < 0 {
			off = -off
		}
		if off < opts.CrossEdgesMinOffset {
			continue
		}
		if pg.allAlternativesDominant(e.Source, EdgeId(id), false, opts.CrossEdgesHighCoverageThreshold) &&
			pg.allAlternativesDominant(e.Target, EdgeId(id), true, opts.CrossEdgesHighCoverageThreshold) {
			toRemove = append(toRemove, EdgeId(id))
		}
	}
	for _, id := range toRemove {
		pg.edges[id].CrossEdge = true
		pg.removeEdge(id)
	}
}

// allAlternativesDominant reports whether every in-edge of v (outgoing ==
// false) or every out-edge of v (outgoing == true), other than exclude,
// has coverage at or above threshold. A vertex with no other edges on
// that side vacuously satisfies the check.
func (pg *Graph) allAlternativesDominant(v VertexId, exclude EdgeId, outgoing bool, threshold uint64) bool {
	ids := pg.InEdges(v)
	if outgoing {
		ids = pg.OutEdges(v)
	}
	for _, id := range ids {
		if id == exclude {
			continue
		}
		if pg.edges[id].Info.Common < threshold {
			return false
		}
	}
	return true
}

// ThinToKNN retains, per vertex, only the k highest-CorrectedJaccard
// out-edges and in-edges, removing the rest.
func (pg *Graph) ThinToKNN(k int) {
	for v := range pg.vertices {
		pg.thinEdgeSet(pg.OutEdges(VertexId(v)), k)
		pg.thinEdgeSet(pg.InEdges(VertexId(v)), k)
	}
}

func (pg *Graph) thinEdgeSet(ids []EdgeId, k int) {
	if len(ids) <= k {
		return
	}
	sorted := append([]EdgeId{}, ids...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := pg.edges[sorted[i]].Info.CorrectedJaccard, pg.edges[sorted[j]].Info.CorrectedJaccard
		if a != b {
			return a > b
		}
		return sorted[i] < sorted[j]
	})
	for _, id := range sorted[k:] {
		pg.removeEdge(id)
	}
}
