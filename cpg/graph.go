package cpg

import (
	"sort"

	"github.com/grailbio/longasm/markergraph"
)

// VertexId indexes Graph.vertices. Multiple vertices may carry the same
// marker graph edge id after cloning, so this is not the same space as
// markergraph.EdgeId.
type VertexId int32

// EdgeId is a stable 64-bit id assigned from a monotonic per-Graph counter
// (per the core's edge-id-survives-compaction convention). It is distinct
// from an edge's slot index; slots are only appended, never reused.
type EdgeId uint64

// Vertex holds one marker graph edge id, the CPG "junction".
type Vertex struct {
	MarkerEdge markergraph.EdgeId
}

// Edge carries a BubbleChain whose first Chain starts at the source
// vertex's marker edge id and whose last Chain ends at the target
// vertex's.
type Edge struct {
	ID          EdgeId
	Source, Target VertexId
	BubbleChain BubbleChain
	removed     bool
}

// Graph is the compressed path graph: an index-based directed multigraph
// (vertices/edges in flat slices, adjacency as slices of slot indices),
// following the core's representation convention for cyclic,
// parallel-edge-bearing structures.
type Graph struct {
	mg markergraph.Graph

	vertices []Vertex
	edges    []Edge // slot-indexed; Edge.removed marks a tombstoned slot
	idToSlot map[EdgeId]int
	outEdges [][]int
	inEdges  [][]int
	nextID   EdgeId
}

// NewGraph returns an empty Graph backed by mg (used for offset/common
// queries during superbubble removal and detangling).
func NewGraph(mg markergraph.Graph) *Graph {
	return &Graph{mg: mg, idToSlot: make(map[EdgeId]int)}
}

// AddVertex creates a new CPG vertex for markerEdge and returns its id.
// Unlike construction-time lookups, this never dedupes: callers that need
// "the vertex for this marker edge, or a fresh one" should track that
// themselves (construction does; cloning intentionally does not, since
// cloning is exactly how two vertices come to share a marker edge id).
func (g *Graph) AddVertex(markerEdge markergraph.EdgeId) VertexId {
	id := VertexId(len(g.vertices))
	g.vertices = append(g.vertices, Vertex{MarkerEdge: markerEdge})
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	return id
}

// AddEdge creates a new edge between source and target carrying bc,
// returning its stable id. Exported for collaborators (phase, and tests
// across package boundaries) that need to materialize a specific
// BubbleChain directly rather than through Connect's single-marker-pair
// shorthand.
func (g *Graph) AddEdge(source, target VertexId, bc BubbleChain) EdgeId {
	return g.addEdge(source, target, bc)
}

func (g *Graph) addEdge(source, target VertexId, bc BubbleChain) EdgeId {
	id := g.nextID
	g.nextID++
	slot := len(g.edges)
	g.edges = append(g.edges, Edge{ID: id, Source: source, Target: target, BubbleChain: bc})
	g.idToSlot[id] = slot
	g.outEdges[source] = append(g.outEdges[source], slot)
	g.inEdges[target] = append(g.inEdges[target], slot)
	return id
}

func (g *Graph) removeEdgeSlot(slot int) { g.edges[slot].removed = true }

// NumVertices returns the number of CPG vertices (including any that have
// become isolated through edge removal; the vertex slice is never
// reindexed).
func (g *Graph) NumVertices() int { return len(g.vertices) }

// Vertex returns the Vertex at id.
func (g *Graph) Vertex(id VertexId) Vertex { return g.vertices[id] }

// Edge returns the Edge with the given stable id, or ok=false if it has
// been removed or never existed.
func (g *Graph) Edge(id EdgeId) (Edge, bool) {
	slot, ok := g.idToSlot[id]
	if !ok || g.edges[slot].removed {
		return Edge{}, false
	}
	return g.edges[slot], true
}

func (g *Graph) liveSlots(slots []int) []int {
	out := make([]int, 0, len(slots))
	for _, s := range slots {
		if !g.edges[s].removed {
			out = append(out, s)
		}
	}
	return out
}

// OutEdges returns v's live out-edge ids, in creation order.
func (g *Graph) OutEdges(v VertexId) []EdgeId { return g.idsOf(g.liveSlots(g.outEdges[v])) }

// InEdges returns v's live in-edge ids, in creation order.
func (g *Graph) InEdges(v VertexId) []EdgeId { return g.idsOf(g.liveSlots(g.inEdges[v])) }

func (g *Graph) idsOf(slots []int) []EdgeId {
	out := make([]EdgeId, len(slots))
	for i, s := range slots {
		out[i] = g.edges[s].ID
	}
	return out
}

// OutDegree and InDegree count v's live edges.
func (g *Graph) OutDegree(v VertexId) int { return len(g.liveSlots(g.outEdges[v])) }
func (g *Graph) InDegree(v VertexId) int  { return len(g.liveSlots(g.inEdges[v])) }

// AllEdges returns every live edge id, sorted ascending for determinism.
func (g *Graph) AllEdges() []EdgeId {
	out := make([]EdgeId, 0, len(g.edges))
	for _, e := range g.edges {
		if !e.removed {
			out = append(out, e.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RemoveEdge removes the live edge with the given stable id. It is a no-op
// if the id is unknown or already removed.
func (g *Graph) RemoveEdge(id EdgeId) {
	if slot, ok := g.idToSlot[id]; ok {
		g.removeEdgeSlot(slot)
	}
}

// AnalyzeEdgePair exposes the backing marker graph's pairwise evidence, for
// collaborators (detangle, phase) that need it without holding their own
// reference to the marker graph.
func (g *Graph) AnalyzeEdgePair(a, b markergraph.EdgeId) markergraph.EdgePairInfo {
	return g.mg.AnalyzeEdgePair(a, b)
}

// averageOffsetInBases averages AnalyzeEdgePair's OffsetInBases over every
// consecutive marker-edge pair of the edge's first (representative) chain,
// the BubbleChain's "average base offset" used by superbubble detection.
func (g *Graph) averageOffsetInBases(e Edge) int64 {
	rep := e.BubbleChain.Bubbles[0].Chains[0]
	if len(rep) < 2 {
		return 0
	}
	var sum int64
	for i := 0; i+1 < len(rep); i++ {
		sum += g.mg.AnalyzeEdgePair(rep[i], rep[i+1]).OffsetInBases
	}
	return sum / int64(len(rep)-1)
}
