package cpg

import (
	"sort"

	"github.com/grailbio/longasm/markergraph"
	"github.com/grailbio/longasm/pathgraph1"
)

// BuildFromPathGraph1 performs the CPG's initial construction: find maximal
// linear runs of PathGraph1 vertices (in-degree == out-degree == 1, using
// only transitive-reduction-surviving edges) and contract each into a CPG
// edge whose BubbleChain is a single haploid Bubble containing a single
// Chain — the concatenated marker graph edge ids of the run, including
// both boundary endpoints. CPG vertices are created on demand for those
// boundary endpoints.
func BuildFromPathGraph1(pg *pathgraph1.Graph, mg markergraph.Graph) *Graph {
	g := NewGraph(mg)

	surviving := func(v pathgraph1.VertexId, out bool) []pathgraph1.EdgeId {
		ids := pg.OutEdges(v)
		if !out {
			ids = pg.InEdges(v)
		}
		var keep []pathgraph1.EdgeId
		for _, id := range ids {
			if !pg.Edge(id).TransitiveReduced {
				keep = append(keep, id)
			}
		}
		return keep
	}

	interior := make([]bool, pg.NumVertices())
	for v := 0; v < pg.NumVertices(); v++ {
		interior[v] = len(surviving(pathgraph1.VertexId(v), true)) == 1 && len(surviving(pathgraph1.VertexId(v), false)) == 1
	}

	cpgVertexOf := make(map[markergraph.EdgeId]VertexId)
	vertexFor := func(markerEdge markergraph.EdgeId) VertexId {
		if v, ok := cpgVertexOf[markerEdge]; ok {
			return v
		}
		v := g.AddVertex(markerEdge)
		cpgVertexOf[markerEdge] = v
		return v
	}

	visitedStartEdge := make(map[pathgraph1.EdgeId]bool)

	// Walk forward from every boundary vertex's surviving out-edges. Process
	// vertices in ascending order for determinism.
	for v := 0; v < pg.NumVertices(); v++ {
		if interior[pathgraph1.VertexId(v)] {
			continue
		}
		outs := surviving(pathgraph1.VertexId(v), true)
		sort.Slice(outs, func(i, j int) bool { return outs[i] < outs[j] })
		for _, startEdge := range outs {
			if visitedStartEdge[startEdge] {
				continue
			}
			runMarkerIds := []markergraph.EdgeId{pg.Vertex(pathgraph1.VertexId(v)).MarkerEdge}
			cur := startEdge
			curVertex := pathgraph1.VertexId(v)
			for {
				visitedStartEdge[cur] = true
				e := pg.Edge(cur)
				next := e.Target
				runMarkerIds = append(runMarkerIds, pg.Vertex(next).MarkerEdge)
				curVertex = next
				if !interior[curVertex] {
					break
				}
				nextOuts := surviving(curVertex, true)
				if len(nextOuts) != 1 {
					break // defensive: interior[] should guarantee exactly one
				}
				cur = nextOuts[0]
				if visitedStartEdge[cur] {
					break // guards against a fully-interior cycle looping forever
				}
			}
			source := vertexFor(runMarkerIds[0])
			target := vertexFor(runMarkerIds[len(runMarkerIds)-1])
			g.addEdge(source, target, singleHaploidChain(runMarkerIds...))
		}
	}
	return g
}
