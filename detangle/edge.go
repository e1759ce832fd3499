package detangle

import "github.com/grailbio/longasm/cpg"

// Edge attempts to detangle e = u->v: the vertex-detangling algorithm
// applied to the pair (in-edges of u, out-edges of v), requiring
// out-degree(u) == 1 and in-degree(v) == 1, and ignoring any back-edge
// v->u (left for Back to handle). e itself is removed on a successful
// rewrite, since it was u's only out-edge and is superseded by the direct
// connections bypassing both u and v.
func Edge(g *cpg.Graph, e cpg.EdgeId, opts Options) bool {
	edge, ok := g.Edge(e)
	if !ok {
		return false
	}
	u, v := edge.Source, edge.Target
	if g.OutDegree(u) != 1 || g.InDegree(v) != 1 {
		return false
	}

	ins := g.InEdges(u)
	outs := withoutBackEdgeTo(g, g.OutEdges(v), u)
	if len(ins) == 0 || len(outs) == 0 {
		return false
	}
	ins, outs = splitForHaploidLanes(g, ins, outs,
		func() []cpg.EdgeId { return g.InEdges(u) },
		func() []cpg.EdgeId { return withoutBackEdgeTo(g, g.OutEdges(v), u) })

	verdict := Build(g, ins, outs).Classify(opts)
	if verdict.Classification != Significant {
		return false
	}
	rewire(g, ins, outs, verdict, []cpg.EdgeId{e})
	return true
}

func withoutBackEdgeTo(g *cpg.Graph, ids []cpg.EdgeId, u cpg.VertexId) []cpg.EdgeId {
	var out []cpg.EdgeId
	for _, id := range ids {
		e, ok := g.Edge(id)
		if ok && e.Target == u {
			continue
		}
		out = append(out, id)
	}
	return out
}
