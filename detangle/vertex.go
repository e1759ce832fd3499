package detangle

import "github.com/grailbio/longasm/cpg"

// Vertex attempts to detangle v: split in/out edges to haploid lanes,
// build the tangle matrix over v's in-edges and out-edges, and — if
// Significant — bypass v by connecting each confidently-paired lane
// directly. It returns whether a rewrite happened.
func Vertex(g *cpg.Graph, v cpg.VertexId, opts Options) bool {
	ins := g.InEdges(v)
	outs := g.OutEdges(v)
	if len(ins) == 0 || len(outs) == 0 {
		return false
	}
	ins, outs = splitForHaploidLanes(g, ins, outs,
		func() []cpg.EdgeId { return g.InEdges(v) },
		func() []cpg.EdgeId { return g.OutEdges(v) })

	verdict := Build(g, ins, outs).Classify(opts)
	if verdict.Classification != Significant {
		return false
	}
	rewire(g, ins, outs, verdict, nil)
	return true
}
