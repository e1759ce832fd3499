package detangle

import "github.com/grailbio/longasm/cpg"

// Back attempts to detangle the special case where edge e = u->v has a
// single back-edge v->u alongside it: the back-edge is included as both an
// in-edge of u (which it already is, since its target is u) and an
// out-edge of v (normally excluded as a cycle edge), and the same
// significance tests are applied to the joined lane set — per the core's
// back-edge rule, the same tests used for ordinary vertex/edge detangling,
// so a back-edge tangle is resolved exactly as confidently as any other.
//
// The back-edge itself must already present a haploid lane on both ends;
// if it does not, Back declines rather than splitting a lane that plays
// both roles at once.
func Back(g *cpg.Graph, e cpg.EdgeId, opts Options) bool {
	edge, ok := g.Edge(e)
	if !ok {
		return false
	}
	u, v := edge.Source, edge.Target

	var back cpg.EdgeId
	found := false
	for _, id := range g.OutEdges(v) {
		oe, _ := g.Edge(id)
		if oe.Target == u {
			if found {
				return false // more than one back-edge: not this special case
			}
			back, found = id, true
		}
	}
	if !found {
		return false
	}

	backEdge, _ := g.Edge(back)
	bc := backEdge.BubbleChain
	if !bc.Bubbles[len(bc.Bubbles)-1].Haploid() || !bc.Bubbles[0].Haploid() {
		return false
	}

	forwardOuts := func() []cpg.EdgeId { return withoutBackEdgeTo(g, g.OutEdges(v), u) }

	for _, id := range g.InEdges(u) {
		if id != back {
			g.SplitBubbleChainAtEnd(id)
		}
	}
	for _, id := range forwardOuts() {
		g.SplitBubbleChainAtBeginning(id)
	}

	ins := g.InEdges(u)
	outs := append(append([]cpg.EdgeId{}, forwardOuts()...), back)

	verdict := Build(g, ins, outs).Classify(opts)
	if verdict.Classification != Significant {
		return false
	}
	rewire(g, ins, outs, verdict, []cpg.EdgeId{e})
	return true
}
