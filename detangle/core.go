package detangle

import "github.com/grailbio/longasm/cpg"

// rewire applies a Significant verdict's pairing: every in-lane i is
// truncated past the junction once, every out-lane j is truncated once, and
// every (i,j) pair in verdict.Pairing connects the shared truncated stubs —
// so an in-lane paired with more than one out-lane (a branch point) or an
// out-lane claimed by more than one in-lane (a merge point) fans out from
// or into a single stub rather than being cloned per pair. Every paired
// in-edge and out-edge is then removed, along with any ids in extraRemove
// (e.g. the bridging edge in an edge-detangle, or every internal edge in a
// superbubble-detangle).
func rewire(g *cpg.Graph, ins, outs []cpg.EdgeId, verdict Verdict, extraRemove []cpg.EdgeId) {
	newTargets := make(map[int]cpg.VertexId, len(verdict.Pairing))
	newSources := make(map[int]cpg.VertexId, len(verdict.Pairing))
	for _, p := range verdict.Pairing {
		if _, ok := newTargets[p.In]; !ok {
			newTargets[p.In] = g.CloneAndTruncateAtEnd(ins[p.In])
		}
		if _, ok := newSources[p.Out]; !ok {
			newSources[p.Out] = g.CloneAndTruncateAtBeginning(outs[p.Out])
		}
		g.Connect(newTargets[p.In], newSources[p.Out])
	}
	for i, e := range ins {
		if _, ok := newTargets[i]; ok {
			g.RemoveEdge(e)
		}
	}
	for j, e := range outs {
		if _, ok := newSources[j]; ok {
			g.RemoveEdge(e)
		}
	}
	for _, e := range extraRemove {
		g.RemoveEdge(e)
	}
}

// splitForHaploidLanes ensures every in-edge's last bubble and every
// out-edge's first bubble is haploid (the "general" variant: split first
// if not), returning the possibly-expanded edge id lists.
func splitForHaploidLanes(g *cpg.Graph, ins, outs []cpg.EdgeId, refetchIn, refetchOut func() []cpg.EdgeId) ([]cpg.EdgeId, []cpg.EdgeId) {
	for _, e := range ins {
		g.SplitBubbleChainAtEnd(e)
	}
	for _, e := range outs {
		g.SplitBubbleChainAtBeginning(e)
	}
	return refetchIn(), refetchOut()
}
