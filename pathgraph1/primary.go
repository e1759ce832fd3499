package pathgraph1

import "github.com/grailbio/longasm/markergraph"

// SelectPrimaryEdges returns the marker graph edges that satisfy the
// PathGraph1 vertex invariant (the core's "primary edge" definition):
// coverage within [MinPrimaryCoverage, MaxPrimaryCoverage], no duplicate
// oriented reads on the edge or on either incident marker graph vertex, and
// branch-edge status (at least one incident vertex has more than one
// eligible incident edge, counting both directions).
//
// The result is sorted by EdgeId for determinism.
func SelectPrimaryEdges(g markergraph.Graph, opts Options) []markergraph.EdgeId {
	all := g.AllEdges()
	eligible := make(map[markergraph.EdgeId]bool, len(all))
	for _, id := range all {
		info, ok := g.Edge(id)
		if !ok {
			continue
		}
		cov := g.EdgeCoverage(id)
		if cov < opts.MinPrimaryCoverage || cov > opts.MaxPrimaryCoverage {
			continue
		}
		if g.EdgeHasDuplicateOrientedReadIds(id) {
			continue
		}
		if g.VertexHasDuplicateOrientedReadIds(info.Source) || g.VertexHasDuplicateOrientedReadIds(info.Target) {
			continue
		}
		eligible[id] = true
	}

	countEligible := func(ids []markergraph.EdgeId) int {
		n := 0
		for _, id := range ids {
			if eligible[id] {
				n++
			}
		}
		return n
	}

	var primary []markergraph.EdgeId
	for _, id := range all {
		if !eligible[id] {
			continue
		}
		info, _ := g.Edge(id)
		isBranch := countEligible(g.EdgesBySource(info.Source)) > 1 ||
			countEligible(g.EdgesByTarget(info.Source)) > 1 ||
			countEligible(g.EdgesBySource(info.Target)) > 1 ||
			countEligible(g.EdgesByTarget(info.Target)) > 1
		if isBranch {
			primary = append(primary, id)
		}
	}
	return primary
}
