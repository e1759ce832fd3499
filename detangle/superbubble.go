package detangle

import "github.com/grailbio/longasm/cpg"

// ShortSuperbubble attempts to detangle every maxOffset1-scale superbubble
// with more than one entrance or exit (the case RemoveSuperbubbles declines
// to collapse): the in-edges are the superbubble's external entrances, the
// out-edges its external exits, the interior is wiped entirely, and a
// confident tangle-matrix pairing reconnects entrances straight to exits,
// bypassing the interior rather than requiring it to reduce to a single
// path. It returns the number of superbubbles detangled.
func ShortSuperbubble(g *cpg.Graph, maxOffset1 int64, opts Options) int {
	detangled := 0
	for _, members := range g.Superbubbles(maxOffset1) {
		if shortSuperbubble(g, members, opts) {
			detangled++
		}
	}
	return detangled
}

func shortSuperbubble(g *cpg.Graph, members []cpg.VertexId, opts Options) bool {
	memberSet := make(map[cpg.VertexId]bool, len(members))
	for _, v := range members {
		memberSet[v] = true
	}

	var ins, outs []cpg.EdgeId
	internal := make(map[cpg.EdgeId]bool)
	for _, v := range members {
		for _, id := range g.InEdges(v) {
			e, _ := g.Edge(id)
			if memberSet[e.Source] {
				internal[id] = true
			} else {
				ins = append(ins, id)
			}
		}
		for _, id := range g.OutEdges(v) {
			e, _ := g.Edge(id)
			if !memberSet[e.Target] {
				outs = append(outs, id)
			}
		}
	}
	if len(ins) < 2 && len(outs) < 2 {
		return false // a single entrance/exit belongs to RemoveSuperbubbles
	}
	if len(ins) == 0 || len(outs) == 0 {
		return false
	}

	ins, outs = splitForHaploidLanes(g, ins, outs,
		func() []cpg.EdgeId {
			var r []cpg.EdgeId
			for _, v := range members {
				for _, id := range g.InEdges(v) {
					e, _ := g.Edge(id)
					if !memberSet[e.Source] {
						r = append(r, id)
					}
				}
			}
			return r
		},
		func() []cpg.EdgeId {
			var r []cpg.EdgeId
			for _, v := range members {
				for _, id := range g.OutEdges(v) {
					e, _ := g.Edge(id)
					if !memberSet[e.Target] {
						r = append(r, id)
					}
				}
			}
			return r
		})

	verdict := Build(g, ins, outs).Classify(opts)
	if verdict.Classification != Significant {
		return false
	}

	var extraRemove []cpg.EdgeId
	for _, v := range members {
		for _, id := range g.OutEdges(v) {
			e, _ := g.Edge(id)
			if memberSet[e.Target] {
				extraRemove = append(extraRemove, id)
			}
		}
	}
	rewire(g, ins, outs, verdict, extraRemove)
	return true
}
