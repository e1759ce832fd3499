package cpg

// Compress repeats, until a fixed point, (a) merging parallel edges between
// the same (source, target) whose BubbleChains are each a single Bubble
// into one edge with a combined Bubble (ploidy adds), and (b) collapsing a
// maximal linear run of CPG edges into one edge whose BubbleChain is the
// concatenation. Compress is idempotent: compress(compress(g)) leaves g
// unchanged.
func (g *Graph) Compress() {
	for {
		changed := g.mergeParallelEdges()
		changed = g.collapseLinearChains() || changed
		if !changed {
			return
		}
	}
}

func (g *Graph) mergeParallelEdges() bool {
	type key struct{ s, t VertexId }
	groups := make(map[key][]int)
	for slot := range g.edges {
		if g.edges[slot].removed {
			continue
		}
		e := g.edges[slot]
		groups[key{e.Source, e.Target}] = append(groups[key{e.Source, e.Target}], slot)
	}
	changed := false
	for _, slots := range groups {
		var singleBubble []int
		for _, s := range slots {
			if len(g.edges[s].BubbleChain.Bubbles) == 1 {
				singleBubble = append(singleBubble, s)
			}
		}
		if len(singleBubble) < 2 {
			continue
		}
		var chains []Chain
		src, dst := g.edges[singleBubble[0]].Source, g.edges[singleBubble[0]].Target
		for _, s := range singleBubble {
			chains = append(chains, g.edges[s].BubbleChain.Bubbles[0].Chains...)
		}
		for _, s := range singleBubble {
			g.removeEdgeSlot(s)
		}
		g.addEdge(src, dst, BubbleChain{Bubbles: []Bubble{{Chains: chains}}})
		changed = true
	}
	return changed
}

func (g *Graph) collapseLinearChains() bool {
	changed := false
	for v := 0; v < len(g.vertices); v++ {
		vv := VertexId(v)
		if g.InDegree(vv) != 1 || g.OutDegree(vv) != 1 {
			continue
		}
		inID := g.InEdges(vv)[0]
		outID := g.OutEdges(vv)[0]
		if inID == outID {
			continue // a self-loop edge at vv; nothing to collapse
		}
		inSlot, outSlot := g.idToSlot[inID], g.idToSlot[outID]
		inEdge, outEdge := g.edges[inSlot], g.edges[outSlot]
		if inEdge.Source == outEdge.Target {
			// Collapsing would produce a self-loop whose endpoint itself has
			// in-degree == out-degree == 1 next round, which would loop
			// forever; leave this one short linear run uncollapsed.
			continue
		}
		merged := BubbleChain{Bubbles: append(append([]Bubble{}, inEdge.BubbleChain.Bubbles...), outEdge.BubbleChain.Bubbles...)}
		merged = compressBubbleChain(merged)
		g.removeEdgeSlot(inSlot)
		g.removeEdgeSlot(outSlot)
		g.addEdge(inEdge.Source, outEdge.Target, merged)
		changed = true
	}
	return changed
}
