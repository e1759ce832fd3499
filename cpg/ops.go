package cpg

import "github.com/grailbio/base/log"

// CloneAndTruncateAtEnd duplicates edge e with its last marker graph edge
// id removed from the last Chain of its BubbleChain (the last Bubble must
// be haploid: the caller splits first via SplitBubbleChainAtEnd if not).
// If the truncated Chain would drop to length 1, the whole trailing Bubble
// is removed instead. It returns the new edge's target vertex, or e's
// original source vertex if nothing could be removed (a length-2
// single-bubble BubbleChain with nothing left to trim).
func (g *Graph) CloneAndTruncateAtEnd(e EdgeId) VertexId {
	orig, ok := g.Edge(e)
	if !ok {
		log.Panicf("cpg: CloneAndTruncateAtEnd: unknown edge %d", e)
	}
	bc := orig.BubbleChain.clone()
	lastIdx := len(bc.Bubbles) - 1
	lastBubble := bc.Bubbles[lastIdx]
	if !lastBubble.Haploid() {
		log.Panicf("cpg: CloneAndTruncateAtEnd requires a haploid last bubble on edge %d", e)
	}
	chain := lastBubble.Chains[0]
	switch {
	case len(chain) > 2:
		bc.Bubbles[lastIdx] = Bubble{Chains: []Chain{chain[:len(chain)-1]}}
	case lastIdx > 0:
		bc.Bubbles = bc.Bubbles[:lastIdx]
	default:
		return orig.Source
	}
	newTarget := g.AddVertex(bc.Last())
	g.addEdge(orig.Source, newTarget, bc)
	return newTarget
}

// CloneAndTruncateAtBeginning is the symmetric operation at the front of
// the BubbleChain, returning the new source vertex (or e's original target
// vertex if nothing could be removed).
func (g *Graph) CloneAndTruncateAtBeginning(e EdgeId) VertexId {
	orig, ok := g.Edge(e)
	if !ok {
		log.Panicf("cpg: CloneAndTruncateAtBeginning: unknown edge %d", e)
	}
	bc := orig.BubbleChain.clone()
	firstBubble := bc.Bubbles[0]
	if !firstBubble.Haploid() {
		log.Panicf("cpg: CloneAndTruncateAtBeginning requires a haploid first bubble on edge %d", e)
	}
	chain := firstBubble.Chains[0]
	switch {
	case len(chain) > 2:
		bc.Bubbles[0] = Bubble{Chains: []Chain{chain[1:]}}
	case len(bc.Bubbles) > 1:
		bc.Bubbles = bc.Bubbles[1:]
	default:
		return orig.Target
	}
	newSource := g.AddVertex(bc.First())
	g.addEdge(newSource, orig.Target, bc)
	return newSource
}

// SplitBubbleChainAtBeginning splits e's first Bubble, if non-haploid, into
// one parallel edge per Chain (each ending at a fresh junction vertex for
// the bubble's shared last id), followed by one edge carrying the
// remaining BubbleChain (if any). It is a no-op if the first Bubble is
// already haploid. e is removed.
func (g *Graph) SplitBubbleChainAtBeginning(e EdgeId) {
	orig, ok := g.Edge(e)
	if !ok {
		log.Panicf("cpg: SplitBubbleChainAtBeginning: unknown edge %d", e)
	}
	first := orig.BubbleChain.Bubbles[0]
	if first.Haploid() {
		return
	}
	junction := g.AddVertex(first.Last())
	for _, c := range first.Chains {
		g.addEdge(orig.Source, junction, BubbleChain{Bubbles: []Bubble{{Chains: []Chain{c.clone()}}}})
	}
	if len(orig.BubbleChain.Bubbles) > 1 {
		g.addEdge(junction, orig.Target, BubbleChain{Bubbles: cloneBubbles(orig.BubbleChain.Bubbles[1:])})
	}
	g.removeEdgeSlot(g.idToSlot[e])
}

// SplitBubbleChainAtEnd is the symmetric operation on e's last Bubble.
func (g *Graph) SplitBubbleChainAtEnd(e EdgeId) {
	orig, ok := g.Edge(e)
	if !ok {
		log.Panicf("cpg: SplitBubbleChainAtEnd: unknown edge %d", e)
	}
	n := len(orig.BubbleChain.Bubbles)
	last := orig.BubbleChain.Bubbles[n-1]
	if last.Haploid() {
		return
	}
	junction := g.AddVertex(last.First())
	if n > 1 {
		g.addEdge(orig.Source, junction, BubbleChain{Bubbles: cloneBubbles(orig.BubbleChain.Bubbles[:n-1])})
	}
	for _, c := range last.Chains {
		g.addEdge(junction, orig.Target, BubbleChain{Bubbles: []Bubble{{Chains: []Chain{c.clone()}}}})
	}
	g.removeEdgeSlot(g.idToSlot[e])
}

// Connect adds an edge whose BubbleChain is a single haploid, length-2
// Chain [id(u), id(v)].
func (g *Graph) Connect(u, v VertexId) EdgeId {
	return g.addEdge(u, v, singleHaploidChain(g.vertices[u].MarkerEdge, g.vertices[v].MarkerEdge))
}

// ReplaceBubbleChain removes e and adds a fresh edge between the same
// endpoints carrying bc, returning the new stable id. Used by the phaser's
// BubbleChain rewrite, which cannot mutate a live Edge's BubbleChain in
// place since the teacher's representation treats Edge as a value, not a
// pointer into shared state.
func (g *Graph) ReplaceBubbleChain(e EdgeId, bc BubbleChain) EdgeId {
	orig, ok := g.Edge(e)
	if !ok {
		log.Panicf("cpg: ReplaceBubbleChain: unknown edge %d", e)
	}
	g.removeEdgeSlot(g.idToSlot[e])
	return g.addEdge(orig.Source, orig.Target, bc)
}
