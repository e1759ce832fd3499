package cpg

import "fmt"

// CheckInvariants verifies the universal invariants that must hold after
// every pipeline stage:
//  1. adjacent bubbles in a BubbleChain share the joining marker edge id,
//  2. every Chain has length >= 2,
//  3. within a Bubble, all Chains share first and last marker edge id,
//  4. no two consecutive haploid Bubbles (the compression invariant),
//  5. for every edge u->v, the BubbleChain's first id = id(u), last id = id(v).
//
// It returns the first violation found, or nil.
func (g *Graph) CheckInvariants() error {
	for _, id := range g.AllEdges() {
		e, _ := g.Edge(id)
		bc := e.BubbleChain
		if len(bc.Bubbles) == 0 {
			return fmt.Errorf("cpg: edge %d has an empty BubbleChain", id)
		}
		for i, b := range bc.Bubbles {
			if len(b.Chains) == 0 {
				return fmt.Errorf("cpg: edge %d bubble %d has no chains", id, i)
			}
			first, last := b.First(), b.Last()
			for j, c := range b.Chains {
				if len(c) < 2 {
					return fmt.Errorf("cpg: edge %d bubble %d chain %d has length %d < 2", id, i, j, len(c))
				}
				if c.First() != first || c.Last() != last {
					return fmt.Errorf("cpg: edge %d bubble %d chain %d endpoints (%d,%d) disagree with bubble (%d,%d)",
						id, i, j, c.First(), c.Last(), first, last)
				}
			}
			if i > 0 && bc.Bubbles[i-1].Last() != first {
				return fmt.Errorf("cpg: edge %d bubble %d does not join bubble %d (%d != %d)",
					id, i, i-1, first, bc.Bubbles[i-1].Last())
			}
			if i > 0 && b.Haploid() && bc.Bubbles[i-1].Haploid() {
				return fmt.Errorf("cpg: edge %d has two consecutive haploid bubbles at %d,%d", id, i-1, i)
			}
		}
		if bc.First() != g.vertices[e.Source].MarkerEdge {
			return fmt.Errorf("cpg: edge %d BubbleChain starts at %d, want source vertex marker %d",
				id, bc.First(), g.vertices[e.Source].MarkerEdge)
		}
		if bc.Last() != g.vertices[e.Target].MarkerEdge {
			return fmt.Errorf("cpg: edge %d BubbleChain ends at %d, want target vertex marker %d",
				id, bc.Last(), g.vertices[e.Target].MarkerEdge)
		}
	}
	return nil
}
