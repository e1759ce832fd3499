// Package cpg implements the compressed path graph (component E): a
// contraction of PathGraph1's linear runs into edges carrying bubble
// chains, plus the structural primitives (clone-and-truncate, split,
// connect, compress) and superbubble removal used by the detangler and
// phaser.
package cpg

import "github.com/grailbio/longasm/markergraph"

// Chain is an ordered list of marker graph edges of length >= 2. The first
// and last ids are anchors shared with every sibling chain in the same
// Bubble.
type Chain []markergraph.EdgeId

// First and Last return the chain's anchor ids.
func (c Chain) First() markergraph.EdgeId { return c[0] }
func (c Chain) Last() markergraph.EdgeId  { return c[len(c)-1] }

// Interior returns the chain with both anchors stripped.
func (c Chain) Interior() Chain {
	if len(c) <= 2 {
		return nil
	}
	return c[1 : len(c)-1]
}

// LastInterior and FirstInterior return the second-to-last / second ids —
// the chain's edges one step in from each anchor, used by the tangle
// matrix to avoid double-counting the shared junction.
func (c Chain) LastInterior() markergraph.EdgeId  { return c[len(c)-2] }
func (c Chain) FirstInterior() markergraph.EdgeId { return c[1] }

// clone returns an independent copy.
func (c Chain) clone() Chain {
	out := make(Chain, len(c))
	copy(out, c)
	return out
}

// Bubble is a nonempty list of Chains sharing first and last marker graph
// edge id. Ploidy is structural (the slice length), never a separate flag.
type Bubble struct {
	Chains []Chain
}

// Ploidy returns the number of parallel chains.
func (b Bubble) Ploidy() int { return len(b.Chains) }

// Haploid reports ploidy == 1.
func (b Bubble) Haploid() bool { return len(b.Chains) == 1 }

// Diploid reports ploidy == 2.
func (b Bubble) Diploid() bool { return len(b.Chains) == 2 }

// First and Last return the shared anchor ids.
func (b Bubble) First() markergraph.EdgeId { return b.Chains[0].First() }
func (b Bubble) Last() markergraph.EdgeId  { return b.Chains[0].Last() }

func (b Bubble) clone() Bubble {
	out := Bubble{Chains: make([]Chain, len(b.Chains))}
	for i, c := range b.Chains {
		out.Chains[i] = c.clone()
	}
	return out
}

// BubbleChain is a nonempty sequence of Bubbles; adjacent bubbles share the
// joining marker graph edge id (last of preceding = first of following).
// The compression invariant (no two consecutive haploid bubbles) is
// enforced by Graph.Compress, not by this type's constructors.
type BubbleChain struct {
	Bubbles []Bubble
}

// First and Last return the BubbleChain's overall endpoint ids.
func (bc BubbleChain) First() markergraph.EdgeId { return bc.Bubbles[0].First() }
func (bc BubbleChain) Last() markergraph.EdgeId  { return bc.Bubbles[len(bc.Bubbles)-1].Last() }

func (bc BubbleChain) clone() BubbleChain {
	out := BubbleChain{Bubbles: make([]Bubble, len(bc.Bubbles))}
	for i, b := range bc.Bubbles {
		out.Bubbles[i] = b.clone()
	}
	return out
}

// singleHaploidChain builds the single-bubble, single-chain BubbleChain
// used for a freshly contracted linear run or a connect() edge.
func singleHaploidChain(ids ...markergraph.EdgeId) BubbleChain {
	return BubbleChain{Bubbles: []Bubble{{Chains: []Chain{append(Chain{}, ids...)}}}}
}
