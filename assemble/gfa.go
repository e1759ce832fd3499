package assemble

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/grailbio/longasm/consensus"
	"github.com/grailbio/longasm/cpg"
)

// segmentName identifies a single Chain for GFA/FASTA purposes: the CPG
// edge it belongs to, its Bubble's position within that edge's
// BubbleChain, and its index within the Bubble.
func segmentName(edge cpg.EdgeId, bubblePos, chainInBubble int) string {
	return fmt.Sprintf("e%d_b%d_c%d", edge, bubblePos, chainInBubble)
}

// WriteGFA writes g as a GFA 1.0 graph to path: one S line per Chain
// (carrying its consensus sequence from store, or "*" if unassembled),
// L lines fanning out between adjacent Bubbles of the same BubbleChain
// (every chain of one Bubble links to every chain of the next, since they
// all share the same anchor marker graph edge id), and L lines linking
// the last Bubble's chains of one CPG edge to the first Bubble's chains of
// every CPG edge leaving its target vertex. Per spec.md's "used verbatim"
// GFA note, Align4-level alignments are not re-derived as CIGARs: every L
// line carries "*".
func WriteGFA(ctx context.Context, path string, g *cpg.Graph, store *consensus.Store) (err error) {
	dst, w, closeLayer, err := openOutput(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)
	defer func() {
		if cerr := closeLayer(); cerr != nil && err == nil {
			err = errors.E(cerr, "closing GFA writer", path)
		}
	}()

	if _, err = fmt.Fprintf(w, "H\tVN:Z:1.0\n"); err != nil {
		return err
	}

	edges := g.AllEdges()
	for _, id := range edges {
		edge, ok := g.Edge(id)
		if !ok {
			continue
		}
		bubbles := edge.BubbleChain.Bubbles
		for bi, b := range bubbles {
			for ci := range b.Chains {
				seq := "*"
				if s, ok := store.Get(id, bi, ci); ok {
					seq = s
				}
				if _, err = fmt.Fprintf(w, "S\t%s\t%s\n", segmentName(id, bi, ci), seq); err != nil {
					return err
				}
			}
			if bi+1 < len(bubbles) {
				next := bubbles[bi+1]
				for ci := range b.Chains {
					for cj := range next.Chains {
						if _, err = fmt.Fprintf(w, "L\t%s\t+\t%s\t+\t*\n",
							segmentName(id, bi, ci), segmentName(id, bi+1, cj)); err != nil {
							return err
						}
					}
				}
			}
		}
	}

	for _, id := range edges {
		edge, ok := g.Edge(id)
		if !ok || len(edge.BubbleChain.Bubbles) == 0 {
			continue
		}
		lastBubble := edge.BubbleChain.Bubbles[len(edge.BubbleChain.Bubbles)-1]
		lastPos := len(edge.BubbleChain.Bubbles) - 1
		for _, nextID := range g.OutEdges(edge.Target) {
			nextEdge, ok := g.Edge(nextID)
			if !ok || len(nextEdge.BubbleChain.Bubbles) == 0 {
				continue
			}
			firstBubble := nextEdge.BubbleChain.Bubbles[0]
			for ci := range lastBubble.Chains {
				for cj := range firstBubble.Chains {
					if _, err = fmt.Fprintf(w, "L\t%s\t+\t%s\t+\t*\n",
						segmentName(id, lastPos, ci), segmentName(nextID, 0, cj)); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
