package phase

import (
	"sort"

	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/markergraph"
)

// Edge phases the BubbleChain carried by cpg edge id: it builds the
// PhasingGraph over its diploid bubbles, extracts PhasedComponents, and (if
// any were found) rewrites the BubbleChain and recompresses. It returns
// whether a rewrite happened.
func Edge(g *cpg.Graph, id cpg.EdgeId, opts Options) bool {
	orig, ok := g.Edge(id)
	if !ok {
		return false
	}
	pg := Build(g, orig.BubbleChain, opts)
	components := Phase(pg)
	if len(components) == 0 {
		return false
	}
	newBC := rewriteBubbleChain(g, orig.BubbleChain, components, opts)
	g.ReplaceBubbleChain(id, newBC)
	g.Compress()
	return true
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func isLongBubble(g *cpg.Graph, b cpg.Bubble, opts Options) bool {
	return abs64(g.AnalyzeEdgePair(b.First(), b.Last()).OffsetInBases) >= opts.LongBubbleThreshold
}

// rewriteBubbleChain applies the §4.G rewrite: verbatim haploid and long
// non-haploid bubbles outside any phased span, short unphased non-haploid
// bubbles collapsed to their bare anchor pair, and one phased diploid
// Bubble per PhasedComponent.
func rewriteBubbleChain(g *cpg.Graph, bc cpg.BubbleChain, components []PhasedComponent, opts Options) cpg.BubbleChain {
	type span struct {
		lo, hi int
		pc     PhasedComponent
	}
	spans := make([]span, len(components))
	for i, pc := range components {
		lo, hi := pc.minMax()
		spans[i] = span{lo: lo, hi: hi, pc: pc}
	}
	sort.Slice(spans, func(a, b int) bool { return spans[a].lo < spans[b].lo })

	var out cpg.BubbleChain
	i := 0
	spanIdx := 0
	for i < len(bc.Bubbles) {
		if spanIdx < len(spans) && i == spans[spanIdx].lo {
			out.Bubbles = append(out.Bubbles, buildPhasedBubble(bc, spans[spanIdx].pc))
			i = spans[spanIdx].hi + 1
			spanIdx++
			continue
		}
		b := bc.Bubbles[i]
		switch {
		case b.Haploid():
			out.Bubbles = append(out.Bubbles, b)
		case isLongBubble(g, b, opts):
			out.Bubbles = append(out.Bubbles, b)
		default:
			out.Bubbles = append(out.Bubbles, cpg.Bubble{Chains: []cpg.Chain{{b.First(), b.Last()}}})
		}
		i++
	}
	return out
}

// buildPhasedBubble concatenates, in position order, the interior marker
// ids of the selected side of each phased diploid bubble into the two
// output chains, bracketed by the run's overall source/target anchors.
func buildPhasedBubble(bc cpg.BubbleChain, pc PhasedComponent) cpg.Bubble {
	lo, _ := pc.minMax()
	chainA := cpg.Chain{bc.Bubbles[lo].First()}
	chainB := cpg.Chain{bc.Bubbles[lo].First()}
	for _, entry := range pc.Entries {
		b := bc.Bubbles[entry.Position]
		sideA, sideB := 0, 1
		if entry.Sign != 1 {
			sideA, sideB = 1, 0
		}
		chainA = appendInteriorAndAnchor(chainA, b.Chains[sideA], b.Last())
		chainB = appendInteriorAndAnchor(chainB, b.Chains[sideB], b.Last())
	}
	return cpg.Bubble{Chains: []cpg.Chain{chainA, chainB}}
}

func appendInteriorAndAnchor(chain cpg.Chain, side cpg.Chain, anchor markergraph.EdgeId) cpg.Chain {
	chain = append(chain, side.Interior()...)
	chain = append(chain, anchor)
	return chain
}
