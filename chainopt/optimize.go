package chainopt

import (
	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/markergraph"
)

// Optimize replaces chain with the locally-corrected path selected by
// building the per-Chain local graph, computing its dominator tree from
// position 0, and within each segment of the 0-to-last dominator path,
// picking the simple path that maximizes the minimum edge common (ties
// broken toward the longer path). Chains of fewer than 2 marker graph
// edges have nothing to optimize and are returned unchanged.
//
// With MinCommon == 0 no backbone arc is ever weak enough to trigger
// alternate-edge search (Common is never negative), so the local graph
// reduces to the pure backbone, whose dominator path and single-arc
// segments reproduce chain verbatim: optimization at MinCommon == 0 is a
// no-op.
func Optimize(mg markergraph.Graph, chain cpg.Chain, opts Options) cpg.Chain {
	if len(chain) < 2 {
		return chain
	}

	lg := buildLocalGraph(mg, []markergraph.EdgeId(chain), opts)
	idom := computeIdom(lg)
	domPath := dominatorPath(idom, lg.n)

	out := make([]int, 0, lg.n)
	for i := 0; i+1 < len(domPath); i++ {
		seg := bestPath(lg, domPath[i], domPath[i+1])
		if seg == nil {
			seg = []int{domPath[i], domPath[i+1]} // segment endpoints are always adjacent on the dominator path
		}
		if i > 0 {
			seg = seg[1:] // skip the junction node shared with the previous segment
		}
		out = append(out, seg...)
	}

	result := make(cpg.Chain, len(out))
	for i, idx := range out {
		result[i] = chain[idx]
	}
	return result
}
