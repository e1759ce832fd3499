package detangle

import (
	"github.com/grailbio/base/log"

	"github.com/grailbio/longasm/cpg"
)

// Classification is the outcome of judging a tangle matrix.
type Classification int

const (
	// Negligible: every entry is at or below ToleranceLow — no signal.
	Negligible Classification = iota
	// Ambiguous: some entry lies strictly between ToleranceLow and
	// ToleranceHigh, or some row or column has no entry at or above
	// ToleranceHigh — a real tangle the core cannot safely resolve.
	Ambiguous
	// Significant: no entry is ambiguous and every row and every column has
	// at least one entry at or above ToleranceHigh; a lane may pair with
	// more than one partner.
	Significant
)

// TangleMatrix is common(lastInterior(in[i]), firstInterior(out[j])) for a
// pair of in/out edge sets incident to a junction (or joined junction set).
// Every edge must already have a haploid last/first bubble respectively
// (the caller splits first via cpg.SplitBubbleChainAt{End,Beginning} if
// not — the "general" variant).
type TangleMatrix struct {
	InEdges, OutEdges []cpg.EdgeId
	M                 [][]uint64
}

// Build computes the tangle matrix for ins (edges whose last bubble must
// be haploid) and outs (edges whose first bubble must be haploid).
func Build(g *cpg.Graph, ins, outs []cpg.EdgeId) *TangleMatrix {
	tm := &TangleMatrix{InEdges: ins, OutEdges: outs, M: make([][]uint64, len(ins))}
	for i, inID := range ins {
		inEdge, ok := g.Edge(inID)
		if !ok {
			log.Panicf("detangle: unknown in-edge %d", inID)
		}
		lastBubble := inEdge.BubbleChain.Bubbles[len(inEdge.BubbleChain.Bubbles)-1]
		if !lastBubble.Haploid() {
			log.Panicf("detangle: in-edge %d last bubble is not haploid", inID)
		}
		a := lastBubble.Chains[0].LastInterior()
		row := make([]uint64, len(outs))
		for j, outID := range outs {
			outEdge, ok := g.Edge(outID)
			if !ok {
				log.Panicf("detangle: unknown out-edge %d", outID)
			}
			firstBubble := outEdge.BubbleChain.Bubbles[0]
			if !firstBubble.Haploid() {
				log.Panicf("detangle: out-edge %d first bubble is not haploid", outID)
			}
			b := firstBubble.Chains[0].FirstInterior()
			row[j] = g.AnalyzeEdgePair(a, b).Common
		}
		tm.M[i] = row
	}
	return tm
}

// Pair is one significant in-lane -> out-lane connection (indices into
// InEdges/OutEdges). A Significant verdict's Pairing may connect an
// in-lane to more than one out-lane, or vice versa, when the junction is
// a genuine branch or merge point rather than a 1:1 crossing.
type Pair struct {
	In, Out int
}

// Verdict is a TangleMatrix's classification plus, when Significant, every
// confident in-lane -> out-lane connection.
type Verdict struct {
	Classification Classification
	Pairing        []Pair
}

// Classify judges every entry of the matrix independently against
// ToleranceHigh/ToleranceLow: an entry is significant at or above
// ToleranceHigh, negligible at or below ToleranceLow, and ambiguous
// strictly between the two. The whole matrix is Negligible only if every
// entry is negligible. Otherwise it is Significant, with every significant
// entry connected, unless any entry is ambiguous or any row or column has
// no significant entry at all — those cases are a real tangle the core
// cannot safely resolve, and are reported Ambiguous instead.
func (tm *TangleMatrix) Classify(opts Options) Verdict {
	n, m := len(tm.InEdges), len(tm.OutEdges)
	var pairing []Pair
	rowSignificant := make([]bool, n)
	colSignificant := make([]bool, m)
	sawSignificant := false
	sawAmbiguous := false

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			v := tm.M[i][j]
			switch {
			case v >= opts.ToleranceHigh:
				pairing = append(pairing, Pair{In: i, Out: j})
				rowSignificant[i] = true
				colSignificant[j] = true
				sawSignificant = true
			case v <= opts.ToleranceLow:
				// negligible: no signal, no classification contribution.
			default:
				sawAmbiguous = true
			}
		}
	}

	if !sawSignificant && !sawAmbiguous {
		return Verdict{Classification: Negligible}
	}
	for i := 0; i < n && !sawAmbiguous; i++ {
		if !rowSignificant[i] {
			sawAmbiguous = true
		}
	}
	for j := 0; j < m && !sawAmbiguous; j++ {
		if !colSignificant[j] {
			sawAmbiguous = true
		}
	}
	if sawAmbiguous {
		return Verdict{Classification: Ambiguous}
	}
	return Verdict{Classification: Significant, Pairing: pairing}
}
