// Package phase implements the phaser (component G): it builds a phasing
// graph over a BubbleChain's diploid bubbles, classifies candidate edges by
// a 2x2 tangle matrix, extracts PhasedComponents by iterated spanning-tree
// phasing plus DAG longest path, and rewrites the BubbleChain accordingly.
package phase

import "github.com/grailbio/longasm/cpg"

// vertex is one diploid bubble of the BubbleChain being phased, at its
// original bubble index (not renumbered as vertices are removed).
type vertex struct {
	position int
	bubble   cpg.Bubble
}

// edge is a classified candidate phasing edge between two diploid bubbles
// i < j (indices into PhasingGraph.vertices).
type edge struct {
	i, j          int
	sign          int
	minConcordant uint64
	maxDiscordant uint64
}

// PhasingGraph holds one BubbleChain's diploid-bubble vertices and every
// edge that classified as in-phase or out-of-phase.
type PhasingGraph struct {
	g        *cpg.Graph
	vertices []vertex
	edges    []edge
}

// Build constructs the PhasingGraph for bc: a vertex for every diploid
// bubble, and a classified edge for every pair (i, j), i < j, whose 2x2
// tangle matrix clears the classification thresholds.
func Build(g *cpg.Graph, bc cpg.BubbleChain, opts Options) *PhasingGraph {
	pg := &PhasingGraph{g: g}
	for pos, b := range bc.Bubbles {
		if b.Diploid() {
			pg.vertices = append(pg.vertices, vertex{position: pos, bubble: b})
		}
	}
	for i := 0; i < len(pg.vertices); i++ {
		for j := i + 1; j < len(pg.vertices); j++ {
			m := tangleMatrix(g, pg.vertices[i].bubble, pg.vertices[j].bubble)
			sign, ok, minC, maxD := classify(m, opts)
			if ok {
				pg.edges = append(pg.edges, edge{i: i, j: j, sign: sign, minConcordant: minC, maxDiscordant: maxD})
			}
		}
	}
	return pg
}

// tangleMatrix computes common(a.Chains[x].LastInterior(), b.Chains[y].FirstInterior())
// for x, y in {0, 1} — the evidence connecting bubble a's right-hand side to
// bubble b's left-hand side on each pairing of haplotype chains, skipping
// the shared anchor markers exactly as the detangler's tangle matrix does.
func tangleMatrix(g *cpg.Graph, a, b cpg.Bubble) [2][2]uint64 {
	var m [2][2]uint64
	for x := 0; x < 2; x++ {
		left := a.Chains[x].LastInterior()
		for y := 0; y < 2; y++ {
			right := b.Chains[y].FirstInterior()
			m[x][y] = g.AnalyzeEdgePair(left, right).Common
		}
	}
	return m
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// classify applies the edge-classification rule: in phase (+1) if both
// diagonal entries clear ToleranceHigh and both off-diagonals stay at or
// below ToleranceLow; out of phase (-1) if the anti-diagonal clears
// ToleranceHigh and the diagonal stays low. maxDiscordant for the
// out-of-phase branch is the true maximum over all four matrix entries,
// not a duplicated single index.
func classify(m [2][2]uint64, opts Options) (sign int, ok bool, minConcordant, maxDiscordant uint64) {
	if m[0][0] >= opts.ToleranceHigh && m[1][1] >= opts.ToleranceHigh &&
		m[0][1] <= opts.ToleranceLow && m[1][0] <= opts.ToleranceLow {
		return 1, true, minU64(m[0][0], m[1][1]), maxU64(m[0][1], m[1][0])
	}
	if m[0][1] >= opts.ToleranceHigh && m[1][0] >= opts.ToleranceHigh &&
		m[0][0] <= opts.ToleranceLow && m[1][1] <= opts.ToleranceLow {
		all := maxU64(maxU64(m[0][0], m[0][1]), maxU64(m[1][0], m[1][1]))
		return -1, true, minU64(m[0][1], m[1][0]), all
	}
	return 0, false, 0, 0
}
