package chainopt

import "github.com/grailbio/longasm/markergraph"

// localArc is one candidate transition in the local graph: a backbone arc
// (j1 == i+1 in the original position numbering) or an alternate spanning
// several positions.
type localArc struct {
	from, to int
	common   uint64
}

// localGraph is the small per-Chain correction graph: n positions (one per
// marker graph edge in the original Chain), linked by the surviving
// backbone arcs plus whatever alternates out-scored a weak backbone arc.
type localGraph struct {
	n    int
	out  [][]localArc
	arcs []localArc
}

func newLocalGraph(n int) *localGraph {
	return &localGraph{n: n, out: make([][]localArc, n)}
}

func (lg *localGraph) addArc(from, to int, common uint64) {
	a := localArc{from: from, to: to, common: common}
	lg.out[from] = append(lg.out[from], a)
	lg.arcs = append(lg.arcs, a)
}

// buildLocalGraph lays down the linear backbone 0->1->...->n-1 over chain,
// then for every backbone arc weaker than opts.MinCommon, searches the
// window [i-K,i]x[i,i+K] for an alternate arc that strictly beats it,
// excluding the literal pair (i-1,i) which is just the backbone arc
// itself. The backbone arc is dropped only if at least one alternate was
// added in its place.
func buildLocalGraph(mg markergraph.Graph, chain []markergraph.EdgeId, opts Options) *localGraph {
	n := len(chain)
	lg := newLocalGraph(n)

	common := make([]uint64, n-1)
	for i := 0; i+1 < n; i++ {
		common[i] = mg.AnalyzeEdgePair(chain[i], chain[i+1]).Common
	}

	for i := 0; i+1 < n; i++ {
		backboneCommon := common[i]
		added := false
		if backboneCommon < opts.MinCommon {
			lo := i - opts.K
			if lo < 0 {
				lo = 0
			}
			hi := i + opts.K
			if hi > n-1 {
				hi = n - 1
			}
			for j0 := lo; j0 <= i; j0++ {
				for j1 := i; j1 <= hi; j1++ {
					if j0 == i && j1 == i {
						continue
					}
					if j0 == i-1 && j1 == i {
						continue // the backbone arc itself
					}
					if j0 >= j1 {
						continue
					}
					alt := mg.AnalyzeEdgePair(chain[j0], chain[j1]).Common
					if alt > backboneCommon {
						lg.addArc(j0, j1, alt)
						added = true
					}
				}
			}
		}
		if !added {
			lg.addArc(i, i+1, backboneCommon)
		}
	}
	return lg
}
