package chainopt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/markergraph"
)

func TestOptimizeWithZeroMinCommonIsNoOp(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	chain := cpg.Chain{10, 20, 30, 40, 50}
	for i := 0; i+1 < len(chain); i++ {
		mg.SetEdgePairInfo(chain[i], chain[i+1], markergraph.EdgePairInfo{Common: 1})
	}

	out := Optimize(mg, chain, Options{MinCommon: 0, K: 3})
	require.Equal(t, chain, out)
}

func TestOptimizeReplacesWeakBackboneArcWithStrongerAlternate(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	chain := cpg.Chain{10, 20, 30, 40, 50}
	// 20->30 is the only backbone arc below MinCommon (the others have
	// Common 5), and 10->30 jumps over it with much stronger support.
	mg.SetEdgePairInfo(chain[0], chain[1], markergraph.EdgePairInfo{Common: 5})
	mg.SetEdgePairInfo(chain[1], chain[2], markergraph.EdgePairInfo{Common: 1})
	mg.SetEdgePairInfo(chain[2], chain[3], markergraph.EdgePairInfo{Common: 5})
	mg.SetEdgePairInfo(chain[3], chain[4], markergraph.EdgePairInfo{Common: 5})
	mg.SetEdgePairInfo(chain[0], chain[2], markergraph.EdgePairInfo{Common: 9})

	lg := buildLocalGraph(mg, []markergraph.EdgeId(chain), Options{MinCommon: 4, K: 2})

	var sawAlt, sawBackbone bool
	for _, a := range lg.out[0] {
		if a.to == 2 && a.common == 9 {
			sawAlt = true
		}
	}
	for _, a := range lg.out[1] {
		if a.to == 2 {
			sawBackbone = true
		}
	}
	require.True(t, sawAlt, "expected alternate arc 0->2 to be added")
	require.False(t, sawBackbone, "expected the weak backbone arc 1->2 to be dropped")

	out := Optimize(mg, chain, Options{MinCommon: 4, K: 2})
	require.Equal(t, cpg.Chain{10, 30, 40, 50}, out)
}

func TestOptimizeShortChainUnchanged(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	chain := cpg.Chain{10, 20}
	out := Optimize(mg, chain, DefaultOptions)
	require.Equal(t, chain, out)
}

func TestBestPathPrefersHigherMinimumOverLength(t *testing.T) {
	lg := newLocalGraph(4)
	lg.addArc(0, 1, 1)
	lg.addArc(1, 2, 1)
	lg.addArc(2, 3, 1)
	lg.addArc(0, 3, 5)

	path := bestPath(lg, 0, 3)
	require.Equal(t, []int{0, 3}, path)
}

func TestDominatorPathSingleChain(t *testing.T) {
	lg := newLocalGraph(4)
	lg.addArc(0, 1, 3)
	lg.addArc(1, 2, 3)
	lg.addArc(2, 3, 3)

	idom := computeIdom(lg)
	require.Equal(t, []int{0, 0, 1, 2}, idom)
	require.Equal(t, []int{0, 1, 2, 3}, dominatorPath(idom, 4))
}
