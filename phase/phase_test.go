package phase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/markergraph"
)

// buildSNPChain constructs a BubbleChain of haploid(100,200) ->
// diploid{[200,201,300],[200,202,300]} -> haploid(300,400), the classic
// single-heterozygous-SNP shape.
func buildSNPChain() cpg.BubbleChain {
	return cpg.BubbleChain{Bubbles: []cpg.Bubble{
		{Chains: []cpg.Chain{{100, 200}}},
		{Chains: []cpg.Chain{{200, 201, 300}, {200, 202, 300}}},
		{Chains: []cpg.Chain{{300, 400}}},
	}}
}

func setConfidentPhase(mg *markergraph.InMemoryGraph, a0, a1, b0, b1 markergraph.EdgeId) {
	mg.SetEdgePairInfo(a0, b0, markergraph.EdgePairInfo{Common: 10})
	mg.SetEdgePairInfo(a1, b1, markergraph.EdgePairInfo{Common: 10})
	mg.SetEdgePairInfo(a0, b1, markergraph.EdgePairInfo{Common: 0})
	mg.SetEdgePairInfo(a1, b0, markergraph.EdgePairInfo{Common: 0})
}

func TestBuildFindsSingleDiploidVertex(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	g := cpg.NewGraph(mg)
	bc := buildSNPChain()
	pg := Build(g, bc, DefaultOptions)
	require.Len(t, pg.vertices, 1)
	require.Empty(t, pg.edges) // a single diploid bubble has no pair to classify
}

func TestEdgePhasesSingleSNPIntoOnePhasedComponent(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	g := cpg.NewGraph(mg)
	bc := buildSNPChain()
	a := g.AddVertex(100)
	b := g.AddVertex(400)
	id := g.AddEdge(a, b, bc)

	pg := Build(g, bc, DefaultOptions)
	components := Phase(pg)
	require.Len(t, components, 1)
	require.Len(t, components[0].Entries, 1)
	require.Equal(t, 1, components[0].Entries[0].Position)

	require.True(t, Edge(g, id, DefaultOptions))
}

func TestTwoCoPhasedSNPsProduceOnePhasedComponentOfSizeTwo(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	g := cpg.NewGraph(mg)
	bc := cpg.BubbleChain{Bubbles: []cpg.Bubble{
		{Chains: []cpg.Chain{{100, 200}}},
		{Chains: []cpg.Chain{{200, 201, 300}, {200, 202, 300}}},
		{Chains: []cpg.Chain{{300, 400}}},
		{Chains: []cpg.Chain{{400, 401, 500}, {400, 402, 500}}},
		{Chains: []cpg.Chain{{500, 600}}},
	}}
	// Side 0 of bubble 1 (marker 201) co-occurs with side 0 of bubble 3
	// (marker 401); side 1 co-occurs with side 1.
	setConfidentPhase(mg, 201, 202, 401, 402)

	pg := Build(g, bc, DefaultOptions)
	require.Len(t, pg.vertices, 2)
	require.Len(t, pg.edges, 1)
	require.Equal(t, 1, pg.edges[0].sign)

	components := Phase(pg)
	require.Len(t, components, 1)
	require.Len(t, components[0].Entries, 2)

	newBC := rewriteBubbleChain(g, bc, components, DefaultOptions)
	require.Len(t, newBC.Bubbles, 3)
	require.True(t, newBC.Bubbles[1].Diploid())
	// side 0 keeps 201 then 401, bracketed by the phased span's own anchors
	// (the diploid bubbles' shared markers 200 and 500, not the outer
	// haploid bubbles' 100/600).
	require.Equal(t, cpg.Chain{200, 201, 300, 401, 500}, newBC.Bubbles[1].Chains[0])
	require.Equal(t, cpg.Chain{200, 202, 300, 402, 500}, newBC.Bubbles[1].Chains[1])
}

func TestOutOfPhaseSNPsSwapSides(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	g := cpg.NewGraph(mg)
	bc := cpg.BubbleChain{Bubbles: []cpg.Bubble{
		{Chains: []cpg.Chain{{100, 200}}},
		{Chains: []cpg.Chain{{200, 201, 300}, {200, 202, 300}}},
		{Chains: []cpg.Chain{{300, 400}}},
		{Chains: []cpg.Chain{{400, 401, 500}, {400, 402, 500}}},
		{Chains: []cpg.Chain{{500, 600}}},
	}}
	// anti-diagonal confident: side 0 of bubble 1 co-occurs with side 1 of
	// bubble 3.
	setConfidentPhase(mg, 201, 202, 402, 401)

	pg := Build(g, bc, DefaultOptions)
	require.Len(t, pg.edges, 1)
	require.Equal(t, -1, pg.edges[0].sign)

	components := Phase(pg)
	require.Len(t, components, 1)
	newBC := rewriteBubbleChain(g, bc, components, DefaultOptions)
	require.Equal(t, cpg.Chain{200, 201, 300, 402, 500}, newBC.Bubbles[1].Chains[0])
	require.Equal(t, cpg.Chain{200, 202, 300, 401, 500}, newBC.Bubbles[1].Chains[1])
}

func TestShortUnphasedNonHaploidBubbleCollapses(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	g := cpg.NewGraph(mg)
	bc := cpg.BubbleChain{Bubbles: []cpg.Bubble{
		{Chains: []cpg.Chain{{100, 200}}},
		{Chains: []cpg.Chain{{200, 201, 300}, {200, 202, 300}}},
		{Chains: []cpg.Chain{{300, 400}}},
		{Chains: []cpg.Chain{{400, 501, 500}, {400, 502, 500}}},
		{Chains: []cpg.Chain{{500, 600}}},
	}}
	// Two diploid bubbles exist, so there is a candidate to compare
	// against, but every pair defaults to Common 0: neither row clears
	// ToleranceHigh, so Build produces zero edges and both bubbles stay
	// unphased rather than falling back to the single-bubble trivial case.
	pg := Build(g, bc, DefaultOptions)
	require.Len(t, pg.vertices, 2)
	require.Empty(t, pg.edges)
	require.Empty(t, Phase(pg))

	newBC := rewriteBubbleChain(g, bc, nil, DefaultOptions)
	require.Len(t, newBC.Bubbles, 5)
	require.True(t, newBC.Bubbles[1].Haploid())
	require.Equal(t, cpg.Chain{200, 300}, newBC.Bubbles[1].Chains[0])
	require.True(t, newBC.Bubbles[3].Haploid())
	require.Equal(t, cpg.Chain{400, 500}, newBC.Bubbles[3].Chains[0])
}
