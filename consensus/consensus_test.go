package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grailbio/longasm/chainopt"
	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/markergraph"
)

func TestAssembleEdgeRecordsOneSequencePerChain(t *testing.T) {
	mg := markergraph.NewInMemoryGraph()
	mg.SetEdgePairInfo(100, 200, markergraph.EdgePairInfo{Common: 10, OffsetInBases: 5})
	mg.SetEdgePairInfo(100, 300, markergraph.EdgePairInfo{Common: 10, OffsetInBases: 7})

	g := cpg.NewGraph(mg)
	a := g.AddVertex(100)
	b := g.AddVertex(400)
	bc := cpg.BubbleChain{Bubbles: []cpg.Bubble{
		{Chains: []cpg.Chain{{100, 200}, {100, 300}}},
	}}
	id := g.AddEdge(a, b, bc)
	edge, ok := g.Edge(id)
	require.True(t, ok)

	store := NewStore()
	require.NoError(t, store.AssembleEdge(mg, edge, chainopt.DefaultOptions, NaiveAssembler{}))

	seq0, ok := store.Get(id, 0, 0)
	require.True(t, ok)
	require.Len(t, seq0, 6) // leading base + 5-base offset

	seq1, ok := store.Get(id, 0, 1)
	require.True(t, ok)
	require.Len(t, seq1, 8) // leading base + 7-base offset

	_, ok = store.Get(id, 1, 0)
	require.False(t, ok)
}
