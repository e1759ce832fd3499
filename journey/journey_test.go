package journey

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grailbio/longasm/markergraph"
)

func TestBuildSimpleLinearJourney(t *testing.T) {
	g := markergraph.NewInMemoryGraph()
	r0 := markergraph.NewOrientedReadId(0, 0)
	// Read 0 visits edges 1 -> 2 -> 3, in order.
	g.AddEdge(1, 10, 11, []markergraph.MarkerInterval{{Read: r0, OrdinalSource: 0, OrdinalTarget: 2}})
	g.AddEdge(2, 11, 12, []markergraph.MarkerInterval{{Read: r0, OrdinalSource: 2, OrdinalTarget: 5}})
	g.AddEdge(3, 12, 13, []markergraph.MarkerInterval{{Read: r0, OrdinalSource: 5, OrdinalTarget: 9}})

	store := Build([]markergraph.OrientedReadId{r0}, g)
	require.Equal(t, []markergraph.EdgeId{1, 2, 3}, store.OrientedReadJourney(r0))

	entries := store.EdgeJourneyEntries(2)
	require.Len(t, entries, 1)
	require.Equal(t, r0, entries[0].Read)
	require.Equal(t, int32(1), entries[0].Position)

	require.Empty(t, store.EdgeJourneyEntries(999))
}

func TestBuildMultipleReadsShareEdge(t *testing.T) {
	g := markergraph.NewInMemoryGraph()
	r0 := markergraph.NewOrientedReadId(0, 0)
	r1 := markergraph.NewOrientedReadId(1, 0)
	g.AddEdge(1, 10, 11, []markergraph.MarkerInterval{
		{Read: r0, OrdinalSource: 0, OrdinalTarget: 1},
		{Read: r1, OrdinalSource: 3, OrdinalTarget: 4},
	})
	g.AddEdge(2, 11, 12, []markergraph.MarkerInterval{
		{Read: r0, OrdinalSource: 1, OrdinalTarget: 2},
	})

	store := Build([]markergraph.OrientedReadId{r0, r1}, g)
	require.Equal(t, []markergraph.EdgeId{1, 2}, store.OrientedReadJourney(r0))
	require.Equal(t, []markergraph.EdgeId{1}, store.OrientedReadJourney(r1))

	entries := store.EdgeJourneyEntries(1)
	require.Len(t, entries, 2)
}
