package assemble

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/longasm/consensus"
	"github.com/grailbio/longasm/journey"
	"github.com/grailbio/longasm/markergraph"
	"github.com/grailbio/longasm/util"
)

// buildDiamond constructs the same 5-edge marker graph diamond used by
// pathgraph1's own tests:
//
//	V0 --E0--> V1 --E1--> V2 --E3--> V4
//	                 \--E2--> V3 --E4--/
//
// 8 reads take E0,E1,E3; 8 take E0,E2,E4, so E1/E2 form a simple diploid
// bubble once contracted and compressed.
func buildDiamond() (*markergraph.InMemoryGraph, []markergraph.OrientedReadId) {
	g := markergraph.NewInMemoryGraph()
	const (
		v0 markergraph.VertexId = iota
		v1
		v2
		v3
		v4
	)
	const (
		e0 markergraph.EdgeId = iota
		e1
		e2
		e3
		e4
	)

	var reads []markergraph.OrientedReadId
	var e0Ivs, e1Ivs, e2Ivs, e3Ivs, e4Ivs []markergraph.MarkerInterval
	for i := uint32(0); i < 16; i++ {
		r := markergraph.NewOrientedReadId(markergraph.ReadId(i), 0)
		reads = append(reads, r)
		e0Ivs = append(e0Ivs, markergraph.MarkerInterval{Read: r, OrdinalSource: 0, OrdinalTarget: 1})
		if i < 8 {
			e1Ivs = append(e1Ivs, markergraph.MarkerInterval{Read: r, OrdinalSource: 1, OrdinalTarget: 2})
			e3Ivs = append(e3Ivs, markergraph.MarkerInterval{Read: r, OrdinalSource: 2, OrdinalTarget: 3})
		} else {
			e2Ivs = append(e2Ivs, markergraph.MarkerInterval{Read: r, OrdinalSource: 1, OrdinalTarget: 2})
			e4Ivs = append(e4Ivs, markergraph.MarkerInterval{Read: r, OrdinalSource: 2, OrdinalTarget: 3})
		}
	}
	g.AddEdge(e0, v0, v1, e0Ivs)
	g.AddEdge(e1, v1, v2, e1Ivs)
	g.AddEdge(e2, v1, v3, e2Ivs)
	g.AddEdge(e3, v2, v4, e3Ivs)
	g.AddEdge(e4, v3, v4, e4Ivs)
	return g, reads
}

func TestRunProducesACompressedGraphAndWritersSucceed(t *testing.T) {
	mg, reads := buildDiamond()
	journeys := journey.Build(reads, mg)

	g := Run(mg, journeys, DefaultConfig)
	require.NotNil(t, g)
	require.Greater(t, g.NumVertices(), 0)
	require.NotEmpty(t, g.AllEdges())

	store, err := AssembleChains(mg, g, DefaultConfig, consensus.NaiveAssembler{})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteGFA(vcontext.Background(), filepath.Join(dir, "out.gfa"), g, store))
	require.NoError(t, WriteFASTA(vcontext.Background(), filepath.Join(dir, "out.fasta"), g, store))
	require.NoError(t, WriteBubbleChainsCSV(vcontext.Background(), filepath.Join(dir, "bubble_chains.csv"), mg, g))
	require.NoError(t, WriteBubblesCSV(vcontext.Background(), filepath.Join(dir, "bubbles.csv"), g))
	require.NoError(t, WriteChainsCSV(vcontext.Background(), filepath.Join(dir, "chains.csv"), g, store))
	require.NoError(t, WriteChainDetailsCSV(vcontext.Background(), filepath.Join(dir, "chain_details.csv"), g))

	for _, name := range []string{"out.gfa", "out.fasta", "bubble_chains.csv", "bubbles.csv", "chains.csv", "chain_details.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}

// buildLinear constructs a single-haplotype linear marker graph
// V0--E0-->V1--E1-->V2--E2-->V3, covered uniformly by every read, matching
// scenario S1 (single haploid linear genome): no branch points at all, so
// PathGraph1/CPG should collapse it to one component with no Bubbles.
func buildLinear() (*markergraph.InMemoryGraph, []markergraph.OrientedReadId) {
	g := markergraph.NewInMemoryGraph()
	const (
		v0 markergraph.VertexId = iota
		v1
		v2
		v3
	)
	const (
		e0 markergraph.EdgeId = iota
		e1
		e2
	)
	var reads []markergraph.OrientedReadId
	var e0Ivs, e1Ivs, e2Ivs []markergraph.MarkerInterval
	for i := uint32(0); i < 16; i++ {
		r := markergraph.NewOrientedReadId(markergraph.ReadId(i), 0)
		reads = append(reads, r)
		e0Ivs = append(e0Ivs, markergraph.MarkerInterval{Read: r, OrdinalSource: 0, OrdinalTarget: 1})
		e1Ivs = append(e1Ivs, markergraph.MarkerInterval{Read: r, OrdinalSource: 1, OrdinalTarget: 2})
		e2Ivs = append(e2Ivs, markergraph.MarkerInterval{Read: r, OrdinalSource: 2, OrdinalTarget: 3})
	}
	g.AddEdge(e0, v0, v1, e0Ivs)
	g.AddEdge(e1, v1, v2, e1Ivs)
	g.AddEdge(e2, v2, v3, e2Ivs)
	return g, reads
}

func TestRunOnLinearGenomeProducesOneEdgeNoBubbles(t *testing.T) {
	mg, reads := buildLinear()
	journeys := journey.Build(reads, mg)

	g := Run(mg, journeys, DefaultConfig)
	require.Equal(t, 1, len(g.AllEdges()), "a single haploid linear genome should collapse to one CPG edge")

	edge, ok := g.Edge(g.AllEdges()[0])
	require.True(t, ok)
	for _, b := range edge.BubbleChain.Bubbles {
		require.Equal(t, 1, b.Ploidy(), "a linear genome carries no heterozygous bubbles")
	}

	store, err := AssembleChains(mg, g, DefaultConfig, consensus.NaiveAssembler{})
	require.NoError(t, err)

	dir := t.TempDir()
	fastaPath := filepath.Join(dir, "linear.fasta")
	require.NoError(t, WriteFASTA(vcontext.Background(), fastaPath, g, store))
	info, err := os.Stat(fastaPath)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

// TestRunOnDiamondProducesOneHeterozygousBubble exercises scenario S2 (single
// heterozygous SNP) at the full pipeline level: buildDiamond's two parallel
// E1/E2 paths, each carried by half the reads, should collapse to one CPG
// edge with a single diploid Bubble whose two Chains assemble to distinct
// sequences.
func TestRunOnDiamondProducesOneHeterozygousBubble(t *testing.T) {
	mg, reads := buildDiamond()
	journeys := journey.Build(reads, mg)

	g := Run(mg, journeys, DefaultConfig)
	require.Equal(t, 1, len(g.AllEdges()))

	edge, ok := g.Edge(g.AllEdges()[0])
	require.True(t, ok)
	require.Len(t, edge.BubbleChain.Bubbles, 1)
	require.True(t, edge.BubbleChain.Bubbles[0].Diploid())
	require.Equal(t, 2, edge.BubbleChain.Bubbles[0].Ploidy())

	store, err := AssembleChains(mg, g, DefaultConfig, consensus.NaiveAssembler{})
	require.NoError(t, err)
	seq0, ok0 := store.Get(g.AllEdges()[0], 0, 0)
	seq1, ok1 := store.Get(g.AllEdges()[0], 0, 1)
	require.True(t, ok0)
	require.True(t, ok1)
	require.NotEmpty(t, seq0)
	require.NotEmpty(t, seq1)

	// The bubble's two haplotype chains traverse distinct marker graph
	// edges (E1 vs E2), so their consensus sequences must differ.
	require.Greater(t, util.Levenshtein(seq0, seq1, "", ""), 0)
}

func TestRunIsDeterministicAcrossRepeatedCalls(t *testing.T) {
	mg, reads := buildDiamond()
	journeys := journey.Build(reads, mg)

	g1 := Run(mg, journeys, DefaultConfig)
	g2 := Run(mg, journeys, DefaultConfig)

	require.Equal(t, g1.AllEdges(), g2.AllEdges())
	require.Equal(t, g1.NumVertices(), g2.NumVertices())
}
