package assemble

import (
	"github.com/grailbio/base/log"

	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/detangle"
	"github.com/grailbio/longasm/journey"
	"github.com/grailbio/longasm/markergraph"
	"github.com/grailbio/longasm/pathgraph1"
	"github.com/grailbio/longasm/phase"
)

// Run executes the full pipeline over a built marker graph and its
// journeys: PathGraph1 construction, CPG contraction, iterated
// superbubble removal and detangling to a fixed point, and phasing.
// Chain optimization and consensus assembly are driven separately by
// AssembleChains, since they depend on an injected consensus.Assembler
// the caller supplies.
func Run(mg markergraph.Graph, journeys *journey.Store, cfg Config) *cpg.Graph {
	pg := pathgraph1.Build(mg, journeys, cfg.PathGraph1)
	g := cpg.BuildFromPathGraph1(pg, mg)
	g.Compress()

	detangleToFixedPoint(g, cfg)
	phaseAll(g, cfg)

	return g
}

// detangleToFixedPoint alternates superbubble removal (at every configured
// scale, smallest first) and the three detangling special cases over every
// live vertex and edge, compressing after each round, until a round makes
// no change or MaxDetangleRounds is reached.
func detangleToFixedPoint(g *cpg.Graph, cfg Config) {
	for round := 0; round < cfg.MaxDetangleRounds; round++ {
		changed := false

		for _, scale := range cfg.SuperbubbleScales {
			if g.RemoveSuperbubbles(scale.MaxOffset1, scale.MaxOffset2) > 0 {
				changed = true
			}
		}

		for v := cpg.VertexId(0); int(v) < g.NumVertices(); v++ {
			if detangle.Vertex(g, v, cfg.Detangle) {
				changed = true
			}
		}

		for _, id := range g.AllEdges() {
			switch {
			case detangle.Edge(g, id, cfg.Detangle):
				changed = true
			case detangle.Back(g, id, cfg.Detangle):
				changed = true
			}
		}

		for _, maxOffset1 := range cfg.ShortSuperbubbleScales {
			if detangle.ShortSuperbubble(g, maxOffset1, cfg.Detangle) > 0 {
				changed = true
			}
		}

		g.Compress()
		if !changed {
			log.Debug.Printf("detangle: fixed point reached after %d round(s)", round+1)
			return
		}
	}
	log.Printf("detangle: MaxDetangleRounds (%d) reached without a fixed point", cfg.MaxDetangleRounds)
}

// phaseAll runs phase.Edge over every live edge's BubbleChain once;
// phasing never introduces new detangling opportunities, so a single pass
// suffices (per the core's phase-runs-after-detangle ordering).
func phaseAll(g *cpg.Graph, cfg Config) {
	for _, id := range g.AllEdges() {
		phase.Edge(g, id, cfg.Phase)
	}
}
