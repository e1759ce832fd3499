// longasm-core runs the graph-based long-read assembly core end to end: it
// binds every pipeline stage's tunables to flags (or an optional YAML
// config file), runs PathGraph1 construction, CPG contraction, iterated
// detangling and phasing, chain optimization, and consensus assembly, and
// writes the result as GFA 1.0, FASTA, and CSV debug artifacts.
//
// The marker graph and read collaborators (construction and on-disk
// layout of the real mmap-backed marker graph) are out of this core's
// scope; -demo runs the pipeline against the in-memory reference
// implementation shipped for tests, for a smoke-test / worked example
// invocation.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"gopkg.in/yaml.v3"

	"github.com/grailbio/longasm/assemble"
	"github.com/grailbio/longasm/consensus"
	"github.com/grailbio/longasm/journey"
	"github.com/grailbio/longasm/markergraph"
)

type flags struct {
	configPath string
	demo       bool

	gfaOutput           string
	fastaOutput         string
	bubbleChainsCSVPath string
	bubblesCSVPath      string
	chainsCSVPath       string
	chainDetailsCSVPath string
}

func bindFlags(cfg *assemble.Config, fl *flags) {
	flag.StringVar(&fl.configPath, "config", "", "Path to a YAML file overriding the stage option defaults below.")
	flag.BoolVar(&fl.demo, "demo", false, "Run against the in-memory reference marker graph shipped for tests, instead of an external collaborator.")

	flag.StringVar(&fl.gfaOutput, "gfa-output", "out.gfa", "Path to write the GFA 1.0 assembly graph.")
	flag.StringVar(&fl.fastaOutput, "fasta-output", "out.fasta", "Path to write assembled Chain sequences.")
	flag.StringVar(&fl.bubbleChainsCSVPath, "bubble-chains-csv", "", "Path to write the bubble_chains.csv debug artifact (skipped if empty).")
	flag.StringVar(&fl.bubblesCSVPath, "bubbles-csv", "", "Path to write the bubbles.csv debug artifact (skipped if empty).")
	flag.StringVar(&fl.chainsCSVPath, "chains-csv", "", "Path to write the chains.csv debug artifact (skipped if empty).")
	flag.StringVar(&fl.chainDetailsCSVPath, "chain-details-csv", "", "Path to write the chain_details.csv debug artifact (skipped if empty).")

	flag.Uint64Var(&cfg.PathGraph1.MinPrimaryCoverage, "min-primary-coverage", cfg.PathGraph1.MinPrimaryCoverage, "Minimum marker graph edge coverage for primary-edge selection.")
	flag.Uint64Var(&cfg.PathGraph1.MaxPrimaryCoverage, "max-primary-coverage", cfg.PathGraph1.MaxPrimaryCoverage, "Maximum marker graph edge coverage for primary-edge selection.")
	flag.IntVar(&cfg.PathGraph1.MaxDistanceInJourney, "max-distance-in-journey", cfg.PathGraph1.MaxDistanceInJourney, "Max journey-step distance for candidate generation's journey-adjacency rule.")
	flag.IntVar(&cfg.PathGraph1.ForwardWalkMaxSteps, "forward-walk-max-steps", cfg.PathGraph1.ForwardWalkMaxSteps, "Max marker graph edges the constrained forward walk may take.")
	flag.Uint64Var(&cfg.PathGraph1.ForwardWalkMinCoverage, "forward-walk-min-coverage", cfg.PathGraph1.ForwardWalkMinCoverage, "Minimum coverage the forward walk requires at each step.")
	flag.Uint64Var(&cfg.PathGraph1.MinEdgeCoverage, "min-edge-coverage", cfg.PathGraph1.MinEdgeCoverage, "Minimum common-read count for a PathGraph1 edge.")
	flag.Float64Var(&cfg.PathGraph1.MinCorrectedJaccard, "min-corrected-jaccard", cfg.PathGraph1.MinCorrectedJaccard, "Minimum corrected Jaccard for a PathGraph1 edge.")
	flag.IntVar(&cfg.PathGraph1.MinComponentSize, "min-component-size", cfg.PathGraph1.MinComponentSize, "Minimum vertex count for a retained connected component.")
	flag.Int64Var(&cfg.PathGraph1.TransitiveReductionDistance, "transitive-reduction-distance", cfg.PathGraph1.TransitiveReductionDistance, "Max base offset for local transitive reduction.")
	flag.Uint64Var(&cfg.PathGraph1.TransitiveReductionMaxCoverage, "transitive-reduction-max-coverage", cfg.PathGraph1.TransitiveReductionMaxCoverage, "Max coverage for an edge eligible for local transitive reduction.")
	flag.Uint64Var(&cfg.PathGraph1.CrossEdgesLowCoverageThreshold, "cross-edges-low-coverage", cfg.PathGraph1.CrossEdgesLowCoverageThreshold, "Low-coverage threshold for cross-edge removal.")
	flag.Uint64Var(&cfg.PathGraph1.CrossEdgesHighCoverageThreshold, "cross-edges-high-coverage", cfg.PathGraph1.CrossEdgesHighCoverageThreshold, "High-coverage threshold for cross-edge removal.")
	flag.Int64Var(&cfg.PathGraph1.CrossEdgesMinOffset, "cross-edges-min-offset", cfg.PathGraph1.CrossEdgesMinOffset, "Minimum base offset for cross-edge removal.")
	flag.IntVar(&cfg.PathGraph1.KNN, "knn", cfg.PathGraph1.KNN, "If > 0, thin each vertex's edges to the top KNN by corrected Jaccard.")

	flag.Int64Var(&cfg.CPG.MaxOffset1, "max-offset1", cfg.CPG.MaxOffset1, "Max average base offset for the superbubble low-offset sub-graph.")
	flag.Int64Var(&cfg.CPG.MaxOffset2, "max-offset2", cfg.CPG.MaxOffset2, "Max base offset for a superbubble entrance-to-exit shortcut edge.")

	flag.Uint64Var(&cfg.Detangle.ToleranceLow, "detangle-tolerance-low", cfg.Detangle.ToleranceLow, "Max tangle matrix entry still considered noise.")
	flag.Uint64Var(&cfg.Detangle.ToleranceHigh, "detangle-tolerance-high", cfg.Detangle.ToleranceHigh, "Min tangle matrix entry considered a confident pairing.")

	flag.Uint64Var(&cfg.Phase.ToleranceLow, "phase-tolerance-low", cfg.Phase.ToleranceLow, "Max phasing tangle matrix entry still considered noise.")
	flag.Uint64Var(&cfg.Phase.ToleranceHigh, "phase-tolerance-high", cfg.Phase.ToleranceHigh, "Min phasing tangle matrix entry considered a confident pairing.")
	flag.Int64Var(&cfg.Phase.LongBubbleThreshold, "long-bubble-threshold", cfg.Phase.LongBubbleThreshold, "Base-offset threshold above which an unphased non-haploid bubble is kept verbatim instead of collapsed.")

	flag.Uint64Var(&cfg.ChainOpt.MinCommon, "chainopt-min-common", cfg.ChainOpt.MinCommon, "Min common-read count a backbone Chain transition must have to avoid alternate-edge search.")
	flag.IntVar(&cfg.ChainOpt.K, "chainopt-k", cfg.ChainOpt.K, "Window radius (in chain positions) chain optimization searches for alternate transitions.")

	flag.IntVar(&cfg.MaxDetangleRounds, "max-detangle-rounds", cfg.MaxDetangleRounds, "Max detangle/superbubble-removal rounds before giving up on a fixed point.")

	flag.Uint32Var(&cfg.Align4.DeltaX, "align4-delta-x", cfg.Align4.DeltaX, "Align4 cell-bucketing width in X.")
	flag.Uint32Var(&cfg.Align4.DeltaY, "align4-delta-y", cfg.Align4.DeltaY, "Align4 cell-bucketing width in Y.")
	flag.Uint32Var(&cfg.Align4.MinEntryCountPerCell, "align4-min-entries-per-cell", cfg.Align4.MinEntryCountPerCell, "Min matching-marker entries for an Align4 candidate cell.")
	flag.Uint32Var(&cfg.Align4.MaxDistanceFromBoundary, "align4-max-distance-from-boundary", cfg.Align4.MaxDistanceFromBoundary, "Max distance from the valid region's boundary for an Align4 candidate cell.")
	flag.Uint32Var(&cfg.Align4.MinAlignedMarkerCount, "align4-min-aligned-marker-count", cfg.Align4.MinAlignedMarkerCount, "Min aligned marker count for an accepted Align4 alignment.")
	flag.Float64Var(&cfg.Align4.MinAlignedFraction, "align4-min-aligned-fraction", cfg.Align4.MinAlignedFraction, "Min aligned fraction of the shorter read for an accepted Align4 alignment.")
	flag.Uint32Var(&cfg.Align4.MaxSkip, "align4-max-skip", cfg.Align4.MaxSkip, "Max ordinal gap tolerated between consecutive aligned markers.")
	flag.Uint32Var(&cfg.Align4.MaxDrift, "align4-max-drift", cfg.Align4.MaxDrift, "Max diagonal drift tolerated along an Align4 alignment.")
	flag.Uint32Var(&cfg.Align4.MaxTrim, "align4-max-trim", cfg.Align4.MaxTrim, "Max unaligned prefix/suffix tolerated on either read.")
	flag.Uint32Var(&cfg.Align4.MaxBand, "align4-max-band", cfg.Align4.MaxBand, "Max diagonal band width an accepted Align4 alignment may span.")
	flag.Int64Var(&cfg.Align4.MatchScore, "align4-match-score", cfg.Align4.MatchScore, "Align4 banded DP match score.")
	flag.Int64Var(&cfg.Align4.MismatchScore, "align4-mismatch-score", cfg.Align4.MismatchScore, "Align4 banded DP mismatch score.")
	flag.Int64Var(&cfg.Align4.GapScore, "align4-gap-score", cfg.Align4.GapScore, "Align4 banded DP gap score.")
}

func loadYAMLConfig(path string, cfg *assemble.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func buildDemoGraph() (*markergraph.InMemoryGraph, []markergraph.OrientedReadId) {
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

func usage() {
	fmt.Fprintln(os.Stderr, `longasm-core: graph-based long-read assembly core.

Usage:
  longasm-core -demo [flags]

The marker graph and read collaborators are supplied externally in a
production deployment; -demo exercises the full pipeline against the
in-memory reference graph shipped for tests.`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage

	cfg := assemble.DefaultConfig
	var fl flags
	bindFlags(&cfg, &fl)
	flag.Parse()

	if fl.configPath != "" {
		if err := loadYAMLConfig(fl.configPath, &cfg); err != nil {
			log.Panicf("loading config %s: %v", fl.configPath, err)
		}
	}

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if !fl.demo {
		log.Fatal("longasm-core requires an external marker graph collaborator; pass -demo to run against the in-memory reference graph")
	}

	mg, reads := buildDemoGraph()
	journeys := journey.Build(reads, mg)

	g := assemble.Run(mg, journeys, cfg)
	log.Printf("assembled CPG: %d vertices, %d edges", g.NumVertices(), len(g.AllEdges()))

	store, err := assemble.AssembleChains(mg, g, cfg, consensus.NaiveAssembler{})
	if err != nil {
		log.Panicf("assembling chains: %v", err)
	}

	if err := assemble.WriteGFA(ctx, fl.gfaOutput, g, store); err != nil {
		log.Panicf("writing GFA: %v", err)
	}
	if err := assemble.WriteFASTA(ctx, fl.fastaOutput, g, store); err != nil {
		log.Panicf("writing FASTA: %v", err)
	}
	if fl.bubbleChainsCSVPath != "" {
		if err := assemble.WriteBubbleChainsCSV(ctx, fl.bubbleChainsCSVPath, mg, g); err != nil {
			log.Panicf("writing bubble_chains.csv: %v", err)
		}
	}
	if fl.bubblesCSVPath != "" {
		if err := assemble.WriteBubblesCSV(ctx, fl.bubblesCSVPath, g); err != nil {
			log.Panicf("writing bubbles.csv: %v", err)
		}
	}
	if fl.chainsCSVPath != "" {
		if err := assemble.WriteChainsCSV(ctx, fl.chainsCSVPath, g, store); err != nil {
			log.Panicf("writing chains.csv: %v", err)
		}
	}
	if fl.chainDetailsCSVPath != "" {
		if err := assemble.WriteChainDetailsCSV(ctx, fl.chainDetailsCSVPath, g); err != nil {
			log.Panicf("writing chain_details.csv: %v", err)
		}
	}
	log.Printf("All done")
}
