// Package assemble is the top-level driver (the "Driver / output" row of
// the component table): it wires primary-edge selection and PathGraph1
// construction, CPG contraction, iterated superbubble removal,
// detangling, and phasing, chain optimization, and consensus assembly
// into one pipeline, and writes the result as GFA 1.0, FASTA, and CSV
// debug artifacts.
package assemble

import (
	"github.com/grailbio/longasm/align4"
	"github.com/grailbio/longasm/chainopt"
	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/detangle"
	"github.com/grailbio/longasm/pathgraph1"
	"github.com/grailbio/longasm/phase"
)

// Config aggregates the tunables of every pipeline stage, following the
// teacher's Opts/DefaultOpts convention (fusion.Opts, markduplicates.Opts)
// generalized to a struct of structs since this pipeline has more than one
// stage worth configuring.
type Config struct {
	Align4     align4.Options     `yaml:"align4"`
	PathGraph1 pathgraph1.Options `yaml:"path_graph1"`
	CPG        cpg.Options        `yaml:"cpg"`
	Detangle   detangle.Options   `yaml:"detangle"`
	Phase      phase.Options      `yaml:"phase"`
	ChainOpt   chainopt.Options   `yaml:"chain_opt"`

	// MaxDetangleRounds bounds the detangle/superbubble-removal fixed-point
	// loop, guarding against a pathological graph that never stabilizes.
	MaxDetangleRounds int `yaml:"max_detangle_rounds"`

	// SuperbubbleScales is the ordered (maxOffset1, maxOffset2) schedule
	// RemoveSuperbubbles is run at each round, smallest scale first, per
	// superbubbleRemovalMaxOffsets.
	SuperbubbleScales []cpg.OffsetPair `yaml:"superbubble_scales"`
	// ShortSuperbubbleScales is the ordered maxOffset1 schedule
	// detangle.ShortSuperbubble is run at each round, smallest scale first.
	ShortSuperbubbleScales []int64 `yaml:"short_superbubble_scales"`
}

// DefaultConfig composes every stage's own DefaultOptions. SuperbubbleScales
// and ShortSuperbubbleScales follow the core's stated offset-scale
// progression (small local bubbles first, then increasingly long
// repeat-spanning ones); CPG.MaxOffset1/MaxOffset2 remain the thresholds
// used directly by callers that want a single fixed scale (e.g. tests).
var DefaultConfig = Config{
	Align4:                 align4.DefaultOptions,
	PathGraph1:             pathgraph1.DefaultOptions,
	CPG:                    cpg.DefaultOptions,
	Detangle:               detangle.DefaultOptions,
	Phase:                  phase.DefaultOptions,
	ChainOpt:               chainopt.DefaultOptions,
	MaxDetangleRounds:      10,
	SuperbubbleScales:      []cpg.OffsetPair{{MaxOffset1: 100, MaxOffset2: 500}, {MaxOffset1: 10000, MaxOffset2: 50000}},
	ShortSuperbubbleScales: []int64{100, 200, 400, 800},
}
