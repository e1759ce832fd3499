// Package detangle implements component F: local tangle-matrix decisions
// over a CompressedPathGraph — detangling a vertex, an edge, a short
// superbubble, or a lone back-edge — each reducible to the same
// classify-then-rewire core.
package detangle

// Options are the tangle-matrix classification thresholds.
type Options struct {
	// ToleranceLow is the maximum common-read count a tangle matrix entry
	// may have and still be considered noise.
	ToleranceLow uint64 `yaml:"tolerance_low"`
	// ToleranceHigh is the minimum common-read count a tangle matrix entry
	// must have to be considered a confident pairing.
	ToleranceHigh uint64 `yaml:"tolerance_high"`
}

var DefaultOptions = Options{ToleranceLow: 2, ToleranceHigh: 6}
