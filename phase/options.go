package phase

// Options configures phasing-graph edge classification and the BubbleChain
// rewrite's short-unphased-bubble collapse threshold.
type Options struct {
	ToleranceLow        uint64 `yaml:"tolerance_low"`
	ToleranceHigh       uint64 `yaml:"tolerance_high"`
	LongBubbleThreshold int64  `yaml:"long_bubble_threshold"`
}

// DefaultOptions mirrors detangle.DefaultOptions' tolerance pair; the long
// bubble threshold follows the teacher's preference for coverage/offset
// cutoffs on the order of a few kilobases.
var DefaultOptions = Options{ToleranceLow: 2, ToleranceHigh: 6, LongBubbleThreshold: 5000}
