package cpg

// Options bounds superbubble removal's two offset thresholds, bundled for
// the driver's Config aggregation; RemoveSuperbubbles and Superbubbles
// still take the thresholds as plain arguments for tests that only need
// one or the other.
type Options struct {
	// MaxOffset1 bounds the average base offset an edge may have and still
	// belong to the low-offset sub-graph used to find superbubble components.
	MaxOffset1 int64 `yaml:"max_offset1"`
	// MaxOffset2 bounds the base offset of an entrance-to-exit shortcut edge
	// RemoveSuperbubbles is willing to add when collapsing a superbubble.
	MaxOffset2 int64 `yaml:"max_offset2"`
}

// DefaultOptions follows the teacher's preference for offset cutoffs on
// the order of a few hundred bases for a local structural simplification
// pass.
var DefaultOptions = Options{MaxOffset1: 200, MaxOffset2: 1000}

// OffsetPair is one (maxOffset1, maxOffset2) scale in the driver's ordered
// superbubble-removal schedule: the core repeats RemoveSuperbubbles at
// progressively larger scales rather than a single fixed cutoff, so a
// small local bubble and a long repeat-spanning one are each caught by a
// pass sized for it.
type OffsetPair struct {
	MaxOffset1 int64 `yaml:"max_offset1"`
	MaxOffset2 int64 `yaml:"max_offset2"`
}
