package pathgraph1

// Options are the tunables for primary-edge selection, candidate
// generation, and PathGraph1 construction (components C and D).
type Options struct {
	// MinPrimaryCoverage, MaxPrimaryCoverage bound the marker graph edge
	// coverage required for the edge to be selected as a PathGraph1 vertex.
	MinPrimaryCoverage uint64 `yaml:"min_primary_coverage"`
	MaxPrimaryCoverage uint64 `yaml:"max_primary_coverage"`

	// MaxDistanceInJourney bounds how many journey steps apart two primary
	// edges may be for the candidate generator's journey-adjacency rule.
	MaxDistanceInJourney int `yaml:"max_distance_in_journey"`
	// ForwardWalkMaxSteps and ForwardWalkMinCoverage bound the candidate
	// generator's constrained forward-walk rule: the walk may take at most
	// ForwardWalkMaxSteps marker graph edges, each with coverage >=
	// ForwardWalkMinCoverage, before giving up.
	ForwardWalkMaxSteps    int    `yaml:"forward_walk_max_steps"`
	ForwardWalkMinCoverage uint64 `yaml:"forward_walk_min_coverage"`

	// MinEdgeCoverage, MinCorrectedJaccard gate PathGraph1 edge creation.
	MinEdgeCoverage     uint64  `yaml:"min_edge_coverage"`
	MinCorrectedJaccard float64 `yaml:"min_corrected_jaccard"`
	// MinComponentSize is the minimum vertex count for a retained connected
	// component.
	MinComponentSize int `yaml:"min_component_size"`

	// TransitiveReductionDistance, TransitiveReductionMaxCoverage gate local
	// transitive reduction.
	TransitiveReductionDistance    int64  `yaml:"transitive_reduction_distance"`
	TransitiveReductionMaxCoverage uint64 `yaml:"transitive_reduction_max_coverage"`

	// CrossEdgesLowCoverageThreshold, CrossEdgesHighCoverageThreshold,
	// CrossEdgesMinOffset gate cross-edge removal.
	CrossEdgesLowCoverageThreshold  uint64 `yaml:"cross_edges_low_coverage_threshold"`
	CrossEdgesHighCoverageThreshold uint64 `yaml:"cross_edges_high_coverage_threshold"`
	CrossEdgesMinOffset             int64  `yaml:"cross_edges_min_offset"`

	// KNN, if > 0, thins each vertex's out-edges and in-edges to the top KNN
	// by corrected Jaccard.
	KNN int `yaml:"knn"`
}

// DefaultOptions are reasonable defaults, scaled for a PathGraph1 test
// fixture rather than a production marker graph.
var DefaultOptions = Options{
	MinPrimaryCoverage:              6,
	MaxPrimaryCoverage:              100,
	MaxDistanceInJourney:            3,
	ForwardWalkMaxSteps:             6,
	ForwardWalkMinCoverage:          6,
	MinEdgeCoverage:                 4,
	MinCorrectedJaccard:             0.6,
	MinComponentSize:                2,
	TransitiveReductionDistance:     1000,
	TransitiveReductionMaxCoverage:  100,
	CrossEdgesLowCoverageThreshold:  4,
	CrossEdgesHighCoverageThreshold: 20,
	CrossEdgesMinOffset:             1000,
	KNN:                             0,
}
