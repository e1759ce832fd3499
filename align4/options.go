package align4

// Options are the tunable thresholds for Align4's sparse diagonal-band
// marker alignment (component B). Field names and defaults follow the
// option table in the core's configuration contract.
type Options struct {
	// DeltaX, DeltaY are the (X,Y)-space cell dimensions used to bucket the
	// sparse alignment matrix.
	DeltaX uint32 `yaml:"delta_x"`
	DeltaY uint32 `yaml:"delta_y"`
	// MinEntryCountPerCell is the minimum number of matching-marker entries
	// a cell must contain to be a candidate cell.
	MinEntryCountPerCell uint32 `yaml:"min_entry_count_per_cell"`
	// MaxDistanceFromBoundary bounds how far (in x or y) a candidate cell
	// may be from a boundary of the valid (x,y) region.
	MaxDistanceFromBoundary uint32 `yaml:"max_distance_from_boundary"`
	// MinAlignedMarkerCount is the minimum number of aligned markers for an
	// alignment to be accepted.
	MinAlignedMarkerCount uint32 `yaml:"min_aligned_marker_count"`
	// MinAlignedFraction is the minimum fraction, of the shorter read's
	// marker count, that must be aligned.
	MinAlignedFraction float64 `yaml:"min_aligned_fraction"`
	// MaxSkip bounds the largest ordinal gap tolerated between consecutive
	// aligned markers on either read.
	MaxSkip uint32 `yaml:"max_skip"`
	// MaxDrift bounds the largest deviation, from the alignment's starting
	// diagonal, tolerated along the path.
	MaxDrift uint32 `yaml:"max_drift"`
	// MaxTrim bounds the unaligned prefix/suffix tolerated on either read.
	MaxTrim uint32 `yaml:"max_trim"`
	// MaxBand bounds the width (in ordinal-difference units) of the
	// diagonal band an accepted alignment may span.
	MaxBand uint32 `yaml:"max_band"`
	// MatchScore, MismatchScore, GapScore are the banded DP's move scores.
	MatchScore    int64 `yaml:"match_score"`
	MismatchScore int64 `yaml:"mismatch_score"`
	GapScore      int64 `yaml:"gap_score"`
}

// DefaultOptions are reasonable defaults for reads of a few thousand
// markers, following the magnitude of the values used by the teacher's
// fusion detector for its own marker-length tunables (fusion.DefaultOpts).
var DefaultOptions = Options{
	DeltaX:                  6,
	DeltaY:                  6,
	MinEntryCountPerCell:    3,
	MaxDistanceFromBoundary: 100,
	MinAlignedMarkerCount:   10,
	MinAlignedFraction:      0.2,
	MaxSkip:                 30,
	MaxDrift:                30,
	MaxTrim:                 100,
	MaxBand:                 400,
	MatchScore:              6,
	MismatchScore:           -6,
	GapScore:                -2,
}
