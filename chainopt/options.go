package chainopt

// Options configures per-Chain local-graph optimization: a backbone edge
// with fewer than MinCommon common reads is replaced by alternate edges
// spanning up to K positions on either side, if any alternate strictly
// beats it.
type Options struct {
	MinCommon uint64 `yaml:"min_common"`
	K         int    `yaml:"k"`
}

// DefaultOptions follows the teacher's preference for small, conservative
// defaults on a correction pass: replace only clearly weak transitions,
// searching a narrow +/-3-position window.
var DefaultOptions = Options{MinCommon: 4, K: 3}
