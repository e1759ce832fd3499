package markergraph

import "sort"

// InMemoryGraph is a heap-resident Graph used by tests, by the end-to-end
// scenarios and by any caller that has already materialized a small marker
// graph. It plays the role the on-disk, memory-mapped marker graph plays in
// production: a narrow, read-only, densely-id'd table, following the
// interning-table style of the fusion package's gene database (dense
// sequence numbers assigned once, looked up by id for the life of the run).
//
// InMemoryGraph is safe for concurrent reads once built; Add* methods are
// not safe for concurrent use and must complete before the graph is handed
// to a pipeline.
type InMemoryGraph struct {
	edges  map[EdgeId]EdgeInfo
	bySrc  map[VertexId][]EdgeId
	byDst  map[VertexId][]EdgeId
	revComp map[EdgeId]EdgeId

	// pairInfo, when set for a pair, overrides the computed default. This
	// lets tests and synthetic scenarios specify exact common/offset/jaccard
	// triples without reconstructing plausible read sets.
	pairInfo map[[2]EdgeId]EdgePairInfo
}

// NewInMemoryGraph returns an empty graph ready for AddEdge calls.
func NewInMemoryGraph() *InMemoryGraph {
	return &InMemoryGraph{
		edges:    make(map[EdgeId]EdgeInfo),
		bySrc:    make(map[VertexId][]EdgeId),
		byDst:    make(map[VertexId][]EdgeId),
		revComp:  make(map[EdgeId]EdgeId),
		pairInfo: make(map[[2]EdgeId]EdgePairInfo),
	}
}

// AddEdge registers an edge with the given endpoints and marker intervals.
// Coverage is derived from len(intervals) unless overridden by
// SetCoverage.
func (g *InMemoryGraph) AddEdge(id EdgeId, source, target VertexId, intervals []MarkerInterval) {
	info := EdgeInfo{Source: source, Target: target, Coverage: uint64(len(intervals)), Intervals: intervals}
	g.edges[id] = info
	g.bySrc[source] = appendSorted(g.bySrc[source], id)
	g.byDst[target] = appendSorted(g.byDst[target], id)
}

func appendSorted(ids []EdgeId, id EdgeId) []EdgeId {
	ids = append(ids, id)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SetCoverage overrides the coverage recorded for id (useful for
// synthesizing a primary edge whose coverage differs from its interval
// count, e.g. to exercise minPrimaryCoverage/maxPrimaryCoverage bounds).
func (g *InMemoryGraph) SetCoverage(id EdgeId, coverage uint64) {
	info := g.edges[id]
	info.Coverage = coverage
	g.edges[id] = info
}

// SetReverseComplement records that a and b represent the same genomic
// feature on opposite strands.
func (g *InMemoryGraph) SetReverseComplement(a, b EdgeId) {
	g.revComp[a] = b
	g.revComp[b] = a
}

// SetEdgePairInfo overrides the evidence AnalyzeEdgePair(a, b) returns.
func (g *InMemoryGraph) SetEdgePairInfo(a, b EdgeId, info EdgePairInfo) {
	g.pairInfo[[2]EdgeId{a, b}] = info
}

func (g *InMemoryGraph) Edge(id EdgeId) (EdgeInfo, bool) {
	info, ok := g.edges[id]
	return info, ok
}

func (g *InMemoryGraph) EdgesBySource(v VertexId) []EdgeId { return g.bySrc[v] }
func (g *InMemoryGraph) EdgesByTarget(v VertexId) []EdgeId { return g.byDst[v] }

func (g *InMemoryGraph) ReverseComplementEdge(id EdgeId) EdgeId {
	if rc, ok := g.revComp[id]; ok {
		return rc
	}
	return InvalidEdgeId
}

// AnalyzeEdgePair returns the overridden EdgePairInfo if SetEdgePairInfo was
// called for (a, b); otherwise it derives Common from the intersection of
// the two edges' oriented read sets (a read is "common" if it has a marker
// interval on both edges; the order of the visits is not checked) and
// OffsetInBases from the mean of b's target ordinal minus a's target
// ordinal over that intersection. CorrectedJaccard is Common divided
// by the union size of the two read sets, a reasonable default for
// synthetic/test graphs that do not model coverage correction explicitly.
func (g *InMemoryGraph) AnalyzeEdgePair(a, b EdgeId) EdgePairInfo {
	if info, ok := g.pairInfo[[2]EdgeId{a, b}]; ok {
		return info
	}
	ea, oka := g.edges[a]
	eb, okb := g.edges[b]
	if !oka || !okb {
		return EdgePairInfo{}
	}
	bByRead := make(map[OrientedReadId]MarkerInterval, len(eb.Intervals))
	for _, iv := range eb.Intervals {
		bByRead[iv.Read] = iv
	}
	var common uint64
	var offsetSum int64
	readSet := make(map[OrientedReadId]bool, len(ea.Intervals)+len(eb.Intervals))
	for _, iv := range ea.Intervals {
		readSet[iv.Read] = true
		if ivb, ok := bByRead[iv.Read]; ok {
			common++
			offsetSum += int64(ivb.OrdinalTarget) - int64(iv.OrdinalTarget)
		}
	}
	for _, iv := range eb.Intervals {
		readSet[iv.Read] = true
	}
	var offset int64
	if common > 0 {
		offset = offsetSum / int64(common)
	}
	union := len(readSet)
	var jaccard float64
	if union > 0 {
		jaccard = float64(common) / float64(union)
	}
	return EdgePairInfo{Common: common, OffsetInBases: offset, CorrectedJaccard: jaccard}
}

func (g *InMemoryGraph) EdgeHasDuplicateOrientedReadIds(id EdgeId) bool {
	info, ok := g.edges[id]
	if !ok {
		return false
	}
	return hasDuplicateReads(info.Intervals)
}

func (g *InMemoryGraph) VertexHasDuplicateOrientedReadIds(v VertexId) bool {
	check := func(ids []EdgeId) bool {
		seen := make(map[OrientedReadId]bool)
		for _, id := range ids {
			for _, iv := range g.edges[id].Intervals {
				if seen[iv.Read] {
					return true
				}
				seen[iv.Read] = true
			}
		}
		return false
	}
	return check(g.bySrc[v]) || check(g.byDst[v])
}

func (g *InMemoryGraph) EdgeCoverage(id EdgeId) uint64 { return g.edges[id].Coverage }

// AllEdges returns every registered edge id, sorted ascending so iteration
// order is deterministic across runs regardless of map iteration order.
func (g *InMemoryGraph) AllEdges() []EdgeId {
	ids := make([]EdgeId, 0, len(g.edges))
	for id := range g.edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func hasDuplicateReads(intervals []MarkerInterval) bool {
	seen := make(map[OrientedReadId]bool, len(intervals))
	for _, iv := range intervals {
		if seen[iv.Read] {
			return true
		}
		seen[iv.Read] = true
	}
	return false
}

var _ Graph = (*InMemoryGraph)(nil)
