package pathgraph1

import (
	"sort"

	"github.com/grailbio/longasm/journey"
	"github.com/grailbio/longasm/markergraph"
)

// CandidatePair is an ordered pair of primary edges proposed as adjacent
// PathGraph1 vertices: A is upstream of B.
type CandidatePair struct {
	A, B markergraph.EdgeId
}

// GenerateCandidates proposes PathGraph1 edge candidates from the set of
// primary edges, by two rules: journey-adjacency (two primary edges visited
// by the same oriented read within MaxDistanceInJourney journey steps of
// each other) and constrained forward-walk (from a primary edge, follow
// marker graph edges through the first vertex whose out-edges include
// another primary edge, provided every intermediate edge has coverage >=
// ForwardWalkMinCoverage and the walk is no longer than ForwardWalkMaxSteps).
// The result is deduplicated and sorted for determinism.
func GenerateCandidates(journeys *journey.Store, graph markergraph.Graph, primary []markergraph.EdgeId, opts Options) []CandidatePair {
	primarySet := make(map[markergraph.EdgeId]bool, len(primary))
	for _, id := range primary {
		primarySet[id] = true
	}

	seen := make(map[CandidatePair]bool)
	var out []CandidatePair
	add := func(a, b markergraph.EdgeId) {
		if a == b {
			return
		}
		p := CandidatePair{A: a, B: b}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	addFromJourneyAdjacency(journeys, primarySet, opts, add)
	addFromForwardWalk(graph, primarySet, opts, add)

	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

func addFromJourneyAdjacency(journeys *journey.Store, primarySet map[markergraph.EdgeId]bool, opts Options, add func(a, b markergraph.EdgeId)) {
	if journeys == nil {
		return
	}
	for _, ids := range primaryPositions(journeys, primarySet) {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids) && ids[j].pos-ids[i].pos <= opts.MaxDistanceInJourney; j++ {
				add(ids[i].edge, ids[j].edge)
			}
		}
	}
}

type journeyHit struct {
	pos  int
	edge markergraph.EdgeId
}

// primaryPositions returns, per oriented read with a non-empty journey, the
// subsequence of primary edge hits in journey order.
func primaryPositions(journeys *journey.Store, primarySet map[markergraph.EdgeId]bool) [][]journeyHit {
	reads := make(map[markergraph.OrientedReadId]bool)
	for id := range primarySet {
		for _, e := range journeys.EdgeJourneyEntries(id) {
			reads[e.Read] = true
		}
	}
	sortedReads := make([]markergraph.OrientedReadId, 0, len(reads))
	for r := range reads {
		sortedReads = append(sortedReads, r)
	}
	sort.Slice(sortedReads, func(i, j int) bool { return sortedReads[i] < sortedReads[j] })

	var out [][]journeyHit
	for _, r := range sortedReads {
		journeySeq := journeys.OrientedReadJourney(r)
		var hits []journeyHit
		for pos, e := range journeySeq {
			if primarySet[e] {
				hits = append(hits, journeyHit{pos: pos, edge: e})
			}
		}
		if len(hits) > 1 {
			out = append(out, hits)
		}
	}
	return out
}

func addFromForwardWalk(graph markergraph.Graph, primarySet map[markergraph.EdgeId]bool, opts Options, add func(a, b markergraph.EdgeId)) {
	ids := make([]markergraph.EdgeId, 0, len(primarySet))
	for id := range primarySet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, start := range ids {
		info, ok := graph.Edge(start)
		if !ok {
			continue
		}
		v := info.Target
		for step := 0; step < opts.ForwardWalkMaxSteps; step++ {
			next := graph.EdgesBySource(v)
			if len(next) == 0 {
				break
			}
			// Prefer a direct primary hit among v's out-edges; otherwise
			// follow the single highest-coverage out-edge, as long as it
			// clears ForwardWalkMinCoverage.
			var hit markergraph.EdgeId
			found := false
			for _, e := range next {
				if primarySet[e] && e != start {
					hit = e
					found = true
					break
				}
			}
			if found {
				add(start, hit)
				break
			}
			var bestEdge markergraph.EdgeId
			var bestCov uint64
			bestSet := false
			for _, e := range next {
				cov := graph.EdgeCoverage(e)
				if cov < opts.ForwardWalkMinCoverage {
					continue
				}
				if !bestSet || cov > bestCov {
					bestEdge, bestCov, bestSet = e, cov, true
				}
			}
			if !bestSet {
				break
			}
			nextInfo, ok := graph.Edge(bestEdge)
			if !ok {
				break
			}
			v = nextInfo.Target
		}
	}
}
