// Package journey builds, once and immutably, the per-oriented-read
// "journey" — the ordered sequence of marker graph edges a read visits —
// and its inverse, the per-edge list of (OrientedReadId, positionInJourney)
// entries. This is component A of the assembly core: the leaf on which
// Align4 candidate generation (component C) and PathGraph1 (component D)
// are both built.
package journey

import (
	"sort"

	"github.com/grailbio/longasm/internal/workqueue"
	"github.com/grailbio/longasm/markergraph"
)

// unsortedJourney is one (edge, source-ordinal) occurrence of a read,
// collected per shard during Build's pass 1 before the per-read journey is
// sorted into ordinal order.
type unsortedJourney struct {
	edge    markergraph.EdgeId
	ordinal markergraph.Ordinal
}

// Entry is one occurrence of an oriented read within a journey.
type Entry struct {
	Read     markergraph.OrientedReadId
	Position int32
}

// Store holds every read's journey plus the inverted per-edge entry index,
// built once by Build and read-only thereafter. It is safe for concurrent
// reads.
type Store struct {
	journeys map[markergraph.OrientedReadId][]markergraph.EdgeId

	// offsets/entries is a CSR-style flattening of edge -> []Entry, chosen
	// for cache-friendly iteration over the (possibly large) per-edge
	// journey-entry lists, following the flattened-array layout used by the
	// teacher's interval and biopb packages instead of a map of slices.
	edgeIndex map[markergraph.EdgeId]int32
	offsets   []int32
	entries   []Entry
}

// Build constructs a Store from the marker graph's edge intervals. Its
// parallel pass is sharded by batches of marker graph edges, not by
// OrientedReadId batch. reads is the universe of oriented reads to build journeys
// for; graph supplies, via Edge(id).Intervals, the (OrientedReadId,
// ordinal-pair) occurrences of each edge.
func Build(reads []markergraph.OrientedReadId, graph markergraph.Graph) *Store {
	edges := graph.AllEdges()

	// Pass 1: for every oriented read, collect the (edge, sourceOrdinal)
	// pairs from every edge whose intervals mention it. Sharded by edge
	// batch; each shard writes directly into a concurrentMap keyed by read,
	// so concurrent shards touching different reads never contend on the
	// same lock (the single-mutex merge this replaced serialized every
	// shard's entire batch behind one lock).
	perRead := newConcurrentMap()
	const batchSize = 256
	_ = workqueue.Run(len(edges), batchSize, func(rng workqueue.Range) error {
		for i := rng.Start; i < rng.Limit; i++ {
			id := edges[i]
			info, ok := graph.Edge(id)
			if !ok {
				continue
			}
			for _, iv := range info.Intervals {
				perRead.append(iv.Read, unsortedJourney{edge: id, ordinal: iv.OrdinalSource})
			}
		}
		return nil
	})

	journeys := make(map[markergraph.OrientedReadId][]markergraph.EdgeId, len(reads))
	for _, r := range reads {
		js := perRead.get(r)
		sort.Slice(js, func(i, j int) bool { return js[i].ordinal < js[j].ordinal })
		seq := make([]markergraph.EdgeId, len(js))
		for i, j := range js {
			seq[i] = j.edge
		}
		journeys[r] = seq
	}

	s := &Store{journeys: journeys}
	s.buildEdgeIndex()
	return s
}

func (s *Store) buildEdgeIndex() {
	counts := make(map[markergraph.EdgeId]int32)
	reads := make([]markergraph.OrientedReadId, 0, len(s.journeys))
	for r := range s.journeys {
		reads = append(reads, r)
	}
	sort.Slice(reads, func(i, j int) bool { return reads[i] < reads[j] })

	for _, r := range reads {
		for _, e := range s.journeys[r] {
			counts[e]++
		}
	}
	ids := make([]markergraph.EdgeId, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s.edgeIndex = make(map[markergraph.EdgeId]int32, len(ids))
	s.offsets = make([]int32, len(ids)+1)
	var total int32
	for i, id := range ids {
		s.edgeIndex[id] = int32(i)
		total += counts[id]
		s.offsets[i+1] = total
	}
	s.entries = make([]Entry, total)
	cursor := make([]int32, len(ids))
	copy(cursor, s.offsets[:len(ids)])
	for _, r := range reads {
		for pos, e := range s.journeys[r] {
			idx := s.edgeIndex[e]
			slot := cursor[idx]
			s.entries[slot] = Entry{Read: r, Position: int32(pos)}
			cursor[idx]++
		}
	}
}

// OrientedReadJourney returns the ordered sequence of edges r visits. The
// returned slice must not be mutated by the caller.
func (s *Store) OrientedReadJourney(r markergraph.OrientedReadId) []markergraph.EdgeId {
	return s.journeys[r]
}

// EdgeJourneyEntries returns the (read, position) entries that traverse
// edge id, in an unspecified but stable order. The returned slice must not
// be mutated by the caller.
func (s *Store) EdgeJourneyEntries(id markergraph.EdgeId) []Entry {
	idx, ok := s.edgeIndex[id]
	if !ok {
		return nil
	}
	return s.entries[s.offsets[idx]:s.offsets[idx+1]]
}

// NumReads returns the number of oriented reads with a recorded journey.
func (s *Store) NumReads() int { return len(s.journeys) }
