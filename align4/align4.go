// Package align4 implements a sparse, diagonal-band marker-level pairwise
// alignment (component B, "Align4"): given two reads as sequences of
// markers, decide whether they overlap and, if so, report an AlignmentInfo
// describing the overlap. It is heuristic and banded by design — optimal
// alignment is not a goal (see the core's Non-goals); only enough precision
// to drive candidate generation and PathGraph1 edge creation.
package align4

import (
	"sort"

	"github.com/grailbio/longasm/markergraph"
)

// SortedMarker pairs a KmerId with the ordinal of its occurrence, as
// required by Align's sortedMarkers argument: sorted ascending by KmerId,
// ties broken by original ordinal order (a stable sort).
type SortedMarker struct {
	Kmer    markergraph.KmerId
	Ordinal uint32
}

// SortMarkers builds the KmerId-sorted view of a marker sequence given in
// ordinal order, via a stable sort keyed only on KmerId (so ties preserve
// original ordinal order, matching the marker model's "sorted-by-KmerId
// views" contract).
func SortMarkers(kmers []markergraph.KmerId) []SortedMarker {
	out := make([]SortedMarker, len(kmers))
	for i, k := range kmers {
		out[i] = SortedMarker{Kmer: k, Ordinal: uint32(i)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kmer < out[j].Kmer })
	return out
}

// matchPair is one matrix entry: markers at ordinal x (read 0) and y (read 1) are equal.
type matchPair struct {
	x, y uint32
}

// AlignedPair is one matched ordinal pair in the final alignment path.
type AlignedPair struct {
	X, Y  uint32
	Match bool // false for a diagonal substitution move (mismatch), true for an actual marker match
}

// AlignmentInfo describes an accepted alignment between two reads.
type AlignmentInfo struct {
	Aligned bool // false means "no alignment" (not an error; see the error-handling design)

	AlignedMarkerCount int
	// OrdinalRange{0,1} are the inclusive [min,max] ordinals touched by the
	// alignment path in each read.
	OrdinalRange0, OrdinalRange1 [2]uint32
	MaxSkip                      uint32
	MaxDrift                     uint32
	// Trim{Left,Right}{0,1} are the unaligned prefix/suffix lengths on
	// either end of either read.
	TrimLeft0, TrimRight0 uint32
	TrimLeft1, TrimRight1 uint32
	// Offset is the estimated signed ordinal offset (mean x-y over every
	// pair on the aligned path, matched or not) from read 0 to read 1.
	Offset int64
	// BandMin, BandMax bound the diagonal (x-y) values spanned by the
	// selected cell component.
	BandMin, BandMax int64

	Path []AlignedPair
}

// Align computes the alignment between two reads given as marker sequences.
// kmerIds[r] is read r's markers in ordinal order; sortedMarkers[r] is the
// same markers sorted by KmerId (see SortMarkers). arena, if non-nil, is
// reset and reused for scratch allocations; pass nil to allocate directly.
func Align(kmerIds [2][]markergraph.KmerId, sortedMarkers [2][]SortedMarker, opts Options, arena *Arena) AlignmentInfo {
	if arena == nil {
		arena = NewArena()
	} else {
		arena.Reset()
	}

	nx := uint32(len(kmerIds[0]))
	ny := uint32(len(kmerIds[1]))
	if nx == 0 || ny == 0 {
		return AlignmentInfo{}
	}

	matches := buildMatrix(sortedMarkers[0], sortedMarkers[1], arena)
	if len(matches) == 0 {
		return AlignmentInfo{}
	}

	cells := bucketCells(matches, nx, opts.DeltaX, opts.DeltaY)
	markCandidates(cells, nx, ny, opts)
	markAccessible(cells)

	components := connectedComponents(cells)
	var best AlignmentInfo
	for _, comp := range components {
		info := alignBand(kmerIds, comp, opts)
		if info.Aligned && info.AlignedMarkerCount > best.AlignedMarkerCount {
			best = info
		}
	}
	return best
}

// buildMatrix performs the sort-merge join over the two KmerId-sorted
// marker lists (the "matrix construction" step), emitting every matching
// (x,y) cross product.
func buildMatrix(a, b []SortedMarker, arena *Arena) []matchPair {
	out := arena.matches(0)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Kmer < b[j].Kmer:
			i++
		case a[i].Kmer > b[j].Kmer:
			j++
		default:
			kmer := a[i].Kmer
			iEnd := i
			for iEnd < len(a) && a[iEnd].Kmer == kmer {
				iEnd++
			}
			jEnd := j
			for jEnd < len(b) && b[jEnd].Kmer == kmer {
				jEnd++
			}
			for ii := i; ii < iEnd; ii++ {
				for jj := j; jj < jEnd; jj++ {
					out = append(out, matchPair{x: a[ii].Ordinal, y: b[jj].Ordinal})
				}
			}
			i, j = iEnd, jEnd
		}
	}
	arena.matchBuf = out
	return out
}

type cellKey struct{ iX, iY int64 }

type cellGraph struct {
	nx, ny    uint32
	deltaX    uint32
	deltaY    uint32
	keys      []cellKey
	index     map[cellKey]int
	members   [][]matchPair
	candidate []bool
	boundaryLeftTop     []bool
	boundaryRightBottom []bool
	forwardAccessible   []bool
	backwardAccessible  []bool
}

func toXY(x, y int64, nx uint32) (X, Y int64) {
	return x + y, y + (int64(nx) - 1 - x)
}

// bucketCells groups matches into (deltaX,deltaY)-sized cells in (X,Y)
// space. Cells are found through a hash map keyed by (iX, iY); they are not
// stored as per-row lists sorted by iX. Each cell's matches are sorted by x,
// then y.
func bucketCells(matches []matchPair, nx uint32, deltaX, deltaY uint32) *cellGraph {
	if deltaX == 0 {
		deltaX = 1
	}
	if deltaY == 0 {
		deltaY = 1
	}
	g := &cellGraph{nx: nx, deltaX: deltaX, deltaY: deltaY, index: make(map[cellKey]int)}
	for _, m := range matches {
		X, Y := toXY(int64(m.x), int64(m.y), nx)
		key := cellKey{iX: X / int64(deltaX), iY: Y / int64(deltaY)}
		idx, ok := g.index[key]
		if !ok {
			idx = len(g.keys)
			g.index[key] = idx
			g.keys = append(g.keys, key)
			g.members = append(g.members, nil)
		}
		g.members[idx] = append(g.members[idx], m)
	}
	n := len(g.keys)
	g.candidate = make([]bool, n)
	g.boundaryLeftTop = make([]bool, n)
	g.boundaryRightBottom = make([]bool, n)
	g.forwardAccessible = make([]bool, n)
	g.backwardAccessible = make([]bool, n)
	for i := range g.members {
		sort.Slice(g.members[i], func(a, b int) bool {
			if g.members[i][a].x != g.members[i][b].x {
				return g.members[i][a].x < g.members[i][b].x
			}
			return g.members[i][a].y < g.members[i][b].y
		})
	}
	return g
}

// markCandidates flags cells with enough entries near a boundary of the
// valid (x,y) region as candidates (the "cell aggregation" step).
func markCandidates(g *cellGraph, nx, ny uint32, opts Options) {
	for i, mem := range g.members {
		if uint32(len(mem)) < opts.MinEntryCountPerCell {
			continue
		}
		leftTop, rightBottom := false, false
		for _, m := range mem {
			if m.x <= opts.MaxDistanceFromBoundary || m.y <= opts.MaxDistanceFromBoundary {
				leftTop = true
			}
			if (nx-1-m.x) <= opts.MaxDistanceFromBoundary || (ny-1-m.y) <= opts.MaxDistanceFromBoundary {
				rightBottom = true
			}
		}
		if leftTop || rightBottom {
			g.candidate[i] = true
			g.boundaryLeftTop[i] = leftTop
			g.boundaryRightBottom[i] = rightBottom
		}
	}
}

// forwardOffsets approximates, at cell granularity, the moves a unit step
// in (x,y) induces in (X,Y): (x+1,y) -> (X+1,Y-1); (x,y+1) -> (X+1,Y+1);
// (x+1,y+1) -> (X+2,Y). All three (plus the (X+1,Y) offset) are
// treated as one forward-adjacency hop between cells, since bucketing
// already coarsens exact (X,Y) deltas.
var forwardOffsets = []cellKey{{1, -1}, {1, 0}, {1, 1}, {2, 0}}

// markAccessible runs the forward/backward reachability BFS (the
// "accessibility" step): forward-accessible cells are reachable from a
// left/top boundary candidate; backward-accessible from a right/bottom
// boundary candidate. A cell is "active" when both hold.
func markAccessible(g *cellGraph) {
	bfs := func(fromBoundary func(i int) bool, visited []bool, offsets []cellKey) {
		queue := make([]int, 0, len(g.keys))
		for i := range g.keys {
			if g.candidate[i] && fromBoundary(i) {
				visited[i] = true
				queue = append(queue, i)
			}
		}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			k := g.keys[cur]
			for _, off := range offsets {
				nk := cellKey{iX: k.iX + off.iX, iY: k.iY + off.iY}
				ni, ok := g.index[nk]
				if !ok || !g.candidate[ni] || visited[ni] {
					continue
				}
				visited[ni] = true
				queue = append(queue, ni)
			}
		}
	}
	backwardOffsets := make([]cellKey, len(forwardOffsets))
	for i, off := range forwardOffsets {
		backwardOffsets[i] = cellKey{iX: -off.iX, iY: -off.iY}
	}
	bfs(func(i int) bool { return g.boundaryLeftTop[i] }, g.forwardAccessible, forwardOffsets)
	bfs(func(i int) bool { return g.boundaryRightBottom[i] }, g.backwardAccessible, backwardOffsets)
}

// component is a connected set of active cells, with the union of their
// matches and the diagonal band they span.
type component struct {
	matches          []matchPair
	bandMin, bandMax int64
}

// connectedComponents groups active cells (candidate, forward- and
// backward-accessible) into connected components using the same cell
// adjacency as markAccessible, undirected.
func connectedComponents(g *cellGraph) []component {
	n := len(g.keys)
	active := make([]bool, n)
	for i := 0; i < n; i++ {
		active[i] = g.candidate[i] && g.forwardAccessible[i] && g.backwardAccessible[i]
	}
	visited := make([]bool, n)
	allOffsets := append(append([]cellKey{}, forwardOffsets...), negate(forwardOffsets)...)
	var comps []component
	for start := 0; start < n; start++ {
		if !active[start] || visited[start] {
			continue
		}
		queue := []int{start}
		visited[start] = true
		var members []matchPair
		bandMin, bandMax := int64(1)<<62, -(int64(1) << 62)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, m := range g.members[cur] {
				members = append(members, m)
				d := int64(m.x) - int64(m.y)
				if d < bandMin {
					bandMin = d
				}
				if d > bandMax {
					bandMax = d
				}
			}
			k := g.keys[cur]
			for _, off := range allOffsets {
				nk := cellKey{iX: k.iX + off.iX, iY: k.iY + off.iY}
				ni, ok := g.index[nk]
				if !ok || !active[ni] || visited[ni] {
					continue
				}
				visited[ni] = true
				queue = append(queue, ni)
			}
		}
		if len(members) > 0 {
			comps = append(comps, component{matches: members, bandMin: bandMin, bandMax: bandMax})
		}
	}
	return comps
}

func negate(ks []cellKey) []cellKey {
	out := make([]cellKey, len(ks))
	for i, k := range ks {
		out[i] = cellKey{iX: -k.iX, iY: -k.iY}
	}
	return out
}
