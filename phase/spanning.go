package phase

import "sort"

// Position is one phased diploid bubble's original bubble index and
// assigned sign.
type Position struct {
	Position int
	Sign     int
}

// PhasedComponent is a contiguous, position-sorted run of diploid bubbles
// phased together.
type PhasedComponent struct {
	Entries []Position
}

func (pc PhasedComponent) minMax() (int, int) {
	lo, hi := pc.Entries[0].Position, pc.Entries[0].Position
	for _, e := range pc.Entries[1:] {
		if e.Position < lo {
			lo = e.Position
		}
		if e.Position > hi {
			hi = e.Position
		}
	}
	return lo, hi
}

type unionFind struct{ parent, rank []int }

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// union returns true if x and y were in different sets (i.e. this was a
// tree edge), false if they were already connected.
func (uf *unionFind) union(x, y int) bool {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Phase runs the iterative spanning-tree phasing algorithm over pg,
// returning every PhasedComponent extracted, in extraction order.
//
// A BubbleChain with exactly one diploid bubble has no partner to tangle
// against; rather than declining to phase it outright (the fate of a
// bubble that does have candidate partners but fails to classify
// confidently against any of them), it is emitted as a trivial
// one-vertex PhasedComponent with an arbitrary sign — consistent with the
// representation's "only defined up to a global sign" invariant.
func Phase(pg *PhasingGraph) []PhasedComponent {
	if len(pg.vertices) == 1 {
		return []PhasedComponent{{Entries: []Position{{Position: pg.vertices[0].position, Sign: 1}}}}
	}

	active := make(map[int]bool, len(pg.vertices))
	for i := range pg.vertices {
		active[i] = true
	}

	var components []PhasedComponent
	for {
		edges := activeEdges(pg, active)
		if len(edges) == 0 {
			break
		}
		pc, removed, ok := phaseOnce(pg, active, edges)
		if !ok {
			break
		}
		components = append(components, pc)
		for v := range removed {
			delete(active, v)
		}
	}
	return components
}

func activeEdges(pg *PhasingGraph, active map[int]bool) []edge {
	var out []edge
	for _, e := range pg.edges {
		if active[e.i] && active[e.j] {
			out = append(out, e)
		}
	}
	return out
}

// phaseOnce performs one round: build the optimal spanning forest over the
// active edges, pick the largest component, sign it by BFS tree-edge sign
// propagation, extract the position-increasing longest path as a
// PhasedComponent, and return the full set of vertices to deactivate (the
// component plus any other active vertex whose position falls inside the
// phased component's span).
func phaseOnce(pg *PhasingGraph, active map[int]bool, edges []edge) (PhasedComponent, map[int]bool, bool) {
	sorted := append([]edge(nil), edges...)
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].maxDiscordant != sorted[b].maxDiscordant {
			return sorted[a].maxDiscordant < sorted[b].maxDiscordant
		}
		return sorted[a].minConcordant > sorted[b].minConcordant
	})

	n := len(pg.vertices)
	uf := newUnionFind(n)
	var treeEdges []edge
	for _, e := range sorted {
		if uf.union(e.i, e.j) {
			treeEdges = append(treeEdges, e)
		}
	}

	groups := make(map[int][]int)
	for v := range active {
		groups[uf.find(v)] = append(groups[uf.find(v)], v)
	}
	var best []int
	for _, members := range groups {
		if len(members) > len(best) {
			best = members
		}
	}
	if len(best) < 2 {
		return PhasedComponent{}, nil, false
	}
	sort.Ints(best) // deterministic sign-assignment start regardless of map iteration order
	memberSet := make(map[int]bool, len(best))
	for _, v := range best {
		memberSet[v] = true
	}

	signs := signComponent(best, treeEdges, memberSet)
	path := longestPositionPath(pg, edges, memberSet)
	if len(path) == 0 {
		return PhasedComponent{}, nil, false
	}

	pc := PhasedComponent{}
	for _, v := range path {
		pc.Entries = append(pc.Entries, Position{Position: pg.vertices[v].position, Sign: signs[v]})
	}
	sort.Slice(pc.Entries, func(a, b int) bool { return pc.Entries[a].Position < pc.Entries[b].Position })

	lo, hi := pc.minMax()
	removed := make(map[int]bool)
	for v := range memberSet {
		removed[v] = true
	}
	for v := range active {
		if pg.vertices[v].position >= lo && pg.vertices[v].position <= hi {
			removed[v] = true
		}
	}
	return pc, removed, true
}

func signComponent(members []int, treeEdges []edge, memberSet map[int]bool) map[int]int {
	adj := make(map[int][]edge)
	for _, e := range treeEdges {
		if memberSet[e.i] && memberSet[e.j] {
			adj[e.i] = append(adj[e.i], e)
			adj[e.j] = append(adj[e.j], edge{i: e.j, j: e.i, sign: e.sign})
		}
	}
	signs := make(map[int]int, len(members))
	start := members[0]
	signs[start] = 1
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range adj[cur] {
			if _, ok := signs[e.j]; !ok {
				signs[e.j] = signs[cur] * e.sign
				queue = append(queue, e.j)
			}
		}
	}
	return signs
}

// longestPositionPath finds the longest chain of vertices (by count) linked
// by component-internal edges, in increasing vertex-index order — which is
// also increasing positionInBubbleChain order, since edges only ever join
// i < j. This is a standard DAG longest-path DP since the index order is
// already a topological order.
func longestPositionPath(pg *PhasingGraph, edges []edge, memberSet map[int]bool) []int {
	dp := make(map[int]int)
	parent := make(map[int]int)
	order := make([]int, 0, len(memberSet))
	for v := range memberSet {
		order = append(order, v)
		dp[v] = 1
		parent[v] = -1
	}
	sort.Ints(order)

	byTarget := make(map[int][]edge)
	for _, e := range edges {
		if memberSet[e.i] && memberSet[e.j] {
			byTarget[e.j] = append(byTarget[e.j], e)
		}
	}

	best, bestLen := -1, 0
	for _, v := range order {
		for _, e := range byTarget[v] {
			if dp[e.i]+1 > dp[v] {
				dp[v] = dp[e.i] + 1
				parent[v] = e.i
			}
		}
		if dp[v] > bestLen {
			bestLen = dp[v]
			best = v
		}
	}
	if best < 0 {
		return nil
	}
	var path []int
	for v := best; v != -1; v = parent[v] {
		path = append(path, v)
	}
	return path
}
