package cpg

// superbubbleComponents returns, for each vertex index, the connected
// component id of the undirected sub-graph linking (u,v) whenever a live
// edge between them has average base offset <= maxOffset1 (-1 for a
// vertex touched by no such edge).
func (g *Graph) superbubbleComponents(maxOffset1 int64) []int {
	n := len(g.vertices)
	adj := make([][]VertexId, n)
	for _, id := range g.AllEdges() {
		e, _ := g.Edge(id)
		if abs64(g.averageOffsetInBases(e)) > maxOffset1 {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	next := 0
	for start := 0; start < n; start++ {
		if comp[start] != -1 || len(adj[start]) == 0 {
			continue
		}
		queue := []VertexId{VertexId(start)}
		comp[start] = next
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if comp[nb] == -1 {
					comp[nb] = next
					queue = append(queue, nb)
				}
			}
		}
		next++
	}
	return comp
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Superbubbles forms the maxOffset1 sub-graph and returns the vertex
// membership of every connected component of size > 1, for callers (e.g.
// tangle-based short-superbubble detangling) that need the raw grouping
// rather than RemoveSuperbubbles' single-entrance/exit collapse.
func (g *Graph) Superbubbles(maxOffset1 int64) [][]VertexId {
	comp := g.superbubbleComponents(maxOffset1)
	groups := make(map[int][]VertexId)
	for v, c := range comp {
		if c >= 0 {
			groups[c] = append(groups[c], VertexId(v))
		}
	}
	var out [][]VertexId
	for _, members := range groups {
		if len(members) > 1 {
			out = append(out, members)
		}
	}
	return out
}

// RemoveSuperbubbles forms the maxOffset1 sub-graph, finds its connected
// components of size > 1 (superbubbles), and for each with exactly one
// entrance and one exit whose estimated entrance-to-exit base offset is
// <= maxOffset2 with positive common-read count, deletes every internal
// edge (including entrance<->exit parallel edges), replacing them with a
// single connecting edge; internal vertices stay in the graph with no
// edges. It returns the number of superbubbles collapsed.
func (g *Graph) RemoveSuperbubbles(maxOffset1, maxOffset2 int64) int {
	comp := g.superbubbleComponents(maxOffset1)
	groups := make(map[int][]VertexId)
	for v, c := range comp {
		if c >= 0 {
			groups[c] = append(groups[c], VertexId(v))
		}
	}
	removed := 0
	for _, members := range groups {
		if len(members) <= 1 {
			continue
		}
		memberSet := make(map[VertexId]bool, len(members))
		for _, v := range members {
			memberSet[v] = true
		}
		var entrances, exits []VertexId
		for _, v := range members {
			in := g.InEdges(v)
			external := len(in) == 0
			for _, id := range in {
				e, _ := g.Edge(id)
				if !memberSet[e.Source] {
					external = true
					break
				}
			}
			if external {
				entrances = append(entrances, v)
			}

			out := g.OutEdges(v)
			external = len(out) == 0
			for _, id := range out {
				e, _ := g.Edge(id)
				if !memberSet[e.Target] {
					external = true
					break
				}
			}
			if external {
				exits = append(exits, v)
			}
		}
		if len(entrances) != 1 || len(exits) != 1 {
			continue
		}
		entrance, exit := entrances[0], exits[0]
		info := g.mg.AnalyzeEdgePair(g.vertices[entrance].MarkerEdge, g.vertices[exit].MarkerEdge)
		if abs64(info.OffsetInBases) > maxOffset2 || info.Common == 0 {
			continue
		}
		for _, id := range g.AllEdges() {
			e, _ := g.Edge(id)
			if memberSet[e.Source] && memberSet[e.Target] {
				g.removeEdgeSlot(g.idToSlot[id])
			}
		}
		g.Connect(entrance, exit)
		removed++
	}
	return removed
}
