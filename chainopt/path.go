package chainopt

// dfsFrame is one explicit-stack frame for bestPath's simple-path
// enumeration: an explicit stack avoids recursion depth tracking the
// chain length, per the REDESIGN FLAGS note on bounded local searches.
type dfsFrame struct {
	node       int
	arcIdx     int
	pathMin    uint64
	pushedPath bool
}

// bestPath enumerates every simple path from src to dst within lg
// (restricted to arcs whose endpoints both lie in [src,dst], i.e. within
// one dominator-tree segment) and returns the one maximizing the minimum
// edge common, breaking ties in favor of the longer path.
func bestPath(lg *localGraph, src, dst int) []int {
	if src == dst {
		return []int{src}
	}

	var bestNodes []int
	var bestMin uint64
	haveBest := false

	path := []int{src}
	visited := map[int]bool{src: true}
	stack := []dfsFrame{{node: src, arcIdx: 0, pathMin: ^uint64(0)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.node == dst && len(stack) > 1 {
			if !haveBest || top.pathMin > bestMin || (top.pathMin == bestMin && len(path) > len(bestNodes)) {
				bestNodes = append([]int(nil), path...)
				bestMin = top.pathMin
				haveBest = true
			}
		}

		advanced := false
		for top.arcIdx < len(lg.out[top.node]) {
			a := lg.out[top.node][top.arcIdx]
			top.arcIdx++
			if a.to < src || a.to > dst || visited[a.to] {
				continue
			}
			childMin := top.pathMin
			if a.common < childMin {
				childMin = a.common
			}
			visited[a.to] = true
			path = append(path, a.to)
			stack = append(stack, dfsFrame{node: a.to, arcIdx: 0, pathMin: childMin})
			advanced = true
			break
		}
		if advanced {
			continue
		}

		visited[top.node] = false
		path = path[:len(path)-1]
		stack = stack[:len(stack)-1]
	}

	if !haveBest {
		return nil // no path from src to dst: caller falls back to the backbone
	}
	return bestNodes
}
