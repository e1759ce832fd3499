package chainopt

// computeIdom returns the immediate dominator of every node in lg, rooted
// at node 0. Every arc in lg goes from a lower index to a higher one by
// construction, so node index order is already a valid reverse-postorder
// numbering and a single forward pass (rather than the iterative
// fixed-point loop a general CFG needs) computes the correct result.
func computeIdom(lg *localGraph) []int {
	idom := make([]int, lg.n)
	for i := range idom {
		idom[i] = -1
	}
	idom[0] = 0

	preds := make([][]int, lg.n)
	for _, a := range lg.arcs {
		preds[a.to] = append(preds[a.to], a.from)
	}

	for v := 1; v < lg.n; v++ {
		var newIdom = -1
		for _, p := range preds[v] {
			if idom[p] == -1 {
				continue // predecessor not yet reached from root
			}
			if newIdom == -1 {
				newIdom = p
				continue
			}
			newIdom = intersect(idom, newIdom, p)
		}
		idom[v] = newIdom
	}
	return idom
}

// intersect walks the two dominator chains up toward the root, following
// the convention that a node with a lower index is always closer to (or
// equal to) the root in this forward-only graph.
func intersect(idom []int, u, v int) int {
	for u != v {
		for u > v {
			u = idom[u]
		}
		for v > u {
			v = idom[v]
		}
	}
	return u
}

// dominatorPath walks the dominator tree from node n-1 up to the root,
// returning the path from 0 to n-1 in forward order.
func dominatorPath(idom []int, n int) []int {
	var rev []int
	for v := n - 1; v != 0; v = idom[v] {
		rev = append(rev, v)
	}
	rev = append(rev, 0)

	path := make([]int, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}
