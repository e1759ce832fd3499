package align4

import "github.com/grailbio/longasm/markergraph"

type dpKey struct{ x, y uint32 }

type dpOp uint8

const (
	opStart dpOp = iota
	opDiag
	opUp
	opLeft
)

type dpCell struct {
	score int64
	op    dpOp
}

// alignBand runs a free-start/free-end ("semi-global") banded DP restricted
// to a connected component's diagonal band (expanded by MaxDrift to give
// gap moves room to reconnect with the band), then applies the acceptance
// filters (the "banded DP" and "filters" steps).
func alignBand(kmerIds [2][]markergraph.KmerId, comp component, opts Options) AlignmentInfo {
	nx := uint32(len(kmerIds[0]))
	ny := uint32(len(kmerIds[1]))

	isMatch := make(map[dpKey]bool, len(comp.matches))
	for _, m := range comp.matches {
		isMatch[dpKey{m.x, m.y}] = true
	}

	margin := int64(opts.MaxDrift)
	bandMin := comp.bandMin - margin
	bandMax := comp.bandMax + margin

	inDomain := func(x, y uint32) bool {
		if x >= nx || y >= ny {
			return false
		}
		d := int64(x) - int64(y)
		return d >= bandMin && d <= bandMax
	}

	yRange := func(x uint32) (lo, hi int64) {
		lo = int64(x) - bandMax
		hi = int64(x) - bandMin
		if lo < 0 {
			lo = 0
		}
		if hi > int64(ny)-1 {
			hi = int64(ny) - 1
		}
		return lo, hi
	}

	dp := make(map[dpKey]dpCell)
	var bestKey dpKey
	var bestScore int64 = -1 // require a strictly positive score: an alignment must do better than "nothing aligned"

	for x := uint32(0); x < nx; x++ {
		lo, hi := yRange(x)
		for yy := lo; yy <= hi; yy++ {
			y := uint32(yy)
			if !inDomain(x, y) {
				continue
			}
			match := isMatch[dpKey{x, y}]
			moveScore := opts.MismatchScore
			if match {
				moveScore = opts.MatchScore
			}

			best := int64(0)
			bestOp := opStart
			if x > 0 && y > 0 && inDomain(x-1, y-1) {
				if c, ok := dp[dpKey{x - 1, y - 1}]; ok {
					if s := c.score + moveScore; s > best {
						best, bestOp = s, opDiag
					}
				}
			}
			if x > 0 && inDomain(x-1, y) {
				if c, ok := dp[dpKey{x - 1, y}]; ok {
					if s := c.score + opts.GapScore; s > best {
						best, bestOp = s, opUp
					}
				}
			}
			if y > 0 && inDomain(x, y-1) {
				if c, ok := dp[dpKey{x, y - 1}]; ok {
					if s := c.score + opts.GapScore; s > best {
						best, bestOp = s, opLeft
					}
				}
			}
			dp[dpKey{x, y}] = dpCell{score: best, op: bestOp}
			if best > bestScore {
				bestScore = best
				bestKey = dpKey{x, y}
			}
		}
	}

	if bestScore <= 0 {
		return AlignmentInfo{}
	}

	// Traceback from bestKey to the cell whose op is opStart.
	var path []AlignedPair
	cur := bestKey
	for {
		cell := dp[cur]
		switch cell.op {
		case opStart:
			path = append(path, AlignedPair{X: cur.x, Y: cur.y, Match: isMatch[cur]})
			goto doneTraceback
		case opDiag:
			path = append(path, AlignedPair{X: cur.x, Y: cur.y, Match: isMatch[cur]})
			cur = dpKey{cur.x - 1, cur.y - 1}
		case opUp:
			cur = dpKey{cur.x - 1, cur.y}
		case opLeft:
			cur = dpKey{cur.x, cur.y - 1}
		}
	}
doneTraceback:
	// path was built end-to-start; reverse it to chronological order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	info := AlignmentInfo{Aligned: true, Path: path, BandMin: comp.bandMin, BandMax: comp.bandMax}
	computeStats(&info, nx, ny)
	applyFilters(&info, nx, ny, opts)
	return info
}

func computeStats(info *AlignmentInfo, nx, ny uint32) {
	path := info.Path
	if len(path) == 0 {
		return
	}
	minX, maxX := path[0].X, path[0].X
	minY, maxY := path[0].Y, path[0].Y
	var alignedCount int
	var offsetSum int64
	d0 := int64(path[0].X) - int64(path[0].Y)
	var maxDrift int64
	var curRun, maxRun int
	for i, p := range path {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
		if p.Match {
			alignedCount++
		}
		offsetSum += int64(p.X) - int64(p.Y)
		if d := int64(p.X) - int64(p.Y) - d0; d < 0 {
			if -d > maxDrift {
				maxDrift = -d
			}
		} else if d > maxDrift {
			maxDrift = d
		}
		if i > 0 {
			dx := int(path[i].X) - int(path[i-1].X)
			dy := int(path[i].Y) - int(path[i-1].Y)
			gapLen := dx + dy - 2 // diagonal step contributes dx=dy=1, i.e. 0 "skip"
			if gapLen < 0 {
				gapLen = 0
			}
			curRun = gapLen
			if curRun > maxRun {
				maxRun = curRun
			}
		}
	}
	info.AlignedMarkerCount = alignedCount
	info.OrdinalRange0 = [2]uint32{minX, maxX}
	info.OrdinalRange1 = [2]uint32{minY, maxY}
	info.MaxDrift = uint32(maxDrift)
	info.MaxSkip = uint32(maxRun)
	info.TrimLeft0 = minX
	info.TrimRight0 = nx - 1 - maxX
	info.TrimLeft1 = minY
	info.TrimRight1 = ny - 1 - maxY
	if len(path) > 0 {
		info.Offset = offsetSum / int64(len(path))
	}
}

func applyFilters(info *AlignmentInfo, nx, ny uint32, opts Options) {
	shorter := nx
	if ny < shorter {
		shorter = ny
	}
	fraction := float64(info.AlignedMarkerCount) / float64(shorter)

	ok := uint32(info.AlignedMarkerCount) >= opts.MinAlignedMarkerCount &&
		fraction >= opts.MinAlignedFraction &&
		info.MaxSkip <= opts.MaxSkip &&
		info.MaxDrift <= opts.MaxDrift &&
		info.TrimLeft0 <= opts.MaxTrim && info.TrimRight0 <= opts.MaxTrim &&
		info.TrimLeft1 <= opts.MaxTrim && info.TrimRight1 <= opts.MaxTrim &&
		uint32(info.BandMax-info.BandMin) <= opts.MaxBand

	if !ok {
		*info = AlignmentInfo{}
	}
}
