package align4

// Arena is the scoped byte-allocator Align4 draws its large, short-lived
// allocations from. It is owned by the caller (§5: "the external
// byte-allocator for Align4 is per-thread/per-call"), reused across calls
// within one goroutine, and reset between calls instead of left to the
// garbage collector — the same reusable-scratch-buffer idiom the teacher
// uses for encoding/fasta's preallocated read buffer and fusion's
// kmerizer.tmpSeq.
type Arena struct {
	matchBuf []matchPair
	cellBuf  []int32
}

// NewArena returns an Arena with no preallocated capacity; capacity grows
// (and is retained) as Align calls demand it.
func NewArena() *Arena { return &Arena{} }

// Reset truncates the arena's buffers to length zero without releasing
// their backing arrays, so the next Align call reuses the capacity built up
// by previous calls.
func (a *Arena) Reset() {
	a.matchBuf = a.matchBuf[:0]
	a.cellBuf = a.cellBuf[:0]
}

func (a *Arena) matches(n int) []matchPair {
	if cap(a.matchBuf) < n {
		a.matchBuf = make([]matchPair, 0, n)
	}
	return a.matchBuf[:0]
}
