package align4

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grailbio/longasm/markergraph"
)

func kmerSeq(ids ...uint64) []markergraph.KmerId {
	out := make([]markergraph.KmerId, len(ids))
	for i, id := range ids {
		out[i] = markergraph.KmerId(id)
	}
	return out
}

func testOptions() Options {
	o := DefaultOptions
	o.DeltaX, o.DeltaY = 2, 2
	o.MinEntryCountPerCell = 1
	o.MaxDistanceFromBoundary = 1000
	o.MinAlignedMarkerCount = 5
	o.MinAlignedFraction = 0.3
	o.MaxSkip = 5
	o.MaxDrift = 5
	o.MaxTrim = 1000
	o.MaxBand = 1000
	return o
}

func alignSeqs(a, b []uint64) AlignmentInfo {
	ak := kmerSeq(a...)
	bk := kmerSeq(b...)
	return Align([2][]markergraph.KmerId{ak, bk}, [2][]SortedMarker{SortMarkers(ak), SortMarkers(bk)}, testOptions(), nil)
}

func TestAlignIdentical(t *testing.T) {
	seq := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	info := alignSeqs(seq, seq)
	require.True(t, info.Aligned)
	require.Equal(t, len(seq), info.AlignedMarkerCount)
	require.Equal(t, int64(0), info.Offset)
}

func TestAlignShiftRecoversOffset(t *testing.T) {
	base := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	// B = shift(A, 3): B's markers are A's markers preceded by 3 unique fillers,
	// so the common suffix of B corresponds to a +3 ordinal offset from A.
	shifted := append([]uint64{101, 102, 103}, base...)
	info := alignSeqs(base, shifted)
	require.True(t, info.Aligned)
	require.InDelta(t, -3, info.Offset, 1)
}

func TestAlignSymmetric(t *testing.T) {
	base := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	shifted := append([]uint64{101, 102, 103}, base...)
	fwd := alignSeqs(base, shifted)
	rev := alignSeqs(shifted, base)
	require.True(t, fwd.Aligned)
	require.True(t, rev.Aligned)
	require.Equal(t, fwd.AlignedMarkerCount, rev.AlignedMarkerCount)
	require.InDelta(t, fwd.Offset, -rev.Offset, 1)
}

func TestAlignNoCommonMarkersRejected(t *testing.T) {
	a := []uint64{1, 2, 3, 4, 5}
	b := []uint64{101, 102, 103, 104, 105}
	info := alignSeqs(a, b)
	require.False(t, info.Aligned)
}

func TestAlignMonotoneRejection(t *testing.T) {
	base := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	opts := testOptions()
	a := kmerSeq(base...)
	b := kmerSeq(base...)
	accepted := Align([2][]markergraph.KmerId{a, b}, [2][]SortedMarker{SortMarkers(a), SortMarkers(b)}, opts, nil)
	require.True(t, accepted.Aligned)

	tight := opts
	tight.MinAlignedMarkerCount = uint32(len(base)) + 1
	rejected := Align([2][]markergraph.KmerId{a, b}, [2][]SortedMarker{SortMarkers(a), SortMarkers(b)}, tight, nil)
	require.False(t, rejected.Aligned)
}

func TestArenaReuseProducesSameResult(t *testing.T) {
	base := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	a := kmerSeq(base...)
	b := kmerSeq(base...)
	arena := NewArena()
	first := Align([2][]markergraph.KmerId{a, b}, [2][]SortedMarker{SortMarkers(a), SortMarkers(b)}, testOptions(), arena)
	second := Align([2][]markergraph.KmerId{a, b}, [2][]SortedMarker{SortMarkers(a), SortMarkers(b)}, testOptions(), arena)
	require.Equal(t, first.AlignedMarkerCount, second.AlignedMarkerCount)
}
