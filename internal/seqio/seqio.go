// Package seqio provides small sequence-level helpers on top of raw base
// byte slices: cleaning (used by the consensus store), and
// reverse-complementing. The cleaning step is a direct call into
// github.com/grailbio/longasm/biosimd (adapted from the teacher's SIMD base
// manipulation routines) rather than a hand-rolled byte loop.
package seqio

import "github.com/grailbio/longasm/biosimd"

// Clean capitalizes a/c/g/t and replaces anything non-ACGT with 'N', in
// place, via biosimd.CleanASCIISeqInplace.
func Clean(seq []byte) {
	biosimd.CleanASCIISeqInplace(seq)
}

var complement = [256]byte{}

func init() {
	for i := range complement {
		complement[i] = 'N'
	}
	pairs := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'N': 'N'}
	for k, v := range pairs {
		complement[k] = v
		complement[k+('a'-'A')] = v + ('a' - 'A')
	}
}

// ReverseComplement returns the reverse complement of seq, following the
// teacher's base-by-base reverseComplement (fusion/parsegencode), but
// working over bytes rather than building a string.Builder.
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	out := make([]byte, n)
	for i, b := range seq {
		out[n-1-i] = complement[b]
	}
	return out
}
