// Package consensus defines the read-only contract this module consumes
// from the external assembler collaborator: given an optimized Chain of
// marker graph edges, it returns the consensus base sequence spanning
// them. Base-level read alignment and consensus calling are out of this
// module's scope, exactly as raw sequence and read layout are out of
// markergraph.Graph's scope; this package only calls the collaborator and
// stores what it returns.
package consensus

import "github.com/grailbio/longasm/markergraph"

// Assembler turns an ordered chain of marker graph edges into a consensus
// base sequence, consulting mg for whatever pairwise evidence it needs
// (coverage, offsets, oriented read intervals).
type Assembler interface {
	AssemblePath(mg markergraph.Graph, chain []markergraph.EdgeId) (string, error)
}
