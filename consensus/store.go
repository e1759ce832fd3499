package consensus

import (
	"github.com/grailbio/longasm/chainopt"
	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/internal/seqio"
	"github.com/grailbio/longasm/markergraph"
)

// chainKey locates one Chain within a cpg.Graph: the edge it belongs to,
// the Bubble's position within that edge's BubbleChain, and the Chain's
// index within the Bubble (0 for a haploid Bubble, 0 or 1 for a diploid
// one).
type chainKey struct {
	edge          cpg.EdgeId
	bubblePos     int
	chainInBubble int
}

// Store holds the assembled consensus sequence for each Chain produced by
// a cpg.Graph, since cpg.Chain itself is a plain value type with nowhere
// to carry a derived sequence.
type Store struct {
	seqs map[chainKey]string
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{seqs: make(map[chainKey]string)} }

// Set records seq as the consensus for the given Chain.
func (s *Store) Set(edge cpg.EdgeId, bubblePos, chainInBubble int, seq string) {
	s.seqs[chainKey{edge, bubblePos, chainInBubble}] = seq
}

// Get returns the consensus recorded for the given Chain, if any.
func (s *Store) Get(edge cpg.EdgeId, bubblePos, chainInBubble int) (string, bool) {
	seq, ok := s.seqs[chainKey{edge, bubblePos, chainInBubble}]
	return seq, ok
}

// AssembleEdge optimizes and assembles every Chain of every Bubble in
// edge.BubbleChain, recording each result under its (bubble, chain)
// position.
func (s *Store) AssembleEdge(mg markergraph.Graph, edge cpg.Edge, copt chainopt.Options, asm Assembler) error {
	for bi, b := range edge.BubbleChain.Bubbles {
		for ci, c := range b.Chains {
			optimized := chainopt.Optimize(mg, c, copt)
			seq, err := asm.AssemblePath(mg, []markergraph.EdgeId(optimized))
			if err != nil {
				return err
			}
			// An Assembler is an external collaborator; normalize its output
			// the way the rest of the pack normalizes incoming sequence data
			// before trusting it as clean uppercase ACGT/N.
			raw := []byte(seq)
			seqio.Clean(raw)
			s.Set(edge.ID, bi, ci, string(raw))
		}
	}
	return nil
}
