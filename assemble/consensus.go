package assemble

import (
	"github.com/grailbio/base/errors"

	"github.com/grailbio/longasm/consensus"
	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/markergraph"
)

// AssembleChains optimizes and assembles every Chain of every live edge in
// g, using asm as the external consensus collaborator, and returns the
// populated Store.
func AssembleChains(mg markergraph.Graph, g *cpg.Graph, cfg Config, asm consensus.Assembler) (*consensus.Store, error) {
	store := consensus.NewStore()
	for _, id := range g.AllEdges() {
		edge, ok := g.Edge(id)
		if !ok {
			continue
		}
		if err := store.AssembleEdge(mg, edge, cfg.ChainOpt, asm); err != nil {
			return nil, errors.E(err, "assembling chains for edge", id)
		}
	}
	return store, nil
}
