package consensus

import (
	"strings"

	"github.com/grailbio/longasm/markergraph"
)

// NaiveAssembler is a placeholder Assembler for dry runs and tests that
// have no real sequence collaborator wired in. It does not read or invent
// genomic sequence: it renders each chain as a deterministic base string
// whose length approximates the chain's total estimated span, by walking
// AnalyzeEdgePair's OffsetInBases between consecutive edges. It exists so
// the pipeline can exercise the consensus stage end to end before a real
// assembler is wired in; a production deployment must supply its own
// Assembler.
type NaiveAssembler struct{}

func (NaiveAssembler) AssemblePath(mg markergraph.Graph, chain []markergraph.EdgeId) (string, error) {
	if len(chain) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteByte('A')
	pos := 0
	for i := 0; i+1 < len(chain); i++ {
		offset := mg.AnalyzeEdgePair(chain[i], chain[i+1]).OffsetInBases
		for j := int64(0); j < offset; j++ {
			sb.WriteByte(bases[pos%len(bases)])
			pos++
		}
	}
	return sb.String(), nil
}

var bases = []byte("ACGT")
