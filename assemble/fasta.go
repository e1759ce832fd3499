package assemble

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/grailbio/longasm/consensus"
	"github.com/grailbio/longasm/cpg"
)

// fastaLineWidth is the column width FASTA records are wrapped to, the
// conventional default the format has used since its original Pearson/Lipman
// definition.
const fastaLineWidth = 60

// WriteFASTA writes one FASTA record per assembled Chain in g, skipping
// Chains with no recorded consensus sequence.
func WriteFASTA(ctx context.Context, path string, g *cpg.Graph, store *consensus.Store) (err error) {
	dst, w, closeLayer, err := openOutput(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)
	defer func() {
		if cerr := closeLayer(); cerr != nil && err == nil {
			err = errors.E(cerr, "closing FASTA writer", path)
		}
	}()

	for _, id := range g.AllEdges() {
		edge, ok := g.Edge(id)
		if !ok {
			continue
		}
		for bi, b := range edge.BubbleChain.Bubbles {
			for ci := range b.Chains {
				seq, ok := store.Get(id, bi, ci)
				if !ok {
					continue
				}
				if _, err = fmt.Fprintf(w, ">%s\n", segmentName(id, bi, ci)); err != nil {
					return err
				}
				for off := 0; off < len(seq); off += fastaLineWidth {
					end := off + fastaLineWidth
					if end > len(seq) {
						end = len(seq)
					}
					if _, err = fmt.Fprintf(w, "%s\n", seq[off:end]); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
