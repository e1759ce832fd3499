package assemble

import (
	"context"
	"encoding/csv"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"

	"github.com/grailbio/longasm/consensus"
	"github.com/grailbio/longasm/cpg"
	"github.com/grailbio/longasm/markergraph"
)

// createCSVWriter opens path (transparently gzip-compressing if its
// extension calls for it, via openOutput) and returns a csv.Writer over it
// plus a closeFn that must run, via defer, before the returned file.File is
// closed.
func createCSVWriter(ctx context.Context, path string) (*csv.Writer, file.File, func() error, error) {
	dst, w, closeLayer, err := openOutput(ctx, path)
	if err != nil {
		return nil, nil, nil, err
	}
	return csv.NewWriter(w), dst, closeLayer, nil
}

// componentOf groups the graph's edges by weakly-connected component,
// numbered in edge-id order, for bubble_chains.csv's ComponentId column.
func componentOf(g *cpg.Graph) map[cpg.EdgeId]int {
	parent := make(map[cpg.VertexId]cpg.VertexId)
	var find func(cpg.VertexId) cpg.VertexId
	find = func(v cpg.VertexId) cpg.VertexId {
		if p, ok := parent[v]; ok && p != v {
			parent[v] = find(p)
			return parent[v]
		}
		parent[v] = v
		return v
	}
	union := func(a, b cpg.VertexId) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for v := cpg.VertexId(0); int(v) < g.NumVertices(); v++ {
		parent[v] = v
	}
	ids := g.AllEdges()
	for _, id := range ids {
		e, _ := g.Edge(id)
		union(e.Source, e.Target)
	}

	rootToComponent := make(map[cpg.VertexId]int)
	result := make(map[cpg.EdgeId]int, len(ids))
	for _, id := range ids {
		e, _ := g.Edge(id)
		root := find(e.Source)
		cid, ok := rootToComponent[root]
		if !ok {
			cid = len(rootToComponent)
			rootToComponent[root] = cid
		}
		result[id] = cid
	}
	return result
}

// WriteBubbleChainsCSV writes one row per live CPG edge: ComponentId,
// CpgEdgeId, SourceVertexId, TargetVertexId, BubbleCount, TotalBaseOffset.
func WriteBubbleChainsCSV(ctx context.Context, path string, mg markergraph.Graph, g *cpg.Graph) (err error) {
	w, dst, closeLayer, err := createCSVWriter(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)
	defer func() {
		if cerr := closeLayer(); cerr != nil && err == nil {
			err = errors.E(cerr, "closing CSV writer", path)
		}
	}()
	defer w.Flush()

	if err = w.Write([]string{"ComponentId", "CpgEdgeId", "SourceVertexId", "TargetVertexId", "BubbleCount", "TotalBaseOffset"}); err != nil {
		return err
	}
	components := componentOf(g)
	for _, id := range g.AllEdges() {
		e, _ := g.Edge(id)
		total := totalBaseOffset(mg, e.BubbleChain)
		if err = w.Write([]string{
			strconv.Itoa(components[id]),
			strconv.FormatUint(uint64(id), 10),
			strconv.Itoa(int(e.Source)),
			strconv.Itoa(int(e.Target)),
			strconv.Itoa(len(e.BubbleChain.Bubbles)),
			strconv.FormatInt(total, 10),
		}); err != nil {
			return err
		}
	}
	return w.Error()
}

func totalBaseOffset(mg markergraph.Graph, bc cpg.BubbleChain) int64 {
	var sum int64
	for _, b := range bc.Bubbles {
		rep := b.Chains[0]
		for i := 0; i+1 < len(rep); i++ {
			sum += mg.AnalyzeEdgePair(rep[i], rep[i+1]).OffsetInBases
		}
	}
	return sum
}

// WriteBubblesCSV writes one row per Bubble: CpgEdgeId,
// PositionInBubbleChain, Ploidy, FirstMarkerGraphEdgeId,
// LastMarkerGraphEdgeId, IsDiploid.
func WriteBubblesCSV(ctx context.Context, path string, g *cpg.Graph) (err error) {
	w, dst, closeLayer, err := createCSVWriter(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)
	defer func() {
		if cerr := closeLayer(); cerr != nil && err == nil {
			err = errors.E(cerr, "closing CSV writer", path)
		}
	}()
	defer w.Flush()

	if err = w.Write([]string{"CpgEdgeId", "PositionInBubbleChain", "Ploidy", "FirstMarkerGraphEdgeId", "LastMarkerGraphEdgeId", "IsDiploid"}); err != nil {
		return err
	}
	for _, id := range g.AllEdges() {
		e, _ := g.Edge(id)
		for bi, b := range e.BubbleChain.Bubbles {
			if err = w.Write([]string{
				strconv.FormatUint(uint64(id), 10),
				strconv.Itoa(bi),
				strconv.Itoa(b.Ploidy()),
				strconv.FormatUint(uint64(b.First()), 10),
				strconv.FormatUint(uint64(b.Last()), 10),
				strconv.FormatBool(b.Diploid()),
			}); err != nil {
				return err
			}
		}
	}
	return w.Error()
}

// WriteChainsCSV writes one row per Chain: CpgEdgeId,
// PositionInBubbleChain, ChainIndexInBubble, Length, HasSequence,
// SequenceLength.
func WriteChainsCSV(ctx context.Context, path string, g *cpg.Graph, store *consensus.Store) (err error) {
	w, dst, closeLayer, err := createCSVWriter(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)
	defer func() {
		if cerr := closeLayer(); cerr != nil && err == nil {
			err = errors.E(cerr, "closing CSV writer", path)
		}
	}()
	defer w.Flush()

	if err = w.Write([]string{"CpgEdgeId", "PositionInBubbleChain", "ChainIndexInBubble", "Length", "HasSequence", "SequenceLength"}); err != nil {
		return err
	}
	for _, id := range g.AllEdges() {
		e, _ := g.Edge(id)
		for bi, b := range e.BubbleChain.Bubbles {
			for ci, c := range b.Chains {
				seq, hasSeq := store.Get(id, bi, ci)
				if err = w.Write([]string{
					strconv.FormatUint(uint64(id), 10),
					strconv.Itoa(bi),
					strconv.Itoa(ci),
					strconv.Itoa(len(c)),
					strconv.FormatBool(hasSeq),
					strconv.Itoa(len(seq)),
				}); err != nil {
					return err
				}
			}
		}
	}
	return w.Error()
}

// WriteChainDetailsCSV writes one row per marker graph edge within every
// Chain: CpgEdgeId, PositionInBubbleChain, ChainIndexInBubble,
// PositionInChain, MarkerGraphEdgeId.
func WriteChainDetailsCSV(ctx context.Context, path string, g *cpg.Graph) (err error) {
	w, dst, closeLayer, err := createCSVWriter(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, dst, &err)
	defer func() {
		if cerr := closeLayer(); cerr != nil && err == nil {
			err = errors.E(cerr, "closing CSV writer", path)
		}
	}()
	defer w.Flush()

	if err = w.Write([]string{"CpgEdgeId", "PositionInBubbleChain", "ChainIndexInBubble", "PositionInChain", "MarkerGraphEdgeId"}); err != nil {
		return err
	}
	for _, id := range g.AllEdges() {
		e, _ := g.Edge(id)
		for bi, b := range e.BubbleChain.Bubbles {
			for ci, c := range b.Chains {
				for pi, markerEdge := range c {
					if err = w.Write([]string{
						strconv.FormatUint(uint64(id), 10),
						strconv.Itoa(bi),
						strconv.Itoa(ci),
						strconv.Itoa(pi),
						strconv.FormatUint(uint64(markerEdge), 10),
					}); err != nil {
						return err
					}
				}
			}
		}
	}
	return w.Error()
}
