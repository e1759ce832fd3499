// Package workqueue is a thin batching layer over
// github.com/grailbio/base/traverse, the work-queue/fixed-pool primitive.
// Its only caller is journey construction (journey.Build, through Run);
// Align4, PathGraph1 edge creation, the CPG pipeline, chain optimization and
// assembly run sequentially and do not use it. It plays the role the
// teacher's encoding/pam/sharder.go batch-splitting helper plays for PAM
// conversion: turn "N items, batches of size B" into a fixed number of
// traverse.Each jobs so a thread pool sized to hardware concurrency doesn't
// spin up one goroutine per item.
package workqueue

import "github.com/grailbio/base/traverse"

// Range is a half-open [Start, Limit) slice of item indices.
type Range struct {
	Start, Limit int
}

// Len returns Limit - Start.
func (r Range) Len() int { return r.Limit - r.Start }

// Batches splits [0, total) into contiguous ranges of at most batchSize
// items each. It never returns an empty range, and total <= 0 yields nil.
func Batches(total, batchSize int) []Range {
	if total <= 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = total
	}
	n := (total + batchSize - 1) / batchSize
	batches := make([]Range, 0, n)
	for start := 0; start < total; start += batchSize {
		limit := start + batchSize
		if limit > total {
			limit = total
		}
		batches = append(batches, Range{Start: start, Limit: limit})
	}
	return batches
}

// Run splits [0, total) into batches of batchSize items and invokes fn once
// per batch, in parallel, across a pool sized by traverse.Each. fn must be
// safe to call concurrently from different batches; work within a single
// batch is sequential, matching the teacher's "shard, then thread-local
// accumulate" pattern.
func Run(total, batchSize int, fn func(r Range) error) error {
	batches := Batches(total, batchSize)
	return traverse.Each(len(batches), func(i int) error {
		return fn(batches[i])
	})
}

// RunItems parallelizes fn over every index in [0, total) directly,
// without batching. No package in this module calls it.
func RunItems(total int, fn func(i int) error) error {
	if total <= 0 {
		return nil
	}
	return traverse.Each(total, fn)
}
