package journey

import (
	"encoding/binary"
	"sync"

	"github.com/blainsmith/seahash"

	"github.com/grailbio/longasm/markergraph"
)

const numConcurrentMapShards = 1024

type journeyMapShard struct {
	mu      sync.Mutex
	entries map[markergraph.OrientedReadId][]unsortedJourney
}

// concurrentMap is a sharded, thread-safe map from oriented read to its
// unsorted journey entries, following the same sharded-mutex layout as the
// teacher's own per-mate concurrent map: one lock per shard, so concurrent
// writers touching different reads don't contend.
type concurrentMap struct {
	shards [numConcurrentMapShards]journeyMapShard
}

func newConcurrentMap() *concurrentMap {
	m := &concurrentMap{}
	for i := range m.shards {
		m.shards[i].entries = make(map[markergraph.OrientedReadId][]unsortedJourney)
	}
	return m
}

func (m *concurrentMap) shardFor(r markergraph.OrientedReadId) *journeyMapShard {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(r))
	h := seahash.Sum64(buf[:])
	return &m.shards[h%uint64(numConcurrentMapShards)]
}

// append records one unsorted journey entry for r.
func (m *concurrentMap) append(r markergraph.OrientedReadId, j unsortedJourney) {
	shard := m.shardFor(r)
	shard.mu.Lock()
	shard.entries[r] = append(shard.entries[r], j)
	shard.mu.Unlock()
}

// get returns the entries recorded for r, or nil if none were recorded.
func (m *concurrentMap) get(r markergraph.OrientedReadId) []unsortedJourney {
	shard := m.shardFor(r)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	return shard.entries[r]
}
