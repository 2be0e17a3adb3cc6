package searcher

import (
	"container/list"
	"fmt"

	"cardsim/eval"
)

// Bound describes how a cached score relates to the true value.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower
	BoundUpper
)

// TTEntry is one cached evaluation.
type TTEntry struct {
	Score eval.Score
	Depth int
	Bound Bound
}

const defaultTTCapacity = 100000

// TranspositionTable caches evaluated positions with least-recently-
// used eviction. Per-search-thread: not safe for concurrent use.
type TranspositionTable struct {
	capacity int
	entries  map[uint64]*list.Element
	order    *list.List // front = most recently used

	hits   int
	misses int
}

type ttItem struct {
	hash  uint64
	entry TTEntry
}

func NewTranspositionTable() *TranspositionTable {
	return NewTranspositionTableWithCapacity(defaultTTCapacity)
}

func NewTranspositionTableWithCapacity(capacity int) *TranspositionTable {
	return &TranspositionTable{
		capacity: capacity,
		entries:  make(map[uint64]*list.Element),
		order:    list.New(),
	}
}

// Store inserts an entry unless a deeper-searched entry already exists
// for the hash.
func (t *TranspositionTable) Store(hash uint64, score eval.Score, depth int, bound Bound) {
	if el, ok := t.entries[hash]; ok {
		item := el.Value.(*ttItem)
		t.order.MoveToFront(el)
		if depth >= item.entry.Depth {
			item.entry = TTEntry{Score: score, Depth: depth, Bound: bound}
		}
		return
	}

	el := t.order.PushFront(&ttItem{hash: hash, entry: TTEntry{Score: score, Depth: depth, Bound: bound}})
	t.entries[hash] = el
	if t.order.Len() > t.capacity {
		oldest := t.order.Back()
		t.order.Remove(oldest)
		delete(t.entries, oldest.Value.(*ttItem).hash)
	}
}

// Probe returns the cached entry for the hash, refreshing its
// recency, or nil.
func (t *TranspositionTable) Probe(hash uint64) *TTEntry {
	el, ok := t.entries[hash]
	if !ok {
		t.misses++
		return nil
	}
	t.hits++
	t.order.MoveToFront(el)
	entry := el.Value.(*ttItem).entry
	return &entry
}

// ProbeForDepth returns the entry only if it was searched at least as
// deep as the query.
func (t *TranspositionTable) ProbeForDepth(hash uint64, depth int) *TTEntry {
	entry := t.Probe(hash)
	if entry != nil && entry.Depth >= depth {
		return entry
	}
	return nil
}

func (t *TranspositionTable) Clear() {
	t.entries = make(map[uint64]*list.Element)
	t.order.Init()
	t.hits = 0
	t.misses = 0
}

func (t *TranspositionTable) Len() int    { return t.order.Len() }
func (t *TranspositionTable) Hits() int   { return t.hits }
func (t *TranspositionTable) Misses() int { return t.misses }

func (t *TranspositionTable) HitRate() float64 {
	total := t.hits + t.misses
	if total == 0 {
		return 0
	}
	return float64(t.hits) / float64(total)
}

func (t *TranspositionTable) StatsSummary() string {
	return fmt.Sprintf("tt: size=%d hits=%d misses=%d hitRate=%.2f%%",
		t.Len(), t.hits, t.misses, t.HitRate()*100)
}
