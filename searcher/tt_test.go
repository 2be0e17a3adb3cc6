package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsim/eval"
)

func TestTranspositionTableStoreAndProbe(t *testing.T) {
	t.Run("probe returns stored entry", func(t *testing.T) {
		tt := NewTranspositionTable()
		tt.Store(42, eval.NewScore(100), 2, BoundExact)

		entry := tt.Probe(42)
		require.NotNil(t, entry)
		require.Equal(t, 100, entry.Score.Value)
		require.Equal(t, 2, entry.Depth)
		require.Equal(t, BoundExact, entry.Bound)
	})

	t.Run("probe miss returns nil and counts", func(t *testing.T) {
		tt := NewTranspositionTable()
		require.Nil(t, tt.Probe(1))
		require.Equal(t, 0, tt.Hits())
		require.Equal(t, 1, tt.Misses())
	})

	t.Run("shallower store does not replace deeper entry", func(t *testing.T) {
		tt := NewTranspositionTable()
		tt.Store(7, eval.NewScore(100), 3, BoundExact)
		tt.Store(7, eval.NewScore(999), 1, BoundExact)

		entry := tt.Probe(7)
		require.NotNil(t, entry)
		require.Equal(t, 100, entry.Score.Value, "deeper entry should survive")
		require.Equal(t, 3, entry.Depth)
	})

	t.Run("equal-depth store replaces entry", func(t *testing.T) {
		tt := NewTranspositionTable()
		tt.Store(7, eval.NewScore(100), 2, BoundExact)
		tt.Store(7, eval.NewScore(200), 2, BoundLower)

		entry := tt.Probe(7)
		require.Equal(t, 200, entry.Score.Value)
		require.Equal(t, BoundLower, entry.Bound)
	})
}

func TestTranspositionTableProbeForDepth(t *testing.T) {
	tt := NewTranspositionTable()
	tt.Store(1, eval.NewScore(50), 3, BoundExact)

	require.NotNil(t, tt.ProbeForDepth(1, 3), "probe at stored depth should hit")
	require.NotNil(t, tt.ProbeForDepth(1, 2), "probe below stored depth should hit")
	require.Nil(t, tt.ProbeForDepth(1, 4), "probe above stored depth should miss")
}

func TestTranspositionTableLRUEviction(t *testing.T) {
	// Capacity 3: insert H1..H3, touch H1, insert H4; H2 is now the
	// least recently used and must be gone.
	tt := NewTranspositionTableWithCapacity(3)
	tt.Store(1, eval.NewScore(1), 1, BoundExact)
	tt.Store(2, eval.NewScore(2), 1, BoundExact)
	tt.Store(3, eval.NewScore(3), 1, BoundExact)

	require.NotNil(t, tt.Probe(1))

	tt.Store(4, eval.NewScore(4), 1, BoundExact)

	require.Nil(t, tt.Probe(2), "least-recently-used entry should be evicted")
	require.NotNil(t, tt.Probe(1))
	require.NotNil(t, tt.Probe(3))
	require.NotNil(t, tt.Probe(4))
	require.Equal(t, 3, tt.Len())
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable()
	tt.Store(1, eval.NewScore(1), 1, BoundExact)
	tt.Probe(1)
	tt.Clear()

	require.Equal(t, 0, tt.Len())
	require.Equal(t, 0, tt.Hits())
	require.Equal(t, 0, tt.Misses())
}
