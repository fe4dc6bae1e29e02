package store

import (
	"iter"
	"testing"

	"github.com/hupe1980/idxgo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqOf adapts a key slice to the build input: position i carries keys[i].
func seqOf[K any](keys []K) iter.Seq2[core.Position, K] {
	return func(yield func(core.Position, K) bool) {
		for i, k := range keys {
			if !yield(core.Position(i), k) {
				return
			}
		}
	}
}

func TestPartitionInvariant(t *testing.T) {
	// Every position must appear in exactly one key's postings.
	check := func(t *testing.T, s Store[uint32], keys []uint32) {
		t.Helper()

		seen := make(map[core.Position]int)
		distinct := make(map[uint32]struct{})
		for _, k := range keys {
			distinct[k] = struct{}{}
		}
		for k := range distinct {
			for _, pos := range s.Positions(k) {
				seen[pos]++
			}
		}

		require.Len(t, seen, len(keys))
		for pos, n := range seen {
			assert.Equal(t, 1, n, "position %d", pos)
			assert.Less(t, int(pos), len(keys))
		}
		assert.Equal(t, len(keys), s.Len())
		assert.Equal(t, len(distinct), s.Keys())
	}

	keys := []uint32{7, 3, 7, 0, 3, 3, 11}

	t.Run("Dense", func(t *testing.T) {
		s, err := BuildDense(len(keys), seqOf(keys))
		require.NoError(t, err)
		check(t, s, keys)
	})

	t.Run("Hash", func(t *testing.T) {
		s, err := BuildHash(len(keys), seqOf(keys))
		require.NoError(t, err)
		check(t, s, keys)
	})
}

func TestContainsMatchesPositions(t *testing.T) {
	keys := []string{"a", "b", "a"}
	s, err := BuildHash(len(keys), seqOf(keys))
	require.NoError(t, err)

	for _, k := range []string{"a", "b", "c"} {
		assert.Equal(t, len(s.Positions(k)) > 0, s.Contains(k), "key %q", k)
	}
}
