package filter

import (
	"iter"
	"testing"

	"github.com/hupe1980/idxgo/core"
	"github.com/hupe1980/idxgo/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStore(t *testing.T, keys []string) store.Store[string] {
	t.Helper()

	seq := func(yield func(core.Position, string) bool) {
		for i, k := range keys {
			if !yield(core.Position(i), k) {
				return
			}
		}
	}
	s, err := store.BuildHash(len(keys), iter.Seq2[core.Position, string](seq))
	require.NoError(t, err)
	return s
}

func TestFilter(t *testing.T) {
	// positions:      0    1    2    3    4    5
	keys := []string{"a", "b", "a", "c", "b", "a"}
	s := buildStore(t, keys)

	t.Run("Eq", func(t *testing.T) {
		assert.Equal(t, []core.Position{0, 2, 5}, Positions(s, Eq("a")))
		assert.Empty(t, Positions(s, Eq("z")))
	})

	t.Run("In", func(t *testing.T) {
		assert.Equal(t, []core.Position{0, 1, 2, 4, 5}, Positions(s, In("a", "b")))
		assert.Equal(t, Positions(s, In("a", "b")), Positions(s, Or(Eq("a"), Eq("b"))))
		assert.Empty(t, Positions(s, In[string]()))
	})

	t.Run("OrDeduplicates", func(t *testing.T) {
		// The same key twice must not duplicate positions.
		assert.Equal(t, []core.Position{0, 2, 5}, Positions(s, Or(Eq("a"), Eq("a"))))
	})

	t.Run("AndIntersects", func(t *testing.T) {
		assert.Empty(t, Positions(s, And(Eq("a"), Eq("b"))))
		assert.Equal(t, []core.Position{0, 2, 5}, Positions(s, And(Eq("a"), Eq("a"))))
		assert.Equal(t, []core.Position{1, 4}, Positions(s, And(Or(Eq("a"), Eq("b")), Eq("b"))))
	})

	t.Run("NestingIndependent", func(t *testing.T) {
		// Union is commutative and associative regardless of tree shape.
		flat := Positions(s, Or(Eq("a"), Eq("b"), Eq("c")))
		left := Positions(s, Or(Or(Eq("a"), Eq("b")), Eq("c")))
		right := Positions(s, Or(Eq("c"), Or(Eq("b"), Eq("a"))))

		assert.Equal(t, []core.Position{0, 1, 2, 3, 4, 5}, flat)
		assert.Equal(t, flat, left)
		assert.Equal(t, flat, right)

		assert.Equal(t,
			Positions(s, And(Eq("a"), And(Eq("a"), Eq("a")))),
			Positions(s, And(And(Eq("a"), Eq("a")), Eq("a"))),
		)
	})

	t.Run("ZeroAndNilOperands", func(t *testing.T) {
		assert.Empty(t, Positions(s, And[string]()))
		assert.Empty(t, Positions(s, Or[string]()))
		assert.Equal(t, []core.Position{0, 2, 5}, Positions(s, Or(nil, Eq("a"), nil)))
		assert.Equal(t, []core.Position{0, 2, 5}, Positions(s, And(nil, Eq("a"))))
	})

	t.Run("NilExpr", func(t *testing.T) {
		bm := Eval[string](s, nil)
		assert.True(t, bm.IsEmpty())
		assert.Empty(t, Positions[string](s, nil))
	})

	t.Run("EvalOwnsBitmap", func(t *testing.T) {
		e := Eq("a")
		first := Eval(s, e)
		first.Add(99)
		second := Eval(s, e)
		assert.False(t, second.Contains(99), "evaluations must not share state")
	})
}
