package store

import (
	"testing"

	"github.com/hupe1980/idxgo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	keys := []string{"gold", "silver", "gold", "bronze"}
	parent, err := BuildHash(len(keys), seqOf(keys))
	require.NoError(t, err)

	t.Run("Restriction", func(t *testing.T) {
		v := NewView[string](parent, "gold", "bronze")

		assert.True(t, v.Contains("gold"))
		assert.True(t, v.Contains("bronze"))
		assert.False(t, v.Contains("silver"), "restricted away")
		assert.True(t, parent.Contains("silver"))

		assert.Equal(t, []core.Position{0, 2}, v.Positions("gold"))
		assert.Nil(t, v.Positions("silver"))

		assert.Equal(t, 3, v.Len())
		assert.Equal(t, 2, v.Keys())
	})

	t.Run("SharesParentPostings", func(t *testing.T) {
		v := NewView[string](parent, "gold")
		// Same backing array, not a copy.
		assert.Same(t, &parent.Positions("gold")[0], &v.Positions("gold")[0])
	})

	t.Run("AbsentKeysDropped", func(t *testing.T) {
		v := NewView[string](parent, "gold", "platinum")

		assert.False(t, v.Contains("platinum"))
		assert.Equal(t, 1, v.Keys())

		minKey, ok := v.MinKey()
		require.True(t, ok)
		assert.Equal(t, "gold", minKey)
		maxKey, _ := v.MaxKey()
		assert.Equal(t, "gold", maxKey)
	})

	t.Run("MetaCoversVisibleOnly", func(t *testing.T) {
		v := NewView[string](parent, "gold", "silver")

		minKey, _ := v.MinKey()
		maxKey, _ := v.MaxKey()
		assert.Equal(t, "gold", minKey)
		assert.Equal(t, "silver", maxKey)
	})

	t.Run("ViewOfViewIntersects", func(t *testing.T) {
		v1 := NewView[string](parent, "gold", "bronze")
		v2 := NewView[string](v1, "bronze", "silver")

		assert.True(t, v2.Contains("bronze"))
		assert.False(t, v2.Contains("silver"), "not visible in v1")
		assert.False(t, v2.Contains("gold"), "not requested in v2")
		assert.Equal(t, 1, v2.Keys())
	})

	t.Run("Empty", func(t *testing.T) {
		v := NewView[string](parent)

		_, ok := v.MinKey()
		assert.False(t, ok)
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, 0, v.Keys())
	})
}
