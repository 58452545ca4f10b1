package embedding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemalens/schemalens/internal/port"
)

func TestWordIndex_GetOrAddIsIdempotent(t *testing.T) {
	idx := NewWordIndex()

	first := idx.GetOrAdd("users")
	second := idx.GetOrAdd("users")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, idx.Count())
}

func TestWordIndex_SequentialFirstSeenOrder(t *testing.T) {
	idx := NewWordIndex()

	assert.Equal(t, 0, idx.GetOrAdd("create"))
	assert.Equal(t, 1, idx.GetOrAdd("table"))
	assert.Equal(t, 2, idx.GetOrAdd("users"))
	assert.Equal(t, 0, idx.GetOrAdd("create"))
	assert.Equal(t, 3, idx.Count())
}

func TestWordIndex_RoundTrip(t *testing.T) {
	idx := NewWordIndex()
	words := []string{"id", "name", "email", "created_at"}

	for _, w := range words {
		got, err := idx.Word(idx.GetOrAdd(w))
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
	assert.Equal(t, len(words), idx.Count())
}

func TestWordIndex_UnassignedIndex(t *testing.T) {
	idx := NewWordIndex()
	idx.GetOrAdd("only")

	_, err := idx.Word(1)
	assert.True(t, errors.Is(err, port.ErrWordNotFound))

	_, err = idx.Word(-1)
	assert.True(t, errors.Is(err, port.ErrWordNotFound))
}
