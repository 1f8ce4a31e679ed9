package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageAdvanceWraps(t *testing.T) {
	s := newStorage[int](3)
	require.Len(t, s.slots, 4, "one slot is reserved to tell empty from full")

	assert.Equal(t, 1, s.advance(0))
	assert.Equal(t, 2, s.advance(1))
	assert.Equal(t, 3, s.advance(2))
	assert.Equal(t, 0, s.advance(3))
}

func TestStorageEmptyAndFull(t *testing.T) {
	s := newStorage[int](2)

	assert.True(t, s.empty())
	assert.False(t, s.full())
	assert.Equal(t, 0, s.len())

	s.put(1)
	assert.False(t, s.empty())
	assert.False(t, s.full())

	s.put(2)
	assert.True(t, s.full())
	assert.NotEqual(t, s.head, s.tail, "a full ring never has head == tail")
	assert.Equal(t, 2, s.len())
}

func TestStorageLenAcrossWraparound(t *testing.T) {
	s := newStorage[int](3)

	for round := 0; round < 10; round++ {
		s.put(round)
		s.put(round + 100)
		require.Equal(t, 2, s.len(), "round %d", round)

		assert.Equal(t, round, s.take())
		assert.Equal(t, round+100, s.take())
		require.Equal(t, 0, s.len())

		assert.GreaterOrEqual(t, s.head, 0)
		assert.Less(t, s.head, len(s.slots))
		assert.GreaterOrEqual(t, s.tail, 0)
		assert.Less(t, s.tail, len(s.slots))
	}
}

func TestStorageTakeZeroesDeadSlot(t *testing.T) {
	s := newStorage[*int](2)
	v := 7
	s.put(&v)

	idx := s.head
	got := s.take()
	require.Same(t, &v, got)
	assert.Nil(t, s.slots[idx], "popped slot must not keep a reference")
}

func TestStorageZeroCapacity(t *testing.T) {
	s := newStorage[int](0)

	assert.True(t, s.empty())
	assert.True(t, s.full())
	assert.Equal(t, 0, s.len())
}

func TestStorageMoveOutAndRelease(t *testing.T) {
	s := newStorage[string](2)
	s.put("a")

	moved := s.moveOut()
	assert.True(t, s.released())
	assert.False(t, s.full())
	assert.Equal(t, 0, s.capacity)

	assert.False(t, moved.released())
	assert.Equal(t, 1, moved.len())
	assert.Equal(t, "a", moved.peek())

	slots := moved.slots
	moved.release()
	assert.True(t, moved.released())
	assert.Equal(t, "", slots[0], "release clears live values")

	assert.NotPanics(t, moved.release, "second release is a no-op")
}
