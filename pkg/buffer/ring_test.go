package buffer

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/c360/ringpolicy/errors"
)

func TestNewRing(t *testing.T) {
	ring, err := NewRejecting[int](5)
	require.NoError(t, err)

	assert.Equal(t, 0, ring.Len())
	assert.Equal(t, 5, ring.Cap())
	assert.True(t, ring.IsEmpty())
	assert.False(t, ring.IsFull())
	assert.False(t, ring.Released())

	occ, capacity := ring.Occupancy()
	assert.Equal(t, 0, occ)
	assert.Equal(t, 5, capacity)
}

func TestNewRingNegativeCapacity(t *testing.T) {
	ring, err := NewEvicting[int](-1)
	require.Error(t, err)
	assert.Nil(t, ring)
	assert.ErrorIs(t, err, cerrors.ErrInvalidCapacity)
	assert.True(t, cerrors.IsInvalid(err))
}

func TestRejectScenario(t *testing.T) {
	ring, err := NewRejecting[int](3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, ring.Push(i))
	}
	occ, capacity := ring.Occupancy()
	assert.Equal(t, 3, occ)
	assert.Equal(t, 3, capacity)
	assert.True(t, ring.IsFull())

	err = ring.Push(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, cerrors.ErrOverflow)
	assert.True(t, cerrors.IsTransient(err))
	assert.Equal(t, 3, ring.Len(), "rejected push must not change occupancy")

	for want := 0; want < 3; want++ {
		got, err := ring.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = ring.Pop()
	require.Error(t, err)
	assert.ErrorIs(t, err, cerrors.ErrUnderflow)
	assert.True(t, cerrors.IsTransient(err))
}

func TestEvictScenario(t *testing.T) {
	ring, err := NewEvicting[int](3)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, ring.Push(i))
		assert.LessOrEqual(t, ring.Len(), 3)
	}
	assert.Equal(t, 3, ring.Len())

	for _, want := range []int{2, 3, 4} {
		got, err := ring.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.True(t, ring.IsEmpty())
}

func TestEvictKeepsNewestOnLongRuns(t *testing.T) {
	const capacity = 4
	ring, err := NewEvicting[int](capacity)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		require.NoError(t, ring.Push(i))
		if i >= capacity-1 {
			require.Equal(t, capacity, ring.Len())
		}
	}

	assert.Equal(t, []int{996, 997, 998, 999}, ring.PopBatch(capacity))
}

func TestPopEmptyLeavesStateUnchanged(t *testing.T) {
	ring, err := NewRejecting[string](2)
	require.NoError(t, err)

	headBefore, tailBefore := ring.s.head, ring.s.tail
	_, err = ring.Pop()
	require.ErrorIs(t, err, cerrors.ErrUnderflow)

	assert.Equal(t, headBefore, ring.s.head)
	assert.Equal(t, tailBefore, ring.s.tail)
	assert.Equal(t, 0, ring.Len())
}

func TestFIFOOrder(t *testing.T) {
	ring, err := NewRejecting[string](4)
	require.NoError(t, err)

	// Offset head so the sequence wraps around the block
	require.NoError(t, ring.Push("x"))
	require.NoError(t, ring.Push("y"))
	_, _ = ring.Pop()
	_, _ = ring.Pop()

	input := []string{"a", "b", "c", "d"}
	for _, v := range input {
		require.NoError(t, ring.Push(v))
	}

	var output []string
	for !ring.IsEmpty() {
		v, err := ring.Pop()
		require.NoError(t, err)
		output = append(output, v)
	}
	assert.Equal(t, input, output)
}

// TestRandomOperationsMatchModel drives a ring with random pushes and pops and
// compares every result against a plain slice.
func TestRandomOperationsMatchModel(t *testing.T) {
	testCases := []struct {
		name     string
		capacity int
		evict    bool
	}{
		{"reject_1", 1, false},
		{"reject_5", 5, false},
		{"evict_1", 1, true},
		{"evict_7", 7, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))

			var (
				push func(int) error
				pop  func() (int, error)
				size func() int
				rest func(int) []int
			)
			if tc.evict {
				ring, err := NewEvicting[int](tc.capacity)
				require.NoError(t, err)
				push, pop, size, rest = ring.Push, ring.Pop, ring.Len, ring.PopBatch
			} else {
				ring, err := NewRejecting[int](tc.capacity)
				require.NoError(t, err)
				push, pop, size, rest = ring.Push, ring.Pop, ring.Len, ring.PopBatch
			}

			var model []int
			for i := 0; i < 2000; i++ {
				if rng.Intn(3) > 0 {
					err := push(i)
					switch {
					case len(model) < tc.capacity:
						require.NoError(t, err)
						model = append(model, i)
					case tc.evict:
						require.NoError(t, err)
						model = append(model[1:], i)
					default:
						require.ErrorIs(t, err, cerrors.ErrOverflow)
					}
				} else {
					got, err := pop()
					if len(model) == 0 {
						require.ErrorIs(t, err, cerrors.ErrUnderflow)
					} else {
						require.NoError(t, err)
						require.Equal(t, model[0], got)
						model = model[1:]
					}
				}

				require.Equal(t, len(model), size())
				require.GreaterOrEqual(t, size(), 0)
				require.LessOrEqual(t, size(), tc.capacity)
			}

			if diff := cmp.Diff(model, rest(tc.capacity), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("remaining items mismatch (-model +ring):\n%s", diff)
			}
		})
	}
}

func TestZeroCapacity(t *testing.T) {
	t.Run("reject", func(t *testing.T) {
		ring, err := NewRejecting[int](0)
		require.NoError(t, err)

		assert.True(t, ring.IsEmpty())
		assert.True(t, ring.IsFull())

		err = ring.Push(1)
		assert.ErrorIs(t, err, cerrors.ErrOverflow)

		_, err = ring.Pop()
		assert.ErrorIs(t, err, cerrors.ErrUnderflow)
	})

	t.Run("evict", func(t *testing.T) {
		ring, err := NewEvicting[int](0)
		require.NoError(t, err)

		err = ring.Push(1)
		require.Error(t, err)
		assert.ErrorIs(t, err, cerrors.ErrOverflow)
		assert.True(t, cerrors.IsInvalid(err), "retrying cannot help a zero-capacity ring")
		assert.Equal(t, 0, ring.Len())
	})
}

func TestTakeTransfersState(t *testing.T) {
	src, err := NewRejecting[int](4)
	require.NoError(t, err)

	// Wrap the indices before moving
	for i := 0; i < 3; i++ {
		require.NoError(t, src.Push(-1))
		_, _ = src.Pop()
	}
	for i := 1; i <= 3; i++ {
		require.NoError(t, src.Push(i))
	}

	dst := src.Take()

	assert.True(t, src.Released())
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 0, src.Cap())
	assert.False(t, src.IsFull())

	assert.False(t, dst.Released())
	occ, capacity := dst.Occupancy()
	assert.Equal(t, 3, occ)
	assert.Equal(t, 4, capacity)

	err = src.Push(99)
	assert.ErrorIs(t, err, cerrors.ErrReleased)
	assert.True(t, cerrors.IsInvalid(err))

	_, err = src.Pop()
	assert.ErrorIs(t, err, cerrors.ErrReleased)

	_, err = src.Peek()
	assert.ErrorIs(t, err, cerrors.ErrReleased)

	assert.Nil(t, src.PopBatch(10))

	// Releasing the moved-from ring must not touch dst
	src.Release()

	assert.Equal(t, []int{1, 2, 3}, dst.PopBatch(3))
	require.NoError(t, dst.Push(4))
	got, err := dst.Pop()
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestTakeCarriesPolicies(t *testing.T) {
	stats := NewStats[int]()
	src, err := New[int](1, EvictOldest[int]{}, stats)
	require.NoError(t, err)
	require.NoError(t, src.Push(1))

	dst := src.Take()
	require.NoError(t, dst.Push(2), "evicting policy moved with the storage")

	assert.Equal(t, int64(2), stats.Statistics().Pushes())
	assert.Equal(t, int64(1), stats.Statistics().Pops())

	// The source observer is cleared on move
	assert.Nil(t, src.observer.Statistics())
}

func TestRelease(t *testing.T) {
	ring, err := NewRejecting[*int](2)
	require.NoError(t, err)

	v := 1
	require.NoError(t, ring.Push(&v))

	ring.Release()
	assert.True(t, ring.Released())
	assert.Equal(t, 0, ring.Len())

	assert.NotPanics(t, ring.Release)

	err = ring.Push(&v)
	assert.ErrorIs(t, err, cerrors.ErrReleased)
}

func TestZeroValueRingIsReleased(t *testing.T) {
	var ring Ring[int, Reject[int], NoOp[int]]

	assert.True(t, ring.Released())
	assert.ErrorIs(t, ring.Push(1), cerrors.ErrReleased)
}

func TestPeek(t *testing.T) {
	ring, err := NewRejecting[string](2)
	require.NoError(t, err)

	_, err = ring.Peek()
	assert.ErrorIs(t, err, cerrors.ErrUnderflow)

	require.NoError(t, ring.Push("first"))
	require.NoError(t, ring.Push("second"))

	v, err := ring.Peek()
	require.NoError(t, err)
	assert.Equal(t, "first", v)
	assert.Equal(t, 2, ring.Len(), "peek must not change occupancy")
}

func TestPopBatch(t *testing.T) {
	ring, err := NewRejecting[int](5)
	require.NoError(t, err)

	assert.Nil(t, ring.PopBatch(3), "empty ring")

	for i := 0; i < 5; i++ {
		require.NoError(t, ring.Push(i))
	}

	assert.Nil(t, ring.PopBatch(0))
	assert.Equal(t, []int{0, 1}, ring.PopBatch(2))
	assert.Equal(t, []int{2, 3, 4}, ring.PopBatch(10))
	assert.True(t, ring.IsEmpty())
}

// leaveFull is a broken policy that claims success without freeing a slot.
type leaveFull[T any] struct{}

func (leaveFull[T]) OnOverflow(Evictor[T]) error { return nil }

func TestOverflowPolicyContractViolationPanics(t *testing.T) {
	ring, err := New[int](1, leaveFull[int]{}, NoOp[int]{})
	require.NoError(t, err)
	require.NoError(t, ring.Push(1))

	assert.Panics(t, func() { _ = ring.Push(2) })

	got, err := ring.Pop()
	require.NoError(t, err)
	assert.Equal(t, 1, got, "buffered item survives the failed push")
}

func TestRingGenericTypes(t *testing.T) {
	type event struct {
		ID      string
		Payload []byte
	}

	ring, err := NewEvicting[event](2)
	require.NoError(t, err)

	require.NoError(t, ring.Push(event{ID: "a", Payload: []byte{1}}))
	require.NoError(t, ring.Push(event{ID: "b"}))
	require.NoError(t, ring.Push(event{ID: "c"}))

	got, err := ring.Pop()
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}
