package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_KnownSequence(t *testing.T) {
	// Hand-computed from the LCG recurrence with seed 12345:
	//   (12345*9301 + 49297) % 233280 = 96382
	//   (96382*9301 + 49297) % 233280 = 3239
	r := New(12345)
	assert.InDelta(t, 96382.0/233280.0, r.Next(), 1e-12)
	assert.InDelta(t, 3239.0/233280.0, r.Next(), 1e-12)
}

func TestNext_Deterministic(t *testing.T) {
	a := New(777)
	b := New(777)
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Next(), b.Next(), "sequences diverged at step %d", i)
	}
}

func TestNext_Range(t *testing.T) {
	r := New(1)
	for i := 0; i < 10000; i++ {
		v := r.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestNew_NegativeSeed(t *testing.T) {
	r := New(-42)
	v := r.Next()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8}
	want := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(New(9), in)
	assert.Equal(t, want, in)
}

func TestShuffle_IsPermutation(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out := Shuffle(New(31337), in)
	assert.ElementsMatch(t, in, out)
}

func TestShuffle_DeterministicPerSeed(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f"}
	first := Shuffle(New(2024), in)
	second := Shuffle(New(2024), in)
	assert.Equal(t, first, second)

	other := Shuffle(New(2025), in)
	// Different seeds almost certainly give a different order for six
	// items; if this ever flakes the seeds collided and can be changed.
	assert.NotEqual(t, first, other)
}

func TestShuffle_Empty(t *testing.T) {
	assert.Empty(t, Shuffle(New(1), []int(nil)))
}
