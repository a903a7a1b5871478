package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashSeed(t *testing.T) {
	assert.Equal(t, uint32(0x811c9dc5), HashSeed(""))
	assert.Equal(t, uint32(0xe40c292c), HashSeed("a"))
	assert.Equal(t, uint32(0x666a28a3), HashSeed("fometer"))
}

func TestMulberry32Sequence(t *testing.T) {
	tests := []struct {
		seed string
		want []uint32
	}{
		{seed: "", want: []uint32{2625274932, 2119670693, 3324411561}},
		{seed: "a", want: []uint32{2670119670, 1323809741, 1575654966}},
		{seed: "fometer", want: []uint32{3114038490, 1607322571, 4256420518}},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			m := &mulberry32{state: HashSeed(tt.seed)}
			for _, w := range tt.want {
				assert.Equal(t, w, m.Uint32())
			}
		})
	}
}

func TestFloat64Range(t *testing.T) {
	r := NewRand("range")
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}

	first := NewRand("fometer").Float64()
	assert.Equal(t, float64(3114038490)/(1<<32), first)
}

func TestShuffleIsPermutation(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	shuffle(NewRand("perm"), s)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, s)

	a := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	b := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	shuffle(NewRand("same"), a)
	shuffle(NewRand("same"), b)
	assert.Equal(t, a, b)

	empty := []int{}
	shuffle(NewRand("x"), empty)
	assert.Empty(t, empty)
}

func TestShuffleWithZeroStream(t *testing.T) {
	s := []string{"a", "b", "c"}
	shuffle(constRand(0), s)
	// i=2 swaps with 0, i=1 swaps with 0
	assert.Equal(t, []string{"b", "c", "a"}, s)
}

func TestIntn(t *testing.T) {
	assert.Equal(t, 0, Intn(constRand(0.3), 0))
	assert.Equal(t, 2, Intn(constRand(0.5), 5))
	assert.Equal(t, 4, Intn(constRand(0.9999999), 5))
}
