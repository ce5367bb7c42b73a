package randgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bfunes/runwaysim/internal/randgen"
)

func TestIntRangeStaysInBounds(t *testing.T) {
	r := randgen.New()
	r.Seed(42)
	for i := 0; i < 1000; i++ {
		v := r.IntRange(20, 60)
		assert.GreaterOrEqual(t, v, 20)
		assert.LessOrEqual(t, v, 60)
	}
}

func TestSameSeedReproducesSequence(t *testing.T) {
	a := randgen.New()
	a.Seed(7)
	b := randgen.New()
	b.Seed(7)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
	}
}

func TestDifferentSeedsUsuallyDiverge(t *testing.T) {
	a := randgen.New()
	a.Seed(1)
	b := randgen.New()
	b.Seed(2)

	same := 0
	const n = 50
	for i := 0; i < n; i++ {
		if a.IntRange(0, 1_000_000) == b.IntRange(0, 1_000_000) {
			same++
		}
	}
	assert.Less(t, same, n/2)
}

func TestIntRangeDegenerateBounds(t *testing.T) {
	r := randgen.New()
	assert.Equal(t, 5, r.IntRange(5, 5))
	assert.Equal(t, 5, r.IntRange(5, 4))
}
