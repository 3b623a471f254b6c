package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCone = Cone{Height: 14, Radius: 5.5}

func axisDistance(p mgl32.Vec3) float32 {
	return float32(math.Hypot(float64(p.X()), float64(p.Z())))
}

func TestCone_PointWithinSpanAndOnTaper(t *testing.T) {
	for _, total := range []int{1, 2, 7, 150, 15000} {
		for i := 0; i < total; i++ {
			p := testCone.Point(i, total)

			require.GreaterOrEqual(t, p.Y(), -testCone.Height/2, "total=%d index=%d", total, i)
			require.Less(t, p.Y(), testCone.Height/2, "total=%d index=%d", total, i)

			want := testCone.RadiusAt(p.Y())
			require.InDelta(t, want, axisDistance(p), 1e-4, "total=%d index=%d", total, i)
		}
	}
}

func TestCone_PointIsDeterministic(t *testing.T) {
	assert.Equal(t, testCone.Point(42, 500), testCone.Point(42, 500))
}

func TestCone_PointBaseAndFirstIndex(t *testing.T) {
	p := testCone.Point(0, 100)
	assert.Equal(t, mgl32.Vec3{5.5, -7, 0}, p)

	// Golden angle spiral: index 1 sits at 2.39996 rad
	p1 := testCone.Point(1, 100)
	angle := math.Atan2(float64(p1.Z()), float64(p1.X()))
	assert.InDelta(t, GoldenAngle, angle, 1e-5)
}

func TestCone_PointPanicsOnZeroTotal(t *testing.T) {
	assert.Panics(t, func() { testCone.Point(0, 0) })
}

func TestCone_RadiusAt(t *testing.T) {
	assert.InDelta(t, 5.5, testCone.RadiusAt(-7), 1e-6)
	assert.InDelta(t, 2.75, testCone.RadiusAt(0), 1e-6)
	assert.InDelta(t, 0, testCone.RadiusAt(7), 1e-6)
}

func TestCone_SurfacePoint(t *testing.T) {
	const offset = 0.5
	for i := 0; i < 250; i++ {
		p := testCone.SurfacePoint(Scramble(i, 250), 250, offset)
		raw := testCone.Point(Scramble(i, 250), 250)

		assert.Equal(t, raw.Y(), p.Y())
		assert.InDelta(t, testCone.RadiusAt(p.Y())+offset, axisDistance(p), 1e-4)
	}
}

func TestScramble(t *testing.T) {
	assert.Equal(t, 0, Scramble(0, 150))
	assert.Equal(t, 13, Scramble(1, 150))
	assert.Equal(t, (100*13)%150, Scramble(100, 150))

	// 13 is coprime with 250, so the mapping is a permutation there
	seen := make(map[int]bool)
	for i := 0; i < 250; i++ {
		seen[Scramble(i, 250)] = true
	}
	assert.Len(t, seen, 250)
}

func TestSphere_SampleInsideRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := Sphere{Radius: 25}
	for i := 0; i < 1000; i++ {
		require.LessOrEqual(t, s.Sample(rng).Len(), float32(25.0001))
	}
}

// chiSquare bins values in [0,1) into len(counts) buckets and returns the statistic
// against a uniform expectation.
func chiSquare(values []float64, bins int) float64 {
	counts := make([]int, bins)
	for _, v := range values {
		b := int(v * float64(bins))
		if b >= bins {
			b = bins - 1
		}
		if b < 0 {
			b = 0
		}
		counts[b]++
	}
	expected := float64(len(values)) / float64(bins)
	var stat float64
	for _, c := range counts {
		d := float64(c) - expected
		stat += d * d / expected
	}
	return stat
}

func TestSphere_SampleUniformDensity(t *testing.T) {
	const (
		samples = 10000
		bins    = 10
		// chi-square critical value, 9 degrees of freedom, p = 0.001
		critical = 27.877
	)
	rng := rand.New(rand.NewSource(20241224))
	s := Sphere{Radius: 25}

	radial := make([]float64, samples)
	polar := make([]float64, samples)
	for i := range radial {
		p := s.Sample(rng)
		r := float64(p.Len()) / float64(s.Radius)
		// Uniform volume density means (r/R)^3 is uniform on [0,1).
		radial[i] = r * r * r
		// Uniform directions mean cos(polar) is uniform on [-1,1].
		if r > 0 {
			polar[i] = (float64(p.Z())/(r*float64(s.Radius)) + 1) / 2
		}
	}

	assert.Less(t, chiSquare(radial, bins), critical, "radial distribution clusters")
	assert.Less(t, chiSquare(polar, bins), critical, "directions cluster at the poles")
}

func TestJitterRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		j := Jitter(rng, 0.5)
		for axis := 0; axis < 3; axis++ {
			require.GreaterOrEqual(t, j[axis], float32(-0.25))
			require.Less(t, j[axis], float32(0.25))
		}
	}
}
