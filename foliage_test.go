package evergreen

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gekko3d/evergreen/geometry"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFoliage(count int) *Foliage {
	cfg := DefaultConfig()
	return NewFoliage(count, cfg.Cone(), cfg.Sphere(), cfg.FoliageJitter, rand.New(rand.NewSource(3)))
}

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for axis := 0; axis < 3; axis++ {
		assert.InDelta(t, want[axis], got[axis], delta, msgAndArgs...)
	}
}

func TestNewFoliage_Endpoints(t *testing.T) {
	f := newTestFoliage(500)
	require.Equal(t, 500, f.Count())

	cone := DefaultConfig().Cone()
	for i := 0; i < f.Count(); i++ {
		// jitter is at most 0.25 per axis
		assertVec3InDelta(t, cone.Point(i, 500), f.TreePosition(i), 0.25)
		assert.LessOrEqual(t, f.ScatterPosition(i).Len(), float32(25.0001))
		assert.GreaterOrEqual(t, f.Seed(i), float32(0))
		assert.Less(t, f.Seed(i), float32(1))
	}

	attrs := f.Attributes()
	assert.Len(t, attrs.PositionTree, 1500)
	assert.Len(t, attrs.PositionScatter, 1500)
	assert.Len(t, attrs.Random, 500)
	assert.Equal(t, f.TreePosition(7)[1], attrs.PositionTree[7*3+1])
	assert.Equal(t, f.ScatterPosition(9)[2], attrs.PositionScatter[9*3+2])
}

func TestNewFoliage_PanicsOnZeroCount(t *testing.T) {
	assert.Panics(t, func() {
		NewFoliage(0, geometry.Cone{Height: 1, Radius: 1}, geometry.Sphere{Radius: 1}, 0, rand.New(rand.NewSource(1)))
	})
}

func TestFoliage_EndpointsNeverChange(t *testing.T) {
	f := newTestFoliage(50)
	tree := append([]mgl32.Vec3(nil), f.treePos...)
	scatter := append([]mgl32.Vec3(nil), f.scatterPos...)
	seeds := append([]float32(nil), f.seeds...)

	var elapsed float32
	for i := 0; i < 200; i++ {
		elapsed += frameDt
		mode := Scattered
		if i > 100 {
			mode = Assembled
		}
		f.Update(elapsed, frameDt, mode)
	}

	assert.Equal(t, tree, f.treePos)
	assert.Equal(t, scatter, f.scatterPos)
	assert.Equal(t, seeds, f.seeds)
}

func TestFoliage_AttachAndUniforms(t *testing.T) {
	f := newTestFoliage(10)
	buf := &PointBuffer{}
	f.Attach(buf)

	assert.Equal(t, 1, buf.Uploads)
	assert.Len(t, buf.Attributes.Random, 10)
	assert.Equal(t, float32(1), buf.Uniforms.Progress)

	f.Update(1.5, frameDt, Scattered)
	assert.Equal(t, 1, buf.Uploads, "attributes are uploaded once")
	assert.Equal(t, float32(1.5), buf.Uniforms.Time)
	assert.Less(t, buf.Uniforms.Progress, float32(1))
	assert.Equal(t, EaseInOutCubic(buf.Uniforms.Progress), buf.Uniforms.Eased)
}

func TestFoliage_BreathingWhenAssembled(t *testing.T) {
	f := newTestFoliage(20)
	f.Update(0.7, 0, Assembled)
	require.Equal(t, float32(1), f.Progress())
	assert.Equal(t, float32(1), f.Alpha())

	for i := 0; i < f.Count(); i++ {
		tree := f.TreePosition(i)
		dir := tree.Normalize()
		// full assembly halves the breathing amplitude
		breathe := math.Sin(0.7*2+float64(f.Seed(i))*10) * 0.1 * 0.5
		want := tree.Add(dir.Mul(float32(breathe)))
		assertVec3InDelta(t, want, f.PositionAt(i), 1e-4, "particle %d", i)
	}
}

func TestFoliage_BreathingWhenScattered(t *testing.T) {
	f := newTestFoliage(20)
	f.Reset(Scattered, DefaultAnimationSpeed)
	f.Update(2.2, frameDt, Scattered)
	assert.Equal(t, float32(0.6), f.Alpha())

	for i := 0; i < f.Count(); i++ {
		scatter := f.ScatterPosition(i)
		breathe := math.Sin(2.2*2+float64(f.Seed(i))*10) * 0.1
		want := scatter.Add(scatter.Normalize().Mul(float32(breathe)))
		assertVec3InDelta(t, want, f.PositionAt(i), 1e-4, "particle %d", i)
	}
}

func TestFoliage_EvaluateMatchesPositionAt(t *testing.T) {
	f := newTestFoliage(100)
	f.Update(0.3, 0.4, Scattered)

	dst := make([]mgl32.Vec3, f.Count())
	alpha := make([]float32, f.Count())
	// two disjoint halves, as a parallel caller would split them
	f.Evaluate(dst, alpha, 0, 50)
	f.Evaluate(dst, alpha, 50, 100)

	for i := range dst {
		assert.Equal(t, f.PositionAt(i), dst[i])
		assert.Equal(t, f.Alpha(), alpha[i])
	}
}

func TestFoliage_EvaluateWithoutAlpha(t *testing.T) {
	f := newTestFoliage(20)
	f.Update(0.3, 0.4, Scattered)

	dst := make([]mgl32.Vec3, f.Count())
	require.NotPanics(t, func() { f.Evaluate(dst, nil, 0, 10) })

	for i := 0; i < 10; i++ {
		assert.Equal(t, f.PositionAt(i), dst[i])
	}
	for i := 10; i < len(dst); i++ {
		assert.Equal(t, mgl32.Vec3{}, dst[i], "index %d outside the range was written", i)
	}
}
