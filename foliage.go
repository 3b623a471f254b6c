package evergreen

import (
	"fmt"
	"math"

	"github.com/gekko3d/evergreen/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	breatheAmplitude = 0.1
	breatheFrequency = 2.0
	breatheSeedPhase = 10.0

	scatteredAlpha = 0.6
)

// Foliage is the particle field. Endpoints and seeds are generated once and never
// written again; only the shared progress and time change per frame.
type Foliage struct {
	treePos    []mgl32.Vec3
	scatterPos []mgl32.Vec3
	seeds      []float32

	progress Progress
	time     float32

	sink PointCloudSink
}

// NewFoliage generates count particles. Panics if count <= 0.
func NewFoliage(count int, cone geometry.Cone, sphere geometry.Sphere, jitter float32, rng geometry.Source) *Foliage {
	if count <= 0 {
		panic(fmt.Sprintf("foliage: count must be > 0, got %d", count))
	}
	f := &Foliage{
		treePos:    make([]mgl32.Vec3, count),
		scatterPos: make([]mgl32.Vec3, count),
		seeds:      make([]float32, count),
		progress:   Progress{Value: 1, Rate: DefaultAnimationSpeed},
	}
	for i := 0; i < count; i++ {
		f.treePos[i] = cone.Point(i, count).Add(geometry.Jitter(rng, jitter))
		f.scatterPos[i] = sphere.Sample(rng)
		f.seeds[i] = float32(rng.Float64())
	}
	return f
}

func (f *Foliage) Count() int                       { return len(f.seeds) }
func (f *Foliage) TreePosition(i int) mgl32.Vec3    { return f.treePos[i] }
func (f *Foliage) ScatterPosition(i int) mgl32.Vec3 { return f.scatterPos[i] }
func (f *Foliage) Seed(i int) float32               { return f.seeds[i] }
func (f *Foliage) Progress() float32                { return f.progress.Value }

// Reset jumps straight to mode's target with the given damping rate.
func (f *Foliage) Reset(mode AnimationMode, rate float32) {
	f.progress = Progress{Value: mode.Target(), Rate: rate}
}

// Attach uploads the attribute buffers to sink and makes it the uniform target.
func (f *Foliage) Attach(sink PointCloudSink) {
	f.sink = sink
	if sink != nil {
		sink.UploadAttributes(f.Attributes())
		sink.SetUniforms(f.Uniforms())
	}
}

// Update advances the shared progress towards mode and pushes uniforms.
func (f *Foliage) Update(elapsed, dt float32, mode AnimationMode) {
	f.time = elapsed
	f.progress.Step(mode, dt)
	if f.sink != nil {
		f.sink.SetUniforms(f.Uniforms())
	}
}

func (f *Foliage) Uniforms() FoliageUniforms {
	return FoliageUniforms{
		Time:     f.time,
		Progress: f.progress.Value,
		Eased:    f.progress.Eased(),
	}
}

func (f *Foliage) Attributes() FoliageAttributes {
	n := f.Count()
	attrs := FoliageAttributes{
		PositionTree:    make([]float32, 0, n*3),
		PositionScatter: make([]float32, 0, n*3),
		Random:          make([]float32, n),
	}
	for i := 0; i < n; i++ {
		attrs.PositionTree = append(attrs.PositionTree, f.treePos[i][:]...)
		attrs.PositionScatter = append(attrs.PositionScatter, f.scatterPos[i][:]...)
	}
	copy(attrs.Random, f.seeds)
	return attrs
}

// Alpha is the opacity every particle shares this frame.
func (f *Foliage) Alpha() float32 {
	return particleAlpha(f.progress.Eased())
}

// PositionAt evaluates particle i on the host, the same way the vertex stage does.
func (f *Foliage) PositionAt(i int) mgl32.Vec3 {
	return f.position(i, f.progress.Eased())
}

// Evaluate fills dst[lo:hi] and alpha[lo:hi] (alpha may be nil). Disjoint ranges
// can be evaluated independently.
func (f *Foliage) Evaluate(dst []mgl32.Vec3, alpha []float32, lo, hi int) {
	eased := f.progress.Eased()
	a := particleAlpha(eased)
	for i := lo; i < hi; i++ {
		dst[i] = f.position(i, eased)
		if alpha != nil {
			alpha[i] = a
		}
	}
}

func (f *Foliage) position(i int, eased float32) mgl32.Vec3 {
	pos := lerpVec3(f.scatterPos[i], f.treePos[i], eased)

	breathe := float32(math.Sin(float64(f.time*breatheFrequency+f.seeds[i]*breatheSeedPhase))) * breatheAmplitude
	if l := pos.Len(); l > 0 {
		pos = pos.Add(pos.Mul(breathe * (1 - eased*0.5) / l))
	}
	return pos
}

func particleAlpha(eased float32) float32 {
	return scatteredAlpha + (1-scatteredAlpha)*eased
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		lerp(a[0], b[0], t),
		lerp(a[1], b[1], t),
		lerp(a[2], b[2], t),
	}
}
