package evergreen

import (
	"fmt"
	"math"

	"github.com/gekko3d/evergreen/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxSpinSpeed = 0.02

	// Below this progress ornaments bob vertically.
	floatThreshold = 0.9
	floatAmplitude = 0.5

	pulseAmplitude = 0.1
	pulseFrequency = 2.0
)

type OrnamentKind int

const (
	OrnamentBox OrnamentKind = iota
	OrnamentSphere
)

func (k OrnamentKind) String() string {
	switch k {
	case OrnamentBox:
		return "box"
	case OrnamentSphere:
		return "sphere"
	}
	return "unknown"
}

func (k OrnamentKind) BaseScale() float32 {
	if k == OrnamentBox {
		return 0.4
	}
	return 0.25
}

func (k OrnamentKind) Material(p Palette) Material {
	if k == OrnamentBox {
		return Material{
			Color:             p.EmeraldLight,
			Emissive:          p.EmeraldDeep,
			Roughness:         0.2,
			Metalness:         0.1,
			EmissiveIntensity: 0.2,
		}
	}
	return Material{
		Color:             p.GoldMetallic,
		Emissive:          p.GoldWarm,
		Roughness:         0.05,
		Metalness:         0.9,
		EmissiveIntensity: 0.1,
	}
}

// ornamentPool is the per-instance state, one slice per attribute (SoA).
// treePos, scatterPos and spin are fixed after generation.
type ornamentPool struct {
	treePos    []mgl32.Vec3
	scatterPos []mgl32.Vec3
	spin       []mgl32.Vec3

	pos   []mgl32.Vec3
	rot   []mgl32.Vec3 // XYZ euler angles, radians
	scale []float32
}

// OrnamentBatch drives one instanced mesh of a single ornament kind.
type OrnamentBatch struct {
	Id   BatchId
	Kind OrnamentKind

	pool     ornamentPool
	progress Progress

	sink InstanceSink
}

// NewOrnamentBatch places count ornaments sparsely on the cone surface (offset outside it)
// and scatters them inside sphere. Panics if count <= 0.
func NewOrnamentBatch(kind OrnamentKind, count int, cone geometry.Cone, offset float32, sphere geometry.Sphere, rng geometry.Source) *OrnamentBatch {
	if count <= 0 {
		panic(fmt.Sprintf("ornaments: %s count must be > 0, got %d", kind, count))
	}
	b := &OrnamentBatch{
		Id:       newBatchId(),
		Kind:     kind,
		progress: Progress{Value: 1, Rate: DefaultAnimationSpeed},
		pool: ornamentPool{
			treePos:    make([]mgl32.Vec3, count),
			scatterPos: make([]mgl32.Vec3, count),
			spin:       make([]mgl32.Vec3, count),
			pos:        make([]mgl32.Vec3, count),
			rot:        make([]mgl32.Vec3, count),
			scale:      make([]float32, count),
		},
	}

	pl := &b.pool
	for i := 0; i < count; i++ {
		pl.treePos[i] = cone.SurfacePoint(geometry.Scramble(i, count), count, offset)
		pl.scatterPos[i] = sphere.Sample(rng)
		pl.spin[i] = mgl32.Vec3{
			float32(rng.Float64()) * maxSpinSpeed,
			float32(rng.Float64()) * maxSpinSpeed,
			float32(rng.Float64()) * maxSpinSpeed,
		}

		pl.pos[i] = pl.treePos[i]
		pl.scale[i] = kind.BaseScale()
	}
	return b
}

func (b *OrnamentBatch) Count() int                       { return len(b.pool.treePos) }
func (b *OrnamentBatch) TreePosition(i int) mgl32.Vec3    { return b.pool.treePos[i] }
func (b *OrnamentBatch) ScatterPosition(i int) mgl32.Vec3 { return b.pool.scatterPos[i] }
func (b *OrnamentBatch) SpinSpeed(i int) mgl32.Vec3       { return b.pool.spin[i] }
func (b *OrnamentBatch) Position(i int) mgl32.Vec3        { return b.pool.pos[i] }
func (b *OrnamentBatch) Rotation(i int) mgl32.Vec3        { return b.pool.rot[i] }
func (b *OrnamentBatch) Scale(i int) float32              { return b.pool.scale[i] }
func (b *OrnamentBatch) Progress() float32                { return b.progress.Value }

func (b *OrnamentBatch) Reset(mode AnimationMode, rate float32) {
	b.progress = Progress{Value: mode.Target(), Rate: rate}
}

// Attach sets the target mesh and places every instance at its tree position.
func (b *OrnamentBatch) Attach(sink InstanceSink) {
	b.sink = sink
	if sink == nil {
		return
	}
	for i, p := range b.pool.treePos {
		sink.SetMatrixAt(i, mgl32.Translate3D(p.X(), p.Y(), p.Z()))
	}
	sink.Commit()
}

// Update recomputes every instance for this frame. There is no convergence check:
// spin and pulse never settle, so all matrices are pushed each time.
func (b *OrnamentBatch) Update(elapsed, dt float32, mode AnimationMode) {
	t := b.progress.Step(mode, dt)
	pl := &b.pool
	base := b.Kind.BaseScale()

	for i := range pl.pos {
		pos := lerpVec3(pl.scatterPos[i], pl.treePos[i], t)
		if t < floatThreshold {
			pos[1] += float32(math.Sin(float64(elapsed)+float64(i))) * (1 - t) * floatAmplitude
		}
		pl.pos[i] = pos

		pl.rot[i] = pl.rot[i].Add(pl.spin[i])

		pulse := 1 + float32(math.Sin(float64(elapsed*pulseFrequency)+float64(i)))*pulseAmplitude
		pl.scale[i] = base * pulse
	}

	if b.sink != nil {
		for i := range pl.pos {
			b.sink.SetMatrixAt(i, b.Matrix(i))
		}
		b.sink.Commit()
	}
}

// Matrix is T * R * S for instance i.
func (b *OrnamentBatch) Matrix(i int) mgl32.Mat4 {
	p, r, s := b.pool.pos[i], b.pool.rot[i], b.pool.scale[i]

	translate := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	rotate := mgl32.AnglesToQuat(r.X(), r.Y(), r.Z(), mgl32.XYZ).Mat4()
	scale := mgl32.Scale3D(s, s, s)

	return translate.Mul4(rotate).Mul4(scale)
}
