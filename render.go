package evergreen

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// FoliageAttributes are the per-vertex buffers of the particle field, flattened
// the way the vertex stage consumes them: 3 floats per position, 1 per seed.
type FoliageAttributes struct {
	PositionTree    []float32 // aPositionTree
	PositionScatter []float32 // aPositionScatter
	Random          []float32 // aRandom
}

// FoliageUniforms are the scalars shared by every particle for one frame.
// Progress is the raw damped value; Eased is EaseInOutCubic(Progress).
type FoliageUniforms struct {
	Time     float32
	Progress float32
	Eased    float32
}

// PointCloudSink is the engine side of the particle field.
type PointCloudSink interface {
	UploadAttributes(attrs FoliageAttributes)
	SetUniforms(u FoliageUniforms)
}

// InstanceSink is the engine side of one instanced mesh.
// Commit flags the instance buffer for re-upload after a batch of SetMatrixAt calls.
type InstanceSink interface {
	SetMatrixAt(i int, m mgl32.Mat4)
	Commit()
}

type BatchId string

func newBatchId() BatchId {
	return BatchId(uuid.NewString())
}

// PointBuffer keeps whatever was last handed to it. Used headless and in tests.
type PointBuffer struct {
	Attributes FoliageAttributes
	Uniforms   FoliageUniforms
	Uploads    int
	Frames     int
}

func (b *PointBuffer) UploadAttributes(attrs FoliageAttributes) {
	b.Attributes = attrs
	b.Uploads++
}

func (b *PointBuffer) SetUniforms(u FoliageUniforms) {
	b.Uniforms = u
	b.Frames++
}

// InstanceBuffer is an in-memory instance matrix array.
type InstanceBuffer struct {
	Matrices []mgl32.Mat4
	Commits  int
}

func NewInstanceBuffer(count int) *InstanceBuffer {
	return &InstanceBuffer{Matrices: make([]mgl32.Mat4, count)}
}

func (b *InstanceBuffer) SetMatrixAt(i int, m mgl32.Mat4) {
	b.Matrices[i] = m
}

func (b *InstanceBuffer) Commit() {
	b.Commits++
}

// Position returns the translation part of instance i.
func (b *InstanceBuffer) Position(i int) mgl32.Vec3 {
	return b.Matrices[i].Col(3).Vec3()
}
