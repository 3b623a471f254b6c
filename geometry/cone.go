package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GoldenAngle in radians. Consecutive points advance by this much around the axis.
const GoldenAngle = 2.39996

// ScrambleMultiplier decorrelates ornament placement from the foliage spiral.
const ScrambleMultiplier = 13

// Cone is the tree silhouette: centered on the origin, Y up, apex at +Height/2.
type Cone struct {
	Height float32
	Radius float32
}

// RadiusAt returns the taper radius at height y. Outside the span the value is not clamped.
func (c Cone) RadiusAt(y float32) float32 {
	normalizedY := (y + c.Height/2) / c.Height
	return c.Radius * (1 - normalizedY)
}

// Point returns the phyllotaxis position for index out of total.
// Panics if total <= 0.
func (c Cone) Point(index, total int) mgl32.Vec3 {
	if total <= 0 {
		panic(fmt.Sprintf("geometry: cone point total must be > 0, got %d", total))
	}
	y := float32(index)/float32(total)*c.Height - c.Height/2
	radius := c.RadiusAt(y)

	theta := float64(index) * GoldenAngle
	return mgl32.Vec3{
		radius * float32(math.Cos(theta)),
		y,
		radius * float32(math.Sin(theta)),
	}
}

// SurfacePoint takes Point(index, total) and pushes it out to RadiusAt(y)+offset, keeping its azimuth.
func (c Cone) SurfacePoint(index, total int, offset float32) mgl32.Vec3 {
	p := c.Point(index, total)
	r := c.RadiusAt(p.Y()) + offset

	// The apex point has no azimuth of its own; atan2(0,0) puts it on +X.
	angle := math.Atan2(float64(p.Z()), float64(p.X()))
	return mgl32.Vec3{
		float32(math.Cos(angle)) * r,
		p.Y(),
		float32(math.Sin(angle)) * r,
	}
}

// Scramble maps index to index*13 mod count.
func Scramble(index, count int) int {
	if count <= 0 {
		panic(fmt.Sprintf("geometry: scramble count must be > 0, got %d", count))
	}
	return (index * ScrambleMultiplier) % count
}
