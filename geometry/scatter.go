package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Source is the random stream used for sampling. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Sphere is the scatter volume centered on the origin.
type Sphere struct {
	Radius float32
}

// Sample draws a point uniformly distributed inside the sphere.
// Polar angle comes from acos(2v-1) so directions don't bunch at the poles,
// radius from cbrt(w) so density doesn't bunch at the center.
func (s Sphere) Sample(rng Source) mgl32.Vec3 {
	u := rng.Float64()
	v := rng.Float64()
	theta := 2 * math.Pi * u
	phi := math.Acos(2*v - 1)
	r := math.Cbrt(rng.Float64()) * float64(s.Radius)

	return mgl32.Vec3{
		float32(r * math.Sin(phi) * math.Cos(theta)),
		float32(r * math.Sin(phi) * math.Sin(theta)),
		float32(r * math.Cos(phi)),
	}
}

// Jitter returns a random offset with each axis in [-amount/2, amount/2).
func Jitter(rng Source, amount float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(float32(rng.Float64()) - 0.5) * amount,
		(float32(rng.Float64()) - 0.5) * amount,
		(float32(rng.Float64()) - 0.5) * amount,
	}
}
