package evergreen

import "math"

// DefaultAnimationSpeed is the damping rate used when none is configured.
const DefaultAnimationSpeed = 2.5

// Damp moves current towards target by 1-e^(-lambda*dt) of the remaining distance.
// The result never passes target; dt <= 0 leaves current untouched.
func Damp(current, target, lambda, dt float32) float32 {
	if dt <= 0 || lambda <= 0 {
		return current
	}
	k := 1 - float32(math.Exp(-float64(lambda*dt)))
	return current + (target-current)*k
}

// EaseInOutCubic remaps t in [0,1]: slow start, fast middle, slow end.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Progress is a damped scalar in [0,1] chasing the target of an AnimationMode.
type Progress struct {
	Value float32
	Rate  float32
}

// Step advances the value by one frame of length dt towards mode's target.
func (p *Progress) Step(mode AnimationMode, dt float32) float32 {
	p.Value = Damp(p.Value, mode.Target(), p.Rate, dt)
	return p.Value
}

// Eased returns EaseInOutCubic of the current value.
func (p Progress) Eased() float32 {
	return EaseInOutCubic(p.Value)
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
