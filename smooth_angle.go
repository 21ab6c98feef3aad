package bramble

import "math"

// NormalizeAngle maps theta into (-π, π].
func NormalizeAngle(theta float64) float64 {
	n := theta - math.Floor((theta+math.Pi)/(2*math.Pi))*2*math.Pi
	// Floor leaves n in [-π, π); fold the lower bound onto π.
	if n <= -math.Pi {
		n += 2 * math.Pi
	}
	return n
}

// SmoothAngle is a SmoothDimension on the circle. Targets, defaults and the
// offset being animated are normalized, so the motion always takes the
// shortest way around.
type SmoothAngle struct {
	dim SmoothDimension
}

// NewSmoothAngle returns an angle at theta, critically damped with lambda
// (static when lambda is 0).
func NewSmoothAngle(clock *FrameClock, theta, lambda float64) SmoothAngle {
	theta = NormalizeAngle(theta)
	return SmoothAngle{dim: NewSmoothDimension(clock, theta, lambda)}
}

// Pos returns the animated angle in (-π, π].
func (s *SmoothAngle) Pos() float64 {
	return NormalizeAngle(s.dim.Pos())
}

// Speed returns the angular velocity in radians per second.
func (s *SmoothAngle) Speed() float64 { return s.dim.Speed() }

// RealPos returns the committed angle.
func (s *SmoothAngle) RealPos() float64 { return s.dim.realPos }

// DefPos returns the default angle.
func (s *SmoothAngle) DefPos() float64 { return s.dim.DefPos }

// Set commits newPos like SmoothDimension.Set, on the circle.
func (s *SmoothAngle) Set(newPos float64, fix, setAsDef bool) {
	d := &s.dim
	if setAsDef {
		d.DefPos = NormalizeAngle(newPos)
	}
	if fix {
		d.a, d.b = 0, 0
	} else {
		t := d.elapsedSec()
		d.setAB(NormalizeAngle(d.delta(t)+d.realPos-newPos), d.slope(t))
		d.setTime = d.now()
	}
	d.realPos = NormalizeAngle(newPos)
}

// SetPos turns smoothly to newPos.
func (s *SmoothAngle) SetPos(newPos float64) { s.Set(newPos, false, false) }

// SetRelToDef commits DefPos+shift.
func (s *SmoothAngle) SetRelToDef(shift float64, fix bool) {
	s.Set(s.dim.DefPos+shift, fix, false)
}

// Move commits RealPos+shift.
func (s *SmoothAngle) Move(shift float64, fix, setAsDef bool) {
	s.Set(s.dim.realPos+shift, fix, setAsDef)
}

// FadeIn jumps to DefPos+delta and turns back to DefPos.
func (s *SmoothAngle) FadeIn(delta float64) {
	s.SetRelToDef(delta, true)
	s.Set(s.dim.DefPos, false, false)
}

// FadeOut turns to RealPos-delta.
func (s *SmoothAngle) FadeOut(delta float64) {
	s.Set(s.dim.realPos-delta, false, false)
}

// Rates returns the decay rates of the curve, as SmoothDimension.Rates.
func (s *SmoothAngle) Rates() (lambda, beta float64) { return s.dim.Rates() }

// UpdateCurve changes damping and stiffness mid-flight, keeping the angle
// and the angular velocity continuous.
func (s *SmoothAngle) UpdateCurve(gamma, k float64) { s.dim.UpdateCurve(gamma, k) }

// UpdateLambda switches to a critically damped curve of decay rate lambda.
func (s *SmoothAngle) UpdateLambda(lambda float64) { s.dim.UpdateLambda(lambda) }

// --- Drift ---

// SmoothAngleWithDrift is a SmoothAngle that keeps turning at a constant
// angular velocity once the spring has settled.
type SmoothAngleWithDrift struct {
	SmoothAngle
	drift float64
}

// NewSmoothAngleWithDrift returns a still angle at theta.
func NewSmoothAngleWithDrift(clock *FrameClock, theta, lambda float64) SmoothAngleWithDrift {
	return SmoothAngleWithDrift{SmoothAngle: NewSmoothAngle(clock, theta, lambda)}
}

// Drift returns the angular velocity the angle settles to.
func (s *SmoothAngleWithDrift) Drift() float64 { return s.drift }

// Pos returns the animated angle, drift included, in (-π, π].
func (s *SmoothAngleWithDrift) Pos() float64 {
	d := &s.dim
	t := d.elapsedSec()
	return NormalizeAngle(d.delta(t) + s.drift*t + d.realPos)
}

// Speed returns the angular velocity, drift included.
func (s *SmoothAngleWithDrift) Speed() float64 {
	return s.dim.Speed() + s.drift
}

// Set commits newPos and stops drifting.
func (s *SmoothAngleWithDrift) Set(newPos float64, fix, setAsDef bool) {
	d := &s.dim
	if setAsDef {
		d.DefPos = NormalizeAngle(newPos)
	}
	if fix {
		d.a, d.b = 0, 0
	} else {
		t := d.elapsedSec()
		d.setAB(NormalizeAngle(d.delta(t)+s.drift*t+d.realPos-newPos), d.slope(t)+s.drift)
		d.setTime = d.now()
	}
	d.realPos = NormalizeAngle(newPos)
	s.drift = 0
}

// SetPos turns smoothly to newPos and stops drifting.
func (s *SmoothAngleWithDrift) SetPos(newPos float64) { s.Set(newPos, false, false) }

// SetWithDrift turns smoothly toward newPos while settling to the angular
// velocity newDrift. Angle and velocity stay continuous.
func (s *SmoothAngleWithDrift) SetWithDrift(newPos, newDrift float64) {
	d := &s.dim
	t := d.elapsedSec()
	d.setAB(NormalizeAngle(d.delta(t)+s.drift*t+d.realPos-newPos), d.slope(t)+s.drift-newDrift)
	d.setTime = d.now()
	d.realPos = NormalizeAngle(newPos)
	s.drift = newDrift
}

// SetRelToDef commits DefPos+shift and stops drifting.
func (s *SmoothAngleWithDrift) SetRelToDef(shift float64, fix bool) {
	s.Set(s.dim.DefPos+shift, fix, false)
}

// Move commits RealPos+shift and stops drifting.
func (s *SmoothAngleWithDrift) Move(shift float64, fix, setAsDef bool) {
	s.Set(s.dim.realPos+shift, fix, setAsDef)
}
