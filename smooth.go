package bramble

import "math"

// DefaultFadeDelta is the shift used by FadeIn/FadeOut callers that have no
// preference.
const DefaultFadeDelta = 3.0

// DefaultLambda is the decay rate given to node dimensions when none is
// specified. A curve settles within about 1% after 4.6/lambda seconds.
const DefaultLambda = 10.0

// regimeEpsilon separates the three damping regimes on the discriminant.
const regimeEpsilon = 0.001

// SmoothKind is the damping regime of a SmoothDimension.
type SmoothKind uint8

const (
	SmoothStatic           SmoothKind = iota // no motion, Pos == RealPos
	SmoothOverDamped                         // two decaying exponentials
	SmoothCriticallyDamped                   // fastest non-oscillating decay
	SmoothUnderDamped                        // decaying oscillation
)

func (k SmoothKind) String() string {
	switch k {
	case SmoothStatic:
		return "static"
	case SmoothOverDamped:
		return "over-damped"
	case SmoothCriticallyDamped:
		return "critically-damped"
	case SmoothUnderDamped:
		return "under-damped"
	default:
		return "unknown"
	}
}

// SmoothDimension is a scalar that moves toward its committed value along
// the closed-form solution of a damped spring (mass 1, damping gamma,
// stiffness k). Nothing is integrated per frame: the curve is stored as the
// coefficients a and b and evaluated whenever Pos or Speed is read.
//
// Pos(t) = RealPos + delta(t) where t is the time since the last Set and
// delta decays to zero for every non-static regime.
type SmoothDimension struct {
	// DefPos is the remembered default or rest value.
	DefPos float64

	realPos float64
	a, b    float64
	lambda  float64
	beta    float64
	kind    SmoothKind
	setTime int64
	clock   *FrameClock
}

// NewSmoothDimension returns a dimension at pos reading clock. A positive
// lambda gives a critically damped curve with that decay rate; zero gives a
// static value. The result is a value so it can live inside a Node.
func NewSmoothDimension(clock *FrameClock, pos, lambda float64) SmoothDimension {
	s := SmoothDimension{DefPos: pos, realPos: pos, clock: clock}
	if clock != nil {
		s.setTime = clock.ElapsedMS()
	}
	if lambda != 0 {
		s.setLambdaBetaType(2*lambda, lambda*lambda)
	}
	return s
}

// NewSmoothDimensionCurve returns a dimension at pos with an explicit damping
// gamma and stiffness k.
func NewSmoothDimensionCurve(clock *FrameClock, pos, gamma, k float64) SmoothDimension {
	s := NewSmoothDimension(clock, pos, 0)
	s.setLambdaBetaType(gamma, k)
	return s
}

// Pos returns the animated value at the current clock time.
func (s *SmoothDimension) Pos() float64 {
	return s.delta(s.elapsedSec()) + s.realPos
}

// Speed returns the derivative of Pos at the current clock time.
func (s *SmoothDimension) Speed() float64 {
	return s.slope(s.elapsedSec())
}

// RealPos returns the last committed target.
func (s *SmoothDimension) RealPos() float64 { return s.realPos }

// Kind returns the damping regime.
func (s *SmoothDimension) Kind() SmoothKind { return s.kind }

// Rates returns the decay and oscillation rates of the current regime.
func (s *SmoothDimension) Rates() (lambda, beta float64) { return s.lambda, s.beta }

// Clock returns the clock the curve is evaluated on.
func (s *SmoothDimension) Clock() *FrameClock { return s.clock }

// Set commits newPos. With fix the value jumps and all motion stops.
// Without fix the curve is re-solved so that the displayed value and
// velocity are unchanged at this instant and the motion heads to newPos.
// With setAsDef newPos also becomes DefPos.
func (s *SmoothDimension) Set(newPos float64, fix, setAsDef bool) {
	if setAsDef {
		s.DefPos = newPos
	}
	if fix {
		s.a, s.b = 0, 0
	} else {
		t := s.elapsedSec()
		s.setAB(s.delta(t)+s.realPos-newPos, s.slope(t))
		s.setTime = s.now()
	}
	s.realPos = newPos
}

// SetPos moves smoothly to newPos without touching DefPos.
func (s *SmoothDimension) SetPos(newPos float64) {
	s.Set(newPos, false, false)
}

// Snap jumps to newPos and remembers it as the default.
func (s *SmoothDimension) Snap(newPos float64) {
	s.Set(newPos, true, true)
}

// SetRelToDef commits DefPos+shift.
func (s *SmoothDimension) SetRelToDef(shift float64, fix bool) {
	s.Set(s.DefPos+shift, fix, false)
}

// Move commits RealPos+shift.
func (s *SmoothDimension) Move(shift float64, fix, setAsDef bool) {
	s.Set(s.realPos+shift, fix, setAsDef)
}

// FadeIn jumps to DefPos+delta and slides back to DefPos.
func (s *SmoothDimension) FadeIn(delta float64) {
	s.SetRelToDef(delta, true)
	s.Set(s.DefPos, false, false)
}

// FadeOut slides to RealPos-delta.
func (s *SmoothDimension) FadeOut(delta float64) {
	s.Set(s.realPos-delta, false, false)
}

// UpdateCurve changes damping and stiffness mid-flight. Position and
// velocity are continuous across the change.
func (s *SmoothDimension) UpdateCurve(gamma, k float64) {
	t := s.elapsedSec()
	slope := s.slope(t)
	delta := s.delta(t)
	s.setLambdaBetaType(gamma, k)
	s.setAB(delta, slope)
	s.setTime = s.now()
}

// UpdateLambda switches to a critically damped curve of decay rate lambda.
func (s *SmoothDimension) UpdateLambda(lambda float64) {
	s.UpdateCurve(2*lambda, lambda*lambda)
}

// --- Change of referential ---

// NewReferential re-expresses the value, known in absolute terms as pos
// with absolute scale posScale, in a frame whose absolute origin is destPos
// and absolute scale destScale.
func (s *SmoothDimension) NewReferential(pos, destPos, posScale, destScale float64) {
	s.realPos = (pos - destPos) / destScale
	s.a = s.a * posScale / destScale
	s.b = s.b * posScale / destScale
}

// NewReferentialAsDelta is NewReferential for lengths, which have no origin.
func (s *SmoothDimension) NewReferentialAsDelta(posScale, destScale float64) {
	s.realPos = s.realPos * posScale / destScale
	s.a = s.a * posScale / destScale
	s.b = s.b * posScale / destScale
}

// ReferentialUp moves the value into the frame of its old parent's parent.
func (s *SmoothDimension) ReferentialUp(oldParentPos, oldParentScale float64) {
	s.realPos = s.realPos*oldParentScale + oldParentPos
	s.a *= oldParentScale
	s.b *= oldParentScale
}

// ReferentialUpAsDelta is ReferentialUp for lengths.
func (s *SmoothDimension) ReferentialUpAsDelta(oldParentScale float64) {
	s.realPos *= oldParentScale
	s.a *= oldParentScale
	s.b *= oldParentScale
}

// ReferentialDown moves the value into the frame of a sibling that becomes
// its parent.
func (s *SmoothDimension) ReferentialDown(newParentPos, newParentScale float64) {
	s.realPos = (s.realPos - newParentPos) / newParentScale
	s.a /= newParentScale
	s.b /= newParentScale
}

// ReferentialDownAsDelta is ReferentialDown for lengths.
func (s *SmoothDimension) ReferentialDownAsDelta(newParentScale float64) {
	s.realPos /= newParentScale
	s.a /= newParentScale
	s.b /= newParentScale
}

// --- Curve ---

func (s *SmoothDimension) now() int64 {
	if s.clock == nil {
		return 0
	}
	return s.clock.ElapsedMS()
}

func (s *SmoothDimension) elapsedSec() float64 {
	return float64(s.now()-s.setTime) * 0.001
}

func (s *SmoothDimension) setLambdaBetaType(gamma, k float64) {
	if gamma == 0 && k == 0 {
		s.kind = SmoothStatic
		s.lambda, s.beta = 0, 0
		return
	}
	discr := gamma*gamma - 4*k
	switch {
	case discr > regimeEpsilon:
		s.kind = SmoothOverDamped
		s.lambda = (gamma + math.Sqrt(discr)) / 2
		s.beta = (gamma - math.Sqrt(discr)) / 2
	case discr < -regimeEpsilon:
		s.kind = SmoothUnderDamped
		s.lambda = gamma / 2
		s.beta = math.Sqrt(-discr)
	default:
		s.kind = SmoothCriticallyDamped
		s.lambda = gamma / 2
		s.beta = gamma / 2
	}
}

// setAB solves the coefficients from the offset to the target and the
// velocity at t = 0.
func (s *SmoothDimension) setAB(delta, slope float64) {
	switch s.kind {
	case SmoothUnderDamped:
		s.a = delta
		s.b = (slope + s.lambda*s.a) / s.beta
	case SmoothCriticallyDamped:
		s.a = delta
		s.b = slope + s.lambda*s.a
	case SmoothOverDamped:
		s.a = (s.beta*delta + slope) / (s.beta - s.lambda)
		s.b = delta - s.a
	default:
		s.a, s.b = 0, 0
	}
}

func (s *SmoothDimension) slope(t float64) float64 {
	switch s.kind {
	case SmoothUnderDamped:
		sin, cos := math.Sincos(s.beta * t)
		return math.Exp(-s.lambda*t) * (cos*(s.beta*s.b-s.lambda*s.a) - sin*(s.lambda*s.b+s.beta*s.a))
	case SmoothCriticallyDamped:
		return math.Exp(-s.lambda*t) * (s.b*(1-s.lambda*t) - s.lambda*s.a)
	case SmoothOverDamped:
		return -s.lambda*s.a*math.Exp(-s.lambda*t) - s.beta*s.b*math.Exp(-s.beta*t)
	default:
		return 0
	}
}

func (s *SmoothDimension) delta(t float64) float64 {
	switch s.kind {
	case SmoothUnderDamped:
		sin, cos := math.Sincos(s.beta * t)
		return math.Exp(-s.lambda*t) * (s.a*cos + s.b*sin)
	case SmoothCriticallyDamped:
		return (s.a + s.b*t) * math.Exp(-s.lambda*t)
	case SmoothOverDamped:
		return s.a*math.Exp(-s.lambda*t) + s.b*math.Exp(-s.beta*t)
	default:
		return 0
	}
}
