// Package body models point masses under mutual Newtonian gravity.
package body

import (
	"github.com/san-kum/orbitlab/internal/vec"
)

// G is the gravitational constant in SI units (m^3 kg^-1 s^-2).
const G = 6.67408e-11

// Body is a named point mass with position (m), velocity (m/s) and a
// transient acceleration (m/s^2) that is recomputed every step.
type Body struct {
	Name string
	Mass float64
	Pos  vec.Vector
	Vel  vec.Vector
	Acc  vec.Vector
}

// New creates a body with zero initial acceleration. Position and
// velocity vectors are copied so callers can reuse their arguments.
func New(name string, mass float64, pos, vel vec.Vector) *Body {
	return &Body{
		Name: name,
		Mass: mass,
		Pos:  pos.Clone(),
		Vel:  vel.Clone(),
		Acc:  vec.Zero(3),
	}
}

// AccelerationFrom returns the gravitational acceleration imposed on b by
// other: -(G * M_other / r^2) along the unit separation vector, where the
// separation is b.Pos - other.Pos.
//
// Coincident bodies (r == 0) are not guarded: the result carries NaN
// components which propagate into velocity and position. Callers that
// need protection should run with state validation enabled.
func (b *Body) AccelerationFrom(other *Body) vec.Vector {
	dr := b.Pos.Sub(other.Pos)
	r := dr.Magnitude()
	a := dr.Unit()
	a.Scale(-(G * other.Mass) / (r * r))
	return a
}

// UpdateAcceleration sums AccelerationFrom over every body in the
// ensemble except the one at index self and assigns the total to b.Acc.
// Exclusion is by ensemble index, never by value: two distinct bodies
// with identical state still attract each other.
func (b *Body) UpdateAcceleration(bodies []*Body, self int) {
	sum := vec.Zero(3)
	for i, other := range bodies {
		if i == self {
			continue
		}
		sum.AddIn(b.AccelerationFrom(other))
	}
	b.Acc = sum
}

// AdvancePosition applies Pos += Vel * dt using the current velocity.
func (b *Body) AdvancePosition(dt float64) {
	b.Pos.AddIn(b.Vel.ScaledBy(dt))
}

// AdvanceVelocity applies Vel += Acc * dt.
func (b *Body) AdvanceVelocity(dt float64) {
	b.Vel.AddIn(b.Acc.ScaledBy(dt))
}

// StepEuler advances the body one explicit Euler step: acceleration,
// then position (from the pre-update velocity), then velocity. Kept as
// the reference first-order method; the driver integrates with
// StepEulerCromer.
func (b *Body) StepEuler(bodies []*Body, self int, dt float64) {
	b.UpdateAcceleration(bodies, self)
	b.AdvancePosition(dt)
	b.AdvanceVelocity(dt)
}

// StepEulerCromer advances the body one semi-implicit Euler step:
// acceleration, then velocity, then position from the just-updated
// velocity. This ordering is what keeps closed orbits from spiraling
// outward the way plain Euler does.
func (b *Body) StepEulerCromer(bodies []*Body, self int, dt float64) {
	b.UpdateAcceleration(bodies, self)
	b.AdvanceVelocity(dt)
	b.AdvancePosition(dt)
}

// IsFinite reports whether position, velocity and acceleration are all
// finite.
func (b *Body) IsFinite() bool {
	return b.Pos.IsFinite() && b.Vel.IsFinite() && b.Acc.IsFinite()
}

// Barycenter returns the mass-weighted centroid of the ensemble,
// Sum(m_i * x_i) / Sum(m_i).
func Barycenter(bodies []*Body) vec.Vector {
	com := vec.Zero(3)
	totalMass := 0.0
	for _, b := range bodies {
		com.AddIn(b.Pos.ScaledBy(b.Mass))
		totalMass += b.Mass
	}
	com.Scale(1 / totalMass)
	return com
}

// TotalEnergy returns kinetic plus pairwise gravitational potential
// energy of the ensemble.
func TotalEnergy(bodies []*Body) float64 {
	ke := 0.0
	pe := 0.0
	for i, b := range bodies {
		ke += 0.5 * b.Mass * b.Vel.LengthSquared()
		for j := i + 1; j < len(bodies); j++ {
			r := b.Pos.Sub(bodies[j].Pos).Magnitude()
			pe -= G * b.Mass * bodies[j].Mass / r
		}
	}
	return ke + pe
}

// TotalMomentum returns the total linear momentum Sum(m_i * v_i).
func TotalMomentum(bodies []*Body) vec.Vector {
	p := vec.Zero(3)
	for _, b := range bodies {
		p.AddIn(b.Vel.ScaledBy(b.Mass))
	}
	return p
}
