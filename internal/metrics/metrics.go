// Package metrics provides conservation diagnostics for gravitating
// ensembles. A first-order integrator cannot conserve energy exactly, so
// these report drift bounds rather than asserting invariants.
package metrics

import (
	"math"

	"github.com/san-kum/orbitlab/internal/body"
	"github.com/san-kum/orbitlab/internal/vec"
)

// Energy tracks the maximum relative drift of total mechanical energy
// from its first observation.
type Energy struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergy() *Energy { return &Energy{} }

func (e *Energy) Name() string { return "energy_drift" }

func (e *Energy) Observe(bodies []*body.Body, t float64) {
	total := body.TotalEnergy(bodies)
	if e.samples == 0 {
		e.initial = total
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(total-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *Energy) Value() float64 { return e.maxDrift }

func (e *Energy) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// Momentum tracks the largest displacement of total linear momentum from
// its first observation, in kg m/s.
type Momentum struct {
	initial  vec.Vector
	maxDrift float64
	samples  int
}

func NewMomentum() *Momentum { return &Momentum{} }

func (m *Momentum) Name() string { return "momentum_drift" }

func (m *Momentum) Observe(bodies []*body.Body, t float64) {
	p := body.TotalMomentum(bodies)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	drift := p.Sub(m.initial).Magnitude()
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *Momentum) Value() float64 { return m.maxDrift }

func (m *Momentum) Reset() {
	m.initial = nil
	m.maxDrift = 0
	m.samples = 0
}

// BarycenterOffset tracks the largest barycenter displacement observed
// after a step, in meters. With per-step recentering this stays at the
// scale of one step's worth of system momentum.
type BarycenterOffset struct {
	maxOffset float64
}

func NewBarycenterOffset() *BarycenterOffset { return &BarycenterOffset{} }

func (b *BarycenterOffset) Name() string { return "barycenter_offset" }

func (b *BarycenterOffset) Observe(bodies []*body.Body, t float64) {
	offset := body.Barycenter(bodies).Magnitude()
	b.maxOffset = math.Max(b.maxOffset, offset)
}

func (b *BarycenterOffset) Value() float64 { return b.maxOffset }

func (b *BarycenterOffset) Reset() { b.maxOffset = 0 }
