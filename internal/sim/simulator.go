// Package sim drives the fixed-step integration of a gravitating
// ensemble: barycenter recentering, semi-implicit Euler updates and
// observer notification, in that order, every step.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/orbitlab/internal/body"
)

// Simulator owns the ensemble for the duration of a run. Bodies are
// populated once at construction and only mutated in place afterward.
type Simulator struct {
	bodies    []*body.Body
	observers []Observer
	metrics   []Metric

	t    float64
	step int
}

// New creates a simulator over the given ensemble. An empty ensemble is
// replaced by the built-in solar system dataset.
func New(bodies []*body.Body) *Simulator {
	if len(bodies) == 0 {
		bodies = body.DefaultSolarSystem()
	}
	return &Simulator{bodies: bodies}
}

// Bodies returns the ensemble. Callers must not grow or shrink it.
func (s *Simulator) Bodies() []*body.Body { return s.bodies }

// Time returns the elapsed simulated time in seconds.
func (s *Simulator) Time() float64 { return s.t }

// StepCount returns the number of completed steps.
func (s *Simulator) StepCount() int { return s.step }

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }

// Step advances the whole ensemble by dt: recenter on the instantaneous
// barycenter, then one Euler-Cromer update per body in ensemble order.
// The sweep is strictly sequential; anything that fans the body updates
// out concurrently would have to read positions from a pre-step snapshot
// behind a barrier, or the force sums see torn state.
func (s *Simulator) Step(dt float64) {
	com := body.Barycenter(s.bodies)
	for _, b := range s.bodies {
		b.Pos.SubIn(com)
	}

	for i, b := range s.bodies {
		b.StepEulerCromer(s.bodies, i, dt)
	}

	s.t += dt
	s.step++
}

// Run integrates until the elapsed simulated time is no longer less than
// cfg.Duration. No sub-step interpolation is done, so the final sample
// may overshoot the configured total by up to one step.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}

	for s.t < cfg.Duration {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Step(cfg.Dt)

		if cfg.ValidateState {
			for _, b := range s.bodies {
				if !b.IsFinite() {
					return result, SimError{
						Step:    s.step,
						Time:    s.t,
						Message: fmt.Sprintf("body %q has non-finite state", b.Name),
					}
				}
			}
		}

		for _, m := range s.metrics {
			m.Observe(s.bodies, s.t)
		}
		for _, o := range s.observers {
			o.OnStep(s.bodies, s.step, s.t)
		}

		result.Steps = s.step
		result.Elapsed = s.t
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
