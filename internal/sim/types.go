package sim

import (
	"fmt"

	"github.com/san-kum/orbitlab/internal/body"
)

// Observer is notified after each step with the post-update ensemble.
type Observer interface {
	OnStep(bodies []*body.Body, step int, t float64)
}

// Metric accumulates a scalar diagnostic over a run.
type Metric interface {
	Name() string
	Observe(bodies []*body.Body, t float64)
	Value() float64
	Reset()
}

// Config holds the fixed-step run parameters, in seconds.
type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

// DefaultConfig mirrors the configuration defaults: a one second step
// over ten simulated seconds.
func DefaultConfig() Config {
	return Config{Dt: 1, Duration: 10}
}

// Result summarizes a completed run.
type Result struct {
	Steps   int
	Elapsed float64
	Metrics map[string]float64
}

// SimError carries the step and simulated time at which a run failed.
type SimError struct {
	Step    int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
