package sim

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/orbitlab/internal/body"
	"github.com/san-kum/orbitlab/internal/vec"
)

func twoBody() []*body.Body {
	v := math.Sqrt(body.G * 1.989e30 / 1.496e11)
	return []*body.Body{
		body.New("star", 1.989e30, vec.Zero(3), vec.Zero(3)),
		body.New("planet", 5.972e24, vec.New3(1.496e11, 0, 0), vec.New3(0, v, 0)),
	}
}

func TestNew_DefaultFallback(t *testing.T) {
	s := New(nil)
	if got := len(s.Bodies()); got != 11 {
		t.Fatalf("empty ensemble fallback: got %d bodies, want 11", got)
	}

	want := body.DefaultSolarSystem()
	for i, b := range s.Bodies() {
		if b.Name != want[i].Name || b.Mass != want[i].Mass {
			t.Errorf("body %d = %s/%v, want %s/%v", i, b.Name, b.Mass, want[i].Name, want[i].Mass)
		}
		if !b.Pos.Equal(want[i].Pos) || !b.Vel.Equal(want[i].Vel) {
			t.Errorf("body %d state differs from the default dataset", i)
		}
	}
}

func TestNew_KeepsProvidedBodies(t *testing.T) {
	bodies := twoBody()
	s := New(bodies)
	if len(s.Bodies()) != 2 {
		t.Fatalf("got %d bodies, want 2", len(s.Bodies()))
	}
	if s.Bodies()[0] != bodies[0] {
		t.Error("simulator must own the provided bodies, not copies")
	}
}

func TestStep_Recentering(t *testing.T) {
	bodies := twoBody()
	s := New(bodies)
	s.Step(3600)

	// The recentering happens before the update, so after one step the
	// barycenter has drifted by dt * P / M, a few hundred meters against
	// a 1.5e11 m system scale.
	com := body.Barycenter(s.Bodies())
	if com.Magnitude() > 1e4 {
		t.Errorf("barycenter offset after one step = %v m", com.Magnitude())
	}
}

func TestStep_RecenterZeroesMassWeightedSum(t *testing.T) {
	bodies := []*body.Body{
		body.New("a", 3e24, vec.New3(1e10, 5e9, 0), vec.Zero(3)),
		body.New("b", 1e24, vec.New3(-2e10, 0, 1e9), vec.Zero(3)),
	}
	com := body.Barycenter(bodies)
	for _, b := range bodies {
		b.Pos.SubIn(com)
	}

	sum := vec.Zero(3)
	total := 0.0
	for _, b := range bodies {
		sum.AddIn(b.Pos.ScaledBy(b.Mass))
		total += b.Mass
	}
	if sum.Magnitude()/total > 1e-6 {
		t.Errorf("mass-weighted sum after recentering = %v", sum)
	}
}

func TestRun_StepCountAndOvershoot(t *testing.T) {
	tests := []struct {
		name     string
		dt       float64
		duration float64
		want     int
	}{
		{"exact multiple", 1, 10, 10},
		{"single step", 3600, 3600, 1},
		{"overshoot", 3, 10, 4}, // 4 steps reach t=12, past 10
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(twoBody())
			result, err := s.Run(context.Background(), Config{Dt: tt.dt, Duration: tt.duration})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if result.Steps != tt.want {
				t.Errorf("steps = %d, want %d", result.Steps, tt.want)
			}
			if result.Elapsed < tt.duration {
				t.Errorf("elapsed %v < duration %v", result.Elapsed, tt.duration)
			}
			if result.Elapsed >= tt.duration+tt.dt {
				t.Errorf("elapsed %v overshoots by a full step", result.Elapsed)
			}
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -1, Duration: 1}},
		{"zero duration", Config{Dt: 1, Duration: 0}},
		{"negative duration", Config{Dt: 1, Duration: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(twoBody())
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRun_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(twoBody())
	_, err := s.Run(ctx, Config{Dt: 1, Duration: 1e6})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRun_ValidateStateCatchesCoincidentBodies(t *testing.T) {
	bodies := []*body.Body{
		body.New("a", 1e24, vec.Zero(3), vec.Zero(3)),
		body.New("b", 1e24, vec.Zero(3), vec.Zero(3)),
	}
	s := New(bodies)

	_, err := s.Run(context.Background(), Config{Dt: 1, Duration: 10, ValidateState: true})
	if err == nil {
		t.Fatal("expected a state validation error for coincident bodies")
	}
	simErr, ok := err.(SimError)
	if !ok {
		t.Fatalf("err type = %T, want SimError", err)
	}
	if simErr.Step != 1 {
		t.Errorf("failure step = %d, want 1", simErr.Step)
	}
}

func TestRun_UnvalidatedNaNPropagates(t *testing.T) {
	// Without validation the degenerate input silently corrupts state,
	// matching the reference behavior.
	bodies := []*body.Body{
		body.New("a", 1e24, vec.Zero(3), vec.Zero(3)),
		body.New("b", 1e24, vec.Zero(3), vec.Zero(3)),
	}
	s := New(bodies)

	result, err := s.Run(context.Background(), Config{Dt: 1, Duration: 3})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Steps != 3 {
		t.Errorf("steps = %d, want 3", result.Steps)
	}
	for _, b := range s.Bodies() {
		if b.IsFinite() {
			t.Errorf("%s state stayed finite, expected NaN propagation", b.Name)
		}
	}
}

type recordingObserver struct {
	steps []int
	times []float64
}

func (r *recordingObserver) OnStep(bodies []*body.Body, step int, t float64) {
	r.steps = append(r.steps, step)
	r.times = append(r.times, t)
}

func TestRun_ObserverSeesEveryPostStepState(t *testing.T) {
	s := New(twoBody())
	obs := &recordingObserver{}
	s.AddObserver(obs)

	if _, err := s.Run(context.Background(), Config{Dt: 2, Duration: 10}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(obs.steps) != 5 {
		t.Fatalf("observer called %d times, want 5", len(obs.steps))
	}
	for i, step := range obs.steps {
		if step != i+1 {
			t.Errorf("observation %d has step %d, want %d", i, step, i+1)
		}
		if obs.times[i] != float64(2*(i+1)) {
			t.Errorf("observation %d has t=%v, want %v", i, obs.times[i], 2*(i+1))
		}
	}
}

type countingMetric struct{ n int }

func (c *countingMetric) Name() string { return "count" }

func (c *countingMetric) Observe(bodies []*body.Body, t float64) { c.n++ }

func (c *countingMetric) Value() float64 { return float64(c.n) }

func (c *countingMetric) Reset() { c.n = 0 }

func TestRun_MetricsCollected(t *testing.T) {
	s := New(twoBody())
	m := &countingMetric{n: 99} // Reset must clear this
	s.AddMetric(m)

	result, err := s.Run(context.Background(), Config{Dt: 1, Duration: 4})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := result.Metrics["count"]; got != 4 {
		t.Errorf("metric value = %v, want 4", got)
	}
}

func TestRun_Deterministic(t *testing.T) {
	run := func() []*body.Body {
		s := New(nil)
		if _, err := s.Run(context.Background(), Config{Dt: 3600, Duration: 3600 * 24}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return s.Bodies()
	}

	first := run()
	second := run()
	for i := range first {
		if !first[i].Pos.Equal(second[i].Pos) || !first[i].Vel.Equal(second[i].Vel) {
			t.Errorf("body %d differs between identical runs", i)
		}
	}
}
