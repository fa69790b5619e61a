// Package config reads simulation parameters and body definitions, either
// from the classic line-oriented "key = value" format or from YAML.
package config

import (
	"errors"
	"fmt"

	"github.com/san-kum/orbitlab/internal/body"
	"github.com/san-kum/orbitlab/internal/vec"
)

const (
	// DefaultTimeStep is the integration step in seconds when the
	// configuration does not set one.
	DefaultTimeStep = 1.0

	// DefaultDuration is the total simulated length in seconds when the
	// configuration does not set one.
	DefaultDuration = 10.0
)

// ErrParse is the sentinel wrapped by every configuration parse failure.
var ErrParse = errors.New("config: parse error")

// ParseError records a fatal configuration error together with the
// offending text.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config: %s: %q", e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// BodyConfig is one body record. Position is in meters, velocity in m/s,
// mass in kg.
type BodyConfig struct {
	Name     string    `yaml:"name"`
	Mass     float64   `yaml:"mass"`
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity"`
}

// Config holds everything a run needs. Zero bodies is not an error; the
// simulator substitutes the default solar system in that case.
type Config struct {
	TimeStep      float64      `yaml:"time_step"`
	Duration      float64      `yaml:"simulation_length"`
	ValidateState bool         `yaml:"validate_state"`
	Output        string       `yaml:"output"`
	Bodies        []BodyConfig `yaml:"bodies"`
}

// Default returns a configuration with the stock time parameters and no
// bodies.
func Default() *Config {
	return &Config{
		TimeStep: DefaultTimeStep,
		Duration: DefaultDuration,
	}
}

// BuildBodies converts the configured body records into simulation
// bodies, in configuration order. Vector literals shorter or longer than
// three components are padded or truncated.
func (c *Config) BuildBodies() []*body.Body {
	bodies := make([]*body.Body, 0, len(c.Bodies))
	for _, bc := range c.Bodies {
		bodies = append(bodies, body.New(
			bc.Name,
			bc.Mass,
			vec.New(3, bc.Position...),
			vec.New(3, bc.Velocity...),
		))
	}
	return bodies
}
