// Package scenario loads load-shaping runs described in YAML files.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/loadshape/pkg/profile"
	"github.com/ja7ad/loadshape/pkg/solver"
)

// Scenario is one sweep definition plus its presentation settings.
type Scenario struct {
	Variant  string    `yaml:"variant"`
	Baseline []float64 `yaml:"baseline,omitempty"`
	Sigmas   []float64 `yaml:"sigmas,omitempty"`
	Solver   Solver    `yaml:"solver"`
	Display  Display   `yaml:"display"`
}

// Solver mirrors solver.Config. Zero fields fall back to the variant defaults.
type Solver struct {
	FleetSize     int     `yaml:"fleet_size,omitempty"`
	StepSize      float64 `yaml:"step_size,omitempty"`
	MaxIterations int     `yaml:"max_iterations,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
}

// Display holds presentation-only settings. Offset shifts plotted or
// tabulated shaped loads and never feeds back into results.
type Display struct {
	Offset *float64 `yaml:"offset,omitempty"`
}

// Defaults describes the reference sweep for one variant.
type Defaults struct {
	Sigmas []float64
	Offset float64
}

// DefaultsFor returns the reference σ set and display offset of a variant.
func DefaultsFor(v solver.Variant) Defaults {
	switch v {
	case solver.IncrementalConstant, solver.IncrementalDecreasing:
		return Defaults{Sigmas: []float64{0.5, 1, 2}, Offset: 3500}
	default:
		return Defaults{Sigmas: []float64{50, 100, 200}, Offset: 4500}
	}
}

// Load reads and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: open: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Decode(f)
}

// Decode parses a scenario document. Unknown keys are rejected.
func Decode(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	return &s, nil
}

// ResolvedVariant parses Variant, defaulting to FixedAscent when empty.
func (s *Scenario) ResolvedVariant() (solver.Variant, error) {
	if s.Variant == "" {
		return solver.FixedAscent, nil
	}
	return solver.ParseVariant(s.Variant)
}

// Config merges the file's solver section onto the variant defaults.
func (s *Scenario) Config(v solver.Variant) solver.Config {
	return solver.Merge(solver.DefaultConfig(v), solver.Config{
		FleetSize:     s.Solver.FleetSize,
		StepSize:      s.Solver.StepSize,
		MaxIterations: s.Solver.MaxIterations,
		Tolerance:     s.Solver.Tolerance,
	})
}

// Profile returns the baseline, or the duck curve when none is given.
func (s *Scenario) Profile() (profile.Profile, error) {
	if len(s.Baseline) == 0 {
		return profile.DuckCurve(), nil
	}
	p := profile.Profile(s.Baseline).Clone()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: baseline: %w", err)
	}
	return p, nil
}

// SigmaSet returns the configured σ values or the variant defaults.
func (s *Scenario) SigmaSet(v solver.Variant) []float64 {
	if len(s.Sigmas) == 0 {
		return DefaultsFor(v).Sigmas
	}
	return append([]float64(nil), s.Sigmas...)
}

// DisplayOffset returns the configured offset or the variant default.
func (s *Scenario) DisplayOffset(v solver.Variant) float64 {
	if s.Display.Offset == nil {
		return DefaultsFor(v).Offset
	}
	return *s.Display.Offset
}
