// Package main provides CMA-ES tuning of neuron and wiring constants toward
// a target level of network activity.
package main

import (
	"github.com/pthm-cable/synapse/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Neuron
			{Name: "threshold_base", Path: "neuron.threshold_base", Min: 0.6, Max: 1.1, Default: 0.9},
			{Name: "resting_membrane", Path: "neuron.resting_membrane", Min: 0.95, Max: 0.999, Default: 0.985},
			{Name: "noise_amplitude", Path: "neuron.noise_amplitude", Min: 0.005, Max: 0.08, Default: 0.025},
			{Name: "drive_gain", Path: "neuron.drive_gain", Min: 0.0, Max: 0.1, Default: 0.02},
			{Name: "stimulus_gain", Path: "neuron.stimulus_gain", Min: 0.02, Max: 0.4, Default: 0.1},
			{Name: "propagation_gain", Path: "neuron.propagation_gain", Min: 0.1, Max: 1.2, Default: 0.6},
			// Wiring
			{Name: "connection_gain", Path: "topology.connection_gain", Min: 0.02, Max: 0.3, Default: 0.12},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Neuron.ThresholdBase = c[0]
	cfg.Neuron.RestingMembrane = c[1]
	cfg.Neuron.NoiseAmplitude = c[2]
	cfg.Neuron.DriveGain = c[3]
	cfg.Neuron.StimulusGain = c[4]
	cfg.Neuron.PropagationGain = c[5]
	cfg.Topology.ConnectionGain = c[6]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Neuron.ThresholdBase,
		cfg.Neuron.RestingMembrane,
		cfg.Neuron.NoiseAmplitude,
		cfg.Neuron.DriveGain,
		cfg.Neuron.StimulusGain,
		cfg.Neuron.PropagationGain,
		cfg.Topology.ConnectionGain,
	}
}
