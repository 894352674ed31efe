// Package neural implements the spiking neuron model and the per-frame
// network step (stimulate, update, propagate).
package neural

import (
	"math"
	"math/rand"
)

// Polarity determines the sign of a neuron's outgoing weights.
type Polarity uint8

const (
	Excitatory Polarity = iota
	Inhibitory
)

// String returns the polarity name.
func (p Polarity) String() string {
	if p == Inhibitory {
		return "inhibitory"
	}
	return "excitatory"
}

// Neuron is a single leaky integrate-and-fire unit.
// Position and polarity are fixed at creation; the remaining fields
// mutate every step.
type Neuron struct {
	ID       int
	X, Y, Z  float64
	Polarity Polarity

	Membrane   float64 // Membrane potential, capped at Params.MembraneCeiling
	Threshold  float64 // Firing point, randomized per neuron
	Refractory float64 // Seconds remaining before the neuron may fire again
	Spike      float64 // Decaying spike intensity in [0, 1]
}

// NewNeuron creates a neuron at rest with a randomized threshold and
// starting membrane potential.
func NewNeuron(id int, x, y, z float64, polarity Polarity, p *Params, rng *rand.Rand) Neuron {
	return Neuron{
		ID:        id,
		X:         x,
		Y:         y,
		Z:         z,
		Polarity:  polarity,
		Membrane:  rng.Float64() * p.InitialMembraneMax,
		Threshold: p.ThresholdBase + rng.Float64()*p.ThresholdSpread,
	}
}

// IsExcitatory reports whether the neuron's outgoing weights are positive.
func (n *Neuron) IsExcitatory() bool {
	return n.Polarity == Excitatory
}

// Step advances the neuron by dt seconds. baseSpikeRate adds a small
// constant drive to the membrane. Returns true if the neuron fired.
func (n *Neuron) Step(dt, baseSpikeRate float64, p *Params, rng *rand.Rand) bool {
	if n.Refractory > 0 {
		n.Refractory = math.Max(0, n.Refractory-dt)
		// Stimulus and propagation may have pushed the membrane past the
		// ceiling since the last fire.
		n.Membrane = math.Min(p.MembraneCeiling, n.Membrane*p.RefractoryMembrane)
		n.Spike *= p.RefractorySpike
		return false
	}

	noise := (rng.Float64()*2 - 1) * p.NoiseAmplitude
	n.Membrane = math.Min(p.MembraneCeiling, n.Membrane+noise+baseSpikeRate*p.DriveGain)

	if n.Membrane >= n.Threshold {
		n.Fire(p, rng)
		return true
	}

	n.Spike *= p.RestingSpike
	n.Membrane *= p.RestingMembrane
	return false
}

// Fire emits a spike: full intensity, membrane reset and a fresh
// refractory period drawn from [RefractoryMin, RefractoryMax].
func (n *Neuron) Fire(p *Params, rng *rand.Rand) {
	n.Spike = 1
	n.Membrane = p.ResetMembrane
	n.Refractory = p.RefractoryMin + rng.Float64()*(p.RefractoryMax-p.RefractoryMin)
}
