package neural

import (
	"math"
	"math/rand"
)

// Connection is a directed, weighted synapse between two neurons,
// addressed by index into Network.Neurons. Connections never change
// after generation.
type Connection struct {
	Source int
	Target int
	Weight float64
}

// Network holds the neuron population and its connectivity graph.
type Network struct {
	Neurons     []Neuron
	Connections []Connection
	Params      Params
}

// NewNetwork wraps a generated population and connection set.
func NewNetwork(neurons []Neuron, connections []Connection, p Params) *Network {
	return &Network{
		Neurons:     neurons,
		Connections: connections,
		Params:      p,
	}
}

// StepStats counts what happened during one network step.
type StepStats struct {
	Stimulated int // Neurons that received a background stimulus
	Fired      int // Neurons that fired during update
	Propagated int // Connections that carried a spike
}

// Step phase names, in the order Step runs them.
const (
	PhaseStimulate = "stimulate"
	PhaseUpdate    = "update"
	PhasePropagate = "propagate"
)

// Step advances the whole network by one frame: stimulate, update every
// neuron, then propagate spikes along connections. If onPhase is non-nil
// it is called with each phase name just before that phase runs.
//
// Propagation runs after the update phase and reads the spike intensities
// it just produced, so a neuron's downstream effect lands one frame after
// its own intensity starts decaying.
func (nw *Network) Step(dt, baseSpikeRate float64, rng *rand.Rand, onPhase func(phase string)) StepStats {
	if onPhase == nil {
		onPhase = func(string) {}
	}
	var stats StepStats
	onPhase(PhaseStimulate)
	stats.Stimulated = nw.Stimulate(baseSpikeRate, rng)
	onPhase(PhaseUpdate)
	stats.Fired = nw.Update(dt, baseSpikeRate, rng)
	onPhase(PhasePropagate)
	stats.Propagated = nw.Propagate()
	return stats
}

// Stimulate injects a fixed membrane kick into each neuron independently
// with probability baseSpikeRate * StimulusGain. Returns the number of
// neurons stimulated.
func (nw *Network) Stimulate(baseSpikeRate float64, rng *rand.Rand) int {
	p := &nw.Params
	chance := baseSpikeRate * p.StimulusGain
	count := 0
	for i := range nw.Neurons {
		if rng.Float64() < chance {
			nw.Neurons[i].Membrane += p.StimulusKick
			count++
		}
	}
	return count
}

// Update steps every neuron. Returns the number that fired.
func (nw *Network) Update(dt, baseSpikeRate float64, rng *rand.Rand) int {
	p := &nw.Params
	fired := 0
	for i := range nw.Neurons {
		if nw.Neurons[i].Step(dt, baseSpikeRate, p, rng) {
			fired++
		}
	}
	return fired
}

// Propagate adds weight * PropagationGain to the target membrane of every
// connection whose source spike exceeds FiringThreshold. Returns the
// number of connections that carried a spike.
func (nw *Network) Propagate() int {
	p := &nw.Params
	carried := 0
	for _, c := range nw.Connections {
		if nw.Neurons[c.Source].Spike > p.FiringThreshold {
			nw.Neurons[c.Target].Membrane += c.Weight * p.PropagationGain
			carried++
		}
	}
	return carried
}

// ActiveCount returns the number of neurons whose spike intensity exceeds
// the given level.
func (nw *Network) ActiveCount(level float64) int {
	n := 0
	for i := range nw.Neurons {
		if nw.Neurons[i].Spike > level {
			n++
		}
	}
	return n
}

// Membranes appends every neuron's membrane potential to dst.
func (nw *Network) Membranes(dst []float64) []float64 {
	for i := range nw.Neurons {
		dst = append(dst, nw.Neurons[i].Membrane)
	}
	return dst
}

// Spikes appends every neuron's spike intensity to dst.
func (nw *Network) Spikes(dst []float64) []float64 {
	for i := range nw.Neurons {
		dst = append(dst, nw.Neurons[i].Spike)
	}
	return dst
}

// ClampFrameDelta bounds a measured frame time. Slow frames or a resumed
// tab are capped at maxDT; a zero, negative or undefined measurement
// (the first frame) falls back to fallback.
func ClampFrameDelta(dt, maxDT, fallback float64) float64 {
	if math.IsNaN(dt) || dt <= 0 {
		return fallback
	}
	return math.Min(dt, maxDT)
}
