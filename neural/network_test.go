package neural

import (
	"math"
	"math/rand"
	"testing"
)

func TestPropagateUsesFiringThreshold(t *testing.T) {
	p := DefaultParams()
	nw := NewNetwork([]Neuron{
		{ID: 0, Spike: 0.9},
		{ID: 1, Spike: 0.85}, // exactly at threshold: does not propagate
		{ID: 2},
	}, []Connection{
		{Source: 0, Target: 2, Weight: 0.5},
		{Source: 1, Target: 2, Weight: 0.5},
		{Source: 0, Target: 1, Weight: -0.4},
	}, p)

	carried := nw.Propagate()

	if carried != 2 {
		t.Errorf("carried = %d, want 2", carried)
	}
	if math.Abs(nw.Neurons[2].Membrane-0.3) > 1e-12 {
		t.Errorf("target membrane = %v, want 0.3", nw.Neurons[2].Membrane)
	}
	if math.Abs(nw.Neurons[1].Membrane-(-0.24)) > 1e-12 {
		t.Errorf("inhibited membrane = %v, want -0.24", nw.Neurons[1].Membrane)
	}
}

func TestParallelConnectionsAccumulate(t *testing.T) {
	p := DefaultParams()
	nw := NewNetwork([]Neuron{{ID: 0, Spike: 1}, {ID: 1}}, []Connection{
		{Source: 0, Target: 1, Weight: 0.5},
		{Source: 0, Target: 1, Weight: 0.5},
	}, p)

	nw.Propagate()

	if math.Abs(nw.Neurons[1].Membrane-0.6) > 1e-12 {
		t.Errorf("membrane = %v, want 0.6 from two parallel connections", nw.Neurons[1].Membrane)
	}
}

func TestStimulate(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(7))
	nw := NewNetwork(make([]Neuron, 50), nil, p)

	if got := nw.Stimulate(0, rng); got != 0 {
		t.Errorf("zero rate stimulated %d neurons", got)
	}

	// rate * gain >= 1 stimulates every neuron
	if got := nw.Stimulate(10, rng); got != 50 {
		t.Errorf("saturated rate stimulated %d neurons, want 50", got)
	}
	for i, n := range nw.Neurons {
		if n.Membrane != 0.5 {
			t.Fatalf("neuron %d membrane = %v, want 0.5", i, n.Membrane)
		}
	}
}

func TestStimulateRate(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(8))
	nw := NewNetwork(make([]Neuron, 1000), nil, p)

	total := 0
	const trials = 200
	for i := 0; i < trials; i++ {
		total += nw.Stimulate(0.2, rng)
	}

	// Expected probability 0.2 * 0.1 = 0.02
	mean := float64(total) / float64(trials*1000)
	if math.Abs(mean-0.02) > 0.003 {
		t.Errorf("stimulation rate = %v, want ~0.02", mean)
	}
}

func TestStepPropagatesFreshSpikes(t *testing.T) {
	p := DefaultParams()
	rng := rand.New(rand.NewSource(9))
	nw := NewNetwork([]Neuron{
		{ID: 0, Membrane: 1.19, Threshold: 0.9},
		{ID: 1, Membrane: 0, Threshold: 2},
	}, []Connection{{Source: 0, Target: 1, Weight: 0.5}}, p)

	var phases []string
	stats := nw.Step(0.016, 0, rng, func(phase string) { phases = append(phases, phase) })

	wantPhases := []string{PhaseStimulate, PhaseUpdate, PhasePropagate}
	if len(phases) != len(wantPhases) {
		t.Fatalf("phases = %v, want %v", phases, wantPhases)
	}
	for i := range wantPhases {
		if phases[i] != wantPhases[i] {
			t.Errorf("phase %d = %q, want %q", i, phases[i], wantPhases[i])
		}
	}

	if stats.Stimulated != 0 {
		t.Errorf("stimulated = %d at zero rate", stats.Stimulated)
	}
	if stats.Fired != 1 {
		t.Errorf("fired = %d, want 1", stats.Fired)
	}
	if stats.Propagated != 1 {
		t.Errorf("propagated = %d, want 1", stats.Propagated)
	}
	// Target saw its own decay (|noise| <= 0.025) and then the 0.3 kick
	got := nw.Neurons[1].Membrane
	if got < 0.3-0.025 || got > 0.3+0.025 {
		t.Errorf("target membrane = %v, want ~0.3", got)
	}
}

func TestActiveCountAndSnapshots(t *testing.T) {
	nw := NewNetwork([]Neuron{
		{Spike: 0.9, Membrane: 0.1},
		{Spike: 0.01, Membrane: 0.2},
		{Spike: 0.5, Membrane: 0.3},
	}, nil, DefaultParams())

	if got := nw.ActiveCount(0.05); got != 2 {
		t.Errorf("active = %d, want 2", got)
	}
	if got := nw.Membranes(nil); len(got) != 3 || got[2] != 0.3 {
		t.Errorf("membranes = %v", got)
	}
	if got := nw.Spikes(nil); len(got) != 3 || got[0] != 0.9 {
		t.Errorf("spikes = %v", got)
	}
}

func TestClampFrameDelta(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
		want float64
	}{
		{"first frame", 0, 0.016},
		{"undefined", math.NaN(), 0.016},
		{"negative", -0.5, 0.016},
		{"normal", 0.017, 0.017},
		{"slow frame", 0.2, 0.06},
		{"tab resumed", 12, 0.06},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampFrameDelta(tt.dt, 0.06, 0.016); got != tt.want {
				t.Errorf("ClampFrameDelta(%v) = %v, want %v", tt.dt, got, tt.want)
			}
		})
	}
}
