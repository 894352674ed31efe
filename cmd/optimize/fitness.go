package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/sim"
	"github.com/pthm-cable/synapse/telemetry"
)

// Target describes the activity the tuner aims for at each probed spike
// rate.
type Target struct {
	FireRate       float64 // Fires per neuron per second
	ActiveFraction float64 // Fraction of visibly spiking neurons
}

// probeRates are the spike rates each candidate is evaluated at. The
// target activity scales linearly between the low and high probe.
var probeRates = []float64{0.02, 0.12, 0.25}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	frames      int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64
	low, high   Target

	mu          sync.Mutex
	lastError   float64 // activity error from the most recent Evaluate call
	lastMetrics []Target
}

// NewFitnessEvaluator creates a new evaluator. low and high are the
// targets at the lowest and highest probe rate.
func NewFitnessEvaluator(params *ParamVector, frames int64, seeds []int64, baseCfg *config.Config, low, high Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		frames:      frames,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 2.0,
		low:         low,
		high:        high,
	}
}

// LastMetrics returns the measured activity per probe rate from the most
// recent evaluation.
func (fe *FitnessEvaluator) LastMetrics() []Target {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastMetrics
}

// LastError returns the activity error from the most recent evaluation.
func (fe *FitnessEvaluator) LastError() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastError
}

// targetAt interpolates the target for a spike rate.
func (fe *FitnessEvaluator) targetAt(rate float64) Target {
	lo, hi := probeRates[0], probeRates[len(probeRates)-1]
	t := (rate - lo) / (hi - lo)
	return Target{
		FireRate:       fe.low.FireRate + t*(fe.high.FireRate-fe.low.FireRate),
		ActiveFraction: fe.low.ActiveFraction + t*(fe.high.ActiveFraction-fe.low.ActiveFraction),
	}
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// mean squared relative error between measured and target activity over
// every probe rate and seed.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	type job struct {
		rate float64
		seed int64
	}
	var jobs []job
	for _, r := range probeRates {
		for _, s := range fe.seeds {
			jobs = append(jobs, job{r, s})
		}
	}

	// Run all probes in parallel; each owns its simulation
	results := make([]Target, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(idx int, j job) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, j.rate, j.seed)
		}(i, j)
	}
	wg.Wait()

	var errSum float64
	metrics := make([]Target, len(probeRates))
	for i, j := range jobs {
		want := fe.targetAt(j.rate)
		got := results[i]
		errSum += relErr(got.FireRate, want.FireRate) + relErr(got.ActiveFraction, want.ActiveFraction)

		p := i / len(fe.seeds)
		metrics[p].FireRate += got.FireRate / float64(len(fe.seeds))
		metrics[p].ActiveFraction += got.ActiveFraction / float64(len(fe.seeds))
	}
	fitness := errSum / float64(len(jobs))

	fe.mu.Lock()
	fe.lastError = fitness
	fe.lastMetrics = metrics
	fe.mu.Unlock()

	return fitness
}

// runSimulation runs one headless simulation at a fixed spike rate and
// returns its activity averaged over all windows after the first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, rate float64, seed int64) Target {
	var windows []telemetry.WindowStats
	s := sim.New(cfg, sim.Options{
		Seed:           seed,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(ws telemetry.WindowStats) {
			windows = append(windows, ws)
		},
	})
	s.SetSpikeRate(rate)

	dt := 1.0 / 60
	for s.FrameCount() < fe.frames {
		s.Frame(dt, nil)
	}

	return averageActivity(windows)
}

// averageActivity averages fire rate and active fraction over windows,
// skipping the first as warm-up when there is more than one.
func averageActivity(windows []telemetry.WindowStats) Target {
	if len(windows) > 1 {
		windows = windows[1:]
	}
	var t Target
	if len(windows) == 0 {
		return t
	}
	for _, w := range windows {
		t.FireRate += w.FireRate
		t.ActiveFraction += w.ActiveFraction
	}
	n := float64(len(windows))
	t.FireRate /= n
	t.ActiveFraction /= n
	return t
}

// relErr is the squared error of got relative to want.
func relErr(got, want float64) float64 {
	d := (got - want) / math.Max(math.Abs(want), 1e-3)
	return d * d
}

// copyConfig returns an independent copy of the base config. Config holds
// only values and fixed-size arrays, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
