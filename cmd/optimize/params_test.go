package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/synapse/config"
	"github.com/pthm-cable/synapse/telemetry"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	defaults := pv.DefaultVector()
	extracted := pv.ExtractFromConfig(cfg)
	if len(extracted) != pv.Dim() {
		t.Fatalf("extracted %d values, want %d", len(extracted), pv.Dim())
	}
	for i, spec := range pv.Specs {
		if math.Abs(defaults[i]-extracted[i]) > 1e-12 {
			t.Errorf("%s: default %v does not match config %v", spec.Path, defaults[i], extracted[i])
		}
	}

	back := pv.Denormalize(pv.Normalize(defaults))
	for i := range back {
		if math.Abs(back[i]-defaults[i]) > 1e-12 {
			t.Errorf("round trip %s: %v != %v", pv.Specs[i].Name, back[i], defaults[i])
		}
	}

	// Apply clamps out-of-range values
	values := make([]float64, pv.Dim())
	for i := range values {
		values[i] = 1e6
	}
	pv.ApplyToConfig(cfg, values)
	for i, v := range pv.ExtractFromConfig(cfg) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s = %v, want clamp to %v", pv.Specs[i].Path, v, pv.Specs[i].Max)
		}
	}
}

func TestAverageActivity(t *testing.T) {
	windows := []telemetry.WindowStats{
		{FireRate: 100, ActiveFraction: 1},
		{FireRate: 1, ActiveFraction: 0.1},
		{FireRate: 3, ActiveFraction: 0.3},
	}
	got := averageActivity(windows)
	if math.Abs(got.FireRate-2) > 1e-12 || math.Abs(got.ActiveFraction-0.2) > 1e-12 {
		t.Errorf("averageActivity = %+v, want warm-up window skipped", got)
	}

	if got := averageActivity(nil); got != (Target{}) {
		t.Errorf("averageActivity(nil) = %+v", got)
	}
}

func TestTargetInterpolation(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), 60, []int64{1}, nil,
		Target{FireRate: 1, ActiveFraction: 0.1},
		Target{FireRate: 5, ActiveFraction: 0.5},
	)
	lo := fe.targetAt(probeRates[0])
	hi := fe.targetAt(probeRates[len(probeRates)-1])
	if math.Abs(lo.FireRate-1) > 1e-12 || math.Abs(hi.FireRate-5) > 1e-12 {
		t.Errorf("endpoints: lo=%+v hi=%+v", lo, hi)
	}
	if math.Abs(hi.ActiveFraction-0.5) > 1e-12 {
		t.Errorf("high active fraction = %v", hi.ActiveFraction)
	}
}

func TestEvaluateShortRun(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Simulation.NeuronCount = 60

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 300, []int64{1}, cfg,
		Target{FireRate: 0.5, ActiveFraction: 0.05},
		Target{FireRate: 4, ActiveFraction: 0.35},
	)
	fitness := fe.Evaluate(pv.DefaultVector())
	t.Logf("fitness at defaults: %.4f metrics: %+v", fitness, fe.LastMetrics())

	if math.IsNaN(fitness) || fitness < 0 {
		t.Errorf("fitness = %v", fitness)
	}
	if len(fe.LastMetrics()) != len(probeRates) {
		t.Errorf("metrics for %d probes, want %d", len(fe.LastMetrics()), len(probeRates))
	}
	if fe.LastError() != fitness {
		t.Error("LastError should report the latest fitness")
	}
	// Base config untouched by evaluation
	if cfg.Neuron.ThresholdBase != 0.9 {
		t.Errorf("base config mutated: threshold_base = %v", cfg.Neuron.ThresholdBase)
	}
}
