package neural

import "github.com/pthm-cable/synapse/config"

// Params holds the constants of the neuron update rule and the per-frame
// network step. All neurons in a network share one Params value.
type Params struct {
	MembraneCeiling    float64
	NoiseAmplitude     float64
	DriveGain          float64
	RefractoryMembrane float64
	RefractorySpike    float64
	RestingSpike       float64
	RestingMembrane    float64
	ResetMembrane      float64
	RefractoryMin      float64
	RefractoryMax      float64
	ThresholdBase      float64
	ThresholdSpread    float64
	InitialMembraneMax float64
	StimulusGain       float64
	StimulusKick       float64
	FiringThreshold    float64
	PropagationGain    float64
}

// DefaultParams returns the standard leaky integrate-and-fire constants.
func DefaultParams() Params {
	return Params{
		MembraneCeiling:    1.2,
		NoiseAmplitude:     0.025,
		DriveGain:          0.02,
		RefractoryMembrane: 0.95,
		RefractorySpike:    0.85,
		RestingSpike:       0.92,
		RestingMembrane:    0.985,
		ResetMembrane:      0.2,
		RefractoryMin:      0.08,
		RefractoryMax:      0.16,
		ThresholdBase:      0.9,
		ThresholdSpread:    0.2,
		InitialMembraneMax: 0.4,
		StimulusGain:       0.1,
		StimulusKick:       0.5,
		FiringThreshold:    0.85,
		PropagationGain:    0.6,
	}
}

// ParamsFromConfig builds Params from the neuron section of the config.
func ParamsFromConfig(c config.NeuronConfig) Params {
	return Params{
		MembraneCeiling:    c.MembraneCeiling,
		NoiseAmplitude:     c.NoiseAmplitude,
		DriveGain:          c.DriveGain,
		RefractoryMembrane: c.RefractoryMembrane,
		RefractorySpike:    c.RefractorySpike,
		RestingSpike:       c.RestingSpike,
		RestingMembrane:    c.RestingMembrane,
		ResetMembrane:      c.ResetMembrane,
		RefractoryMin:      c.RefractoryMin,
		RefractoryMax:      c.RefractoryMax,
		ThresholdBase:      c.ThresholdBase,
		ThresholdSpread:    c.ThresholdSpread,
		InitialMembraneMax: c.InitialMembraneMax,
		StimulusGain:       c.StimulusGain,
		StimulusKick:       c.StimulusKick,
		FiringThreshold:    c.FiringThreshold,
		PropagationGain:    c.PropagationGain,
	}
}
