// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Neuron     NeuronConfig     `yaml:"neuron"`
	Topology   TopologyConfig   `yaml:"topology"`
	Camera     CameraConfig     `yaml:"camera"`
	Render     RenderConfig     `yaml:"render"`
	Remote     RemoteConfig     `yaml:"remote"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Record     RecordConfig     `yaml:"record"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The canvas size is fixed at startup.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds the user-adjustable settings and their limits.
type SimulationConfig struct {
	SpikeRate    float64 `yaml:"spike_rate"`     // Initial base spike rate [0, max_spike_rate]
	Connectivity float64 `yaml:"connectivity"`   // Initial connectivity density [0, 1]
	Fade         float64 `yaml:"fade"`           // Initial visual fade [0, 1]
	NeuronCount  int     `yaml:"neuron_count"`   // Population size per generation
	MinSpikeStep float64 `yaml:"min_spike_step"` // Smallest rate increase applied by a bump
	MaxSpikeRate float64 `yaml:"max_spike_rate"` // Upper clamp for the base spike rate
	CounterStep  float64 `yaml:"counter_step"`   // Display counter increment per bump
	MaxFrameDT   float64 `yaml:"max_frame_dt"`   // Frame time clamp in seconds
	DefaultDT    float64 `yaml:"default_dt"`     // Frame time used when none is measurable
}

// NeuronConfig holds the neuron update constants.
type NeuronConfig struct {
	MembraneCeiling    float64 `yaml:"membrane_ceiling"`
	NoiseAmplitude     float64 `yaml:"noise_amplitude"`     // Noise is uniform in ±amplitude
	DriveGain          float64 `yaml:"drive_gain"`          // Drive = spike_rate * gain
	RefractoryMembrane float64 `yaml:"refractory_membrane"` // Membrane decay while refractory
	RefractorySpike    float64 `yaml:"refractory_spike"`    // Spike decay while refractory
	RestingSpike       float64 `yaml:"resting_spike"`       // Spike decay when not firing
	RestingMembrane    float64 `yaml:"resting_membrane"`    // Membrane decay when not firing
	ResetMembrane      float64 `yaml:"reset_membrane"`      // Membrane after a fire
	RefractoryMin      float64 `yaml:"refractory_min"`      // Seconds
	RefractoryMax      float64 `yaml:"refractory_max"`      // Seconds
	ThresholdBase      float64 `yaml:"threshold_base"`
	ThresholdSpread    float64 `yaml:"threshold_spread"`
	InitialMembraneMax float64 `yaml:"initial_membrane_max"`
	StimulusGain       float64 `yaml:"stimulus_gain"`    // Stimulus probability = spike_rate * gain
	StimulusKick       float64 `yaml:"stimulus_kick"`    // Membrane increment per stimulus
	FiringThreshold    float64 `yaml:"firing_threshold"` // Spike level that propagates
	PropagationGain    float64 `yaml:"propagation_gain"` // Weight multiplier on propagation
	ExcitatoryFraction float64 `yaml:"excitatory_fraction"`
}

// TopologyConfig holds the brain-shape generator parameters.
type TopologyConfig struct {
	OutlineFraction    float64 `yaml:"outline_fraction"`
	CerebellumFraction float64 `yaml:"cerebellum_fraction"`
	SpinalFraction     float64 `yaml:"spinal_fraction"`
	OutlineThickness   float64 `yaml:"outline_thickness"` // Max offset along the curve normal
	DepthJitter        float64 `yaml:"depth_jitter"`
	DepthScale         float64 `yaml:"depth_scale"`    // Peak depth of the radial falloff
	DepthExponent      float64 `yaml:"depth_exponent"` // Profile exponent of the radial falloff
	RetryFactor        int     `yaml:"retry_factor"`   // Filler attempts per missing neuron
	ConnectionGain     float64 `yaml:"connection_gain"`
	WeightMin          float64 `yaml:"weight_min"`
	WeightMax          float64 `yaml:"weight_max"`
	StrictInterior     bool    `yaml:"strict_interior"` // Reject filler points outside the silhouette
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	MinZoom   float64 `yaml:"min_zoom"`
	MaxZoom   float64 `yaml:"max_zoom"`
	ZoomStep  float64 `yaml:"zoom_step"`
	Damping   float64 `yaml:"damping"`
	DragYaw   float64 `yaml:"drag_yaw"`   // Angle Y per pixel of horizontal drag
	DragPitch float64 `yaml:"drag_pitch"` // Angle X per pixel of vertical drag
	SpinYaw   float64 `yaml:"spin_yaw"`   // Velocity Y per pixel of horizontal drag
	SpinPitch float64 `yaml:"spin_pitch"` // Velocity X per pixel of vertical drag
	MinDepth  float64 `yaml:"min_depth"`
}

// RenderConfig holds colors and thresholds used by the scene renderer.
type RenderConfig struct {
	Background          [3]uint8 `yaml:"background"`
	BackgroundAlpha     float64  `yaml:"background_alpha"`
	FadeAlpha           float64  `yaml:"fade_alpha"`
	VisibilityThreshold float64  `yaml:"visibility_threshold"`
	ExcitatoryHue       float64  `yaml:"excitatory_hue"`
	InhibitoryHue       float64  `yaml:"inhibitory_hue"`
	ExcitatoryColor     [3]uint8 `yaml:"excitatory_color"`
	InhibitoryColor     [3]uint8 `yaml:"inhibitory_color"`
	ExcitatoryGlow      [3]uint8 `yaml:"excitatory_glow"`
	InhibitoryGlow      [3]uint8 `yaml:"inhibitory_glow"`
	ExcitatoryRadius    float64  `yaml:"excitatory_radius"`
	InhibitoryRadius    float64  `yaml:"inhibitory_radius"`
	ShowHUD             bool     `yaml:"show_hud"`
}

// RemoteConfig holds the external event channel settings.
type RemoteConfig struct {
	Enabled   bool          `yaml:"enabled"`
	URL       string        `yaml:"url"`
	Backoff   time.Duration `yaml:"backoff"`
	RelayAddr string        `yaml:"relay_addr"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of simulated time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// RecordConfig holds headless video capture settings.
type RecordConfig struct {
	FPS     int `yaml:"fps"`
	Quality int `yaml:"quality"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW   float64 // Screen.Width as float64
	ScreenH   float64 // Screen.Height as float64
	CenterX   float64 // Canvas center
	CenterY   float64
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration.
// Panics if Init() has not been called.
func Cfg() *Config {
	if global == nil {
		panic("config.Init() must be called before config.Cfg()")
	}
	return global
}

// Load reads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings that would make generation or projection degenerate.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Simulation.NeuronCount < 0 {
		return fmt.Errorf("simulation.neuron_count must not be negative, got %d", c.Simulation.NeuronCount)
	}
	if c.Camera.Distance <= 0 {
		return fmt.Errorf("camera.distance must be positive, got %v", c.Camera.Distance)
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MinZoom > c.Camera.MaxZoom {
		return fmt.Errorf("camera zoom range invalid: [%v, %v]", c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	c.Derived.CenterX = c.Derived.ScreenW / 2
	c.Derived.CenterY = c.Derived.ScreenH / 2
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Settings start inside their legal ranges
	c.Simulation.SpikeRate = clamp(c.Simulation.SpikeRate, 0, c.Simulation.MaxSpikeRate)
	c.Simulation.Connectivity = clamp(c.Simulation.Connectivity, 0, 1)
	c.Simulation.Fade = clamp(c.Simulation.Fade, 0, 1)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
