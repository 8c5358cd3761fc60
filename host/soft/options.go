package soft

import "github.com/cwbudde/algo-preamp/preamp"

// Config holds context settings.
type Config struct {
	SampleRate float64
	// Quantum is the number of frames rendered per graph pass. Parameters
	// are evaluated once per quantum.
	Quantum int
	// Smoothing is the analyser averaging constant in [0, 1).
	Smoothing float64
	// MinDecibels and MaxDecibels map analyser magnitudes to 0 and 255.
	MinDecibels float64
	MaxDecibels float64
	StartState  preamp.ContextState
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig mirrors the defaults of a browser AudioContext.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		Quantum:     128,
		Smoothing:   0.8,
		MinDecibels: -100,
		MaxDecibels: -30,
		StartState:  preamp.StateSuspended,
	}
}

// WithSampleRate sets the context sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithQuantum sets the render quantum in frames.
func WithQuantum(frames int) Option {
	return func(cfg *Config) {
		if frames > 0 {
			cfg.Quantum = frames
		}
	}
}

// WithSmoothing sets the analyser averaging constant.
func WithSmoothing(s float64) Option {
	return func(cfg *Config) {
		if s >= 0 && s < 1 {
			cfg.Smoothing = s
		}
	}
}

// WithDecibelRange sets the analyser byte mapping range.
func WithDecibelRange(minDB, maxDB float64) Option {
	return func(cfg *Config) {
		if minDB < maxDB {
			cfg.MinDecibels = minDB
			cfg.MaxDecibels = maxDB
		}
	}
}

// WithStartState sets the initial context state. Browsers start suspended
// until a user gesture; StateRunning skips that.
func WithStartState(s preamp.ContextState) Option {
	return func(cfg *Config) {
		if s == preamp.StateSuspended || s == preamp.StateRunning {
			cfg.StartState = s
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
