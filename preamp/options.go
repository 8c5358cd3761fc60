package preamp

import "log/slog"

// Config holds controller settings.
type Config struct {
	// AnalyserSize is the analysis window of each level analyser in samples.
	AnalyserSize int
	// TimeConstant is the smoothing time constant in seconds used for every
	// parameter change.
	TimeConstant float64
	Logger       *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the standard controller settings.
func DefaultConfig() Config {
	return Config{
		AnalyserSize: 1024,
		TimeConstant: 0.01,
	}
}

// WithAnalyserSize sets the level analyser window size.
func WithAnalyserSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.AnalyserSize = n
		}
	}
}

// WithTimeConstant sets the parameter smoothing time constant.
func WithTimeConstant(seconds float64) Option {
	return func(cfg *Config) {
		if seconds >= 0 {
			cfg.TimeConstant = seconds
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
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
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
