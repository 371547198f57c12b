// Package extract runs the two-stage event extraction pipeline: onset
// detection over the recorded sound channel, then per-trial sweep
// direction classification.
//
// Both stages are pure functions over the immutable input waveform; the
// pipeline adds parameter validation and nothing else. Degenerate input
// (an empty or silent recording) produces empty output, not an error.
package extract

import (
	"errors"

	"github.com/cortexlab/oddball/dsp/onset"
	"github.com/cortexlab/oddball/dsp/sweep"
)

// Errors returned by Config.Validate.
var (
	ErrInvalidThreshold = errors.New("extract: signal threshold must be positive")
	ErrInvalidPeriod    = errors.New("extract: period threshold must be positive")
	ErrInvalidDuration  = errors.New("extract: sound duration must be a positive even sample count")
)

// Config holds the fixed per-session parameters of the pipeline.
type Config struct {
	// SignalThreshold is the amplitude jump that marks a stimulus onset.
	SignalThreshold float64

	// PeriodThreshold is the minimum sample count between consecutive
	// raw onset candidates.
	PeriodThreshold int

	// SoundDuration is the stimulus window length in samples. It must be
	// even: the classifier splits it into two equal halves.
	SoundDuration int

	// Workers > 1 classifies trials concurrently. The output is
	// identical to the sequential path.
	Workers int
}

// DefaultConfig returns the parameters of a standard recording session.
func DefaultConfig() Config {
	return Config{
		SignalThreshold: 0.1,
		PeriodThreshold: 100000,
		SoundDuration:   5000,
	}
}

// Validate checks the parameters the pipeline cannot run without.
func (c Config) Validate() error {
	if !(c.SignalThreshold > 0) {
		return ErrInvalidThreshold
	}

	if c.PeriodThreshold <= 0 {
		return ErrInvalidPeriod
	}

	if c.SoundDuration <= 0 || c.SoundDuration%2 != 0 {
		return ErrInvalidDuration
	}

	return nil
}

// Option mutates a Config.
type Option func(*Config)

// WithSignalThreshold sets the onset amplitude threshold.
func WithSignalThreshold(threshold float64) Option {
	return func(c *Config) { c.SignalThreshold = threshold }
}

// WithPeriodThreshold sets the onset refractory period in samples.
func WithPeriodThreshold(period int) Option {
	return func(c *Config) { c.PeriodThreshold = period }
}

// WithSoundDuration sets the stimulus window length in samples.
func WithSoundDuration(samples int) Option {
	return func(c *Config) { c.SoundDuration = samples }
}

// WithWorkers sets the number of concurrent classification workers.
func WithWorkers(workers int) Option {
	return func(c *Config) { c.Workers = workers }
}

// Result is the pipeline output: onset sample indices, the positionally
// aligned direction codes, and the constant label map.
type Result struct {
	Onsets     []int
	Directions []int
	Labels     map[string]int
}

// Run extracts stimulus events from the recorded sound channel using
// the default config modified by opts.
func Run(signal []float64, opts ...Option) (Result, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return RunConfig(signal, cfg)
}

// RunConfig extracts stimulus events with an explicit config.
func RunConfig(signal []float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	onsets := onset.Detect(signal, onset.Config{
		SignalThreshold: cfg.SignalThreshold,
		MinPeriod:       cfg.PeriodThreshold,
	})

	var dirs []sweep.Direction
	if cfg.Workers > 1 {
		dirs = sweep.ClassifyParallel(signal, onsets, cfg.SoundDuration, cfg.Workers)
	} else {
		dirs = sweep.Classify(signal, onsets, cfg.SoundDuration)
	}

	codes := make([]int, len(dirs))
	for i, d := range dirs {
		codes[i] = int(d)
	}

	return Result{
		Onsets:     onsets,
		Directions: codes,
		Labels:     sweep.Labels(),
	}, nil
}
