// Package onset detects stimulus onsets in a recorded sound channel.
//
// An onset is a sample whose first difference exceeds a fixed amplitude
// threshold. Detection runs in two passes: a differencing pass collects
// every threshold crossing as a candidate, then a refractory pass drops
// candidates that follow their predecessor too closely.
//
// The refractory gap is measured between consecutive raw candidates, not
// between accepted onsets: a dropped candidate still becomes the gap
// reference for the next one. With rapidly spiking input this can retain
// an onset that sits closer than one period to the last accepted onset.
// That behavior is intentional and matches the reference recordings; see
// the package tests for the exact cases.
package onset

import "errors"

// Errors returned by Config.Validate.
var (
	ErrInvalidThreshold = errors.New("onset: signal threshold must be positive")
	ErrInvalidPeriod    = errors.New("onset: minimum period must be positive")
)

// Config holds the detection parameters for one recording session.
type Config struct {
	// SignalThreshold is the minimum first-difference jump that marks a
	// candidate onset.
	SignalThreshold float64

	// MinPeriod is the refractory distance in samples between consecutive
	// raw candidates.
	MinPeriod int
}

// DefaultConfig returns the parameters used for a standard session
// recorded at the usual monitor gain.
func DefaultConfig() Config {
	return Config{
		SignalThreshold: 0.1,
		MinPeriod:       100000,
	}
}

// Validate checks that the parameters are usable.
func (c Config) Validate() error {
	if !(c.SignalThreshold > 0) {
		return ErrInvalidThreshold
	}

	if c.MinPeriod <= 0 {
		return ErrInvalidPeriod
	}

	return nil
}

// Detect returns the ordered sample indices of detected onsets.
//
// The result is strictly increasing. An empty or non-rising signal
// yields an empty result; Detect itself never fails, degenerate
// parameters simply produce degenerate output (a threshold of zero
// flags every strictly rising sample).
func Detect(signal []float64, cfg Config) []int {
	candidates := rawCandidates(signal, cfg.SignalThreshold)
	if len(candidates) == 0 {
		return nil
	}

	onsets := make([]int, 0, len(candidates))

	// The first candidate is compared against a virtual predecessor one
	// full period earlier, so it always passes.
	last := candidates[0] - cfg.MinPeriod
	for _, c := range candidates {
		if c-last >= cfg.MinPeriod {
			onsets = append(onsets, c)
		}
		// Gap reference advances on every raw candidate, accepted or not.
		last = c
	}

	return onsets
}

// rawCandidates returns every index whose first difference strictly
// exceeds threshold. The difference at index 0 is defined as 0, so the
// first sample can never be a candidate.
func rawCandidates(signal []float64, threshold float64) []int {
	if len(signal) == 0 {
		return nil
	}

	var out []int

	prev := signal[0]
	for i, v := range signal {
		if v-prev > threshold {
			out = append(out, i)
		}
		prev = v
	}

	return out
}
