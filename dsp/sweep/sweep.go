package sweep

import (
	"errors"
	"math"
)

// Errors returned by sweep synthesis.
var (
	ErrInvalidFrequency  = errors.New("sweep: frequency must be positive")
	ErrInvalidDuration   = errors.New("sweep: duration must be positive")
	ErrInvalidSampleRate = errors.New("sweep: sample rate must be positive")
)

// LinearSweep generates a linear FM sweep (chirp).
//
// Unlike measurement sweeps, stimulus sweeps may fall as well as rise,
// so StartFreq and EndFreq are unordered: StartFreq > EndFreq produces
// a downward sweep.
type LinearSweep struct {
	StartFreq  float64 // Hz at the first sample
	EndFreq    float64 // Hz at the last sample
	Duration   float64 // seconds
	SampleRate float64 // Hz
}

// Validate checks that the LinearSweep parameters are valid.
func (s *LinearSweep) Validate() error {
	if s.StartFreq <= 0 || s.EndFreq <= 0 {
		return ErrInvalidFrequency
	}

	if s.Duration <= 0 {
		return ErrInvalidDuration
	}

	if s.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	return nil
}

// Generate creates the sweep signal.
//
// The instantaneous frequency moves linearly from StartFreq to EndFreq:
//
//	f(t) = f1 + (f2-f1) * t / T
//
// giving the phase integral
//
//	x(t) = cos(2π * (f1*t + (f2-f1)/(2T) * t²))
//
// Cosine phase starts the stimulus at its amplitude peak. The hard
// attack puts the full first-difference jump on the first sample, so an
// onset detector watching the sound channel reports exactly the sample
// where the stimulus was placed.
func (s *LinearSweep) Generate() ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	n := int(math.Round(s.Duration * s.SampleRate))
	out := make([]float64, n)

	T := s.Duration
	k := (s.EndFreq - s.StartFreq) / T

	for i := range out {
		t := float64(i) / s.SampleRate
		phase := 2 * math.Pi * (s.StartFreq*t + 0.5*k*t*t)
		out[i] = math.Cos(phase)
	}

	return out, nil
}
