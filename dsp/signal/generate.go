// Package signal generates deterministic waveforms for tests and
// simulated oddball sessions.
package signal

import (
	"fmt"
	"math"
	"math/rand"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSampleRate sets the generation sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(g *Generator) {
		if sampleRate > 0 {
			g.sampleRate = sampleRate
		}
	}
}

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		sampleRate: 48000,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the generator sample rate in Hz.
func (g *Generator) SampleRate() float64 {
	return g.sampleRate
}

// Sine generates a sine wave starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Tone generates a cosine-phase tone. Starting at the amplitude peak
// gives the waveform a hard attack, so an onset detector watching the
// first difference sees the full jump at the very first sample.
func (g *Generator) Tone(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("tone samples must be > 0: %d", samples)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = amplitude * math.Cos(step*float64(i))
	}
	return out, nil
}

// StepTone generates a two-segment tone whose frequency jumps from f1
// to f2 halfway through — a coarse FM sweep with a hard attack on both
// halves. samples must be even.
func (g *Generator) StepTone(f1, f2, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 || samples%2 != 0 {
		return nil, fmt.Errorf("step tone samples must be positive and even: %d", samples)
	}

	half := samples / 2

	first, err := g.Tone(f1, amplitude, half)
	if err != nil {
		return nil, err
	}

	second, err := g.Tone(f2, amplitude, half)
	if err != nil {
		return nil, err
	}

	return append(first, second...), nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Train assembles stimuli into one session waveform: lead samples of
// silence, then each stimulus followed by gap samples of silence. It
// returns the waveform and the sample offset of each stimulus start.
func Train(lead, gap int, stimuli ...[]float64) ([]float64, []int) {
	if lead < 0 {
		lead = 0
	}
	if gap < 0 {
		gap = 0
	}

	total := lead
	for _, s := range stimuli {
		total += len(s) + gap
	}

	wave := make([]float64, total)
	onsets := make([]int, len(stimuli))

	pos := lead
	for i, s := range stimuli {
		onsets[i] = pos
		copy(wave[pos:], s)
		pos += len(s) + gap
	}

	return wave, onsets
}

// Normalize scales data to the target peak amplitude and returns a new
// slice. An all-zero input stays zero.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
