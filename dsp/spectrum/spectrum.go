// Package spectrum provides one-sided magnitude spectra and dominant-bin
// lookup for trial windows.
//
// The package does not implement FFT itself. Power-of-two block lengths go
// through an algo-fft plan; any other length falls back to the real-input
// transform in go-dsp, which handles arbitrary sizes. Both paths yield the
// same non-negative-frequency magnitude bins.
package spectrum

import (
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// The split re/im scratch is pooled, so in steady state only the output
// slice allocates.
func Magnitude(in []complex128) []float64 {
	n := len(in)
	if n == 0 {
		return nil
	}

	buf := scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}

	re := buf.data[:n]
	im := buf.data[n : 2*n]

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, n)
	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}

// MagnitudeSpectrum returns the one-sided magnitude spectrum of block:
// bins 0 (DC) through Nyquist, len(block)/2+1 values.
//
// An empty block has no spectrum and returns nil.
func MagnitudeSpectrum(block []float64) []float64 {
	n := len(block)
	if n == 0 {
		return nil
	}

	bins := n/2 + 1

	if isPowerOfTwo(n) {
		if mag, err := planMagnitude(block, bins); err == nil {
			return mag
		}
	}

	return Magnitude(fft.FFTReal(block)[:bins])
}

// planMagnitude computes the one-sided magnitude spectrum through an
// algo-fft plan. Only called for power-of-two lengths.
func planMagnitude(block []float64, bins int) ([]float64, error) {
	plan, err := algofft.NewPlan64(len(block))
	if err != nil {
		return nil, err
	}

	in := make([]complex128, len(block))
	for i, v := range block {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, len(block))
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	return Magnitude(out[:bins]), nil
}

// DominantBin returns the index of the maximum magnitude bin. Ties
// resolve to the lowest index. An empty spectrum has dominant bin 0.
func DominantBin(mag []float64) int {
	if len(mag) == 0 {
		return 0
	}
	return floats.MaxIdx(mag)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
