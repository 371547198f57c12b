package sweep

import (
	"sync"

	"github.com/cortexlab/oddball/dsp/spectrum"
)

// Direction labels one trial's sweep as rising or falling.
type Direction int

// The two direction codes. The numeric values are part of the persisted
// output format and must not change.
const (
	Up   Direction = 0
	Down Direction = 1
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Labels returns the canonical name-to-code mapping persisted alongside
// extraction results.
func Labels() map[string]int {
	return map[string]int{
		Up.String():   int(Up),
		Down.String(): int(Down),
	}
}

// Classify labels the trial starting at each onset.
//
// For onset o and window length W, the first half spans [o, o+W/2) and
// the second [o+W/2, o+W). The trial is Down when the first half's
// dominant frequency bin strictly exceeds the second half's, Up
// otherwise — equality, and therefore silence, classifies Up.
//
// Windows reaching past the end of the signal are clamped; an entirely
// missing half has dominant bin 0. The result is always positionally
// aligned 1:1 with onsets.
func Classify(signal []float64, onsets []int, windowLen int) []Direction {
	if len(onsets) == 0 {
		return nil
	}

	out := make([]Direction, len(onsets))
	for i, o := range onsets {
		out[i] = classifyTrial(signal, o, windowLen)
	}

	return out
}

// ClassifyParallel is Classify fanned out over the given number of
// workers. Trials are independent: each worker reads disjoint read-only
// windows and writes disjoint pre-sized output slots, so the only
// synchronization is the final join. Output is identical to Classify.
func ClassifyParallel(signal []float64, onsets []int, windowLen, workers int) []Direction {
	if workers <= 1 || len(onsets) < 2 {
		return Classify(signal, onsets, windowLen)
	}

	if workers > len(onsets) {
		workers = len(onsets)
	}

	out := make([]Direction, len(onsets))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < len(onsets); i += workers {
				out[i] = classifyTrial(signal, onsets[i], windowLen)
			}
		}(w)
	}
	wg.Wait()

	return out
}

func classifyTrial(signal []float64, onset, windowLen int) Direction {
	half := windowLen / 2

	first := spectrum.DominantBin(spectrum.MagnitudeSpectrum(clampWindow(signal, onset, half)))
	second := spectrum.DominantBin(spectrum.MagnitudeSpectrum(clampWindow(signal, onset+half, half)))

	if first > second {
		return Down
	}
	return Up
}

// clampWindow returns the window [start, start+n) truncated to the
// signal bounds. Trailing trials near the end of a recording classify
// on whatever samples remain.
func clampWindow(signal []float64, start, n int) []float64 {
	if n <= 0 || start < 0 || start >= len(signal) {
		return nil
	}

	end := start + n
	if end > len(signal) {
		end = len(signal)
	}

	return signal[start:end]
}
