package sweep

import (
	"testing"

	"github.com/cortexlab/oddball/internal/testutil"
)

func benchSession(trials, windowLen int) ([]float64, []int) {
	half := windowLen / 2

	var sig []float64
	onsets := make([]int, 0, trials)
	for i := 0; i < trials; i++ {
		onsets = append(onsets, len(sig))
		sig = append(sig, testutil.CosineBurst(3+i%7, 1.0, half)...)
		sig = append(sig, testutil.CosineBurst(9-i%7, 1.0, half)...)
	}
	return sig, onsets
}

func BenchmarkClassify(b *testing.B) {
	sig, onsets := benchSession(64, 4096)

	b.ResetTimer()

	for b.Loop() {
		Classify(sig, onsets, 4096)
	}
}

func BenchmarkClassifyParallel(b *testing.B) {
	sig, onsets := benchSession(64, 4096)

	b.ResetTimer()

	for b.Loop() {
		ClassifyParallel(sig, onsets, 4096, 4)
	}
}
