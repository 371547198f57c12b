package sweep

import (
	"errors"
	"testing"

	"github.com/cortexlab/oddball/internal/testutil"
)

// trial builds one stimulus window of length 2*half whose first half is
// a tone at firstBin and second half a tone at secondBin (bins of the
// half-length spectrum).
func trial(firstBin, secondBin, half int) []float64 {
	out := make([]float64, 0, 2*half)
	out = append(out, testutil.CosineBurst(firstBin, 1.0, half)...)
	out = append(out, testutil.CosineBurst(secondBin, 1.0, half)...)
	return out
}

func TestClassifyDown(t *testing.T) {
	// First half dominant at bin 5, second at bin 2: falling frequency.
	sig := trial(5, 2, 64)

	got := Classify(sig, []int{0}, 128)
	if len(got) != 1 || got[0] != Down {
		t.Fatalf("got %v, want [Down]", got)
	}
}

func TestClassifyUp(t *testing.T) {
	sig := trial(2, 5, 64)

	got := Classify(sig, []int{0}, 128)
	if len(got) != 1 || got[0] != Up {
		t.Fatalf("got %v, want [Up]", got)
	}
}

func TestClassifyEqualBinsTieUp(t *testing.T) {
	sig := trial(4, 4, 64)

	got := Classify(sig, []int{0}, 128)
	if got[0] != Up {
		t.Fatalf("equal dominant bins must classify Up, got %v", got[0])
	}
}

func TestClassifySilenceUp(t *testing.T) {
	// An all-zero window has dominant bin 0 in both halves.
	sig := make([]float64, 256)

	got := Classify(sig, []int{0, 100}, 128)
	for i, d := range got {
		if d != Up {
			t.Fatalf("trial %d: silence must classify Up, got %v", i, d)
		}
	}
}

func TestClassifyAlignedWithOnsets(t *testing.T) {
	sig := trial(5, 2, 64)
	onsets := []int{0, 5, 500, -3}

	got := Classify(sig, onsets, 128)
	if len(got) != len(onsets) {
		t.Fatalf("directions length %d, onsets length %d", len(got), len(onsets))
	}

	if got := Classify(sig, nil, 128); len(got) != 0 {
		t.Fatalf("no onsets must give no directions, got %v", got)
	}
}

func TestClassifyTruncatedTrailingWindow(t *testing.T) {
	// Onset 60 samples before the end of a high-frequency tone with a
	// 128-sample window: the first half is truncated to 60 samples, the
	// second half is entirely missing. Policy: classify what remains.
	// The truncated first half still has a nonzero dominant bin; the
	// empty second half has dominant bin 0, so the trial goes Down.
	sig := make([]float64, 100)
	copy(sig[40:], testutil.CosineBurst(15, 1.0, 60))

	got := Classify(sig, []int{40}, 128)
	if got[0] != Down {
		t.Fatalf("truncated trial: got %v, want Down", got[0])
	}
}

func TestClassifyFullyTruncatedWindow(t *testing.T) {
	// Onset beyond the end of the recording: both halves empty, both
	// dominant bins 0, tie classifies Up.
	sig := make([]float64, 10)

	got := Classify(sig, []int{10, 50}, 128)
	for i, d := range got {
		if d != Up {
			t.Fatalf("trial %d: got %v, want Up", i, d)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	sig := append(trial(2, 9, 64), trial(9, 2, 64)...)
	onsets := []int{0, 128}

	first := Classify(sig, onsets, 128)
	second := Classify(sig, onsets, 128)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("trial %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestClassifyParallelMatchesSequential(t *testing.T) {
	half := 64

	var sig []float64
	var onsets []int
	bins := []int{2, 9, 7, 3, 11, 4, 6, 10}
	for i := 0; i+1 < len(bins); i++ {
		onsets = append(onsets, len(sig))
		sig = append(sig, trial(bins[i], bins[i+1], half)...)
	}

	want := Classify(sig, onsets, 2*half)

	for _, workers := range []int{0, 1, 2, 3, 16} {
		got := ClassifyParallel(sig, onsets, 2*half, workers)
		if len(got) != len(want) {
			t.Fatalf("workers=%d: length %d, want %d", workers, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("workers=%d trial %d: got %v, want %v", workers, i, got[i], want[i])
			}
		}
	}
}

func TestLabelsConstant(t *testing.T) {
	labels := Labels()
	if len(labels) != 2 || labels["up"] != 0 || labels["down"] != 1 {
		t.Fatalf("unexpected label map: %v", labels)
	}
}

func TestDirectionString(t *testing.T) {
	if Up.String() != "up" || Down.String() != "down" {
		t.Fatalf("unexpected direction names: %q, %q", Up.String(), Down.String())
	}
}

func TestLinearSweepGenerate(t *testing.T) {
	s := &LinearSweep{StartFreq: 1000, EndFreq: 4000, Duration: 0.5, SampleRate: 16000}

	out, err := s.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(out) != 8000 {
		t.Fatalf("length = %d, want 8000", len(out))
	}

	// Cosine phase: the stimulus attacks at full amplitude.
	if out[0] != 1 {
		t.Fatalf("first sample = %v, want 1", out[0])
	}

	again, err := s.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, again, out, 0)
}

func TestLinearSweepHardAttack(t *testing.T) {
	cases := []struct {
		name  string
		sweep LinearSweep
	}{
		{"ascending", LinearSweep{StartFreq: 1000, EndFreq: 4000, Duration: 0.1, SampleRate: 16000}},
		{"descending", LinearSweep{StartFreq: 4000, EndFreq: 1000, Duration: 0.1, SampleRate: 16000}},
	}

	for _, c := range cases {
		out, err := c.sweep.Generate()
		if err != nil {
			t.Fatalf("%s: generate: %v", c.name, err)
		}
		if out[0] != 1 {
			t.Fatalf("%s: first sample = %v, want 1", c.name, out[0])
		}
	}
}

func TestLinearSweepDescendingAllowed(t *testing.T) {
	// Deviant stimuli fall in frequency; StartFreq > EndFreq is valid.
	s := &LinearSweep{StartFreq: 4000, EndFreq: 1000, Duration: 0.1, SampleRate: 16000}

	if err := s.Validate(); err != nil {
		t.Fatalf("descending sweep rejected: %v", err)
	}

	out, err := s.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out) != 1600 {
		t.Fatalf("length = %d, want 1600", len(out))
	}
}

func TestLinearSweepValidate(t *testing.T) {
	cases := []struct {
		name  string
		sweep LinearSweep
		want  error
	}{
		{"zero start", LinearSweep{EndFreq: 1, Duration: 1, SampleRate: 1}, ErrInvalidFrequency},
		{"zero end", LinearSweep{StartFreq: 1, Duration: 1, SampleRate: 1}, ErrInvalidFrequency},
		{"zero duration", LinearSweep{StartFreq: 1, EndFreq: 2, SampleRate: 1}, ErrInvalidDuration},
		{"zero rate", LinearSweep{StartFreq: 1, EndFreq: 2, Duration: 1}, ErrInvalidSampleRate},
	}

	for _, c := range cases {
		if err := c.sweep.Validate(); !errors.Is(err, c.want) {
			t.Fatalf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}
