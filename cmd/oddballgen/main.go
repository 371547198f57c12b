// Command oddballgen synthesizes an oddball session recording: a train
// of frequency-modulated sweeps where the frequent standard rises and
// the rare deviant falls. It writes a WAV file plus a ground-truth
// archive for shaking down the extractor.
//
// Usage:
//
//	oddballgen [flags] <out.wav>
//
// Examples:
//
//	oddballgen session.wav
//	oddballgen -trials 120 -deviant 0.1 -seed 7 session.wav
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cortexlab/oddball/audio"
	"github.com/cortexlab/oddball/dsp/signal"
	"github.com/cortexlab/oddball/dsp/sweep"
	"github.com/cortexlab/oddball/storage"
)

func main() {
	trials := flag.Int("trials", 60, "number of stimulus presentations")
	rate := flag.Int("rate", 44100, "sample rate in Hz")
	duration := flag.Int("duration", 5000, "stimulus length in samples")
	gap := flag.Int("gap", 120000, "silence between stimuli in samples")
	lead := flag.Int("lead", 44100, "leading silence in samples")
	f1 := flag.Float64("f1", 4000, "sweep band lower edge in Hz")
	f2 := flag.Float64("f2", 16000, "sweep band upper edge in Hz")
	deviant := flag.Float64("deviant", 0.2, "probability of a downward (deviant) sweep")
	amplitude := flag.Float64("amp", 0.8, "peak amplitude of the written waveform")
	seed := flag.Int64("seed", 1, "random seed for the trial sequence")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: oddballgen [flags] <out.wav>\n\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "oddballgen: logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	outFile := flag.Arg(0)

	up := &sweep.LinearSweep{
		StartFreq:  *f1,
		EndFreq:    *f2,
		Duration:   float64(*duration) / float64(*rate),
		SampleRate: float64(*rate),
	}
	down := &sweep.LinearSweep{
		StartFreq:  *f2,
		EndFreq:    *f1,
		Duration:   float64(*duration) / float64(*rate),
		SampleRate: float64(*rate),
	}

	upTone, err := up.Generate()
	if err != nil {
		logger.Fatal("generate standard sweep", zap.Error(err))
	}
	downTone, err := down.Generate()
	if err != nil {
		logger.Fatal("generate deviant sweep", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(*seed))

	stimuli := make([][]float64, *trials)
	directions := make([]int, *trials)
	for i := range stimuli {
		if rng.Float64() < *deviant {
			stimuli[i] = downTone
			directions[i] = int(sweep.Down)
		} else {
			stimuli[i] = upTone
			directions[i] = int(sweep.Up)
		}
	}

	wave, onsets := signal.Train(*lead, *gap, stimuli...)

	wave, err = signal.Normalize(wave, *amplitude)
	if err != nil {
		logger.Fatal("normalize session", zap.Error(err))
	}

	if err := audio.WriteWAV(outFile, wave, *rate); err != nil {
		logger.Fatal("write session", zap.String("file", outFile), zap.Error(err))
	}

	truth := &storage.Archive{
		Source:        outFile,
		SampleRate:    *rate,
		SoundDuration: *duration,
		Onsets:        onsets,
		Directions:    directions,
		Labels:        sweep.Labels(),
	}

	truthFile := strings.TrimSuffix(outFile, ".wav") + ".truth.json"
	if err := storage.WriteArchive(truthFile, truth); err != nil {
		logger.Fatal("write ground truth", zap.String("file", truthFile), zap.Error(err))
	}

	logger.Info("session synthesized",
		zap.String("file", outFile),
		zap.Int("trials", *trials),
		zap.Int("samples", len(wave)),
		zap.String("truth", truthFile),
	)
}
