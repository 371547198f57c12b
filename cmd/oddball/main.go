// Command oddball extracts stimulus events from a recorded sound
// channel: onset sample indices plus an up/down classification of each
// frequency-modulated sweep.
//
// Usage:
//
//	oddball [flags] <recording>
//
// The recording is a WAV file or a headerless little-endian float64
// stream (.f64). Results are written as a JSON archive next to the
// input unless -o is given; -db additionally appends the session to a
// sqlite database.
//
// Examples:
//
//	oddball session07.wav
//	oddball -threshold 0.2 -period 80000 -duration 4000 session07.wav
//	oddball -o events.json -db sessions.sqlite3 soundch.f64
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cortexlab/oddball/audio"
	"github.com/cortexlab/oddball/extract"
	"github.com/cortexlab/oddball/storage"
)

func main() {
	threshold := flag.Float64("threshold", 0.1, "amplitude jump marking a stimulus onset")
	period := flag.Int("period", 100000, "minimum samples between onset candidates")
	duration := flag.Int("duration", 5000, "stimulus window length in samples (even)")
	workers := flag.Int("workers", 0, "concurrent classification workers (0 = sequential)")
	rate := flag.Int("rate", 0, "sample rate for raw input (WAV input carries its own)")
	outFile := flag.String("o", "", "output archive path (default <input>.events.json)")
	dbFile := flag.String("db", "", "optional sqlite session database")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "oddball: logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	inFile := flag.Arg(0)

	start := time.Now()

	signal, sampleRate, err := loadRecording(inFile, *rate)
	if err != nil {
		logger.Fatal("load recording", zap.String("file", inFile), zap.Error(err))
	}

	logger.Info("recording loaded",
		zap.String("file", inFile),
		zap.Int("samples", len(signal)),
		zap.Int("sample_rate", sampleRate),
	)

	result, err := extract.Run(signal,
		extract.WithSignalThreshold(*threshold),
		extract.WithPeriodThreshold(*period),
		extract.WithSoundDuration(*duration),
		extract.WithWorkers(*workers),
	)
	if err != nil {
		logger.Fatal("extract events", zap.Error(err))
	}

	up, down := 0, 0
	for _, d := range result.Directions {
		if d == result.Labels["down"] {
			down++
		} else {
			up++
		}
	}

	logger.Info("events extracted",
		zap.Int("trials", len(result.Onsets)),
		zap.Int("up", up),
		zap.Int("down", down),
		zap.Duration("elapsed", time.Since(start)),
	)

	archive := &storage.Archive{
		Source:          inFile,
		SampleRate:      sampleRate,
		SignalThreshold: *threshold,
		PeriodThreshold: *period,
		SoundDuration:   *duration,
		Onsets:          result.Onsets,
		Directions:      result.Directions,
		Labels:          result.Labels,
	}

	out := *outFile
	if out == "" {
		out = archivePath(inFile)
	}

	if err := storage.WriteArchive(out, archive); err != nil {
		logger.Fatal("write archive", zap.String("file", out), zap.Error(err))
	}
	logger.Info("archive written", zap.String("file", out))

	if *dbFile != "" {
		store, err := storage.Open(*dbFile)
		if err != nil {
			logger.Fatal("open session db", zap.String("file", *dbFile), zap.Error(err))
		}
		defer store.Close()

		id, err := store.SaveSession(archive)
		if err != nil {
			logger.Fatal("save session", zap.Error(err))
		}
		logger.Info("session stored", zap.String("db", *dbFile), zap.Uint("session", id))
	}
}

// loadRecording reads a waveform by file extension. WAV files carry
// their own sample rate; raw streams report rawRate (0 if unknown).
func loadRecording(file string, rawRate int) ([]float64, int, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".wav":
		return audio.ReadWAV(file)
	default:
		signal, err := audio.ReadRawFloat64(file)
		return signal, rawRate, err
	}
}

// archivePath derives the default output name: the input with its
// extension replaced by ".events.json".
func archivePath(inFile string) string {
	return strings.TrimSuffix(inFile, filepath.Ext(inFile)) + ".events.json"
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: oddball [flags] <recording>\n\n")
	fmt.Fprintf(os.Stderr, "Extracts stimulus onsets and sweep directions from a sound channel.\n")
	fmt.Fprintf(os.Stderr, "The recording is a WAV file or a raw little-endian float64 stream.\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}
