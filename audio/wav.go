// Package audio loads and stores sampled waveforms.
//
// The lab's hierarchical recording container is out of scope here; any
// exporter that produces a WAV file or a raw little-endian float64
// stream feeds the pipeline.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrNotWAV is returned when a file is not a decodable RIFF/WAVE file.
var ErrNotWAV = errors.New("audio: not a valid WAV file")

// ReadWAV loads a WAV file as float64 samples normalized to [-1, 1] and
// returns the sample rate. Multi-channel files are reduced to the first
// channel — the sound monitor is recorded on a single channel.
func ReadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("audio: %s: %w", path, ErrNotWAV)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, 0, fmt.Errorf("audio: %s: unsupported bit depth %d", path, bitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("audio: decode %s: %w", path, err)
	}

	channels := 1
	if buf.Format != nil && buf.Format.NumChannels > 1 {
		channels = buf.Format.NumChannels
	}

	maxVal := float64(int(1) << (uint(bitDepth) - 1))

	out := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		out = append(out, float64(buf.Data[i])/maxVal)
	}

	return out, int(dec.SampleRate), nil
}

// WriteWAV stores samples as 16-bit mono PCM. Samples outside [-1, 1]
// are clipped.
func WriteWAV(path string, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("audio: sample rate must be > 0: %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create %s: %w", path, err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}

	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		buf.Data[i] = int(math.Round(v * 32767))
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("audio: encode %s: %w", path, err)
	}

	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("audio: finalize %s: %w", path, err)
	}

	return f.Close()
}
