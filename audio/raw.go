package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// ReadRawFloat64 loads a headerless little-endian float64 sample stream.
func ReadRawFloat64(path string) ([]float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: read %s: %w", path, err)
	}

	if len(b)%8 != 0 {
		return nil, fmt.Errorf("audio: %s: truncated float64 stream (%d bytes)", path, len(b))
	}

	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}

	return out, nil
}

// WriteRawFloat64 stores samples as a headerless little-endian float64
// stream. Round-trips through ReadRawFloat64 are bit-exact.
func WriteRawFloat64(path string, samples []float64) error {
	b := make([]byte, 8*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint64(b[8*i:], math.Float64bits(v))
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("audio: write %s: %w", path, err)
	}

	return nil
}
