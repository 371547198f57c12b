// Package storage persists extraction results: a JSON archive per run
// and an optional sqlite database aggregating sessions.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMisaligned is returned when an archive's direction sequence does
// not line up 1:1 with its onset sequence.
var ErrMisaligned = errors.New("storage: directions not aligned with onsets")

// Archive is the persisted output of one extraction run: the three
// values the pipeline produces plus enough provenance to reproduce them.
type Archive struct {
	Source          string         `json:"source"`
	SampleRate      int            `json:"sample_rate,omitempty"`
	SignalThreshold float64        `json:"signal_threshold"`
	PeriodThreshold int            `json:"period_threshold"`
	SoundDuration   int            `json:"sound_duration"`
	Onsets          []int          `json:"onsets"`
	Directions      []int          `json:"directions"`
	Labels          map[string]int `json:"labels"`
}

// Validate checks the positional alignment invariant.
func (a *Archive) Validate() error {
	if len(a.Onsets) != len(a.Directions) {
		return ErrMisaligned
	}
	return nil
}

// WriteArchive stores the archive as indented JSON.
func WriteArchive(path string, a *Archive) error {
	if err := a.Validate(); err != nil {
		return err
	}

	buf, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal archive: %w", err)
	}

	if err := os.WriteFile(path, append(buf, '\n'), 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}

	return nil
}

// ReadArchive loads an archive written by WriteArchive. Integer arrays
// round-trip exactly.
func ReadArchive(path string) (*Archive, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}

	var a Archive
	if err := json.Unmarshal(buf, &a); err != nil {
		return nil, fmt.Errorf("storage: parse %s: %w", path, err)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return &a, nil
}
