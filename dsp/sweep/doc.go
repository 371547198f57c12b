// Package sweep classifies frequency-modulated sweep stimuli and
// synthesizes them for tests and simulated sessions.
//
// Classification splits each trial's fixed-duration window into two
// adjacent halves and compares the dominant frequency bin of their
// magnitude spectra. A sweep's instantaneous frequency falls over time
// for a downward sweep and rises for an upward one, so the coarse
// dominant bin of each half is a cheap, amplitude-insensitive proxy for
// direction that avoids full time-frequency analysis.
package sweep
