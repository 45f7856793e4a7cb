package model

import (
	"errors"
	"fmt"
	"runtime"
)

var ErrInvalidConfig = errors.New("model: invalid configuration")

// Config carries the recognized training options. Zero is not a usable
// value for most fields; start from DefaultConfig and override.
type Config struct {
	// VectorSize is the word embedding width.
	VectorSize int
	// Window is the maximum context window radius around a target word.
	Window int
	// MinCount drops tokens occurring fewer times from the vocabulary.
	MinCount int
	// Alpha is the starting learning rate.
	Alpha float64
	// Sample is the subsampling threshold for frequent words; 0 disables
	// subsampling.
	Sample float64
	// Threads is the number of training workers.
	Threads int
	// MaxSentenceLength truncates longer sentences.
	MaxSentenceLength int
	// Iterations is the number of passes each worker makes over its
	// corpus partition.
	Iterations int
	// Seed is the base seed for the per-worker random generators.
	Seed int64
	// Binary selects the binary vector output format over text.
	Binary bool
}

func DefaultConfig() Config {
	return Config{
		VectorSize:        100,
		Window:            5,
		MinCount:          5,
		Alpha:             0.05,
		Sample:            1e-3,
		Threads:           runtime.NumCPU(),
		MaxSentenceLength: 1000,
		Iterations:        5,
		Binary:            true,
	}
}

// Validate surfaces bad settings before any matrix is allocated or any
// worker starts.
func (c Config) Validate() error {
	if c.VectorSize <= 0 {
		return fmt.Errorf("%w: vector size %d", ErrInvalidConfig, c.VectorSize)
	}
	if c.Window <= 0 {
		return fmt.Errorf("%w: window %d", ErrInvalidConfig, c.Window)
	}
	if c.Threads <= 0 {
		return fmt.Errorf("%w: thread count %d", ErrInvalidConfig, c.Threads)
	}
	if c.MaxSentenceLength <= 0 {
		return fmt.Errorf("%w: max sentence length %d", ErrInvalidConfig, c.MaxSentenceLength)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfig, c.Iterations)
	}
	return nil
}
