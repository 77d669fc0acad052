/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// options.go: configuration options for the sandikita engine
package core

import (
	"errors"
	"math"
	"os"

	"github.com/dustin/go-humanize"
)

// Algorithm represents a cryptographic algorithm. The values are the
// on-wire algorithm ids in the container header.
type Algorithm uint8

const (
	// AlgorithmAESGCM is AES-256-GCM (default)
	AlgorithmAESGCM Algorithm = 0

	// AlgorithmChaCha20Poly1305 is ChaCha20-Poly1305
	AlgorithmChaCha20Poly1305 Algorithm = 1
)

// String returns the algorithm name
func (a Algorithm) String() string {
	switch a {
	case AlgorithmAESGCM:
		return "AES-256-GCM"
	case AlgorithmChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	default:
		return "Unknown"
	}
}

// IsSupported returns true if the algorithm is currently implemented
func (a Algorithm) IsSupported() bool {
	return a == AlgorithmAESGCM || a == AlgorithmChaCha20Poly1305
}

// ProgressFunc receives progress updates at stage and chunk boundaries.
// Percent is in [0, 100] and never decreases within one operation. The
// callback may be invoked synchronously from the chunk loop.
type ProgressFunc func(percent float64, stage string)

// Stage labels passed to ProgressFunc.
const (
	StageHashing     = "hashing"
	StageDerivingKey = "deriving-key"
	StageEncrypting  = "encrypting"
	StageDecrypting  = "decrypting"
	StageVerifying   = "verifying"
)

type Config struct {
	ChunkSize int
	Algorithm Algorithm
	KDF       KDFParams
	Progress  ProgressFunc
}

// Option defines functional options for encryption/decryption (algorithm, KDF cost, progress, chunk size)
type Option func(*Config)

const (
	MinChunkSize = 1 // Minimum valid chunk size

	// DefaultChunkSize is the cleartext bytes per chunk. Interoperable
	// containers use 4 MiB; tests may shrink it to exercise multi-chunk
	// paths cheaply.
	DefaultChunkSize = 4 * 1024 * 1024

	// MaxChunkSize bounds chunk sizes this implementation will write.
	// The chunk size in a header being read is not checked against it.
	MaxChunkSize = 64 * 1024 * 1024
)

// WithChunkSize sets the cleartext chunk size.
func WithChunkSize(size int) (Option, error) {
	// Check for environment variable override; default to MaxChunkSize
	maxChunkSize := MaxChunkSize
	if envLimit, exists := os.LookupEnv("SANDIKITA_CHUNKSIZE_LIMIT"); exists {
		if limit, err := humanize.ParseBytes(envLimit); err == nil && limit > 0 {
			// G115: Prevent integer overflow conversion uint64 -> int
			if limit > uint64(math.MaxInt) {
				return nil, errors.New("SANDIKITA_CHUNKSIZE_LIMIT too large: exceeds int max value")
			}
			maxChunkSize = int(limit)
		}
	}

	if size < MinChunkSize || size > maxChunkSize {
		return nil, errors.New("invalid chunk size: must be between 1 byte and the maximum limit")
	}

	return func(cfg *Config) {
		cfg.ChunkSize = size
	}, nil
}

// WithProgress sets a progress callback, invoked at stage transitions and
// after every chunk with a percent in [0, 100] and a stage label.
func WithProgress(cb ProgressFunc) Option {
	return func(cfg *Config) {
		cfg.Progress = cb
	}
}

// WithAlgorithm sets the encryption algorithm (default: AES-256-GCM).
func WithAlgorithm(alg Algorithm) Option {
	return func(cfg *Config) {
		cfg.Algorithm = alg
	}
}

// WithKDFParams sets the Argon2id cost parameters used for encryption.
// Decryption always uses the parameters stored in the container header.
func WithKDFParams(p KDFParams) Option {
	return func(cfg *Config) {
		cfg.KDF = p
	}
}
