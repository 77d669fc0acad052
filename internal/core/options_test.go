/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package core

import (
	"testing"
)

func TestAlgorithmString(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		want string
	}{
		{AlgorithmAESGCM, "AES-256-GCM"},
		{AlgorithmChaCha20Poly1305, "ChaCha20-Poly1305"},
		{Algorithm(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.alg.String(); got != tt.want {
			t.Errorf("Algorithm(%d).String() = %q, want %q", tt.alg, got, tt.want)
		}
	}
}

func TestAlgorithmIsSupported(t *testing.T) {
	if !AlgorithmAESGCM.IsSupported() || !AlgorithmChaCha20Poly1305.IsSupported() {
		t.Error("both defined algorithms must be supported")
	}
	if Algorithm(9).IsSupported() {
		t.Error("unknown algorithm id must not be supported")
	}
}

func TestWithChunkSizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"minimum", MinChunkSize, false},
		{"default", DefaultChunkSize, false},
		{"maximum", MaxChunkSize, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"above maximum", MaxChunkSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt, err := WithChunkSize(tt.size)
			if tt.wantErr {
				if err == nil {
					t.Errorf("WithChunkSize(%d) expected error", tt.size)
				}
				return
			}
			if err != nil {
				t.Fatalf("WithChunkSize(%d) failed: %v", tt.size, err)
			}
			cfg := &Config{}
			opt(cfg)
			if cfg.ChunkSize != tt.size {
				t.Errorf("ChunkSize = %d, want %d", cfg.ChunkSize, tt.size)
			}
		})
	}
}

func TestWithChunkSizeEnvLimit(t *testing.T) {
	t.Setenv("SANDIKITA_CHUNKSIZE_LIMIT", "1KiB")

	if _, err := WithChunkSize(2048); err == nil {
		t.Error("chunk size above the env limit should be rejected")
	}
	if _, err := WithChunkSize(512); err != nil {
		t.Errorf("chunk size below the env limit rejected: %v", err)
	}
}

func TestOptionDefaults(t *testing.T) {
	enc, err := NewEncryptor([]byte("pw"))
	if err != nil {
		t.Fatalf("NewEncryptor failed: %v", err)
	}
	defer enc.Destroy()

	if enc.chunkSize != DefaultChunkSize {
		t.Errorf("default chunk size = %d, want %d", enc.chunkSize, DefaultChunkSize)
	}
	if enc.algorithm != AlgorithmAESGCM {
		t.Errorf("default algorithm = %v, want AES-256-GCM", enc.algorithm)
	}
	if enc.kdf != DefaultKDFParams() {
		t.Errorf("default KDF params = %+v", enc.kdf)
	}
}

func TestWithOptionsApply(t *testing.T) {
	sizeOpt, err := WithChunkSize(64)
	if err != nil {
		t.Fatalf("WithChunkSize failed: %v", err)
	}

	enc, err := NewEncryptor([]byte("pw"),
		sizeOpt,
		WithAlgorithm(AlgorithmChaCha20Poly1305),
		WithKDFParams(fastKDF),
	)
	if err != nil {
		t.Fatalf("NewEncryptor failed: %v", err)
	}
	defer enc.Destroy()

	if enc.chunkSize != 64 {
		t.Errorf("chunk size = %d, want 64", enc.chunkSize)
	}
	if enc.algorithm != AlgorithmChaCha20Poly1305 {
		t.Errorf("algorithm = %v, want ChaCha20-Poly1305", enc.algorithm)
	}
	if enc.kdf != fastKDF {
		t.Errorf("KDF params = %+v, want %+v", enc.kdf, fastKDF)
	}
}
