/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// key.go: key derivation and per-chunk key/nonce schedule for sandikita
package core

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strconv"

	"golang.org/x/crypto/argon2"

	crypto "github.com/podszero/sandikita/internal/crypto"
)

const (
	// Argon2id defaults (OWASP recommendations for interactive use)

	// DefaultKDFMemoryKiB is the default memory cost (64 MiB)
	DefaultKDFMemoryKiB = 64 * 1024

	// DefaultKDFIterations is the default time cost
	DefaultKDFIterations = 3

	// DefaultKDFParallelism is the default lane count
	DefaultKDFParallelism = 4
)

// DefaultKDFParams returns the default Argon2id cost parameters.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		MemoryKiB:   DefaultKDFMemoryKiB,
		Iterations:  DefaultKDFIterations,
		Parallelism: DefaultKDFParallelism,
	}
}

// DeriveMasterKey derives the 32-byte master secret from a password and
// salt using Argon2id. The caller must securely zero the key after use.
//
// Parameter validation enforces the library minimums, not a policy floor:
// decryption must accept whatever cost parameters a container header
// carries, as long as Argon2id itself can run them.
func DeriveMasterKey(password, salt []byte, p KDFParams) ([]byte, error) {
	if len(password) == 0 {
		return nil, crypto.WrapError("empty password", crypto.ErrKDFFailure)
	}
	if len(salt) < 16 {
		return nil, fmt.Errorf("salt must be at least 16 bytes, got %d: %w", len(salt), crypto.ErrKDFFailure)
	}
	if p.Iterations < 1 {
		return nil, crypto.WrapError("time cost must be at least 1", crypto.ErrKDFFailure)
	}
	if p.Parallelism < 1 {
		return nil, crypto.WrapError("parallelism must be at least 1", crypto.ErrKDFFailure)
	}
	// Argon2 requires at least 8 KiB per lane.
	if p.MemoryKiB < 8*uint32(p.Parallelism) {
		return nil, fmt.Errorf("memory cost %d KiB below minimum for %d lanes: %w",
			p.MemoryKiB, p.Parallelism, crypto.ErrKDFFailure)
	}

	return argon2.IDKey(password, salt, p.Iterations, p.MemoryKiB, p.Parallelism, KeySize), nil
}

// DeriveChunkKey derives the per-chunk subkey as
// SHA-256(master || "chunk-" + decimal(index)). Infallible and pure.
func DeriveChunkKey(master []byte, index uint32) []byte {
	h := sha256.New()
	h.Write(master)
	h.Write([]byte("chunk-" + strconv.FormatUint(uint64(index), 10)))
	return h.Sum(nil)
}

// DeriveChunkNonce derives the per-chunk nonce as the first 8 bytes of the
// master nonce followed by the big-endian chunk index. Infallible and pure.
func DeriveChunkNonce(masterNonce []byte, index uint32) []byte {
	nonce := make([]byte, NonceSize)
	copy(nonce, masterNonce[:8])
	binary.BigEndian.PutUint32(nonce[8:], index)
	return nonce
}

// GenerateSalt generates a fresh 32-byte KDF salt.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateMasterNonce generates a fresh 12-byte master nonce. Only its
// first 8 bytes flow into chunk nonces; it is never stored directly.
func GenerateMasterNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate master nonce: %w", err)
	}
	return nonce, nil
}
