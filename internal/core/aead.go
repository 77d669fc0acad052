/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// aead.go: per-chunk AEAD codec for sandikita
package core

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	crypto "github.com/podszero/sandikita/internal/crypto"
)

// newAEAD constructs the AEAD primitive for an algorithm id. Both ciphers
// take 256-bit keys, 96-bit nonces, and append 128-bit tags.
func newAEAD(alg Algorithm, key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key length: must be %d bytes, got %d", KeySize, len(key))
	}
	switch alg {
	case AlgorithmAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, crypto.WrapError("create cipher", err)
		}
		return cipher.NewGCM(block)
	case AlgorithmChaCha20Poly1305:
		return chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("algorithm id %d: %w", byte(alg), crypto.ErrUnsupportedAlgorithm)
	}
}

// sealChunk encrypts one chunk, returning ciphertext with the tag
// appended. Associated data is empty; the header is not bound to chunks.
func sealChunk(alg Algorithm, key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// openChunk decrypts one chunk. Tag mismatch surfaces as ErrAuthFailure;
// the engine cannot tell a wrong password from a corrupted container.
func openChunk(alg Algorithm, key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, crypto.ErrAuthFailure
	}
	return plaintext, nil
}
