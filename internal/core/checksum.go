/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package core

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/podszero/sandikita/secure"
)

// HashPlaintext computes the SHA-256 of the whole plaintext, the value
// stored raw in v2 headers.
func HashPlaintext(data []byte) [HashSize]byte {
	return sha256.Sum256(data)
}

// HashHex encodes a plaintext hash as 64 lowercase hex characters, the
// form returned to callers.
func HashHex(sum [HashSize]byte) string {
	return hex.EncodeToString(sum[:])
}

// VerifyPlaintextHash recomputes the hash of data and compares it to want
// in constant time.
func VerifyPlaintextHash(data []byte, want [HashSize]byte) bool {
	got := sha256.Sum256(data)
	return secure.SecureCompare(got[:], want[:])
}
