/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// format.go: container format constants and header codec for sandikita
package core

import (
	"encoding/binary"
	"fmt"
	"math"

	crypto "github.com/podszero/sandikita/internal/crypto"
)

const (
	// MagicBytes is the container signature "SKTA".
	MagicBytes = "SKTA"

	// Version1 is the legacy format: header ends after the filename, no
	// plaintext hash. The encryptor never writes it (MarshalHeader can);
	// on read it is accepted and integrity is skipped.
	Version1 uint16 = 0x0001

	// Version2 is the current format: a 32-byte plaintext hash follows the
	// filename. Always written; the hash is mandatory on read.
	Version2 uint16 = 0x0002

	// NonceSize is the AEAD nonce size (AES-GCM and ChaCha20-Poly1305).
	NonceSize = 12

	// SaltSize is the KDF salt size stored in the header.
	SaltSize = 32

	// KeySize is the master and per-chunk key size (256-bit AEADs).
	KeySize = 32

	// TagSize is the AEAD authentication tag appended to each chunk.
	TagSize = 16

	// HashSize is the size of the raw SHA-256 plaintext hash.
	HashSize = 32

	// HeaderFixedSize is the header length up to and including the
	// filename-length field. The filename and the v2 hash follow it.
	// Layout (big-endian): magic(4) version(2) algorithm(1) kdf(1)
	// memory(4) iterations(4) parallelism(1) salt(32) chunkSize(4)
	// originalSize(4) totalChunks(4) filenameLen(2).
	HeaderFixedSize = 63

	// RecordPrefixSize is the per-chunk framing before the payload:
	// encrypted length (4) followed by the chunk nonce (12).
	RecordPrefixSize = 4 + NonceSize

	// MaxFilenameLen is the largest filename the 16-bit length field holds.
	MaxFilenameLen = 65535

	// MaxOriginalSize is the largest plaintext the 32-bit size field holds.
	MaxOriginalSize = math.MaxUint32

	// SuggestedExtension is appended to output filenames on encrypt.
	SuggestedExtension = ".skita"
)

// KDFID identifies the key derivation function in the header.
type KDFID uint8

// KDFArgon2id is the only KDF currently defined.
const KDFArgon2id KDFID = 0

// String returns the KDF name
func (k KDFID) String() string {
	if k == KDFArgon2id {
		return "Argon2id"
	}
	return "Unknown"
}

// KDFParams are the Argon2id cost parameters carried in the header.
type KDFParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
}

// Header is the parsed container header.
type Header struct {
	Version      uint16
	Algorithm    Algorithm
	KDF          KDFID
	KDFParams    KDFParams
	Salt         [SaltSize]byte
	ChunkSize    uint32
	OriginalSize uint32
	TotalChunks  uint32
	Filename     string
	// PlaintextHash holds the raw SHA-256 of the whole plaintext.
	// Only meaningful when Version == Version2.
	PlaintextHash [HashSize]byte
}

// Size returns the serialized header length in bytes.
func (h *Header) Size() int {
	n := HeaderFixedSize + len(h.Filename)
	if h.Version == Version2 {
		n += HashSize
	}
	return n
}

// chunkCount computes ceil(originalSize / chunkSize).
func chunkCount(originalSize, chunkSize uint32) uint32 {
	if originalSize == 0 {
		return 0
	}
	return (originalSize-1)/chunkSize + 1
}

// MarshalHeader serializes a header. The version, algorithm, and KDF must
// be in the recognized set and the filename must fit its length field.
func MarshalHeader(h *Header) ([]byte, error) {
	if h.Version != Version1 && h.Version != Version2 {
		return nil, crypto.WrapError("marshal header", crypto.ErrUnsupportedVersion)
	}
	if !h.Algorithm.IsSupported() {
		return nil, crypto.WrapError("marshal header", crypto.ErrUnsupportedAlgorithm)
	}
	if h.KDF != KDFArgon2id {
		return nil, crypto.WrapError("marshal header", crypto.ErrUnsupportedKDF)
	}
	if len(h.Filename) > MaxFilenameLen {
		return nil, fmt.Errorf("filename is %d bytes: %w", len(h.Filename), crypto.ErrInputTooLarge)
	}
	if h.ChunkSize == 0 {
		return nil, crypto.WrapError("marshal header: zero chunk size", crypto.ErrMalformedHeader)
	}
	if h.TotalChunks != chunkCount(h.OriginalSize, h.ChunkSize) {
		return nil, crypto.WrapError("marshal header: chunk count mismatch", crypto.ErrMalformedHeader)
	}

	buf := make([]byte, 0, h.Size())
	buf = append(buf, MagicBytes...)
	buf = binary.BigEndian.AppendUint16(buf, h.Version)
	buf = append(buf, byte(h.Algorithm), byte(h.KDF))
	buf = binary.BigEndian.AppendUint32(buf, h.KDFParams.MemoryKiB)
	buf = binary.BigEndian.AppendUint32(buf, h.KDFParams.Iterations)
	buf = append(buf, h.KDFParams.Parallelism)
	buf = append(buf, h.Salt[:]...)
	buf = binary.BigEndian.AppendUint32(buf, h.ChunkSize)
	buf = binary.BigEndian.AppendUint32(buf, h.OriginalSize)
	buf = binary.BigEndian.AppendUint32(buf, h.TotalChunks)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(h.Filename))) // #nosec G115 -- length checked against MaxFilenameLen above
	buf = append(buf, h.Filename...)
	if h.Version == Version2 {
		buf = append(buf, h.PlaintextHash[:]...)
	}
	return buf, nil
}

// ParseHeader parses a container header from the front of data and returns
// the header plus the number of bytes it consumed.
func ParseHeader(data []byte) (*Header, int, error) {
	if len(data) >= 4 && string(data[:4]) != MagicBytes {
		return nil, 0, crypto.ErrBadMagic
	}
	if len(data) < HeaderFixedSize {
		return nil, 0, crypto.WrapError("header truncated", crypto.ErrMalformedHeader)
	}

	h := &Header{
		Version:   binary.BigEndian.Uint16(data[4:6]),
		Algorithm: Algorithm(data[6]),
		KDF:       KDFID(data[7]),
		KDFParams: KDFParams{
			MemoryKiB:   binary.BigEndian.Uint32(data[8:12]),
			Iterations:  binary.BigEndian.Uint32(data[12:16]),
			Parallelism: data[16],
		},
		ChunkSize:    binary.BigEndian.Uint32(data[49:53]),
		OriginalSize: binary.BigEndian.Uint32(data[53:57]),
		TotalChunks:  binary.BigEndian.Uint32(data[57:61]),
	}
	copy(h.Salt[:], data[17:49])

	if h.Version != Version1 && h.Version != Version2 {
		return nil, 0, fmt.Errorf("version 0x%04x: %w", h.Version, crypto.ErrUnsupportedVersion)
	}
	if !h.Algorithm.IsSupported() {
		return nil, 0, fmt.Errorf("algorithm id %d: %w", byte(h.Algorithm), crypto.ErrUnsupportedAlgorithm)
	}
	if h.KDF != KDFArgon2id {
		return nil, 0, fmt.Errorf("kdf id %d: %w", byte(h.KDF), crypto.ErrUnsupportedKDF)
	}
	if h.KDFParams.MemoryKiB == 0 || h.KDFParams.Iterations == 0 || h.KDFParams.Parallelism == 0 {
		return nil, 0, crypto.WrapError("zero KDF parameter", crypto.ErrMalformedHeader)
	}
	if h.ChunkSize == 0 {
		return nil, 0, crypto.WrapError("zero chunk size", crypto.ErrMalformedHeader)
	}
	if h.TotalChunks != chunkCount(h.OriginalSize, h.ChunkSize) {
		return nil, 0, crypto.WrapError("chunk count does not match original size", crypto.ErrMalformedHeader)
	}

	nameLen := int(binary.BigEndian.Uint16(data[61:63]))
	consumed := HeaderFixedSize + nameLen
	if h.Version == Version2 {
		consumed += HashSize
	}
	if len(data) < consumed {
		return nil, 0, crypto.WrapError("filename or hash extends past container", crypto.ErrMalformedHeader)
	}
	h.Filename = string(data[HeaderFixedSize : HeaderFixedSize+nameLen])
	if h.Version == Version2 {
		copy(h.PlaintextHash[:], data[HeaderFixedSize+nameLen:consumed])
	}

	return h, consumed, nil
}
