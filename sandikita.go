/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package sandikita implements a password-based encrypted container
// format (.skita) with authenticated encryption, chunked processing, and
// end-to-end integrity verification.
//
// A single symmetric password is the only secret. The master key is
// derived with Argon2id; each 4 MiB chunk is sealed under an independent
// subkey and deterministic nonce with AES-256-GCM or ChaCha20-Poly1305,
// and a SHA-256 of the whole plaintext is embedded in the header and
// checked after decryption.
//
// # Basic Usage
//
//	ctx := context.Background()
//	password := []byte("correct horse battery staple")
//
//	res, err := sandikita.Encrypt(ctx, data, "report.pdf", password)
//	if err != nil {
//	    return err
//	}
//	// res.Container holds the .skita bytes; res.OutputFilename is
//	// "report.pdf.skita".
//
//	out, err := sandikita.Decrypt(ctx, res.Container, password)
//	if err != nil {
//	    return err
//	}
//	// out.Plaintext == data, out.Verified == true
//
// # Errors
//
// Container, key-derivation, and chunk failures wrap one of the exported
// error kinds (ErrAuthFailure, ErrBadMagic, ErrIntegrityFailure, ...) and
// can be matched with errors.Is; invalid options and file I/O errors do
// not wrap a kind. A failed AEAD tag is reported as ErrAuthFailure; the engine
// cannot distinguish a wrong password from a corrupted container.
//
// # Filenames
//
// The original filename is stored verbatim as UTF-8 and returned on
// decryption. The engine never interprets path separators; callers must
// sanitize the stored name before writing to disk. DecryptFile does this
// by keeping only the base name.
package sandikita

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/podszero/sandikita/internal/core"
	crypto "github.com/podszero/sandikita/internal/crypto"
	"github.com/podszero/sandikita/secure"
)

// Option defines functional options for encryption/decryption (re-exported from internal/core).
type Option = core.Option

// Algorithm identifies an AEAD cipher (re-exported from internal/core).
type Algorithm = core.Algorithm

// KDFParams are Argon2id cost parameters (re-exported from internal/core).
type KDFParams = core.KDFParams

// Header is a parsed container header (re-exported from internal/core).
type Header = core.Header

// ProgressFunc receives (percent, stage) updates (re-exported from internal/core).
type ProgressFunc = core.ProgressFunc

// EncryptResult is the outcome of Encrypt (re-exported from internal/core).
type EncryptResult = core.EncryptResult

// DecryptResult is the outcome of Decrypt (re-exported from internal/core).
type DecryptResult = core.DecryptResult

const (
	AlgorithmAESGCM           = core.AlgorithmAESGCM
	AlgorithmChaCha20Poly1305 = core.AlgorithmChaCha20Poly1305

	DefaultChunkSize      = core.DefaultChunkSize
	DefaultKDFMemoryKiB   = core.DefaultKDFMemoryKiB
	DefaultKDFIterations  = core.DefaultKDFIterations
	DefaultKDFParallelism = core.DefaultKDFParallelism

	SuggestedExtension = core.SuggestedExtension
)

// Options re-exported from internal/core.
var (
	WithAlgorithm = core.WithAlgorithm
	WithKDFParams = core.WithKDFParams
	WithChunkSize = core.WithChunkSize
	WithProgress  = core.WithProgress
)

// Error kinds re-exported from internal/crypto; match with errors.Is.
var (
	ErrBadMagic             = crypto.ErrBadMagic
	ErrUnsupportedVersion   = crypto.ErrUnsupportedVersion
	ErrUnsupportedAlgorithm = crypto.ErrUnsupportedAlgorithm
	ErrUnsupportedKDF       = crypto.ErrUnsupportedKDF
	ErrMalformedHeader      = crypto.ErrMalformedHeader
	ErrKDFFailure           = crypto.ErrKDFFailure
	ErrAuthFailure          = crypto.ErrAuthFailure
	ErrIntegrityFailure     = crypto.ErrIntegrityFailure
	ErrInputTooLarge        = crypto.ErrInputTooLarge
	ErrCanceled             = crypto.ErrContextCanceled
)

// SanitizeError reduces an engine error to a stable user-facing message.
var SanitizeError = crypto.SanitizeError

// ZeroKey securely zeroes sensitive byte slices. Always use defer ZeroKey(password).
var ZeroKey = secure.Zero

// DefaultKDFParams returns the default Argon2id cost parameters.
var DefaultKDFParams = core.DefaultKDFParams

// Encrypt seals plaintext into a .skita container.
func Encrypt(ctx context.Context, plaintext []byte, filename string, password []byte, opts ...Option) (*EncryptResult, error) {
	enc, err := core.NewEncryptor(password, opts...)
	if err != nil {
		return nil, err
	}
	defer enc.Destroy()
	return enc.EncryptBuffer(ctx, plaintext, filename)
}

// Decrypt opens a .skita container and verifies the plaintext hash when
// the container carries one.
func Decrypt(ctx context.Context, container []byte, password []byte, opts ...Option) (*DecryptResult, error) {
	dec, err := core.NewDecryptor(password, opts...)
	if err != nil {
		return nil, err
	}
	defer dec.Destroy()
	return dec.DecryptBuffer(ctx, container)
}

// Inspect parses a container header without a password. It reports format
// metadata only; nothing about the payload is authenticated at this point.
func Inspect(container []byte) (*Header, error) {
	hdr, _, err := core.ParseHeader(container)
	return hdr, err
}

// EncryptFile encrypts srcPath into dstPath. When dstPath is empty the
// container is written next to the source with the ".skita" extension.
// The stored filename is the source's base name.
func EncryptFile(ctx context.Context, srcPath, dstPath string, password []byte, opts ...Option) (*EncryptResult, error) {
	plaintext, err := os.ReadFile(srcPath) // #nosec G304 -- file path provided by caller, library purpose is file encryption
	if err != nil {
		return nil, crypto.WrapError("read source file", err)
	}

	res, err := Encrypt(ctx, plaintext, filepath.Base(srcPath), password, opts...)
	if err != nil {
		return nil, err
	}

	if dstPath == "" {
		dstPath = srcPath + SuggestedExtension
	}
	if err := os.WriteFile(dstPath, res.Container, 0o600); err != nil {
		return nil, crypto.WrapError("write container file", err)
	}
	return res, nil
}

// DecryptFile decrypts srcPath into dstPath. When dstPath is empty the
// stored original filename is sanitized to its base name and written to
// the container's directory; a stored name that reduces to nothing is
// rejected rather than guessed.
func DecryptFile(ctx context.Context, srcPath, dstPath string, password []byte, opts ...Option) (*DecryptResult, error) {
	container, err := os.ReadFile(srcPath) // #nosec G304 -- file path provided by caller, library purpose is file decryption
	if err != nil {
		return nil, crypto.WrapError("read container file", err)
	}

	res, err := Decrypt(ctx, container, password, opts...)
	if err != nil {
		return nil, err
	}

	if dstPath == "" {
		name := SanitizeFilename(res.OriginalFilename)
		if name == "" {
			return nil, fmt.Errorf("container has no usable filename; pass an explicit destination")
		}
		dstPath = filepath.Join(filepath.Dir(srcPath), name)
	}
	if err := os.WriteFile(dstPath, res.Plaintext, 0o600); err != nil {
		return nil, crypto.WrapError("write plaintext file", err)
	}
	return res, nil
}

// SanitizeFilename strips directory components and traversal sequences
// from a stored filename, returning "" when nothing safe remains.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	switch name {
	case ".", "..", "/", "":
		return ""
	}
	return name
}
