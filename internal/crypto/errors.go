/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package crypto

import (
	"errors"
	"fmt"
	"os"
)

// Error kinds for container encryption and decryption. Callers match these
// with errors.Is; header, key-derivation, and chunk failures returned by
// the engine wrap exactly one kind. Invalid options (such as a chunk size
// out of range) and I/O errors carry no kind.
var (
	// ErrBadMagic means the first four bytes are not the SKTA signature.
	ErrBadMagic = errors.New("not a skita container (bad magic)")

	// ErrUnsupportedVersion means the version field is outside the recognized set.
	ErrUnsupportedVersion = errors.New("unsupported container version")

	// ErrUnsupportedAlgorithm means the algorithm id is unknown to this build.
	ErrUnsupportedAlgorithm = errors.New("unsupported encryption algorithm")

	// ErrUnsupportedKDF means the KDF id is unknown to this build.
	ErrUnsupportedKDF = errors.New("unsupported key derivation function")

	// ErrMalformedHeader means a length field implies a header or record
	// extending past the available bytes, or a numeric field is zero where
	// that is forbidden.
	ErrMalformedHeader = errors.New("malformed container")

	// ErrKDFFailure means the KDF rejected its parameters.
	ErrKDFFailure = errors.New("key derivation failed")

	// ErrAuthFailure means AEAD tag verification failed on a chunk. The
	// engine cannot distinguish a wrong password from a corrupted file.
	ErrAuthFailure = errors.New("wrong password or corrupted file")

	// ErrIntegrityFailure means every chunk authenticated but the whole
	// plaintext hash did not match the one stored in the header.
	ErrIntegrityFailure = errors.New("plaintext integrity check failed")

	// ErrInputTooLarge means the plaintext exceeds the 32-bit size field or
	// the filename exceeds its 16-bit length field.
	ErrInputTooLarge = errors.New("input too large for container format")

	// ErrContextCanceled means cooperative cancellation was honored between
	// chunks; no partial output was produced.
	ErrContextCanceled = errors.New("operation canceled")
)

// ContainerError carries the operation, container name, and chunk index
// alongside the underlying error kind.
type ContainerError struct {
	Op    string // Operation: "encrypt", "decrypt", "parse header", etc.
	Name  string // Filename or path being operated on
	Chunk int    // Chunk index if applicable (-1 otherwise)
	Err   error  // Underlying error
}

func (e *ContainerError) Error() string {
	if e.Chunk >= 0 {
		return fmt.Sprintf("%s %s (chunk %d): %v", e.Op, e.Name, e.Chunk, e.Err)
	}
	if e.Name != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ContainerError) Unwrap() error {
	return e.Err
}

// NewContainerError creates a new ContainerError
func NewContainerError(op, name string, chunk int, err error) *ContainerError {
	return &ContainerError{
		Op:    op,
		Name:  name,
		Chunk: chunk,
		Err:   err,
	}
}

// WrapError adds context to an error
func WrapError(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// SanitizeError reduces an engine error to a stable, user-presentable
// message with no internal details.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrBadMagic):
		return fmt.Errorf("not an encrypted container")
	case errors.Is(err, ErrAuthFailure):
		return fmt.Errorf("wrong password or corrupted file")
	case errors.Is(err, ErrIntegrityFailure):
		return fmt.Errorf("file contents failed verification")
	case errors.Is(err, ErrMalformedHeader), errors.Is(err, ErrUnsupportedVersion),
		errors.Is(err, ErrUnsupportedAlgorithm), errors.Is(err, ErrUnsupportedKDF):
		return fmt.Errorf("corrupted or unsupported container")
	case errors.Is(err, ErrInputTooLarge):
		return fmt.Errorf("file too large to encrypt")
	case errors.Is(err, ErrContextCanceled):
		return fmt.Errorf("operation canceled")
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("insufficient permissions")
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("file not found")
	default:
		// Generic error for unknown cases
		return fmt.Errorf("encryption operation failed")
	}
}
