/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// errors_test.go: error taxonomy tests for sandikita
package crypto_test

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	crypto "github.com/podszero/sandikita/internal/crypto"
)

func TestContainerErrorFormat(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  *crypto.ContainerError
		want string
	}{
		{
			name: "with chunk",
			err:  crypto.NewContainerError("decrypt", "notes.txt", 3, base),
			want: "decrypt notes.txt (chunk 3): boom",
		},
		{
			name: "without chunk",
			err:  crypto.NewContainerError("parse header", "notes.txt", -1, base),
			want: "parse header notes.txt: boom",
		},
		{
			name: "without name",
			err:  crypto.NewContainerError("encrypt", "", -1, base),
			want: "encrypt: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContainerErrorUnwrap(t *testing.T) {
	err := crypto.NewContainerError("decrypt", "x", 0, crypto.ErrAuthFailure)
	if !errors.Is(err, crypto.ErrAuthFailure) {
		t.Error("ContainerError should unwrap to its kind")
	}
}

func TestWrapError(t *testing.T) {
	if crypto.WrapError("ctx", nil) != nil {
		t.Error("WrapError(nil) should be nil")
	}

	wrapped := crypto.WrapError("read header", crypto.ErrMalformedHeader)
	if !errors.Is(wrapped, crypto.ErrMalformedHeader) {
		t.Error("wrapped error should match its kind")
	}
	if !strings.Contains(wrapped.Error(), "read header") {
		t.Errorf("wrapped error missing context: %q", wrapped.Error())
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	kinds := []error{
		crypto.ErrBadMagic,
		crypto.ErrUnsupportedVersion,
		crypto.ErrUnsupportedAlgorithm,
		crypto.ErrUnsupportedKDF,
		crypto.ErrMalformedHeader,
		crypto.ErrKDFFailure,
		crypto.ErrAuthFailure,
		crypto.ErrIntegrityFailure,
		crypto.ErrInputTooLarge,
		crypto.ErrContextCanceled,
	}

	for i, a := range kinds {
		for j, b := range kinds {
			if i != j && errors.Is(a, b) {
				t.Errorf("kinds %d and %d are not distinct: %v / %v", i, j, a, b)
			}
		}
	}
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"bad magic", fmt.Errorf("x: %w", crypto.ErrBadMagic), "not an encrypted container"},
		{"auth", crypto.NewContainerError("decrypt", "f", 0, crypto.ErrAuthFailure), "wrong password or corrupted file"},
		{"integrity", crypto.ErrIntegrityFailure, "file contents failed verification"},
		{"malformed", crypto.WrapError("x", crypto.ErrMalformedHeader), "corrupted or unsupported container"},
		{"version", crypto.ErrUnsupportedVersion, "corrupted or unsupported container"},
		{"too large", crypto.ErrInputTooLarge, "file too large to encrypt"},
		{"canceled", crypto.ErrContextCanceled, "operation canceled"},
		{"permission", os.ErrPermission, "insufficient permissions"},
		{"not exist", os.ErrNotExist, "file not found"},
		{"unknown", errors.New("internal detail"), "encryption operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := crypto.SanitizeError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("SanitizeError(nil) = %v", got)
				}
				return
			}
			if got.Error() != tt.want {
				t.Errorf("SanitizeError() = %q, want %q", got.Error(), tt.want)
			}
		})
	}
}

func TestSanitizeErrorHidesDetail(t *testing.T) {
	leaky := fmt.Errorf("argon2 at /home/user/secret/path: %w", errors.New("oom"))
	got := crypto.SanitizeError(leaky)
	if strings.Contains(got.Error(), "secret") {
		t.Errorf("sanitized error leaks detail: %q", got.Error())
	}
}
