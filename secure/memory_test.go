/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// memory_test.go: memory hygiene tests for sandikita
package secure_test

import (
	"bytes"
	"crypto/rand"
	"runtime"
	"testing"

	"github.com/podszero/sandikita/secure"
)

func TestLockUnlockMemory(t *testing.T) {
	buf := make([]byte, 4096)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("failed to generate test data: %v", err)
	}

	// mlock may fail on systems with low resource limits; log, don't fail.
	if err := secure.LockMemory(buf); err != nil {
		t.Logf("LockMemory failed (may be expected on some systems): %v", err)
	}
	if err := secure.UnlockMemory(buf); err != nil {
		t.Logf("UnlockMemory failed: %v", err)
	}
}

func TestLockMemory_EmptyBuffer(t *testing.T) {
	buf := make([]byte, 0)

	if err := secure.LockMemory(buf); err != nil {
		t.Errorf("LockMemory failed for empty buffer: %v", err)
	}
	if err := secure.UnlockMemory(buf); err != nil {
		t.Errorf("UnlockMemory failed for empty buffer: %v", err)
	}
}

func TestZero(t *testing.T) {
	buf := make([]byte, 1024)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("failed to generate test data: %v", err)
	}

	allZeros := true
	for _, b := range buf {
		if b != 0 {
			allZeros = false
			break
		}
	}
	if allZeros {
		t.Fatal("test buffer is already all zeros")
	}

	secure.Zero(buf)

	for i, b := range buf {
		if b != 0 {
			t.Errorf("byte at index %d is not zero after Zero(): got %d", i, b)
		}
	}
}

func TestZero_EmptyBuffer(t *testing.T) {
	// Must not panic
	secure.Zero(nil)
	secure.Zero(make([]byte, 0))
}

func TestSecureCompare(t *testing.T) {
	tests := []struct {
		name     string
		a        []byte
		b        []byte
		expected bool
	}{
		{"equal slices", []byte("hello"), []byte("hello"), true},
		{"different slices", []byte("hello"), []byte("world"), false},
		{"different lengths", []byte("hello"), []byte("hi"), false},
		{"empty slices", []byte{}, []byte{}, true},
		{"one empty", []byte("hello"), []byte{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := secure.SecureCompare(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("SecureCompare(%q, %q) = %v, expected %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestMemoryLocking_CrossPlatform(t *testing.T) {
	buf := make([]byte, 8192)
	if _, err := rand.Read(buf); err != nil {
		t.Fatalf("failed to generate test data: %v", err)
	}

	original := make([]byte, len(buf))
	copy(original, buf)

	if err := secure.LockMemory(buf); err != nil {
		t.Logf("LockMemory returned error (may be expected): %v", err)
		if runtime.GOOS == "windows" {
			t.Errorf("expected LockMemory to succeed on Windows, got error: %v", err)
		}
	}
	if !bytes.Equal(buf, original) {
		t.Error("buffer data changed after LockMemory")
	}

	if err := secure.UnlockMemory(buf); err != nil {
		t.Logf("UnlockMemory returned error: %v", err)
		if runtime.GOOS == "windows" {
			t.Errorf("expected UnlockMemory to succeed on Windows, got error: %v", err)
		}
	}
	if !bytes.Equal(buf, original) {
		t.Error("buffer data changed after UnlockMemory")
	}
}
