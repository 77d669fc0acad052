/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package crypto

import (
	"sync"

	"github.com/podszero/sandikita/secure"
)

// SecureBuffer provides memory-safe storage for passwords and derived keys.
type SecureBuffer struct {
	buf    []byte
	mu     sync.Mutex
	zeroed bool
	unlock func()
}

// NewSecureBufferFromBytes creates a SecureBuffer holding a copy of b.
// It attempts to lock the memory to prevent swapping (best effort).
func NewSecureBufferFromBytes(b []byte) (*SecureBuffer, error) {
	buf := make([]byte, len(b))
	copy(buf, b)

	// Locking is best effort: without it the buffer still works, it may
	// just be swapped to disk under memory pressure.
	unlock := func() {}
	if err := secure.LockMemory(buf); err == nil {
		unlock = func() {
			_ = secure.UnlockMemory(buf)
		}
	}

	return &SecureBuffer{
		buf:    buf,
		unlock: unlock,
	}, nil
}

// Data returns the buffer contents.
func (s *SecureBuffer) Data() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

// Destroy zeroes the buffer, unlocks memory, and marks it destroyed.
func (s *SecureBuffer) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.zeroed {
		secure.Zero(s.buf)
		s.zeroed = true

		if s.unlock != nil {
			s.unlock()
		}
	}
}
