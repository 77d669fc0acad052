/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package core

import (
	"testing"
)

func TestHashPlaintextKnownAnswer(t *testing.T) {
	sum := HashPlaintext([]byte("hello"))
	const want = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := HashHex(sum); got != want {
		t.Errorf("HashHex = %s, want %s", got, want)
	}
}

func TestHashPlaintextEmpty(t *testing.T) {
	sum := HashPlaintext(nil)
	const want = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := HashHex(sum); got != want {
		t.Errorf("HashHex = %s, want %s", got, want)
	}
}

func TestVerifyPlaintextHash(t *testing.T) {
	data := []byte("some plaintext")
	sum := HashPlaintext(data)

	if !VerifyPlaintextHash(data, sum) {
		t.Error("hash of unchanged data must verify")
	}
	if VerifyPlaintextHash([]byte("some plaintexT"), sum) {
		t.Error("hash of altered data must not verify")
	}

	var zero [HashSize]byte
	if VerifyPlaintextHash(data, zero) {
		t.Error("zero hash must not verify")
	}
}
