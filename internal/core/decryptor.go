/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// decryptor.go: chunked container decryption pipeline for sandikita
package core

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	crypto "github.com/podszero/sandikita/internal/crypto"
	"github.com/podszero/sandikita/secure"
)

// Decryptor recovers plaintext from encrypted containers.
type Decryptor struct {
	passBuf  *crypto.SecureBuffer
	progress ProgressFunc
}

// DecryptResult is the outcome of one decryption.
type DecryptResult struct {
	Plaintext        []byte
	OriginalFilename string
	// Verified is true when the container carried a plaintext hash (v2)
	// and it matched. Legacy v1 containers decrypt with Verified false.
	Verified bool
	// PlaintextHashHex is the SHA-256 of the recovered plaintext.
	PlaintextHashHex string
}

func NewDecryptor(password []byte, opts ...Option) (*Decryptor, error) {
	if len(password) == 0 {
		return nil, crypto.WrapError("empty password", crypto.ErrKDFFailure)
	}
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	passBuf, err := crypto.NewSecureBufferFromBytes(password)
	if err != nil {
		return nil, fmt.Errorf("failed to create SecureBuffer for password: %w", err)
	}
	return &Decryptor{
		passBuf:  passBuf,
		progress: cfg.Progress,
	}, nil
}

func (d *Decryptor) report(percent float64, stage string) {
	if d.progress != nil {
		d.progress(percent, stage)
	}
}

// DecryptBuffer parses and decrypts a whole container. The on-wire chunk
// nonce is authoritative; the master nonce is not stored and chunk nonces
// are not re-derived on this side.
func (d *Decryptor) DecryptBuffer(ctx context.Context, container []byte) (*DecryptResult, error) {
	hdr, offset, err := ParseHeader(container)
	if err != nil {
		return nil, err
	}

	d.report(5, StageDerivingKey)
	master, err := DeriveMasterKey(d.passBuf.Data(), hdr.Salt[:], hdr.KDFParams)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(master)
	d.report(20, StageDerivingKey)

	plaintext := bytes.NewBuffer(make([]byte, 0, hdr.OriginalSize))

	for i := uint32(0); i < hdr.TotalChunks; i++ {
		if ctx.Err() != nil {
			return nil, crypto.ErrContextCanceled
		}

		if len(container)-offset < RecordPrefixSize {
			return nil, crypto.WrapError("truncated chunk record", crypto.ErrMalformedHeader)
		}
		encLen := binary.BigEndian.Uint32(container[offset : offset+4])
		nonce := container[offset+4 : offset+RecordPrefixSize]
		offset += RecordPrefixSize

		if encLen < TagSize+1 || uint64(encLen) > uint64(hdr.ChunkSize)+TagSize {
			return nil, crypto.WrapError("invalid chunk record length", crypto.ErrMalformedHeader)
		}
		if uint64(len(container)-offset) < uint64(encLen) {
			return nil, crypto.WrapError("chunk record extends past container", crypto.ErrMalformedHeader)
		}
		ciphertext := container[offset : offset+int(encLen)]
		offset += int(encLen)

		chunkKey := DeriveChunkKey(master, i)
		chunk, err := openChunk(hdr.Algorithm, chunkKey, nonce, ciphertext)
		secure.Zero(chunkKey)
		if err != nil {
			return nil, crypto.NewContainerError("decrypt", hdr.Filename, int(i), err)
		}
		plaintext.Write(chunk)

		d.report(20+75*float64(i+1)/float64(hdr.TotalChunks), StageDecrypting)
	}

	if offset != len(container) {
		return nil, crypto.WrapError("trailing bytes after final chunk record", crypto.ErrMalformedHeader)
	}
	if uint64(plaintext.Len()) != uint64(hdr.OriginalSize) {
		return nil, crypto.WrapError("decrypted size does not match header", crypto.ErrMalformedHeader)
	}

	d.report(95, StageVerifying)
	recovered := plaintext.Bytes()
	hash := HashPlaintext(recovered)

	verified := false
	if hdr.Version == Version2 {
		if !secure.SecureCompare(hash[:], hdr.PlaintextHash[:]) {
			return nil, crypto.NewContainerError("verify", hdr.Filename, -1, crypto.ErrIntegrityFailure)
		}
		verified = true
	}
	d.report(100, StageVerifying)

	return &DecryptResult{
		Plaintext:        recovered,
		OriginalFilename: hdr.Filename,
		Verified:         verified,
		PlaintextHashHex: HashHex(hash),
	}, nil
}

// DecryptStream reads a whole container from src, decrypts it, and writes
// the plaintext to dst.
func (d *Decryptor) DecryptStream(ctx context.Context, src io.Reader, dst io.Writer) (*DecryptResult, error) {
	container, err := io.ReadAll(src)
	if err != nil {
		return nil, crypto.WrapError("read container stream", err)
	}
	res, err := d.DecryptBuffer(ctx, container)
	if err != nil {
		return nil, err
	}
	if _, err := dst.Write(res.Plaintext); err != nil {
		return nil, crypto.WrapError("write plaintext", err)
	}
	return res, nil
}

// Destroy zeroes the buffered password and unlocks its memory.
func (d *Decryptor) Destroy() {
	if d.passBuf != nil {
		d.passBuf.Destroy()
	}
}
