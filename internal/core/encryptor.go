/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// encryptor.go: chunked container encryption pipeline for sandikita
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

// Encryptor assembles encrypted containers from plaintext. One Encryptor
// may be reused; each call is self-contained and generates fresh salt and
// master nonce.
type Encryptor struct {
	passBuf   *crypto.SecureBuffer
	chunkSize int
	algorithm Algorithm
	kdf       KDFParams
	progress  ProgressFunc
}

// EncryptResult is the outcome of one encryption.
type EncryptResult struct {
	// Container is the assembled header plus chunk records.
	Container []byte
	// OutputFilename is the suggested name: the original plus ".skita".
	OutputFilename string
	// PlaintextHashHex is the SHA-256 of the input as lowercase hex.
	PlaintextHashHex string
}

func NewEncryptor(password []byte, opts ...Option) (*Encryptor, error) {
	if len(password) == 0 {
		return nil, crypto.WrapError("empty password", crypto.ErrKDFFailure)
	}
	cfg := &Config{
		ChunkSize: DefaultChunkSize,
		Algorithm: AlgorithmAESGCM,
		KDF:       DefaultKDFParams(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.ChunkSize < MinChunkSize || cfg.ChunkSize > MaxChunkSize {
		return nil, fmt.Errorf("invalid chunk size: must be between %d and %d bytes, got %d", MinChunkSize, MaxChunkSize, cfg.ChunkSize)
	}
	if !cfg.Algorithm.IsSupported() {
		return nil, fmt.Errorf("algorithm id %d: %w", byte(cfg.Algorithm), crypto.ErrUnsupportedAlgorithm)
	}
	passBuf, err := crypto.NewSecureBufferFromBytes(password)
	if err != nil {
		return nil, fmt.Errorf("failed to create SecureBuffer for password: %w", err)
	}
	return &Encryptor{
		passBuf:   passBuf,
		chunkSize: cfg.ChunkSize,
		algorithm: cfg.Algorithm,
		kdf:       cfg.KDF,
		progress:  cfg.Progress,
	}, nil
}

func (e *Encryptor) report(percent float64, stage string) {
	if e.progress != nil {
		e.progress(percent, stage)
	}
}

// EncryptBuffer encrypts plaintext into a v2 container carrying filename
// and the whole-plaintext hash.
func (e *Encryptor) EncryptBuffer(ctx context.Context, plaintext []byte, filename string) (*EncryptResult, error) {
	if uint64(len(plaintext)) > MaxOriginalSize {
		return nil, fmt.Errorf("plaintext is %d bytes: %w", len(plaintext), crypto.ErrInputTooLarge)
	}
	if len(filename) > MaxFilenameLen {
		return nil, fmt.Errorf("filename is %d bytes: %w", len(filename), crypto.ErrInputTooLarge)
	}

	// The format hashes the full cleartext, so the whole input is buffered.
	e.report(0, StageHashing)
	hash := HashPlaintext(plaintext)
	e.report(10, StageHashing)

	salt, err := GenerateSalt()
	if err != nil {
		return nil, crypto.WrapError("generate salt", err)
	}
	masterNonce, err := GenerateMasterNonce()
	if err != nil {
		return nil, crypto.WrapError("generate master nonce", err)
	}

	e.report(12, StageDerivingKey)
	master, err := DeriveMasterKey(e.passBuf.Data(), salt, e.kdf)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(master)
	e.report(20, StageDerivingKey)

	originalSize := uint32(len(plaintext)) // #nosec G115 -- bounded by MaxOriginalSize above
	chunkSize := uint32(e.chunkSize)       // #nosec G115 -- bounded by MaxChunkSize
	totalChunks := chunkCount(originalSize, chunkSize)

	hdr := &Header{
		Version:       Version2,
		Algorithm:     e.algorithm,
		KDF:           KDFArgon2id,
		KDFParams:     e.kdf,
		ChunkSize:     chunkSize,
		OriginalSize:  originalSize,
		TotalChunks:   totalChunks,
		Filename:      filename,
		PlaintextHash: hash,
	}
	copy(hdr.Salt[:], salt)

	hdrBytes, err := MarshalHeader(hdr)
	if err != nil {
		return nil, err
	}

	out := bytes.NewBuffer(make([]byte, 0, len(hdrBytes)+len(plaintext)+int(totalChunks)*(RecordPrefixSize+TagSize)))
	out.Write(hdrBytes)

	for i := uint32(0); i < totalChunks; i++ {
		if ctx.Err() != nil {
			return nil, crypto.ErrContextCanceled
		}

		start := uint64(i) * uint64(chunkSize)
		end := start + uint64(chunkSize)
		if end > uint64(originalSize) {
			end = uint64(originalSize)
		}

		chunkKey := DeriveChunkKey(master, i)
		nonce := DeriveChunkNonce(masterNonce, i)

		ciphertext, err := sealChunk(e.algorithm, chunkKey, nonce, plaintext[start:end])
		secure.Zero(chunkKey)
		if err != nil {
			return nil, crypto.NewContainerError("encrypt", filename, int(i), err)
		}

		var lenBytes [4]byte
		binary.BigEndian.PutUint32(lenBytes[:], uint32(len(ciphertext))) // #nosec G115 -- chunk + tag fits in uint32
		out.Write(lenBytes[:])
		out.Write(nonce)
		out.Write(ciphertext)

		e.report(20+80*float64(i+1)/float64(totalChunks), StageEncrypting)
	}

	e.report(100, StageEncrypting)

	return &EncryptResult{
		Container:        out.Bytes(),
		OutputFilename:   filename + SuggestedExtension,
		PlaintextHashHex: HashHex(hash),
	}, nil
}

// EncryptStream reads all of src and writes the assembled container to
// dst. The format's whole-plaintext hash rules out true streaming, so the
// input is buffered in full.
func (e *Encryptor) EncryptStream(ctx context.Context, src io.Reader, dst io.Writer, filename string) (*EncryptResult, error) {
	plaintext, err := io.ReadAll(src)
	if err != nil {
		return nil, crypto.WrapError("read source stream", err)
	}
	res, err := e.EncryptBuffer(ctx, plaintext, filename)
	if err != nil {
		return nil, err
	}
	if _, err := dst.Write(res.Container); err != nil {
		return nil, crypto.WrapError("write container", err)
	}
	return res, nil
}

// Destroy zeroes the buffered password and unlocks its memory.
func (e *Encryptor) Destroy() {
	if e.passBuf != nil {
		e.passBuf.Destroy()
	}
}
