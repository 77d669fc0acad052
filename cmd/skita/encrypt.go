/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/podszero/sandikita"
	"github.com/podszero/sandikita/internal/passgen"
	"github.com/podszero/sandikita/secure"
)

var (
	encryptOut            string
	encryptAlgorithm      string
	encryptKDFMemory      string
	encryptKDFIterations  uint32
	encryptKDFParallelism uint8
	encryptForce          bool
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <file>",
	Short: "Encrypt a file into a .skita container",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncrypt,
}

func init() {
	encryptCmd.Flags().StringVarP(&encryptOut, "out", "o", "", "output path (default: <file>.skita)")
	encryptCmd.Flags().StringVarP(&encryptAlgorithm, "algorithm", "a", "aes-gcm", "cipher: aes-gcm or chacha20-poly1305")
	encryptCmd.Flags().StringVar(&encryptKDFMemory, "kdf-memory", "64MiB", "Argon2id memory cost (e.g. 64MiB, 256MiB)")
	encryptCmd.Flags().Uint32Var(&encryptKDFIterations, "kdf-iterations", sandikita.DefaultKDFIterations, "Argon2id time cost")
	encryptCmd.Flags().Uint8Var(&encryptKDFParallelism, "kdf-parallelism", sandikita.DefaultKDFParallelism, "Argon2id lane count")
	encryptCmd.Flags().BoolVarP(&encryptForce, "force", "f", false, "overwrite the output file if it exists")
	rootCmd.AddCommand(encryptCmd)
}

func parseAlgorithm(name string) (sandikita.Algorithm, error) {
	switch name {
	case "aes-gcm", "aes-256-gcm", "aes":
		return sandikita.AlgorithmAESGCM, nil
	case "chacha20-poly1305", "chacha":
		return sandikita.AlgorithmChaCha20Poly1305, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want aes-gcm or chacha20-poly1305)", name)
	}
}

func parseKDFMemoryKiB(s string) (uint32, error) {
	b, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --kdf-memory %q: %w", s, err)
	}
	kib := b / 1024
	if kib == 0 || kib > math.MaxUint32 {
		return 0, fmt.Errorf("--kdf-memory %q out of range", s)
	}
	return uint32(kib), nil
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	srcPath := args[0]
	log := logger()

	alg, err := parseAlgorithm(encryptAlgorithm)
	if err != nil {
		return err
	}
	memKiB, err := parseKDFMemoryKiB(encryptKDFMemory)
	if err != nil {
		return err
	}

	outPath := encryptOut
	if outPath == "" {
		outPath = srcPath + sandikita.SuggestedExtension
	}
	if !encryptForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
		}
	}

	password, err := readPasswordConfirmed()
	if err != nil {
		return err
	}
	defer secure.Zero(password)

	if st := passgen.EstimateStrength(string(password)); st.Score < 2 {
		fmt.Fprintf(os.Stderr, "%s password strength: %s (~%.0f bits); consider 'skita passgen'\n",
			warnMark, st.Label, st.EntropyBits)
	}

	s, stop := startSpinner("Encrypting " + srcPath + "...")
	progress := func(percent float64, stage string) {
		s.Suffix = fmt.Sprintf(" %s %.0f%%", stage, percent)
		log.Debugf("%s %.0f%%", stage, percent)
	}

	res, err := sandikita.EncryptFile(context.Background(), srcPath, outPath, password,
		sandikita.WithAlgorithm(alg),
		sandikita.WithKDFParams(sandikita.KDFParams{
			MemoryKiB:   memKiB,
			Iterations:  encryptKDFIterations,
			Parallelism: encryptKDFParallelism,
		}),
		sandikita.WithProgress(progress),
	)
	if err != nil {
		stop(failMark + " Encryption failed")
		log.Debugf("encrypt: %v", err)
		return sandikita.SanitizeError(err)
	}

	stop(fmt.Sprintf("%s Wrote %s (%s)", okMark, outPath, humanize.Bytes(uint64(len(res.Container)))))
	log.Infof("algorithm: %s", alg)
	log.Infof("plaintext sha256: %s", res.PlaintextHashHex)
	return nil
}
