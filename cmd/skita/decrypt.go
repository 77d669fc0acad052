/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/podszero/sandikita"
	"github.com/podszero/sandikita/secure"
)

var (
	decryptOut   string
	decryptForce bool
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <file.skita>",
	Short: "Decrypt a .skita container",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecrypt,
}

func init() {
	decryptCmd.Flags().StringVarP(&decryptOut, "out", "o", "", "output path (default: stored filename next to the container)")
	decryptCmd.Flags().BoolVarP(&decryptForce, "force", "f", false, "overwrite the output file if it exists")
	rootCmd.AddCommand(decryptCmd)
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	srcPath := args[0]
	log := logger()

	dst := decryptOut
	if dst == "" {
		if container, err := os.ReadFile(srcPath); err == nil { // #nosec G304 -- path is the CLI argument
			if hdr, err := sandikita.Inspect(container); err == nil && sandikita.SanitizeFilename(hdr.Filename) != "" {
				dst = filepath.Join(filepath.Dir(srcPath), sandikita.SanitizeFilename(hdr.Filename))
			}
		}
	}
	if dst != "" && !decryptForce {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", dst)
		}
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	defer secure.Zero(password)

	s, stop := startSpinner("Decrypting " + srcPath + "...")
	progress := func(percent float64, stage string) {
		s.Suffix = fmt.Sprintf(" %s %.0f%%", stage, percent)
		log.Debugf("%s %.0f%%", stage, percent)
	}

	res, err := sandikita.DecryptFile(context.Background(), srcPath, decryptOut, password,
		sandikita.WithProgress(progress))
	if err != nil {
		stop(failMark + " Decryption failed")
		log.Debugf("decrypt: %v", err)
		return sandikita.SanitizeError(err)
	}

	name := decryptOut
	if name == "" {
		name = sandikita.SanitizeFilename(res.OriginalFilename)
	}
	stop(fmt.Sprintf("%s Wrote %s (%s)", okMark, name, humanize.Bytes(uint64(len(res.Plaintext)))))

	if res.Verified {
		log.Infof("plaintext sha256 verified: %s", res.PlaintextHashHex)
	} else {
		log.WarnfAlways("legacy container without integrity hash; contents authenticated per chunk only")
	}
	return nil
}
