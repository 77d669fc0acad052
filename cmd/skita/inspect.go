/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/podszero/sandikita"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.skita>",
	Short: "Print container metadata without decrypting",
	Long: `inspect parses a .skita header and prints its metadata. No password is
needed. Header fields are not authenticated, so treat them as claims
until the container decrypts successfully.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	container, err := os.ReadFile(args[0]) // #nosec G304 -- path is the CLI argument
	if err != nil {
		return err
	}

	hdr, err := sandikita.Inspect(container)
	if err != nil {
		logger().Debugf("inspect: %v", err)
		return sandikita.SanitizeError(err)
	}

	fmt.Printf("version:       0x%04x\n", hdr.Version)
	fmt.Printf("algorithm:     %s\n", hdr.Algorithm)
	fmt.Printf("kdf:           %s (memory %s, iterations %d, parallelism %d)\n",
		hdr.KDF, humanize.IBytes(uint64(hdr.KDFParams.MemoryKiB)*1024),
		hdr.KDFParams.Iterations, hdr.KDFParams.Parallelism)
	fmt.Printf("chunk size:    %s\n", humanize.IBytes(uint64(hdr.ChunkSize)))
	fmt.Printf("original size: %s (%d bytes)\n", humanize.IBytes(uint64(hdr.OriginalSize)), hdr.OriginalSize)
	fmt.Printf("total chunks:  %d\n", hdr.TotalChunks)
	fmt.Printf("filename:      %s\n", hdr.Filename)
	if hdr.Version == 0x0002 {
		fmt.Printf("sha256:        %s\n", hex.EncodeToString(hdr.PlaintextHash[:]))
	} else {
		fmt.Printf("sha256:        (not present in legacy containers)\n")
	}
	return nil
}
