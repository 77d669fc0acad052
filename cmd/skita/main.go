/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Command skita encrypts and decrypts files in the .skita container
// format with a password.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/podszero/sandikita/internal/logging"
)

var (
	flagVerbose bool
	flagDebug   bool
)

func logger() logging.Logger {
	return logging.Logger{Verbose: flagVerbose, Debug: flagDebug}
}

var rootCmd = &cobra.Command{
	Use:   "skita",
	Short: "skita - password-based file encryption using the .skita container format",
	Long: `skita encrypts files with a password into self-describing .skita
containers and decrypts them back, verifying end-to-end integrity.

Keys are derived with Argon2id; payloads are sealed in 4 MiB chunks with
AES-256-GCM or ChaCha20-Poly1305, each chunk under its own subkey and
nonce, with a SHA-256 of the whole file embedded for verification.

Run 'skita help <command>' for details on a specific command.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show info and warning messages")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "show debug output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
