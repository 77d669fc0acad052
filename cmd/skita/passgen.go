/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/podszero/sandikita/internal/passgen"
)

var (
	passgenWords     int
	passgenSeparator string
)

var passgenCmd = &cobra.Command{
	Use:   "passgen",
	Short: "Generate a random passphrase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		phrase, err := passgen.GeneratePassphrase(passgenWords, passgenSeparator)
		if err != nil {
			return err
		}
		fmt.Println(phrase)

		st := passgen.EstimateStrength(phrase)
		logger().Infof("strength: %s (~%.0f bits)", st.Label, st.EntropyBits)
		return nil
	},
}

func init() {
	passgenCmd.Flags().IntVarP(&passgenWords, "words", "w", passgen.DefaultWordCount, "number of words")
	passgenCmd.Flags().StringVarP(&passgenSeparator, "separator", "s", "-", "word separator")
	rootCmd.AddCommand(passgenCmd)
}
