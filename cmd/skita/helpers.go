/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/podszero/sandikita/secure"
)

// readPassword prompts for a password without echoing input. Stdin must
// be a terminal; piping passwords in is deliberately unsupported.
func readPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read password: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// readPasswordConfirmed prompts twice and requires both entries to match.
// The mismatched first entry is zeroed before returning.
func readPasswordConfirmed() ([]byte, error) {
	password, err := readPassword("Password: ")
	if err != nil {
		return nil, err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		secure.Zero(password)
		return nil, err
	}
	defer secure.Zero(confirm)

	if !secure.SecureCompare(password, confirm) {
		secure.Zero(password)
		return nil, fmt.Errorf("passwords do not match")
	}
	return password, nil
}

// startSpinner shows a spinner with the given message unless verbose or
// debug output would interleave with it. The returned stop function
// prints finalMsg (if non-empty) after the spinner clears.
func startSpinner(message string) (*spinner.Spinner, func(finalMsg string)) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	_ = s.Color("cyan")

	if !flagVerbose && !flagDebug {
		s.Start()
	}

	stop := func(finalMsg string) {
		s.Stop()
		if finalMsg != "" {
			fmt.Println(finalMsg)
		}
	}
	return s, stop
}

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
	warnMark = color.New(color.FgYellow).Sprint("⚠")
)
