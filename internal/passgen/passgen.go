/*
 * This Source Code Form is subject to the terms of the Mozilla Public License, v. 2.0.
 * If a copy of the MPL was not distributed with this file, You can obtain one at
 * https://mozilla.org/MPL/2.0/.
 */

// Package passgen generates random passphrases and scores password
// strength. It is a usability aid only and plays no part in the
// cryptographic contract of the container format.
package passgen

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode"
)

// DefaultWordCount is the passphrase length used when callers pass 0.
const DefaultWordCount = 6

// MaxWordCount bounds passphrase length to keep output practical.
const MaxWordCount = 20

// wordList is a short diceware-style list. Entropy per word is
// log2(len(wordList)), so a 6-word passphrase from this list carries
// about 43 bits; callers wanting more should raise the word count.
var wordList = []string{
	"acorn", "amber", "anchor", "apple", "arrow", "aspen", "atlas", "autumn",
	"badge", "bamboo", "basil", "beacon", "berry", "birch", "bison", "blaze",
	"bloom", "bolt", "breeze", "brick", "brook", "bruin", "cabin", "candle",
	"canoe", "canyon", "cedar", "chalk", "cherry", "cliff", "clover", "cobalt",
	"comet", "coral", "cove", "crane", "creek", "crocus", "crystal", "cypress",
	"daisy", "dawn", "delta", "dune", "eagle", "ember", "falcon", "fern",
	"field", "fjord", "flint", "forest", "fox", "frost", "galaxy", "garnet",
	"geyser", "glade", "glacier", "grove", "harbor", "hazel", "heron", "hill",
	"holly", "ice", "iris", "island", "ivory", "jade", "jasper", "juniper",
	"kestrel", "lagoon", "lantern", "larch", "lark", "lava", "lichen", "lily",
	"linden", "lotus", "lynx", "maple", "marble", "meadow", "mesa", "mist",
	"moss", "moth", "nectar", "nettle", "north", "oak", "ocean", "olive",
	"onyx", "opal", "orchid", "osprey", "otter", "pebble", "pine", "plume",
	"pond", "poppy", "prairie", "quartz", "quill", "raven", "reef", "ridge",
	"river", "robin", "rowan", "ruby", "sage", "salmon", "sand", "sequoia",
	"shadow", "shale", "shore", "slate", "snow", "spruce", "stone", "storm",
	"summit", "sunset", "swan", "thistle", "thorn", "tide", "topaz", "trail",
	"tulip", "tundra", "valley", "vapor", "violet", "walnut", "wave", "willow",
	"winter", "wolf", "wren", "zephyr",
}

// GeneratePassphrase returns words random list entries joined by sep.
// A zero words count uses DefaultWordCount; an empty sep uses "-".
func GeneratePassphrase(words int, sep string) (string, error) {
	if words == 0 {
		words = DefaultWordCount
	}
	if words < 0 || words > MaxWordCount {
		return "", fmt.Errorf("word count must be between 1 and %d, got %d", MaxWordCount, words)
	}
	if sep == "" {
		sep = "-"
	}

	picked := make([]string, words)
	max := big.NewInt(int64(len(wordList)))
	for i := range picked {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to pick word: %w", err)
		}
		picked[i] = wordList[n.Int64()]
	}
	return strings.Join(picked, sep), nil
}

// Strength is a coarse password quality estimate.
type Strength struct {
	// Score runs 0 (very weak) to 4 (strong).
	Score int
	// Label is the human-readable name for Score.
	Label string
	// EntropyBits estimates entropy from length and character classes.
	// It assumes independent characters and so overestimates real
	// passwords; treat it as an upper bound.
	EntropyBits float64
}

var strengthLabels = [...]string{"very weak", "weak", "fair", "good", "strong"}

// EstimateStrength scores a password by estimated entropy.
func EstimateStrength(password string) Strength {
	if password == "" {
		return Strength{Score: 0, Label: strengthLabels[0]}
	}

	var lower, upper, digit, symbol bool
	runes := 0
	for _, r := range password {
		runes++
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	pool := 0
	if lower {
		pool += 26
	}
	if upper {
		pool += 26
	}
	if digit {
		pool += 10
	}
	if symbol {
		pool += 33
	}

	bits := float64(runes) * math.Log2(float64(pool))

	score := 0
	switch {
	case bits >= 80:
		score = 4
	case bits >= 60:
		score = 3
	case bits >= 44:
		score = 2
	case bits >= 28:
		score = 1
	}

	return Strength{Score: score, Label: strengthLabels[score], EntropyBits: bits}
}
