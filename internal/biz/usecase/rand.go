package usecase

import (
	"math/rand"
	"strings"
)

// All engine components draw from an explicit *rand.Rand so tests can
// substitute a seeded source. Production wiring seeds from the clock;
// reproducibility across runs is not a goal.

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func pickOne[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

func randInt(rng *rand.Rand, min, max int) int {
	return rng.Intn(max-min+1) + min
}

func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// randBase36ID builds a Slack-style random ID: prefix + n uppercased
// base36 characters
func randBase36ID(rng *rand.Rand, prefix string, n int) string {
	var b strings.Builder
	b.WriteString(prefix)
	for i := 0; i < n; i++ {
		b.WriteByte(base36Alphabet[rng.Intn(len(base36Alphabet))])
	}
	return strings.ToUpper(b.String())
}

// NewBotID generates a bot ID in the export's B-prefixed format
func NewBotID(rng *rand.Rand) string {
	return randBase36ID(rng, "B", 9)
}

// NewFileID generates a file ID in the export's F-prefixed format
func NewFileID(rng *rand.Rand) string {
	return randBase36ID(rng, "F", 9)
}
