// Package founder generates the founder-reliability signal. There is no
// live provider for this category: the profile is derived entirely from the
// entity's hash seed, so it is stable across runs.
package founder

import (
	"context"
	"fmt"

	"investai/internal/synth"
	"investai/internal/types"
)

var (
	firstNames = []string{"Alex", "Sam", "Maya", "Nina", "Leo", "Iris", "Noah", "Ava", "Lina", "Hugo"}
	lastNames  = []string{"Barton", "Elwood", "Kell", "Mendoza", "Vega", "Sloan", "Briant", "Dumas", "Rossi", "Fisher"}

	redFlagPool = []string{
		"No critical red flags found",
		"Limited governance disclosure",
		"Aggressive hiring despite weak treasury",
		"Concentrated decision power",
		"Inconsistent public roadmap cadence",
	}
)

const demoRedFlag = "Demo mode: simulated profile"

// Resolver produces deterministic founder profiles.
type Resolver struct{}

// NewResolver creates the founder resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve builds the profile for entity. Demo mode raises reliability and
// replaces the red-flag text with a fixed notice.
func (r *Resolver) Resolve(ctx context.Context, entity string, demoMode bool) types.FounderProfile {
	seed := synth.Seed(entity)

	pastExits := 1 + seed%4
	reliability := 52 + seed%44
	redFlag := redFlagPool[(seed/5)%len(redFlagPool)]
	if demoMode {
		reliability += 6
		if reliability > 98 {
			reliability = 98
		}
		redFlag = demoRedFlag
	}

	names := []string{pickName(seed), pickName(seed/2 + 19)}

	return types.FounderProfile{
		Score:       reliability,
		Name:        names[0],
		Founders:    names,
		Reliability: reliability,
		PastExits:   pastExits,
		RedFlags:    redFlag,
		Source:      "simulation",
	}
}

func pickName(seed int) string {
	return fmt.Sprintf("%s %s", firstNames[seed%len(firstNames)], lastNames[(seed/7)%len(lastNames)])
}
