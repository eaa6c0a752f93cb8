package usecase

import (
	"math/rand"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
)

var reactionEmojiNames = []string{"thumbsup", "heart", "smile", "clap", "fire", "rocket"}

// ReactionSynthesizer produces emoji-reaction aggregates over a
// participant pool
type ReactionSynthesizer struct {
	rng *rand.Rand
}

// NewReactionSynthesizer creates a reaction synthesizer over the given source
func NewReactionSynthesizer(rng *rand.Rand) *ReactionSynthesizer {
	return &ReactionSynthesizer{rng: rng}
}

// Make picks 1-3 emoji names and assigns unique reactors per name.
// The same user never appears twice under one name; a pick is silently
// skipped when the pool is exhausted.
func (s *ReactionSynthesizer) Make(participants []string) []domain.Reaction {
	pool := domain.UniquePreserveOrder(participants)
	picks := randInt(s.rng, 1, 3)

	var reactions []domain.Reaction
	for i := 0; i < picks; i++ {
		emoji := pickOne(s.rng, reactionEmojiNames)

		existing := -1
		for j := range reactions {
			if reactions[j].Name == emoji {
				existing = j
				break
			}
		}

		if existing >= 0 {
			var remaining []string
			for _, u := range pool {
				if !contains(reactions[existing].Users, u) {
					remaining = append(remaining, u)
				}
			}
			if len(remaining) == 0 {
				continue
			}
			reactions[existing].Users = append(reactions[existing].Users, pickOne(s.rng, remaining))
			reactions[existing].Count = len(reactions[existing].Users)
			continue
		}

		if len(pool) == 0 {
			continue
		}
		reactions = append(reactions, domain.Reaction{
			Name:  emoji,
			Count: 1,
			Users: []string{pickOne(s.rng, pool)},
		})
	}
	return reactions
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
