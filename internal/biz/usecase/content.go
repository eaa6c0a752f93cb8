package usecase

import (
	"math/rand"
	"strings"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
)

var sampleTexts = []string{
	"Hey, how are you doing?",
	"Just checking in!",
	"Thanks for the update.",
	"That sounds great!",
	"Let me know when you're ready.",
	"Can we schedule a meeting?",
	"I'll send that over shortly.",
	"Here is the link you asked for.",
	"Please review the attached file(s).",
}

var leadEmojiNames = []string{"smile", "thumbsup", "rocket", "fire", "eyes", "clap"}

var inlineEmojiNames = []string{"smile", "heart", "rocket", "fire"}

var emojiOnlyNames = []string{"smile", "thumbsup", "rocket", "fire", "eyes", "clap", "heart"}

var sampleLinks = []string{
	"https://docs.slack.dev/reference/block-kit/blocks/rich-text-block",
	"https://slack.com",
	"https://example.com/docs?ref=dm-export",
}

// ContentRequest describes one message body to compose
type ContentRequest struct {
	BaseText string

	AllowMentions       bool
	AllowDoubleMentions bool
	MentionCandidates   []string
	AllowLinks          bool
	AllowEmojis         bool

	AllowedStyles []domain.Style
	// ForcedStyles are styles that must each appear on a distinct word
	ForcedStyles []domain.Style

	AllowEmptyText bool

	ForceLink          bool
	ForceEmoji         bool
	ForceEmojiOnly     bool
	ForceMentions      []string
	ForceDoubleMention bool
}

// ContentBuilder assembles rich-content trees and their flat-text
// fallbacks from a semantic element list
type ContentBuilder struct {
	rng *rand.Rand
}

// NewContentBuilder creates a content builder over the given source
func NewContentBuilder(rng *rand.Rand) *ContentBuilder {
	return &ContentBuilder{rng: rng}
}

// Build composes the inline element list for a request and wraps it
// into the nested tree plus fallback text
func (b *ContentBuilder) Build(req ContentRequest) domain.Content {
	if req.ForceEmojiOnly {
		els := []domain.Element{domain.NewEmoji(pickOne(b.rng, emojiOnlyNames))}
		if chance(b.rng, 0.4) {
			els = append(els, domain.NewText(" "), domain.NewEmoji(pickOne(b.rng, inlineEmojiNames)))
		}
		return domain.WrapElements(els)
	}

	var els []domain.Element

	// Optional leading emoji
	if req.AllowEmojis && (req.ForceEmoji || chance(b.rng, 0.25)) {
		els = append(els, domain.NewEmoji(pickOne(b.rng, leadEmojiNames)), domain.NewText(" "))
	}

	els = append(els, b.mentionElements(req)...)

	// Styled text fragments
	text := req.BaseText
	if text == "" && !req.AllowEmptyText {
		text = b.SampleText(len(req.ForcedStyles))
	}
	els = append(els, b.styledTextElements(text, req.ForcedStyles, req.AllowedStyles)...)

	// Optional inline emoji after the text
	if req.AllowEmojis && (req.ForceEmoji || chance(b.rng, 0.25)) {
		els = append(els, domain.NewText(" "), domain.NewEmoji(pickOne(b.rng, inlineEmojiNames)))
	}

	// Optional link mixed with text
	if req.AllowLinks && (req.ForceLink || chance(b.rng, 0.35)) {
		els = append(els, domain.NewText(" "))
		url := pickOne(b.rng, sampleLinks)
		if chance(b.rng, 0.5) {
			els = append(els, domain.NewLink(url, "docs"))
		} else {
			els = append(els, domain.NewLink(url, ""))
		}
	}

	// File-only and empty messages still need a present tree
	if len(els) == 0 {
		els = append(els, domain.NewText(""))
	}

	return domain.WrapElements(els)
}

// SampleText picks a sample text with at least minWords words so every
// forced style can claim its own word
func (b *ContentBuilder) SampleText(minWords int) string {
	if minWords <= 1 {
		return pickOne(b.rng, sampleTexts)
	}
	var pool []string
	for _, s := range sampleTexts {
		if len(strings.Split(s, " ")) >= minWords {
			pool = append(pool, s)
		}
	}
	if len(pool) == 0 {
		pool = sampleTexts
	}
	return pickOne(b.rng, pool)
}

func (b *ContentBuilder) mentionElements(req ContentRequest) []domain.Element {
	var els []domain.Element

	forced := domain.UniquePreserveOrder(req.ForceMentions)
	if len(forced) > 0 {
		for i, uid := range forced {
			els = append(els, domain.NewUser(uid), domain.NewText(" "))
			if req.ForceDoubleMention && i == 0 {
				els = append(els, domain.NewUser(uid), domain.NewText(" "))
			}
		}
		return els
	}

	if !req.AllowMentions || len(req.MentionCandidates) == 0 || !chance(b.rng, 0.6) {
		return nil
	}

	count := randInt(b.rng, 1, min(3, len(req.MentionCandidates)))
	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, pickOne(b.rng, req.MentionCandidates))
	}
	for _, uid := range domain.UniquePreserveOrder(picked) {
		els = append(els, domain.NewUser(uid), domain.NewText(" "))
		if req.AllowDoubleMentions && chance(b.rng, 0.25) {
			els = append(els, domain.NewUser(uid), domain.NewText(" "))
		}
	}
	return els
}

// styledTextElements wraps exactly one word per requested style.
// Single-word text is emitted unstyled: there is no second word to keep
// unwrapped, so the style request is dropped (documented limitation).
func (b *ContentBuilder) styledTextElements(text string, forced, allowed []domain.Style) []domain.Element {
	if text == "" {
		return nil
	}

	words := strings.Split(text, " ")
	if len(words) <= 1 {
		return []domain.Element{domain.NewText(text)}
	}

	styles := forced
	if len(styles) == 0 && len(allowed) > 0 {
		styles = []domain.Style{pickOne(b.rng, allowed)}
	}
	if len(styles) > len(words) {
		styles = styles[:len(words)]
	}
	if len(styles) == 0 {
		return []domain.Element{domain.NewText(text)}
	}

	// Assign each style its own word
	styleAt := make(map[int]domain.Style, len(styles))
	perm := b.rng.Perm(len(words))
	for i, st := range styles {
		styleAt[perm[i]] = st
	}

	var els []domain.Element
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			els = append(els, domain.NewText(buf.String()))
			buf.Reset()
		}
	}
	for i, w := range words {
		if i > 0 {
			buf.WriteString(" ")
		}
		if st, ok := styleAt[i]; ok {
			flush()
			els = append(els, domain.NewStyledText(w, st))
		} else {
			buf.WriteString(w)
		}
	}
	flush()
	return els
}
