package usecase

import (
	"sort"
	"strings"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
)

// RequirementKind identifies what a coverage requirement forces onto
// its claimed message index
type RequirementKind int

const (
	ReqStyle RequirementKind = iota
	ReqEmojiOnly
	ReqMention
	ReqDoubleMention
	ReqLink
	ReqReactions
	ReqStickerFile
	ReqGIFFile
	ReqFileWithText
	ReqMultiFile
	ReqBot
	ReqPinned
	ReqForwarded
	ReqEdited
)

// Requirement is one tagged coverage requirement derived from an
// enabled toggle
type Requirement struct {
	Kind  RequirementKind
	Style domain.Style // set for ReqStyle
}

// CoveragePlan maps message indices to the requirements they must
// satisfy. Built once per conversation/day before generation so that
// which index guarantees which toggle is deterministic.
type CoveragePlan map[int][]Requirement

// BuildCoveragePlan derives one requirement per enabled toggle and
// distributes them round-robin across message indices modulo
// messagesPerDate
func BuildCoveragePlan(cfg *domain.GenerationConfig) CoveragePlan {
	var reqs []Requirement
	for _, st := range cfg.EnabledStyles() {
		reqs = append(reqs, Requirement{Kind: ReqStyle, Style: st})
	}
	if cfg.IncludeEmojis {
		reqs = append(reqs, Requirement{Kind: ReqEmojiOnly})
	}
	if cfg.IncludeMentions {
		reqs = append(reqs, Requirement{Kind: ReqMention})
	}
	if cfg.AllowDoubleMentions() {
		reqs = append(reqs, Requirement{Kind: ReqDoubleMention})
	}
	if cfg.IncludeLinks {
		reqs = append(reqs, Requirement{Kind: ReqLink})
	}
	if cfg.IncludeReactions {
		reqs = append(reqs, Requirement{Kind: ReqReactions})
	}
	if cfg.IncludeStickers {
		reqs = append(reqs, Requirement{Kind: ReqStickerFile})
	}
	if cfg.IncludeGifs {
		reqs = append(reqs, Requirement{Kind: ReqGIFFile})
	}
	if cfg.IncludeFilesWithText {
		reqs = append(reqs, Requirement{Kind: ReqFileWithText})
	}
	if cfg.IncludeMultipleFiles {
		reqs = append(reqs, Requirement{Kind: ReqMultiFile})
	}
	if cfg.IncludeBotMessages {
		reqs = append(reqs, Requirement{Kind: ReqBot})
	}
	if cfg.IncludePinnedMessages {
		reqs = append(reqs, Requirement{Kind: ReqPinned})
	}
	if cfg.IncludeForwardedMessages {
		reqs = append(reqs, Requirement{Kind: ReqForwarded})
	}
	if cfg.IncludeEditedMessages {
		reqs = append(reqs, Requirement{Kind: ReqEdited})
	}

	plan := make(CoveragePlan)
	for i, r := range reqs {
		idx := i % cfg.MessagesPerDate
		plan[idx] = append(plan[idx], r)
	}
	return plan
}

// ValidateCoverage independently re-inspects a finished, sorted day
// batch for concrete evidence of every enabled toggle. It does not
// trust the forcing plan. Returns a CoverageError listing every missing
// toggle, or nil.
func ValidateCoverage(dateStr string, msgs []domain.Message, cfg *domain.GenerationConfig) error {
	found := make(map[string]bool)
	mark := func(toggle string) { found[toggle] = true }

	for i := range msgs {
		m := &msgs[i]
		scanInlineEvidence(m, mark)

		if len(m.Reactions) > 0 {
			mark("includeReactions")
		}
		if m.IsBot() {
			mark("includeBotMessages")
		}
		if m.IsPinned {
			mark("includePinnedMessages")
		}
		if m.IsThreadParent() {
			mark("includeThreads")
		}
		if m.IsThreadReply() {
			mark("includeThreadReplies")
		}
		if len(m.Attachments) > 0 {
			mark("includeForwardedMessages")
		}
		if m.Edited != nil {
			mark("includeEditedMessages")
		}

		if len(m.Files) >= 2 {
			mark("includeMultipleFiles")
		}
		if len(m.Files) > 0 && strings.TrimSpace(m.Text) != "" {
			mark("includeFilesWithText")
		}
		for _, f := range m.Files {
			name := strings.ToLower(f.Name)
			if name == "" {
				name = strings.ToLower(f.Title)
			}
			// Kind detection matches the downstream validator's
			// name/extension heuristics.
			if strings.Contains(name, "sticker") || strings.Contains(f.Name, "ステッカー") {
				mark("includeStickers")
			}
			ftype := strings.ToLower(f.Filetype + f.Mimetype)
			if strings.Contains(ftype, "gif") || strings.HasSuffix(name, ".gif") {
				mark("includeGifs")
			}
		}
	}

	var missing []string
	require := func(enabled bool, toggle string) {
		if enabled && !found[toggle] {
			missing = append(missing, toggle)
		}
	}

	require(cfg.FormatBold, "formatBold")
	require(cfg.FormatItalic, "formatItalic")
	require(cfg.FormatStrikethrough, "formatStrikethrough")
	require(cfg.FormatUnderline, "formatUnderline")
	require(cfg.IncludeEmojis, "includeEmojis")
	require(cfg.IncludeMentions, "includeMentions")
	require(cfg.AllowDoubleMentions(), "includeDoubleMentions")
	require(cfg.IncludeLinks, "includeLinks")
	require(cfg.IncludeReactions, "includeReactions")
	require(cfg.IncludeStickers, "includeStickers")
	require(cfg.IncludeGifs, "includeGifs")
	require(cfg.IncludeFilesWithText, "includeFilesWithText")
	require(cfg.IncludeMultipleFiles, "includeMultipleFiles")
	require(cfg.IncludeBotMessages, "includeBotMessages")
	require(cfg.IncludePinnedMessages, "includePinnedMessages")
	// Thread evidence only exists when replies can be generated at all
	threadable := cfg.AllowThreadReplies() && cfg.RepliesPerMessage > 0
	require(threadable, "includeThreads")
	require(threadable, "includeThreadReplies")
	require(cfg.IncludeForwardedMessages, "includeForwardedMessages")
	require(cfg.IncludeEditedMessages, "includeEditedMessages")

	if len(missing) > 0 {
		sort.Strings(missing)
		return &domain.CoverageError{Date: dateStr, Missing: missing}
	}
	return nil
}

func scanInlineEvidence(m *domain.Message, mark func(string)) {
	var lastMention string
	for _, block := range m.Blocks {
		for _, section := range block.Elements {
			for _, el := range section.Elements {
				switch e := el.(type) {
				case domain.TextElement:
					if e.Style != nil {
						if e.Style.Bold {
							mark("formatBold")
						}
						if e.Style.Italic {
							mark("formatItalic")
						}
						if e.Style.Strike {
							mark("formatStrikethrough")
						}
						if e.Style.Underline {
							mark("formatUnderline")
						}
					}
					// Whitespace does not break a double mention
					if strings.TrimSpace(e.Text) != "" {
						lastMention = ""
					}
				case domain.UserElement:
					mark("includeMentions")
					if e.UserID != "" && e.UserID == lastMention {
						mark("includeDoubleMentions")
					}
					lastMention = e.UserID
				case domain.EmojiElement:
					mark("includeEmojis")
					lastMention = ""
				case domain.LinkElement:
					mark("includeLinks")
					lastMention = ""
				default:
					lastMention = ""
				}
			}
		}
	}
}
