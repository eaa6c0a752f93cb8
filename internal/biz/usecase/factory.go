package usecase

import (
	"math/rand"
	"strconv"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
)

var botUsernames = []string{"ExportBot", "SlackHelper", "ArchiveBot", "Notifications"}

const (
	replySpacingSeconds = 60
	editOffsetSeconds   = 60
	lastDaySecond       = 86399
	forwardedPrefixText = "Forwarded message from "
	forwardedBodyText   = "Forwarded message content"
	editedSuffix        = " (edited)"
	botIconEmoji        = ":robot_face:"
)

// forcing is the resolved forcing plan for one message index. Forced
// attributes take precedence over the probabilistic rolls.
type forcing struct {
	bot           bool
	pinned        bool
	multiFile     bool
	fileWithText  bool
	forwarded     bool
	edited        bool
	reactions     bool
	emojiOnly     bool
	emoji         bool
	link          bool
	mention       bool
	doubleMention bool
	fileKinds     []domain.FileKind
	styles        []domain.Style
}

func resolveForcing(reqs []Requirement) forcing {
	var f forcing
	for _, r := range reqs {
		switch r.Kind {
		case ReqStyle:
			f.styles = append(f.styles, r.Style)
		case ReqEmojiOnly:
			f.emojiOnly = true
		case ReqMention:
			f.mention = true
		case ReqDoubleMention:
			f.doubleMention = true
		case ReqLink:
			f.link = true
		case ReqReactions:
			f.reactions = true
		case ReqStickerFile:
			f.fileKinds = append(f.fileKinds, domain.FileKindSticker)
		case ReqGIFFile:
			f.fileKinds = append(f.fileKinds, domain.FileKindGIF)
		case ReqFileWithText:
			f.fileWithText = true
		case ReqMultiFile:
			f.multiFile = true
		case ReqBot:
			f.bot = true
		case ReqPinned:
			f.pinned = true
		case ReqForwarded:
			f.forwarded = true
		case ReqEdited:
			f.edited = true
		}
	}

	// An emoji-only body would drop forced mentions, links, styles and
	// file captions; the richer forced content wins so no coverage
	// requirement is silently lost.
	if f.emojiOnly && f.conflictsWithEmojiOnly() {
		f.emojiOnly = false
		f.emoji = true
	}
	return f
}

func (f *forcing) conflictsWithEmojiOnly() bool {
	return f.mention || f.doubleMention || f.link || f.fileWithText || len(f.styles) > 0
}

func (f *forcing) wantsFiles() bool {
	return f.multiFile || f.fileWithText || len(f.fileKinds) > 0
}

func (f *forcing) forcesInlineContent() bool {
	return f.mention || f.doubleMention || f.link || f.fileWithText || f.emojiOnly || len(f.styles) > 0
}

// MessageFactory produces the ordered top-level messages of one
// (conversation, day) pair
type MessageFactory struct {
	rng       *rand.Rand
	content   *ContentBuilder
	files     *FileSynthesizer
	reactions *ReactionSynthesizer
}

// NewMessageFactory creates a factory with its synthesizers sharing one
// randomness source
func NewMessageFactory(rng *rand.Rand) *MessageFactory {
	return &MessageFactory{
		rng:       rng,
		content:   NewContentBuilder(rng),
		files:     NewFileSynthesizer(rng),
		reactions: NewReactionSynthesizer(rng),
	}
}

// GenerateDay produces the top-level messages for one allocated date.
// Timestamps are spread so that even the latest message, extended by
// the maximum reply and edit offsets, stays strictly inside the day
// window; the date bucket is never mutated.
func (g *MessageFactory) GenerateDay(conv *domain.Conversation, cfg *domain.GenerationConfig, date domain.AllocatedDate, plan CoveragePlan) ([]domain.Message, error) {
	if cfg.MessagesPerDate > 0 && len(conv.Participants) == 0 {
		return nil, &domain.ParticipantError{ChannelID: conv.ChannelID}
	}

	repliesPerParent := cfg.RepliesPerParent()
	maxExtraSeconds := repliesPerParent * replySpacingSeconds
	if cfg.IncludeEditedMessages {
		maxExtraSeconds += editOffsetSeconds
	}
	latestParentSecond := lastDaySecond - maxExtraSeconds
	if latestParentSecond < 0 {
		latestParentSecond = 0
	}

	enabledStyles := cfg.EnabledStyles()
	messages := make([]domain.Message, 0, cfg.MessagesPerDate)
	for i := 0; i < cfg.MessagesPerDate; i++ {
		offset := 0
		if cfg.MessagesPerDate > 1 {
			offset = i * latestParentSecond / (cfg.MessagesPerDate - 1)
		}
		ts := date.DayStart + int64(offset)

		f := resolveForcing(plan[i])
		msg := g.buildMessage(conv, cfg, ts, f, enabledStyles)
		messages = append(messages, msg)
	}
	return messages, nil
}

func (g *MessageFactory) buildMessage(conv *domain.Conversation, cfg *domain.GenerationConfig, ts int64, f forcing, enabledStyles []domain.Style) domain.Message {
	participants := conv.Participants
	sender := pickOne(g.rng, participants)
	isBot := cfg.IncludeBotMessages && (f.bot || chance(g.rng, 0.15))

	msg := domain.Message{
		Type: "message",
		TS:   strconv.FormatInt(ts, 10),
	}

	candidates := mentionCandidates(participants, sender)
	msg.SetContent(g.composeBody(cfg, f, candidates, enabledStyles))

	if isBot {
		msg.Subtype = domain.SubtypeBotMessage
		msg.BotID = NewBotID(g.rng)
		msg.Username = pickOne(g.rng, botUsernames)
		msg.Icons = &domain.Icons{Emoji: botIconEmoji}
	} else {
		msg.User = sender
	}

	if cfg.IncludePinnedMessages && conv.ChannelID != "" && (f.pinned || chance(g.rng, 0.05)) {
		msg.IsPinned = true
		msg.PinnedTo = []string{conv.ChannelID}
	}

	if cfg.AllowAnyFiles() && (f.wantsFiles() || g.mayAttachRandomFiles(cfg, f)) {
		g.attachFiles(&msg, cfg, f, sender, ts)
	}

	if cfg.IncludeForwardedMessages && (f.forwarded || chance(g.rng, 0.15)) && len(participants) > 0 {
		msg.Attachments = []domain.Attachment{g.forwardedAttachment(pickOne(g.rng, participants))}
	}

	if cfg.IncludeEditedMessages && (f.edited || chance(g.rng, 0.25)) {
		editor := msg.User
		if editor == "" {
			editor = pickOne(g.rng, participants)
		}
		msg.Edited = &domain.Edited{User: editor, TS: strconv.FormatInt(ts+editOffsetSeconds, 10)}
		msg.AppendSuffix(editedSuffix)
	}

	if cfg.IncludeReactions && (f.reactions || chance(g.rng, 0.35)) {
		msg.Reactions = g.reactions.Make(participants)
	}

	return msg
}

// mayAttachRandomFiles gates the probabilistic file roll: when file
// captions are disabled, attaching files would blank out this index's
// forced inline content
func (g *MessageFactory) mayAttachRandomFiles(cfg *domain.GenerationConfig, f forcing) bool {
	if !cfg.IncludeFilesWithText && f.forcesInlineContent() {
		return false
	}
	return chance(g.rng, 0.35)
}

func (g *MessageFactory) composeBody(cfg *domain.GenerationConfig, f forcing, candidates []string, enabledStyles []domain.Style) domain.Content {
	if f.emojiOnly {
		return g.content.Build(ContentRequest{ForceEmojiOnly: true})
	}

	var forcedMentions []string
	if f.mention || f.doubleMention {
		forcedMentions = candidates
		if len(forcedMentions) > 2 {
			forcedMentions = forcedMentions[:2]
		}
	}

	return g.content.Build(ContentRequest{
		BaseText:            g.content.SampleText(len(f.styles)),
		AllowMentions:       cfg.IncludeMentions,
		AllowDoubleMentions: cfg.AllowDoubleMentions(),
		MentionCandidates:   candidates,
		AllowLinks:          cfg.IncludeLinks,
		AllowEmojis:         cfg.IncludeEmojis,
		AllowedStyles:       enabledStyles,
		ForcedStyles:        f.styles,
		ForceLink:           f.link,
		ForceEmoji:          f.emoji,
		ForceMentions:       forcedMentions,
		ForceDoubleMention:  f.doubleMention,
	})
}

func (g *MessageFactory) attachFiles(msg *domain.Message, cfg *domain.GenerationConfig, f forcing, sender string, ts int64) {
	count := 1
	if f.multiFile || (cfg.IncludeMultipleFiles && chance(g.rng, 0.25)) {
		count = randInt(g.rng, 2, 3)
	}
	if count < len(f.fileKinds) {
		count = len(f.fileKinds)
	}

	uploader := msg.User
	if uploader == "" {
		uploader = sender
	}
	msg.Files = g.files.MakeWithRequired(uploader, ts, count, f.fileKinds, cfg.AllowedFileKinds())
	if msg.Subtype == "" {
		msg.Subtype = domain.SubtypeFileShare
	}

	// With captions disabled, file messages carry no text at all so the
	// files-with-text co-occurrence cannot appear. With captions
	// enabled an occasional emoji-only file message is still realistic,
	// unless the index forces inline content.
	if !cfg.IncludeFilesWithText {
		msg.SetContent(g.content.Build(ContentRequest{AllowEmptyText: true}))
	} else if !f.forcesInlineContent() && chance(g.rng, 0.25) {
		msg.SetContent(g.content.Build(ContentRequest{
			AllowEmojis:    cfg.IncludeEmojis,
			AllowEmptyText: true,
			ForceEmoji:     cfg.IncludeEmojis,
		}))
	}
}

func (g *MessageFactory) forwardedAttachment(from string) domain.Attachment {
	content := domain.WrapElements([]domain.Element{
		domain.NewText(forwardedPrefixText),
		domain.NewUser(from),
		domain.NewText(": "),
		domain.NewText(forwardedBodyText),
	})
	return domain.Attachment{
		Fallback: content.Text,
		Text:     content.Text,
		Blocks:   content.Blocks,
	}
}

func mentionCandidates(participants []string, sender string) []string {
	var out []string
	for _, u := range participants {
		if u != "" && u != sender {
			out = append(out, u)
		}
	}
	return out
}
