package usecase

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
)

// ThreadEngine selects parents to thread, generates their replies and
// backfills the parent-side thread summary fields
type ThreadEngine struct {
	rng       *rand.Rand
	content   *ContentBuilder
	files     *FileSynthesizer
	reactions *ReactionSynthesizer
}

// NewThreadEngine creates a thread engine over the given source
func NewThreadEngine(rng *rand.Rand) *ThreadEngine {
	return &ThreadEngine{
		rng:       rng,
		content:   NewContentBuilder(rng),
		files:     NewFileSynthesizer(rng),
		reactions: NewReactionSynthesizer(rng),
	}
}

// ApplyThreads threads the first top-level message of the day plus each
// subsequent one with ~20% probability, appends the generated replies
// to the flat list, and returns the full batch sorted ascending by
// timestamp. Sorted order is the canonical order written to disk.
func (e *ThreadEngine) ApplyThreads(conv *domain.Conversation, cfg *domain.GenerationConfig, dayMessages []domain.Message) []domain.Message {
	repliesPerParent := cfg.RepliesPerParent()
	if repliesPerParent <= 0 || len(dayMessages) == 0 {
		SortByTimestamp(dayMessages)
		return dayMessages
	}

	var parentIdx []int
	parentIdx = append(parentIdx, 0)
	for i := 1; i < len(dayMessages); i++ {
		if chance(e.rng, 0.2) {
			parentIdx = append(parentIdx, i)
		}
	}

	all := dayMessages
	for _, pi := range parentIdx {
		replies := e.generateReplies(conv, cfg, &all[pi], repliesPerParent)
		all = append(all, replies...)
	}

	SortByTimestamp(all)
	return all
}

func (e *ThreadEngine) generateReplies(conv *domain.Conversation, cfg *domain.GenerationConfig, parent *domain.Message, count int) []domain.Message {
	parentSec := int64(parent.TSSeconds())
	enabledStyles := cfg.EnabledStyles()

	var replies []domain.Message
	var replyUsers []string
	for k := 0; k < count; k++ {
		replyTS := parentSec + int64(k+1)*replySpacingSeconds
		sender := pickOne(e.rng, conv.Participants)
		candidates := mentionCandidates(conv.Participants, sender)

		// The first reply mirrors the top-level forcing policy so small
		// configurations stay covered.
		first := k == 0

		var forcedStyles []domain.Style
		if first && len(enabledStyles) > 0 {
			forcedStyles = []domain.Style{pickOne(e.rng, enabledStyles)}
		}
		var forcedMentions []string
		if first && cfg.IncludeMentions && len(candidates) > 0 {
			forcedMentions = candidates
			if len(forcedMentions) > 2 {
				forcedMentions = forcedMentions[:2]
			}
		}

		reply := domain.Message{
			Type:     "message",
			TS:       strconv.FormatInt(replyTS, 10),
			ThreadTS: parent.TS,
			User:     sender,
		}
		if parent.User != "" {
			reply.ParentUserID = parent.User
		}

		reply.SetContent(e.content.Build(ContentRequest{
			BaseText:            e.content.SampleText(len(forcedStyles)),
			AllowMentions:       cfg.IncludeMentions,
			AllowDoubleMentions: cfg.AllowDoubleMentions(),
			MentionCandidates:   candidates,
			AllowLinks:          cfg.IncludeLinks,
			AllowEmojis:         cfg.IncludeEmojis,
			AllowedStyles:       enabledStyles,
			ForcedStyles:        forcedStyles,
			ForceLink:           first && cfg.IncludeLinks,
			ForceEmoji:          first && cfg.IncludeEmojis,
			ForceMentions:       forcedMentions,
		}))

		if cfg.AllowAnyFiles() && (first || chance(e.rng, 0.25)) {
			fileCount := 1
			if cfg.IncludeMultipleFiles && (first || chance(e.rng, 0.2)) {
				fileCount = randInt(e.rng, 2, 3)
			}
			reply.Files = e.files.Make(sender, replyTS, fileCount, cfg.AllowedFileKinds())
			if reply.Subtype == "" {
				reply.Subtype = domain.SubtypeFileShare
			}
			if !cfg.IncludeFilesWithText {
				reply.SetContent(e.content.Build(ContentRequest{AllowEmptyText: true}))
			}
		}

		if cfg.IncludePinnedMessages && conv.ChannelID != "" && chance(e.rng, 0.03) {
			reply.IsPinned = true
			reply.PinnedTo = []string{conv.ChannelID}
		}

		if cfg.IncludeReactions && (first || chance(e.rng, 0.3)) {
			reply.Reactions = e.reactions.Make(conv.Participants)
		}

		if cfg.IncludeEditedMessages && (first || chance(e.rng, 0.2)) {
			reply.Edited = &domain.Edited{User: sender, TS: strconv.FormatInt(replyTS+30, 10)}
			reply.AppendSuffix(editedSuffix)
		}

		replies = append(replies, reply)
		replyUsers = append(replyUsers, sender)
	}

	unique := domain.UniquePreserveOrder(replyUsers)
	parent.ReplyCount = len(replies)
	parent.ReplyUsers = unique
	parent.ReplyUsersCount = len(unique)
	if len(replies) > 0 {
		parent.LatestReply = replies[len(replies)-1].TS
	}
	return replies
}

// SortByTimestamp sorts a day batch ascending by numeric timestamp,
// keeping generation order for equal instants
func SortByTimestamp(msgs []domain.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].TSSeconds() < msgs[j].TSSeconds()
	})
}
