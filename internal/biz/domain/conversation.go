package domain

import "strings"

// ConversationKind represents the conversation kind
type ConversationKind string

const (
	KindPair  ConversationKind = "pair"
	KindGroup ConversationKind = "group"
)

// Slack channel IDs carry a type prefix: "D" for a direct message
// channel, "G" for a group / mpim channel.
const groupChannelPrefix = "G"

// PairConversation is a one-on-one DM as submitted by the caller
type PairConversation struct {
	ChannelID string `json:"channelId"`
	UserID1   string `json:"userId1"`
	UserID2   string `json:"userId2"`
}

// GroupConversation is a group DM as submitted by the caller.
// MemberUserIDs is a comma-separated user ID list (wizard form format).
type GroupConversation struct {
	GroupName     string `json:"groupName"`
	ChannelID     string `json:"channelId"`
	CreatorUserID string `json:"creatorUserId"`
	MemberUserIDs string `json:"memberUserIds"`
}

// Conversation is the unified conversation the engine generates messages for
type Conversation struct {
	Kind      ConversationKind
	ChannelID string
	Name      string // group name, empty for pairs
	Creator   string // group creator, empty for pairs

	// Participants is de-duplicated and order-preserving; for groups the
	// creator always comes first.
	Participants []string
}

// FromPair builds a Conversation from a one-on-one DM.
// The two user IDs may be equal (self-conversation); the participant
// list is still de-duplicated.
func FromPair(dm PairConversation) Conversation {
	return Conversation{
		Kind:         KindPair,
		ChannelID:    dm.ChannelID,
		Participants: UniquePreserveOrder(dropEmpty([]string{dm.UserID1, dm.UserID2})),
	}
}

// FromGroup builds a Conversation from a group DM.
// The creator is always included first and never duplicated.
func FromGroup(g GroupConversation) Conversation {
	raw := append([]string{g.CreatorUserID}, SplitUserIDs(g.MemberUserIDs)...)
	return Conversation{
		Kind:         KindGroup,
		ChannelID:    g.ChannelID,
		Name:         g.GroupName,
		Creator:      g.CreatorUserID,
		Participants: UniquePreserveOrder(dropEmpty(raw)),
	}
}

// DirectoryName is the export folder name: channel ID for pairs, group
// name for groups
func (c *Conversation) DirectoryName() string {
	if c.Kind == KindGroup {
		return c.Name
	}
	return c.ChannelID
}

// IsGroup checks if this is a group conversation
func (c *Conversation) IsGroup() bool {
	return c.Kind == KindGroup
}

// KindFromChannelID discriminates the conversation kind from the
// channel ID prefix. Unknown prefixes default to pair.
func KindFromChannelID(channelID string) ConversationKind {
	if strings.HasPrefix(channelID, groupChannelPrefix) {
		return KindGroup
	}
	return KindPair
}

// SplitUserIDs splits a comma-separated user ID list, trimming
// whitespace and dropping empty entries
func SplitUserIDs(raw string) []string {
	var out []string
	for _, id := range strings.Split(raw, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// UniquePreserveOrder removes duplicates keeping first occurrence order
func UniquePreserveOrder(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func dropEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
