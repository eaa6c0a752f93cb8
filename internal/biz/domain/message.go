package domain

import "strconv"

// Message subtypes used by the export format
const (
	SubtypeBotMessage = "bot_message"
	SubtypeFileShare  = "file_share"
)

// Icons is the bot icon block of a bot_message
type Icons struct {
	Emoji string `json:"emoji"`
}

// Edited records who edited a message and when
type Edited struct {
	User string `json:"user"`
	TS   string `json:"ts"`
}

// Reaction is an emoji-reaction aggregate over a participant pool
type Reaction struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// Attachment carries forwarded message content
type Attachment struct {
	Fallback string  `json:"fallback"`
	Text     string  `json:"text"`
	Blocks   []Block `json:"blocks"`
}

// Message is one message record in a day batch, serialized in the
// Slack export schema. Owned entirely by the day batch that created it.
type Message struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
	TS      string `json:"ts"`

	User     string `json:"user,omitempty"`
	BotID    string `json:"bot_id,omitempty"`
	Username string `json:"username,omitempty"`
	Icons    *Icons `json:"icons,omitempty"`

	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`

	IsPinned bool     `json:"is_pinned,omitempty"`
	PinnedTo []string `json:"pinned_to,omitempty"`

	Files       []FileRecord `json:"files,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Reactions   []Reaction   `json:"reactions,omitempty"`
	Edited      *Edited      `json:"edited,omitempty"`

	// Thread linkage (reply side)
	ThreadTS     string `json:"thread_ts,omitempty"`
	ParentUserID string `json:"parent_user_id,omitempty"`

	// Thread summary (parent side, backfilled by the thread engine)
	ReplyCount      int      `json:"reply_count,omitempty"`
	ReplyUsers      []string `json:"reply_users,omitempty"`
	ReplyUsersCount int      `json:"reply_users_count,omitempty"`
	LatestReply     string   `json:"latest_reply,omitempty"`
}

// SetContent applies a built rich-content tree and its fallback text
func (m *Message) SetContent(c Content) {
	m.Text = c.Text
	m.Blocks = c.Blocks
}

// TSSeconds parses the decimal-string timestamp; zero on malformed input
func (m *Message) TSSeconds() float64 {
	v, err := strconv.ParseFloat(m.TS, 64)
	if err != nil {
		return 0
	}
	return v
}

// IsBot checks if the message carries a bot identity
func (m *Message) IsBot() bool {
	return m.Subtype == SubtypeBotMessage
}

// IsThreadParent checks if the message has backfilled thread summary fields
func (m *Message) IsThreadParent() bool {
	return m.ReplyCount > 0
}

// IsThreadReply checks if the message is linked under a thread parent
func (m *Message) IsThreadReply() bool {
	return m.ThreadTS != "" && m.ReplyCount == 0
}

// AppendSuffix appends text to the fallback and to the last text run of
// the content tree, creating a run when none exists. Appending at the
// end keeps the visible formatting order intact.
func (m *Message) AppendSuffix(suffix string) {
	m.Text += suffix

	if len(m.Blocks) == 0 || m.Blocks[0].Type != "rich_text" || len(m.Blocks[0].Elements) == 0 {
		m.Blocks = WrapElements([]Element{NewText(m.Text)}).Blocks
		return
	}

	section := &m.Blocks[0].Elements[0]
	if section.Type != "rich_text_section" {
		m.Blocks = WrapElements([]Element{NewText(m.Text)}).Blocks
		return
	}

	if n := len(section.Elements); n > 0 {
		if last, ok := section.Elements[n-1].(TextElement); ok {
			last.Text += suffix
			section.Elements[n-1] = last
			return
		}
	}
	section.Elements = append(section.Elements, NewText(suffix))
}
