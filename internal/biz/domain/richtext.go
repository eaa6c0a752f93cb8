package domain

// The rich-content tree mirrors Slack Block Kit: a rich_text block
// holds rich_text_section elements, which hold the inline elements.
// The inline element set is closed; rendering the flat-text fallback is
// a method of the sealed Element interface, so adding a new kind is a
// compiler-checked change.

// Element is an inline rich-text element (sealed union)
type Element interface {
	// Fallback renders the element in Slack's inline reference syntax
	Fallback() string

	element()
}

// TextStyle is the style set of a text run
type TextStyle struct {
	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Strike    bool `json:"strike,omitempty"`
	Underline bool `json:"underline,omitempty"`
}

// TextElement is a plain or styled text run
type TextElement struct {
	Type  string     `json:"type"`
	Text  string     `json:"text"`
	Style *TextStyle `json:"style,omitempty"`
}

// UserElement is an inline user mention
type UserElement struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}

// EmojiElement is an inline emoji reference
type EmojiElement struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// LinkElement is an inline link, optionally labeled
type LinkElement struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Text string `json:"text,omitempty"`
}

// ChannelElement is an inline channel reference
type ChannelElement struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id"`
}

// UserGroupElement is an inline user-group reference
type UserGroupElement struct {
	Type        string `json:"type"`
	UserGroupID string `json:"usergroup_id"`
}

// BroadcastElement is an inline broadcast keyword (here, channel, everyone)
type BroadcastElement struct {
	Type  string `json:"type"`
	Range string `json:"range"`
}

func (TextElement) element()      {}
func (UserElement) element()      {}
func (EmojiElement) element()     {}
func (LinkElement) element()      {}
func (ChannelElement) element()   {}
func (UserGroupElement) element() {}
func (BroadcastElement) element() {}

// Fallback returns the raw run text
func (e TextElement) Fallback() string { return e.Text }

// Fallback renders <@user_id>
func (e UserElement) Fallback() string {
	if e.UserID == "" {
		return ""
	}
	return "<@" + e.UserID + ">"
}

// Fallback renders :name:
func (e EmojiElement) Fallback() string {
	if e.Name == "" {
		return ""
	}
	return ":" + e.Name + ":"
}

// Fallback renders <url|label> or <url>
func (e LinkElement) Fallback() string {
	if e.URL == "" {
		return ""
	}
	if e.Text != "" {
		return "<" + e.URL + "|" + e.Text + ">"
	}
	return "<" + e.URL + ">"
}

// Fallback renders <#channel_id>
func (e ChannelElement) Fallback() string {
	if e.ChannelID == "" {
		return ""
	}
	return "<#" + e.ChannelID + ">"
}

// Fallback renders <!subteam^usergroup_id>
func (e UserGroupElement) Fallback() string {
	if e.UserGroupID == "" {
		return ""
	}
	return "<!subteam^" + e.UserGroupID + ">"
}

// Fallback renders <!range>
func (e BroadcastElement) Fallback() string {
	if e.Range == "" {
		return ""
	}
	return "<!" + e.Range + ">"
}

// NewText creates an unstyled text run
func NewText(text string) TextElement {
	return TextElement{Type: "text", Text: text}
}

// NewStyledText creates a text run with one style applied
func NewStyledText(text string, style Style) TextElement {
	st := &TextStyle{}
	switch style {
	case StyleBold:
		st.Bold = true
	case StyleItalic:
		st.Italic = true
	case StyleStrike:
		st.Strike = true
	case StyleUnderline:
		st.Underline = true
	}
	return TextElement{Type: "text", Text: text, Style: st}
}

// NewUser creates a user mention element
func NewUser(userID string) UserElement {
	return UserElement{Type: "user", UserID: userID}
}

// NewEmoji creates an emoji element
func NewEmoji(name string) EmojiElement {
	return EmojiElement{Type: "emoji", Name: name}
}

// NewLink creates a link element; label may be empty
func NewLink(url, label string) LinkElement {
	return LinkElement{Type: "link", URL: url, Text: label}
}

// NewChannel creates a channel reference element
func NewChannel(channelID string) ChannelElement {
	return ChannelElement{Type: "channel", ChannelID: channelID}
}

// NewUserGroup creates a user-group reference element
func NewUserGroup(usergroupID string) UserGroupElement {
	return UserGroupElement{Type: "usergroup", UserGroupID: usergroupID}
}

// NewBroadcast creates a broadcast element
func NewBroadcast(rng string) BroadcastElement {
	return BroadcastElement{Type: "broadcast", Range: rng}
}

// Section is a rich_text_section holding inline elements
type Section struct {
	Type     string    `json:"type"`
	Elements []Element `json:"elements"`
}

// Block is a rich_text block holding sections
type Block struct {
	Type     string    `json:"type"`
	Elements []Section `json:"elements"`
}

// Content pairs the rich-content tree with its flat-text fallback
type Content struct {
	Text   string
	Blocks []Block
}

// FallbackText linearizes inline elements to the plain-text equivalent
func FallbackText(elements []Element) string {
	var out string
	for _, el := range elements {
		out += el.Fallback()
	}
	return out
}

// WrapElements builds a structurally valid rich-content tree around the
// given inline elements. An empty element list still yields an
// empty-but-present tree so file-only messages remain schema-valid.
func WrapElements(elements []Element) Content {
	if elements == nil {
		elements = []Element{}
	}
	return Content{
		Text: FallbackText(elements),
		Blocks: []Block{{
			Type: "rich_text",
			Elements: []Section{{
				Type:     "rich_text_section",
				Elements: elements,
			}},
		}},
	}
}
