package domain

// Style is a rich-text formatting style
type Style string

const (
	StyleBold      Style = "bold"
	StyleItalic    Style = "italic"
	StyleStrike    Style = "strike"
	StyleUnderline Style = "underline"
)

// FileKind is the attachment kind an enabled toggle selects from
type FileKind string

const (
	FileKindPlain   FileKind = "file"
	FileKindGIF     FileKind = "gif"
	FileKindSticker FileKind = "sticker"
)

// GenerationConfig is the declarative feature-toggle configuration for
// one generation run (the wizard's "message rules")
type GenerationConfig struct {
	StartDate         string `json:"startDate"`
	NumberOfDates     int    `json:"numberOfDates"`
	MessagesPerDate   int    `json:"messagesPerDate"`
	RepliesPerMessage int    `json:"repliesPerMessage"`

	// Formatting toggles
	FormatBold          bool `json:"formatBold"`
	FormatItalic        bool `json:"formatItalic"`
	FormatStrikethrough bool `json:"formatStrikethrough"`
	FormatUnderline     bool `json:"formatUnderline"`

	// Content toggles
	IncludeEmojis         bool `json:"includeEmojis"`
	IncludeMentions       bool `json:"includeMentions"`
	IncludeDoubleMentions bool `json:"includeDoubleMentions"`
	IncludeLinks          bool `json:"includeLinks"`
	IncludeReactions      bool `json:"includeReactions"`
	IncludeStickers       bool `json:"includeStickers"`
	IncludeGifs           bool `json:"includeGifs"`
	IncludeFilesWithText  bool `json:"includeFilesWithText"`
	IncludeMultipleFiles  bool `json:"includeMultipleFiles"`

	// Message type toggles
	IncludeBotMessages       bool `json:"includeBotMessages"`
	IncludePinnedMessages    bool `json:"includePinnedMessages"`
	IncludeThreads           bool `json:"includeThreads"`
	IncludeThreadReplies     bool `json:"includeThreadReplies"`
	IncludeForwardedMessages bool `json:"includeForwardedMessages"`
	IncludeEditedMessages    bool `json:"includeEditedMessages"`
}

// Validate checks the numeric bounds of the configuration
func (c *GenerationConfig) Validate() error {
	if c.StartDate == "" {
		return &DateConfigurationError{Reason: "startDate is required"}
	}
	if c.NumberOfDates < 1 {
		return &DateConfigurationError{Reason: "numberOfDates must be >= 1"}
	}
	if c.MessagesPerDate < 1 {
		return &DateConfigurationError{Reason: "messagesPerDate must be >= 1"}
	}
	if c.RepliesPerMessage < 0 {
		return &DateConfigurationError{Reason: "repliesPerMessage must be >= 0"}
	}
	return nil
}

// EnabledStyles lists the enabled formatting styles in a fixed order
func (c *GenerationConfig) EnabledStyles() []Style {
	var styles []Style
	if c.FormatBold {
		styles = append(styles, StyleBold)
	}
	if c.FormatItalic {
		styles = append(styles, StyleItalic)
	}
	if c.FormatStrikethrough {
		styles = append(styles, StyleStrike)
	}
	if c.FormatUnderline {
		styles = append(styles, StyleUnderline)
	}
	return styles
}

// AllowDoubleMentions is only meaningful when mentions are enabled too
func (c *GenerationConfig) AllowDoubleMentions() bool {
	return c.IncludeMentions && c.IncludeDoubleMentions
}

// AllowThreadReplies is only meaningful when threads are enabled too
func (c *GenerationConfig) AllowThreadReplies() bool {
	return c.IncludeThreads && c.IncludeThreadReplies
}

// AllowAnyFiles checks whether any file-producing toggle is enabled
func (c *GenerationConfig) AllowAnyFiles() bool {
	return c.IncludeStickers || c.IncludeGifs || c.IncludeFilesWithText || c.IncludeMultipleFiles
}

// AllowedFileKinds is the kind-filtered candidate pool for the file
// synthesizer. Falls back to plain files so a file request never draws
// from an empty pool.
func (c *GenerationConfig) AllowedFileKinds() []FileKind {
	var kinds []FileKind
	if c.IncludeStickers {
		kinds = append(kinds, FileKindSticker)
	}
	if c.IncludeGifs {
		kinds = append(kinds, FileKindGIF)
	}
	if c.IncludeFilesWithText || c.IncludeMultipleFiles {
		kinds = append(kinds, FileKindPlain)
	}
	if len(kinds) == 0 {
		kinds = append(kinds, FileKindPlain)
	}
	return kinds
}

// RepliesPerParent is the reply count for a threaded parent, zero when
// thread replies are disabled
func (c *GenerationConfig) RepliesPerParent() int {
	if !c.AllowThreadReplies() {
		return 0
	}
	return c.RepliesPerMessage
}
