package domain

// FileRecord is a synthetic file attachment conforming field-for-field
// to the Slack export file object, including the export-format fields
// (user_team, editable, file_access, permalink_public, display_as_bot)
// the downstream validator requires.
type FileRecord struct {
	ID        string `json:"id"`
	Created   int64  `json:"created"`
	Timestamp int64  `json:"timestamp"`

	Name       string `json:"name"`
	Title      string `json:"title"`
	Mimetype   string `json:"mimetype"`
	Filetype   string `json:"filetype"`
	PrettyType string `json:"pretty_type"`

	User     string `json:"user,omitempty"`
	UserTeam string `json:"user_team"`
	Editable bool   `json:"editable"`
	Size     int    `json:"size"`
	Mode     string `json:"mode"`

	IsExternal      bool   `json:"is_external"`
	ExternalType    string `json:"external_type"`
	IsPublic        bool   `json:"is_public"`
	PublicURLShared bool   `json:"public_url_shared"`
	DisplayAsBot    bool   `json:"display_as_bot"`
	FileAccess      string `json:"file_access"`

	URLPrivate         string `json:"url_private"`
	URLPrivateDownload string `json:"url_private_download"`
	Permalink          string `json:"permalink"`
	PermalinkPublic    string `json:"permalink_public"`
}
