package usecase

import (
	"math/rand"
	"net/url"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
)

// fileDef is one entry of the attachment candidate pool
type fileDef struct {
	kind       domain.FileKind
	ext        string
	mimetype   string
	filetype   string
	prettyType string
}

var fileDefs = []fileDef{
	// Plain files
	{domain.FileKindPlain, "png", "image/png", "png", "PNG"},
	{domain.FileKindPlain, "jpg", "image/jpeg", "jpg", "JPEG"},
	{domain.FileKindPlain, "pdf", "application/pdf", "pdf", "PDF"},
	{domain.FileKindPlain, "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "docx", "Word Document"},
	{domain.FileKindPlain, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", "Excel Spreadsheet"},
	{domain.FileKindPlain, "txt", "text/plain", "text", "Plain Text"},
	{domain.FileKindPlain, "mp4", "video/mp4", "mp4", "MP4 Video"},
	{domain.FileKindPlain, "mov", "video/quicktime", "mov", "QuickTime Video"},
	{domain.FileKindPlain, "mp3", "audio/mpeg", "mp3", "MP3 Audio"},

	// GIFs (treated as files)
	{domain.FileKindGIF, "gif", "image/gif", "gif", "GIF"},

	// Stickers (treated as files)
	{domain.FileKindSticker, "png", "image/png", "png", "PNG"},
}

// Name pools deliberately include special characters, unicode and
// shell-hostile names; downstream consumers must survive them.
var plainNameBases = []string{
	"Quarterly Report (Final)",
	"Project Plan v2.1",
	"Screenshot 2026-01-01 10.30.00",
	"Invoice #12345",
	"Meeting Notes — Q1",
	"Résumé – José Álvarez",
	"Design ✨ Mockup",
	"specs [draft] (v3)",
	"budget_€_2026",
	"ファイル",
}

var gifNameBases = []string{
	"funny-cat",
	"reaction-gif 😂",
	"party-time 🎉",
	"loading…",
	"mood—friday",
}

var stickerNameBases = []string{
	"Sticker — thumbs-up",
	"Sticker — heart",
	"Sticker — clap",
	"Sticker ✨",
	"ステッカー",
}

// FileSynthesizer produces realistic file attachment records
type FileSynthesizer struct {
	rng *rand.Rand
}

// NewFileSynthesizer creates a file synthesizer over the given source
func NewFileSynthesizer(rng *rand.Rand) *FileSynthesizer {
	return &FileSynthesizer{rng: rng}
}

// Make picks count definitions at random from the kind-filtered
// candidate pool and fills in every field the export schema mandates
func (s *FileSynthesizer) Make(uploaderID string, ts int64, count int, allowed []domain.FileKind) []domain.FileRecord {
	return s.MakeWithRequired(uploaderID, ts, count, nil, allowed)
}

// MakeWithRequired works like Make but guarantees the first files take
// the required kinds in order, so forced sticker/GIF coverage cannot be
// lost to the random draw
func (s *FileSynthesizer) MakeWithRequired(uploaderID string, ts int64, count int, required, allowed []domain.FileKind) []domain.FileRecord {
	if count < 1 {
		count = 1
	}

	pool := defsForKinds(allowed)
	files := make([]domain.FileRecord, 0, count)
	for i := 0; i < count; i++ {
		var def fileDef
		if i < len(required) {
			def = pickOne(s.rng, defsForKinds([]domain.FileKind{required[i]}))
		} else {
			def = pickOne(s.rng, pool)
		}
		files = append(files, s.record(def, uploaderID, ts))
	}
	return files
}

func defsForKinds(kinds []domain.FileKind) []fileDef {
	if len(kinds) == 0 {
		return fileDefs
	}
	want := make(map[domain.FileKind]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}
	var out []fileDef
	for _, d := range fileDefs {
		if _, ok := want[d.kind]; ok {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return fileDefs
	}
	return out
}

func (s *FileSynthesizer) record(def fileDef, uploaderID string, ts int64) domain.FileRecord {
	fileID := NewFileID(s.rng)

	var base string
	switch def.kind {
	case domain.FileKindGIF:
		base = pickOne(s.rng, gifNameBases)
	case domain.FileKindSticker:
		base = pickOne(s.rng, stickerNameBases)
	default:
		base = pickOne(s.rng, plainNameBases)
	}
	name := base + "." + def.ext
	escaped := url.PathEscape(name)

	permalinkUser := uploaderID
	if permalinkUser == "" {
		permalinkUser = "UUNKNOWN"
	}

	return domain.FileRecord{
		ID:         fileID,
		Created:    ts,
		Timestamp:  ts,
		Name:       name,
		Title:      name,
		Mimetype:   def.mimetype,
		Filetype:   def.filetype,
		PrettyType: def.prettyType,
		User:       uploaderID,
		UserTeam:   "T1234567890",
		Editable:   def.filetype == "text",
		Size:       randInt(s.rng, 10_000, 5_000_000),
		Mode:       "hosted",

		IsExternal:      false,
		ExternalType:    "",
		IsPublic:        false,
		PublicURLShared: false,
		DisplayAsBot:    false,
		FileAccess:      "visible",

		URLPrivate:         "https://files.slack.com/files-pri/T1234567890-" + fileID + "/" + escaped,
		URLPrivateDownload: "https://files.slack.com/files-pri/T1234567890-" + fileID + "/" + escaped + "?download=1",
		Permalink:          "https://slack.com/files/" + permalinkUser + "/" + fileID + "/" + escaped,
		PermalinkPublic:    "https://slack-files.com/T1234567890-" + fileID + "-" + escaped,
	}
}
