package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const validDay = `[
  {
    "type": "message",
    "ts": "1767225600",
    "user": "U111",
    "text": "hello there",
    "blocks": [
      {
        "type": "rich_text",
        "elements": [
          {
            "type": "rich_text_section",
            "elements": [
              {"type": "text", "text": "hello "},
              {"type": "text", "text": "there", "style": {"bold": true}},
              {"type": "emoji", "name": "smile"},
              {"type": "user", "user_id": "U222"},
              {"type": "link", "url": "https://example.com"}
            ]
          }
        ]
      }
    ]
  }
]`

func validTree(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, dir, "dms.json", `[{"id": "D123", "created": 1767225600, "members": ["U111", "U222"]}]`)
	writeFile(t, dir, "mpims.json", `[{"id": "G456", "name": "team", "created": 1767225600, "creator": "U111", "is_archived": false, "members": ["U111", "U222"], "topic": {"value": "", "creator": "U111", "last_set": 0}, "purpose": {"value": "x", "creator": "U111", "last_set": 0}}]`)
	writeFile(t, dir, "D123/2026-01-01.json", validDay)
	return dir
}

func TestExport_ValidTree(t *testing.T) {
	report, err := Export(validTree(t))
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !report.OK() {
		t.Fatalf("Expected no errors, got %v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", report.Warnings)
	}
}

func TestExport_MissingDirectory(t *testing.T) {
	if _, err := Export(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Expected error for a missing directory")
	}
}

func TestExport_MissingMetadata(t *testing.T) {
	report, err := Export(t.TempDir())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if report.OK() {
		t.Fatal("Expected errors for missing metadata")
	}
	assertError(t, report, "dms.json is missing")
	assertError(t, report, "mpims.json is missing")
}

func TestExport_BadDmMembers(t *testing.T) {
	dir := validTree(t)
	writeFile(t, dir, "dms.json", `[{"id": "D123", "created": 1, "members": ["U111"]}]`)

	report, _ := Export(dir)
	assertError(t, report, "exactly 2 user IDs")
}

func TestExport_EmptyChannelFolder(t *testing.T) {
	dir := validTree(t)
	if err := os.MkdirAll(filepath.Join(dir, "empty-channel"), 0755); err != nil {
		t.Fatal(err)
	}

	report, _ := Export(dir)
	assertError(t, report, "no date files")
}

func TestExport_BadMessages(t *testing.T) {
	dir := validTree(t)
	writeFile(t, dir, "D123/2026-01-02.json", `[
  {"type": "wrong", "ts": 5, "text": "x", "blocks": []},
  {"type": "message", "ts": "1767225700", "subtype": "bot_message", "text": "", "blocks": []}
]`)

	report, _ := Export(dir)
	assertError(t, report, "message.type must be")
	assertError(t, report, "message.ts must be a string")
	assertError(t, report, "bot_message must have bot_id")
	assertWarning(t, report, "typically has username")
}

func TestExport_FileFieldChecks(t *testing.T) {
	dir := validTree(t)
	writeFile(t, dir, "D123/2026-01-02.json", `[
  {
    "type": "message", "ts": "1767225700", "user": "U111", "text": "", "blocks": [],
    "files": [{"id": "F1", "name": "a.png", "mimetype": "image/png", "created": 1}]
  }
]`)

	report, _ := Export(dir)
	assertError(t, report, "must have user_team")
	assertError(t, report, "must have editable")
	assertError(t, report, "must have file_access")
	assertError(t, report, "must have permalink_public")
	assertError(t, report, "must have display_as_bot")
}

func TestExport_RichTextChecks(t *testing.T) {
	dir := validTree(t)
	writeFile(t, dir, "D123/2026-01-02.json", `[
  {
    "type": "message", "ts": "1767225700", "user": "U111", "text": "x",
    "blocks": [
      {
        "type": "rich_text",
        "elements": [
          {
            "type": "rich_text_section",
            "elements": [
              {"type": "hologram"},
              {"type": "text", "text": "ok", "style": {"blink": true}},
              {"type": "user", "user_id": ""},
              {"type": "link", "url": ""}
            ]
          }
        ]
      }
    ]
  }
]`)

	report, _ := Export(dir)
	assertWarning(t, report, `unknown rich text element type "hologram"`)
	assertWarning(t, report, `text style key "blink"`)
	assertError(t, report, "user element must have user_id")
	assertError(t, report, "link element must have url")
}

func TestExport_SeenTypes(t *testing.T) {
	dir := validTree(t)
	writeFile(t, dir, "D123/2026-01-02.json", `[
  {
    "type": "message", "ts": "1767225700", "user": "U111", "text": "caption", "blocks": [],
    "is_pinned": true,
    "reply_count": 1, "reply_users": ["U222"], "reply_users_count": 1,
    "reactions": [{"name": "fire", "count": 1, "users": ["U222"]}],
    "edited": {"user": "U111", "ts": "1767225760"},
    "files": [
      {"id": "F1", "name": "Sticker1.png", "mimetype": "image/png", "created": 1, "user_team": "T1", "editable": false, "file_access": "visible", "permalink_public": "https://x", "display_as_bot": false},
      {"id": "F2", "name": "cat.gif", "mimetype": "image/gif", "filetype": "gif", "created": 1, "user_team": "T1", "editable": false, "file_access": "visible", "permalink_public": "https://x", "display_as_bot": false}
    ]
  },
  {"type": "message", "ts": "1767225760", "user": "U222", "text": "r", "blocks": [], "thread_ts": "1767225700"}
]`)

	report, _ := Export(dir)
	if !report.OK() {
		t.Fatalf("Unexpected errors: %v", report.Errors)
	}

	seen := make(map[string]bool)
	for _, x := range report.SeenTypes() {
		seen[x] = true
	}
	for _, want := range []string{
		"pinned", "thread_parent", "thread_reply", "reactions", "edited",
		"files", "multiple_files", "files_with_text", "file_sticker", "file_gif",
	} {
		if !seen[want] {
			t.Errorf("Type %q not tracked", want)
		}
	}
}

func assertError(t *testing.T, r *Report, fragment string) {
	t.Helper()
	for _, e := range r.Errors {
		if strings.Contains(e, fragment) {
			return
		}
	}
	t.Errorf("No error containing %q in %v", fragment, r.Errors)
}

func assertWarning(t *testing.T, r *Report, fragment string) {
	t.Helper()
	for _, w := range r.Warnings {
		if strings.Contains(w, fragment) {
			return
		}
	}
	t.Errorf("No warning containing %q in %v", fragment, r.Warnings)
}
