package service

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
	"github.com/anthropics/slack-export-forge/internal/validate"
)

func fullRequest() *ExportRequest {
	return &ExportRequest{
		OneOnOneDMs: []domain.PairConversation{
			{ChannelID: "D1234567890", UserID1: "U111", UserID2: "U222"},
		},
		GroupDMs: []domain.GroupConversation{
			{GroupName: "project-sync", ChannelID: "G9876543210", CreatorUserID: "U111", MemberUserIDs: "U222, U333"},
		},
		MessageRules: domain.GenerationConfig{
			StartDate:         "2026-01-01",
			NumberOfDates:     2,
			MessagesPerDate:   18,
			RepliesPerMessage: 2,

			FormatBold:          true,
			FormatItalic:        true,
			FormatStrikethrough: true,
			FormatUnderline:     true,

			IncludeEmojis:         true,
			IncludeMentions:       true,
			IncludeDoubleMentions: true,
			IncludeLinks:          true,
			IncludeReactions:      true,
			IncludeStickers:       true,
			IncludeGifs:           true,
			IncludeFilesWithText:  true,
			IncludeMultipleFiles:  true,

			IncludeBotMessages:       true,
			IncludePinnedMessages:    true,
			IncludeThreads:           true,
			IncludeThreadReplies:     true,
			IncludeForwardedMessages: true,
			IncludeEditedMessages:    true,
		},
	}
}

func TestGenerate_ExportTree(t *testing.T) {
	svc := NewExportService(rand.New(rand.NewSource(1)))
	dir := t.TempDir()

	if err := svc.Generate(fullRequest(), dir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Metadata
	var dms []map[string]any
	readInto(t, filepath.Join(dir, "dms.json"), &dms)
	if len(dms) != 1 {
		t.Fatalf("Expected 1 dm, got %d", len(dms))
	}
	if dms[0]["id"] != "D1234567890" {
		t.Errorf("Wrong dm id %v", dms[0]["id"])
	}
	members, _ := dms[0]["members"].([]any)
	if len(members) != 2 || members[0] != "U111" || members[1] != "U222" {
		t.Errorf("Wrong dm members %v", members)
	}

	var mpims []map[string]any
	readInto(t, filepath.Join(dir, "mpims.json"), &mpims)
	if len(mpims) != 1 {
		t.Fatalf("Expected 1 mpim, got %d", len(mpims))
	}
	if mpims[0]["name"] != "project-sync" || mpims[0]["creator"] != "U111" {
		t.Errorf("Wrong mpim metadata %v", mpims[0])
	}
	groupMembers, _ := mpims[0]["members"].([]any)
	if len(groupMembers) != 3 || groupMembers[0] != "U111" {
		t.Errorf("Creator must lead the member list, got %v", groupMembers)
	}
	purpose, _ := mpims[0]["purpose"].(map[string]any)
	if purpose["value"] != "Group Channel From U111" {
		t.Errorf("Wrong purpose %v", purpose)
	}

	// Conversation folders: channel ID for the pair, group name for the group
	for _, folder := range []string{"D1234567890", "project-sync"} {
		for _, day := range []string{"2026-01-01.json", "2026-01-02.json"} {
			path := filepath.Join(dir, folder, day)
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Missing %s/%s: %v", folder, day, err)
			}
			if data[len(data)-1] != '\n' {
				t.Errorf("%s/%s missing trailing newline", folder, day)
			}
			var msgs []map[string]any
			if err := json.Unmarshal(data, &msgs); err != nil {
				t.Fatalf("%s/%s not a JSON array: %v", folder, day, err)
			}
			if len(msgs) < 18 {
				t.Errorf("%s/%s has %d messages, expected at least 18", folder, day, len(msgs))
			}
		}

		entries, err := os.ReadDir(filepath.Join(dir, folder))
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 2 {
			t.Errorf("Folder %s has %d files, expected exactly 2", folder, len(entries))
		}
	}
}

// The generated tree must satisfy the independent structural validator.
func TestGenerate_PassesValidation(t *testing.T) {
	svc := NewExportService(rand.New(rand.NewSource(2)))
	dir := t.TempDir()

	if err := svc.Generate(fullRequest(), dir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	report, err := validate.Export(dir)
	if err != nil {
		t.Fatalf("Validation failed to run: %v", err)
	}
	if !report.OK() {
		t.Fatalf("Validation errors: %v", report.Errors)
	}

	seen := make(map[string]bool)
	for _, x := range report.SeenTypes() {
		seen[x] = true
	}
	for _, want := range []string{
		"bot_message", "file_share", "pinned", "thread_parent", "thread_reply",
		"attachments", "files", "multiple_files", "files_with_text",
		"file_sticker", "file_gif", "reactions", "edited",
	} {
		if !seen[want] {
			t.Errorf("Export never exercised %q", want)
		}
	}
}

func TestGenerate_MinimalRules(t *testing.T) {
	svc := NewExportService(rand.New(rand.NewSource(3)))
	dir := t.TempDir()

	req := &ExportRequest{
		OneOnOneDMs: []domain.PairConversation{
			{ChannelID: "D0000000001", UserID1: "U1", UserID2: "U2"},
		},
		GroupDMs: []domain.GroupConversation{},
		MessageRules: domain.GenerationConfig{
			StartDate:       "2026-03-15",
			NumberOfDates:   1,
			MessagesPerDate: 3,
		},
	}
	if err := svc.Generate(req, dir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var msgs []map[string]any
	readInto(t, filepath.Join(dir, "D0000000001", "2026-03-15.json"), &msgs)
	if len(msgs) != 3 {
		t.Fatalf("Expected exactly 3 messages, got %d", len(msgs))
	}
	for i, m := range msgs {
		if m["type"] != "message" {
			t.Errorf("Message %d wrong type %v", i, m["type"])
		}
		if _, ok := m["ts"].(string); !ok {
			t.Errorf("Message %d missing ts", i)
		}
		if _, ok := m["blocks"].([]any); !ok {
			t.Errorf("Message %d missing blocks", i)
		}
	}

	// No group DMs still produces a valid empty mpims.json
	var mpims []any
	readInto(t, filepath.Join(dir, "mpims.json"), &mpims)
	if len(mpims) != 0 {
		t.Errorf("Expected empty mpims, got %v", mpims)
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	svc := NewExportService(rand.New(rand.NewSource(4)))
	dir := filepath.Join(t.TempDir(), "never-created")

	req := fullRequest()
	req.MessageRules.StartDate = ""
	err := svc.Generate(req, dir)

	var dce *domain.DateConfigurationError
	if !errors.As(err, &dce) {
		t.Fatalf("Expected DateConfigurationError, got %v", err)
	}
	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Error("Export directory should not exist after config rejection")
	}
}

func readInto(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to parse %s: %v", path, err)
	}
}
