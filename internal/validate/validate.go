// Package validate re-parses a generated export tree and checks it
// against the Slack export / Block Kit structure, independently of the
// engine that produced it.
package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var dateFilePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

var richTextElementTypes = map[string]bool{
	"text": true, "user": true, "emoji": true, "link": true,
	"channel": true, "usergroup": true, "broadcast": true,
}

var richTextStyleKeys = map[string]bool{
	"bold": true, "italic": true, "strike": true, "underline": true,
}

// Report collects validation findings and the message-type coverage of
// an export tree
type Report struct {
	Errors   []string
	Warnings []string

	seenTypes map[string]bool
}

// OK reports whether validation found no errors
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// SeenTypes lists the discovered message types, sorted
func (r *Report) SeenTypes() []string {
	types := make([]string, 0, len(r.seenTypes))
	for t := range r.seenTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (r *Report) errf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) see(t string) {
	r.seenTypes[t] = true
}

// Export validates the export tree rooted at dir
func Export(dir string) (*Report, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("export directory not found: %w", err)
	}

	r := &Report{seenTypes: make(map[string]bool)}
	r.validateDms(dir)
	r.validateMpims(dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read export directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			r.validateChannelFolder(filepath.Join(dir, e.Name()), e.Name())
		}
	}
	return r, nil
}

func readJSONArray(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var arr []any
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, err
	}
	return arr, nil
}

func (r *Report) validateDms(dir string) {
	path := filepath.Join(dir, "dms.json")
	if _, err := os.Stat(path); err != nil {
		r.errf("dms.json is missing")
		return
	}
	arr, err := readJSONArray(path)
	if err != nil {
		r.errf("dms.json invalid: %v", err)
		return
	}
	for i, raw := range arr {
		dm, ok := raw.(map[string]any)
		if !ok {
			r.errf("dms.json[%d] must be an object", i)
			continue
		}
		if str(dm["id"]) == "" {
			r.errf("dms.json[%d].id is required", i)
		}
		if _, ok := dm["created"].(float64); !ok {
			r.errf("dms.json[%d].created must be a number", i)
		}
		members, ok := dm["members"].([]any)
		if !ok {
			r.errf("dms.json[%d].members must be an array", i)
		} else if len(members) != 2 {
			r.errf("dms.json[%d].members must have exactly 2 user IDs (got %d)", i, len(members))
		}
	}
}

func (r *Report) validateMpims(dir string) {
	path := filepath.Join(dir, "mpims.json")
	if _, err := os.Stat(path); err != nil {
		r.errf("mpims.json is missing")
		return
	}
	arr, err := readJSONArray(path)
	if err != nil {
		r.errf("mpims.json invalid: %v", err)
		return
	}
	for i, raw := range arr {
		mpim, ok := raw.(map[string]any)
		if !ok {
			r.errf("mpims.json[%d] must be an object", i)
			continue
		}
		if str(mpim["id"]) == "" {
			r.errf("mpims.json[%d].id is required", i)
		}
		if str(mpim["name"]) == "" {
			r.errf("mpims.json[%d].name is required", i)
		}
		if _, ok := mpim["created"].(float64); !ok {
			r.errf("mpims.json[%d].created must be a number", i)
		}
		if str(mpim["creator"]) == "" {
			r.errf("mpims.json[%d].creator is required", i)
		}
		if _, ok := mpim["is_archived"].(bool); !ok {
			r.errf("mpims.json[%d].is_archived must be boolean", i)
		}
		if _, ok := mpim["members"].([]any); !ok {
			r.errf("mpims.json[%d].members must be an array", i)
		}
		if _, ok := mpim["topic"].(map[string]any); !ok {
			r.errf("mpims.json[%d].topic is required", i)
		}
		if _, ok := mpim["purpose"].(map[string]any); !ok {
			r.errf("mpims.json[%d].purpose is required", i)
		}
	}
}

func (r *Report) validateChannelFolder(dir, channel string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.errf("failed to read channel %q: %v", channel, err)
		return
	}

	var dateFiles []string
	for _, e := range entries {
		if !e.IsDir() && dateFilePattern.MatchString(e.Name()) {
			dateFiles = append(dateFiles, e.Name())
		}
	}
	if len(dateFiles) == 0 {
		r.errf("channel %q has no date files (YYYY-MM-DD.json)", channel)
		return
	}

	for _, name := range dateFiles {
		arr, err := readJSONArray(filepath.Join(dir, name))
		if err != nil {
			r.errf("%s/%s invalid: %v", channel, name, err)
			continue
		}
		for i, raw := range arr {
			msg, ok := raw.(map[string]any)
			if !ok {
				r.errf("%s/%s[%d] must be an object", channel, name, i)
				continue
			}
			r.validateMessage(msg, fmt.Sprintf("%s/%s[%d]", channel, name, i))
		}
	}
}

func (r *Report) validateMessage(msg map[string]any, ctx string) {
	if str(msg["type"]) != "message" {
		r.errf("%s: message.type must be %q (got %q)", ctx, "message", str(msg["type"]))
	}
	if _, ok := msg["ts"].(string); !ok {
		r.errf("%s: message.ts must be a string", ctx)
	}
	text, hasText := msg["text"].(string)
	if !hasText {
		r.errf("%s: message.text must be a string (fallback)", ctx)
	}

	blocks, ok := msg["blocks"].([]any)
	if !ok {
		r.errf("%s: message.blocks must be an array", ctx)
	} else if len(blocks) > 0 {
		if first, ok := blocks[0].(map[string]any); ok {
			r.validateRichTextBlock(first, ctx+".blocks[0]")
		}
	}

	r.trackMessageTypes(msg, text)

	if str(msg["subtype"]) == "bot_message" {
		if str(msg["bot_id"]) == "" {
			r.errf("%s: bot_message must have bot_id", ctx)
		}
		if str(msg["username"]) == "" {
			r.warnf("%s: bot_message typically has username", ctx)
		}
	}

	if files, ok := msg["files"].([]any); ok {
		for i, raw := range files {
			f, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if str(f["id"]) == "" || str(f["name"]) == "" || str(f["mimetype"]) == "" || f["created"] == nil {
				r.errf("%s: files[%d] must have id, name, mimetype, created", ctx, i)
			}
			if str(f["user_team"]) == "" {
				r.errf("%s: files[%d] must have user_team (Slack export format)", ctx, i)
			}
			if _, ok := f["editable"]; !ok {
				r.errf("%s: files[%d] must have editable (Slack export format)", ctx, i)
			}
			if _, ok := f["file_access"]; !ok {
				r.errf("%s: files[%d] must have file_access (Slack export format)", ctx, i)
			}
			if str(f["permalink_public"]) == "" {
				r.errf("%s: files[%d] must have permalink_public (Slack export format)", ctx, i)
			}
			if _, ok := f["display_as_bot"]; !ok {
				r.errf("%s: files[%d] must have display_as_bot (Slack export format)", ctx, i)
			}
		}
	}

	if atts, ok := msg["attachments"].([]any); ok {
		for i, raw := range atts {
			att, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if blocks, ok := att["blocks"].([]any); ok && len(blocks) > 0 {
				if first, ok := blocks[0].(map[string]any); ok {
					r.validateRichTextBlock(first, fmt.Sprintf("%s.attachments[%d].blocks[0]", ctx, i))
				}
			}
		}
	}

	if reactions, ok := msg["reactions"].([]any); ok {
		for i, raw := range reactions {
			re, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if str(re["name"]) == "" || re["count"] == nil {
				r.errf("%s: reactions[%d] must have name, users array, count", ctx, i)
				continue
			}
			if _, ok := re["users"].([]any); !ok {
				r.errf("%s: reactions[%d] must have name, users array, count", ctx, i)
			}
		}
	}

	if msg["reply_count"] != nil {
		if _, ok := msg["reply_users"].([]any); !ok {
			r.errf("%s: reply_count present but reply_users must be array", ctx)
		}
		if _, ok := msg["reply_users_count"].(float64); !ok {
			r.warnf("%s: reply_users_count recommended for thread parent", ctx)
		}
	}
}

func (r *Report) validateRichTextBlock(block map[string]any, ctx string) {
	if str(block["type"]) != "rich_text" {
		r.errf("%s: block type must be %q (got %q)", ctx, "rich_text", str(block["type"]))
		return
	}
	sections, ok := block["elements"].([]any)
	if !ok {
		r.errf("%s: rich_text.elements must be an array", ctx)
		return
	}
	for _, raw := range sections {
		section, ok := raw.(map[string]any)
		if !ok || str(section["type"]) != "rich_text_section" {
			continue
		}
		elements, ok := section["elements"].([]any)
		if !ok {
			r.errf("%s: rich_text_section.elements must be an array", ctx)
			continue
		}
		for j, rawEl := range elements {
			el, ok := rawEl.(map[string]any)
			if !ok {
				r.errf("%s: rich_text_section.elements[%d] must be an object", ctx, j)
				continue
			}
			elType := str(el["type"])
			if !richTextElementTypes[elType] {
				r.warnf("%s: unknown rich text element type %q", ctx, elType)
			}
			switch elType {
			case "text":
				if _, ok := el["text"].(string); !ok {
					r.errf("%s: text element must have \"text\" string", ctx)
				}
				if style, ok := el["style"].(map[string]any); ok {
					for k := range style {
						if !richTextStyleKeys[k] {
							r.warnf("%s: text style key %q not in Slack spec", ctx, k)
						}
					}
				}
			case "user":
				if str(el["user_id"]) == "" {
					r.errf("%s: user element must have user_id", ctx)
				}
			case "emoji":
				if str(el["name"]) == "" {
					r.errf("%s: emoji element must have name", ctx)
				}
			case "link":
				if str(el["url"]) == "" {
					r.errf("%s: link element must have url", ctx)
				}
			}
		}
	}
}

// trackMessageTypes records which message types the export exercises.
// Sticker and GIF detection matches substrings in names and extensions;
// the fixture format has no dedicated kind field.
func (r *Report) trackMessageTypes(msg map[string]any, text string) {
	switch str(msg["subtype"]) {
	case "bot_message":
		r.see("bot_message")
	case "file_share":
		r.see("file_share")
	}
	if pinned, ok := msg["is_pinned"].(bool); ok && pinned {
		r.see("pinned")
	}
	if str(msg["thread_ts"]) != "" && msg["reply_count"] == nil {
		r.see("thread_reply")
	}
	if msg["reply_count"] != nil {
		r.see("thread_parent")
	}
	if atts, ok := msg["attachments"].([]any); ok && len(atts) > 0 {
		r.see("attachments")
	}
	if files, ok := msg["files"].([]any); ok && len(files) > 0 {
		r.see("files")
		if len(files) >= 2 {
			r.see("multiple_files")
		}
		if strings.TrimSpace(text) != "" {
			r.see("files_with_text")
		}
		for _, raw := range files {
			f, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			name := str(f["name"])
			if name == "" {
				name = str(f["title"])
			}
			lower := strings.ToLower(name)
			ftype := strings.ToLower(str(f["filetype"]) + str(f["mimetype"]))
			if strings.Contains(lower, "sticker") || strings.Contains(name, "ステッカー") {
				r.see("file_sticker")
			}
			if strings.Contains(ftype, "gif") || strings.HasSuffix(lower, ".gif") {
				r.see("file_gif")
			}
		}
	}
	if reactions, ok := msg["reactions"].([]any); ok && len(reactions) > 0 {
		r.see("reactions")
	}
	if msg["edited"] != nil {
		r.see("edited")
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
