package domain

import (
	"reflect"
	"testing"
)

func TestGenerationConfig_Validate(t *testing.T) {
	valid := GenerationConfig{StartDate: "2026-01-01", NumberOfDates: 1, MessagesPerDate: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	tests := []struct {
		name string
		cfg  GenerationConfig
	}{
		{"missing start date", GenerationConfig{NumberOfDates: 1, MessagesPerDate: 1}},
		{"zero dates", GenerationConfig{StartDate: "2026-01-01", MessagesPerDate: 1}},
		{"zero messages", GenerationConfig{StartDate: "2026-01-01", NumberOfDates: 1}},
		{"negative replies", GenerationConfig{StartDate: "2026-01-01", NumberOfDates: 1, MessagesPerDate: 1, RepliesPerMessage: -1}},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if _, ok := err.(*DateConfigurationError); !ok {
			t.Errorf("%s: expected DateConfigurationError, got %T", tt.name, err)
		}
	}
}

func TestGenerationConfig_EnabledStyles(t *testing.T) {
	cfg := GenerationConfig{FormatBold: true, FormatUnderline: true}
	want := []Style{StyleBold, StyleUnderline}
	if got := cfg.EnabledStyles(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestGenerationConfig_DependentToggles(t *testing.T) {
	cfg := GenerationConfig{IncludeDoubleMentions: true, IncludeThreadReplies: true, RepliesPerMessage: 3}

	if cfg.AllowDoubleMentions() {
		t.Error("Double mentions require mentions to be enabled")
	}
	if cfg.AllowThreadReplies() {
		t.Error("Thread replies require threads to be enabled")
	}
	if cfg.RepliesPerParent() != 0 {
		t.Errorf("Expected 0 replies per parent, got %d", cfg.RepliesPerParent())
	}

	cfg.IncludeMentions = true
	cfg.IncludeThreads = true
	if !cfg.AllowDoubleMentions() || !cfg.AllowThreadReplies() {
		t.Error("Expected dependent toggles enabled with their parents")
	}
	if cfg.RepliesPerParent() != 3 {
		t.Errorf("Expected 3 replies per parent, got %d", cfg.RepliesPerParent())
	}
}

func TestGenerationConfig_AllowedFileKinds(t *testing.T) {
	cfg := GenerationConfig{IncludeStickers: true, IncludeGifs: true}
	want := []FileKind{FileKindSticker, FileKindGIF}
	if got := cfg.AllowedFileKinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// The pool never comes back empty
	empty := GenerationConfig{}
	if got := empty.AllowedFileKinds(); !reflect.DeepEqual(got, []FileKind{FileKindPlain}) {
		t.Errorf("Expected plain fallback, got %v", got)
	}
}
