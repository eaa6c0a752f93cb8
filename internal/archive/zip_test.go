package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestZipDir(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "D123"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"dms.json":             `[]`,
		"mpims.json":           `[]`,
		"D123/2026-01-01.json": `[{"type":"message"}]`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(src, filepath.FromSlash(name)), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	zipPath := filepath.Join(t.TempDir(), "export.zip")
	if err := ZipDir(src, zipPath); err != nil {
		t.Fatalf("ZipDir failed: %v", err)
	}

	names, err := EntryNames(zipPath)
	if err != nil {
		t.Fatalf("EntryNames failed: %v", err)
	}
	sort.Strings(names)
	want := []string{"D123/2026-01-01.json", "dms.json", "mpims.json"}
	if len(names) != len(want) {
		t.Fatalf("Expected entries %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected entries %v, got %v", want, names)
		}
	}

	// Content survives the round trip
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Name != "D123/2026-01-01.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != files["D123/2026-01-01.json"] {
			t.Errorf("Entry content corrupted: %q", data)
		}
	}
}

func TestZipDir_MissingSource(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "out.zip")
	if err := ZipDir(filepath.Join(t.TempDir(), "nope"), zipPath); err == nil {
		t.Fatal("Expected error for a missing source directory")
	}
}
