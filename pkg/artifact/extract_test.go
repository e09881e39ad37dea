package artifact

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "drivers.zip")
	data := writeZip(t, map[string]string{
		"postgresql-42.2.18.jar": "jar bytes",
		"lib/checker-qual.jar":   "nested jar",
	})
	if err := os.WriteFile(archive, data, 0o644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "out")
	if err := extractZip(archive, dest); err != nil {
		t.Fatalf("extractZip() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "postgresql-42.2.18.jar"))
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if string(got) != "jar bytes" {
		t.Errorf("extracted content = %q, want %q", got, "jar bytes")
	}

	if _, err := os.Stat(filepath.Join(dest, "lib", "checker-qual.jar")); err != nil {
		t.Errorf("nested entry should be extracted: %v", err)
	}
}

func TestExtractZipRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	data := writeZip(t, map[string]string{
		"../escape.jar": "should not land here",
	})
	if err := os.WriteFile(archive, data, 0o644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "out")
	if err := extractZip(archive, dest); err == nil {
		t.Fatal("extractZip should reject entries that escape the destination")
	}

	if _, err := os.Stat(filepath.Join(dir, "escape.jar")); !os.IsNotExist(err) {
		t.Error("traversal entry must not be written outside the destination")
	}
}

func TestSecurePath(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{"plain file", "driver.jar", false},
		{"nested file", "lib/driver.jar", false},
		{"parent traversal", "../driver.jar", true},
		{"deep traversal", "a/../../driver.jar", true},
		{"absolute path", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := securePath(tt.entry, "/dest")
			if (err != nil) != tt.wantErr {
				t.Errorf("securePath(%q) error = %v, wantErr %v", tt.entry, err, tt.wantErr)
			}
		})
	}
}
