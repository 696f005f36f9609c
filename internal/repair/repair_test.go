package repair

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes doc as JSON to a fresh file and returns its path.
func writeConfig(t *testing.T, doc map[string]any) string {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "gytmdl.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// readConfig parses the document back for assertions.
func readConfig(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestRepairerApply(t *testing.T) {
	t.Parallel()

	t.Run("removes legacy download mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{
			"download_mode": "aria2c",
			"quality":       "high",
		})

		result := NewRepairer().Apply(path)
		if !result.Fixed {
			t.Fatal("expected a fix")
		}

		doc := readConfig(t, path)
		if _, present := doc["download_mode"]; present {
			t.Error("expected download_mode removed")
		}
		if doc["quality"] != "high" {
			t.Error("unrelated field was not preserved")
		}
	})

	t.Run("non-legacy download mode is left alone", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{"download_mode": "ytdlp"})

		result := NewRepairer().Apply(path)
		if result.Fixed {
			t.Error("expected no fix")
		}
		if readConfig(t, path)["download_mode"] != "ytdlp" {
			t.Error("expected download_mode preserved")
		}
	})

	t.Run("strips bracketed date placeholder with leading space", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{
			"template_folder": "{artist}/{album} [{date:%Y}]",
		})

		result := NewRepairer().Apply(path)
		if !result.Fixed {
			t.Fatal("expected a fix")
		}
		if got := readConfig(t, path)["template_folder"]; got != "{artist}/{album}" {
			t.Errorf("expected clean template, got %q", got)
		}
	})

	t.Run("strips bare date placeholder", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{
			"template_folder": "{artist}/{date:%Y}-{album}",
		})

		result := NewRepairer().Apply(path)
		if !result.Fixed {
			t.Fatal("expected a fix")
		}
		got, _ := readConfig(t, path)["template_folder"].(string)
		if strings.Contains(got, "{date:%Y}") {
			t.Errorf("placeholder still present in %q", got)
		}
		if got != "{artist}/-{album}" {
			t.Errorf("expected surrounding template preserved, got %q", got)
		}
	})

	t.Run("both defects fixed in one pass", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{
			"download_mode":   "aria2c",
			"template_folder": "{album} [{date:%Y}]",
		})

		result := NewRepairer().Apply(path)
		if !result.Fixed {
			t.Fatal("expected a fix")
		}
		if len(result.Applied) != 2 {
			t.Errorf("expected two fixes, got %v", result.Applied)
		}
	})

	t.Run("idempotent: second pass is a no-op", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{
			"download_mode":   "aria2c",
			"template_folder": "{album} [{date:%Y}]",
		})

		first := NewRepairer().Apply(path)
		if !first.Fixed {
			t.Fatal("expected first pass to fix")
		}
		afterFirst, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}

		second := NewRepairer().Apply(path)
		if second.Fixed {
			t.Error("expected second pass to report no fix")
		}
		afterSecond, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(afterFirst) != string(afterSecond) {
			t.Error("second pass changed the file")
		}
	})

	t.Run("clean document untouched", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{"template_folder": "{artist}/{album}"})
		before, _ := os.ReadFile(path)

		result := NewRepairer().Apply(path)
		if result.Fixed {
			t.Error("expected no fix")
		}
		after, _ := os.ReadFile(path)
		if string(before) != string(after) {
			t.Error("clean file was rewritten")
		}
	})

	t.Run("unreadable file reports no fix", func(t *testing.T) {
		t.Parallel()

		result := NewRepairer().Apply(filepath.Join(t.TempDir(), "missing.json"))
		if result.Fixed {
			t.Error("expected no fix for missing file")
		}
	})

	t.Run("invalid JSON reports no fix", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatal(err)
		}

		result := NewRepairer().Apply(path)
		if result.Fixed {
			t.Error("expected no fix for broken file")
		}
	})
}

func TestRepairerBackup(t *testing.T) {
	t.Parallel()

	t.Run("backup written before mutation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{"download_mode": "aria2c"})
		original, _ := os.ReadFile(path)
		backupDir := filepath.Join(t.TempDir(), "backups", "configs")

		result := NewRepairer(WithBackup(backupDir)).Apply(path)
		if !result.Fixed {
			t.Fatal("expected a fix")
		}

		want := filepath.Join(backupDir, "gytmdl_backup.json")
		if result.BackupPath != want {
			t.Errorf("expected backup at %q, got %q", want, result.BackupPath)
		}
		backed, err := os.ReadFile(want)
		if err != nil {
			t.Fatalf("backup not written: %v", err)
		}
		if string(backed) != string(original) {
			t.Error("backup does not match the original document")
		}
	})

	t.Run("no backup when nothing to fix", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{"quality": "high"})
		backupDir := filepath.Join(t.TempDir(), "backups")

		result := NewRepairer(WithBackup(backupDir)).Apply(path)
		if result.Fixed || result.BackupPath != "" {
			t.Errorf("expected untouched document, got %+v", result)
		}
		if _, err := os.Stat(backupDir); !os.IsNotExist(err) {
			t.Error("backup dir should not have been created")
		}
	})

	t.Run("backup failure does not stop the repair", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, map[string]any{"download_mode": "aria2c"})
		// A file where the backup directory should be makes MkdirAll fail.
		blocked := filepath.Join(t.TempDir(), "blocked")
		if err := os.WriteFile(blocked, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}

		result := NewRepairer(WithBackup(filepath.Join(blocked, "configs"))).Apply(path)
		if !result.Fixed {
			t.Error("expected repair to proceed despite backup failure")
		}
		if result.BackupPath != "" {
			t.Errorf("expected no backup path, got %q", result.BackupPath)
		}
	})
}
