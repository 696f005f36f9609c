package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newInstallRoot builds a minimal installation with two profiles and
// returns its path.
func newInstallRoot(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "config", "profiles"), 0750); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{
		filepath.Join("config", "gytmdl.json"),
		filepath.Join("config", "profiles", "flac.json"),
	} {
		if err := os.WriteFile(filepath.Join(root, p), []byte("{}\n"), 0600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// TestProfilesCmd tests the profiles listing through the root command,
// which also exercises flag and settings resolution.
func TestProfilesCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists discovered profiles grouped", func(t *testing.T) {
		t.Parallel()

		root := newInstallRoot(t)

		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"profiles", "--root", root})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Available profiles (2):") {
			t.Errorf("expected profile count, got %q", output)
		}
		if !strings.Contains(output, "gytmdl") {
			t.Error("expected main profile in the listing")
		}
		if !strings.Contains(output, "profiles/") || !strings.Contains(output, "flac") {
			t.Error("expected grouped sub-profile in the listing")
		}
	})

	t.Run("reports an empty installation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"profiles", "--root", t.TempDir()})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No profiles found") {
			t.Errorf("expected empty-installation message, got %q", buf.String())
		}
	})

	t.Run("root from settings file is honored", func(t *testing.T) {
		t.Parallel()

		root := newInstallRoot(t)
		settingsPath := filepath.Join(t.TempDir(), "settings.yaml")
		if err := os.WriteFile(settingsPath, []byte("root: "+root+"\n"), 0600); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"profiles", "--config", settingsPath})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Available profiles (2):") {
			t.Errorf("expected profiles from settings root, got %q", buf.String())
		}
	})

	t.Run("explicit missing settings file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"profiles", "--config", filepath.Join(t.TempDir(), "none.yaml")})

		if err := cmd.Execute(); err == nil {
			t.Fatal("expected an error for a missing explicit settings file")
		}
	})

	t.Run("invalid settings are rejected", func(t *testing.T) {
		t.Parallel()

		settingsPath := filepath.Join(t.TempDir(), "settings.yaml")
		if err := os.WriteFile(settingsPath, []byte("max_retries: -1\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"profiles", "--config", settingsPath})

		if err := cmd.Execute(); err == nil {
			t.Fatal("expected a validation error")
		}
	})
}

// TestUnknownCommand ensures typos surface as errors instead of silently
// printing help.
func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"downlaod"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}
