package main

import (
	"bytes"
	"strings"
	"testing"
)

// TestNewCheckCmd tests the check command creation.
func TestNewCheckCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCheckCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "check" {
			t.Errorf("expected use 'check', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})
}

// TestRunCheckCmd tests the check command execution.
func TestRunCheckCmd(t *testing.T) {
	t.Parallel()

	t.Run("reports problems but still exits cleanly", func(t *testing.T) {
		t.Parallel()

		// An empty installation root has no profiles and no server
		// build, so the listing must contain problems.
		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"check", "--root", t.TempDir()})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("check must not fail the process, got %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "problem(s) found") {
			t.Errorf("expected problem count in the listing, got %q", output)
		}
		if !strings.Contains(output, "no profiles under") {
			t.Errorf("expected missing-profiles line, got %q", output)
		}
	})
}
