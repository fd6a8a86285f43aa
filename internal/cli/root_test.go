package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := runCLI(t, "", "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{"hashguard", "Integrity Checks:", "Tracking:", "verify-all", "shell"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected help to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	SetVersion("1.2.3")
	defer SetVersion("dev")

	stdout, _, err := runCLI(t, "", "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(stdout) != "1.2.3" {
		t.Errorf("version output = %q, want 1.2.3", stdout)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"invalid-command"})
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for invalid command")
	}
}

func TestSetVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"normal version", "1.2.3", "1.2.3"},
		{"empty version", "", "1.2.3"}, // empty keeps the previous value
		{"dev version", "dev", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersion(tt.version)
			if rootCmd.Version != tt.want {
				t.Errorf("SetVersion(%q) = %q, want %q", tt.version, rootCmd.Version, tt.want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "hashguard") {
		t.Error("expected bash completion script to mention hashguard")
	}
}
