package cmd

import (
	"bytes"
	"testing"
)

func TestRootCommandHelp(t *testing.T) {
	// Test that root command executes and shows help
	cmd := NewRootCommand()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	output := buf.String()
	if output == "" {
		t.Fatal("Expected help output, got empty string")
	}

	// Verify it contains expected content
	for _, want := range []string{"booklore-sync", "--repo", "GITHUB_OUTPUT"} {
		if !bytes.Contains([]byte(output), []byte(want)) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}
	if bytes.Contains([]byte(output), []byte("--api-url")) {
		t.Error("Expected hidden --api-url flag to be absent from help")
	}
}

func TestRootCommandVersion(t *testing.T) {
	cmd := NewRootCommand()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	output := buf.String()
	// Cobra uses first word of Use field for version output
	if !bytes.Contains([]byte(output), []byte("version")) {
		t.Errorf("Expected version output to contain 'version', got: %s", output)
	}
	if !bytes.Contains([]byte(output), []byte(getVersion())) {
		t.Errorf("Expected version output to contain %q, got: %s", getVersion(), output)
	}
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"unexpected"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("Expected error for positional argument, got nil")
	}
}

func TestGetVersion_LdflagsOverride(t *testing.T) {
	saved := version
	defer func() { version = saved }()

	version = "9.9.9"
	if got := getVersion(); got != "9.9.9" {
		t.Errorf("Expected ldflags version, got %q", got)
	}
}
