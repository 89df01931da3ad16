package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetPrompt_Defaults(t *testing.T) {
	templatesDir := t.TempDir()

	tests := []struct {
		name      string
		promptKey PromptKey
		contains  string
	}{
		{"assistant instructions", KeyAssistantInstructions, "confirm before marking a task complete"},
		{"assistant greeting", KeyAssistantGreeting, "add buy milk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, source, err := GetPrompt(tt.promptKey, templatesDir)
			if err != nil {
				t.Fatalf("GetPrompt() error = %v", err)
			}
			if source != "" {
				t.Errorf("GetPrompt() source = %q, want default", source)
			}
			if !strings.Contains(prompt, tt.contains) {
				t.Errorf("GetPrompt(%v) missing expected content %q", tt.promptKey, tt.contains)
			}
		})
	}
}

func TestGetPrompt_Override(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assistant_greeting.txt")
	if err := os.WriteFile(path, []byte("  Hello there.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	prompt, source, err := GetPrompt(KeyAssistantGreeting, dir)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if prompt != "Hello there." {
		t.Errorf("GetPrompt() = %q, want trimmed override", prompt)
	}
	if source != path {
		t.Errorf("GetPrompt() source = %q, want %q", source, path)
	}
}

func TestGetPrompt_BlankOverrideFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "assistant_instructions.txt"), []byte("\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	prompt, _, err := GetPrompt(KeyAssistantInstructions, dir)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if prompt != AssistantInstructions {
		t.Errorf("GetPrompt() = %q, want default", prompt)
	}
}

func TestGetPrompt_UnknownKey(t *testing.T) {
	if _, _, err := GetPrompt("Nope", ""); err == nil {
		t.Error("GetPrompt() with unknown key should fail")
	}
}
