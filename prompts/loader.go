package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptKey is a type for identifying specific prompts.
type PromptKey string

const (
	// KeyAssistantInstructions is the key for the assistant system prompt.
	KeyAssistantInstructions PromptKey = "AssistantInstructions"
	// KeyAssistantGreeting is the key for the opening line of a conversation.
	KeyAssistantGreeting PromptKey = "AssistantGreeting"
)

// DirName is the prompts directory inside the project config directory.
const DirName = "prompts"

// promptConfig defines the default content and filename for a prompt.
type promptConfig struct {
	defaultContent string
	filename       string
}

// promptRegistry maps a PromptKey to its configuration.
var promptRegistry = map[PromptKey]promptConfig{
	KeyAssistantInstructions: {
		defaultContent: AssistantInstructions,
		filename:       "assistant_instructions.txt",
	},
	KeyAssistantGreeting: {
		defaultContent: AssistantGreeting,
		filename:       "assistant_greeting.txt",
	},
}

// GetPrompt returns the content of <templatesDir>/<file> for key when that
// file exists and is not blank, and the built-in default otherwise. The
// second return value is the path of the override, or "" for the default.
func GetPrompt(key PromptKey, templatesDir string) (string, string, error) {
	config, ok := promptRegistry[key]
	if !ok {
		return "", "", fmt.Errorf("unrecognized prompt key: %s", key)
	}

	if strings.TrimSpace(templatesDir) == "" {
		return config.defaultContent, "", nil
	}

	customPromptPath := filepath.Join(templatesDir, config.filename)
	content, err := os.ReadFile(customPromptPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config.defaultContent, "", nil
		}
		return "", "", fmt.Errorf("failed to read custom prompt file at %s: %w", customPromptPath, err)
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return config.defaultContent, "", nil
	}
	return text, customPromptPath, nil
}
