package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/internal/config"
	"github.com/josephgoksu/taskvoice/internal/logger"
	"github.com/josephgoksu/taskvoice/prompts"
)

// Instructions is the default system prompt given to the assistant.
const Instructions = prompts.AssistantInstructions

// Assistant keeps one conversation with a tool-calling model.
type Assistant struct {
	agent *react.Agent
	log   *log.Logger

	mu      sync.Mutex
	history []*schema.Message
}

// Option configures an Assistant.
type Option func(*assistantOptions)

type assistantOptions struct {
	maxSteps     int
	instructions string
	log          *log.Logger
}

// WithMaxSteps sets the ReAct step limit.
func WithMaxSteps(n int) Option {
	return func(o *assistantOptions) {
		if n > 0 {
			o.maxSteps = n
		}
	}
}

// WithInstructions replaces the system prompt. Blank text keeps the default.
func WithInstructions(text string) Option {
	return func(o *assistantOptions) {
		if strings.TrimSpace(text) != "" {
			o.instructions = text
		}
	}
}

// WithLogger sets the logger for turn diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *assistantOptions) { o.log = l }
}

// NewAssistant builds a ReAct agent over the task tools.
func NewAssistant(ctx context.Context, chatModel model.ToolCallingChatModel, surface *actions.Surface, opts ...Option) (*Assistant, error) {
	o := assistantOptions{maxSteps: config.DefaultMaxSteps, instructions: Instructions, log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	invokable := CreateEinoTools(surface)
	baseTools := make([]tool.BaseTool, len(invokable))
	for i, t := range invokable {
		baseTools[i] = t
	}

	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: chatModel,
		ToolsConfig:      compose.ToolsNodeConfig{Tools: baseTools},
		MaxStep:          o.maxSteps,
		MessageModifier: func(ctx context.Context, msgs []*schema.Message) []*schema.Message {
			return append([]*schema.Message{schema.SystemMessage(o.instructions)}, msgs...)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create ReAct agent: %w", err)
	}

	return &Assistant{agent: agent, log: o.log}, nil
}

// Respond runs one user turn and returns the assistant's reply. A failed
// turn leaves the history unchanged.
func (a *Assistant) Respond(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	logger.SetLastInput(input)

	a.mu.Lock()
	defer a.mu.Unlock()

	msgs := append(append([]*schema.Message{}, a.history...), schema.UserMessage(input))
	reply, err := a.agent.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("assistant turn: %w", err)
	}

	a.history = append(msgs, schema.AssistantMessage(reply.Content, nil))
	a.log.Debug("turn complete", "history", len(a.history))
	return strings.TrimSpace(reply.Content), nil
}

// Reset forgets the conversation so far.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = nil
}
