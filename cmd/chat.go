package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/internal/agent"
	"github.com/josephgoksu/taskvoice/internal/config"
	"github.com/josephgoksu/taskvoice/internal/llm"
	"github.com/josephgoksu/taskvoice/internal/ui"
	"github.com/josephgoksu/taskvoice/prompts"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the task assistant",
	Long: `Start a text conversation with the tool-calling assistant. Each line you
type is one utterance; the assistant adds, reads and completes tasks through
the same actions exposed over MCP and HTTP.

The system prompt and greeting can be overridden with
.taskvoice/prompts/assistant_instructions.txt and assistant_greeting.txt.

Type "reset" to start over. Type "exit" or "quit", or press Ctrl+D, to leave.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		llmCfg, err := llm.ConfigFromApp(appConfig.LLM)
		if err != nil {
			return err
		}
		chatModel, err := llm.NewToolCallingModel(ctx, llmCfg)
		if err != nil {
			return fmt.Errorf("create chat model: %w", err)
		}

		promptDir := filepath.Join(config.ProjectDir(appConfig), prompts.DirName)
		instructions, source, err := prompts.GetPrompt(prompts.KeyAssistantInstructions, promptDir)
		if err != nil {
			return err
		}
		if source != "" {
			appLogger().Info("using custom assistant instructions", "path", source)
		}
		greeting, _, err := prompts.GetPrompt(prompts.KeyAssistantGreeting, promptDir)
		if err != nil {
			return err
		}

		return withSurface(func(surface *actions.Surface) error {
			assistant, err := agent.NewAssistant(ctx, chatModel, surface,
				agent.WithMaxSteps(appConfig.Agent.MaxSteps),
				agent.WithInstructions(instructions),
				agent.WithLogger(appLogger()),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.StylePrefixAgent.Render("assistant:")+" "+greeting)
			return runChat(ctx, out, lineReader(cmd.InOrStdin()), assistant)
		})
	},
}

// conversation is one running dialogue with the assistant.
type conversation interface {
	Respond(ctx context.Context, input string) (string, error)
	Reset()
}

// runChat reads utterances from next until EOF, cancellation, or exit/quit.
// "reset" starts the conversation over. A failed turn is reported and the
// loop continues.
func runChat(ctx context.Context, out io.Writer, next func() (string, error), c conversation) error {
	for {
		line, err := next()
		if errors.Is(err, io.EOF) || errors.Is(err, ui.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "reset":
			c.Reset()
			fmt.Fprintln(out, ui.StyleSubtle.Render("Conversation cleared."))
			continue
		}

		reply, err := c.Respond(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			appLogger().Error("assistant turn failed", "err", err)
			fmt.Fprintln(out, ui.StyleError.Render("Sorry, something went wrong. Please try again."))
			continue
		}
		fmt.Fprintln(out, ui.StylePrefixAgent.Render("assistant:")+" "+reply)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// lineReader returns a function yielding one user utterance per call,
// using a prompt in a terminal and plain line scanning otherwise.
func lineReader(in io.Reader) func() (string, error) {
	if ui.IsInteractive() {
		return func() (string, error) {
			return ui.ReadLine(ui.StylePrefixUser.Render("you"))
		}
	}
	return scanLines(in)
}

// scanLines yields the lines of in, then io.EOF.
func scanLines(in io.Reader) func() (string, error) {
	scanner := bufio.NewScanner(in)
	return func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	}
}
