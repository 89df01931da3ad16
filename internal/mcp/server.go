package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/internal/logger"
	"github.com/josephgoksu/taskvoice/types"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "taskvoice-mcp"

// NewServer builds an MCP server with the three task tools registered.
func NewServer(surface *actions.Surface, version string, l *log.Logger) *mcpsdk.Server {
	if l == nil {
		l = logger.Discard()
	}
	impl := &mcpsdk.Implementation{
		Name:    ServerName,
		Version: version,
	}
	server := mcpsdk.NewServer(impl, &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			l.Info("MCP connection established")
		},
	})
	RegisterTools(server, surface, l)
	return server
}

// RegisterTools adds add_task, list_tasks and complete_task to server.
func RegisterTools(server *mcpsdk.Server, surface *actions.Surface, l *log.Logger) {
	mcpsdk.AddTool(server, toolFor(actions.NameAddTask), addTaskHandler(surface, l))
	mcpsdk.AddTool(server, toolFor(actions.NameListTasks), listTasksHandler(surface, l))
	mcpsdk.AddTool(server, toolFor(actions.NameCompleteTask), completeTaskHandler(surface, l))
}

func toolFor(name string) *mcpsdk.Tool {
	def, ok := actions.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("action %q missing from catalogue", name))
	}
	return &mcpsdk.Tool{Name: def.Name, Description: def.Description}
}

func addTaskHandler(surface *actions.Surface, l *log.Logger) mcpsdk.ToolHandlerFor[types.AddTaskParams, any] {
	return func(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.AddTaskParams]) (*mcpsdk.CallToolResultFor[any], error) {
		logToolCall(l, actions.NameAddTask, params.Arguments)
		result, err := surface.AddTask(ctx, params.Arguments)
		if err != nil {
			return errorResponse(err)
		}
		return markdownResponse(FormatAddResult(result), result)
	}
}

func listTasksHandler(surface *actions.Surface, l *log.Logger) mcpsdk.ToolHandlerFor[types.ListTasksParams, any] {
	return func(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.ListTasksParams]) (*mcpsdk.CallToolResultFor[any], error) {
		logToolCall(l, actions.NameListTasks, params.Arguments)
		result, err := surface.ListTasks(ctx, params.Arguments)
		if err != nil {
			return errorResponse(err)
		}
		return markdownResponse(FormatTaskList(result), result)
	}
}

func completeTaskHandler(surface *actions.Surface, l *log.Logger) mcpsdk.ToolHandlerFor[types.CompleteTaskParams, any] {
	return func(ctx context.Context, _ *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[types.CompleteTaskParams]) (*mcpsdk.CallToolResultFor[any], error) {
		logToolCall(l, actions.NameCompleteTask, params.Arguments)
		result, err := surface.CompleteTask(ctx, params.Arguments)
		if err != nil {
			return errorResponse(err)
		}
		return markdownResponse(FormatCompleteResult(result), result)
	}
}

// markdownResponse returns the Markdown summary followed by the JSON
// encoding of the action result.
func markdownResponse(markdown string, result any) (*mcpsdk.CallToolResultFor[any], error) {
	data, err := json.Marshal(result)
	if err != nil {
		return errorResponse(fmt.Errorf("encode result: %w", err))
	}
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: markdown},
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, nil
}

// errorResponse wraps an error in a tool result with IsError=true, so the
// model sees the failure instead of a protocol error.
func errorResponse(err error) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: FormatActionError(actions.Classify(err))}},
		IsError: true,
	}, nil
}

func logToolCall(l *log.Logger, name string, args any) {
	data, _ := json.Marshal(args)
	logger.SetLastToolCall(name, string(data))
	if l == nil {
		return
	}
	l.Debug("tool call", "tool", name, "args", string(data))
}
