// Package agent adapts the task actions to Eino tools and runs the
// tool-calling assistant that drives them from text input.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	"github.com/josephgoksu/taskvoice/internal/actions"
)

// ActionTool exposes one action as an Eino InvokableTool.
type ActionTool struct {
	def     actions.Definition
	surface *actions.Surface
}

// NewActionTool returns the tool for the named action.
func NewActionTool(surface *actions.Surface, name string) (*ActionTool, error) {
	def, ok := actions.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", actions.ErrUnknownAction, name)
	}
	return &ActionTool{def: def, surface: surface}, nil
}

// CreateEinoTools returns one tool per catalogue entry.
func CreateEinoTools(surface *actions.Surface) []tool.InvokableTool {
	defs := actions.Catalogue()
	out := make([]tool.InvokableTool, 0, len(defs))
	for _, d := range defs {
		out = append(out, &ActionTool{def: d, surface: surface})
	}
	return out
}

func (t *ActionTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	params := make(map[string]*schema.ParameterInfo, len(t.def.Parameters))
	for _, p := range t.def.Parameters {
		params[p.Name] = &schema.ParameterInfo{
			Type:     schema.DataType(p.Type),
			Desc:     p.Description,
			Required: p.Required,
		}
	}
	return &schema.ToolInfo{
		Name:        t.def.Name,
		Desc:        t.def.Description,
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}, nil
}

// InvokableRun runs the action. Action failures are returned to the model
// as an {"error": {...}} payload so it can recover; only cancellation is
// returned as an error.
func (t *ActionTool) InvokableRun(ctx context.Context, argsJSON string, opts ...tool.Option) (string, error) {
	result, err := t.surface.Invoke(ctx, t.def.Name, json.RawMessage(argsJSON))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		payload, mErr := json.Marshal(map[string]any{"error": actions.Classify(err)})
		if mErr != nil {
			return "", fmt.Errorf("encode error: %w", mErr)
		}
		return string(payload), nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode %s result: %w", t.def.Name, err)
	}
	return string(data), nil
}

var _ tool.InvokableTool = (*ActionTool)(nil)
