package actions

import (
	"errors"
	"fmt"

	"github.com/josephgoksu/taskvoice/store"
	"github.com/josephgoksu/taskvoice/types"
)

// ErrUnknownAction is returned by Invoke for a name not in the catalogue.
var ErrUnknownAction = errors.New("unknown action")

// ArgumentError reports arguments that could not be decoded or are invalid.
type ArgumentError struct {
	Action string
	Field  string
	Err    error
}

func (e *ArgumentError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: invalid argument %q: %v", e.Action, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: invalid arguments: %v", e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Classify maps an action error onto the structured error reported to
// callers. It returns nil for a nil error.
func Classify(err error) *types.ActionError {
	if err == nil {
		return nil
	}

	var ae *types.ActionError
	if errors.As(err, &ae) {
		return ae
	}

	var argErr *ArgumentError
	switch {
	case errors.Is(err, ErrUnknownAction):
		return types.NewActionError(types.CodeUnknownAction, err.Error(), nil)
	case errors.As(err, &argErr):
		details := map[string]interface{}{"action": argErr.Action}
		if argErr.Field != "" {
			details["field"] = argErr.Field
		}
		return types.NewActionError(types.CodeInvalidArgument, err.Error(), details)
	case errors.Is(err, store.ErrEmptyText):
		return types.NewActionError(types.CodeInvalidArgument, err.Error(), map[string]interface{}{"field": "text"})
	case store.IsParseError(err):
		return types.NewActionError(types.CodeParse, err.Error(), nil)
	case store.IsStorageError(err):
		return types.NewActionError(types.CodeStorage, err.Error(), nil)
	default:
		return types.NewActionError(types.CodeInternal, err.Error(), nil)
	}
}
