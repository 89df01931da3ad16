package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/josephgoksu/taskvoice/internal/actions"
	"github.com/josephgoksu/taskvoice/store"
)

// PrintError prints a user-facing message for err. With --verbose the full
// error chain is printed as well.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error: "+userMessage(err))
	if verbose && userMessage(err) != err.Error() {
		fmt.Fprintf(w, "Details: %v\n", err)
	}
}

func userMessage(err error) string {
	var pe *store.ParseError
	var se *store.StorageError
	var ae *actions.ArgumentError
	switch {
	case errors.As(err, &pe):
		return fmt.Sprintf("the task file %s is not a valid task list; fix or remove it", pe.Path)
	case errors.As(err, &se):
		return fmt.Sprintf("could not %s %s: %v", se.Op, se.Path, se.Err)
	case errors.As(err, &ae):
		return ae.Error()
	case errors.Is(err, store.ErrEmptyText):
		return "task text is required"
	default:
		return err.Error()
	}
}
