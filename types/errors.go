/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

import "fmt"

// Error codes reported to tool callers
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeUnknownAction   = "UNKNOWN_ACTION"
	CodeStorage         = "STORAGE_ERROR"
	CodeParse           = "PARSE_ERROR"
	CodeInternal        = "INTERNAL"
)

// ActionError provides structured error information for tool responses
type ActionError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewActionError creates a new structured action error
func NewActionError(code string, message string, details map[string]interface{}) *ActionError {
	return &ActionError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
