package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Task is a single to-do item.
type Task struct {
	ID   int64   `json:"id" yaml:"id" toml:"id" validate:"required,gt=0"`
	Text string  `json:"text" yaml:"text" toml:"text" validate:"required"`
	Done bool    `json:"done" yaml:"done" toml:"done"`
	Due  *string `json:"due" yaml:"due" toml:"due,omitempty"`
}

// TaskList is the persisted document. Order of Tasks is insertion order.
type TaskList struct {
	Tasks []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
}

// IDString renders the id the way queries refer to it.
func (t Task) IDString() string {
	return strconv.FormatInt(t.ID, 10)
}

// Matches reports whether a normalized (trimmed, lowercased) query selects
// this task: an exact id match or a substring of the lowercased text. The
// empty query is a substring of every text.
func (t Task) Matches(normalizedQuery string) bool {
	if t.IDString() == normalizedQuery {
		return true
	}
	return strings.Contains(strings.ToLower(t.Text), normalizedQuery)
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	c := t
	if t.Due != nil {
		due := *t.Due
		c.Due = &due
	}
	return c
}

// NormalizeQuery trims and lowercases a completion query.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// NormalizeDue copies due. The value is stored as supplied, blank included.
func NormalizeDue(due *string) *string {
	if due == nil {
		return nil
	}
	d := *due
	return &d
}

// global validator instance
var validate = validator.New()

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var errorMessages []string
	for _, e := range validationErrors {
		errorMessages = append(errorMessages, fmt.Sprintf("validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
}
