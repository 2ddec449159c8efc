// Package errors provides structured, coded errors for the dhtml tool.
//
// Each error has a unique code (e.g. "E101") registered with a short
// message and a longer detail, plus an optional fix suggestion attached
// at the call site:
//
//	err := errors.New("E101").
//	    WithDetail("No dhtml.json found in " + dir).
//	    WithSuggestion("Run 'dhtml serve' from the project root")
package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryRuntime Category = "runtime"
	CategoryCLI     Category = "cli"
)

// Error is a structured error with a code, category, and fix suggestion.
type Error struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Wrap attaches an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	if e.Detail == "" && err != nil {
		e.Detail = err.Error()
	}
	return e
}

// Format renders the error for terminal output: code, message, detail,
// and suggestion on separate lines.
func (e *Error) Format() string {
	out := fmt.Sprintf("ERROR %s: %s", e.Code, e.Message)
	if e.Detail != "" {
		out += "\n\n  " + e.Detail
	}
	if e.Suggestion != "" {
		out += "\n\n  Hint: " + e.Suggestion
	}
	return out
}

// New creates an error from a registered code. Unknown codes yield a
// runtime-category error so a typo'd code is still reportable.
func New(code string) *Error {
	if tmpl, ok := registry[code]; ok {
		return &Error{
			Code:     code,
			Category: tmpl.Category,
			Message:  tmpl.Message,
			Detail:   tmpl.Detail,
		}
	}
	return &Error{
		Code:     code,
		Category: CategoryRuntime,
		Message:  "unknown error code",
	}
}

// Newf creates an unregistered error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}
