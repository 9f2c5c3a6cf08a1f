package tools

import (
	"context"
)

// Tool is an operation exposed to MCP clients. Tools are invoked through the
// Dispatcher, which validates and sanitizes arguments against Fields before
// Execute is called, so Execute only ever sees bounded, trimmed values.
type Tool interface {
	// Name returns the unique identifier for this tool (e.g., "create-note")
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Fields returns the validation rules applied to the raw arguments
	Fields() []FieldRule

	// Action names the operation in error messages, e.g. "creating note"
	// yields "Error creating note: ...".
	Action() string

	// Execute runs the tool. A returned error is reported to the caller as
	// "Error <action>: <message>"; a Result with IsError set is passed
	// through unchanged.
	Execute(ctx context.Context, args Arguments) (*Result, error)
}

// Result is what a tool produces on a completed call.
type Result struct {
	Text    string
	IsError bool

	// Metadata is optional; it is logged with the call but never sent to
	// the client.
	Metadata map[string]interface{}
}

// TextResult creates a successful result.
func TextResult(text string) *Result {
	return &Result{Text: text}
}

// ErrorResult creates an error-flagged result.
func ErrorResult(text string) *Result {
	return &Result{Text: text, IsError: true}
}

// Previewable is an optional interface that tools can implement to show what
// they would do without doing it.
type Previewable interface {
	// GeneratePreview builds a preview from already-validated arguments.
	GeneratePreview(ctx context.Context, args Arguments) (*ToolPreview, error)
}

// ToolPreview represents a preview of what a tool will do.
type ToolPreview struct {
	// Type indicates the kind of preview
	Type PreviewType

	// Title is a short description of the action
	Title string

	// Content contains the preview data, e.g. the script that would run
	Content string

	// Language names the syntax of Content for highlighting
	Language string
}

// PreviewType indicates the kind of preview being shown
type PreviewType string

const (
	// PreviewTypeScript represents a generated automation script
	PreviewTypeScript PreviewType = "script"
)

// BaseToolSchema creates a common JSON schema structure for a tool
// with the given properties and required fields
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// ReadOnly is an optional interface for tools that declare whether they
// modify anything. The MCP server turns it into tool annotations.
type ReadOnly interface {
	IsReadOnly() bool
}
