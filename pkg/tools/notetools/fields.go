// Package notetools exposes Apple Notes operations as MCP tools.
//
// Tool Overview:
//
// create-note: Create a note in the iCloud account with a title, a body and
// optional tags (tags are echoed back; Notes has no tag property)
//
// search-notes: List notes whose title contains a query
//
// get-note-content: Read the body of a note by exact title
//
// Usage Example:
//
//	manager := notes.NewManager(applescript.NewExecutor())
//	dispatcher := tools.NewDispatcher()
//	for _, tool := range notetools.All(manager) {
//		dispatcher.Register(tool)
//	}
package notetools

import (
	"context"
	"strings"
	"time"

	"github.com/entrhq/notesbridge/pkg/notes"
	"github.com/entrhq/notesbridge/pkg/tools"
)

// Argument bounds, in characters.
const (
	MaxTitleLength   = 1000
	MaxContentLength = 50000
	MaxQueryLength   = 500
	MaxTags          = 20
	MaxTagLength     = 100
)

// NoteService is the subset of notes.Manager the tools need.
type NoteService interface {
	CreateNote(ctx context.Context, title, content string, tags []string) (*notes.Note, bool)
	SearchNotes(ctx context.Context, query string) []notes.Note
	GetNoteContent(ctx context.Context, title string) notes.ContentResult
}

var (
	titleField = tools.FieldRule{
		Name:        "title",
		Label:       "Title",
		Kind:        tools.KindString,
		Required:    true,
		MaxLength:   MaxTitleLength,
		Description: "The title of the note",
	}
	contentField = tools.FieldRule{
		Name:        "content",
		Label:       "Content",
		Kind:        tools.KindString,
		Required:    true,
		MaxLength:   MaxContentLength,
		Description: "The content of the note",
	}
	tagsField = tools.FieldRule{
		Name:        "tags",
		Label:       "Tags",
		ItemLabel:   "Tag",
		Kind:        tools.KindStringList,
		MaxItems:    MaxTags,
		MaxLength:   MaxTagLength,
		Description: "Tags for the note",
	}
	queryField = tools.FieldRule{
		Name:        "query",
		Label:       "Query",
		Kind:        tools.KindString,
		Required:    true,
		MaxLength:   MaxQueryLength,
		Description: "The search query",
	}
)

// Option configures the note tools.
type Option func(*options)

type options struct {
	plainText bool
}

// WithPlainText renders note bodies as plain text instead of the HTML Notes
// returns.
func WithPlainText(enabled bool) Option {
	return func(o *options) {
		o.plainText = enabled
	}
}

// All returns the three note tools in their canonical order.
func All(svc NoteService, opts ...Option) []tools.Tool {
	return []tools.Tool{
		NewCreateNoteTool(svc),
		NewSearchNotesTool(svc),
		NewGetNoteContentTool(svc, opts...),
	}
}

// timestamp formats t the way the tool responses show it: UTC, millisecond
// precision, trailing Z.
func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func tagsText(tags []string) string {
	if len(tags) == 0 {
		return "(none)"
	}
	return strings.Join(tags, ", ")
}
