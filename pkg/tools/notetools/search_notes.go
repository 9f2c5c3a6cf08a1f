package notetools

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/notesbridge/pkg/notes"
	"github.com/entrhq/notesbridge/pkg/tools"
)

// SearchNotesTool finds notes by title substring.
type SearchNotesTool struct {
	svc NoteService
}

// NewSearchNotesTool creates a new SearchNotesTool.
func NewSearchNotesTool(svc NoteService) *SearchNotesTool {
	return &SearchNotesTool{svc: svc}
}

// Name returns the tool name.
func (t *SearchNotesTool) Name() string {
	return "search-notes"
}

// Description returns the tool description.
func (t *SearchNotesTool) Description() string {
	return "Search for notes by title"
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *SearchNotesTool) Schema() map[string]interface{} {
	return tools.SchemaFor(t.Fields())
}

// Fields returns the argument rules.
func (t *SearchNotesTool) Fields() []tools.FieldRule {
	return []tools.FieldRule{queryField}
}

// Action names the operation in error messages.
func (t *SearchNotesTool) Action() string {
	return "searching notes"
}

// Execute runs the search. No matches is a normal result, not an error.
func (t *SearchNotesTool) Execute(ctx context.Context, args tools.Arguments) (*tools.Result, error) {
	query := args.String("query")
	found := t.svc.SearchNotes(ctx, query)

	metadata := map[string]interface{}{
		"result_count": len(found),
	}
	if len(found) == 0 {
		return &tools.Result{
			Text:     fmt.Sprintf("No notes found matching your query: \"%s\"", query),
			Metadata: metadata,
		}, nil
	}

	entries := make([]string, 0, len(found))
	for i, note := range found {
		entries = append(entries, fmt.Sprintf("%d. %s (ID: %s)\n   Tags: %s\n   Created: %s",
			i+1, note.Title, note.ID, tagsText(note.Tags), timestamp(note.Created)))
	}

	return &tools.Result{
		Text:     fmt.Sprintf("Found %d notes matching \"%s\":\n\n%s", len(found), query, strings.Join(entries, "\n\n")),
		Metadata: metadata,
	}, nil
}

// GeneratePreview returns the script Execute would run.
func (t *SearchNotesTool) GeneratePreview(_ context.Context, args tools.Arguments) (*tools.ToolPreview, error) {
	return &tools.ToolPreview{
		Type:     tools.PreviewTypeScript,
		Title:    fmt.Sprintf("Search notes for \"%s\"", args.String("query")),
		Content:  notes.SearchScript(args.String("query")),
		Language: "applescript",
	}, nil
}

// IsReadOnly returns true.
func (t *SearchNotesTool) IsReadOnly() bool {
	return true
}
