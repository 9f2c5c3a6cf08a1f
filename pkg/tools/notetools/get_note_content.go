package notetools

import (
	"context"
	"fmt"
	"strings"

	"github.com/entrhq/notesbridge/pkg/notes"
	"github.com/entrhq/notesbridge/pkg/tools"
)

// EmptyNotePlaceholder is shown for an empty body and for a note that could
// not be read; callers cannot tell the two apart from the text.
const EmptyNotePlaceholder = "(Note is empty)"

// GetNoteContentTool reads the body of a note.
type GetNoteContentTool struct {
	svc       NoteService
	plainText bool
}

// NewGetNoteContentTool creates a new GetNoteContentTool.
func NewGetNoteContentTool(svc NoteService, opts ...Option) *GetNoteContentTool {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &GetNoteContentTool{svc: svc, plainText: o.plainText}
}

// Name returns the tool name.
func (t *GetNoteContentTool) Name() string {
	return "get-note-content"
}

// Description returns the tool description.
func (t *GetNoteContentTool) Description() string {
	return "Get the content of a specific note"
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *GetNoteContentTool) Schema() map[string]interface{} {
	return tools.SchemaFor(t.Fields())
}

// Fields returns the argument rules.
func (t *GetNoteContentTool) Fields() []tools.FieldRule {
	title := titleField
	title.Description = "The exact title of the note"
	return []tools.FieldRule{title}
}

// Action names the operation in error messages.
func (t *GetNoteContentTool) Action() string {
	return "retrieving note content"
}

// Execute fetches the body.
func (t *GetNoteContentTool) Execute(ctx context.Context, args tools.Arguments) (*tools.Result, error) {
	title := args.String("title")
	result := t.svc.GetNoteContent(ctx, title)

	return &tools.Result{
		Text: fmt.Sprintf("Content of note '%s':\n\n%s", title, t.display(result)),
		Metadata: map[string]interface{}{
			"state": result.State.String(),
		},
	}, nil
}

// display collapses the empty and not-found states into one placeholder.
func (t *GetNoteContentTool) display(result notes.ContentResult) string {
	if result.State != notes.ContentFound || strings.TrimSpace(result.Body) == "" {
		return EmptyNotePlaceholder
	}
	if t.plainText {
		if text := notes.RenderPlainText(result.Body); text != "" {
			return text
		}
		return EmptyNotePlaceholder
	}
	return result.Body
}

// GeneratePreview returns the script Execute would run.
func (t *GetNoteContentTool) GeneratePreview(_ context.Context, args tools.Arguments) (*tools.ToolPreview, error) {
	return &tools.ToolPreview{
		Type:     tools.PreviewTypeScript,
		Title:    fmt.Sprintf("Read note \"%s\"", args.String("title")),
		Content:  notes.GetContentScript(args.String("title")),
		Language: "applescript",
	}, nil
}

// IsReadOnly returns true.
func (t *GetNoteContentTool) IsReadOnly() bool {
	return true
}
