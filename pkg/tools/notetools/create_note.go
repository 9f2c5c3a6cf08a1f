package notetools

import (
	"context"
	"fmt"

	"github.com/entrhq/notesbridge/pkg/notes"
	"github.com/entrhq/notesbridge/pkg/tools"
)

// CreateNoteFailedMessage is returned when Notes did not create the note.
const CreateNoteFailedMessage = "Failed to create note. Please ensure Apple Notes is accessible and configured properly."

// CreateNoteTool creates a note in Apple Notes.
type CreateNoteTool struct {
	svc NoteService
}

// NewCreateNoteTool creates a new CreateNoteTool.
func NewCreateNoteTool(svc NoteService) *CreateNoteTool {
	return &CreateNoteTool{svc: svc}
}

// Name returns the tool name.
func (t *CreateNoteTool) Name() string {
	return "create-note"
}

// Description returns the tool description.
func (t *CreateNoteTool) Description() string {
	return "Create a new note in Apple Notes"
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *CreateNoteTool) Schema() map[string]interface{} {
	return tools.SchemaFor(t.Fields())
}

// Fields returns the argument rules.
func (t *CreateNoteTool) Fields() []tools.FieldRule {
	return []tools.FieldRule{titleField, contentField, tagsField}
}

// Action names the operation in error messages.
func (t *CreateNoteTool) Action() string {
	return "creating note"
}

// Execute creates the note.
func (t *CreateNoteTool) Execute(ctx context.Context, args tools.Arguments) (*tools.Result, error) {
	title := args.String("title")
	note, ok := t.svc.CreateNote(ctx, title, args.String("content"), args.Strings("tags"))
	if !ok {
		return tools.ErrorResult(CreateNoteFailedMessage), nil
	}

	text := fmt.Sprintf("Created note successfully: \"%s\"\nID: %s\nTitle: %s\nTags: %s\nCreated: %s",
		note.Title, note.ID, note.Title, tagsText(note.Tags), timestamp(note.Created))

	return &tools.Result{
		Text: text,
		Metadata: map[string]interface{}{
			"note_id":   note.ID,
			"tag_count": len(note.Tags),
		},
	}, nil
}

// GeneratePreview returns the script Execute would run.
func (t *CreateNoteTool) GeneratePreview(_ context.Context, args tools.Arguments) (*tools.ToolPreview, error) {
	return &tools.ToolPreview{
		Type:     tools.PreviewTypeScript,
		Title:    fmt.Sprintf("Create note \"%s\"", args.String("title")),
		Content:  notes.CreateScript(args.String("title"), args.String("content")),
		Language: "applescript",
	}, nil
}

// IsReadOnly returns false; the tool adds a note.
func (t *CreateNoteTool) IsReadOnly() bool {
	return false
}
