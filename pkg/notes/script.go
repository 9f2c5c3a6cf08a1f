package notes

import (
	"fmt"
	"strings"
)

const (
	// Application is the scripted application.
	Application = "Notes"

	// Account is the Notes account every command is scoped to.
	Account = "iCloud"
)

// Command templates. The surrounding newlines and indentation are part of
// the generated text; the executor flattens them before running.
const (
	createTemplate = `
      tell application "%s"
        tell account "%s"
          make new note with properties {name:"%s", body:"%s"}
        end tell
      end tell
    `

	searchTemplate = `
      tell application "%s"
        tell account "%s"
          get name of notes where name contains "%s"
        end tell
      end tell
    `

	getContentTemplate = `
      tell application "%s"
        tell account "%s"
          get body of note "%s"
        end tell
      end tell
    `
)

var (
	quoteEscaper   = strings.NewReplacer(`"`, `\"`)
	contentEscaper = strings.NewReplacer("\n", "<br>", "\t", "<br>", `"`, `\"`)
)

// EscapeQuotes escapes double quotes for embedding in an AppleScript string
// literal. Backslashes are not escaped, so applying it twice double-escapes.
func EscapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// FormatContent prepares a note body: newlines (and tabs) become <br> so the
// body survives the single-line script, and double quotes are escaped.
func FormatContent(s string) string {
	return contentEscaper.Replace(s)
}

// CreateScript returns the command that creates a note.
//
// The title is embedded as-is. A title containing a double quote yields an
// invalid script; see DESIGN.md before changing this.
func CreateScript(title, content string) string {
	return fmt.Sprintf(createTemplate, Application, Account, title, FormatContent(content))
}

// SearchScript returns the command listing the names of notes whose name
// contains query.
func SearchScript(query string) string {
	return fmt.Sprintf(searchTemplate, Application, Account, EscapeQuotes(query))
}

// GetContentScript returns the command fetching the body of the note named
// title.
func GetContentScript(title string) string {
	return fmt.Sprintf(getContentTemplate, Application, Account, EscapeQuotes(title))
}
