package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatContent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "Simple text", expected: "Simple text"},
		{input: "Line 1\nLine 2", expected: "Line 1<br>Line 2"},
		{input: "Tab\there", expected: "Tab<br>here"},
		{input: `Quote "test"`, expected: `Quote \"test\"`},
		{input: "Line 1\nLine 2\tTab\n\"Quotes\"", expected: `Line 1<br>Line 2<br>Tab<br>\"Quotes\"`},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatContent(tt.input))
		})
	}
}

func TestFormatContent_Reformatting(t *testing.T) {
	once := FormatContent("a\nb")
	assert.Equal(t, once, FormatContent(once), "newline substitution is idempotent")

	quoted := FormatContent(`say "hi"`)
	assert.Equal(t, `say \\"hi\\"`, FormatContent(quoted), "escaped quotes are escaped again")
}

func TestEscapeQuotes(t *testing.T) {
	assert.Equal(t, `search \"with quotes\"`, EscapeQuotes(`search "with quotes"`))
	assert.Equal(t, "no quotes\nkept", EscapeQuotes("no quotes\nkept"))
}

func TestCreateScript(t *testing.T) {
	expected := `
      tell application "Notes"
        tell account "iCloud"
          make new note with properties {name:"My Note", body:"My Content"}
        end tell
      end tell
    `
	assert.Equal(t, expected, CreateScript("My Note", "My Content"))
}

func TestCreateScript_EmptyContent(t *testing.T) {
	assert.Contains(t, CreateScript("Test", ""), `body:""`)
}

func TestCreateScript_TitleQuotesAreNotEscaped(t *testing.T) {
	script := CreateScript(`Title with "quotes"`, `Content with "quotes"`)

	assert.Contains(t, script, `name:"Title with "quotes""`)
	assert.Contains(t, script, `body:"Content with \"quotes\""`)
}

func TestSearchScript(t *testing.T) {
	expected := `
      tell application "Notes"
        tell account "iCloud"
          get name of notes where name contains "test query"
        end tell
      end tell
    `
	assert.Equal(t, expected, SearchScript("test query"))
	assert.Contains(t, SearchScript(`search "with quotes"`), `contains "search \"with quotes\""`)
}

func TestGetContentScript(t *testing.T) {
	expected := `
      tell application "Notes"
        tell account "iCloud"
          get body of note "My Note"
        end tell
      end tell
    `
	assert.Equal(t, expected, GetContentScript("My Note"))
	assert.Contains(t, GetContentScript(`Note with "quotes"`), `get body of note "Note with \"quotes\""`)
}

func TestScripts_UseICloudAccount(t *testing.T) {
	for _, script := range []string{
		CreateScript("Test", "Content"),
		SearchScript("query"),
		GetContentScript("Note"),
	} {
		assert.Contains(t, script, `tell account "iCloud"`)
		assert.Contains(t, script, `tell application "Notes"`)
	}
}

func TestCreateScript_PercentSignsAreLiteral(t *testing.T) {
	assert.Contains(t, CreateScript("100% done", "50%s off"), `{name:"100% done", body:"50%s off"}`)
}
