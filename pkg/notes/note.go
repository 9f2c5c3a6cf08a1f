// Package notes builds AppleScript commands for the Notes application and
// parses their textual output into Note records.
package notes

import (
	"strconv"
	"time"
)

// Note is a note as seen through AppleScript. Notes is the system of record;
// these values are never persisted here.
type Note struct {
	ID       string    // Synthesized from the operation timestamp (Unix milliseconds)
	Title    string    // The note's name in Notes
	Content  string    // Body as supplied by the caller; empty for search results
	Tags     []string  // Caller-supplied order; always empty for search results
	Created  time.Time // Operation timestamp
	Modified time.Time // Same as Created
}

// Clock returns the current time.
type Clock func() time.Time

// IDFunc derives a note ID from an operation timestamp.
type IDFunc func(time.Time) string

// MillisID formats t as decimal Unix milliseconds.
func MillisID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// ContentState distinguishes the three outcomes of a body lookup.
type ContentState int

const (
	// ContentNotFound means the lookup failed; the note may not exist.
	ContentNotFound ContentState = iota
	// ContentEmpty means the note exists and its body is empty.
	ContentEmpty
	// ContentFound means a non-empty body was returned.
	ContentFound
)

// String implements fmt.Stringer.
func (s ContentState) String() string {
	switch s {
	case ContentEmpty:
		return "empty"
	case ContentFound:
		return "found"
	default:
		return "not_found"
	}
}

// ContentResult is the outcome of GetNoteContent.
type ContentResult struct {
	State ContentState
	Body  string
}
