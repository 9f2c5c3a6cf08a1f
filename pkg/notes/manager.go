package notes

import (
	"context"
	"strings"
	"time"

	"github.com/entrhq/notesbridge/pkg/applescript"
	"github.com/entrhq/notesbridge/pkg/logging"
)

// Manager creates, searches and reads notes in the iCloud account of the
// Notes application. It holds no state between calls; Notes is the store.
type Manager struct {
	runner applescript.Runner
	logger *logging.Logger
	now    Clock
	newID  IDFunc
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.now = c
		}
	}
}

// WithIDFunc replaces the ID generator.
func WithIDFunc(f IDFunc) Option {
	return func(m *Manager) {
		if f != nil {
			m.newID = f
		}
	}
}

// NewManager creates a Manager that runs commands through runner.
func NewManager(runner applescript.Runner, opts ...Option) *Manager {
	m := &Manager{
		runner: runner,
		logger: logging.Nop(),
		now:    time.Now,
		newID:  MillisID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateNote creates a note and returns the synthesized record. When the
// script fails the reason is logged and (nil, false) is returned; that is
// the normal "not created" result, not an error.
func (m *Manager) CreateNote(ctx context.Context, title, content string, tags []string) (*Note, bool) {
	outcome := m.runner.Run(ctx, CreateScript(title, content))
	if !outcome.Succeeded {
		m.logger.Error().Str("reason", outcome.Err).Str("title", title).Msg("Failed to create note")
		return nil, false
	}

	if tags == nil {
		tags = []string{}
	}
	now := m.now()
	return &Note{
		ID:       m.newID(now),
		Title:    title,
		Content:  content,
		Tags:     tags,
		Created:  now,
		Modified: now,
	}, true
}

// SearchNotes lists notes whose title contains query. Failures are logged
// and yield an empty slice.
func (m *Manager) SearchNotes(ctx context.Context, query string) []Note {
	outcome := m.runner.Run(ctx, SearchScript(query))
	if !outcome.Succeeded {
		m.logger.Error().Str("reason", outcome.Err).Str("query", query).Msg("Failed to search notes")
		return []Note{}
	}

	titles := ParseTitles(outcome.Output)
	now := m.now()
	found := make([]Note, 0, len(titles))
	for _, title := range titles {
		found = append(found, Note{
			ID:       m.newID(now),
			Title:    title,
			Tags:     []string{},
			Created:  now,
			Modified: now,
		})
	}
	return found
}

// GetNoteContent fetches the body of the note named title.
func (m *Manager) GetNoteContent(ctx context.Context, title string) ContentResult {
	outcome := m.runner.Run(ctx, GetContentScript(title))
	if !outcome.Succeeded {
		m.logger.Error().Str("reason", outcome.Err).Str("title", title).Msg("Failed to get note content")
		return ContentResult{State: ContentNotFound}
	}
	if outcome.Output == "" {
		return ContentResult{State: ContentEmpty}
	}
	return ContentResult{State: ContentFound, Body: outcome.Output}
}

// ParseTitles splits the comma-separated list AppleScript prints for a list
// of names. Pieces are trimmed and empty pieces dropped.
func ParseTitles(raw string) []string {
	titles := []string{}
	for _, piece := range strings.Split(raw, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			titles = append(titles, piece)
		}
	}
	return titles
}
