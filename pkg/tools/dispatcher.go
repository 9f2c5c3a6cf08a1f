package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/entrhq/notesbridge/pkg/logging"
	"github.com/entrhq/notesbridge/pkg/observability"
)

const (
	// DefaultOperationTimeout bounds a whole tool call. It must exceed the
	// script executor's own timeout so the inner bound fires first.
	DefaultOperationTimeout = 30 * time.Second

	// UnknownErrorMessage is reported for faults that carry no message.
	UnknownErrorMessage = "Unknown error occurred"
)

// ErrOperationTimeout is matched by every TimeoutError.
var ErrOperationTimeout = errors.New("operation timed out")

// TimeoutError reports that a tool call exceeded the dispatcher's bound.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Operation timed out after %dms", e.After.Milliseconds())
}

func (e *TimeoutError) Unwrap() error {
	return ErrOperationTimeout
}

// Content is one element of a response. Only text content is produced.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the uniform envelope returned for every call.
type Response struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// Text joins the text of all content elements.
func (r *Response) Text() string {
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n")
}

func textResponse(text string, isError bool) *Response {
	return &Response{
		Content: []Content{{Type: "text", Text: text}},
		IsError: isError,
	}
}

// Dispatcher routes tool calls by name. Each call runs
// validate → bound → execute under an outer timeout, and every fault is
// converted into an error-flagged Response.
type Dispatcher struct {
	mu      sync.RWMutex
	tools   map[string]Tool
	order   []string
	logger  *logging.Logger
	timeout time.Duration
	filter  *Filter
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithTimeout overrides DefaultOperationTimeout.
func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithFilter restricts which tools Register accepts.
func WithFilter(f *Filter) DispatcherOption {
	return func(d *Dispatcher) {
		d.filter = f
	}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		tools:   make(map[string]Tool),
		logger:  logging.Nop(),
		timeout: DefaultOperationTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Timeout returns the outer per-call bound.
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// Register adds a tool. Tools rejected by the filter are skipped and
// reported as not registered; registering a name twice is an error.
func (d *Dispatcher) Register(tool Tool) (bool, error) {
	if tool == nil {
		return false, errors.New("tool cannot be nil")
	}
	name := tool.Name()
	if d.filter != nil && !d.filter.Allows(name) {
		d.logger.Debug().Str("tool", name).Msg("Tool disabled by configuration")
		return false, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.tools[name]; exists {
		return false, fmt.Errorf("tool %q already registered", name)
	}
	d.tools[name] = tool
	d.order = append(d.order, name)
	return true, nil
}

// Get retrieves a tool by name.
func (d *Dispatcher) Get(name string) (Tool, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tool, ok := d.tools[name]
	return tool, ok
}

// Tools returns registered tools in registration order.
func (d *Dispatcher) Tools() []Tool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Tool, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.tools[name])
	}
	return out
}

func (d *Dispatcher) names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := append([]string(nil), d.order...)
	sort.Strings(names)
	return names
}

// Dispatch runs one tool call. It never panics and never returns nil.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, raw json.RawMessage) *Response {
	start := time.Now()

	tool, ok := d.Get(name)
	if !ok {
		d.logger.Warn().Str("tool", name).Msg("Unknown tool requested")
		observability.RecordToolCall("unknown", observability.StatusInvalid, time.Since(start))
		return textResponse(fmt.Sprintf("Unknown tool: %s. Available tools: %s",
			name, strings.Join(d.names(), ", ")), true)
	}

	args, err := Validate(tool.Fields(), raw)
	if err != nil {
		d.logger.Warn().Str("tool", name).Err(err).Msg("Invalid tool arguments")
		observability.RecordToolCall(name, observability.StatusInvalid, time.Since(start))
		return textResponse(err.Error(), true)
	}
	args = args.Bounded(tool.Fields())

	result, err := d.execute(ctx, tool, args)
	elapsed := time.Since(start)

	if err != nil {
		status := observability.StatusError
		if errors.Is(err, ErrOperationTimeout) {
			status = observability.StatusTimeout
		}
		d.logger.Error().Str("tool", name).Err(err).Dur("elapsed", elapsed).Msg("Tool call failed")
		observability.RecordToolCall(name, status, elapsed)
		return textResponse(fmt.Sprintf("Error %s: %s", tool.Action(), errorMessage(err)), true)
	}

	status := observability.StatusOK
	if result.IsError {
		status = observability.StatusError
	}
	d.logger.Info().
		Str("tool", name).
		Bool("is_error", result.IsError).
		Dur("elapsed", elapsed).
		Fields(result.Metadata).
		Msg("Tool call completed")
	observability.RecordToolCall(name, status, elapsed)
	return textResponse(result.Text, result.IsError)
}

type execution struct {
	result *Result
	err    error
}

// execute races the tool against the outer timeout. When the timeout wins
// the tool's context is cancelled, which kills any script still running.
func (d *Dispatcher) execute(ctx context.Context, tool Tool, args Arguments) (*Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan execution, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- execution{err: panicError(r)}
			}
		}()
		result, err := tool.Execute(runCtx, args)
		if err == nil && result == nil {
			err = errors.New(UnknownErrorMessage)
		}
		done <- execution{result: result, err: err}
	}()

	var ex execution
	select {
	case ex = <-done:
	case <-runCtx.Done():
		ex.err = runCtx.Err()
	}

	// A tool that returns after our deadline fired has only seen a
	// cancelled context; report the timeout, not whatever it made of that.
	if ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, &TimeoutError{After: d.timeout}
	}
	return ex.result, ex.err
}

// Preview validates arguments and asks the tool for a preview without
// executing it.
func (d *Dispatcher) Preview(ctx context.Context, name string, raw json.RawMessage) (*ToolPreview, error) {
	tool, ok := d.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	p, ok := tool.(Previewable)
	if !ok {
		return nil, fmt.Errorf("tool %s does not support previews", name)
	}
	args, err := Validate(tool.Fields(), raw)
	if err != nil {
		return nil, err
	}
	return p.GeneratePreview(ctx, args.Bounded(tool.Fields()))
}

func panicError(r interface{}) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return fmt.Errorf("%v", v)
	}
}

func errorMessage(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}
