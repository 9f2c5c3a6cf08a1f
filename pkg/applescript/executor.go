// Package applescript runs AppleScript through the osascript interpreter
// and normalizes the result into an Outcome.
package applescript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/entrhq/notesbridge/pkg/logging"
	"github.com/entrhq/notesbridge/pkg/observability"
)

const (
	// DefaultInterpreter is the AppleScript command-line interpreter.
	DefaultInterpreter = "osascript"

	// DefaultTimeout bounds a single script execution.
	DefaultTimeout = 10 * time.Second

	// UnknownErrorMessage is reported when a failure carries no message.
	UnknownErrorMessage = "Unknown error occurred while executing the automation script"
)

// Outcome is the normalized result of one script execution.
// A failed outcome never carries output and a successful one never carries
// an error message.
type Outcome struct {
	Succeeded bool
	Output    string
	Err       string
}

// Success builds a successful outcome.
func Success(output string) Outcome {
	return Outcome{Succeeded: true, Output: output}
}

// Failure builds a failed outcome, substituting UnknownErrorMessage for an
// empty message.
func Failure(msg string) Outcome {
	if strings.TrimSpace(msg) == "" {
		msg = UnknownErrorMessage
	}
	return Outcome{Err: msg}
}

// Runner executes a fully formed script.
type Runner interface {
	Run(ctx context.Context, script string) Outcome
}

// Executor runs scripts in a child osascript process.
type Executor struct {
	interpreter string
	timeout     time.Duration
	logger      *logging.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithInterpreter overrides the interpreter binary.
func WithInterpreter(path string) Option {
	return func(e *Executor) {
		if path != "" {
			e.interpreter = path
		}
	}
}

// WithTimeout overrides the per-script timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExecutor creates an Executor with the default interpreter and timeout.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		interpreter: DefaultInterpreter,
		timeout:     DefaultTimeout,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Timeout returns the configured per-script timeout.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Run sanitizes the script and executes it as `<interpreter> -e <script>`.
// Cancelling ctx kills the child process, as does the executor's own timeout.
func (e *Executor) Run(ctx context.Context, script string) Outcome {
	script = Sanitize(script)

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.interpreter, "-e", script)
	// Don't let a grandchild holding the pipes keep us waiting past a kill.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err == nil {
		observability.RecordScriptRun(observability.StatusOK, elapsed)
		return Success(strings.TrimSpace(stdout.String()))
	}

	status := observability.StatusError
	var outcome Outcome
	switch {
	case ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded):
		status = observability.StatusTimeout
		err = &TimeoutError{After: e.timeout, cause: err}
		outcome = Failure(err.Error())
	case ctx.Err() != nil:
		err = fmt.Errorf("script cancelled: %w", ctx.Err())
		outcome = Failure(err.Error())
	default:
		outcome = Failure(failureMessage(err, stderr.String()))
	}

	observability.RecordScriptRun(status, elapsed)
	e.logger.Error().
		Err(err).
		Str("stderr", strings.TrimSpace(stderr.String())).
		Dur("elapsed", elapsed).
		Msg("AppleScript execution failed")
	return outcome
}

// failureMessage prefers what the interpreter printed on stderr.
func failureMessage(err error, stderr string) string {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return msg
	}
	return err.Error()
}

// TimeoutError reports that a script exceeded its time bound.
type TimeoutError struct {
	After time.Duration
	cause error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Command timed out after %dms", e.After.Milliseconds())
}

func (e *TimeoutError) Unwrap() error {
	return e.cause
}
