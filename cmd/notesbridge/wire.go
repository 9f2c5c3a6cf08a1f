package main

import (
	"fmt"

	"github.com/entrhq/notesbridge/pkg/applescript"
	"github.com/entrhq/notesbridge/pkg/config"
	"github.com/entrhq/notesbridge/pkg/logging"
	"github.com/entrhq/notesbridge/pkg/notes"
	"github.com/entrhq/notesbridge/pkg/tools"
	"github.com/entrhq/notesbridge/pkg/tools/notetools"
)

// buildDispatcher wires executor → notes manager → note tools → dispatcher
// from configuration. A nil runner selects the osascript executor.
func buildDispatcher(cfg config.Config, logger *logging.Logger, runner applescript.Runner) (*tools.Dispatcher, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	filter, err := tools.NewFilter(cfg.Tools.Enabled, cfg.Tools.Disabled)
	if err != nil {
		return nil, err
	}

	if runner == nil {
		runner = applescript.NewExecutor(
			applescript.WithInterpreter(cfg.Script.Interpreter),
			applescript.WithTimeout(cfg.Script.Timeout),
			applescript.WithLogger(logger.With("applescript")),
		)
	}
	manager := notes.NewManager(runner, notes.WithLogger(logger.With("notes")))

	dispatcher := tools.NewDispatcher(
		tools.WithLogger(logger.With("dispatcher")),
		tools.WithTimeout(cfg.OperationTimeout),
		tools.WithFilter(filter),
	)
	for _, tool := range notetools.All(manager, notetools.WithPlainText(cfg.Render.PlainText)) {
		if _, err := dispatcher.Register(tool); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", tool.Name(), err)
		}
	}
	if len(dispatcher.Tools()) == 0 {
		return nil, fmt.Errorf("no tools enabled; check tools.enabled and tools.disabled")
	}
	return dispatcher, nil
}
