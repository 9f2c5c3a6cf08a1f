package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/entrhq/notesbridge/pkg/applescript"
	"github.com/entrhq/notesbridge/pkg/logging"
)

func newScriptCmd(a *app) *cobra.Command {
	var (
		scriptArgs      string
		scriptNoColor   bool
		scriptSanitized bool
	)

	cmd := &cobra.Command{
		Use:   "script <tool>",
		Short: "Print the AppleScript a tool call would run",
		Long: `Validate the arguments and print the AppleScript the tool would hand to
osascript, without running it.`,
		Example: `  notesbridge script get-note-content --args '{"title":"Groceries"}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := a.dispatcher()
			if err != nil {
				return err
			}
			raw, err := parseArgs(scriptArgs)
			if err != nil {
				return err
			}

			preview, err := dispatcher.Preview(cmd.Context(), args[0], raw)
			if err != nil {
				return err
			}

			source := preview.Content
			if scriptSanitized {
				source = applescript.Sanitize(source)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render(preview.Title))
			if scriptNoColor {
				fmt.Fprintln(out, source)
				return nil
			}
			return writeHighlighted(out, source, preview.Language, a.logger)
		},
	}
	cmd.Flags().StringVarP(&scriptArgs, "args", "a", "{}", "tool arguments as a JSON object")
	cmd.Flags().BoolVar(&scriptNoColor, "no-color", false, "disable syntax highlighting")
	cmd.Flags().BoolVar(&scriptSanitized, "sanitized", false, "show the single-line form actually passed to osascript")
	return cmd
}

// writeHighlighted colors source for a terminal, falling back to plain text
// when the highlighter fails.
func writeHighlighted(w io.Writer, source, language string, logger *logging.Logger) error {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, source, language, "terminal256", "monokai"); err != nil {
		logger.Debug().Err(err).Msg("Highlighting failed")
		_, err := fmt.Fprintln(w, source)
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
