package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errToolFailed makes the exit status reflect an error response.
var errToolFailed = errors.New("tool call failed")

func newCallCmd(a *app) *cobra.Command {
	var (
		callArgs string
		callRaw  bool
	)

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Run one tool call and print the response",
		Long: `Run a single tool call through the same validation, timeout and
formatting path the MCP server uses, then print the response.`,
		Example: `  notesbridge call search-notes --args '{"query":"meeting"}'
  notesbridge call create-note --args '{"title":"Groceries","content":"Milk\nEggs"}' --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := a.dispatcher()
			if err != nil {
				return err
			}
			raw, err := parseArgs(callArgs)
			if err != nil {
				return err
			}

			resp := dispatcher.Dispatch(cmd.Context(), args[0], raw)

			out := cmd.OutOrStdout()
			if callRaw {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(resp)
			}

			style := resultStyle
			if resp.IsError {
				style = errorResultStyle
			}
			fmt.Fprintln(out, style.Render(resp.Text()))
			if resp.IsError {
				return errToolFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&callArgs, "args", "a", "{}", "tool arguments as a JSON object")
	cmd.Flags().BoolVar(&callRaw, "raw", false, "print the response envelope as JSON")
	return cmd
}

func parseArgs(s string) (json.RawMessage, error) {
	if s == "" {
		s = "{}"
	}
	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("--args is not valid JSON: %s", s)
	}
	return json.RawMessage(s), nil
}
