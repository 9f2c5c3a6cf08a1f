package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/entrhq/notesbridge/pkg/tools"
)

func newToolsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the enabled tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := a.dispatcher()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("Enabled tools"))
			for _, tool := range dispatcher.Tools() {
				fmt.Fprintf(out, "\n%s  %s\n", nameStyle.Render(tool.Name()), tool.Description())
				fmt.Fprintln(out, descStyle.Render("  "+describeFields(tool.Fields())))
			}
			return nil
		},
	}
}

// describeFields renders argument rules on one line, required fields first.
func describeFields(rules []tools.FieldRule) string {
	sorted := append([]tools.FieldRule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Required && !sorted[j].Required
	})

	parts := make([]string, 0, len(sorted))
	for _, r := range sorted {
		var b strings.Builder
		b.WriteString(r.Name)
		if !r.Required {
			b.WriteString("?")
		}
		switch r.Kind {
		case tools.KindStringList:
			fmt.Fprintf(&b, ": []string (≤%d items, each ≤%d chars)", r.MaxItems, r.MaxLength)
		default:
			fmt.Fprintf(&b, ": string (≤%d chars)", r.MaxLength)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}
