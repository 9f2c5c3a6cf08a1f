// Package main provides the notesbridge command: an MCP server that lets
// AI assistants create, search and read Apple Notes through AppleScript.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
