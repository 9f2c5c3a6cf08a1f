// Package tools defines the Tool contract and the Dispatcher that runs tool
// calls for the MCP server and the CLI.
//
// A call goes through three stages, strictly in order:
//
//   - validation: raw JSON arguments are checked against the tool's
//     FieldRules; violations become error responses naming the field
//   - bounding: every string is cut to its field's maximum and trimmed
//   - execution: the tool runs under an outer timeout; when it fires the
//     tool's context is cancelled so in-flight scripts are killed
//
// Every failure, including panics inside a tool, is converted into a
// Response with IsError set. Dispatch never returns an error.
package tools
