// Package command implements the MUC command orchestrator.
//
// The orchestrator validates identifiers against the configured domains,
// renders the administration shell command text, runs it through the shell
// adapter under a deadline and writes one audit record per action. Invalid
// input never reaches the shell.
package command
