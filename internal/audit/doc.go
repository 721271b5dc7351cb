// Package audit records one JSON line per administrative action.
//
// Each entry carries the acting subject, the action name, its parameters,
// the outcome class, the shell exit status and the latency. Files are
// written through lumberjack so they rotate by size and age.
package audit
