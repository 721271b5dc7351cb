// Package prosodymock emulates the Prosody administration shell behind a
// container runtime CLI.
//
// It accepts the argument vector the docker adapter produces
// (exec <container> prosodyctl shell <command>), understands the three MUC
// command shapes the API emits and keeps room affiliations in a YAML state
// file. Output mimics prosodyctl shell closely enough for the API and the
// client parsers to run end to end without a chat server.
package prosodymock
