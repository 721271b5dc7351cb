// Package adapter defines the southbound contract towards the chat server's
// administration shell.
//
// An adapter runs one command text as one isolated subprocess and reports
// its exit status together with everything it wrote to standard output and
// standard error. Adapters never return Go errors for execution failures:
// a launch failure, a timeout or a cancellation is reported as a Result
// with a non-zero ExitStatus, so callers have a single failure path.
//
// Implementations:
//   - docker: docker exec <container> prosodyctl shell <command>
//   - fake: scripted results for tests
package adapter
