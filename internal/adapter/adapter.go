//go:generate go run go.uber.org/mock/mockgen -source=adapter.go -destination=../mocks/mock_adapter.go -package=mocks
package adapter

import (
	"context"
)

// LaunchFailedStatus is reported when the subprocess could not be started
// or was terminated by a signal and therefore has no exit code.
const LaunchFailedStatus = -1

// Result is the outcome of one administration shell invocation.
type Result struct {
	ExitStatus int    `json:"exitStatus"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`

	// Err explains a failure that happened outside the shell itself
	// (launch failure, timeout, cancellation). Nil on a normal exit,
	// including a normal non-zero exit.
	Err error `json:"-"`
}

// OK reports whether the shell exited with status zero.
func (r Result) OK() bool {
	return r.ExitStatus == 0 && r.Err == nil
}

// IShellAdapter executes administration shell command text.
type IShellAdapter interface {
	// Run executes commandText as a single argument to the shell and blocks
	// until the subprocess exits or ctx is done. It always returns a Result.
	Run(ctx context.Context, commandText string) Result

	// Name identifies the adapter in logs.
	Name() string
}
