package adapter

import (
	"errors"
	"strings"
)

// Normalized execution failures.
var (
	ErrLaunch      = errors.New("LAUNCH_FAILED")
	ErrTimeout     = errors.New("TIMEOUT")
	ErrCanceled    = errors.New("CANCELED")
	ErrUnavailable = errors.New("UNAVAILABLE")
	ErrShell       = errors.New("SHELL_ERROR")
)

// unavailableTokens are stderr fragments written by the container runtime
// when the managed container cannot be reached.
var unavailableTokens = []string{
	"no such container",
	"is not running",
	"cannot connect to the docker daemon",
	"is paused",
	"is restarting",
}

// Classify maps a Result to one of the normalized failures, or nil when the
// shell succeeded. Classification is for logs and audit only; callers decide
// success on the exit status alone.
func Classify(r Result) error {
	switch {
	case r.Err != nil && errors.Is(r.Err, ErrTimeout):
		return ErrTimeout
	case r.Err != nil && errors.Is(r.Err, ErrCanceled):
		return ErrCanceled
	case r.Err != nil:
		return ErrLaunch
	case r.ExitStatus == 0:
		return nil
	}

	stderr := strings.ToLower(r.Stderr)
	for _, token := range unavailableTokens {
		if strings.Contains(stderr, token) {
			return ErrUnavailable
		}
	}
	return ErrShell
}
