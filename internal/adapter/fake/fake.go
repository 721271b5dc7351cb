// Package fake provides a scripted shell adapter for tests.
package fake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wake/snikket-web-portal/internal/adapter"
)

// FakeAdapter records every command text and answers from a script.
type FakeAdapter struct {
	mu       sync.Mutex
	commands []string
	results  map[string]adapter.Result
	fallback adapter.Result
	hang     map[string]bool
	hangAll  bool
}

var _ adapter.IShellAdapter = (*FakeAdapter)(nil)

// NewFakeAdapter returns an adapter that succeeds with empty output unless
// scripted otherwise.
func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{
		results: make(map[string]adapter.Result),
		hang:    make(map[string]bool),
	}
}

// Name returns the adapter name.
func (f *FakeAdapter) Name() string {
	return "fake"
}

// On scripts the result returned for an exact command text.
func (f *FakeAdapter) On(commandText string, result adapter.Result) *FakeAdapter {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[commandText] = result
	return f
}

// Default scripts the result for command texts without a specific script.
func (f *FakeAdapter) Default(result adapter.Result) *FakeAdapter {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = result
	return f
}

// BlockUntilDone makes every Run wait for ctx to finish, like a hung shell.
func (f *FakeAdapter) BlockUntilDone() *FakeAdapter {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hangAll = true
	return f
}

// HangOn makes Run wait for ctx to finish for one command text.
func (f *FakeAdapter) HangOn(commandText string) *FakeAdapter {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hang[commandText] = true
	return f
}

// Run records commandText and returns the scripted result.
func (f *FakeAdapter) Run(ctx context.Context, commandText string) adapter.Result {
	f.mu.Lock()
	f.commands = append(f.commands, commandText)
	result, ok := f.results[commandText]
	if !ok {
		result = f.fallback
	}
	block := f.hangAll || f.hang[commandText]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
	}
	if err := ctx.Err(); err != nil {
		failure := adapter.ErrCanceled
		if errors.Is(err, context.DeadlineExceeded) {
			failure = adapter.ErrTimeout
		}
		return adapter.Result{
			ExitStatus: adapter.LaunchFailedStatus,
			Stderr:     "administration shell terminated: " + err.Error(),
			Err:        fmt.Errorf("%w: %v", failure, err),
		}
	}
	return result
}

// Commands returns every command text received so far.
func (f *FakeAdapter) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.commands))
	copy(out, f.commands)
	return out
}

// Reset forgets recorded commands.
func (f *FakeAdapter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = nil
}
