// Package docker runs administration shell commands inside the managed
// container through the container runtime CLI.
//
// The argument vector is fixed: <runtime> exec <container> <shell...> <command>.
// The command text is always passed as one argument and never through a
// system shell.
package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wake/snikket-web-portal/internal/adapter"
)

// pipeDrainDelay bounds how long Run waits for stdout and stderr to close
// after the subprocess is gone when no kill grace is configured. A process
// left behind by the shell may otherwise hold the pipes open indefinitely.
const pipeDrainDelay = 500 * time.Millisecond

// Config describes how to reach the administration shell.
type Config struct {
	// Runtime is the container runtime binary, e.g. "docker".
	Runtime string
	// Container is the name of the managed container.
	Container string
	// Shell is the administration shell invocation inside the container.
	Shell []string
	// KillGrace is how long a cancelled subprocess may take to exit after
	// SIGTERM before it is killed. Zero kills immediately and waits at most
	// pipeDrainDelay for the output pipes.
	KillGrace time.Duration
}

// DefaultConfig returns the Snikket deployment defaults.
func DefaultConfig() Config {
	return Config{
		Runtime:   "docker",
		Container: "snikket",
		Shell:     []string{"prosodyctl", "shell"},
		KillGrace: 5 * time.Second,
	}
}

// Adapter implements adapter.IShellAdapter with one subprocess per call.
type Adapter struct {
	cfg    Config
	logger *zap.Logger
}

var _ adapter.IShellAdapter = (*Adapter)(nil)

// New creates a docker adapter.
func New(cfg Config, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{cfg: cfg, logger: logger}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return "docker"
}

// Args returns the argument vector passed to the runtime for commandText.
func (a *Adapter) Args(commandText string) []string {
	args := make([]string, 0, len(a.cfg.Shell)+3)
	args = append(args, "exec", a.cfg.Container)
	args = append(args, a.cfg.Shell...)
	return append(args, commandText)
}

// Run executes commandText and waits for the subprocess to exit.
// When ctx is done the subprocess receives SIGTERM and is killed after
// KillGrace if it is still running.
func (a *Adapter) Run(ctx context.Context, commandText string) adapter.Result {
	start := time.Now()

	cmd := exec.CommandContext(ctx, a.cfg.Runtime, a.Args(commandText)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = pipeDrainDelay
	if a.cfg.KillGrace > 0 {
		cmd.Cancel = func() error {
			return cmd.Process.Signal(syscall.SIGTERM)
		}
		cmd.WaitDelay = a.cfg.KillGrace
	}

	err := cmd.Run()
	result := adapter.Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case err == nil:
		result.ExitStatus = 0
	case ctx.Err() != nil:
		result.ExitStatus = exitCode(cmd)
		if result.ExitStatus == 0 {
			result.ExitStatus = adapter.LaunchFailedStatus
		}
		result.Err = contextFailure(ctx.Err())
		result.Stderr = appendLine(result.Stderr, "administration shell terminated: "+ctx.Err().Error())
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitStatus = exitErr.ExitCode()
			if result.ExitStatus == adapter.LaunchFailedStatus {
				result.Stderr = appendLine(result.Stderr, exitErr.Error())
			}
		} else {
			result.ExitStatus = adapter.LaunchFailedStatus
			result.Err = fmt.Errorf("%w: %v", adapter.ErrLaunch, err)
			result.Stderr = appendLine(result.Stderr, err.Error())
		}
	}

	a.logger.Debug("administration shell finished",
		zap.String("runtime", a.cfg.Runtime),
		zap.String("container", a.cfg.Container),
		zap.Int("exit_status", result.ExitStatus),
		zap.Int("stdout_bytes", len(result.Stdout)),
		zap.Int("stderr_bytes", len(result.Stderr)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(result.Err),
	)

	return result
}

func exitCode(cmd *exec.Cmd) int {
	if cmd.ProcessState == nil {
		return adapter.LaunchFailedStatus
	}
	return cmd.ProcessState.ExitCode()
}

func contextFailure(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", adapter.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", adapter.ErrCanceled, err)
}

func appendLine(s, line string) string {
	if s != "" && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s + line
}
