package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wake/snikket-web-portal/internal/adapter"
	"github.com/wake/snikket-web-portal/internal/adaptertest"
)

const helperEnv = "MUCAPI_TEST_FAKE_RUNTIME"

// TestMain lets the test binary stand in for the container runtime: when
// helperEnv is set the binary behaves like "docker exec ... prosodyctl shell".
func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		os.Exit(fakeRuntime(os.Args[1:]))
	}
	os.Exit(m.Run())
}

func fakeRuntime(args []string) int {
	if len(args) != 5 || args[0] != "exec" || args[1] != "snikket" || args[2] != "prosodyctl" || args[3] != "shell" {
		fmt.Fprintf(os.Stderr, "unexpected argv: %q", args)
		return 125
	}
	command := args[4]
	switch {
	case strings.HasPrefix(command, "echo:"):
		fmt.Fprint(os.Stdout, strings.TrimPrefix(command, "echo:"))
		return 0
	case command == "both":
		fmt.Fprint(os.Stdout, "out\n")
		fmt.Fprint(os.Stderr, "err\n")
		return 0
	case command == "fail":
		fmt.Fprint(os.Stderr, "room not found\n")
		return 3
	case command == "sleep":
		time.Sleep(30 * time.Second)
		return 0
	case command == "ignore-term":
		signal.Ignore(syscall.SIGTERM)
		time.Sleep(30 * time.Second)
		return 0
	case command == "orphan":
		// leave a process behind that inherits stdout and outlives us
		child := exec.Command(os.Args[0], "exec", "snikket", "prosodyctl", "shell", "linger")
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr
		if err := child.Start(); err != nil {
			fmt.Fprint(os.Stderr, err)
			return 125
		}
		time.Sleep(30 * time.Second)
		return 0
	case command == "linger":
		time.Sleep(15 * time.Second)
		return 0
	case command == "big":
		fmt.Fprint(os.Stdout, strings.Repeat("x", 256*1024))
		return 0
	default:
		// echo the single argument back so callers can check it arrived intact
		fmt.Fprint(os.Stdout, command)
		return 0
	}
}

func newTestAdapter(t *testing.T, grace time.Duration) *Adapter {
	t.Helper()
	t.Setenv(helperEnv, "1")
	cfg := DefaultConfig()
	cfg.Runtime = os.Args[0]
	cfg.KillGrace = grace
	return New(cfg, nil)
}

func TestAdapter_Args(t *testing.T) {
	a := New(DefaultConfig(), nil)
	assert.Equal(t,
		[]string{"exec", "snikket", "prosodyctl", "shell", "muc:list('x.protype.tw')"},
		a.Args("muc:list('x.protype.tw')"))
	assert.Equal(t, "docker", a.Name())
}

func TestAdapter_Run_Success(t *testing.T) {
	a := newTestAdapter(t, time.Second)

	result := a.Run(context.Background(), "echo:room1\n")

	require.NoError(t, result.Err)
	assert.Equal(t, 0, result.ExitStatus)
	assert.Equal(t, "room1\n", result.Stdout)
	assert.Empty(t, result.Stderr)
	assert.True(t, result.OK())
}

func TestAdapter_Run_CommandIsOneArgument(t *testing.T) {
	a := newTestAdapter(t, time.Second)
	text := `muc:list('a\'; $(reboot) "quoted" b.protype.tw') && echo pwned`

	result := a.Run(context.Background(), text)

	require.True(t, result.OK(), result.Stderr)
	assert.Equal(t, text, result.Stdout)
}

func TestAdapter_Run_CapturesBothStreams(t *testing.T) {
	a := newTestAdapter(t, time.Second)

	result := a.Run(context.Background(), "both")

	assert.Equal(t, 0, result.ExitStatus)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestAdapter_Run_LargeOutput(t *testing.T) {
	a := newTestAdapter(t, time.Second)

	result := a.Run(context.Background(), "big")

	assert.Equal(t, 0, result.ExitStatus)
	assert.Len(t, result.Stdout, 256*1024)
}

func TestAdapter_Run_NonZeroExit(t *testing.T) {
	a := newTestAdapter(t, time.Second)

	result := a.Run(context.Background(), "fail")

	assert.NoError(t, result.Err)
	assert.Equal(t, 3, result.ExitStatus)
	assert.Equal(t, "room not found\n", result.Stderr)
	assert.ErrorIs(t, adapter.Classify(result), adapter.ErrShell)
}

func TestAdapter_Run_LaunchFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runtime = "/nonexistent/bin/docker-for-tests"
	a := New(cfg, nil)

	result := a.Run(context.Background(), "muc:list('x.protype.tw')")

	assert.Equal(t, adapter.LaunchFailedStatus, result.ExitStatus)
	assert.ErrorIs(t, result.Err, adapter.ErrLaunch)
	assert.NotEmpty(t, result.Stderr)
	assert.False(t, result.OK())
}

func TestAdapter_Run_Timeout(t *testing.T) {
	a := newTestAdapter(t, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	result := a.Run(ctx, "sleep")

	assert.Less(t, time.Since(start), 10*time.Second)
	assert.NotEqual(t, 0, result.ExitStatus)
	assert.ErrorIs(t, result.Err, adapter.ErrTimeout)
	assert.Contains(t, result.Stderr, "terminated")
}

func TestAdapter_Run_KillAfterGrace(t *testing.T) {
	a := newTestAdapter(t, 300*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		// give the child time to install its signal handler
		time.Sleep(500 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result := a.Run(ctx, "ignore-term")

	assert.Less(t, time.Since(start), 10*time.Second)
	assert.ErrorIs(t, result.Err, adapter.ErrCanceled)
	assert.Equal(t, adapter.ErrCanceled, adapter.Classify(result))
}

func TestAdapter_Run_NoGraceDoesNotWaitForLeftoverProcesses(t *testing.T) {
	a := newTestAdapter(t, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	start := time.Now()
	result := a.Run(ctx, "orphan")

	assert.Less(t, time.Since(start), 10*time.Second)
	assert.ErrorIs(t, result.Err, adapter.ErrTimeout)
}

func TestAdapter_Run_AlreadyCanceled(t *testing.T) {
	a := newTestAdapter(t, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := a.Run(ctx, "echo:never")

	assert.Empty(t, result.Stdout)
	assert.ErrorIs(t, result.Err, adapter.ErrCanceled)
}

func TestAdapter_Conformance(t *testing.T) {
	t.Setenv(helperEnv, "1")
	adaptertest.RunConformance(t, func() adapter.IShellAdapter {
		cfg := DefaultConfig()
		cfg.Runtime = os.Args[0]
		cfg.KillGrace = 500 * time.Millisecond
		return New(cfg, nil)
	}, adaptertest.Script{
		SuccessCommand: "echo:room1\n",
		SuccessStdout:  "room1\n",
		FailureCommand: "fail",
		HangingCommand: "sleep",
	})
}
