package prosodymock

import (
	"errors"
	"fmt"
	"io"
	"strings"

	env "github.com/Netflix/go-env"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configure the emulator. They are read from the environment since
// the argument vector belongs to the runtime CLI being emulated.
type Options struct {
	StatePath string `env:"PROSODYMOCK_STATE,default=prosodymock.yaml"`
	Container string `env:"PROSODYMOCK_CONTAINER,default=snikket"`
	// LogPath enables a rotating JSON log of every invocation.
	LogPath string `env:"PROSODYMOCK_LOG"`
}

// OptionsFromEnv reads Options from the process environment.
func OptionsFromEnv() (Options, error) {
	var o Options
	_, err := env.UnmarshalFromEnviron(&o)
	return o, err
}

// Shell runs one emulated invocation.
type Shell struct {
	opts   Options
	logger *zap.Logger
}

// NewShell creates a Shell. Invocations are logged when opts.LogPath is set.
func NewShell(opts Options) *Shell {
	logger := zap.NewNop()
	if opts.LogPath != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.LogPath,
			MaxSize:    5,
			MaxBackups: 2,
		})
		encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		logger = zap.New(zapcore.NewCore(encoder, sink, zapcore.InfoLevel))
	}
	return &Shell{opts: opts, logger: logger}
}

// Run executes argv (without the program name) and returns the exit code.
func (s *Shell) Run(argv []string, stdout, stderr io.Writer) int {
	defer func() { _ = s.logger.Sync() }()

	code := s.run(argv, stdout, stderr)
	s.logger.Info("invocation", zap.Strings("argv", argv), zap.Int("exit_code", code))
	return code
}

func (s *Shell) run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) != 5 || argv[0] != "exec" || argv[2] != "prosodyctl" || argv[3] != "shell" {
		fmt.Fprintln(stderr, "usage: prosodymock exec <container> prosodyctl shell <command>")
		return 2
	}
	if argv[1] != s.opts.Container {
		fmt.Fprintf(stderr, "Error response from daemon: No such container: %s\n", argv[1])
		return 1
	}

	cmd, err := Parse(argv[4])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	state, err := LoadState(s.opts.StatePath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	out, err := Execute(state, cmd)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cmd.Op == OpSetAffiliation {
		if err := state.Save(s.opts.StatePath); err != nil {
			fmt.Fprintf(stderr, "Error: failed to save state: %v\n", err)
			return 1
		}
	}

	_, _ = io.WriteString(stdout, out)
	return 0
}

// Execute applies cmd to state and renders the shell output.
func Execute(state *State, cmd Command) (string, error) {
	switch cmd.Op {
	case OpList:
		rooms := state.ListRooms(cmd.Domain)
		var b strings.Builder
		for _, room := range rooms {
			b.WriteString(room)
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "OK: %d rooms\n", len(rooms))
		return b.String(), nil

	case OpGetAffiliation:
		a, err := state.Affiliation(cmd.Room, cmd.User)
		if err != nil {
			return "", roomError(cmd.Room, err)
		}
		return a + "\n", nil

	case OpSetAffiliation:
		if err := state.SetAffiliation(cmd.Room, cmd.User, cmd.Affiliation); err != nil {
			return "", roomError(cmd.Room, err)
		}
		return "OK: Affiliation changed\n", nil
	}
	return "", fmt.Errorf("%w: unsupported operation %v", ErrSyntax, cmd.Op)
}

func roomError(room string, err error) error {
	if errors.Is(err, ErrRoomNotFound) {
		return fmt.Errorf("%w: %s", err, room)
	}
	return err
}
