//
//
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the active audit file inside the log directory.
const FileName = "audit.jsonl"

// AnonymousActor is recorded when no authenticated subject is present.
const AnonymousActor = "anonymous"

// Outcome classifies how an action ended.
type Outcome string

const (
	OutcomeSuccess      Outcome = "SUCCESS"
	OutcomeInvalid      Outcome = "INVALID"
	OutcomeShellError   Outcome = "SHELL_ERROR"
	OutcomeTimeout      Outcome = "TIMEOUT"
	OutcomeCanceled     Outcome = "CANCELED"
	OutcomeLaunchFailed Outcome = "LAUNCH_FAILED"
)

// Entry represents a single audit log entry.
type Entry struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"ts"`
	Actor      string            `json:"actor"`
	Action     string            `json:"action"`
	Params     map[string]string `json:"params"`
	Outcome    Outcome           `json:"outcome"`
	ExitStatus int               `json:"exitStatus"`
	LatencyMs  int64             `json:"latencyMs"`
}

// Options controls file placement and rotation.
type Options struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger writes audit entries to a rotating JSONL file.
type Logger struct {
	mu       sync.Mutex
	filePath string
	out      *lumberjack.Logger
	now      func() time.Time
}

// NewLogger creates the log directory and prepares the rotating writer.
func NewLogger(opts Options) (*Logger, error) {
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filePath := filepath.Join(opts.Dir, FileName)
	return &Logger{
		filePath: filePath,
		out: &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
			LocalTime:  false,
		},
		now: time.Now,
	}, nil
}

// LogAction records an action. The actor is taken from ctx.
func (l *Logger) LogAction(ctx context.Context, action string, params map[string]string, outcome Outcome, exitStatus int, latency time.Duration) {
	if params == nil {
		params = map[string]string{}
	}
	l.Record(Entry{
		ID:         uuid.NewString(),
		Timestamp:  l.now().UTC(),
		Actor:      ActorFromContext(ctx),
		Action:     action,
		Params:     params,
		Outcome:    outcome,
		ExitStatus: exitStatus,
		LatencyMs:  latency.Milliseconds(),
	})
}

// Record writes a fully populated entry.
func (l *Logger) Record(entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal audit entry: %v\n", err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.out.Write(append(data, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write audit entry: %v\n", err)
	}
}

// Rotate moves the current file aside and starts a new one.
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.out.Rotate(); err != nil {
		return fmt.Errorf("failed to rotate audit log: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}

// GetFilePath returns the path to the active audit file.
func (l *Logger) GetFilePath() string {
	return l.filePath
}

type actorKey struct{}

// WithActor returns a context carrying the acting subject.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the subject stored by WithActor, or
// AnonymousActor.
func ActorFromContext(ctx context.Context) string {
	if ctx != nil {
		if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
			return actor
		}
	}
	return AnonymousActor
}
