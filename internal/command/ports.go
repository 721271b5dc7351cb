//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=../mocks/mock_command.go -package=mocks
package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wake/snikket-web-portal/internal/adapter"
	"github.com/wake/snikket-web-portal/internal/audit"
)

// OrchestratorPort defines the minimal interface the API needs from the orchestrator.
type OrchestratorPort interface {
	ListRooms(ctx context.Context, mucDomain string) (adapter.Result, error)
	GetAffiliation(ctx context.Context, room, user string) (adapter.Result, error)
	SetAffiliation(ctx context.Context, room, user, affiliation string) (adapter.Result, error)
}

// AuditLogger interface for writing audit records.
type AuditLogger interface {
	LogAction(ctx context.Context, action string, params map[string]string, outcome audit.Outcome, exitStatus int, latency time.Duration)
}

// Validation failures. None of them reach the shell.
var (
	ErrInvalidMucDomain          = errors.New("invalid muc_domain")
	ErrInvalidRoomOrUser         = errors.New("invalid room or user")
	ErrInvalidAffiliationRequest = errors.New("invalid room, user, or affiliation")
)

// ShellError is returned when the shell ran (or tried to) and did not exit
// with status zero. It unwraps to the adapter's normalized failure.
type ShellError struct {
	Result adapter.Result
	Cause  error
}

func (e *ShellError) Error() string {
	return fmt.Sprintf("administration shell failed (exit status %d): %v", e.Result.ExitStatus, e.Cause)
}

func (e *ShellError) Unwrap() error {
	return e.Cause
}
