package command

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/wake/snikket-web-portal/internal/adapter"
	"github.com/wake/snikket-web-portal/internal/audit"
	"github.com/wake/snikket-web-portal/internal/muc"
)

// Action names recorded in the audit trail.
const (
	ActionListRooms      = "listRooms"
	ActionGetAffiliation = "getAffiliation"
	ActionSetAffiliation = "setAffiliation"
)

// DefaultTimeout bounds one shell invocation when none is configured.
const DefaultTimeout = 30 * time.Second

// Orchestrator routes validated API intents to the shell adapter.
type Orchestrator struct {
	shell       adapter.IShellAdapter
	domains     *muc.Domains
	timeout     time.Duration
	auditLogger AuditLogger
	logger      *zap.Logger
}

// Compile-time assertion that Orchestrator implements OrchestratorPort
var _ OrchestratorPort = (*Orchestrator)(nil)

// NewOrchestrator creates a new command orchestrator. A non-positive
// timeout selects DefaultTimeout.
func NewOrchestrator(shell adapter.IShellAdapter, domains *muc.Domains, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if domains == nil {
		domains = muc.DefaultDomains()
	}
	return &Orchestrator{
		shell:   shell,
		domains: domains,
		timeout: timeout,
		logger:  zap.NewNop(),
	}
}

// SetAuditLogger sets the audit logger.
func (o *Orchestrator) SetAuditLogger(logger AuditLogger) {
	o.auditLogger = logger
}

// SetLogger sets the operational logger.
func (o *Orchestrator) SetLogger(logger *zap.Logger) {
	if logger != nil {
		o.logger = logger
	}
}

// ListRooms lists the rooms of mucDomain, which must be a subdomain of the
// base domain.
func (o *Orchestrator) ListRooms(ctx context.Context, mucDomain string) (adapter.Result, error) {
	params := map[string]string{"muc_domain": mucDomain}
	if !o.domains.ValidMucDomain(mucDomain) {
		o.logAudit(ctx, ActionListRooms, params, audit.OutcomeInvalid, 0, 0)
		return adapter.Result{}, ErrInvalidMucDomain
	}
	return o.execute(ctx, ActionListRooms, params, muc.ListRooms(mucDomain))
}

// GetAffiliation reads the affiliation of user in room.
func (o *Orchestrator) GetAffiliation(ctx context.Context, room, user string) (adapter.Result, error) {
	params := map[string]string{"room": room, "user": user}
	if !o.domains.ValidRoom(room) || !o.domains.ValidUser(user) {
		o.logAudit(ctx, ActionGetAffiliation, params, audit.OutcomeInvalid, 0, 0)
		return adapter.Result{}, ErrInvalidRoomOrUser
	}
	return o.execute(ctx, ActionGetAffiliation, params, muc.GetAffiliation(room, user))
}

// SetAffiliation sets the affiliation of user in room as an administrative
// override.
func (o *Orchestrator) SetAffiliation(ctx context.Context, room, user, affiliation string) (adapter.Result, error) {
	params := map[string]string{"room": room, "user": user, "affiliation": affiliation}
	a, ok := muc.ParseAffiliationName(affiliation)
	if !ok || !o.domains.ValidRoom(room) || !o.domains.ValidUser(user) {
		o.logAudit(ctx, ActionSetAffiliation, params, audit.OutcomeInvalid, 0, 0)
		return adapter.Result{}, ErrInvalidAffiliationRequest
	}
	return o.execute(ctx, ActionSetAffiliation, params, muc.SetAffiliation(room, user, a))
}

// execute runs commandText under the orchestrator deadline. Success is
// decided by the exit status alone.
func (o *Orchestrator) execute(ctx context.Context, action string, params map[string]string, commandText string) (adapter.Result, error) {
	start := time.Now()

	if o.shell == nil {
		result := adapter.Result{
			ExitStatus: adapter.LaunchFailedStatus,
			Stderr:     "administration shell not configured",
			Err:        adapter.ErrUnavailable,
		}
		o.logAudit(ctx, action, params, audit.OutcomeLaunchFailed, result.ExitStatus, time.Since(start))
		return result, &ShellError{Result: result, Cause: adapter.ErrUnavailable}
	}

	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	result := o.shell.Run(runCtx, commandText)
	latency := time.Since(start)

	if result.OK() {
		o.logAudit(ctx, action, params, audit.OutcomeSuccess, result.ExitStatus, latency)
		o.logger.Debug("shell command succeeded",
			zap.String("action", action),
			zap.Duration("latency", latency))
		return result, nil
	}

	cause := adapter.Classify(result)
	o.logAudit(ctx, action, params, outcomeFor(cause), result.ExitStatus, latency)
	o.logger.Warn("shell command failed",
		zap.String("action", action),
		zap.String("adapter", o.shell.Name()),
		zap.Int("exit_status", result.ExitStatus),
		zap.Error(cause),
		zap.Duration("latency", latency))

	return result, &ShellError{Result: result, Cause: cause}
}

func outcomeFor(cause error) audit.Outcome {
	switch {
	case errors.Is(cause, adapter.ErrTimeout):
		return audit.OutcomeTimeout
	case errors.Is(cause, adapter.ErrCanceled):
		return audit.OutcomeCanceled
	case errors.Is(cause, adapter.ErrLaunch):
		return audit.OutcomeLaunchFailed
	default:
		return audit.OutcomeShellError
	}
}

func (o *Orchestrator) logAudit(ctx context.Context, action string, params map[string]string, outcome audit.Outcome, exitStatus int, latency time.Duration) {
	if o.auditLogger != nil {
		o.auditLogger.LogAction(ctx, action, params, outcome, exitStatus, latency)
	}
}
