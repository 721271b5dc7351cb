package api

import (
	"context"

	"github.com/wake/snikket-web-portal/internal/adapter"
	"github.com/wake/snikket-web-portal/internal/command"
)

// OrchestratorPort defines the minimal interface the API needs from the orchestrator.
type OrchestratorPort interface {
	ListRooms(ctx context.Context, mucDomain string) (adapter.Result, error)
	GetAffiliation(ctx context.Context, room, user string) (adapter.Result, error)
	SetAffiliation(ctx context.Context, room, user, affiliation string) (adapter.Result, error)
}

// Compile-time assertion for port conformance
var _ OrchestratorPort = (*command.Orchestrator)(nil)
